package types

import "time"

// DiscoverConfig holds settings for PDF discovery.
type DiscoverConfig struct {
	// Extension is the filename extension that identifies PDF files
	// (default ".pdf"). Comparison is case-insensitive.
	Extension string `json:"extension" yaml:"extension"`
}

// BatchConfig holds settings for the batch driver.
type BatchConfig struct {
	// SourceDir is the default source folder scanned for PDFs.
	SourceDir string `json:"source_dir" yaml:"source_dir"`

	// DestDir is the default output folder. Empty means in-place: the
	// annotated copy overwrites the source file.
	DestDir string `json:"dest_dir" yaml:"dest_dir"`

	// PollInterval is the display-side event drain tick (default 100ms).
	PollInterval time.Duration `json:"poll_interval" yaml:"poll_interval"`
}

// IndexConfig holds settings for the optional run-history index.
type IndexConfig struct {
	// Enabled turns on run recording. Off by default: without it the tool
	// leaves no state behind beyond the output files.
	Enabled bool `json:"enabled" yaml:"enabled"`

	// Dir is the directory holding the SQLite database (default ".").
	Dir string `json:"dir" yaml:"dir"`
}

// AppConfig groups all configuration sections.
type AppConfig struct {
	Discover DiscoverConfig `json:"discover" yaml:"discover"`
	Batch    BatchConfig    `json:"batch" yaml:"batch"`
	Index    IndexConfig    `json:"index" yaml:"index"`
}
