// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package highlight

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/go-pdf/fpdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/unidoc/unipdf/v3/common/license"
	"github.com/unidoc/unipdf/v3/model"
)

var licenseOnce sync.Once

// requireLicense activates the UniDoc metered license from the environment,
// or skips tests that need to exercise unipdf end to end.
func requireLicense(t *testing.T) {
	t.Helper()
	key := os.Getenv("UNIDOC_LICENSE_API_KEY")
	if key == "" {
		t.Skip("UNIDOC_LICENSE_API_KEY not set; skipping unipdf round-trip test")
	}
	licenseOnce.Do(func() {
		if err := license.SetMeteredKey(key); err != nil {
			t.Fatalf("activating unipdf license: %v", err)
		}
	})
}

// writeFixture generates a real PDF with the given lines of text, one per
// baseline, using the core Helvetica font.
func writeFixture(t *testing.T, path string, lines ...string) {
	t.Helper()
	doc := fpdf.New("P", "pt", "A4", "")
	tr := doc.UnicodeTranslatorFromDescriptor("") // core fonts are cp1252
	doc.AddPage()
	doc.SetFont("Helvetica", "", 12)
	y := 100.0
	for _, line := range lines {
		doc.Text(72, y, tr(line))
		y += 16
	}
	require.NoError(t, doc.OutputFileAndClose(path))
}

func TestEngineMark(t *testing.T) {
	requireLicense(t)

	dir := t.TempDir()
	src := filepath.Join(dir, "doc.pdf")
	dest := filepath.Join(dir, "out", "doc.pdf")
	// The accented word ahead of the matches keeps byte and rune offsets
	// apart on the first line.
	writeFixture(t, src,
		"café alpha beta gamma",
		"beta delta",
		"nothing here",
	)

	hits, err := NewEngine().Mark(src, dest, []string{"beta", "gamma"})
	require.NoError(t, err)
	assert.Equal(t, 3, hits)

	// Output is a readable PDF carrying highlight annotations.
	f, err := os.Open(dest)
	require.NoError(t, err)
	defer f.Close()
	reader, err := model.NewPdfReader(f)
	require.NoError(t, err)
	page, err := reader.GetPage(1)
	require.NoError(t, err)
	annots, err := page.GetAnnotations()
	require.NoError(t, err)
	assert.Len(t, annots, 3)
}

func TestEngineHyphenatedLineBreak(t *testing.T) {
	requireLicense(t)

	dir := t.TempDir()
	src := filepath.Join(dir, "hyphen.pdf")
	writeFixture(t, src,
		"the system uses a Fail-",
		"Safe shutdown procedure",
	)

	for _, kw := range []string{"failsafe", "Fail-Safe"} {
		dest := filepath.Join(dir, "out-"+kw+".pdf")
		hits, err := NewEngine().Mark(src, dest, []string{kw})
		require.NoError(t, err, "keyword %q", kw)
		assert.GreaterOrEqual(t, hits, 1, "keyword %q should match across the line break", kw)
	}
}

func TestEngineRerunFindsSameHits(t *testing.T) {
	requireLicense(t)

	dir := t.TempDir()
	src := filepath.Join(dir, "doc.pdf")
	writeFixture(t, src, "alpha beta alpha")

	first := filepath.Join(dir, "first.pdf")
	hits1, err := NewEngine().Mark(src, first, []string{"alpha"})
	require.NoError(t, err)

	// Highlight annotations must not alter extractable text: running over
	// the annotated output finds the same matches.
	second := filepath.Join(dir, "second.pdf")
	hits2, err := NewEngine().Mark(first, second, []string{"alpha"})
	require.NoError(t, err)
	assert.Equal(t, hits1, hits2)
}

func TestEngineUnopenable(t *testing.T) {
	requireLicense(t)

	dir := t.TempDir()
	src := filepath.Join(dir, "fake.pdf")
	require.NoError(t, os.WriteFile(src, []byte("this is not a pdf"), 0o644))

	_, err := NewEngine().Mark(src, filepath.Join(dir, "out.pdf"), []string{"x"})
	assert.Error(t, err)
}

func TestEngineMissingFile(t *testing.T) {
	dir := t.TempDir()
	_, err := NewEngine().Mark(filepath.Join(dir, "absent.pdf"), filepath.Join(dir, "out.pdf"), []string{"x"})
	assert.Error(t, err)
}
