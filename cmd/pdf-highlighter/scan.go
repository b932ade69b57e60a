package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/pdf-highlighter/internal/discover"
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "List the PDF files a run would process",
	Long: `Scan walks the source folder and prints every PDF it finds, in the order
a run would process them, without touching any file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := appConfig()

		src, _ := cmd.Flags().GetString("source")
		if src == "" {
			src = cfg.Batch.SourceDir
		}
		if src == "" {
			return fmt.Errorf("no source folder selected")
		}

		files, err := discover.Discover(src, cfg.Discover.Extension)
		if err != nil {
			return err
		}
		for _, f := range files {
			fmt.Println(f)
		}
		fmt.Printf("%d PDF(s) under %s\n", len(files), src)
		return nil
	},
}

func init() {
	scanCmd.Flags().String("source", "", "source folder scanned recursively for PDFs")

	rootCmd.AddCommand(scanCmd)
}
