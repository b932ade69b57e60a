package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/pdf-highlighter/internal/keywords"
)

var keywordsCmd = &cobra.Command{
	Use:   "keywords",
	Short: "Parse and print a keyword list",
	Long: `Keywords loads a keyword file (one keyword or phrase per line) or parses a
comma-separated list and prints the resulting entries, so a list can be
checked before starting a run. Blank entries are dropped and order is kept.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		file, _ := cmd.Flags().GetString("file")
		list, _ := cmd.Flags().GetString("list")
		if file == "" && list == "" {
			return fmt.Errorf("pass --file or --list")
		}

		var kws []string
		if file != "" {
			loaded, err := keywords.LoadFile(file)
			if err != nil {
				return err
			}
			kws = append(kws, loaded...)
		}
		if list != "" {
			kws = append(kws, keywords.ParseList(list)...)
		}

		for _, kw := range kws {
			fmt.Println(kw)
		}
		fmt.Printf("%d keyword(s)\n", len(kws))
		return nil
	},
}

func init() {
	keywordsCmd.Flags().String("file", "", "text file with one keyword/phrase per line")
	keywordsCmd.Flags().String("list", "", "comma-separated keywords/phrases")

	rootCmd.AddCommand(keywordsCmd)
}
