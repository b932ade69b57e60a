package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/pdf-highlighter/internal/batch"
	"github.com/pdiddy/pdf-highlighter/internal/discover"
	"github.com/pdiddy/pdf-highlighter/internal/highlight"
	"github.com/pdiddy/pdf-highlighter/internal/index"
	"github.com/pdiddy/pdf-highlighter/internal/keywords"
	"github.com/pdiddy/pdf-highlighter/internal/ui"
	"github.com/pdiddy/pdf-highlighter/pkg/types"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Highlight keywords across every PDF under a source folder",
	Long: `Run discovers all PDF files under the source folder, then processes them
sequentially: each file's pages are searched for every keyword, matches are
highlighted in yellow, and the annotated copy is written in place or under
the destination folder, mirroring the file's relative path.

Per-file status lines stream to stdout while a progress bar tracks the batch
on stderr. A failed document produces one failure line and no output file;
the batch always continues to the next document.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := appConfig()

		session, err := buildSession(cmd, cfg.Batch)
		if err != nil {
			return err
		}
		if err := session.Validate(); err != nil {
			return err
		}

		files, err := discover.Discover(session.Source, cfg.Discover.Extension)
		if err != nil {
			return err
		}
		if len(files) == 0 {
			fmt.Printf("Found no PDFs under %s.\n", session.Source)
			return nil
		}

		runner := batch.NewRunner()

		// Optional run-history recording.
		useIndex, _ := cmd.Flags().GetBool("index")
		if !useIndex {
			useIndex = cfg.Index.Enabled
		}
		var store *index.Store
		var runID int64
		if useIndex {
			store, err = index.Open(cfg.Index.Dir)
			if err != nil {
				return err
			}
			defer store.Close()
			runID, err = store.BeginRun(session.Source, session.Dest, session.Keywords, len(files))
			if err != nil {
				return err
			}
			runner.OnResult = func(res types.Result) {
				if err := store.RecordResult(runID, res); err != nil {
					fmt.Fprintf(os.Stderr, "warning: %v\n", err)
				}
			}
		}

		ch, err := runner.Start(session, files, highlight.NewEngine())
		if err != nil {
			return err
		}

		tracker := ui.NewTracker(os.Stderr, len(files))
		started := time.Now()
		done := batch.Drain(ch, cfg.Batch.PollInterval, os.Stdout, tracker.Update)
		tracker.Finish()

		fmt.Printf("Finished %d PDF(s): %d hit(s), %d failed (%s).\n",
			done.Total, done.Hits, done.Failed, time.Since(started).Round(time.Millisecond))

		if store != nil {
			if err := store.FinishRun(runID, done.Hits, done.Failed); err != nil {
				fmt.Fprintf(os.Stderr, "warning: %v\n", err)
			}
		}

		if savePath, _ := cmd.Flags().GetString("save-job"); savePath != "" {
			summary := &batch.RunSummary{
				Files:     done.Total,
				Hits:      done.Hits,
				Failed:    done.Failed,
				Timestamp: time.Now(),
			}
			if err := batch.WriteJobFile(savePath, session, summary); err != nil {
				return err
			}
			fmt.Printf("Saved job file: %s\n", savePath)
		}
		return nil
	},
}

// buildSession assembles the batch configuration: a job file provides the
// base when given, and explicit flags (falling back to config values)
// override it.
func buildSession(cmd *cobra.Command, defaults types.BatchConfig) (batch.Session, error) {
	var session batch.Session

	if jobPath, _ := cmd.Flags().GetString("job"); jobPath != "" {
		jf, err := batch.ReadJobFile(jobPath)
		if err != nil {
			return session, err
		}
		session = jf.Batch.ToSession()
	}

	if src, _ := cmd.Flags().GetString("source"); src != "" {
		session.Source = src
	} else if session.Source == "" {
		session.Source = defaults.SourceDir
	}

	if dest, _ := cmd.Flags().GetString("dest"); dest != "" {
		session.Dest = dest
	} else if session.Dest == "" {
		session.Dest = defaults.DestDir
	}

	var kws []string
	if file, _ := cmd.Flags().GetString("keywords-file"); file != "" {
		loaded, err := keywords.LoadFile(file)
		if err != nil {
			return session, err
		}
		kws = append(kws, loaded...)
	}
	if list, _ := cmd.Flags().GetString("keywords"); list != "" {
		kws = append(kws, keywords.ParseList(list)...)
	}
	if len(kws) > 0 {
		session.Keywords = kws
	}

	return session, nil
}

func init() {
	runCmd.Flags().String("source", "", "source folder scanned recursively for PDFs")
	runCmd.Flags().String("dest", "", "output folder (default: annotate in place)")
	runCmd.Flags().String("keywords", "", "comma-separated keywords/phrases to highlight")
	runCmd.Flags().String("keywords-file", "", "text file with one keyword/phrase per line")
	runCmd.Flags().String("job", "", "load source, dest, and keywords from a saved job file")
	runCmd.Flags().String("save-job", "", "write the batch configuration and run summary to a YAML job file")
	runCmd.Flags().Bool("index", false, "record the run in the history index")

	rootCmd.AddCommand(runCmd)
}
