package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"runtime"

	"chatstats/internal/core/analyzer"
	"chatstats/internal/core/chatlog"
	"chatstats/internal/platform/logger"

	"github.com/spf13/cobra"
)

func analyzeCmd() *cobra.Command {
	var (
		dateOrder string
		workers   int
		pretty    bool
		summary   bool
		verbose   bool
	)

	cmd := &cobra.Command{
		Use:   "analyze <file|->",
		Short: "Print the report of one chat export as JSON",
		Long: `Analyze a WhatsApp style .txt export and print the report JSON on stdout.
Use - to read the export from stdin.

  chatstats analyze chat.txt --pretty
  cat chat.txt | chatstats analyze - --date-order mdy`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			order, err := chatlog.ParseDateOrder(dateOrder)
			if err != nil {
				return err
			}
			text, err := readInput(cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}

			var log *logger.Logger
			if verbose {
				log = logger.Named("cli")
			}
			a := analyzer.New(
				analyzer.WithDateOrder(order),
				analyzer.WithWorkers(workers),
				analyzer.WithLogger(log),
			)
			res, err := a.Run(cmd.Context(), text)
			if err != nil {
				return err
			}

			if summary {
				s := res.Summary
				fmt.Fprintf(cmd.ErrOrStderr(), "lines=%d notices=%d messages=%d continuations=%d dropped=%d undated=%d untimed=%d\n",
					s.Lines, s.Notices, s.Messages, s.Continuations, s.Dropped, s.Undated, s.Untimed)
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetEscapeHTML(false)
			if pretty {
				enc.SetIndent("", "  ")
			}
			return enc.Encode(res.Report)
		},
	}

	cmd.Flags().StringVar(&dateOrder, "date-order", "dmy", "reading of ambiguous dates: dmy or mdy")
	cmd.Flags().IntVar(&workers, "workers", runtime.GOMAXPROCS(0), "parallel ranges for large exports")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "indent the JSON output")
	cmd.Flags().BoolVar(&summary, "summary", false, "print run counters on stderr")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "debug log each run (LOG_LEVEL and LOG_FORMAT apply)")
	return cmd
}

// readInput reads path, or stdin when path is -
func readInput(stdin io.Reader, path string) (string, error) {
	var (
		b   []byte
		err error
	)
	if path == "-" {
		b, err = io.ReadAll(stdin)
	} else {
		b, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("read export: %w", err)
	}
	return string(b), nil
}
