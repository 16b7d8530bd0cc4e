package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"karolbroda.com/platter/internal/catalog"
	"karolbroda.com/platter/internal/logging"
	"karolbroda.com/platter/internal/track"
)

var searchCmd = &cobra.Command{
	Use:   "search <term...>",
	Short: "search the catalog once and print the results",
	Long:  `runs a single catalog search and prints the records that would land in the crate.`,
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		logger, logCloser, err := logging.New(cfg.Log, os.Stderr)
		if err != nil {
			return err
		}
		defer logCloser.Close()

		client := catalog.NewClient(catalog.Options{
			BaseURL: cfg.Catalog.URL,
			Timeout: cfg.Catalog.Timeout(),
			Logger:  logger.WithPrefix("catalog"),
		})

		term := strings.Join(args, " ")
		results, err := client.Lookup(context.Background(), term)
		if err != nil {
			return fmt.Errorf("search failed: %w", err)
		}

		if len(results) == 0 {
			fmt.Printf("no records found for %q\n", term)
			return nil
		}

		printTracks(os.Stdout, results)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)
}

func printTracks(out io.Writer, tracks []track.Track) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTRACK\tARTIST\tALBUM\tPREVIEW")
	for _, t := range tracks {
		preview := "-"
		if t.IsPlayable() {
			preview = "yes"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", t.ID, t.Name, t.Artist, t.Collection, preview)
	}
	w.Flush()
}
