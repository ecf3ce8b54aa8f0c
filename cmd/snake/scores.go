package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/pico-snake/internal/platform/tui"
	"github.com/vovakirdan/pico-snake/internal/storage"
)

var (
	flagLimit  int
	flagRecent bool
	flagPlain  bool
	flagClear  bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the result ledger",
	Long: `Display the best games recorded in the result ledger.

On a terminal the ledger opens as an interactive table; tab switches
between high scores and recent games. Use --plain for text output.

Examples:
  snake scores
  snake scores --limit 20 --plain
  snake scores --recent --plain
  snake scores --db ./results.db`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of games to show")
	scoresCmd.Flags().BoolVar(&flagRecent, "recent", false, "List the most recent games instead of the best")
	scoresCmd.Flags().BoolVar(&flagPlain, "plain", false, "Print text instead of the interactive table")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete every recorded game")
}

func runScores(cmd *cobra.Command, _ []string) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Open result storage
	store, err := storage.Open(cfg.Storage.Path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening results database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagClear {
		if err := store.Clear(); err != nil {
			store.Close()
			fmt.Fprintf(os.Stderr, "Error clearing results: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Result ledger cleared.")
		return
	}

	if !flagPlain && term.IsTerminal(int(os.Stdout.Fd())) {
		if err := tui.RunScoreboard(store, flagLimit); err != nil {
			store.Close()
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := printScores(store, flagLimit, flagRecent); err != nil {
		store.Close()
		fmt.Fprintf(os.Stderr, "Error retrieving results: %v\n", err)
		os.Exit(1)
	}
}

func printScores(ledger tui.Ledger, limit int, recent bool) error {
	var (
		entries []storage.Entry
		err     error
		title   = "High Scores"
	)
	if recent {
		title = "Recent Games"
		entries, err = ledger.RecentResults(limit)
	} else {
		entries, err = ledger.TopResults(limit)
	}
	if err != nil {
		return err
	}

	fmt.Println(title)
	fmt.Println()

	if len(entries) == 0 {
		fmt.Println("No games recorded yet.")
		fmt.Println()
		fmt.Println("Play 'snake play' to set the first high score!")
		return nil
	}

	// Print header
	fmt.Printf("  %-4s  %-6s  %-4s  %-4s  %-13s  %-8s  %s\n", "Rank", "Score", "Food", "Len", "Outcome", "Time", "Date")
	fmt.Printf("  %-4s  %-6s  %-4s  %-4s  %-13s  %-8s  %s\n", "----", "-----", "----", "---", "-------", "----", "----")

	// Print rows
	for _, row := range tui.EntryRows(entries) {
		fmt.Printf("  %-4s  %-6s  %-4s  %-4s  %-13s  %-8s  %s\n", row[0], row[1], row[2], row[3], row[4], row[5], row[6])
	}

	summary, err := ledger.Stats()
	if err != nil {
		return err
	}
	fmt.Println()
	fmt.Println(tui.SummaryLine(summary))
	return nil
}
