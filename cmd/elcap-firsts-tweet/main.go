package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"
	"github.com/pfrederiksen/elcap-firsts/internal/notifier"
	"github.com/pfrederiksen/elcap-firsts/internal/pipeline"
	"github.com/pfrederiksen/elcap-firsts/internal/storage"
)

var (
	reportFile = flag.String("report-file", "", "Path to report JSON file (or read from stdin)")
	dryRun     = flag.Bool("dry-run", false, "Print tweets without posting")
	top        = flag.Int("top", 10, "Number of climbers to include")
	version    = "dev"
)

func main() {
	flag.Parse()

	// Load .env file if present (ignore errors)
	_ = godotenv.Load()

	report, err := readReport(*reportFile, os.Stdin)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading report: %v\n", err)
		os.Exit(1)
	}

	if len(report.Leaderboard) == 0 {
		fmt.Println("No leaderboard entries to tweet")
		os.Exit(0)
	}

	var tw notifier.Notifier
	if *dryRun {
		tw = notifier.NewDryRunNotifier(*top)
		fmt.Printf("DRY RUN MODE (elcap-firsts-tweet %s) - Would tweet the top %d climbers:\n\n", version, *top)
	} else {
		client, err := notifier.NewTwitterNotifier(notifier.CredentialsFromEnv(), *top)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error initializing Twitter client: %v\n", err)
			os.Exit(1)
		}
		tw = client
	}

	if err := tw.Notify(report); err != nil {
		fmt.Fprintf(os.Stderr, "Error posting tweets: %v\n", err)
		os.Exit(1)
	}

	if !*dryRun {
		fmt.Println("Successfully posted leaderboard")
	}
}

// readReport reads the report from path, or from stdin when path is empty
func readReport(path string, stdin io.Reader) (*pipeline.Report, error) {
	if path != "" {
		return storage.LoadReportFile(path)
	}
	return storage.ReadReport(stdin)
}
