package notifier

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/pfrederiksen/elcap-firsts/internal/pipeline"
	"github.com/pfrederiksen/elcap-firsts/internal/tally"
)

// TweetLimit is the maximum tweet length in characters
const TweetLimit = 280

// Notifier defines the interface for posting a leaderboard
type Notifier interface {
	// Notify posts the leaderboard of the given report
	Notify(report *pipeline.Report) error
}

const hashtags = "#climbing #yosemite"

// formatThread renders the top entries of a report as one or more tweets.
// top <= 0 includes every entry.
func formatThread(report *pipeline.Report, top int) []string {
	entries := tally.Top(report.Leaderboard, top)
	if len(entries) == 0 {
		return nil
	}

	title := "Top first ascensionists"
	if report.Area != "" {
		title = fmt.Sprintf("Top first ascensionists on %s", report.Area)
	}
	header := fmt.Sprintf("🧗 %s (%d routes)\n\n", title, len(report.Routes))

	var tweets []string
	current := header
	for i, e := range entries {
		line := fmt.Sprintf("%d. %s - %d\n", i+1, e.Name, e.Count)
		if utf8.RuneCountInString(current+line) > TweetLimit {
			tweets = append(tweets, strings.TrimRight(current, "\n"))
			current = ""
		}
		current += truncate(line, TweetLimit)
	}

	footer := "\n" + hashtags
	if utf8.RuneCountInString(current+footer) <= TweetLimit {
		current += footer
		tweets = append(tweets, strings.TrimRight(current, "\n"))
	} else {
		tweets = append(tweets, strings.TrimRight(current, "\n"), hashtags)
	}

	return tweets
}

// truncate shortens s to at most limit characters, marking the cut with "..."
func truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return string(runes[:limit-3]) + "..."
}
