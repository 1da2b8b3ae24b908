package notifier

import (
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"github.com/pfrederiksen/elcap-firsts/internal/pipeline"
)

// DryRunNotifier prints what would be tweeted without actually posting
type DryRunNotifier struct {
	out io.Writer
	top int
}

// NewDryRunNotifier creates a dry-run notifier printing the top entries to stdout
func NewDryRunNotifier(top int) *DryRunNotifier {
	return NewDryRunNotifierWithWriter(os.Stdout, top)
}

// NewDryRunNotifierWithWriter creates a dry-run notifier printing to w
func NewDryRunNotifierWithWriter(w io.Writer, top int) *DryRunNotifier {
	return &DryRunNotifier{out: w, top: top}
}

// Notify prints the tweets that would be posted
func (n *DryRunNotifier) Notify(report *pipeline.Report) error {
	tweets := formatThread(report, n.top)
	for i, tweet := range tweets {
		if _, err := fmt.Fprintf(n.out, "--- Tweet %d/%d ---\n%s\n\n(Length: %d characters)\n\n",
			i+1, len(tweets), tweet, utf8.RuneCountInString(tweet)); err != nil {
			return err
		}
	}
	return nil
}
