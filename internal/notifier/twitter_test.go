package notifier

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/dghubble/go-twitter/twitter" //nolint:staticcheck // Using stable v1.1 API
	"github.com/pfrederiksen/elcap-firsts/internal/pipeline"
	"github.com/pfrederiksen/elcap-firsts/internal/tally"
)

func reportWith(n int) *pipeline.Report {
	report := &pipeline.Report{
		Area:   "El Capitan",
		Routes: make([]pipeline.RouteResult, 70),
	}
	for i := 0; i < n; i++ {
		report.Leaderboard = append(report.Leaderboard, tally.Entry{
			Name:  fmt.Sprintf("Climber Number %02d", i),
			Count: n - i,
		})
	}
	return report
}

func TestFormatThread(t *testing.T) {
	tests := []struct {
		name       string
		report     *pipeline.Report
		top        int
		wantTweets int
		contains   []string
	}{
		{
			name:       "short leaderboard fits one tweet",
			report:     reportWith(3),
			top:        10,
			wantTweets: 1,
			contains: []string{
				"🧗 Top first ascensionists on El Capitan (70 routes)",
				"1. Climber Number 00 - 3",
				"3. Climber Number 02 - 1",
				"#climbing",
			},
		},
		{
			name:       "top limits entries",
			report:     reportWith(20),
			top:        2,
			wantTweets: 1,
			contains:   []string{"2. Climber Number 01 - 19"},
		},
		{
			name:       "long leaderboard becomes a thread",
			report:     reportWith(30),
			top:        0,
			wantTweets: 4,
			contains:   []string{"30. Climber Number 29 - 1"},
		},
		{
			name:       "empty leaderboard",
			report:     reportWith(0),
			top:        10,
			wantTweets: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := formatThread(tt.report, tt.top)
			if len(got) != tt.wantTweets {
				t.Fatalf("formatThread() returned %d tweets, want %d:\n%s", len(got), tt.wantTweets, strings.Join(got, "\n---\n"))
			}

			joined := strings.Join(got, "\n")
			for _, tweet := range got {
				if n := utf8.RuneCountInString(tweet); n > TweetLimit {
					t.Errorf("tweet length = %d, want <= %d", n, TweetLimit)
				}
			}
			for _, want := range tt.contains {
				if !strings.Contains(joined, want) {
					t.Errorf("formatThread() missing %q in:\n%s", want, joined)
				}
			}
		})
	}
}

func TestFormatThread_NoArea(t *testing.T) {
	report := reportWith(1)
	report.Area = ""
	got := formatThread(report, 5)
	if len(got) != 1 || !strings.HasPrefix(got[0], "🧗 Top first ascensionists (70 routes)") {
		t.Errorf("formatThread() = %q", got)
	}
}

func TestTruncate(t *testing.T) {
	long := strings.Repeat("é", 300)
	got := truncate(long, TweetLimit)
	if utf8.RuneCountInString(got) != TweetLimit {
		t.Errorf("truncate() length = %d, want %d", utf8.RuneCountInString(got), TweetLimit)
	}
	if !strings.HasSuffix(got, "...") {
		t.Error("truncate() should end with ...")
	}
	if truncate("short", TweetLimit) != "short" {
		t.Error("truncate() changed a short string")
	}
}

func TestDryRunNotifier(t *testing.T) {
	var buf bytes.Buffer
	n := NewDryRunNotifierWithWriter(&buf, 10)

	if err := n.Notify(reportWith(3)); err != nil {
		t.Fatalf("DryRunNotifier.Notify() error = %v, want nil", err)
	}

	out := buf.String()
	if !strings.Contains(out, "--- Tweet 1/1 ---") {
		t.Errorf("missing tweet header:\n%s", out)
	}
	if !strings.Contains(out, "(Length: ") {
		t.Errorf("missing length line:\n%s", out)
	}
}

type fakeStatuses struct {
	posted  []string
	replies []int64
	failAt  int
}

func (f *fakeStatuses) Update(status string, params *twitter.StatusUpdateParams) (*twitter.Tweet, *http.Response, error) {
	if f.failAt > 0 && len(f.posted)+1 == f.failAt {
		return nil, nil, errors.New("rate limited")
	}
	var reply int64
	if params != nil {
		reply = params.InReplyToStatusID
	}
	f.posted = append(f.posted, status)
	f.replies = append(f.replies, reply)
	return &twitter.Tweet{ID: int64(100 + len(f.posted))}, nil, nil
}

func TestTwitterNotifier_Thread(t *testing.T) {
	statuses := &fakeStatuses{}
	n := &TwitterNotifier{statuses: statuses}

	if err := n.Notify(reportWith(30)); err != nil {
		t.Fatalf("Notify() error = %v", err)
	}

	if len(statuses.posted) != 4 {
		t.Fatalf("posted %d tweets, want 4", len(statuses.posted))
	}
	wantReplies := []int64{0, 101, 102, 103}
	for i, want := range wantReplies {
		if statuses.replies[i] != want {
			t.Errorf("tweet %d replied to %d, want %d", i, statuses.replies[i], want)
		}
	}
}

func TestTwitterNotifier_Error(t *testing.T) {
	statuses := &fakeStatuses{failAt: 2}
	n := &TwitterNotifier{statuses: statuses}

	err := n.Notify(reportWith(30))
	if err == nil || !strings.Contains(err.Error(), "posting tweet 2/4") {
		t.Errorf("Notify() error = %v", err)
	}
}

func TestNewTwitterNotifier_MissingCredentials(t *testing.T) {
	_, err := NewTwitterNotifier(Credentials{APIKey: "key"}, 10)
	if !errors.Is(err, ErrMissingCredentials) {
		t.Errorf("NewTwitterNotifier() error = %v, want ErrMissingCredentials", err)
	}

	n, err := NewTwitterNotifier(Credentials{APIKey: "k", APISecret: "s", AccessToken: "t", AccessSecret: "a"}, 10)
	if err != nil || n == nil {
		t.Errorf("NewTwitterNotifier() = %v, %v", n, err)
	}
}

func TestCredentialsFromEnv(t *testing.T) {
	t.Setenv("TWITTER_API_KEY", "key")
	t.Setenv("TWITTER_API_SECRET", "secret")
	t.Setenv("TWITTER_ACCESS_TOKEN", "token")
	t.Setenv("TWITTER_ACCESS_SECRET", "")

	creds := CredentialsFromEnv()
	if creds.APIKey != "key" || creds.AccessToken != "token" {
		t.Errorf("CredentialsFromEnv() = %+v", creds)
	}
	if creds.Valid() {
		t.Error("Valid() = true with empty access secret")
	}
}
