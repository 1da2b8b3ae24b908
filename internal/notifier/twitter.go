package notifier

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/dghubble/go-twitter/twitter" //nolint:staticcheck // Using stable v1.1 API
	"github.com/dghubble/oauth1"
	"github.com/pfrederiksen/elcap-firsts/internal/pipeline"
)

// ErrMissingCredentials is returned when any Twitter credential is empty
var ErrMissingCredentials = errors.New("missing required Twitter credentials")

// Credentials holds OAuth1 user credentials
type Credentials struct {
	APIKey       string
	APISecret    string
	AccessToken  string
	AccessSecret string
}

// CredentialsFromEnv reads credentials from the environment.
// Required environment variables:
// - TWITTER_API_KEY
// - TWITTER_API_SECRET
// - TWITTER_ACCESS_TOKEN
// - TWITTER_ACCESS_SECRET
func CredentialsFromEnv() Credentials {
	return Credentials{
		APIKey:       os.Getenv("TWITTER_API_KEY"),
		APISecret:    os.Getenv("TWITTER_API_SECRET"),
		AccessToken:  os.Getenv("TWITTER_ACCESS_TOKEN"),
		AccessSecret: os.Getenv("TWITTER_ACCESS_SECRET"),
	}
}

// Valid reports whether every credential is set
func (c Credentials) Valid() bool {
	return c.APIKey != "" && c.APISecret != "" && c.AccessToken != "" && c.AccessSecret != ""
}

// statusUpdater is the part of twitter.StatusService used for posting
type statusUpdater interface {
	Update(status string, params *twitter.StatusUpdateParams) (*twitter.Tweet, *http.Response, error)
}

// TwitterNotifier posts the leaderboard to Twitter as a thread
type TwitterNotifier struct {
	statuses statusUpdater
	top      int
	pause    time.Duration
}

// NewTwitterNotifier creates a Twitter notifier posting the top entries
func NewTwitterNotifier(creds Credentials, top int) (*TwitterNotifier, error) {
	if !creds.Valid() {
		return nil, ErrMissingCredentials
	}

	config := oauth1.NewConfig(creds.APIKey, creds.APISecret)
	token := oauth1.NewToken(creds.AccessToken, creds.AccessSecret)
	httpClient := config.Client(oauth1.NoContext, token)
	client := twitter.NewClient(httpClient)

	return &TwitterNotifier{
		statuses: client.Statuses,
		top:      top,
		pause:    2 * time.Second,
	}, nil
}

// Notify posts the thread, each tweet replying to the previous one
func (n *TwitterNotifier) Notify(report *pipeline.Report) error {
	tweets := formatThread(report, n.top)

	var replyTo int64
	for i, text := range tweets {
		var params *twitter.StatusUpdateParams
		if replyTo != 0 {
			params = &twitter.StatusUpdateParams{InReplyToStatusID: replyTo}
		}

		posted, _, err := n.statuses.Update(text, params)
		if err != nil {
			return fmt.Errorf("posting tweet %d/%d: %w", i+1, len(tweets), err)
		}
		if posted != nil {
			replyTo = posted.ID
		}

		// Rate limiting: wait between tweets
		if i < len(tweets)-1 && n.pause > 0 {
			time.Sleep(n.pause)
		}
	}

	return nil
}
