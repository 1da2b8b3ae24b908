package scraper

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/net/html"
	"golang.org/x/time/rate"
)

const (
	UserAgent    = "elcap-firsts/1.0 (github.com/pfrederiksen/elcap-firsts)"
	Timeout      = 30 * time.Second
	DetailsTable = "table.description-details"
	MaxPageBytes = 4 << 20
)

var (
	// ErrNoAttribution is returned when a page has no first-ascent entry.
	ErrNoAttribution = errors.New("no first ascent attribution found")
	// ErrDisallowed is returned when robots.txt forbids fetching a page.
	ErrDisallowed = errors.New("fetch disallowed by robots.txt")
)

// Options configures a Scraper
type Options struct {
	UserAgent     string
	Timeout       time.Duration
	Delay         time.Duration // minimum time between page fetches
	RespectRobots bool
	CacheTTL      time.Duration
	FARow         int // zero-based row used when no "FA:" label is present
	FACol         int // zero-based column used when no "FA:" label is present
}

// DefaultOptions returns the options used by New
func DefaultOptions() Options {
	return Options{
		UserAgent:     UserAgent,
		Timeout:       Timeout,
		Delay:         time.Second,
		RespectRobots: true,
		CacheTTL:      time.Hour,
		FARow:         1,
		FACol:         1,
	}
}

// Scraper handles fetching route pages and parsing their details table
type Scraper struct {
	client  *http.Client
	opts    Options
	limiter *rate.Limiter
	robots  *RobotsChecker
	pages   *gocache.Cache
}

// New creates a new Scraper instance with default options
func New() *Scraper {
	return NewWithOptions(DefaultOptions())
}

// NewWithOptions creates a Scraper from opts
func NewWithOptions(opts Options) *Scraper {
	if opts.UserAgent == "" {
		opts.UserAgent = UserAgent
	}
	if opts.Timeout <= 0 {
		opts.Timeout = Timeout
	}

	limit := rate.Inf
	if opts.Delay > 0 {
		limit = rate.Every(opts.Delay)
	}

	s := &Scraper{
		client: &http.Client{
			Timeout: opts.Timeout,
		},
		opts:    opts,
		limiter: rate.NewLimiter(limit, 1),
		pages:   gocache.New(opts.CacheTTL, 10*time.Minute),
	}
	if opts.RespectRobots {
		s.robots = NewRobotsChecker(opts.UserAgent, opts.Timeout)
	}
	return s
}

// FetchAttribution fetches a route page and returns its raw first-ascent text
func (s *Scraper) FetchAttribution(ctx context.Context, pageURL string) (string, error) {
	if cached, found := s.pages.Get(pageURL); found {
		return cached.(string), nil
	}

	if s.robots != nil {
		allowed, crawlDelay, err := s.robots.CanFetch(ctx, pageURL)
		if err != nil {
			return "", fmt.Errorf("checking robots.txt: %w", err)
		}
		if !allowed {
			return "", fmt.Errorf("%s: %w", pageURL, ErrDisallowed)
		}
		s.honorCrawlDelay(crawlDelay)
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("waiting for rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", s.opts.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	raw, err := s.parseAttribution(io.LimitReader(resp.Body, MaxPageBytes))
	if err != nil {
		return "", err
	}

	s.pages.Set(pageURL, raw, gocache.DefaultExpiration)
	return raw, nil
}

// honorCrawlDelay slows the limiter down when robots.txt asks for more than Delay
func (s *Scraper) honorCrawlDelay(crawlDelay time.Duration) {
	if crawlDelay <= 0 {
		return
	}
	if limit := rate.Every(crawlDelay); limit < s.limiter.Limit() {
		s.limiter.SetLimit(limit)
	}
}

// parseAttribution extracts the first-ascent text from a route page
func (s *Scraper) parseAttribution(r io.Reader) (string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return "", fmt.Errorf("parsing HTML: %w", err)
	}

	table := doc.Find(DetailsTable).Last()
	if table.Length() == 0 {
		return "", fmt.Errorf("%s not found: %w", DetailsTable, ErrNoAttribution)
	}

	// Strategy 1: the row whose label cell reads "FA:"
	var raw string
	found := false
	table.Find("tr").EachWithBreak(func(i int, row *goquery.Selection) bool {
		cells := row.Find("td")
		if cells.Length() < 2 {
			return true
		}
		label := strings.TrimSuffix(strings.TrimSpace(cells.First().Text()), ":")
		if !strings.EqualFold(strings.TrimSpace(label), "FA") {
			return true
		}
		raw = collapseSpace(cells.Eq(1).Text())
		found = true
		return false
	})
	if found {
		if raw == "" {
			return "", ErrNoAttribution
		}
		return raw, nil
	}

	// Strategy 2: fixed position inside the table body
	body := table.Nodes[0]
	if tbody := table.Find("tbody").First(); tbody.Length() > 0 {
		body = tbody.Nodes[0]
	}
	cell := elementChild(elementChild(body, s.opts.FARow), s.opts.FACol)
	if raw = collapseSpace(nodeText(cell)); raw == "" {
		return "", ErrNoAttribution
	}
	return raw, nil
}

// elementChild returns the nth element child of n, skipping text and comment nodes
func elementChild(n *html.Node, index int) *html.Node {
	if n == nil || index < 0 {
		return nil
	}
	i := 0
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		if i == index {
			return c
		}
		i++
	}
	return nil
}

// nodeText concatenates the text nodes under n
func nodeText(n *html.Node) string {
	if n == nil {
		return ""
	}
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}

// collapseSpace trims s and folds internal runs of whitespace to one space
func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
