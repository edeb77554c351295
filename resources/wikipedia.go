package resources

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// DefaultWikipediaURL is the MediaWiki action API endpoint.
const DefaultWikipediaURL = "https://en.wikipedia.org/w/api.php"

const (
	maxSentences = 4
	maxWords     = 60
	userAgent    = "waypoint/1.0 (learning roadmap resources)"
)

// WikipediaClient looks up short topic descriptions.
type WikipediaClient struct {
	endpoint string
	client   *http.Client
}

// NewWikipediaClient creates a client for endpoint, or the public API
// when endpoint is empty.
func NewWikipediaClient(endpoint string, timeout time.Duration) *WikipediaClient {
	if endpoint == "" {
		endpoint = DefaultWikipediaURL
	}
	return &WikipediaClient{
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
	}
}

type searchResponse struct {
	Query struct {
		Search []struct {
			PageID int `json:"pageid"`
		} `json:"search"`
	} `json:"query"`
}

type extractResponse struct {
	Query struct {
		Pages map[string]struct {
			Extract string `json:"extract"`
		} `json:"pages"`
	} `json:"query"`
}

// Describe returns up to four sentences (and at most sixty words) from
// the introduction of the best matching article. Programming context is
// added to the search unless the term already carries it.
func (w *WikipediaClient) Describe(ctx context.Context, topic string) (string, error) {
	term := SearchTerm(topic)

	var search searchResponse
	err := w.get(ctx, url.Values{
		"action":   {"query"},
		"format":   {"json"},
		"list":     {"search"},
		"srsearch": {term},
		"srlimit":  {"1"},
	}, &search)
	if err != nil {
		return "", fmt.Errorf("wikipedia search: %w", err)
	}
	if len(search.Query.Search) == 0 {
		return "", fmt.Errorf("wikipedia search: no results for %q", term)
	}
	pageID := strconv.Itoa(search.Query.Search[0].PageID)

	var extract extractResponse
	err = w.get(ctx, url.Values{
		"action":      {"query"},
		"format":      {"json"},
		"prop":        {"extracts"},
		"exintro":     {"1"},
		"explaintext": {"1"},
		"pageids":     {pageID},
	}, &extract)
	if err != nil {
		return "", fmt.Errorf("wikipedia extract: %w", err)
	}

	page, ok := extract.Query.Pages[pageID]
	if !ok {
		return "", fmt.Errorf("wikipedia extract: page %s missing", pageID)
	}
	return Summarize(page.Extract), nil
}

func (w *WikipediaClient) get(ctx context.Context, params url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, w.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := w.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// SearchTerm cleans a node title and adds " programming" unless it is
// already present or the term is html, css or php.
func SearchTerm(topic string) string {
	term := CleanTopic(topic)
	lower := strings.ToLower(term)
	switch {
	case strings.Contains(lower, "programming"), lower == "html", lower == "css", lower == "php":
		return term
	default:
		return term + " programming"
	}
}

// Summarize keeps whole sentences: at most four and at most sixty words.
func Summarize(extract string) string {
	var sentences []string
	for _, s := range strings.Split(extract, ".") {
		if s = strings.Join(strings.Fields(s), " "); s != "" {
			sentences = append(sentences, s+".")
		}
		if len(sentences) == maxSentences {
			break
		}
	}

	var (
		kept  []string
		words int
	)
	for _, s := range sentences {
		n := len(strings.Fields(s))
		if words+n > maxWords {
			break
		}
		kept = append(kept, s)
		words += n
	}
	return strings.Join(kept, " ")
}
