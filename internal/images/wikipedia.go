// Package images resolves a representative photo for a plant via the
// Wikipedia APIs, with a deterministic placeholder when nothing is found.
package images

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Info is what the UI needs to show a plant photo with attribution.
type Info struct {
	URL     string `json:"url"`
	Caption string `json:"caption"`
	PageURL string `json:"page_url,omitempty"`
}

// Client queries the Wikipedia REST and action APIs.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *slog.Logger
}

func NewClient(log *slog.Logger) *Client {
	return &Client{
		baseURL: "https://en.wikipedia.org",
		httpClient: &http.Client{
			Timeout: 6 * time.Second,
		},
		log: log,
	}
}

// scientificNames maps common names whose Wikipedia article lives under the
// scientific name.
var scientificNames = map[string]string{
	"tulip tree":    "Liriodendron tulipifera",
	"yellow poplar": "Liriodendron tulipifera",
	"snake plant":   "Dracaena trifasciata",
	"spider plant":  "Chlorophytum comosum",
	"pothos":        "Epipremnum aureum",
	"money plant":   "Epipremnum aureum",
	"peace lily":    "Spathiphyllum",
	"rubber plant":  "Ficus elastica",
	"rubber tree":   "Ficus elastica",
	"zz plant":      "Zamioculcas",
}

// NormalizeTitle maps a common plant name to its Wikipedia article title.
func NormalizeTitle(name string) string {
	if sci, ok := scientificNames[strings.ToLower(strings.TrimSpace(name))]; ok {
		return sci
	}
	return strings.TrimSpace(name)
}

// Resolve finds an image for the plant. It never fails: when the summary
// lookup, the search fallback, and the og:image scrape all miss, it returns
// a seeded placeholder so the caller always has something to render.
func (c *Client) Resolve(ctx context.Context, plantName string) Info {
	title := NormalizeTitle(plantName)

	if info, ok := c.summary(ctx, title); ok {
		return info
	}
	if hit, ok := c.search(ctx, title); ok {
		if info, ok := c.summary(ctx, hit); ok {
			return info
		}
	}

	seed := url.QueryEscape(strings.ToLower(plantName))
	return Info{
		URL:     fmt.Sprintf("https://picsum.photos/seed/%s/800/600", seed),
		Caption: "Placeholder image",
	}
}

type summaryResponse struct {
	Title     string `json:"title"`
	Thumbnail struct {
		Source string `json:"source"`
	} `json:"thumbnail"`
	OriginalImage struct {
		Source string `json:"source"`
	} `json:"originalimage"`
	ContentURLs struct {
		Desktop struct {
			Page string `json:"page"`
		} `json:"desktop"`
	} `json:"content_urls"`
}

// summary fetches the REST page summary and extracts an image. When the
// summary has no image but does name a page, the page HTML is scraped for
// its og:image as a last attempt.
func (c *Client) summary(ctx context.Context, title string) (Info, bool) {
	var sum summaryResponse
	u := c.baseURL + "/api/rest_v1/page/summary/" + url.PathEscape(title)
	if err := c.getJSON(ctx, u, &sum); err != nil {
		c.log.Debug("wikipedia summary failed", "title", title, "error", err)
		return Info{}, false
	}

	img := sum.Thumbnail.Source
	if img == "" {
		img = sum.OriginalImage.Source
	}
	page := sum.ContentURLs.Desktop.Page

	if img == "" && page != "" {
		img = c.ogImage(ctx, page)
	}
	if img == "" {
		return Info{}, false
	}
	return Info{
		URL:     img,
		Caption: "Wikipedia: " + sum.Title,
		PageURL: page,
	}, true
}

type searchResponse struct {
	Query struct {
		Search []struct {
			Title string `json:"title"`
		} `json:"search"`
	} `json:"query"`
}

// search runs a full-text search restricted to plant categories and returns
// the best article title.
func (c *Client) search(ctx context.Context, query string) (string, bool) {
	params := url.Values{
		"action":   {"query"},
		"list":     {"search"},
		"srsearch": {query + ` incategory:"Plants" OR incategory:"Flora"`},
		"utf8":     {"1"},
		"format":   {"json"},
		"srlimit":  {"5"},
	}
	var res searchResponse
	if err := c.getJSON(ctx, c.baseURL+"/w/api.php?"+params.Encode(), &res); err != nil {
		c.log.Debug("wikipedia search failed", "query", query, "error", err)
		return "", false
	}
	if len(res.Query.Search) == 0 {
		return "", false
	}
	return res.Query.Search[0].Title, true
}

func (c *Client) getJSON(ctx context.Context, u string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("wikipedia api: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("wikipedia api status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// Close releases any idle connections.
func (c *Client) Close() {
	c.httpClient.CloseIdleConnections()
}
