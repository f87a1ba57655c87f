package images

import (
	"context"
	"io"
	"net/http"

	"golang.org/x/net/html"
)

// ogImage fetches an article page and pulls the og:image meta tag out of its
// head. Returns "" on any failure.
func (c *Client) ogImage(ctx context.Context, pageURL string) string {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return ""
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Debug("og:image fetch failed", "page", pageURL, "error", err)
		return ""
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return ""
	}

	doc, err := html.Parse(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return ""
	}
	return findOGImage(doc)
}

// findOGImage walks the parsed HTML for <meta property="og:image" content=...>.
func findOGImage(n *html.Node) string {
	if n.Type == html.ElementNode && n.Data == "meta" {
		var property, content string
		for _, attr := range n.Attr {
			switch attr.Key {
			case "property":
				property = attr.Val
			case "content":
				content = attr.Val
			}
		}
		if property == "og:image" && content != "" {
			return content
		}
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if found := findOGImage(child); found != "" {
			return found
		}
	}
	return ""
}
