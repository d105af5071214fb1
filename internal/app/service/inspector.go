package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/atinyakov/go-webpages/internal/models"
)

// maxPageBytes caps how much of a page body is parsed.
const maxPageBytes = 1 << 20

// ErrUnreachable is returned when the page could not be fetched.
var ErrUnreachable = errors.New("page unreachable")

// Inspector fetches a page and reads its title and description.
type Inspector struct {
	client *http.Client
	logger *zap.Logger
}

// NewInspector uses a client with a 5 second timeout when client is nil.
func NewInspector(client *http.Client, logger *zap.Logger) *Inspector {
	if client == nil {
		client = &http.Client{Timeout: 5 * time.Second}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Inspector{client: client, logger: logger}
}

// Inspect returns what could be read; a non-2xx answer is reported through
// StatusCode and Reachable rather than as an error.
func (i *Inspector) Inspect(ctx context.Context, rawURL string) (models.PageInfo, error) {
	info := models.PageInfo{URL: rawURL}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return info, err
	}
	req.Header.Set("Accept", "text/html")

	resp, err := i.client.Do(req)
	if err != nil {
		i.logger.Info("inspect failed", zap.String("url", rawURL), zap.Error(err))
		return info, fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	defer resp.Body.Close()

	info.StatusCode = resp.StatusCode
	info.Reachable = resp.StatusCode >= 200 && resp.StatusCode < 300
	if !info.Reachable {
		return info, nil
	}
	if ct := resp.Header.Get("Content-Type"); ct != "" && !strings.Contains(ct, "html") {
		return info, nil
	}

	doc, err := html.Parse(io.LimitReader(resp.Body, maxPageBytes))
	if err != nil {
		return info, err
	}
	info.Title, info.Description = readHead(doc)
	return info, nil
}

// readHead returns the first <title> and the meta description, falling back
// to og:description.
func readHead(doc *html.Node) (title, description string) {
	var og string
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.DataAtom {
			case atom.Script, atom.Style, atom.Noscript:
				return
			case atom.Title:
				if title == "" {
					title = strings.TrimSpace(textOf(n))
				}
			case atom.Meta:
				name := strings.ToLower(attr(n, "name"))
				prop := strings.ToLower(attr(n, "property"))
				switch {
				case name == "description" && description == "":
					description = strings.TrimSpace(attr(n, "content"))
				case prop == "og:description" && og == "":
					og = strings.TrimSpace(attr(n, "content"))
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	if description == "" {
		description = og
	}
	return title, description
}

func textOf(n *html.Node) string {
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
		}
	}
	return b.String()
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}
