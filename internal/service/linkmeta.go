package service

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/profkom/unionbot/internal/config"
)

// PageTitles fetches a web page and extracts its <title> element. Used to
// prefill a link description when the operator submits a bare URL.
type PageTitles struct {
	client *http.Client
}

func NewPageTitles() *PageTitles {
	return &PageTitles{
		client: &http.Client{Timeout: config.LinkTitleFetchTimeout},
	}
}

func (p *PageTitles) Title(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch %s: status %d", url, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", fmt.Errorf("parse %s: %w", url, err)
	}

	title := strings.TrimSpace(doc.Find("title").First().Text())
	if title == "" {
		return "", fmt.Errorf("no title at %s", url)
	}
	if len([]rune(title)) > config.MaxLinkDescriptionLen {
		title = string([]rune(title)[:config.MaxLinkDescriptionLen])
	}
	return title, nil
}
