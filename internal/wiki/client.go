package wiki

import (
	"context"
	"fmt"

	"github.com/MrSnakeDoc/mcversion/internal/logger"
	"github.com/MrSnakeDoc/mcversion/internal/models"
)

type StringFetcher interface {
	GetString(ctx context.Context, url string) (string, error)
}

// Client fetches and scrapes wiki pages. Lookup never returns an error.
type Client struct {
	fetcher     StringFetcher
	urlTemplate string
}

func NewClient(fetcher StringFetcher, urlTemplate string) *Client {
	return &Client{fetcher: fetcher, urlTemplate: urlTemplate}
}

// URL builds the page address for a version id.
func (c *Client) URL(versionID string) string {
	return fmt.Sprintf(c.urlTemplate, versionID)
}

func (c *Client) Lookup(ctx context.Context, versionID string) models.ReferencePageInfo {
	url := c.URL(versionID)

	html, err := c.fetcher.GetString(ctx, url)
	if err != nil {
		logger.Warn("Error scraping Minecraft Wiki for %s: %v", versionID, err)
		return Degraded()
	}

	ex := Scan(html)
	if ex.Failed() {
		logger.Warn("Error scraping Minecraft Wiki for %s: %v", versionID, ex.Err())
		return Degraded()
	}

	logger.Debug("wiki %s: title %s, resource pack format %s", versionID, ex.Title.State, ex.ResourcePack.State)
	return ex.Flatten()
}
