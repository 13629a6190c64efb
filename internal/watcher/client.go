package watcher

import (
	"context"
	"fmt"

	"github.com/MrSnakeDoc/mcversion/internal/utils"
)

type JSONFetcher interface {
	GetJSON(ctx context.Context, url string, v any) error
}

// Client reads a running mcversion server over HTTP.
type Client struct {
	fetcher JSONFetcher
	baseURL string
}

func NewClient(fetcher JSONFetcher, baseURL string) *Client {
	return &Client{fetcher: fetcher, baseURL: baseURL}
}

func (c *Client) Versions(ctx context.Context) ([]string, error) {
	url, err := utils.JoinURL(c.baseURL, "versions")
	if err != nil {
		return nil, err
	}
	var ids []string
	if err := c.fetcher.GetJSON(ctx, url, &ids); err != nil {
		return nil, err
	}
	return ids, nil
}

func (c *Client) VersionType(ctx context.Context, id string) (string, error) {
	url, err := utils.JoinURL(c.baseURL, "version", id)
	if err != nil {
		return "", err
	}
	var detail struct {
		Type string `json:"type"`
	}
	if err := c.fetcher.GetJSON(ctx, url, &detail); err != nil {
		return "", fmt.Errorf("version %s: %w", id, err)
	}
	return detail.Type, nil
}
