// Package catalogapi fetches the public book catalog over HTTP.
package catalogapi

import (
	"context"
	"errors"
	"fmt"
	"time"

	"resty.dev/v3"

	"github.com/MrSnakeDoc/shelf/internal/domain"
)

// ErrEmptyCatalog is returned when the catalog answers with no usable books.
var ErrEmptyCatalog = errors.New("catalog returned no books")

// Client fetches the catalog document. Failures are returned as is, there is
// no retry.
type Client struct {
	httpClient *resty.Client
	url        string
}

func NewClient(url string, timeout time.Duration) *Client {
	client := resty.New()
	client.SetTimeout(timeout)
	client.SetHeader("Accept", "application/json")

	return &Client{httpClient: client, url: url}
}

func (c *Client) Close() error {
	return c.httpClient.Close()
}

// URL returns the catalog address.
func (c *Client) URL() string { return c.url }

// Fetch downloads and maps the catalog.
func (c *Client) Fetch(ctx context.Context) ([]domain.Book, error) {
	var works []Work
	response, err := c.httpClient.R().
		SetContext(ctx).
		SetResult(&works).
		Get(c.url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch catalog: %w", err)
	}
	if response.IsError() {
		return nil, fmt.Errorf("catalog response error %d: %s", response.StatusCode(), response.Status())
	}

	books := MapWorks(works)
	if len(books) == 0 {
		return nil, ErrEmptyCatalog
	}
	return books, nil
}
