// Package client talks to a running shelf server over its JSON API.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"resty.dev/v3"

	"github.com/MrSnakeDoc/shelf/internal/catalog"
	"github.com/MrSnakeDoc/shelf/internal/domain"
	"github.com/MrSnakeDoc/shelf/internal/render"
)

// ErrNotFound is wrapped by errors for unknown books and columns.
var ErrNotFound = errors.New("not found")

// APIError is a non-2xx answer from the server.
type APIError struct {
	Status   int
	Message  string
	Problems []string
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.Status)
	}
	if len(e.Problems) > 0 {
		msg += ": " + strings.Join(e.Problems, "; ")
	}
	return fmt.Sprintf("shelf: %d %s", e.Status, msg)
}

func (e *APIError) Unwrap() error {
	if e.Status == http.StatusNotFound {
		return ErrNotFound
	}
	return nil
}

type Client struct {
	http *resty.Client
}

func New(baseURL string, timeout time.Duration) *Client {
	c := resty.New()
	c.SetBaseURL(strings.TrimRight(baseURL, "/"))
	c.SetTimeout(timeout)
	c.SetHeader("Accept", "application/json")
	c.SetHeader("Content-Type", "application/json")
	return &Client{http: c}
}

func (c *Client) Close() error { return c.http.Close() }

// Board returns the current columns.
func (c *Client) Board(ctx context.Context) (render.View, error) {
	var v render.View
	err := c.do(ctx, http.MethodGet, "/api/columns", nil, &v)
	return v, err
}

// Move files the book with the given id, known to the server, in column.
func (c *Client) Move(ctx context.Context, column domain.ColumnID, id string) (render.View, error) {
	var v render.View
	err := c.do(ctx, http.MethodPost, columnPath(column), map[string]string{"id": id}, &v)
	return v, err
}

// MoveBook files a full book in column.
func (c *Client) MoveBook(ctx context.Context, column domain.ColumnID, book domain.Book) (render.View, error) {
	var v render.View
	err := c.do(ctx, http.MethodPost, columnPath(column), book, &v)
	return v, err
}

// Unfile takes a book off the board.
func (c *Client) Unfile(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/columns/books/"+url.PathEscape(id), nil, nil)
}

// Create adds a custom book; the server files it in the to-read column.
func (c *Client) Create(ctx context.Context, draft domain.BookDraft) (domain.Book, error) {
	var b domain.Book
	err := c.do(ctx, http.MethodPost, "/api/books", draft, &b)
	return b, err
}

// Delete removes a book permanently.
func (c *Client) Delete(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/books/"+url.PathEscape(id), nil, nil)
}

// Search lists unfiled books matching term.
func (c *Client) Search(ctx context.Context, term string) (catalog.Result, error) {
	var res catalog.Result
	err := c.do(ctx, http.MethodGet, "/api/catalog?q="+url.QueryEscape(term), nil, &res)
	return res, err
}

func (c *Client) Feedback(ctx context.Context, id string) (domain.Feedback, error) {
	var fb domain.Feedback
	err := c.do(ctx, http.MethodGet, feedbackPath(id), nil, &fb)
	return fb, err
}

func (c *Client) Rate(ctx context.Context, id string, fb domain.Feedback) (domain.Feedback, error) {
	var out domain.Feedback
	err := c.do(ctx, http.MethodPut, feedbackPath(id), fb, &out)
	return out, err
}

// Notifications returns up to limit recent notifications, oldest first.
func (c *Client) Notifications(ctx context.Context, limit int) ([]domain.Notification, error) {
	var out []domain.Notification
	err := c.do(ctx, http.MethodGet, "/api/notifications?limit="+strconv.Itoa(limit), nil, &out)
	return out, err
}

// Reload asks the server to reload the catalog.
func (c *Client) Reload(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/reload", nil, nil)
}

func columnPath(column domain.ColumnID) string {
	return "/api/columns/" + url.PathEscape(column.String()) + "/books"
}

func feedbackPath(id string) string {
	return "/api/books/" + url.PathEscape(id) + "/feedback"
}

func (c *Client) do(ctx context.Context, method, path string, body, result any) error {
	req := c.http.R().SetContext(ctx)
	if body != nil {
		req.SetBody(body)
	}
	if result != nil {
		req.SetResult(result)
	}

	response, err := req.Execute(method, path)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	if response.IsError() {
		apiErr := &APIError{Status: response.StatusCode()}
		var payload struct {
			Error    string   `json:"error"`
			Problems []string `json:"problems"`
		}
		if json.Unmarshal([]byte(response.String()), &payload) == nil {
			apiErr.Message = payload.Error
			apiErr.Problems = payload.Problems
		}
		return apiErr
	}
	return nil
}
