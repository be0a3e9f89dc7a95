// Package webfetch is the shared HTTP client for all outbound source
// fetches: fixed timeout, rotating user agents, bounded response bodies.
package webfetch

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const (
	// DefaultTimeout bounds every external fetch; a timed-out fetch is a
	// source-level failure, never a pipeline-level one.
	DefaultTimeout = 15 * time.Second

	defaultBodyByteLimit = 2 * 1024 * 1024
)

type Client struct {
	http          *http.Client
	userAgents    []string
	bodyByteLimit int64
}

func NewClient(timeout time.Duration, userAgents []string) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		http:          &http.Client{Timeout: timeout},
		userAgents:    userAgents,
		bodyByteLimit: defaultBodyByteLimit,
	}
}

// Get fetches a URL and returns the raw body. Non-2xx statuses are errors.
func (c *Client) Get(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	return c.do(req)
}

// PostForm submits form values and returns the raw body.
func (c *Client) PostForm(ctx context.Context, rawURL string, form url.Values) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, rawURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return c.do(req)
}

// GetDocument fetches a URL and parses the body into a queryable document.
func (c *Client) GetDocument(ctx context.Context, rawURL string) (*goquery.Document, error) {
	body, err := c.Get(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	return parseDocument(body)
}

// PostFormDocument submits form values and parses the response body.
func (c *Client) PostFormDocument(ctx context.Context, rawURL string, form url.Values) (*goquery.Document, error) {
	body, err := c.PostForm(ctx, rawURL, form)
	if err != nil {
		return nil, err
	}
	return parseDocument(body)
}

func (c *Client) do(req *http.Request) ([]byte, error) {
	req.Header.Set("User-Agent", c.userAgent())
	req.Header.Set("Accept", "text/html,application/xhtml+xml,text/plain;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.8")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", req.URL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("fetch %s: status %d", req.URL, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.bodyByteLimit))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return body, nil
}

func (c *Client) userAgent() string {
	if len(c.userAgents) == 0 {
		return "founderlens/1.0"
	}
	return c.userAgents[rand.Intn(len(c.userAgents))]
}

func parseDocument(body []byte) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	return doc, nil
}
