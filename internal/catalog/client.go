package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const userAgent = "rickmorty-cli/1.0"

type Client struct {
	baseURL string
	http    *http.Client
	log     *zap.Logger
}

func NewClient(baseURL string, httpClient *http.Client, logger *zap.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
		log:     logger,
	}
}

// BaseURL returns the catalog root the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) FetchPage(ctx context.Context, page int) (Page, error) {
	if page < 1 {
		page = 1
	}

	q := make(url.Values)
	q.Set("page", strconv.Itoa(page))

	var out Page
	if err := c.getJSON(ctx, "fetch characters page "+strconv.Itoa(page), "/character?"+q.Encode(), &out); err != nil {
		return Page{}, err
	}
	if out.Results == nil {
		return Page{}, &ParseError{Op: "decode characters page", Err: errors.New("response has no results")}
	}
	out.Number = page
	return out, nil
}

func (c *Client) FetchEpisode(ctx context.Context, id string) (EpisodeSummary, error) {
	if !validNumericID(id) {
		return EpisodeSummary{}, &ParseError{Op: "fetch episode", Err: fmt.Errorf("invalid episode id %q", id)}
	}

	var ep Episode
	if err := c.getJSON(ctx, "fetch episode "+id, "/episode/"+id, &ep); err != nil {
		return EpisodeSummary{}, err
	}
	if ep.ID == 0 {
		return EpisodeSummary{}, &ParseError{Op: "decode episode", Err: errors.New("response has no id")}
	}
	return EpisodeSummary{
		Name:          ep.Name,
		EpisodeNumber: strconv.Itoa(ep.ID),
		AirDate:       ep.AirDate,
		Code:          ep.Code,
		URL:           ep.URL,
	}, nil
}

func (c *Client) getJSON(ctx context.Context, op, path string, out any) error {
	req, err := c.newRequest(ctx, http.MethodGet, path)
	if err != nil {
		return err
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn("catalog request failed",
			zap.String("path", path),
			zap.String("request_id", req.Header.Get("X-Request-ID")),
			zap.Duration("duration", time.Since(start)),
			zap.Error(err),
		)
		return networkError(op, err)
	}
	defer resp.Body.Close()

	c.log.Debug("catalog request",
		zap.String("path", path),
		zap.String("request_id", req.Header.Get("X-Request-ID")),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &APIError{Op: op, Status: resp.StatusCode, Message: apiErrorMessage(body)}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if isTransportError(err) {
			return networkError(op, err)
		}
		return &ParseError{Op: "decode " + strings.TrimPrefix(op, "fetch "), Err: err}
	}
	return nil
}

func (c *Client) newRequest(ctx context.Context, method, path string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("X-Request-ID", uuid.NewString())
	return req, nil
}

// apiErrorMessage prefers the API's {"error": "..."} body over raw text.
func apiErrorMessage(body []byte) string {
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Error != "" {
		return payload.Error
	}
	return strings.TrimSpace(string(body))
}
