package codeforces

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/imunderthetree/Codeforces-Dashboard/pkg/httputil"
	"github.com/imunderthetree/Codeforces-Dashboard/pkg/logger"
)

// Fetch failures are classified so the layer above can downgrade them
// uniformly: the analytics never see these errors, only empty data.
var (
	// ErrUpstream marks a response whose status field was not "OK".
	ErrUpstream = errors.New("codeforces: upstream error")

	// ErrMalformed marks a response that could not be decoded.
	ErrMalformed = errors.New("codeforces: malformed response")

	// ErrNotFound marks an empty result for an existing query (unknown handle).
	ErrNotFound = errors.New("codeforces: not found")
)

// Client handles communication with the Codeforces REST API.
type Client struct {
	httpClient *httputil.Client
	logger     *logger.Logger
	baseURL    string
}

// NewClient creates a new Codeforces API client.
func NewClient(baseURL string, httpClient *httputil.Client, log *logger.Logger) *Client {
	return &Client{
		httpClient: httpClient,
		logger:     log,
		baseURL:    baseURL,
	}
}

// apiEnvelope is the wrapper every endpoint returns.
type apiEnvelope struct {
	Status  string          `json:"status"`
	Comment string          `json:"comment"`
	Result  json.RawMessage `json:"result"`
}

// getResult performs a GET and unwraps the response envelope into dest.
func (c *Client) getResult(ctx context.Context, path string, params url.Values, dest interface{}) error {
	fullURL := c.baseURL + path
	if len(params) > 0 {
		fullURL += "?" + params.Encode()
	}

	resp, err := c.httpClient.Get(ctx, fullURL)
	if err != nil {
		return fmt.Errorf("request %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: %s returned HTTP %d", ErrUpstream, path, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read %s response: %w", path, err)
	}

	var envelope apiEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrMalformed, path, err)
	}

	if envelope.Status != "OK" {
		c.logger.WithFields(map[string]interface{}{
			"path":    path,
			"status":  envelope.Status,
			"comment": envelope.Comment,
		}).Warn("Codeforces API returned non-OK status")
		return fmt.Errorf("%w: %s: status=%q comment=%q", ErrUpstream, path, envelope.Status, envelope.Comment)
	}

	if err := json.Unmarshal(envelope.Result, dest); err != nil {
		return fmt.Errorf("%w: %s result: %v", ErrMalformed, path, err)
	}

	return nil
}

// UserInfo fetches a user's public profile.
// GET /user.info?handles={handle}
func (c *Client) UserInfo(ctx context.Context, handle string) (*UserProfile, error) {
	params := url.Values{}
	params.Set("handles", handle)

	var users []UserProfile
	if err := c.getResult(ctx, "/user.info", params, &users); err != nil {
		return nil, err
	}

	if len(users) == 0 {
		return nil, fmt.Errorf("%w: user %q", ErrNotFound, handle)
	}

	return &users[0], nil
}

// UserSubmissions fetches the user's most recent submissions.
// GET /user.status?handle={handle}&from=1&count={count}
func (c *Client) UserSubmissions(ctx context.Context, handle string, count int) ([]Submission, error) {
	params := url.Values{}
	params.Set("handle", handle)
	params.Set("from", "1")
	params.Set("count", strconv.Itoa(count))

	var dtos []submissionDTO
	if err := c.getResult(ctx, "/user.status", params, &dtos); err != nil {
		return nil, err
	}

	subs := make([]Submission, 0, len(dtos))
	for _, dto := range dtos {
		subs = append(subs, dto.flatten())
	}

	return subs, nil
}

// RatingHistory fetches the user's contest rating history, in the provider's
// chronological order.
// GET /user.rating?handle={handle}
func (c *Client) RatingHistory(ctx context.Context, handle string) ([]RatingPoint, error) {
	params := url.Values{}
	params.Set("handle", handle)

	var points []RatingPoint
	if err := c.getResult(ctx, "/user.rating", params, &points); err != nil {
		return nil, err
	}

	return points, nil
}

// Problemset fetches the full problem catalog.
// GET /problemset.problems
func (c *Client) Problemset(ctx context.Context) ([]Problem, error) {
	var result struct {
		Problems []Problem `json:"problems"`
	}
	if err := c.getResult(ctx, "/problemset.problems", nil, &result); err != nil {
		return nil, err
	}

	return result.Problems, nil
}
