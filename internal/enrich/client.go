// Package enrich performs the optional one-shot user statistics fetch.
// Its result is only logged; nothing here reads or writes the store.
package enrich

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	serrors "github.com/idilsaglam/sorter/internal/errors"
)

// Options configures a Client.
type Options struct {
	URL        string
	GroupBy    string
	ColorField string
	Timeout    time.Duration
	Token      string
	HTTPClient *http.Client
}

// Client fetches and summarizes the remote user listing.
type Client struct {
	opts Options
	http *http.Client
}

// NewClient creates a client. HTTPClient defaults to one with opts.Timeout.
func NewClient(opts Options) *Client {
	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: opts.Timeout}
	}
	return &Client{opts: opts, http: hc}
}

type listing struct {
	Users []User `json:"users"`
}

// Fetch performs a single GET and decodes the users array.
func (c *Client) Fetch(ctx context.Context) ([]User, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.opts.URL, nil)
	if err != nil {
		return nil, serrors.FetchFailed(c.opts.URL, err)
	}
	req.Header.Set("Accept", "application/json")
	if tok := stripBearer(strings.TrimSpace(c.opts.Token)); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, serrors.FetchFailed(c.opts.URL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, serrors.BadStatus(c.opts.URL, resp.StatusCode)
	}

	var body listing
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, serrors.FetchFailed(c.opts.URL, fmt.Errorf("decode: %w", err))
	}
	return body.Users, nil
}

// Stats fetches and summarizes in one call.
func (c *Client) Stats(ctx context.Context) ([]GroupStats, error) {
	users, err := c.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	return Summarize(GroupBy(users, c.opts.GroupBy), c.opts.ColorField), nil
}

// Run is the fire-and-forget entry point: it fetches, summarizes and logs.
// Failures are logged at debug level and swallowed.
func (c *Client) Run(ctx context.Context, log *zap.Logger) {
	if log == nil {
		log = zap.NewNop()
	}
	stats, err := c.Stats(ctx)
	if err != nil {
		log.Debug("enrichment skipped", zap.Error(err))
		return
	}
	for _, st := range stats {
		log.Info("user group",
			zap.String("group", st.Group),
			zap.Int("male", st.Male),
			zap.Int("female", st.Female),
			zap.String("age_range", st.AgeRange),
			zap.Any("colors", st.Colors),
		)
	}
}

func stripBearer(s string) string {
	if strings.HasPrefix(strings.ToLower(s), "bearer ") {
		return strings.TrimSpace(s[7:])
	}
	return s
}
