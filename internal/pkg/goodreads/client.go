// Package goodreads fetches the external rating aggregate for one ISBN.
// A single synchronous call, bounded by the client timeout; every failure
// degrades to "no data" at the caller, never a request failure.
package goodreads

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/dvanenk/bookery/internal/app/models"
	"github.com/dvanenk/bookery/internal/pkg/config"
)

type Client struct {
	httpClient *http.Client
	baseURL    string
	key        string
	logger     *zap.Logger
}

func NewClient(cfg config.GoodreadsConfig, logger *zap.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		key:        cfg.Key,
		logger:     logger,
	}
}

type reviewCountsResponse struct {
	Books []struct {
		AverageRating string `json:"average_rating"`
		RatingsCount  int    `json:"ratings_count"`
	} `json:"books"`
}

// ByISBN looks up the rating aggregate for one ISBN. A nil rating with a nil
// error means "no data": unknown book, zero ratings, or no API key
// configured. Transport and payload failures come back as errors for the
// caller to log and then treat as no data.
func (c *Client) ByISBN(ctx context.Context, isbn string) (*models.Rating, error) {
	if c.key == "" {
		return nil, nil
	}

	u := fmt.Sprintf("%s/book/review_counts.json?key=%s&isbns=%s",
		c.baseURL, url.QueryEscape(c.key), url.QueryEscape(isbn))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, errors.Wrap(err, "building rating request")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "rating lookup")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("rating lookup returned status %d", resp.StatusCode)
	}

	var payload reviewCountsResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, errors.Wrap(err, "decoding rating payload")
	}
	if len(payload.Books) == 0 {
		return nil, nil
	}

	b := payload.Books[0]
	if b.AverageRating == "0.0" || b.RatingsCount == 0 {
		return nil, nil
	}
	return &models.Rating{Average: b.AverageRating, Count: b.RatingsCount}, nil
}
