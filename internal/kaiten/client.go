// Package kaiten implements the read side of the migration: a client for
// the Kaiten REST API with transparent pagination and rate-limit handling.
package kaiten

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/juju/clock"

	"github.com/BartekS5/kaiten2planka/pkg/logger"
	"github.com/BartekS5/kaiten2planka/pkg/models"
)

// Client talks to the Kaiten API. Fields are set once at construction and
// never mutated afterwards; reads are restartable because no cursor state
// lives on the client.
type Client struct {
	BaseURL string
	Token   string
	HTTP    *http.Client
	Clock   clock.Clock

	// PageSize is the per_page value for paginated collections.
	PageSize int
	// RateLimitThreshold: when the server reports fewer remaining
	// requests than this, the client waits for the reset time.
	RateLimitThreshold int
}

// NewClient creates a Kaiten client. The URL may be given with or without
// the /api/v1 suffix.
func NewClient(baseURL, token string, httpClient *http.Client) *Client {
	clean := strings.TrimRight(baseURL, "/")
	if !strings.HasSuffix(clean, "/api/v1") {
		clean += "/api/v1"
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		BaseURL:            clean,
		Token:              token,
		HTTP:               httpClient,
		Clock:              clock.WallClock,
		PageSize:           50,
		RateLimitThreshold: 10,
	}
}

// get performs one GET request and decodes the JSON body into out.
// Rate-limit headers on the response are honored before returning, so the
// next request a caller issues is already safe to send.
func (c *Client) get(ctx context.Context, path string, query url.Values, out interface{}) error {
	u := c.BaseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.Token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("kaiten: GET %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("kaiten: GET %s: HTTP %d - %s", path, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("kaiten: GET %s: decoding response: %w", path, err)
	}

	c.waitForRateLimit(ctx, resp)
	return nil
}

// waitForRateLimit sleeps until the server-reported reset time when the
// remaining request quota drops below the threshold.
func (c *Client) waitForRateLimit(ctx context.Context, resp *http.Response) {
	remaining := resp.Header.Get("X-RateLimit-Remaining")
	if remaining == "" {
		return
	}
	left, err := strconv.Atoi(remaining)
	if err != nil || left >= c.RateLimitThreshold {
		return
	}

	wait := time.Second
	if reset := resp.Header.Get("X-RateLimit-Reset"); reset != "" {
		if resetUnix, err := strconv.ParseInt(reset, 10, 64); err == nil {
			if until := time.Unix(resetUnix, 0).Sub(c.clock().Now()); until > wait {
				wait = until
			}
		}
	}

	logger.Warnf("kaiten: rate limit approaching (%d remaining), waiting %s", left, wait)
	select {
	case <-c.clock().After(wait):
	case <-ctx.Done():
	}
}

func (c *Client) clock() clock.Clock {
	if c.Clock != nil {
		return c.Clock
	}
	return clock.WallClock
}

// Spaces lists all Kaiten spaces.
func (c *Client) Spaces(ctx context.Context) ([]models.Space, error) {
	return listAll[models.Space](ctx, c, "/spaces", nil)
}

// BoardsForSpace lists the boards of one space in source order.
func (c *Client) BoardsForSpace(ctx context.Context, spaceID int) ([]models.Board, error) {
	return listAll[models.Board](ctx, c, fmt.Sprintf("/spaces/%d/boards", spaceID), nil)
}

// ColumnsForBoard lists the columns of one board in source order.
func (c *Client) ColumnsForBoard(ctx context.Context, boardID int) ([]models.Column, error) {
	return listAll[models.Column](ctx, c, fmt.Sprintf("/boards/%d/columns", boardID), nil)
}

// CardsForBoard lists the cards of one board.
func (c *Client) CardsForBoard(ctx context.Context, boardID int) ([]models.Card, error) {
	query := url.Values{"board_id": {strconv.Itoa(boardID)}}
	return listAll[models.Card](ctx, c, "/cards", query)
}

// Card fetches full card detail; the board listing omits descriptions.
func (c *Client) Card(ctx context.Context, cardID int) (*models.Card, error) {
	var card models.Card
	if err := c.get(ctx, fmt.Sprintf("/cards/%d", cardID), nil, &card); err != nil {
		return nil, err
	}
	return &card, nil
}

// CardChecklists lists checklist summaries for a card. Items may be
// missing here; fetch Checklist for the full detail.
func (c *Client) CardChecklists(ctx context.Context, cardID int) ([]models.Checklist, error) {
	var lists []models.Checklist
	err := c.get(ctx, fmt.Sprintf("/cards/%d/checklists", cardID), nil, &lists)
	return lists, err
}

// Checklist fetches one checklist with its items.
func (c *Client) Checklist(ctx context.Context, cardID, checklistID int) (*models.Checklist, error) {
	var list models.Checklist
	if err := c.get(ctx, fmt.Sprintf("/cards/%d/checklists/%d", cardID, checklistID), nil, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// CardAttachments lists file attachments of a card.
func (c *Client) CardAttachments(ctx context.Context, cardID int) ([]models.Attachment, error) {
	var files []models.Attachment
	err := c.get(ctx, fmt.Sprintf("/cards/%d/files", cardID), nil, &files)
	return files, err
}

// CardComments lists comments of a card.
func (c *Client) CardComments(ctx context.Context, cardID int) ([]models.Comment, error) {
	var comments []models.Comment
	err := c.get(ctx, fmt.Sprintf("/cards/%d/comments", cardID), nil, &comments)
	return comments, err
}

// CardExternalLinks lists external links of a card.
func (c *Client) CardExternalLinks(ctx context.Context, cardID int) ([]models.ExternalLink, error) {
	var links []models.ExternalLink
	err := c.get(ctx, fmt.Sprintf("/cards/%d/external-links", cardID), nil, &links)
	return links, err
}

// Users lists all Kaiten users.
func (c *Client) Users(ctx context.Context) ([]models.User, error) {
	return listAll[models.User](ctx, c, "/users", nil)
}

// DownloadAttachment streams an attachment file. The caller owns the
// returned body. The second value is the declared Content-Length, or -1
// when the server did not report one.
func (c *Client) DownloadAttachment(ctx context.Context, fileURL string) (io.ReadCloser, int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fileURL, nil)
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("Authorization", "Bearer "+c.Token)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("kaiten: downloading %s: %w", fileURL, err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, 0, fmt.Errorf("kaiten: downloading %s: HTTP %d", fileURL, resp.StatusCode)
	}
	return resp.Body, resp.ContentLength, nil
}
