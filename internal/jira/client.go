// Package jira fetches and creates issue comments through the JIRA REST API.
package jira

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	jira "github.com/andygrunwald/go-jira"
	"github.com/danielolaszy/jiramodel/internal/config"
	"github.com/danielolaszy/jiramodel/internal/logging"
	"github.com/danielolaszy/jiramodel/pkg/jiratime"
	"github.com/danielolaszy/jiramodel/pkg/models"
)

// pageSize is the number of comments requested per call.
const pageSize = 100

// Client handles interactions with the JIRA API.
type Client struct {
	client *jira.Client
	codec  *jiratime.Codec
	logger *slog.Logger
}

// NewClient creates a JIRA client authenticated with basic auth from cfg.
// Comment timestamps are decoded with codec.
func NewClient(cfg *config.Config, codec *jiratime.Codec) (*Client, error) {
	if err := config.ValidateJiraConfig(cfg); err != nil {
		return nil, err
	}

	tp := jira.BasicAuthTransport{
		Username: cfg.Jira.Username,
		Password: cfg.Jira.Token,
	}

	logging.Debug("jira configuration",
		"url", cfg.Jira.URL,
		"username", cfg.Jira.Username,
		"token", logging.MaskSensitive(cfg.Jira.Token))

	return newClient(tp.Client(), cfg.Jira.URL, codec)
}

func newClient(httpClient *http.Client, baseURL string, codec *jiratime.Codec) (*Client, error) {
	client, err := jira.NewClient(httpClient, baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create jira client: %w", err)
	}
	if codec == nil {
		codec = jiratime.Default()
	}

	return &Client{
		client: client,
		codec:  codec,
		logger: logging.With("jira"),
	}, nil
}

// Comments returns every comment on the issue, following pagination.
func (c *Client) Comments(ctx context.Context, issueKey string) ([]models.Comment, error) {
	var comments []models.Comment
	for startAt := 0; ; {
		endpoint := fmt.Sprintf("rest/api/2/issue/%s/comment?startAt=%d&maxResults=%d",
			url.PathEscape(issueKey), startAt, pageSize)

		var raw json.RawMessage
		if err := c.do(ctx, http.MethodGet, endpoint, nil, &raw); err != nil {
			return nil, fmt.Errorf("failed to fetch comments for %s: %w", issueKey, err)
		}

		page, err := models.DecodeCommentPage(raw, c.codec)
		if err != nil {
			return nil, fmt.Errorf("failed to decode comments for %s: %w", issueKey, err)
		}
		comments = append(comments, page.Comments...)

		c.logger.Debug("fetched comment page",
			"issue", issueKey,
			"start_at", page.StartAt,
			"count", len(page.Comments),
			"total", page.Total)

		startAt = page.StartAt + len(page.Comments)
		if len(page.Comments) == 0 || startAt >= page.Total {
			break
		}
	}

	c.logger.Info("fetched comments", "issue", issueKey, "count", len(comments))
	return comments, nil
}

// AddComment posts a comment on the issue and returns it as stored by JIRA.
func (c *Client) AddComment(ctx context.Context, issueKey, body string, visibility *models.Visibility) (*models.Comment, error) {
	payload := struct {
		Body       string             `json:"body"`
		Visibility *models.Visibility `json:"visibility,omitempty"`
	}{
		Body:       body,
		Visibility: visibility,
	}

	endpoint := fmt.Sprintf("rest/api/2/issue/%s/comment", url.PathEscape(issueKey))
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodPost, endpoint, payload, &raw); err != nil {
		return nil, fmt.Errorf("failed to add comment to %s: %w", issueKey, err)
	}

	comment, err := models.DecodeComment(raw, c.codec)
	if err != nil {
		return nil, fmt.Errorf("failed to decode created comment on %s: %w", issueKey, err)
	}

	c.logger.Info("added comment", "issue", issueKey, "id", comment.ID)
	return comment, nil
}

func (c *Client) do(ctx context.Context, method, endpoint string, body, v interface{}) error {
	req, err := c.client.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return err
	}

	resp, err := c.client.Do(req, v)
	if err != nil {
		if resp != nil {
			return fmt.Errorf("%w (status: %d)", err, resp.StatusCode)
		}
		return err
	}
	return nil
}
