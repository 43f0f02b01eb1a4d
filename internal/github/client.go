// Package github mirrors JIRA comments onto GitHub issues.
package github

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/danielolaszy/jiramodel/internal/config"
	"github.com/danielolaszy/jiramodel/internal/logging"
	"github.com/danielolaszy/jiramodel/pkg/jiratime"
	"github.com/danielolaszy/jiramodel/pkg/models"
	"github.com/google/go-github/v41/github"
	"golang.org/x/oauth2"
)

var issueRefPattern = regexp.MustCompile(`^([\w.-]+)/([\w.-]+)#(\d+)$`)

// IssueRef identifies a GitHub issue.
type IssueRef struct {
	Owner  string
	Repo   string
	Number int
}

func (r IssueRef) String() string {
	return fmt.Sprintf("%s/%s#%d", r.Owner, r.Repo, r.Number)
}

// ParseIssueRef parses a reference of the form "owner/repo#123".
func ParseIssueRef(ref string) (IssueRef, error) {
	m := issueRefPattern.FindStringSubmatch(strings.TrimSpace(ref))
	if m == nil {
		return IssueRef{}, fmt.Errorf("invalid issue reference: %s, expected format: owner/repo#number", ref)
	}
	number, err := strconv.Atoi(m[3])
	if err != nil || number <= 0 {
		return IssueRef{}, fmt.Errorf("invalid issue number in %s", ref)
	}
	return IssueRef{Owner: m[1], Repo: m[2], Number: number}, nil
}

// Client encapsulates the GitHub API client.
type Client struct {
	client *github.Client
	codec  *jiratime.Codec
	logger *slog.Logger
}

// NewClient creates a GitHub API client authenticated with the configured token.
// GitHub Enterprise domains are addressed through their /api/v3/ endpoint.
func NewClient(ctx context.Context, cfg *config.Config, codec *jiratime.Codec) (*Client, error) {
	if err := config.ValidateGitHubConfig(cfg); err != nil {
		return nil, err
	}

	apiURL := "https://api.github.com/"
	if cfg.GitHub.Domain != "" && cfg.GitHub.Domain != "github.com" {
		apiURL = fmt.Sprintf("https://%s/api/v3/", cfg.GitHub.Domain)
	}

	logging.Debug("github configuration",
		"domain", cfg.GitHub.Domain,
		"api_url", apiURL,
		"token", logging.MaskSensitive(cfg.GitHub.Token))

	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.GitHub.Token})
	return newClient(oauth2.NewClient(ctx, ts), apiURL, codec)
}

func newClient(httpClient *http.Client, apiURL string, codec *jiratime.Codec) (*Client, error) {
	parsedURL, err := url.Parse(apiURL)
	if err != nil {
		return nil, fmt.Errorf("invalid github api url: %w", err)
	}
	if !strings.HasSuffix(parsedURL.Path, "/") {
		parsedURL.Path += "/"
	}
	if codec == nil {
		codec = jiratime.Default()
	}

	client := github.NewClient(httpClient)
	client.BaseURL = parsedURL
	client.UploadURL = parsedURL

	return &Client{
		client: client,
		codec:  codec,
		logger: logging.With("github"),
	}, nil
}

// FormatComment renders a JIRA comment as a GitHub comment body.
func FormatComment(codec *jiratime.Codec, issueKey string, comment models.Comment) (string, error) {
	created, err := codec.Encode(comment.Created)
	if err != nil {
		return "", fmt.Errorf("failed to format comment %d: %w", comment.ID, err)
	}

	author := comment.Author.DisplayName
	if author == "" {
		author = comment.Author.Name
	}

	return fmt.Sprintf("**%s** commented on %s at `%s`:\n\n%s\n\n----\nMirrored from JIRA comment %d",
		author, issueKey, created, comment.Body, comment.ID), nil
}

// MirrorComments posts each public comment to the GitHub issue and returns the number posted.
// Comments restricted by a visibility rule are skipped.
func (c *Client) MirrorComments(ctx context.Context, ref IssueRef, issueKey string, comments []models.Comment) (int, error) {
	posted := 0
	for _, comment := range comments {
		if comment.Visibility != nil {
			c.logger.Debug("skipping restricted comment",
				"issue", issueKey,
				"id", comment.ID,
				"visibility", comment.Visibility.Value)
			continue
		}

		body, err := FormatComment(c.codec, issueKey, comment)
		if err != nil {
			return posted, err
		}

		_, resp, err := c.client.Issues.CreateComment(ctx, ref.Owner, ref.Repo, ref.Number, &github.IssueComment{
			Body: github.String(body),
		})
		if err != nil {
			if resp != nil {
				return posted, fmt.Errorf("failed to mirror comment %d to %s: %w (status: %d)", comment.ID, ref, err, resp.StatusCode)
			}
			return posted, fmt.Errorf("failed to mirror comment %d to %s: %w", comment.ID, ref, err)
		}
		posted++
	}

	c.logger.Info("mirrored comments",
		"issue", issueKey,
		"github_issue", ref.String(),
		"posted", posted,
		"skipped", len(comments)-posted)
	return posted, nil
}
