package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/danielolaszy/jiramodel/internal/github"
	"github.com/danielolaszy/jiramodel/internal/jira"
	"github.com/danielolaszy/jiramodel/internal/logging"
	"github.com/danielolaszy/jiramodel/pkg/jiratime"
	"github.com/danielolaszy/jiramodel/pkg/models"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var commentsCmd = &cobra.Command{
	Use:   "comments",
	Short: "Work with JIRA issue comments",
}

// commentsListCmd fetches the comments of one or more issues.
var commentsListCmd = &cobra.Command{
	Use:   "list <ISSUE-KEY>...",
	Short: "List the comments of JIRA issues",
	Long: `List the comments of one or more JIRA issues.

Issues are fetched concurrently. With --json the comments are printed as JSON
using the JIRA wire format for timestamps. With --mirror the public comments are
posted to the given GitHub issue.

Example:
  jiramodel comments list PROJ-1 PROJ-2 --mirror org/repo#12`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, err := cmd.Flags().GetBool("json")
		if err != nil {
			return err
		}
		mirror, err := cmd.Flags().GetString("mirror")
		if err != nil {
			return err
		}
		concurrency, err := cmd.Flags().GetInt("concurrency")
		if err != nil {
			return err
		}

		cfg, codec, err := loadCodec(cmd)
		if err != nil {
			return err
		}

		jiraClient, err := jira.NewClient(cfg, codec)
		if err != nil {
			return fmt.Errorf("failed to initialize jira client: %w", err)
		}

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		results, err := fetchComments(ctx, jiraClient, args, concurrency)
		if err != nil {
			return err
		}

		if asJSON {
			err = writeCommentsJSON(cmd.OutOrStdout(), codec, results)
		} else {
			err = writeCommentsTable(cmd.OutOrStdout(), codec, results)
		}
		if err != nil {
			return err
		}

		if mirror == "" {
			return nil
		}

		ref, err := github.ParseIssueRef(mirror)
		if err != nil {
			return err
		}
		githubClient, err := github.NewClient(ctx, cfg, codec)
		if err != nil {
			return fmt.Errorf("failed to initialize github client: %w", err)
		}
		return mirrorComments(ctx, githubClient, ref, results)
	},
}

// commentsAddCmd creates a comment on an issue.
var commentsAddCmd = &cobra.Command{
	Use:   "add <ISSUE-KEY>",
	Short: "Add a comment to a JIRA issue",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		body, err := cmd.Flags().GetString("body")
		if err != nil {
			return err
		}
		if body == "" {
			return fmt.Errorf("body flag is required")
		}
		role, err := cmd.Flags().GetString("role")
		if err != nil {
			return err
		}

		cfg, codec, err := loadCodec(cmd)
		if err != nil {
			return err
		}
		jiraClient, err := jira.NewClient(cfg, codec)
		if err != nil {
			return fmt.Errorf("failed to initialize jira client: %w", err)
		}

		var visibility *models.Visibility
		if role != "" {
			visibility = &models.Visibility{Type: "role", Value: role}
		}

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		comment, err := jiraClient.AddComment(ctx, args[0], body, visibility)
		if err != nil {
			return err
		}

		created, err := codec.Encode(comment.Created)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d\t%s\n", args[0], comment.ID, created)
		return nil
	},
}

func init() {
	commentsListCmd.Flags().Bool("json", false, "Print comments as JSON")
	commentsListCmd.Flags().String("mirror", "", "GitHub issue to mirror comments to (owner/repo#number)")
	commentsListCmd.Flags().Int("concurrency", 4, "Number of issues fetched at once")

	commentsAddCmd.Flags().String("body", "", "Comment text")
	commentsAddCmd.Flags().String("role", "", "Restrict the comment to a project role")

	commentsCmd.AddCommand(commentsListCmd)
	commentsCmd.AddCommand(commentsAddCmd)
}

// commentSource is the part of the JIRA client used to fetch comments.
type commentSource interface {
	Comments(ctx context.Context, issueKey string) ([]models.Comment, error)
}

// issueComments holds the comments fetched for one issue.
type issueComments struct {
	IssueKey string
	Comments []models.Comment
}

// fetchComments fetches the comments of every issue, at most limit at a time.
// Results keep the order of issueKeys.
func fetchComments(ctx context.Context, src commentSource, issueKeys []string, limit int) ([]issueComments, error) {
	results := make([]issueComments, len(issueKeys))

	g, gCtx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i, key := range issueKeys {
		g.Go(func() error {
			comments, err := src.Comments(gCtx, key)
			if err != nil {
				return err
			}
			results[i] = issueComments{IssueKey: key, Comments: comments}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		logging.Error("failed to fetch comments", "issues", issueKeys, "error", err)
		return nil, err
	}
	return results, nil
}

// commentMirror is the part of the GitHub client used to mirror comments.
type commentMirror interface {
	MirrorComments(ctx context.Context, ref github.IssueRef, issueKey string, comments []models.Comment) (int, error)
}

// mirrorComments mirrors every issue's comments to ref and warns about restricted
// comments that were left out.
func mirrorComments(ctx context.Context, m commentMirror, ref github.IssueRef, results []issueComments) error {
	for _, r := range results {
		posted, err := m.MirrorComments(ctx, ref, r.IssueKey, r.Comments)
		if err != nil {
			return err
		}
		if skipped := len(r.Comments) - posted; skipped > 0 {
			logging.Warn("restricted comments were not mirrored",
				"issue", r.IssueKey,
				"github_issue", ref.String(),
				"skipped", skipped)
		}
	}
	return nil
}

func writeCommentsTable(w io.Writer, codec *jiratime.Codec, results []issueComments) error {
	for _, r := range results {
		for _, c := range r.Comments {
			created, err := codec.Encode(c.Created)
			if err != nil {
				return err
			}
			author := c.Author.DisplayName
			if author == "" {
				author = c.Author.Name
			}
			fmt.Fprintf(w, "%s\t%d\t%s\t%s\t%s\n", r.IssueKey, c.ID, created, author, summarise(c.Body))
		}
	}
	return nil
}

func writeCommentsJSON(w io.Writer, codec *jiratime.Codec, results []issueComments) error {
	out := make(map[string][]json.RawMessage, len(results))
	for _, r := range results {
		encoded := make([]json.RawMessage, 0, len(r.Comments))
		for i := range r.Comments {
			b, err := models.EncodeComment(&r.Comments[i], codec)
			if err != nil {
				return err
			}
			encoded = append(encoded, b)
		}
		out[r.IssueKey] = encoded
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// summarise returns the first line of body, cut to 60 characters.
func summarise(body string) string {
	const maxLen = 60
	line := []rune(body)
	for i, r := range line {
		if r == '\n' || r == '\r' {
			line = line[:i]
			break
		}
	}
	if len(line) > maxLen {
		return string(line[:maxLen-3]) + "..."
	}
	return string(line)
}
