// Package cmd provides the command-line interface for jiramodel.
package cmd

import (
	"context"
	"fmt"

	"github.com/danielolaszy/jiramodel/internal/config"
	"github.com/danielolaszy/jiramodel/internal/logging"
	"github.com/danielolaszy/jiramodel/pkg/jiratime"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "jiramodel",
	Short: "Read and write JIRA comments and timestamps",
	Long: `jiramodel works with the JIRA REST data model from the command line.

It converts JIRA's timestamp wire format ("2023-05-01T10:15:30.123+0200") to and
from RFC 3339, fetches and creates issue comments, and can mirror JIRA comments
onto a GitHub issue.`,
	SilenceUsage: true,
}

// ExecuteContext runs the root command with ctx, which reaches every API call.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().String("layout", "", "Go layout for the date and time portion (overrides JIRA_TIMESTAMP_LAYOUT)")
	rootCmd.PersistentFlags().Bool("compact-sign", false, "Render negative offsets as \"-0200\" instead of \" - 0200\"")

	rootCmd.AddCommand(timestampCmd)
	rootCmd.AddCommand(commentsCmd)
}

// loadCodec loads the configuration and applies the codec flag overrides.
func loadCodec(cmd *cobra.Command) (*config.Config, *jiratime.Codec, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	codecCfg := cfg.Codec()
	if layout, _ := cmd.Flags().GetString("layout"); layout != "" {
		codecCfg.Layout = layout
	}
	if compact, _ := cmd.Flags().GetBool("compact-sign"); compact {
		codecCfg.SpacedNegativeSign = false
	}
	if err := codecCfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid --layout: %w", err)
	}

	logging.Debug("timestamp codec",
		"layout", codecCfg.Layout,
		"spaced_negative_sign", codecCfg.SpacedNegativeSign)

	return cfg, jiratime.New(codecCfg), nil
}
