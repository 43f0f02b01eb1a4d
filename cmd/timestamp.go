package cmd

import (
	"fmt"
	"time"

	"github.com/danielolaszy/jiramodel/pkg/jiratime"
	"github.com/spf13/cobra"
)

var timestampCmd = &cobra.Command{
	Use:   "timestamp",
	Short: "Convert JIRA timestamps",
}

// timestampDecodeCmd parses wire-format timestamps.
var timestampDecodeCmd = &cobra.Command{
	Use:   "decode <value>...",
	Short: "Decode JIRA timestamps to RFC 3339",
	Long: `Decode JIRA wire-format timestamps.

Both "+0200" and "+02:00" offsets are accepted. For each value the RFC 3339 form
and the re-encoded wire form are printed, separated by a tab.

Example:
  jiramodel timestamp decode 2023-05-01T10:15:30.123+0200`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, codec, err := loadCodec(cmd)
		if err != nil {
			return err
		}

		for _, arg := range args {
			ts, err := codec.Decode(arg)
			if err != nil {
				return err
			}
			wire, err := codec.Encode(ts)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", ts.Format(time.RFC3339Nano), wire)
		}
		return nil
	},
}

// timestampEncodeCmd renders RFC 3339 values in wire form.
var timestampEncodeCmd = &cobra.Command{
	Use:   "encode <rfc3339>...",
	Short: "Encode RFC 3339 timestamps in JIRA wire format",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, codec, err := loadCodec(cmd)
		if err != nil {
			return err
		}

		for _, arg := range args {
			t, err := time.Parse(time.RFC3339Nano, arg)
			if err != nil {
				return fmt.Errorf("invalid RFC 3339 timestamp %q: %w", arg, err)
			}
			wire, err := codec.Encode(jiratime.At(t))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), wire)
		}
		return nil
	},
}

func init() {
	timestampCmd.AddCommand(timestampDecodeCmd)
	timestampCmd.AddCommand(timestampEncodeCmd)
}
