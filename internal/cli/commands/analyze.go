package commands

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/SscSPs/burnout_journal/internal/cli/printers"
)

func addAnalyze(topLevel *cobra.Command, o *Options) {
	var withCoach bool

	cmd := &cobra.Command{
		Use:   "analyze [text]",
		Short: "Score text for burnout signals.",
		Example: `
journal analyze "I can't keep up with anything this week"
journal show 2025-03-02 | journal analyze --coach
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Join(args, " ")
			if text == "" {
				raw, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("read text: %w", err)
				}
				text = string(raw)
			}
			text = strings.TrimSpace(text)
			if text == "" {
				return errors.New("nothing to analyze")
			}

			client, err := o.apiClient()
			if err != nil {
				return err
			}
			res, err := client.Analyze(cmd.Context(), text)
			if err != nil {
				return err
			}
			printers.Analysis(cmd.OutOrStdout(), res)

			if !withCoach {
				return nil
			}
			c := o.newCoach(client)
			defer c.session.Close()
			reply, err := c.ask(cmd.Context(), text)
			if err != nil {
				printers.Warn(cmd.OutOrStdout(), "Live coach unavailable: %s", err)
				return nil
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout())
			_, _ = coachVoice.Fprintln(cmd.OutOrStdout(), reply)
			return nil
		},
	}
	cmd.Flags().BoolVar(&withCoach, "coach", false, "Also ask the live coach for a reflection.")
	topLevel.AddCommand(cmd)
}
