package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/sozercan/insight-agent/apimodels"
	"github.com/sozercan/insight-agent/internal/analyzer"
	"github.com/sozercan/insight-agent/internal/validation"
)

func newAnalyzeCmd() *cobra.Command {
	var compact bool

	cmd := &cobra.Command{
		Use:   "analyze [text]",
		Short: "Analyze text locally and print the JSON result",
		Long: `Analyze runs the same validation and counting as POST /analyze without
starting the server. The text is read from standard input when no argument is
given, and is used verbatim in both cases.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var req apimodels.AnalyzeRequest
			if len(args) == 1 {
				req.Text = args[0]
			} else {
				data, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("reading stdin: %w", err)
				}
				req.Text = string(data)
			}

			if err := validation.ValidateStruct(req); err != nil {
				return err
			}

			resp, err := analyzer.New(slog.Default()).Analyze(commandContext(cmd), req.Text)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetEscapeHTML(false)
			if !compact {
				enc.SetIndent("", "  ")
			}
			return enc.Encode(resp)
		},
	}

	cmd.Flags().BoolVar(&compact, "compact", false, "print the result on a single line")
	return cmd
}
