package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yungbote/dailytrack-backend/internal/tracking"
)

type parseResult struct {
	Status  string             `json:"status"`
	Message string             `json:"message"`
	Updates map[string]float64 `json:"updates"`
}

// NewParseCommand parses a message offline, without touching storage.
func NewParseCommand(rootOpts *RootOptions) *cobra.Command {
	var vocabFile string
	cmd := &cobra.Command{
		Use:   "parse <message>",
		Short: "Show which fields a message would update",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			vocab, err := tracking.LoadVocabulary(vocabFile)
			if err != nil {
				return fmt.Errorf("load vocabulary: %w", err)
			}
			updates := tracking.NewParser(vocab).Parse(strings.Join(args, " "))
			return writeParseResult(cmd.OutOrStdout(), rootOpts.Format, updates)
		},
	}
	cmd.Flags().StringVar(&vocabFile, "vocabulary", "", "YAML vocabulary file (default: built-in)")
	return cmd
}

func writeParseResult(w io.Writer, format string, updates *tracking.Updates) error {
	res := parseResult{Status: "no_valid_fields", Message: "No valid fields found in message.", Updates: updates.Map()}
	if !updates.Empty() {
		res.Status = "success"
		res.Message = tracking.Confirmation(updates)
	}
	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}
	_, err := fmt.Fprintln(w, res.Message)
	return err
}
