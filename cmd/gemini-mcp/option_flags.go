package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/gorewood/gemini-mcp/internal/gemini"
)

// optionFlagUsage describes each option flag. Flag names are the option
// names with dashes for underscores.
var optionFlagUsage = map[string]string{
	"sandbox":           "Run Gemini in sandbox mode",
	"debug":             "Enable Gemini debug output",
	"all_files":         "Include all files in Gemini's context",
	"show_memory_usage": "Show Gemini memory usage",
	"yolo":              "Auto-accept every action Gemini proposes",
	"checkpointing":     "Enable Gemini checkpointing",
}

func flagName(field string) string {
	return strings.ReplaceAll(field, "_", "-")
}

// addOptionFlags registers --model and one bool flag per Gemini option.
func addOptionFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("model", "m", "", "Gemini model (default from config)")
	for _, field := range gemini.FieldNames() {
		if field == "model" {
			continue
		}
		cmd.Flags().Bool(flagName(field), false, optionFlagUsage[field])
	}
}

// optionOverrides returns the option flags the user set, keyed by option name.
func optionOverrides(cmd *cobra.Command) (map[string]any, error) {
	overrides := make(map[string]any)
	for _, field := range gemini.FieldNames() {
		flag := cmd.Flags().Lookup(flagName(field))
		if flag == nil || !flag.Changed {
			continue
		}
		value, err := gemini.ParseValue(field, flag.Value.String())
		if err != nil {
			return nil, err
		}
		overrides[field] = value
	}
	return overrides, nil
}
