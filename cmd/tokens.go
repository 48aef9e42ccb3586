package cmd

import (
	"github.com/spf13/cobra"

	"github.com/conneroisu/inkit/internal/stylesheet"
)

var tokensCmd = &cobra.Command{
	Use:     "tokens",
	Aliases: []string{"t"},
	Short:   "List every class token a Button can emit",
	Long: `List the base class and every class token, grouped by style kind.
This is the full contract a stylesheet has to cover.

Examples:
  inkit tokens                  # kind and class, one per line
  inkit tokens --format json    # manifest with kinds, prefixes and values
  inkit tokens -f yaml`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return stylesheet.WriteManifest(cmd.OutOrStdout(), tokensFormat)
	},
}

var tokensFormat string

func init() {
	rootCmd.AddCommand(tokensCmd)

	tokensCmd.Flags().StringVarP(&tokensFormat, "format", "f", stylesheet.FormatText, "Output format (text, json, yaml)")
	_ = tokensCmd.RegisterFlagCompletionFunc("format", cobra.FixedCompletions(
		[]string{stylesheet.FormatText, stylesheet.FormatJSON, stylesheet.FormatYAML}, cobra.ShellCompDirectiveNoFileComp))
}
