package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/conneroisu/inkit/internal/preview"
)

var classesCmd = &cobra.Command{
	Use:     "classes",
	Aliases: []string{"c"},
	Short:   "Print the class string for a style",
	Long: `Print the class attribute a Button renders for the given style.
Kinds left unset fall back to preview.default from the configuration.

Examples:
  inkit classes                                   # in-button
  inkit classes --appearance solid --size m       # in-button -appearance-solid -size-m
  inkit classes --state disabled --width full -j  # JSON with the token list`,
	Args: cobra.NoArgs,
	RunE: runClasses,
}

var (
	classesStyle StyleFlags
	classesJSON  bool
)

func init() {
	rootCmd.AddCommand(classesCmd)

	classesStyle = AddStyleFlags(classesCmd)
	classesCmd.Flags().BoolVarP(&classesJSON, "json", "j", false, "Output classes and tokens as JSON")
}

func runClasses(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadConfig(cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	props, err := preview.Request{Style: classesStyle.Values()}.Props(cfg.DefaultStyle())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if classesJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(preview.ClassesResponse{Classes: props.Classes(), Tokens: props.Tokens()})
	}
	_, err = fmt.Fprintln(out, props.Classes())
	return err
}
