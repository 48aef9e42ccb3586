package cmd

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/conneroisu/inkit/internal/errors"
	"github.com/conneroisu/inkit/internal/stylesheet"
	"github.com/conneroisu/inkit/pkg/button"
)

// cssCmd groups the stylesheet commands.
var cssCmd = &cobra.Command{
	Use:   "css",
	Short: "Generate and check button stylesheets",
	Long: `Generate and check stylesheets against the button class contract.

The css command provides subcommands to:
- Generate a skeleton with an empty rule for every token
- Lint an existing stylesheet for missing and unknown tokens`,
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help() // nolint:errcheck
	},
}

var cssGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Write a stylesheet skeleton",
	Long: `Write a stylesheet with an empty rule for the base class and every
token, grouped by style kind.

Examples:
  inkit css generate                          # to stdout
  inkit css generate -o styles/button.css     # to a file
  inkit css generate --kinds size,state       # only some kinds`,
	Args: cobra.NoArgs,
	RunE: runCSSGenerate,
}

var cssLintCmd = &cobra.Command{
	Use:   "lint <file>",
	Short: "Check a stylesheet against the token catalog",
	Long: `Report which tokens a stylesheet defines, which it is missing and which
grammar-shaped classes it defines that no Button can emit.

Unknown classes always fail the command. Missing tokens fail it with --strict.`,
	Args: cobra.ExactArgs(1),
	RunE: runCSSLint,
}

var (
	cssOutput string
	cssHeader string
	cssKinds  []string
	cssForce  bool
	cssStrict bool
)

func init() {
	rootCmd.AddCommand(cssCmd)
	cssCmd.AddCommand(cssGenerateCmd)
	cssCmd.AddCommand(cssLintCmd)

	cssGenerateCmd.Flags().StringVarP(&cssOutput, "output", "o", "", "Output file (default stdout)")
	cssGenerateCmd.Flags().StringVar(&cssHeader, "header", "Generated by inkit css generate", "Leading comment")
	cssGenerateCmd.Flags().StringSliceVarP(&cssKinds, "kinds", "k", nil, "Only generate these style kinds")
	cssGenerateCmd.Flags().BoolVarP(&cssForce, "force", "f", false, "Overwrite an existing output file")

	cssLintCmd.Flags().BoolVar(&cssStrict, "strict", false, "Fail when any token is missing")
}

func runCSSGenerate(cmd *cobra.Command, args []string) error {
	for _, kind := range cssKinds {
		if button.Values(kind) == nil {
			return errors.NewValidationError(errors.ErrCodeUnknownStyleKind,
				fmt.Sprintf("unknown style kind %q", kind)).
				WithContext("kinds", button.Kinds())
		}
	}

	var buf bytes.Buffer
	if err := stylesheet.Generate(&buf, stylesheet.GenerateOptions{Header: cssHeader, Kinds: cssKinds}); err != nil {
		return err
	}

	if cssOutput == "" {
		_, err := cmd.OutOrStdout().Write(buf.Bytes())
		return err
	}

	if _, err := os.Stat(cssOutput); err == nil && !cssForce {
		return errors.NewIOError(errors.ErrCodeFileWrite,
			fmt.Sprintf("%s already exists (use --force to overwrite)", cssOutput), nil)
	}
	if dir := filepath.Dir(cssOutput); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.NewIOError(errors.ErrCodeFileWrite, "failed to create output directory", err)
		}
	}
	if err := os.WriteFile(cssOutput, buf.Bytes(), 0o644); err != nil {
		return errors.NewIOError(errors.ErrCodeFileWrite, "failed to write stylesheet", err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %s\n", cssOutput)
	return nil
}

func runCSSLint(cmd *cobra.Command, args []string) error {
	path := args[0]
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.NewIOError(errors.ErrCodeFileNotFound, "stylesheet not found", err).
				WithLocation(path, 0, 0)
		}
		return errors.NewIOError(errors.ErrCodeFileRead, "failed to read stylesheet", err)
	}

	report, err := stylesheet.Lint(path, string(data))
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, issue := range report.Issues() {
		fmt.Fprintln(out, issue.Error())
	}
	total := len(report.Defined) + len(report.Missing)
	fmt.Fprintf(out, "%s: %d/%d tokens defined (%.0f%%), %d missing, %d unknown\n",
		path, len(report.Defined), total, report.Coverage()*100, len(report.Missing), len(report.Unknown))

	if report.OK() {
		return nil
	}
	if len(report.Unknown) > 0 {
		return errors.NewValidationError(errors.ErrCodeUnknownTokens,
			fmt.Sprintf("%d class(es) are not button tokens", len(report.Unknown))).
			WithLocation(path, report.Unknown[0].Line, report.Unknown[0].Column)
	}
	if cssStrict && len(report.Missing) > 0 {
		return errors.NewValidationError(errors.ErrCodeMissingTokens,
			fmt.Sprintf("%d token(s) have no rule", len(report.Missing))).
			WithContext("missing", report.Missing)
	}
	return nil
}
