package cmd

import (
	"bytes"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/conneroisu/inkit/internal/accessibility"
	"github.com/conneroisu/inkit/internal/errors"
	"github.com/conneroisu/inkit/internal/preview"
	"github.com/conneroisu/inkit/pkg/button"
)

var renderCmd = &cobra.Command{
	Use:     "render",
	Aliases: []string{"r"},
	Short:   "Render a button to HTML",
	Long: `Render a single Button and print its HTML.

With --ref the button is bound to a ref and the ref's selector is printed
to stderr. With --audit the markup is checked for accessibility problems
and the command fails when any error-level rule is violated.

Examples:
  inkit render --appearance solid --body Save --attr type=submit
  inkit render --leading "<" --body Back --state disabled --attr disabled
  inkit render --body Delete --ref=delete --audit`,
	Args: cobra.NoArgs,
	RunE: runRender,
}

// generatedRef is the --ref value when the flag is given without an id.
const generatedRef = " "

var (
	renderStyle   StyleFlags
	renderContent *ContentFlags
	renderRef     string
	renderAudit   bool
)

func init() {
	rootCmd.AddCommand(renderCmd)

	renderStyle = AddStyleFlags(renderCmd)
	renderContent = AddContentFlags(renderCmd)
	renderCmd.Flags().StringVar(&renderRef, "ref", "", "Bind a ref; --ref=<id> prefers that element id, bare --ref generates one")
	renderCmd.Flags().Lookup("ref").NoOptDefVal = generatedRef
	renderCmd.Flags().BoolVar(&renderAudit, "audit", false, "Audit the rendered markup for accessibility")
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadConfig(cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	attrs, err := parseAttrs(renderContent.Attrs)
	if err != nil {
		return err
	}
	req := preview.Request{
		Style:    renderStyle.Values(),
		Body:     renderContent.Body,
		Leading:  renderContent.Leading,
		Trailing: renderContent.Trailing,
		Attrs:    attrs,
	}
	if cmd.Flags().Changed("ref") {
		req.Ref = true
		if renderRef != generatedRef {
			req.RefID = renderRef
		}
	}

	props, err := req.Props(cfg.DefaultStyle())
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := button.Button(props).Render(cmd.Context(), &buf); err != nil {
		return errors.NewInternalError(errors.ErrCodeInternalError, "failed to render button", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), buf.String())

	if props.Ref != nil && props.Ref.Bound() {
		fmt.Fprintln(cmd.ErrOrStderr(), "ref", props.Ref.Selector())
	}

	if !renderAudit {
		return nil
	}

	report, err := accessibility.NewAuditor(logger).Audit(cmd.Context(), buf.String())
	if err != nil {
		return err
	}
	printReport(cmd, report)
	if report.HasErrors() {
		return errors.NewValidationError(errors.ErrCodeAccessibility,
			fmt.Sprintf("accessibility audit failed with %d error(s)", report.Summary.Errors))
	}
	return nil
}

func printReport(cmd *cobra.Command, report *accessibility.Report) {
	out := cmd.OutOrStdout()
	if len(report.Violations) == 0 {
		fmt.Fprintln(out, "No accessibility issues found")
		return
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SEVERITY\tRULE\tELEMENT\tMESSAGE")
	for _, v := range report.Violations {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", v.Severity, v.Rule, v.Selector, v.Message)
	}
	w.Flush()
	fmt.Fprintf(out, "\n%d button(s), %d error(s), %d warning(s)\n",
		report.Summary.Buttons, report.Summary.Errors, report.Summary.Warnings)
}
