package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/conneroisu/inkit/internal/errors"
	"github.com/conneroisu/inkit/pkg/button"
)

// StyleFlags holds one flag per style kind, keyed by kind.
type StyleFlags map[string]*string

// AddStyleFlags adds --appearance, --brightness, ... to cmd, with shell
// completion of each closed value set.
func AddStyleFlags(cmd *cobra.Command) StyleFlags {
	flags := make(StyleFlags, len(button.Kinds()))
	for _, kind := range button.Kinds() {
		values := button.Values(kind)
		flags[kind] = cmd.Flags().String(kind, "", fmt.Sprintf("Button %s (%s)", kind, strings.Join(values, ", ")))
		_ = cmd.RegisterFlagCompletionFunc(kind, func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
			return values, cobra.ShellCompDirectiveNoFileComp
		})
	}
	return flags
}

// Values returns the kinds that were given a value.
func (f StyleFlags) Values() map[string]string {
	values := make(map[string]string, len(f))
	for kind, v := range f {
		if v != nil && *v != "" {
			values[kind] = *v
		}
	}
	return values
}

// ContentFlags are the content slots of a rendered button.
type ContentFlags struct {
	Body     string
	Leading  string
	Trailing string
	Attrs    []string
}

// AddContentFlags adds --body, --leading, --trailing and --attr to cmd.
func AddContentFlags(cmd *cobra.Command) *ContentFlags {
	flags := &ContentFlags{}
	cmd.Flags().StringVarP(&flags.Body, "body", "b", "", "Main content text")
	cmd.Flags().StringVar(&flags.Leading, "leading", "", "Content rendered before the body")
	cmd.Flags().StringVar(&flags.Trailing, "trailing", "", "Content rendered after the body")
	cmd.Flags().StringArrayVarP(&flags.Attrs, "attr", "a", nil, "Passthrough attribute as name=value, or name for a boolean (repeatable)")
	return flags
}

// parseAttrs turns name=value pairs into an attribute map. A bare name is a
// boolean attribute.
func parseAttrs(pairs []string) (map[string]string, error) {
	attrs := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		name, value, found := strings.Cut(pair, "=")
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, errors.NewValidationError(errors.ErrCodeInvalidAttribute,
				fmt.Sprintf("invalid --attr %q (expected name=value)", pair))
		}
		if !found {
			value = "true"
		}
		attrs[name] = value
	}
	return attrs, nil
}

// resetFlags restores every flag of cmd and its children to its default.
// Commands are package globals, so repeated executions in one process
// would otherwise see earlier values.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}
