package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/conneroisu/inkit/internal/version"
)

var (
	versionFormat   string
	versionShort    bool
	versionDetailed bool
)

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Long: `Display version information for inkit including:

- Semantic version number
- Git commit hash
- Build timestamp
- Go and templ versions used for compilation
- Target platform (OS/architecture)

Examples:
  inkit version              # Show version
  inkit version --short      # Version number only
  inkit version --detailed   # Show detailed version info
  inkit version --format json`,
	Args: cobra.NoArgs,
	RunE: runVersionCommand,
}

func init() {
	rootCmd.AddCommand(versionCmd)

	versionCmd.Flags().StringVarP(&versionFormat, "format", "f", "text", "Output format (text, json)")
	versionCmd.Flags().BoolVar(&versionShort, "short", false, "Show short version only")
	versionCmd.Flags().BoolVar(&versionDetailed, "detailed", false, "Show detailed version information")
}

func runVersionCommand(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	switch versionFormat {
	case "json":
		info := version.GetBuildInfo()
		jsonInfo := map[string]interface{}{
			"version":       info.Version,
			"git_commit":    info.GitCommit,
			"build_time":    info.BuildTime,
			"go_version":    info.GoVersion,
			"templ_version": info.TemplVersion,
			"platform":      info.Platform,
			"is_release":    version.IsRelease(),
			"is_dirty":      info.Dirty,
		}
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(jsonInfo)
	case "text":
		switch {
		case versionShort:
			fmt.Fprintln(out, version.GetShortVersion())
		case versionDetailed:
			fmt.Fprintln(out, version.GetDetailedVersion())
			if version.IsRelease() {
				fmt.Fprintln(out, "Build type: release")
			} else {
				fmt.Fprintln(out, "Build type: development")
			}
		default:
			outputVersionDefault(cmd)
		}
		return nil
	default:
		return fmt.Errorf("unsupported format: %s (supported: text, json)", versionFormat)
	}
}

func outputVersionDefault(cmd *cobra.Command) {
	out := cmd.OutOrStdout()
	info := version.GetBuildInfo()

	fmt.Fprintf(out, "inkit %s", info.Version)
	if info.GitCommit != "unknown" && len(info.GitCommit) >= 7 {
		fmt.Fprintf(out, " (%s)", info.GitCommit[:7])
	}
	if info.Dirty {
		fmt.Fprint(out, " (dirty)")
	}
	fmt.Fprintln(out)

	if !info.BuildTime.IsZero() {
		fmt.Fprintf(out, "Built: %s\n", info.BuildTime.UTC().Format("2006-01-02 15:04:05 UTC"))
	}
	fmt.Fprintf(out, "Go: %s\n", info.GoVersion)
	if info.TemplVersion != "" {
		fmt.Fprintf(out, "templ: %s\n", info.TemplVersion)
	}
	fmt.Fprintf(out, "Platform: %s\n", info.Platform)
}
