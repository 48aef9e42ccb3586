// Package cmd provides the command-line interface for inkit.
//
// This package implements all CLI commands using the Cobra framework.
//
// # Available Commands
//
//   - classes: Print the class string for a style
//   - render: Render a button to HTML, optionally with an accessibility audit
//   - tokens: List every class token in text, JSON or YAML
//   - css generate: Write a stylesheet skeleton covering every token
//   - css lint: Check a stylesheet for missing and unknown tokens
//   - serve: Start the preview server with hot reload
//   - version: Show version information
//
// # Command Examples
//
//	// Class string for a solid medium button
//	inkit classes --appearance solid --size m
//
//	// Rendered HTML with passthrough attributes
//	inkit render --body Save --attr type=submit --attr disabled --state disabled
//
//	// Stylesheet skeleton, then keep it honest in CI
//	inkit css generate -o styles/button.css
//	inkit css lint styles/button.css --strict
//
//	// Live preview on another port
//	inkit serve --port 3000
//
// # Configuration Integration
//
// Commands respect configuration from multiple sources in order of precedence:
//
//  1. Command-line flags (highest priority)
//  2. Environment variables (INKIT_*)
//  3. Configuration file (.inkit.yml)
//  4. Default values (lowest priority)
//
// Style flags left unset fall back to preview.default, so a project can
// pin, say, its usual size once in .inkit.yml.
//
// # Error Handling
//
// Failures are returned as structured errors from internal/errors and
// printed by Cobra; the process exits non-zero.
package cmd
