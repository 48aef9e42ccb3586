// Package internal contains the tooling packages behind the inkit CLI.
//
// # Package Organization
//
// The internal packages are organized by functional domain:
//
//   - accessibility: Audits rendered button markup
//   - config: Configuration management with validation
//   - errors: Structured errors and the stylesheet issue overlay
//   - logging: Structured logging over log/slog
//   - preview: HTTP preview server, gallery page and JSON endpoints
//   - stylesheet: Token catalog, skeleton generation and linting
//   - validation: Path, URL and origin checks
//   - version: Build information
//   - watcher: File system monitoring with debouncing
//   - websocket: Live reload broadcasting
//
// # Inter-Package Communication
//
//   - Watcher reports stylesheet changes to the preview server
//   - Preview server re-lints through stylesheet and collects issues in errors
//   - Websocket manager tells open pages to reload or show the overlay
//   - Accessibility audits the markup the preview server renders
//
// # Security Considerations
//
//   - Config and watcher paths are checked for traversal
//   - WebSocket upgrades and CORS are limited to the configured origins
//   - Passthrough attribute names are validated before rendering
//   - The browser is only opened for http/https URLs
package internal
