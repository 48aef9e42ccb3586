// Package errors provides structured error types for inkit tooling and a
// collector that turns stylesheet problems into a preview overlay.
package errors

import (
	"fmt"
	"html"
	"strings"
	"sync"
	"time"
)

// Issue is a problem found in a stylesheet.
type Issue struct {
	File      string
	Line      int
	Column    int
	Message   string
	Severity  IssueSeverity
	Timestamp time.Time
}

// IssueSeverity represents the severity of an issue.
type IssueSeverity int

const (
	SeverityInfo IssueSeverity = iota
	SeverityWarning
	SeverityError
)

// String returns the string representation of the severity
func (s IssueSeverity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// Error implements the error interface
func (i *Issue) Error() string {
	return fmt.Sprintf("%s:%d:%d: %s: %s", i.File, i.Line, i.Column, i.Severity, i.Message)
}

// Collector collects the issues shown on the preview page.
type Collector struct {
	issues []Issue
	mutex  sync.RWMutex
}

// NewCollector creates a new collector
func NewCollector() *Collector {
	return &Collector{issues: make([]Issue, 0)}
}

// Add adds an issue to the collector
func (c *Collector) Add(issue Issue) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	issue.Timestamp = time.Now()
	c.issues = append(c.issues, issue)
}

// Issues returns a copy of the collected issues
func (c *Collector) Issues() []Issue {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	result := make([]Issue, len(c.issues))
	copy(result, c.issues)
	return result
}

// HasIssues returns true if there are any issues
func (c *Collector) HasIssues() bool {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return len(c.issues) > 0
}

// HasErrors returns true if any issue has error severity
func (c *Collector) HasErrors() bool {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	for _, issue := range c.issues {
		if issue.Severity >= SeverityError {
			return true
		}
	}
	return false
}

// Replace swaps the issues recorded for file for issues in one step. Issues
// of other files are kept.
func (c *Collector) Replace(file string, issues []Issue) {
	now := time.Now()
	c.mutex.Lock()
	defer c.mutex.Unlock()

	next := make([]Issue, 0, len(c.issues)+len(issues))
	for _, issue := range c.issues {
		if issue.File != file {
			next = append(next, issue)
		}
	}
	for _, issue := range issues {
		issue.File = file
		issue.Timestamp = now
		next = append(next, issue)
	}
	c.issues = next
}

// Overlay renders the collected issues as an HTML panel, or "" when empty.
func (c *Collector) Overlay() string {
	if !c.HasIssues() {
		return ""
	}
	issues := c.Issues()

	var b strings.Builder
	b.WriteString(`<div id="inkit-issue-overlay" class="inkit-overlay">`)
	b.WriteString(`<h2>Preview issues</h2><ul>`)
	for _, issue := range issues {
		fmt.Fprintf(&b, `<li class="inkit-overlay-%s"><code>%s</code> %s</li>`,
			issue.Severity,
			html.EscapeString(fmt.Sprintf("%s:%d:%d", issue.File, issue.Line, issue.Column)),
			html.EscapeString(issue.Message))
	}
	b.WriteString(`</ul></div>`)
	return b.String()
}
