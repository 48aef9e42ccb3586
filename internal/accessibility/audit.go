// Package accessibility audits rendered button markup for common
// accessibility mistakes.
package accessibility

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/conneroisu/inkit/internal/errors"
	"github.com/conneroisu/inkit/internal/logging"
	"github.com/conneroisu/inkit/pkg/button"
)

// Auditor runs the rule set against HTML fragments.
type Auditor struct {
	rules  []Rule
	logger logging.Logger
}

// NewAuditor creates an auditor with the default rules.
func NewAuditor(logger logging.Logger) *Auditor {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Auditor{
		rules:  DefaultRules(),
		logger: logger.WithComponent("accessibility"),
	}
}

// DefaultRules returns the built-in button rules.
func DefaultRules() []Rule {
	return []Rule{
		{
			ID:          RuleButtonName,
			Description: "Buttons must have an accessible name",
			Criteria:    Criteria4_1_2,
			Severity:    SeverityError,
			Impact:      ImpactCritical,
			Suggestion:  "Add visible text, or an aria-label, aria-labelledby or title attribute",
			check:       hasAccessibleName,
		},
		{
			ID:          RuleButtonType,
			Description: "Buttons should declare an explicit type",
			Criteria:    Criteria3_2_2,
			Severity:    SeverityWarning,
			Impact:      ImpactModerate,
			Suggestion:  `Add type="button" unless the button submits a form`,
			check: func(el element) bool {
				_, ok := el.attr("type")
				return ok
			},
		},
		{
			ID:          RuleDisabledState,
			Description: "The disabled state class must be backed by the disabled attribute",
			Criteria:    Criteria1_3_1,
			Severity:    SeverityWarning,
			Impact:      ImpactSerious,
			Suggestion:  "Add the disabled attribute when rendering the disabled state",
			check: func(el element) bool {
				if !el.hasClass(button.Token(button.KindState, button.StateDisabled.String())) {
					return true
				}
				_, ok := el.attr("disabled")
				return ok
			},
		},
	}
}

// Rules returns the auditor's rules.
func (a *Auditor) Rules() []Rule {
	return a.rules
}

// Audit parses htmlContent as a body fragment and checks every button
// element in it.
func (a *Auditor) Audit(ctx context.Context, htmlContent string) (*Report, error) {
	start := time.Now()

	nodes, err := html.ParseFragment(strings.NewReader(htmlContent), &html.Node{
		Type:     html.ElementNode,
		Data:     "body",
		DataAtom: atom.Body,
	})
	if err != nil {
		return nil, errors.NewValidationError(errors.ErrCodeInvalidAttribute, "failed to parse HTML").
			WithCause(err)
	}

	report := &Report{Timestamp: start}
	var buttons []element
	for _, n := range nodes {
		buttons = append(buttons, findButtons(n)...)
	}
	report.Summary.Buttons = len(buttons)

	for i, el := range buttons {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for _, rule := range a.rules {
			if rule.check(el) {
				continue
			}
			v := Violation{
				Rule:       rule.ID,
				Severity:   rule.Severity,
				Impact:     rule.Impact,
				Criteria:   rule.Criteria,
				Element:    el.outerHTML(),
				Selector:   el.selector(i),
				Message:    rule.Description,
				Suggestion: rule.Suggestion,
			}
			report.Violations = append(report.Violations, v)
			switch v.Severity {
			case SeverityError:
				report.Summary.Errors++
			case SeverityWarning:
				report.Summary.Warnings++
			}
		}
	}

	report.Duration = time.Since(start)
	a.logger.Debug(ctx, "Accessibility audit complete",
		"buttons", report.Summary.Buttons,
		"errors", report.Summary.Errors,
		"warnings", report.Summary.Warnings)

	return report, nil
}

// Issues converts violations into collector issues.
func (r *Report) Issues(file string) []errors.Issue {
	issues := make([]errors.Issue, 0, len(r.Violations))
	for _, v := range r.Violations {
		severity := errors.SeverityWarning
		if v.Severity == SeverityError {
			severity = errors.SeverityError
		}
		issues = append(issues, errors.Issue{
			File:     file,
			Message:  fmt.Sprintf("%s: %s (%s)", v.Rule, v.Message, v.Selector),
			Severity: severity,
		})
	}
	return issues
}

type element struct {
	node *html.Node
}

func findButtons(n *html.Node) []element {
	var found []element
	var traverse func(*html.Node)
	traverse = func(n *html.Node) {
		if n.Type == html.ElementNode && n.DataAtom == atom.Button {
			found = append(found, element{node: n})
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			traverse(c)
		}
	}
	traverse(n)
	return found
}

func (e element) attr(name string) (string, bool) {
	for _, a := range e.node.Attr {
		if a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}

func (e element) hasClass(class string) bool {
	v, _ := e.attr("class")
	for _, c := range strings.Fields(v) {
		if c == class {
			return true
		}
	}
	return false
}

func (e element) text() string {
	var text strings.Builder
	var traverse func(*html.Node)
	traverse = func(n *html.Node) {
		if n.Type == html.TextNode {
			text.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			traverse(c)
		}
	}
	traverse(e.node)
	return text.String()
}

func (e element) outerHTML() string {
	var b strings.Builder
	if err := html.Render(&b, e.node); err != nil {
		return e.node.Data
	}
	return b.String()
}

// selector identifies the element by id when it has one, else by its
// index among the audited buttons.
func (e element) selector(index int) string {
	if id, ok := e.attr("id"); ok && id != "" {
		return "#" + id
	}
	return fmt.Sprintf("button[%d]", index)
}

func hasAccessibleName(el element) bool {
	if strings.TrimSpace(el.text()) != "" {
		return true
	}
	for _, name := range []string{"aria-label", "aria-labelledby", "title"} {
		if v, ok := el.attr(name); ok && strings.TrimSpace(v) != "" {
			return true
		}
	}
	return false
}
