package accessibility

import "time"

// WCAGCriteria is a WCAG success criterion number.
type WCAGCriteria string

const (
	Criteria4_1_2 WCAGCriteria = "4.1.2" // Name, Role, Value
	Criteria3_2_2 WCAGCriteria = "3.2.2" // On Input
	Criteria1_3_1 WCAGCriteria = "1.3.1" // Info and Relationships
)

// ViolationSeverity represents the severity level of an accessibility violation.
type ViolationSeverity string

const (
	SeverityError   ViolationSeverity = "error"
	SeverityWarning ViolationSeverity = "warning"
)

// ViolationImpact represents the potential impact of an accessibility violation.
type ViolationImpact string

const (
	ImpactCritical ViolationImpact = "critical"
	ImpactSerious  ViolationImpact = "serious"
	ImpactModerate ViolationImpact = "moderate"
	ImpactMinor    ViolationImpact = "minor"
)

// Rule IDs.
const (
	RuleButtonName    = "button-name"
	RuleButtonType    = "button-type"
	RuleDisabledState = "disabled-state"
)

// Rule describes one check run against every button element.
type Rule struct {
	ID          string            `json:"id"`
	Description string            `json:"description"`
	Criteria    WCAGCriteria      `json:"criteria"`
	Severity    ViolationSeverity `json:"severity"`
	Impact      ViolationImpact   `json:"impact"`
	Suggestion  string            `json:"suggestion"`

	check func(el element) bool
}

// Violation is a single failed rule on a single element.
type Violation struct {
	Rule       string            `json:"rule"`
	Severity   ViolationSeverity `json:"severity"`
	Impact     ViolationImpact   `json:"impact"`
	Criteria   WCAGCriteria      `json:"criteria"`
	Element    string            `json:"element"`
	Selector   string            `json:"selector"`
	Message    string            `json:"message"`
	Suggestion string            `json:"suggestion"`
}

// Summary counts violations by severity.
type Summary struct {
	Buttons  int `json:"buttons"`
	Errors   int `json:"errors"`
	Warnings int `json:"warnings"`
}

// Report is the result of auditing one HTML fragment.
type Report struct {
	Timestamp  time.Time     `json:"timestamp"`
	Summary    Summary       `json:"summary"`
	Violations []Violation   `json:"violations"`
	Duration   time.Duration `json:"duration"`
}

// HasErrors reports whether any error-severity violation was found.
func (r *Report) HasErrors() bool {
	return r.Summary.Errors > 0
}
