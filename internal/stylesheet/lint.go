package stylesheet

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/gorilla/css/scanner"

	"github.com/conneroisu/inkit/internal/errors"
	"github.com/conneroisu/inkit/pkg/button"
)

// ClassRef is a class selector found in a stylesheet.
type ClassRef struct {
	Class  string
	Line   int
	Column int
}

// Report is the result of linting a stylesheet against the catalog.
type Report struct {
	File string
	// Defined lists catalog classes the stylesheet has at least one
	// selector for, in catalog order.
	Defined []string
	// Missing lists catalog classes with no selector, in catalog order.
	Missing []string
	// Unknown lists grammar-shaped classes ("-<kind>-*", "--*") that the
	// Button can never emit.
	Unknown []ClassRef
}

// Coverage returns the fraction of catalog tokens the stylesheet defines.
func (r *Report) Coverage() float64 {
	total := len(r.Defined) + len(r.Missing)
	if total == 0 {
		return 0
	}
	return float64(len(r.Defined)) / float64(total)
}

// OK reports whether every token is defined and nothing unknown was found.
func (r *Report) OK() bool {
	return len(r.Missing) == 0 && len(r.Unknown) == 0
}

// Issues converts the report into collector issues: unknown classes are
// errors, missing tokens are warnings.
func (r *Report) Issues() []errors.Issue {
	issues := make([]errors.Issue, 0, len(r.Unknown)+len(r.Missing))
	for _, u := range r.Unknown {
		issues = append(issues, errors.Issue{
			File:     r.File,
			Line:     u.Line,
			Column:   u.Column,
			Message:  fmt.Sprintf("class %s is not a button token", u.Class),
			Severity: errors.SeverityError,
		})
	}
	for _, m := range r.Missing {
		issues = append(issues, errors.Issue{
			File:     r.File,
			Message:  fmt.Sprintf("no rule for %s", m),
			Severity: errors.SeverityWarning,
		})
	}
	return issues
}

// Classes returns every class selector in css, in source order.
func Classes(css string) ([]ClassRef, error) {
	s := scanner.New(css)
	var (
		refs    []ClassRef
		pending *scanner.Token
	)

	next := func() *scanner.Token {
		if pending != nil {
			t := pending
			pending = nil
			return t
		}
		return s.Next()
	}

	for {
		tok := next()
		switch tok.Type {
		case scanner.TokenEOF:
			return refs, nil
		case scanner.TokenError:
			return nil, errors.NewValidationError(errors.ErrCodeStylesheetParse, tok.Value).
				WithLocation("", tok.Line, tok.Column)
		case scanner.TokenChar:
			if tok.Value != "." {
				continue
			}
			ref := ClassRef{Line: tok.Line, Column: tok.Column}
			var name strings.Builder
			// A class name may arrive as several tokens: "--disabled" scans
			// as the char "-" followed by the ident "-disabled".
			for {
				t := next()
				if t.Type == scanner.TokenIdent {
					name.WriteString(unescapeIdent(t.Value))
					continue
				}
				if t.Type == scanner.TokenChar && t.Value == "-" {
					name.WriteString(t.Value)
					continue
				}
				pending = t
				break
			}
			if name.Len() > 0 {
				ref.Class = name.String()
				refs = append(refs, ref)
			}
		}
	}
}

// Lint checks css against the catalog. file is only used for reporting.
func Lint(file, css string) (*Report, error) {
	refs, err := Classes(css)
	if err != nil {
		var ie *errors.InkitError
		if errors.As(err, &ie) {
			ie.FilePath = file
		}
		return nil, err
	}

	known := make(map[string]bool)
	for _, e := range Catalog() {
		known[e.Class] = true
	}

	found := make(map[string]bool)
	unknownSeen := make(map[string]bool)
	report := &Report{File: file}

	for _, ref := range refs {
		if known[ref.Class] {
			found[ref.Class] = true
			continue
		}
		if grammarShaped(ref.Class) && !unknownSeen[ref.Class] {
			unknownSeen[ref.Class] = true
			report.Unknown = append(report.Unknown, ref)
		}
	}

	for _, e := range Catalog() {
		if found[e.Class] {
			report.Defined = append(report.Defined, e.Class)
		} else {
			report.Missing = append(report.Missing, e.Class)
		}
	}

	sort.SliceStable(report.Unknown, func(i, j int) bool {
		if report.Unknown[i].Line != report.Unknown[j].Line {
			return report.Unknown[i].Line < report.Unknown[j].Line
		}
		return report.Unknown[i].Column < report.Unknown[j].Column
	})

	return report, nil
}

// unescapeIdent decodes CSS escapes in an identifier: a backslash followed
// by up to six hex digits and an optional whitespace, or by any other
// character.
func unescapeIdent(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}

	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] != '\\' || i == len(s)-1 {
			b.WriteByte(s[i])
			continue
		}
		i++

		j := i
		for j < len(s) && j-i < 6 && isHex(s[j]) {
			j++
		}
		if j == i {
			r, size := utf8.DecodeRuneInString(s[i:])
			b.WriteRune(r)
			i += size - 1
			continue
		}

		code, _ := strconv.ParseUint(s[i:j], 16, 32)
		r := rune(code)
		if r == 0 || r > utf8.MaxRune || (r >= 0xD800 && r <= 0xDFFF) {
			r = utf8.RuneError
		}
		b.WriteRune(r)

		if j < len(s) && (s[j] == ' ' || s[j] == '\t' || s[j] == '\n' || s[j] == '\f') {
			j++
		} else if j+1 < len(s) && s[j] == '\r' && s[j+1] == '\n' {
			j += 2
		} else if j < len(s) && s[j] == '\r' {
			j++
		}
		i = j - 1
	}
	return b.String()
}

func isHex(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}

// grammarShaped reports whether class looks like a button modifier token.
func grammarShaped(class string) bool {
	for _, kind := range button.Kinds() {
		if strings.HasPrefix(class, Prefix(kind)) && len(class) > len(Prefix(kind)) {
			return true
		}
	}
	return false
}
