package preview

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/a-h/templ"

	"github.com/conneroisu/inkit/internal/errors"
	"github.com/conneroisu/inkit/pkg/button"
)

// Request describes one button to render, in the loosely typed form it has
// on a query string or a command line.
type Request struct {
	// Style maps kind names to values. Empty values leave the default.
	Style    map[string]string
	Body     string
	Leading  string
	Trailing string
	// Attrs are passed through to the element. "true" and "false" become
	// boolean attributes.
	Attrs map[string]string
	// Ref requests a ref; RefID is its preferred id and may be empty.
	Ref   bool
	RefID string
}

// passthroughParams are query parameters forwarded as attributes.
var passthroughParams = []string{
	"id", "type", "name", "value", "title", "form", "disabled",
	"aria-label", "aria-labelledby", "aria-describedby", "aria-pressed",
}

// RequestFromQuery reads style kinds, content slots and the passthrough
// attributes from q.
func RequestFromQuery(q url.Values) Request {
	r := Request{
		Style:    make(map[string]string),
		Attrs:    make(map[string]string),
		Body:     q.Get("body"),
		Leading:  q.Get("leading"),
		Trailing: q.Get("trailing"),
	}
	for _, kind := range button.Kinds() {
		if q.Has(kind) {
			r.Style[kind] = q.Get(kind)
		}
	}
	for _, name := range passthroughParams {
		if q.Has(name) {
			r.Attrs[name] = q.Get(name)
		}
	}
	if q.Has("ref") {
		r.Ref = true
		r.RefID = q.Get("ref")
	}
	return r
}

// Props resolves r over defaults. Invalid style values are reported as
// validation errors carrying the offending kind and value.
func (r Request) Props(defaults button.Style) (button.Props, error) {
	for kind := range r.Style {
		if button.Values(kind) == nil {
			return button.Props{}, errors.NewValidationError(errors.ErrCodeUnknownStyleKind,
				"unknown style kind "+kind).WithContext("kind", kind)
		}
	}

	override, err := button.ParseStyle(r.Style)
	if err != nil {
		return button.Props{}, errors.FromStyle(err)
	}

	p := button.Props{
		Style: defaults.Merge(override),
		Attrs: make(templ.Attributes, len(r.Attrs)),
	}
	for k, v := range r.Attrs {
		key := strings.ToLower(strings.TrimSpace(k))
		if !validAttrName(key) {
			return button.Props{}, errors.NewValidationError(errors.ErrCodeInvalidAttribute,
				"invalid attribute name "+strconv.Quote(k)).WithContext("attribute", k)
		}
		switch v {
		case "true":
			p.Attrs[key] = true
		case "false":
			p.Attrs[key] = false
		default:
			p.Attrs[key] = v
		}
	}
	if r.Body != "" {
		p.Body = button.Text(r.Body)
	}
	if r.Leading != "" {
		p.Leading = button.Text(r.Leading)
	}
	if r.Trailing != "" {
		p.Trailing = button.Text(r.Trailing)
	}
	if r.Ref {
		if r.RefID != "" {
			p.Ref = button.NewRefWithID(r.RefID)
		} else {
			p.Ref = button.NewRef()
		}
	}
	return p, nil
}

// validAttrName accepts the attribute names a template author could write
// literally: letters, digits, '-', '_', ':' and '.', starting with a letter.
func validAttrName(name string) bool {
	if name == "" {
		return false
	}
	for i, c := range name {
		switch {
		case c >= 'a' && c <= 'z':
		case i > 0 && (c >= '0' && c <= '9' || c == '-' || c == '_' || c == ':' || c == '.'):
		default:
			return false
		}
	}
	return true
}
