package button

import (
	"context"
	"fmt"
	"io"
	"reflect"
	"sort"
	"strings"

	"github.com/a-h/templ"
)

// Props are the inputs of a single Button render.
type Props struct {
	Style

	// AreaLabel is accepted for API compatibility but is not rendered.
	// Pass "aria-label" through Attrs to label the element.
	AreaLabel string

	Leading  templ.Component
	Body     templ.Component
	Children templ.Component
	Trailing templ.Component

	// Attrs are native <button> attributes rendered unchanged. A "class"
	// entry is dropped: the class attribute is always derived from Style.
	// templ.ComponentScript values are rendered as event handlers, with
	// their script emitted once before the element.
	Attrs templ.Attributes

	Ref *Ref
}

// Button renders a <button> whose class attribute is derived from p.Style
// and whose content is Leading, then Children (or Body when Children is
// nil), then Trailing.
func Button(p Props) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		attrs, handlers, id := p.attributes()

		scripts := make([]templ.ComponentScript, len(handlers))
		for i, h := range handlers {
			scripts[i] = h.script
		}
		if err := templ.RenderScriptItems(ctx, w, scripts...); err != nil {
			return err
		}

		if _, err := io.WriteString(w, `<button class="`+templ.EscapeString(p.Classes())+`"`); err != nil {
			return err
		}
		if err := templ.RenderAttributes(ctx, w, attrs); err != nil {
			return err
		}
		for _, h := range handlers {
			// Call is escaped by templ.
			if _, err := io.WriteString(w, " "+templ.EscapeString(h.name)+`="`+h.script.Call+`"`); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, ">"); err != nil {
			return err
		}
		for _, c := range p.content() {
			if err := c.Render(ctx, w); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, "</button>"); err != nil {
			return err
		}

		if p.Ref != nil {
			p.Ref.bind(id)
		}
		return nil
	})
}

// Main returns the component rendered between Leading and Trailing.
func (p Props) Main() templ.Component {
	if p.Children != nil {
		return p.Children
	}
	return p.Body
}

func (p Props) content() []templ.Component {
	out := make([]templ.Component, 0, 3)
	for _, c := range []templ.Component{p.Leading, p.Main(), p.Trailing} {
		if c != nil {
			out = append(out, c)
		}
	}
	return out
}

type handler struct {
	name   string
	script templ.ComponentScript
}

// attributes copies Attrs without class, splits out script handlers in key
// order and, when a Ref is set, resolves the id the element will carry.
func (p Props) attributes() (templ.Attributes, []handler, string) {
	attrs := make(templ.Attributes, len(p.Attrs)+1)
	var handlers []handler
	for k, v := range p.Attrs {
		if strings.EqualFold(k, "class") {
			continue
		}
		if script, ok := v.(templ.ComponentScript); ok {
			handlers = append(handlers, handler{name: k, script: script})
			continue
		}
		attrs[k] = v
	}
	sort.Slice(handlers, func(i, j int) bool { return handlers[i].name < handlers[j].name })

	if p.Ref == nil {
		return attrs, handlers, ""
	}
	explicit, _ := attrValue(attrs["id"])
	id := p.Ref.resolve(explicit)
	attrs["id"] = id
	return attrs, handlers, id
}

// attrValue returns the text an attribute value renders as, and false when
// it renders no value.
func attrValue(v any) (string, bool) {
	switch v := v.(type) {
	case nil:
		return "", false
	case string:
		return v, true
	case templ.KeyValue[string, bool]:
		return v.Key, v.Value
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return "", false
		}
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.String:
		return rv.String(), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		return fmt.Sprint(rv.Interface()), true
	}
	return "", false
}

// Text returns a component rendering s as escaped text, for use in the
// content slots.
func Text(s string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, templ.EscapeString(s))
		return err
	})
}
