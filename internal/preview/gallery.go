package preview

import (
	"context"
	"io"

	"github.com/a-h/templ"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/conneroisu/inkit/pkg/button"
)

// GalleryData is everything the gallery page shows.
type GalleryData struct {
	Title      string
	Stylesheet string
	Default    button.Style
	// Overlay is trusted HTML describing current preview issues.
	Overlay    string
	LiveReload bool
}

// Section is one style kind of the gallery.
type Section struct {
	Kind    string
	Heading string
	Items   []Item
}

// Item is one gallery button.
type Item struct {
	Value string
	Props button.Props
}

// Sections lays out one section per kind, each showing every value of that
// kind applied on top of base.
func Sections(base button.Style) []Section {
	title := cases.Title(language.English)
	sections := make([]Section, 0, len(button.Kinds()))
	for _, kind := range button.Kinds() {
		sec := Section{Kind: kind, Heading: title.String(kind)}
		for _, v := range button.Values(kind) {
			style := base
			// v comes from the closed set.
			_ = style.Set(kind, v)

			attrs := templ.Attributes{"type": "button"}
			if style.State == button.StateDisabled {
				attrs["disabled"] = true
			}
			sec.Items = append(sec.Items, Item{
				Value: v,
				Props: button.Props{
					Style: style,
					Body:  button.Text(title.String(v)),
					Attrs: attrs,
				},
			})
		}
		sections = append(sections, sec)
	}
	return sections
}

const reloadScript = `<script>
(function () {
  var proto = location.protocol === "https:" ? "wss:" : "ws:";
  function connect() {
    var ws = new WebSocket(proto + "//" + location.host + "/ws");
    ws.onmessage = function (e) {
      var msg = JSON.parse(e.data);
      if (msg.type === "reload" || msg.type === "style_error") {
        location.reload();
      }
    };
    ws.onclose = function () { setTimeout(connect, 1000); };
  }
  connect();
})();
</script>`

const galleryCSS = `<style>
body { font-family: system-ui, sans-serif; margin: 2rem; }
.inkit-section { margin-bottom: 2rem; }
.inkit-row { display: flex; flex-wrap: wrap; gap: 1rem; align-items: center; }
.inkit-item { display: flex; flex-direction: column; gap: .25rem; }
.inkit-item code { font-size: .75rem; color: #555; }
#inkit-issue-overlay { border: 1px solid #c00; padding: 1rem; margin-bottom: 2rem; }
</style>`

// Gallery renders the full preview page.
func Gallery(data GalleryData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		write := func(s string) error {
			_, err := io.WriteString(w, s)
			return err
		}

		if err := write(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"><title>` +
			templ.EscapeString(data.Title) + `</title>`); err != nil {
			return err
		}
		if data.Stylesheet != "" {
			if err := write(`<link rel="stylesheet" href="` + templ.EscapeString(data.Stylesheet) + `">`); err != nil {
				return err
			}
		}
		if err := write(galleryCSS + `</head><body><h1>` + templ.EscapeString(data.Title) + `</h1>`); err != nil {
			return err
		}
		if data.Overlay != "" {
			if err := templ.Raw(data.Overlay).Render(ctx, w); err != nil {
				return err
			}
		}

		for _, sec := range Sections(data.Default) {
			if err := write(`<section class="inkit-section" id="kind-` + sec.Kind + `"><h2>` +
				templ.EscapeString(sec.Heading) + `</h2><div class="inkit-row">`); err != nil {
				return err
			}
			for _, item := range sec.Items {
				if err := write(`<div class="inkit-item">`); err != nil {
					return err
				}
				if err := button.Button(item.Props).Render(ctx, w); err != nil {
					return err
				}
				if err := write(`<code>` + templ.EscapeString(item.Props.Classes()) + `</code></div>`); err != nil {
					return err
				}
			}
			if err := write(`</div></section>`); err != nil {
				return err
			}
		}

		if data.LiveReload {
			if err := write(reloadScript); err != nil {
				return err
			}
		}
		return write(`</body></html>`)
	})
}
