// Package button provides the design-system Button as a templ component.
//
// A Button maps a Style (appearance, brightness, color, shape, size, state,
// width) to name-spaced class tokens for an external stylesheet:
//
//	in-button -appearance-solid -size-m --disabled
//
// The class list always starts with "in-button". Each set field adds exactly
// one token, in the order above; unset fields add nothing. State is the one
// kind rendered without its name ("--disabled", not "-state-disabled").
//
// Style values are closed types. Inside Go code only the declared values can
// be used; strings arriving from flags, queries or config files go through
// the Parse functions or Style.Set, which reject anything outside the set
// with a *ValueError.
//
// # Usage
//
//	ref := button.NewRef()
//	c := button.Button(button.Props{
//		Style: button.Style{
//			Appearance: button.AppearanceSolid,
//			Size:       button.SizeM,
//		},
//		Leading:  icon,
//		Children: button.Text("Save"),
//		Attrs:    templ.Attributes{"type": "submit"},
//		Ref:      ref,
//	})
//	_ = c.Render(ctx, w)
//	sel := ref.Selector() // "#in-button-..."
//
// Native attributes in Attrs are rendered unchanged, except "class", which
// is always the derived class string.
package button
