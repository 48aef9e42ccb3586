package stylesheet

import (
	"bufio"
	"fmt"
	"io"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// GenerateOptions controls the generated skeleton.
type GenerateOptions struct {
	// Header is written as a leading comment when non-empty.
	Header string
	// Kinds restricts the skeleton to the given kinds. Empty means all.
	Kinds []string
}

// Generate writes a stylesheet skeleton with an empty rule for the base
// class and for every token of the selected kinds.
func Generate(w io.Writer, opts GenerateOptions) error {
	bw := bufio.NewWriter(w)
	title := cases.Title(language.English)

	want := make(map[string]bool, len(opts.Kinds))
	for _, k := range opts.Kinds {
		want[k] = true
	}

	if opts.Header != "" {
		fmt.Fprintf(bw, "/* %s */\n\n", opts.Header)
	}

	current := ""
	for _, e := range Catalog() {
		if e.Kind != KindBase && len(want) > 0 && !want[e.Kind] {
			continue
		}
		if e.Kind != current {
			if current != "" {
				bw.WriteString("\n")
			}
			fmt.Fprintf(bw, "/* %s */\n", title.String(e.Kind))
			current = e.Kind
		}
		fmt.Fprintf(bw, "%s {\n}\n", e.Selector())
	}

	return bw.Flush()
}
