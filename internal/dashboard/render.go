package dashboard

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/dustin/go-humanize/english"
	"github.com/shopspring/decimal"
)

//go:embed templates/*.html
var templatesFS embed.FS

var pages = []string{
	"products.html",
	"product.html",
	"form.html",
	"delete.html",
	"images.html",
	"not_found.html",
}

var funcs = template.FuncMap{
	"price": formatPrice,
	"ago":   humanize.Time,
	"date": func(t time.Time) string {
		return t.Format("02 Jan 2006 15:04")
	},
	"bytes": func(n int) string {
		return humanize.IBytes(uint64(n))
	},
	"plural": func(n int, word string) string {
		return humanize.Comma(int64(n)) + " " + english.PluralWord(n, word, "")
	},
}

func formatPrice(d decimal.Decimal) string {
	return humanize.FormatFloat("#,###.##", d.InexactFloat64())
}

// Renderer executes the embedded page templates inside the shared shell.
type Renderer struct {
	pages map[string]*template.Template
}

// NewRenderer parses every page together with the shell.
func NewRenderer() (*Renderer, error) {
	r := &Renderer{pages: make(map[string]*template.Template, len(pages))}
	for _, page := range pages {
		tmpl, err := template.New(page).Funcs(funcs).ParseFS(templatesFS, "templates/layout.html", "templates/"+page)
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", page, err)
		}
		r.pages[page] = tmpl
	}
	return r, nil
}

// Render writes page wrapped in the shell.
func (r *Renderer) Render(w io.Writer, page string, data interface{}) error {
	tmpl, ok := r.pages[page]
	if !ok {
		return fmt.Errorf("unknown page %s", page)
	}
	return tmpl.ExecuteTemplate(w, "layout", data)
}
