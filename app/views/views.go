// Package views renders the storefront pages from embedded templates.
// Controllers pass a Data value; rendering failures return an error so the
// controller can fall back to a plain 500.
package views

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/aferchichi/stockshop/pkg/logger"
	"github.com/aferchichi/stockshop/pkg/response"
)

//go:embed templates/*.html
var files embed.FS

var pages = template.Must(template.New("").Funcs(template.FuncMap{
	"money": func(v float64) string { return fmt.Sprintf("%.2f", v) },
}).ParseFS(files, "templates/*.html"))

// Data is the common template payload. Page-specific values go in Props.
type Data struct {
	Title     string
	SignedIn  bool
	CartCount int
	Errors    []string
	Props     map[string]interface{}
}

// Render writes the named page wrapped in the layout. The page is rendered
// into a buffer first so a template error never emits a half-written body.
func Render(w http.ResponseWriter, status int, page string, data Data) {
	if data.Props == nil {
		data.Props = map[string]interface{}{}
	}

	var buf bytes.Buffer
	if err := pages.ExecuteTemplate(&buf, page, data); err != nil {
		logger.Error("views: render failed", "page", page, "error", err)
		response.Error(w, http.StatusInternalServerError, "template error")
		return
	}
	response.HTML(w, status, buf.Bytes())
}
