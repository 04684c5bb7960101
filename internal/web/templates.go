package web // import "github.com/Xunop/gutenbrowse/internal/web"

import (
	"embed"
	"html/template"
	"strings"

	"github.com/Xunop/gutenbrowse/internal/model"
	"github.com/dustin/go-humanize"
)

//go:embed templates/*.html
var templateFS embed.FS

var templateFuncs = template.FuncMap{
	"comma": func(n int) string {
		return humanize.Comma(int64(n))
	},
	"languages": func(codes []string) string {
		names := make([]string, 0, len(codes))
		for _, code := range codes {
			names = append(names, model.LanguageName(code))
		}
		return strings.Join(names, ", ")
	},
	"authors": func(people []model.Person) string {
		names := make([]string, 0, len(people))
		for _, p := range people {
			names = append(names, p.Name)
		}
		return strings.Join(names, " ")
	},
}

func parseTemplates() (*template.Template, error) {
	return template.New("").Funcs(templateFuncs).ParseFS(templateFS, "templates/*.html")
}
