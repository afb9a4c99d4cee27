package tmpl

import (
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
)

// FuncMap is the sprig text function map plus the helpers shared by the
// prompt and deployment templates.
func FuncMap() template.FuncMap {
	funcs := sprig.TxtFuncMap()
	funcs["bullets"] = func(items []string) string {
		if len(items) == 0 {
			return ""
		}
		return "- " + strings.Join(items, "\n- ")
	}
	return funcs
}

func Must(name string, text string) *template.Template {
	return template.Must(template.New(name).Funcs(FuncMap()).Parse(text))
}

func Execute(t *template.Template, data any) (string, error) {
	var buf strings.Builder
	if err := t.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
