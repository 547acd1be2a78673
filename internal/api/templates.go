package api

import (
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"net/url"
)

//go:embed templates/*.html
var templateFS embed.FS

func LoadTemplates() (*template.Template, error) {
	funcs := template.FuncMap{
		"add": func(a, b int) int { return a + b },
		"sub": func(a, b int) int { return a - b },
		"list": func(vs ...any) []any { return vs },
		// pct renders a fraction as a percentage with one decimal.
		"pct": func(f float64) string {
			return fmt.Sprintf("%.1f%%", f*100)
		},
		// getFilter extracts a single value from url.Values (returns first value or empty string)
		"getFilter": func(values url.Values, key string) string {
			if values == nil {
				return ""
			}
			return values.Get(key)
		},
		// json marshals a value to JSON string
		"json": func(v any) (string, error) {
			b, err := json.Marshal(v)
			if err != nil {
				return "", err
			}
			return string(b), nil
		},
	}

	return template.New("base").Funcs(funcs).ParseFS(templateFS, "templates/*.html")
}
