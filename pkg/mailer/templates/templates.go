package templates

import (
	"bytes"
	"embed"
	"fmt"
	htmpl "html/template"
	"reflect"
	"strings"
	texttpl "text/template"
	"time"
)

// Each notification type <name> ships three files:
// <name>.subject.tmpl, <name>.text.tmpl and <name>.html.tmpl.
//
//go:embed *.tmpl
var FS embed.FS

// defaultFn supports pipe usage: {{ .Value | default "Fallback" }}
func defaultFn(fallback any, value any) any {
	switch x := value.(type) {
	case string:
		if strings.TrimSpace(x) == "" {
			return fallback
		}
		return x
	case nil:
		return fallback
	default:
		rv := reflect.ValueOf(value)
		if rv.IsZero() {
			return fallback
		}
		return value
	}
}

func funcs() map[string]any {
	return map[string]any{
		"now":        func() time.Time { return time.Now().UTC() },
		"formatTime": func(t time.Time, layout string) string { return t.Format(layout) },
		"upper":      strings.ToUpper,
		"default":    defaultFn,
	}
}

// Parsed once at startup; a broken template fails the process early.
var (
	textSet = texttpl.Must(texttpl.New("text").Funcs(funcs()).ParseFS(FS, "*.subject.tmpl", "*.text.tmpl"))
	htmlSet = htmpl.Must(htmpl.New("html").Funcs(funcs()).ParseFS(FS, "*.html.tmpl"))
)

func execText(name string, data any) (string, error) {
	tpl := textSet.Lookup(name)
	if tpl == nil {
		return "", fmt.Errorf("unknown template %q", name)
	}
	var buf bytes.Buffer
	if err := tpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("exec %q: %w", name, err)
	}
	return buf.String(), nil
}

func execHTML(name string, data any) (string, error) {
	tpl := htmlSet.Lookup(name)
	if tpl == nil {
		return "", fmt.Errorf("unknown template %q", name)
	}
	var buf bytes.Buffer
	if err := tpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("exec %q: %w", name, err)
	}
	return buf.String(), nil
}

// Render produces the subject, text and html bodies of notification type name.
func Render(name string, data any) (subject string, text string, html string, err error) {
	if subject, err = execText(name+".subject.tmpl", data); err != nil {
		return "", "", "", err
	}
	if text, err = execText(name+".text.tmpl", data); err != nil {
		return "", "", "", err
	}
	if html, err = execHTML(name+".html.tmpl", data); err != nil {
		return "", "", "", err
	}
	return subject, text, html, nil
}

// Types lists the notification types with a complete template set.
func Types() []string {
	var out []string
	for _, t := range textSet.Templates() {
		name, ok := strings.CutSuffix(t.Name(), ".subject.tmpl")
		if !ok {
			continue
		}
		if textSet.Lookup(name+".text.tmpl") != nil && htmlSet.Lookup(name+".html.tmpl") != nil {
			out = append(out, name)
		}
	}
	return out
}
