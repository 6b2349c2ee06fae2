package form

import (
	"embed"
	"fmt"
	"html/template"
	"io"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// View holds the static parts of the rendered page.
type View struct {
	Title      string
	LogoPath   string
	LogoAlt    string
	ScriptPath string
}

// DefaultView returns the page used when no View is configured.
func DefaultView() View {
	return View{}.withDefaults()
}

func (v View) withDefaults() View {
	if v.Title == "" {
		v.Title = "greetbox"
	}
	if v.LogoPath == "" {
		v.LogoPath = "/logo2.svg"
	}
	if v.LogoAlt == "" {
		v.LogoAlt = "DFINITY logo"
	}
	return v
}

type pageData struct {
	View
	GreetingText string
}

// Render writes the full page: logo, labeled name input, submit button and
// the greeting region holding the current greeting.
func (f *Form) Render(w io.Writer) error {
	data := pageData{View: f.view, GreetingText: f.State().GreetingText}
	if err := pageTemplate.ExecuteTemplate(w, "page.html", data); err != nil {
		return fmt.Errorf("rendering form: %w", err)
	}
	return nil
}

// RenderGreeting writes only the greeting region.
func (f *Form) RenderGreeting(w io.Writer) error {
	data := pageData{View: f.view, GreetingText: f.State().GreetingText}
	if err := pageTemplate.ExecuteTemplate(w, "greeting", data); err != nil {
		return fmt.Errorf("rendering greeting: %w", err)
	}
	return nil
}
