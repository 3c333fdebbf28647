package server

import (
	"embed"
	"html/template"
	"io/fs"
	"net/http"

	"github.com/rs/zerolog/log"
)

//go:embed templates/*
var templateFiles embed.FS

func TemplateFilesFS() fs.FS {
	subFS, err := fs.Sub(templateFiles, "templates")
	if err != nil {
		panic("Failed to create templates sub filesystem: " + err.Error())
	}
	return subFS
}

// ParseTemplate parses a template from the embedded filesystem
func ParseTemplate(name string) (*template.Template, error) {
	content, err := fs.ReadFile(TemplateFilesFS(), name)
	if err != nil {
		return nil, err
	}
	return template.New(name).Parse(string(content))
}

func (s *Server) renderTemplate(w http.ResponseWriter, name string, data any) {
	tmpl, err := ParseTemplate(name)
	if err != nil {
		log.Err(err).Str("template", name).Msg("failed to parse template")
		http.Error(w, "500 - Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.Execute(w, data); err != nil {
		log.Err(err).Str("template", name).Msg("failed to render template")
	}
}

// renderLoader is shown while a signed-in user's role is still being
// resolved; the page refreshes itself until the session settles.
func (s *Server) renderLoader(w http.ResponseWriter) {
	s.renderTemplate(w, "loading.html", nil)
}
