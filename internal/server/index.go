package server

import (
	_ "embed"
	"html/template"
	"net/http"
)

//go:embed index.html
var indexHTML string

var indexTmpl = template.Must(template.New("index").Parse(indexHTML))

// handleIndex serves the HTML overview of loaded profiles.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	list := s.store.List()
	infos := make([]profileInfo, 0, len(list))
	for _, p := range list {
		infos = append(infos, infoFor(p))
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTmpl.Execute(w, map[string]any{"Profiles": infos}); err != nil {
		s.logger.Error("render index", "error", err)
	}
}
