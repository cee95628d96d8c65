// Package site serves the public pages and the gated library. Pages are
// minimal server-rendered HTML; the real presentation layer lives elsewhere
// and consumes the same facade.
package site

import (
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lanternclub/membergate/content"
	"github.com/lanternclub/membergate/membership"
)

type Service struct {
	members *membership.Members
	items   content.Repository
	log     *slog.Logger
}

func NewService(members *membership.Members, items content.Repository, log *slog.Logger) *Service {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Service{members: members, items: items, log: log}
}

// Router mounts the site pages at the root. The access gate decides which
// of them require a membership.
func Router(s *Service) chi.Router {
	r := chi.NewRouter()
	r.Get("/", s.home)
	r.Get("/join", s.join)
	r.Get("/library/{slug}", s.libraryItem)
	return r
}

var pageTmpl = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html><head><title>{{.Title}}</title></head>
<body>{{if .Greeting}}<p>{{.Greeting}}</p>{{end}}
<h1>{{.Title}}</h1>
<div>{{.Body}}</div></body></html>`))

type pageData struct {
	Title    string
	Greeting string
	Body     template.HTML
}

func (s *Service) render(w http.ResponseWriter, r *http.Request, data pageData) {
	if claims, ok := s.members.Current(r); ok && claims.IsActive() && claims.FirstName != "" {
		data.Greeting = fmt.Sprintf("Welcome back, %s.", claims.FirstName)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTmpl.Execute(w, data); err != nil {
		s.log.ErrorContext(r.Context(), "failed to render page", "error", err)
	}
}

func (s *Service) home(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, pageData{
		Title: "The Lantern Club",
		Body:  "A reading club for people who still finish essays.",
	})
}

func (s *Service) join(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, pageData{
		Title: "Join the club",
		Body:  "Membership unlocks the full library.",
	})
}

func (s *Service) libraryItem(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	item, err := s.items.GetBySlug(r.Context(), slug)
	if err != nil {
		if errors.Is(err, content.ErrItemNotFound) {
			http.NotFound(w, r)
			return
		}
		s.log.ErrorContext(r.Context(), "failed to load library item", "slug", slug, "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	s.render(w, r, pageData{
		Title: item.Title,
		Body:  template.HTML(item.Body),
	})
}
