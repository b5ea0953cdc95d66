// Package web serves the browsing views and their JSON twins over HTTP.
package web

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/gorilla/mux"
	"golang.org/x/text/language"

	"mmpstats/internal/calendar"
	"mmpstats/internal/logger"
	"mmpstats/internal/media"
	"mmpstats/internal/models"
	"mmpstats/pkg/metadata"
)

// DatasetLoader loads the three collections for one request.
type DatasetLoader interface {
	LoadAll(ctx context.Context) (*models.Dataset, *metadata.Metadata, error)
}

// Options configures a Server.
type Options struct {
	// MediaRoot is served under /img/ and /assets/img/ and scanned for galleries. Empty disables both.
	MediaRoot      string
	CalendarDomain string
	Collation      language.Tag
}

// Server renders the views. Every request loads the collections afresh.
type Server struct {
	loader   DatasetLoader
	media    *media.Resolver
	calendar *calendar.Exporter
	pages    *pages
	logger   *logger.Logger
	router   *mux.Router
	opts     Options
}

// NewServer creates a server reading from loader.
func NewServer(loader DatasetLoader, opts Options, log *logger.Logger) (*Server, error) {
	if log == nil {
		log = logger.Discard()
	}

	p, err := parsePages()
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	s := &Server{
		loader:   loader,
		media:    media.NewResolver(opts.MediaRoot),
		calendar: calendar.NewExporter(opts.CalendarDomain),
		pages:    p,
		logger:   log,
		opts:     opts,
	}
	s.router = s.routes()

	return s, nil
}

func (s *Server) routes() *mux.Router {
	r := mux.NewRouter()
	r.Use(s.requestID, s.accessLog)

	get := []string{http.MethodGet, http.MethodHead}

	r.HandleFunc("/", s.handleTimeline("timeline")).Methods(get...)
	r.HandleFunc("/other", s.handleTimeline("other")).Methods(get...)
	r.HandleFunc("/hall", s.handleHall).Methods(get...)
	r.HandleFunc("/participants", s.handleRoster).Methods(get...)
	r.HandleFunc("/participant/{id}", s.handlePerson).Methods(get...)
	r.HandleFunc("/events.ics", s.handleCalendar).Methods(get...)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/events", s.handleTimelineJSON).Methods(get...)
	api.HandleFunc("/hall", s.handleHallJSON).Methods(get...)
	api.HandleFunc("/participants", s.handleRosterJSON).Methods(get...)
	api.HandleFunc("/participant/{id}", s.handlePersonJSON).Methods(get...)

	if s.opts.MediaRoot != "" {
		files := http.FileServer(noListing{http.Dir(s.opts.MediaRoot)})
		r.PathPrefix("/img/").Handler(files).Methods(get...)
		r.PathPrefix("/assets/img/").Handler(files).Methods(get...)
	}

	// Unknown paths go back to the listing; middleware does not run for them.
	r.NotFoundHandler = http.RedirectHandler("/", http.StatusFound)

	return r
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// noListing hides directory indexes of the media root.
type noListing struct {
	fs http.FileSystem
}

func (n noListing) Open(name string) (http.File, error) {
	f, err := n.fs.Open(name)
	if err != nil {
		return nil, err
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()

		return nil, err
	}

	if info.IsDir() {
		f.Close()

		return nil, os.ErrNotExist
	}

	return f, nil
}
