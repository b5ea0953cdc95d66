package web

import (
	"bytes"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"mmpstats/internal/calendar"
	"mmpstats/internal/loader"
	"mmpstats/internal/models"
	"mmpstats/internal/stats"
)

// Messages shown in error states.
const (
	MsgLoadFailed       = "could not load data"
	MsgPersonNotFound   = "participant not found"
	MsgCalendarNotFound = "no dated events to export"
)

// dataset loads the collections, sets the ETag and answers conditional
// requests. It returns false when the response has already been written.
// A failed upstream fetch is a 502; any other loader error is a 500.
func (s *Server) dataset(w http.ResponseWriter, r *http.Request, asJSON bool) (*models.Dataset, bool) {
	ds, meta, err := s.loader.LoadAll(r.Context())
	if err != nil {
		s.logger.Error("load failed", "error", err, "request_id", RequestID(r.Context()))

		status := http.StatusInternalServerError
		if loader.IsFetchError(err) {
			status = http.StatusBadGateway
		}

		s.renderError(w, r, asJSON, status, MsgLoadFailed)

		return nil, false
	}

	if etag := meta.ETag(); etag != "" {
		w.Header().Set("ETag", etag)
	}

	if meta.MatchesETag(r.Header.Get("If-None-Match")) {
		w.WriteHeader(http.StatusNotModified)

		return nil, false
	}

	return ds, true
}

func (s *Server) timeline(ds *models.Dataset) []models.TimelineEntry {
	return stats.Timeline(ds, s.media.Gallery)
}

func (s *Server) handleTimeline(page string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ds, ok := s.dataset(w, r, false)
		if !ok {
			return
		}

		s.renderHTML(w, r, http.StatusOK, page, view{Title: "Events", Nav: "events", Data: s.timeline(ds)})
	}
}

func (s *Server) handleTimelineJSON(w http.ResponseWriter, r *http.Request) {
	ds, ok := s.dataset(w, r, true)
	if !ok {
		return
	}

	s.renderJSON(w, r, http.StatusOK, s.timeline(ds))
}

func (s *Server) handleHall(w http.ResponseWriter, r *http.Request) {
	ds, ok := s.dataset(w, r, false)
	if !ok {
		return
	}

	s.renderHTML(w, r, http.StatusOK, "hall", view{Title: "Hall of Fame", Nav: "hall", Data: stats.ComputeHall(ds)})
}

func (s *Server) handleHallJSON(w http.ResponseWriter, r *http.Request) {
	ds, ok := s.dataset(w, r, true)
	if !ok {
		return
	}

	s.renderJSON(w, r, http.StatusOK, stats.ComputeHall(ds))
}

func (s *Server) handleRoster(w http.ResponseWriter, r *http.Request) {
	ds, ok := s.dataset(w, r, false)
	if !ok {
		return
	}

	s.renderHTML(w, r, http.StatusOK, "participants", view{
		Title: "Participants",
		Nav:   "participants",
		Data:  stats.Roster(ds, s.opts.Collation),
	})
}

func (s *Server) handleRosterJSON(w http.ResponseWriter, r *http.Request) {
	ds, ok := s.dataset(w, r, true)
	if !ok {
		return
	}

	s.renderJSON(w, r, http.StatusOK, stats.Roster(ds, s.opts.Collation))
}

// person resolves the {id} route variable. Malformed ids are reported as not found.
func (s *Server) person(w http.ResponseWriter, r *http.Request, asJSON bool) (*models.PersonStats, bool) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		s.renderError(w, r, asJSON, http.StatusNotFound, MsgPersonNotFound)

		return nil, false
	}

	ds, ok := s.dataset(w, r, asJSON)
	if !ok {
		return nil, false
	}

	ps, err := stats.PersonHistory(ds, id)
	if errors.Is(err, stats.ErrPersonNotFound) {
		s.renderError(w, r, asJSON, http.StatusNotFound, MsgPersonNotFound)

		return nil, false
	}

	if err != nil {
		s.logger.Error("person history failed", "id", id, "error", err, "request_id", RequestID(r.Context()))
		s.renderError(w, r, asJSON, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))

		return nil, false
	}

	return ps, true
}

func (s *Server) handlePerson(w http.ResponseWriter, r *http.Request) {
	ps, ok := s.person(w, r, false)
	if !ok {
		return
	}

	s.renderHTML(w, r, http.StatusOK, "participant", view{Title: ps.Name, Nav: "participants", Data: ps})
}

func (s *Server) handlePersonJSON(w http.ResponseWriter, r *http.Request) {
	ps, ok := s.person(w, r, true)
	if !ok {
		return
	}

	s.renderJSON(w, r, http.StatusOK, ps)
}

func (s *Server) handleCalendar(w http.ResponseWriter, r *http.Request) {
	ds, ok := s.dataset(w, r, false)
	if !ok {
		return
	}

	var buf bytes.Buffer

	err := s.calendar.Encode(&buf, stats.Timeline(ds, nil))
	if errors.Is(err, calendar.ErrEmptyCalendar) {
		http.Error(w, MsgCalendarNotFound, http.StatusNotFound)

		return
	}

	if err != nil {
		s.logger.Error("calendar export failed", "error", err, "request_id", RequestID(r.Context()))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")

	if r.Method != http.MethodHead {
		_, _ = buf.WriteTo(w)
	}
}
