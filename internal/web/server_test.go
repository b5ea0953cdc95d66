package web

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"mmpstats/internal/loader"
	"mmpstats/internal/logger"
	"mmpstats/internal/models"
	"mmpstats/pkg/metadata"
)

// MockLoader mocks the dataset loader.
type MockLoader struct {
	mock.Mock
}

func (m *MockLoader) LoadAll(ctx context.Context) (*models.Dataset, *metadata.Metadata, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}

	return args.Get(0).(*models.Dataset), args.Get(1).(*metadata.Metadata), args.Error(2)
}

func role(userID int, r string) models.CastEntry {
	return models.CastEntry{UserID: models.IntPtr(userID), Role: r}
}

func sampleDataset() *models.Dataset {
	return &models.Dataset{
		Events: []models.Event{
			{ID: 1, Code: "MMP1", Title: "Opening", Date: "2023-01-05", HostID: models.IntPtr(1), HostIDs: []int{1}, LocationID: 10, Canon: true,
				Cast: []models.CastEntry{role(2, "Villain")}, Media: []string{"a.jpg", "b.mp4"}},
			{ID: 2, Code: "MMP2", Title: "Garden <Party>", Date: "2023-02-05", HostID: models.IntPtr(2), HostIDs: []int{2}, LocationID: 20, Canon: true,
				Cast: []models.CastEntry{role(1, "Hero"), role(3, "")}},
		},
		People:    []models.Person{{ID: 1, Name: "Ada"}, {ID: 2, Name: "Bruno"}, {ID: 3, Name: "Chiara"}},
		Locations: []models.Location{{ID: 10, Name: "Cellar"}, {ID: 20, Name: "Garden"}},
	}
}

func sampleMeta() *metadata.Metadata {
	return &metadata.Metadata{Hash: "abcdef0123456789abcdef"}
}

func newTestServer(t *testing.T, ml *MockLoader, opts Options) *Server {
	t.Helper()

	if opts.Collation == (language.Tag{}) {
		opts.Collation = language.Und
	}

	if opts.CalendarDomain == "" {
		opts.CalendarDomain = "test.local"
	}

	s, err := NewServer(ml, opts, logger.Discard())
	require.NoError(t, err)

	return s
}

func serve(s *Server, method, target string, header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	for k, v := range header {
		req.Header[http.CanonicalHeaderKey(k)] = v
	}

	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	return rec
}

func okLoader() *MockLoader {
	ml := new(MockLoader)
	ml.On("LoadAll", mock.Anything).Return(sampleDataset(), sampleMeta(), nil)

	return ml
}

func TestViews_RenderHTML(t *testing.T) {
	s := newTestServer(t, okLoader(), Options{})

	tests := []struct {
		path     string
		contains []string
	}{
		{"/", []string{"MMP2 Garden &lt;Party&gt;", "hosted by Bruno", `href="/participant/2"`, `src="/img/1/a.jpg"`, `<video src="/img/1/b.mp4"`}},
		{"/other", []string{"<table>", "Cellar"}},
		{"/hall", []string{"Hall of Fame", "<td>1-2</td>"}},
		{"/participants", []string{"Ada", "2 appearances", "1 appearance"}},
		{"/participant/1", []string{"<h1>Ada</h1>", "Hero", "hosted 1 time", "Characters"}},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := serve(s, http.MethodGet, tt.path, nil)

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
			assert.Equal(t, `"abcdef0123456789"`, rec.Header().Get("ETag"))

			for _, want := range tt.contains {
				assert.Contains(t, rec.Body.String(), want)
			}
		})
	}
}

func TestAPI_Hall(t *testing.T) {
	s := newTestServer(t, okLoader(), Options{})

	rec := serve(s, http.MethodGet, "/api/hall", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var hall models.Hall
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &hall))

	require.Len(t, hall.Hosts, 2)
	assert.Equal(t, "1-2", hall.Hosts[0].Rank)
	assert.Equal(t, "Ada", hall.Hosts[0].Name)

	require.Len(t, hall.Participants, 3)
	assert.Equal(t, "Ada", hall.Participants[0].Name)
	assert.Equal(t, 2, hall.Participants[0].Count)
}

func TestAPI_EventsAndRoster(t *testing.T) {
	s := newTestServer(t, okLoader(), Options{})

	rec := serve(s, http.MethodGet, "/api/events", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var entries []models.TimelineEntry
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &entries))
	require.Len(t, entries, 2)
	assert.Equal(t, 2, entries[0].ID)
	assert.Len(t, entries[1].Media, 2)

	rec = serve(s, http.MethodGet, "/api/participants", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var roster []models.RosterEntry
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &roster))
	require.Len(t, roster, 3)
	assert.Equal(t, []string{"Ada", "Bruno", "Chiara"}, []string{roster[0].Name, roster[1].Name, roster[2].Name})
}

func TestAPI_Person(t *testing.T) {
	s := newTestServer(t, okLoader(), Options{})

	rec := serve(s, http.MethodGet, "/api/participant/3", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var ps models.PersonStats
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ps))
	assert.Equal(t, "Chiara", ps.Name)
	assert.Equal(t, 1, ps.TotalAppearances)
	assert.Empty(t, ps.Characters)
	require.Len(t, ps.Appearances, 1)
	assert.Nil(t, ps.Appearances[0].Role)
}

func TestPerson_NotFound(t *testing.T) {
	s := newTestServer(t, okLoader(), Options{})

	for _, path := range []string{"/participant/99", "/participant/abc"} {
		rec := serve(s, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code, path)
		assert.Contains(t, rec.Body.String(), MsgPersonNotFound, path)
	}

	rec := serve(s, http.MethodGet, "/api/participant/99", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"participant not found"}`, rec.Body.String())
}

func TestLoadFailure(t *testing.T) {
	ml := new(MockLoader)
	ml.On("LoadAll", mock.Anything).Return(nil, nil, &loader.FetchError{
		Err:      loader.ErrNotArray,
		Resource: loader.ResourcePeople,
		Source:   "people.json",
	})

	s := newTestServer(t, ml, Options{})

	rec := serve(s, http.MethodGet, "/hall", nil)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), MsgLoadFailed)

	rec = serve(s, http.MethodGet, "/api/events", nil)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.JSONEq(t, `{"error":"could not load data"}`, rec.Body.String())

	ml.AssertNumberOfCalls(t, "LoadAll", 2)
}

func TestLoadFailure_NonFetchError(t *testing.T) {
	ml := new(MockLoader)
	ml.On("LoadAll", mock.Anything).Return(nil, nil, context.Canceled)

	s := newTestServer(t, ml, Options{})

	rec := serve(s, http.MethodGet, "/api/hall", nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"could not load data"}`, rec.Body.String())
}

func TestConditionalRequest(t *testing.T) {
	s := newTestServer(t, okLoader(), Options{})

	rec := serve(s, http.MethodGet, "/api/hall", http.Header{"If-None-Match": {`"abcdef0123456789"`}})
	assert.Equal(t, http.StatusNotModified, rec.Code)
	assert.Empty(t, rec.Body.String())

	rec = serve(s, http.MethodGet, "/api/hall", http.Header{"If-None-Match": {`"stale"`}})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequestID(t *testing.T) {
	s := newTestServer(t, okLoader(), Options{})

	rec := serve(s, http.MethodGet, "/api/events", nil)
	_, err := uuid.Parse(rec.Header().Get(RequestIDHeader))
	assert.NoError(t, err)

	incoming := uuid.NewString()
	rec = serve(s, http.MethodGet, "/api/events", http.Header{RequestIDHeader: {incoming}})
	assert.Equal(t, incoming, rec.Header().Get(RequestIDHeader))

	rec = serve(s, http.MethodGet, "/api/events", http.Header{RequestIDHeader: {"<script>"}})
	assert.NotEqual(t, "<script>", rec.Header().Get(RequestIDHeader))
}

func TestUnknownPathRedirects(t *testing.T) {
	ml := new(MockLoader)
	s := newTestServer(t, ml, Options{})

	rec := serve(s, http.MethodGet, "/nowhere/at/all", nil)
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))

	ml.AssertNotCalled(t, "LoadAll", mock.Anything)
}

func TestCalendar(t *testing.T) {
	s := newTestServer(t, okLoader(), Options{CalendarDomain: "mmp.example"})

	rec := serve(s, http.MethodGet, "/events.ics", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/calendar")

	body := rec.Body.String()
	assert.Contains(t, body, "BEGIN:VCALENDAR")
	assert.Contains(t, body, "UID:mmp-1@mmp.example")
	assert.Equal(t, 2, strings.Count(body, "BEGIN:VEVENT"))
}

func TestCalendar_NoDatedEvents(t *testing.T) {
	ml := new(MockLoader)
	ml.On("LoadAll", mock.Anything).Return(&models.Dataset{Events: []models.Event{{ID: 1}}}, sampleMeta(), nil)

	s := newTestServer(t, ml, Options{})

	rec := serve(s, http.MethodGet, "/events.ics", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMediaFiles(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "img", "2"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "img", "2", "1.png"), []byte("png"), 0o600))

	s := newTestServer(t, okLoader(), Options{MediaRoot: root})

	rec := serve(s, http.MethodGet, "/img/2/1.png", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "png", rec.Body.String())

	rec = serve(s, http.MethodGet, "/img/2/", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = serve(s, http.MethodGet, "/api/events", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"url":"img/2/1.png"`)
}

func TestHeadRequest(t *testing.T) {
	s := newTestServer(t, okLoader(), Options{})

	rec := serve(s, http.MethodHead, "/hall", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestNewServer_NilLogger(t *testing.T) {
	s, err := NewServer(okLoader(), Options{}, nil)
	require.NoError(t, err)
	assert.NotNil(t, s)
}
