package remotetest

import (
	"encoding/hex"
	"maps"
	"net/http"
	"regexp"
	"sync"

	"github.com/MKhiriev/go-field-survey/internal/logger"
	"github.com/MKhiriev/go-field-survey/internal/utils"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

// ListShape selects how GET /api/observations wraps the collection.
type ListShape int

const (
	// ListArray answers a bare JSON array.
	ListArray ListShape = iota
	// ListObservations answers {"observations": [...]}.
	ListObservations
	// ListData answers {"data": [...]}.
	ListData
)

var objectIDPattern = regexp.MustCompile(`^[0-9a-fA-F]{24}$`)

// Server is an in-memory remote observation API.
type Server struct {
	mu       sync.Mutex
	docs     map[string]map[string]any
	order    []string
	healthy  bool
	shape    ListShape
	failures map[string][]int
	calls    map[string]int

	clock  utils.Clock
	logger *logger.Logger
}

// NewServer returns an empty, healthy server. A nil log discards output.
func NewServer(log *logger.Logger) *Server {
	if log == nil {
		log = logger.Nop()
	}
	return &Server{
		docs:     make(map[string]map[string]any),
		healthy:  true,
		failures: make(map[string][]int),
		calls:    make(map[string]int),
		clock:    utils.NewClock(),
		logger:   log,
	}
}

// Handler returns the chi router serving the API.
func (s *Server) Handler() http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(s.withTraceID)
	router.Use(s.withLogging)
	router.Use(s.withScriptedFailures)

	router.Get("/api/health", s.health)
	router.Route("/api/observations", func(r chi.Router) {
		r.Get("/", s.list)
		r.Post("/", s.create)
		r.Get("/{id}", s.get)
		r.Put("/{id}", s.update)
		r.Patch("/{id}", s.update)
		r.Delete("/{id}", s.delete)
	})
	router.Post("/api/migrate-ids", s.migrateIDs)

	return router
}

// SetHealthy toggles the health endpoint between 200 and 503.
func (s *Server) SetHealthy(healthy bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.healthy = healthy
}

// SetListShape changes the listing envelope.
func (s *Server) SetListShape(shape ListShape) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.shape = shape
}

// SetClock replaces the clock used for server-side timestamps.
func (s *Server) SetClock(clock utils.Clock) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clock = clock
}

// FailNext makes the next requests matching method answer the given statuses,
// one per request, before the route behaves normally again.
func (s *Server) FailNext(method string, statuses ...int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[method] = append(s.failures[method], statuses...)
}

// Calls returns how many requests with method reached the server.
func (s *Server) Calls(method string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[method]
}

// Seed stores doc as-is and returns its id. A missing string "_id" is
// assigned a fresh ObjectId.
func (s *Server) Seed(doc map[string]any) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc = maps.Clone(doc)
	id, _ := doc["_id"].(string)
	if id == "" {
		id = newObjectID()
		doc["_id"] = id
	}
	s.put(id, doc)
	return id
}

// Doc returns a copy of the document stored under id.
func (s *Server) Doc(id string) (map[string]any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.docs[id]
	if !ok {
		return nil, false
	}
	return maps.Clone(doc), true
}

// Docs returns copies of every document in insertion order.
func (s *Server) Docs() []map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

// Remove deletes id directly, as another client would.
func (s *Server) Remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.remove(id)
}

func (s *Server) put(id string, doc map[string]any) {
	if _, exists := s.docs[id]; !exists {
		s.order = append(s.order, id)
	}
	s.docs[id] = doc
}

func (s *Server) remove(id string) bool {
	if _, ok := s.docs[id]; !ok {
		return false
	}
	delete(s.docs, id)
	for i, v := range s.order {
		if v == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true
}

func (s *Server) snapshot() []map[string]any {
	out := make([]map[string]any, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, maps.Clone(s.docs[id]))
	}
	return out
}

// resolve finds a document by ObjectId, or by its legacy "id" field.
func (s *Server) resolve(id string) (string, bool) {
	if objectIDPattern.MatchString(id) {
		_, ok := s.docs[id]
		return id, ok
	}
	for _, key := range s.order {
		if legacy, ok := s.docs[key]["id"].(string); ok && legacy == id {
			return key, true
		}
	}
	return "", false
}

// newObjectID returns 24 hex characters built from a random UUID.
func newObjectID() string {
	u := uuid.New()
	return hex.EncodeToString(u[:12])
}
