package remotetest

import (
	"encoding/json"
	"net/http"

	"github.com/MKhiriev/go-field-survey/internal/utils"
	"github.com/go-chi/chi/v5"
)

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	healthy := s.healthy
	s.mu.Unlock()

	if !healthy {
		_, _ = utils.WriteJSON(w, map[string]string{"status": "ERROR", "message": "database unavailable"}, http.StatusServiceUnavailable)
		return
	}
	_, _ = utils.WriteJSON(w, map[string]string{"status": "OK", "message": "connected"}, http.StatusOK)
}

func (s *Server) list(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	docs, shape := s.snapshot(), s.shape
	s.mu.Unlock()

	switch shape {
	case ListObservations:
		_, _ = utils.WriteJSON(w, map[string]any{"observations": docs}, http.StatusOK)
	case ListData:
		_, _ = utils.WriteJSON(w, map[string]any{"data": docs}, http.StatusOK)
	default:
		_, _ = utils.WriteJSON(w, docs, http.StatusOK)
	}
}

func (s *Server) get(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key, ok := s.resolve(chi.URLParam(r, "id"))
	if !ok {
		utils.WriteError(w, "observation not found", http.StatusNotFound)
		return
	}
	_, _ = utils.WriteJSON(w, s.docs[key], http.StatusOK)
}

func (s *Server) create(w http.ResponseWriter, r *http.Request) {
	var doc map[string]any
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil || doc == nil {
		utils.WriteError(w, "invalid body", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	delete(doc, "id")
	delete(doc, "_id")

	now := s.clock.Now().UTC().Format(timeLayout)
	if _, ok := doc["created_at"]; !ok {
		doc["created_at"] = now
	}
	doc["updated_at"] = now
	doc["version"] = 1

	id := newObjectID()
	doc["_id"] = id
	s.put(id, doc)

	_, _ = utils.WriteJSON(w, map[string]any{"success": true, "id": id, "_id": id, "version": 1}, http.StatusCreated)
}

func (s *Server) update(w http.ResponseWriter, r *http.Request) {
	var updates map[string]any
	if err := json.NewDecoder(r.Body).Decode(&updates); err != nil || updates == nil {
		utils.WriteError(w, "invalid body", http.StatusBadRequest)
		return
	}

	id := chi.URLParam(r, "id")
	if !objectIDPattern.MatchString(id) {
		utils.WriteError(w, "invalid observation id", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key, ok := s.resolve(id)
	if !ok {
		utils.WriteError(w, "observation not found", http.StatusNotFound)
		return
	}

	existing := s.docs[key]
	version := versionOf(existing) + 1

	delete(updates, "id")
	delete(updates, "_id")
	for k, v := range updates {
		existing[k] = v
	}
	existing["updated_at"] = s.clock.Now().UTC().Format(timeLayout)
	existing["version"] = version

	_, _ = utils.WriteJSON(w, map[string]any{
		"success":  true,
		"modified": 1,
		"version":  version,
		"id":       existing["id"],
		"_id":      key,
	}, http.StatusOK)
}

func (s *Server) delete(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := chi.URLParam(r, "id")
	key, ok := s.resolve(id)
	if !ok || !s.remove(key) {
		utils.WriteError(w, "observation not found", http.StatusNotFound)
		return
	}
	_, _ = utils.WriteJSON(w, map[string]any{"success": true, "deletedCount": 1, "id": id}, http.StatusOK)
}

type migrationEntry struct {
	OldID  string `json:"oldId"`
	NewID  string `json:"newId,omitempty"`
	Status string `json:"status"`
}

// migrateIDs re-inserts every document carrying a string "id" under a fresh
// ObjectId and drops the "id" field.
func (s *Server) migrateIDs(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	report := make([]migrationEntry, 0)
	for _, key := range append([]string(nil), s.order...) {
		doc := s.docs[key]
		oldID, ok := doc["id"].(string)
		if !ok {
			continue
		}

		migrated := make(map[string]any, len(doc))
		for k, v := range doc {
			if k != "id" {
				migrated[k] = v
			}
		}
		newID := newObjectID()
		migrated["_id"] = newID
		s.remove(key)
		s.put(newID, migrated)

		report = append(report, migrationEntry{OldID: oldID, NewID: newID, Status: "success"})
	}

	_, _ = utils.WriteJSON(w, map[string]any{
		"success":  true,
		"total":    len(report),
		"migrated": len(report),
		"failed":   0,
		"report":   report,
	}, http.StatusOK)
}

const timeLayout = "2006-01-02T15:04:05.000Z07:00"

func versionOf(doc map[string]any) int64 {
	switch v := doc["version"].(type) {
	case int:
		return int64(v)
	case int64:
		return v
	case float64:
		return int64(v)
	}
	return 0
}
