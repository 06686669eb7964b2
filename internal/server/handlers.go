package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/aretw0/pxnote/pkg/core"
	"github.com/aretw0/pxnote/pkg/notes"
)

func (s *Server) repoFor(r *http.Request) (*notes.Remote, bool) {
	category := core.Category(chi.URLParam(r, "category"))
	repo, ok := s.repos[category]
	return repo, ok
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	repo, ok := s.repoFor(r)
	if !ok {
		writeMessage(w, http.StatusNotFound, "unknown category")
		return
	}

	all, err := repo.List(r.Context())
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, all)
}

func (s *Server) handleUpsert(w http.ResponseWriter, r *http.Request) {
	repo, ok := s.repoFor(r)
	if !ok {
		writeMessage(w, http.StatusNotFound, "unknown category")
		return
	}

	id, fields, err := decodeNoteBody(r)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	stored, created, err := repo.Upsert(r.Context(), id, fields)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	status := http.StatusOK
	message := "note updated"
	if created {
		status = http.StatusCreated
		message = "note saved"
	}
	writeJSON(w, status, map[string]string{
		"message": message,
		"id":      stored.ID,
	})
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	repo, ok := s.repoFor(r)
	if !ok {
		writeMessage(w, http.StatusNotFound, "unknown category")
		return
	}

	id := r.URL.Query().Get("id")
	if id == "" {
		writeMessage(w, http.StatusBadRequest, "missing note id")
		return
	}
	if _, err := uuid.Parse(id); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid note id")
		return
	}

	if err := repo.Delete(r.Context(), id); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, "note deleted")
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	components := map[string]any{
		s.manager.ComponentType(): s.manager.State(),
	}
	for category, repo := range s.repos {
		components[string(category)] = repo.State()
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":     "ok",
		"components": components,
	})
}

// decodeNoteBody extracts the optional id and the content fields from a
// POST body. Server-owned fields (createdAt, weekOf) are dropped silently:
// clients echo whole notes back on edit and the server decides those.
func decodeNoteBody(r *http.Request) (string, core.Fields, error) {
	var body map[string]any
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(&body); err != nil {
		return "", nil, errors.New("malformed JSON body")
	}

	var id string
	fields := core.Fields{}
	for key, value := range body {
		switch key {
		case "id", "_id":
			str, ok := value.(string)
			if !ok {
				return "", nil, errors.New("note id must be a string")
			}
			// Same rule DELETE applies: every id this API accepts it can
			// also delete.
			if _, err := uuid.Parse(str); err != nil {
				return "", nil, errors.New("invalid note id")
			}
			id = str
		case "createdAt", "weekOf":
			// server-owned, ignored
		default:
			str, ok := value.(string)
			if !ok {
				return "", nil, errors.New("note fields must be strings")
			}
			fields[key] = str
		}
	}
	return id, fields, nil
}

// writeError maps domain errors to status codes. Persistence details stay
// in the log; the response carries a generic message only.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	if verr, ok := core.IsValidation(err); ok {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"message": "validation failed",
			"fields":  verr.Fields,
		})
		return
	}
	if errors.Is(err, core.ErrNotFound) {
		writeMessage(w, http.StatusNotFound, "note not found")
		return
	}
	s.internalError(w, r, err)
}

func (s *Server) internalError(w http.ResponseWriter, r *http.Request, err error) {
	s.logger.Error("request failed",
		"method", r.Method,
		"path", r.URL.Path,
		"error", err,
	)
	writeMessage(w, http.StatusInternalServerError, "internal server error")
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
