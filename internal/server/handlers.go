package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/meltforce/repbook/internal/routine"
	"github.com/meltforce/repbook/internal/storage"
	"github.com/meltforce/repbook/internal/training"
)

func (s *Server) handleListRoutines(w http.ResponseWriter, r *http.Request) {
	rows, err := s.db.ListRoutines(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeOK(w, map[string]any{"routines": rows})
}

func (s *Server) handleGetRoutine(w http.ResponseWriter, r *http.Request) {
	row, err := s.db.GetRoutine(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, storage.ErrNotFound) {
		writeError(w, http.StatusNotFound, errors.New("routine not found"))
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeOK(w, map[string]any{"routine": row})
}

type putRoutineRequest struct {
	Nombre  string          `json:"nombre"`
	Routine json.RawMessage `json:"routine"`
}

func (s *Server) handlePutRoutine(w http.ResponseWriter, r *http.Request) {
	var req putRoutineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, errors.New("invalid JSON: "+err.Error()))
		return
	}

	// Store the canonical form, not whatever the client sent.
	normalized := routine.ParseAndNormalize(req.Routine)
	doc, err := json.Marshal(normalized)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	id, err := s.db.UpsertRoutine(r.Context(), storage.RoutineRow{
		ID:     chi.URLParam(r, "id"),
		Nombre: req.Nombre,
		Dias:   len(normalized),
		Doc:    doc,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeOK(w, map[string]any{"id": id, "dias": len(normalized)})
}

func (s *Server) handleDeleteRoutine(w http.ResponseWriter, r *http.Request) {
	err := s.db.DeleteRoutine(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, storage.ErrNotFound) {
		writeError(w, http.StatusNotFound, errors.New("routine not found"))
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeOK(w, nil)
}

func (s *Server) handleActivateRoutine(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	row, err := s.db.GetRoutine(r.Context(), id)
	if errors.Is(err, storage.ErrNotFound) {
		writeError(w, http.StatusNotFound, errors.New("routine not found"))
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	if err := s.db.SetActiveRoutine(r.Context(), row.ID, row.Nombre); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeOK(w, map[string]any{"id": row.ID, "nombre": row.Nombre})
}

func (s *Server) handleGetActiveRoutine(w http.ResponseWriter, r *http.Request) {
	id, nombre, err := s.db.GetActiveRoutine(r.Context())
	if errors.Is(err, storage.ErrNotFound) {
		writeError(w, http.StatusNotFound, errors.New("no active routine"))
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeOK(w, map[string]any{"id": id, "nombre": nombre})
}

func (s *Server) handleGetProgress(w http.ResponseWriter, r *http.Request) {
	week, err := queryInt(r, "week")
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	p, err := s.db.QueryWeek(r.Context(), week)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeOK(w, map[string]any{"week": week, "progress": p})
}

func (s *Server) handlePostProgress(w http.ResponseWriter, r *http.Request) {
	p := training.NewProgress()
	if err := json.NewDecoder(r.Body).Decode(p); err != nil {
		writeError(w, http.StatusBadRequest, errors.New("invalid JSON: "+err.Error()))
		return
	}

	written, err := s.db.UpsertProgress(r.Context(), p)
	if err != nil {
		s.log.Error("progress upsert error", "error", err)
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeOK(w, map[string]any{"written": written})
}

func (s *Server) handleGetTrend(w http.ResponseWriter, r *http.Request) {
	week, err := queryInt(r, "week")
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	day, err := queryInt(r, "day")
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	set, err := queryInt(r, "set")
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	exercise := r.URL.Query().Get("exercise")
	if exercise == "" {
		writeError(w, http.StatusBadRequest, errors.New("exercise parameter required"))
		return
	}

	slot := training.SetKey{
		Key:   training.Key{Week: week, Day: day, Exercise: exercise},
		Index: set,
	}
	history, err := s.db.QuerySlotHistory(r.Context(), week, slot)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	// Nearest prior week with any recorded value wins.
	for _, h := range history {
		if h.Reps != "" || h.Peso != "" {
			writeOK(w, map[string]any{"found": true, "prev": h})
			return
		}
	}
	writeOK(w, map[string]any{"found": false})
}

func (s *Server) handleGetNotes(w http.ResponseWriter, r *http.Request) {
	routineID := r.URL.Query().Get("routine")
	if routineID == "" {
		writeError(w, http.StatusBadRequest, errors.New("routine parameter required"))
		return
	}

	notes, err := s.db.QueryNotes(r.Context(), routineID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeOK(w, map[string]any{"notes": notes})
}

type postNotesRequest struct {
	RoutineID string         `json:"routineId"`
	Notes     training.Notes `json:"notes"`
}

func (s *Server) handlePostNotes(w http.ResponseWriter, r *http.Request) {
	var req postNotesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, errors.New("invalid JSON: "+err.Error()))
		return
	}
	if req.RoutineID == "" {
		writeError(w, http.StatusBadRequest, errors.New("routineId required"))
		return
	}

	written, err := s.db.UpsertNotes(r.Context(), req.RoutineID, req.Notes)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeOK(w, map[string]any{"written": written})
}

func (s *Server) handleGetLog(w http.ResponseWriter, r *http.Request) {
	week, err := queryInt(r, "week")
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	entries, err := s.db.QueryLog(r.Context(), week)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeOK(w, map[string]any{"entries": entries})
}

func (s *Server) handlePostLog(w http.ResponseWriter, r *http.Request) {
	var entries []training.LogEntry
	if err := json.NewDecoder(r.Body).Decode(&entries); err != nil {
		writeError(w, http.StatusBadRequest, errors.New("invalid JSON: "+err.Error()))
		return
	}

	inserted, err := s.db.InsertLogEntries(r.Context(), entries)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeOK(w, map[string]any{"inserted": inserted})
}

func (s *Server) handleGetVolume(w http.ResponseWriter, r *http.Request) {
	rows, err := s.db.WeeklyVolume(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeOK(w, map[string]any{"volume": rows})
}

// writeOK writes the success envelope, merging extra payload fields.
func writeOK(w http.ResponseWriter, extra map[string]any) {
	body := map[string]any{"success": true}
	for k, v := range extra {
		body[k] = v
	}
	writeJSON(w, http.StatusOK, body)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]any{"success": false, "error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func queryInt(r *http.Request, name string) (int, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return 0, errors.New(name + " parameter required")
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, errors.New("invalid " + name + " parameter")
	}
	return n, nil
}
