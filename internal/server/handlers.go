package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/san-kum/gravsim/internal/config"
	"github.com/san-kum/gravsim/internal/gravity"
	"github.com/san-kum/gravsim/internal/session"
)

type startRequest struct {
	Bodies []gravity.RawSpec `json:"bodies"`
	Dt     *float64          `json:"dt"`
}

type positionsResponse struct {
	Positions []gravity.Result `json:"positions"`
}

type presetInfo struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Dt          float64 `json:"dt"`
	Bodies      int     `json:"bodies"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleStart(w http.ResponseWriter, r *http.Request) {
	var req startRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, decodeError(err))
		return
	}

	specs, err := gravity.DecodeSpecs(req.Bodies)
	if err != nil {
		s.writeError(w, err)
		return
	}

	dt := s.cfg.DefaultDt
	if req.Dt != nil {
		dt = *req.Dt
	}

	s.step(w, r, specs, dt)
}

func (s *Server) handleStep(w http.ResponseWriter, r *http.Request) {
	dt := s.cfg.DefaultDt
	if raw := r.URL.Query().Get("dt"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			s.writeError(w, &gravity.ValidationError{Index: -1, Field: "dt", Reason: "not a number"})
			return
		}
		dt = v
	}

	s.step(w, r, nil, dt)
}

func (s *Server) handlePresets(w http.ResponseWriter, r *http.Request) {
	names := config.ListPresets()
	out := make([]presetInfo, 0, len(names))
	for _, name := range names {
		p := config.GetPreset(name)
		out = append(out, presetInfo{
			Name:        p.Name,
			Description: p.Description,
			Dt:          p.Dt,
			Bodies:      len(p.Bodies),
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"presets": out})
}

func (s *Server) handlePreset(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	p := config.GetPreset(name)
	if p == nil {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: fmt.Sprintf("unknown preset: %s", name)})
		return
	}
	s.step(w, r, p.Bodies, p.Dt)
}

// handleState reports the current bodies without advancing them. A caller
// with no session sees an empty list and is not given one.
func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	positions := []gravity.Result{}
	if id, ok := sessionID(r); ok {
		if st, found := s.sessions.Lookup(id); found {
			positions = st.Results()
		}
	}
	writeJSON(w, http.StatusOK, positionsResponse{Positions: positions})
}

// handleEnd drops the caller's session and expires its cookie.
func (s *Server) handleEnd(w http.ResponseWriter, r *http.Request) {
	if id, ok := sessionID(r); ok {
		s.sessions.Delete(id)
	}
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) step(w http.ResponseWriter, r *http.Request, specs []gravity.Spec, dt float64) {
	st, err := s.sessionState(w, r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	positions, err := st.Step(specs, dt)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, positionsResponse{Positions: positions})
}

// sessionID returns the caller's session id if it sent a well-formed one.
func sessionID(r *http.Request) (string, bool) {
	c, err := r.Cookie(sessionCookie)
	if err != nil || !session.ValidID(c.Value) {
		return "", false
	}
	return c.Value, true
}

// sessionState resolves the caller's simulation state, issuing a session
// cookie on first contact or when the presented one is malformed.
func (s *Server) sessionState(w http.ResponseWriter, r *http.Request) (*gravity.State, error) {
	if id, ok := sessionID(r); ok {
		return s.sessions.Get(id), nil
	}

	id, err := session.NewID()
	if err != nil {
		return nil, fmt.Errorf("session id: %w", err)
	}
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return s.sessions.Get(id), nil
}

// decodeError turns JSON decoding failures into validation errors so that
// a non-numeric body field is reported like a missing one.
func decodeError(err error) error {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return &gravity.ValidationError{
			Index:  -1,
			Field:  typeErr.Field,
			Reason: fmt.Sprintf("expected %s, got %s", typeErr.Type, typeErr.Value),
		}
	}
	return &gravity.ValidationError{Index: -1, Field: "body", Reason: err.Error()}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	if errors.Is(err, gravity.ErrValidation) {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	s.log.Error("request failed", "err", err)
	writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
