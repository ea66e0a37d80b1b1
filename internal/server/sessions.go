package server

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/sells-group/billing-estimator/internal/model"
	"github.com/sells-group/billing-estimator/internal/wizard"
)

// sessionResponse is a session snapshot. EstimateID is set once a calculated
// result has been saved to history.
type sessionResponse struct {
	wizard.Session
	EstimateID string `json:"estimateId,omitempty"`
}

func (s *Server) handleCreateSession(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusCreated, sessionResponse{Session: s.sessions.Create()})
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessions.Get(chi.URLParam(r, "id"))
	if err != nil {
		writeErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sessionResponse{Session: sess})
}

// handleUpdateSession merges the given fields into the form. A field sent
// as null is cleared back to unanswered.
func (s *Server) handleUpdateSession(w http.ResponseWriter, r *http.Request) {
	var raw map[string]json.RawMessage
	if !decodeJSON(w, r, &raw) {
		return
	}
	patch, cleared, err := parsePatch(raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	s.sessionAction(w, r, func(sess *wizard.Session) error {
		sess.Update(patch)
		if len(cleared) > 0 {
			sess.Clear(cleared...)
		}
		return nil
	})
}

func parsePatch(raw map[string]json.RawMessage) (model.FormInput, []string, error) {
	var cleared []string
	for k, v := range raw {
		if string(bytes.TrimSpace(v)) == "null" {
			cleared = append(cleared, k)
			delete(raw, k)
		}
	}
	var patch model.FormInput
	body, err := json.Marshal(raw)
	if err != nil {
		return patch, nil, err
	}
	if err := json.Unmarshal(body, &patch); err != nil {
		return patch, nil, err
	}
	return patch, cleared, nil
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := s.sessions.Delete(chi.URLParam(r, "id")); err != nil {
		writeErr(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSessionNext(w http.ResponseWriter, r *http.Request) {
	s.sessionAction(w, r, func(sess *wizard.Session) error { return sess.Next() })
}

func (s *Server) handleSessionBack(w http.ResponseWriter, r *http.Request) {
	s.sessionAction(w, r, func(sess *wizard.Session) error {
		sess.Back()
		return nil
	})
}

func (s *Server) handleSessionReset(w http.ResponseWriter, r *http.Request) {
	s.sessionAction(w, r, func(sess *wizard.Session) error {
		sess.Reset()
		return nil
	})
}

// handleSessionCalculate validates the whole form, waits the simulated
// delay, computes the result and stores it when history is enabled.
func (s *Server) handleSessionCalculate(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessions.Calculate(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeErr(w, r, err)
		return
	}

	resp := sessionResponse{Session: sess}
	if s.store != nil && sess.Result != nil {
		est, err := s.store.SaveEstimate(r.Context(), sess.Input, *sess.Result)
		if err != nil {
			// The result is still shown; only history is lost.
			zap.L().Warn("server: save session estimate",
				zap.String("session_id", sess.ID),
				zap.Error(err),
			)
		} else {
			resp.EstimateID = est.ID
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) sessionAction(w http.ResponseWriter, r *http.Request, fn func(*wizard.Session) error) {
	sess, err := s.sessions.Do(chi.URLParam(r, "id"), fn)
	if err != nil {
		writeErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sessionResponse{Session: sess})
}
