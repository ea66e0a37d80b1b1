package server

import (
	"bytes"
	"io/fs"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/sells-group/billing-estimator/internal/estimate"
	"github.com/sells-group/billing-estimator/internal/export"
	"github.com/sells-group/billing-estimator/internal/model"
	"github.com/sells-group/billing-estimator/internal/store"
	"github.com/sells-group/billing-estimator/internal/validate"
	"github.com/sells-group/billing-estimator/internal/wizard"
)

func serveIndex(static fs.FS) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, err := fs.ReadFile(static, "index.html")
		if err != nil {
			writeErr(w, r, err)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write(page)
	}
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func handleSpecialties(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"specialties":       estimate.Specialties(),
		"defaultDenialRate": estimate.DefaultDenialRate,
	})
}

type fieldInfo struct {
	Key     string   `json:"key"`
	Label   string   `json:"label"`
	Step    int      `json:"step"`
	Min     *float64 `json:"min,omitempty"`
	Max     *float64 `json:"max,omitempty"`
	Pattern string   `json:"pattern,omitempty"`
	OneOf   []string `json:"oneOf,omitempty"`
}

func handleFields(w http.ResponseWriter, _ *http.Request) {
	list := validate.Fields()
	out := make([]fieldInfo, len(list))
	for i, f := range list {
		out[i] = fieldInfo{Key: f.Key, Label: f.Label, Step: f.Step, Min: f.Min, Max: f.Max, OneOf: f.OneOf}
		if f.Pattern != nil {
			out[i].Pattern = f.Pattern.String()
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"fields": out})
}

func handleValidateZip(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Zip string `json:"zip"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"valid": validate.ValidZip(req.Zip)})
}

// handleCreateEstimate validates a complete form, computes it and stores the result.
func (s *Server) handleCreateEstimate(w http.ResponseWriter, r *http.Request) {
	var in model.FormInput
	if !decodeJSON(w, r, &in) {
		return
	}
	if err := validate.Form(in); err != nil {
		writeErr(w, r, err)
		return
	}

	calc, err := s.estimator.Calculate(r.Context(), in)
	if err != nil {
		zap.L().Error("server: calculate estimate", zap.Error(err))
		writeError(w, http.StatusInternalServerError, wizard.CalculationFailedMessage, nil)
		return
	}

	if s.store == nil {
		writeJSON(w, http.StatusOK, model.Estimate{Input: in, Calculation: *calc, CreatedAt: calc.CalculatedAt})
		return
	}

	est, err := s.store.SaveEstimate(r.Context(), in, *calc)
	if err != nil {
		writeErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, est)
}

func (s *Server) handleListEstimates(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w) {
		return
	}
	q := r.URL.Query()
	filter := store.EstimateFilter{
		Specialty: q.Get("specialty"),
		ZipCode:   q.Get("zip"),
	}
	var ok bool
	if filter.Limit, ok = queryInt(w, q.Get("limit"), "limit"); !ok {
		return
	}
	if filter.Offset, ok = queryInt(w, q.Get("offset"), "offset"); !ok {
		return
	}

	list, err := s.store.ListEstimates(r.Context(), filter)
	if err != nil {
		writeErr(w, r, err)
		return
	}
	if list == nil {
		list = []model.Estimate{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"estimates": list})
}

func (s *Server) handleGetEstimate(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w) {
		return
	}
	est, err := s.store.GetEstimate(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, est)
}

func (s *Server) handleExportEstimate(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w) {
		return
	}
	id := chi.URLParam(r, "id")
	est, err := s.store.GetEstimate(r.Context(), id)
	if err != nil {
		writeErr(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err := export.WriteXLSX(&buf, *est); err != nil {
		writeErr(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="estimate-`+id+`.xlsx"`)
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) requireStore(w http.ResponseWriter) bool {
	if s.store == nil {
		writeError(w, http.StatusServiceUnavailable, "estimate history is disabled", nil)
		return false
	}
	return true
}

func queryInt(w http.ResponseWriter, raw, name string) (int, bool) {
	if raw == "" {
		return 0, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		writeError(w, http.StatusBadRequest, "invalid "+name, nil)
		return 0, false
	}
	return n, true
}
