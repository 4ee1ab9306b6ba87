package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/sells-group/property-checklist/internal/insight"
	"github.com/sells-group/property-checklist/internal/model"
	"github.com/sells-group/property-checklist/internal/scorer"
	"github.com/sells-group/property-checklist/internal/store"
)

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		zap.L().Error("server: write problem", zap.Error(err))
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Error("server: write response", zap.Error(err))
	}
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		writeProblem(w, http.StatusBadRequest, "Bad Request", "invalid request body")
		return false
	}
	return true
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type assessRequest struct {
	Listing model.Listing      `json:"listing"`
	Premium *model.PremiumData `json:"premium,omitempty"`
	Save    bool               `json:"save"`
}

func (s *Server) createAssessment(w http.ResponseWriter, r *http.Request) {
	var req assessRequest
	if !decode(w, r, &req) {
		return
	}
	if req.Save && s.store == nil {
		writeProblem(w, http.StatusServiceUnavailable, "Service Unavailable", "assessment store is not configured")
		return
	}

	a := s.engine.Assess(req.Listing, req.Premium, s.now())
	s.metrics.observeScores(a.Scores, a.Overall)
	s.metrics.observeAssessment(req.Save)

	status := http.StatusOK
	if req.Save {
		if err := s.store.SaveAssessment(r.Context(), &a); err != nil {
			zap.L().Error("server: save assessment", zap.String("id", a.ID), zap.Error(err))
			writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "could not save assessment")
			return
		}
		status = http.StatusCreated
	}
	writeJSON(w, status, a)
}

func (s *Server) getAssessment(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeProblem(w, http.StatusServiceUnavailable, "Service Unavailable", "assessment store is not configured")
		return
	}
	id := chi.URLParam(r, "id")
	a, err := s.store.GetAssessment(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		writeProblem(w, http.StatusNotFound, "Not Found", "assessment not found")
		return
	}
	if err != nil {
		zap.L().Error("server: get assessment", zap.String("id", id), zap.Error(err))
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "could not load assessment")
		return
	}
	writeJSON(w, http.StatusOK, a)
}

func (s *Server) listAssessments(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeProblem(w, http.StatusServiceUnavailable, "Service Unavailable", "assessment store is not configured")
		return
	}
	q := r.URL.Query()
	filter := store.AssessmentFilter{ListingURL: q.Get("listing_url")}
	for name, dst := range map[string]*int{"limit": &filter.Limit, "offset": &filter.Offset} {
		raw := q.Get(name)
		if raw == "" {
			continue
		}
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			writeProblem(w, http.StatusBadRequest, "Bad Request", name+" must be a non-negative integer")
			return
		}
		*dst = v
	}
	if filter.Limit > maxListLimit {
		filter.Limit = maxListLimit
	}

	list, err := s.store.ListAssessments(r.Context(), filter)
	if err != nil {
		zap.L().Error("server: list assessments", zap.Error(err))
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "could not list assessments")
		return
	}
	if list == nil {
		list = []model.Assessment{}
	}
	writeJSON(w, http.StatusOK, list)
}

type scoreRequest struct {
	Items   model.Checklist    `json:"items"`
	Premium *model.PremiumData `json:"premium,omitempty"`
}

type scoreResponse struct {
	Scores  model.DashboardScores `json:"scores"`
	Overall *float64              `json:"overall"`
}

// score rescores an already built checklist, e.g. after user edits.
func (s *Server) score(w http.ResponseWriter, r *http.Request) {
	var req scoreRequest
	if !decode(w, r, &req) {
		return
	}
	scores := s.engine.Score(req.Items, req.Premium)
	overall := scorer.CalculateOverallScore(scores)
	s.metrics.observeScores(scores, overall)
	writeJSON(w, http.StatusOK, scoreResponse{Scores: scores, Overall: overall})
}

type insightRequest struct {
	History     []model.SaleHistoryEntry `json:"history"`
	AskingPrice string                   `json:"asking_price"`
}

func (s *Server) insight(w http.ResponseWriter, r *http.Request) {
	var req insightRequest
	if !decode(w, r, &req) {
		return
	}
	writeJSON(w, http.StatusOK, insight.Calculate(req.History, req.AskingPrice, s.now()))
}
