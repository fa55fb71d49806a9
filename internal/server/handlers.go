package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"jobradar/internal/answerer"
	"jobradar/internal/history"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"message": "Backend is running",
	})
}

type parseAndAnswerRequest struct {
	PageText string            `json:"pageText"`
	Context  map[string]string `json:"context"`
}

func (s *Server) handleParseAndAnswer(w http.ResponseWriter, r *http.Request) {
	var req parseAndAnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]any{
			"error":   "invalid request body",
			"answers": []answerer.Answer{},
		})
		return
	}
	if strings.TrimSpace(req.PageText) == "" {
		respondJSON(w, http.StatusBadRequest, map[string]any{
			"error":   "No page text provided",
			"answers": []answerer.Answer{},
		})
		return
	}

	db, err := s.databank.Load()
	if err != nil {
		zap.L().Error("load databank", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "failed to load databank")
		return
	}

	result := s.answerer.AnswerPage(r.Context(), req.PageText, db)
	respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleDebugExtract(w http.ResponseWriter, r *http.Request) {
	var req parseAndAnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.PageText == "" {
		respondError(w, http.StatusBadRequest, "No page text provided")
		return
	}

	questions := s.answerer.Extract(req.PageText)
	if questions == nil {
		questions = []string{}
	}

	preview := req.PageText
	if len(preview) > 500 {
		preview = preview[:500] + "..."
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"page_text_length":  len(req.PageText),
		"page_text_preview": preview,
		"regex_extraction": map[string]any{
			"questions": questions,
			"count":     len(questions),
		},
	})
}

type trackAnswerRequest struct {
	Question  string `json:"question"`
	Answer    string `json:"answer"`
	Source    string `json:"source"`
	WasEdited bool   `json:"was_edited"`
	JobURL    string `json:"job_url"`
	JobTitle  string `json:"job_title"`
	Company   string `json:"company"`
}

func (s *Server) handleTrackAnswer(w http.ResponseWriter, r *http.Request) {
	var req trackAnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Question == "" || req.Answer == "" || req.Source == "" {
		respondError(w, http.StatusBadRequest, "Missing required fields")
		return
	}

	_, err := s.history.Track(r.Context(), history.Entry{
		Question:  req.Question,
		Answer:    req.Answer,
		Source:    req.Source,
		WasEdited: req.WasEdited,
		JobURL:    req.JobURL,
		JobTitle:  req.JobTitle,
		Company:   req.Company,
	})
	if err != nil {
		zap.L().Error("track answer", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "Failed to save history")
		return
	}
	s.metrics.RecordAnswerTracked()

	if err := s.history.Prune(r.Context(), s.keepLast); err != nil {
		zap.L().Warn("prune history", zap.Error(err))
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"status":  "success",
		"message": "Answer tracked",
	})
}

func (s *Server) handleAnswerHistory(w http.ResponseWriter, r *http.Request) {
	limit := 100
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}

	entries, err := s.history.List(r.Context(), limit)
	if err != nil {
		zap.L().Error("list history", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "failed to load history")
		return
	}
	total, err := s.history.Count(r.Context())
	if err != nil {
		zap.L().Error("count history", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "failed to load history")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"history": entries,
		"total":   total,
	})
}

func (s *Server) handleQADatabank(w http.ResponseWriter, r *http.Request) {
	db, err := s.databank.Load()
	if err != nil {
		zap.L().Error("load databank", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "failed to load databank")
		return
	}
	respondJSON(w, http.StatusOK, db)
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.metrics.GetSnapshot())
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Error("encode response", zap.Error(err))
	}
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{"error": msg})
}
