// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	service "github.com/okian/ascent/internal/app"
	"github.com/okian/ascent/internal/resume"
)

// Uploaded resumes are held in memory during extraction.
const maxResumeBytes = 10 << 20 // 10 MiB

// SynergyDependencies defines the interface for resume analysis operations.
type SynergyDependencies interface {
	AnalyzeResume(ctx context.Context, resumeText string, teamCount int) (AnalysisReport, error)
	SubmitAnalysis(ctx context.Context, requestID, resumeText string) (string, bool, error)
	Analysis(ctx context.Context, analysisID string) (AnalysisReport, error)
}

// SynergyHandler handles resume analysis requests.
type SynergyHandler struct {
	deps SynergyDependencies
}

// NewSynergyHandler creates a new synergy handler.
func NewSynergyHandler(deps SynergyDependencies) *SynergyHandler {
	return &SynergyHandler{deps: deps}
}

type analyzeRequest struct {
	ResumeText string `json:"resume_text"`
	TeamCount  int    `json:"team_count"`
}

func (a analyzeRequest) validate() error {
	if strings.TrimSpace(a.ResumeText) == "" {
		return errors.New("missing resume_text")
	}
	return nil
}

type submitRequest struct {
	RequestID  string `json:"request_id"`
	ResumeText string `json:"resume_text"`
}

func (s submitRequest) validate() error {
	switch {
	case strings.TrimSpace(s.RequestID) == "":
		return errors.New("missing request_id")
	case strings.TrimSpace(s.ResumeText) == "":
		return errors.New("missing resume_text")
	}
	return nil
}

type submitResponse struct {
	AnalysisID string `json:"analysis_id"`
	Status     string `json:"status"`
	Duplicate  bool   `json:"duplicate"`
}

// HandleAnalyze handles POST /synergy/analysis requests: a synchronous
// analysis returned in the response body.
func (h *SynergyHandler) HandleAnalyze(w http.ResponseWriter, r *http.Request) {
	const op = "api.analyze"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	report, err := h.deps.AnalyzeResume(r.Context(), req.ResumeText, req.TeamCount)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// HandleSubmitAnalysis handles POST /synergy/analyses requests: the analysis
// runs asynchronously and the response carries the ID to poll.
func (h *SynergyHandler) HandleSubmitAnalysis(w http.ResponseWriter, r *http.Request) {
	const op = "api.submit_analysis"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	analysisID, duplicate, err := h.deps.SubmitAnalysis(r.Context(), req.RequestID, req.ResumeText)
	if err != nil {
		if errors.Is(err, service.ErrQueueFull) {
			writeError(w, http.StatusTooManyRequests, "backpressure", NewKind(op, ErrBackpressure))
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	if duplicate {
		writeJSON(w, http.StatusOK, submitResponse{AnalysisID: analysisID, Status: "duplicate", Duplicate: true})
		return
	}
	writeJSON(w, http.StatusAccepted, submitResponse{AnalysisID: analysisID, Status: "accepted", Duplicate: false})
}

// HandleGetAnalysis handles GET /synergy/analyses/{id} requests.
func (h *SynergyHandler) HandleGetAnalysis(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_analysis"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	id := strings.TrimPrefix(r.URL.Path, "/synergy/analyses/")
	if id == "" || strings.Contains(id, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	report, err := h.deps.Analysis(r.Context(), id)
	if err != nil {
		if isNotFound(err) {
			writeError(w, http.StatusNotFound, "not_found", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// HandleResumeUpload handles POST /synergy/resume requests: a multipart PDF
// upload extracted to text and analyzed synchronously.
func (h *SynergyHandler) HandleResumeUpload(w http.ResponseWriter, r *http.Request) {
	const op = "api.resume_upload"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	if err := r.ParseMultipartForm(maxResumeBytes); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	file, _, err := r.FormFile("resume")
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxResumeBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	text, err := resume.ExtractPDF(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "extraction_failed", Wrap(op, err))
		return
	}

	report, err := h.deps.AnalyzeResume(r.Context(), text, 0)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, report)
}
