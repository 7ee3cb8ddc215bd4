package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/resume-analyzer/internal/db"
	"github.com/jonathan/resume-analyzer/internal/ingestion"
	"github.com/jonathan/resume-analyzer/internal/types"
)

// uploadField is the multipart form field holding the document.
const uploadField = "file"

// AnalyzeResponse is returned by POST /analyses. ID is set when the report was stored.
type AnalyzeResponse struct {
	ID     *uuid.UUID            `json:"id,omitempty"`
	Report *types.AnalysisReport `json:"report"`
}

// ListAnalysesResponse is returned by GET /analyses.
type ListAnalysesResponse struct {
	Analyses []types.AnalysisSummary `json:"analyses"`
	Count    int                     `json:"count"`
	Limit    int                     `json:"limit"`
	Offset   int                     `json:"offset"`
}

// parseQueryInt reads a non-negative integer query parameter, capped at maxValue when maxValue > 0.
func parseQueryInt(r *http.Request, key string, defaultValue, maxValue int) int {
	valStr := r.URL.Query().Get(key)
	if valStr == "" {
		return defaultValue
	}
	val, err := strconv.Atoi(valStr)
	if err != nil || val < 0 {
		return defaultValue
	}
	if maxValue > 0 && val > maxValue {
		return maxValue
	}
	return val
}

// handleCreateAnalysis analyzes a JSON text body or a multipart document upload.
func (s *Server) handleCreateAnalysis(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes)

	var (
		report *types.AnalysisReport
		err    error
	)
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "multipart/form-data" {
		report, err = s.analyzeUpload(r)
	} else {
		report, err = s.analyzeJSON(r)
	}
	if err != nil {
		s.errorFrom(w, err)
		return
	}

	resp := AnalyzeResponse{Report: report}
	if s.store == nil {
		s.jsonResponse(w, http.StatusOK, resp)
		return
	}

	summary, err := s.store.SaveAnalysis(r.Context(), report)
	if err != nil {
		s.logger.Error("failed to store analysis", zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	resp.ID = &summary.ID
	w.Header().Set("Location", "/analyses/"+summary.ID.String())
	s.jsonResponse(w, http.StatusCreated, resp)
}

func (s *Server) analyzeJSON(r *http.Request) (*types.AnalysisReport, error) {
	var req types.AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, &ErrValidation{Field: "body", Message: "invalid JSON: " + err.Error()}
	}
	if err := req.Validate(); err != nil {
		return nil, validationError(err)
	}
	return s.analyzer.AnalyzeText(r.Context(), req.FileName, req.Text)
}

func (s *Server) analyzeUpload(r *http.Request) (*types.AnalysisReport, error) {
	if err := r.ParseMultipartForm(s.maxUploadBytes); err != nil {
		return nil, &ErrValidation{Field: uploadField, Message: err.Error()}
	}
	file, header, err := r.FormFile(uploadField)
	if err != nil {
		return nil, &ErrValidation{Field: uploadField, Message: "a document upload is required"}
	}
	defer func() { _ = file.Close() }()

	if !ingestion.IsSupported(header.Filename) {
		return nil, &ingestion.UnsupportedFormatError{Extension: strings.ToLower(filepath.Ext(header.Filename))}
	}
	data, err := io.ReadAll(file)
	if err != nil {
		return nil, &ingestion.FileReadError{Path: header.Filename, Cause: err}
	}
	return s.analyzer.AnalyzeBytes(r.Context(), header.Filename, data)
}

// handleListAnalyses lists stored analyses, newest first.
func (s *Server) handleListAnalyses(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.errorFrom(w, &ErrStoreDisabled{})
		return
	}
	limit := parseQueryInt(r, "limit", db.DefaultListLimit, db.MaxListLimit)
	offset := parseQueryInt(r, "offset", 0, 0)

	summaries, err := s.store.ListAnalyses(r.Context(), db.ListOptions{Limit: limit, Offset: offset})
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if summaries == nil {
		summaries = []types.AnalysisSummary{}
	}

	s.jsonResponse(w, http.StatusOK, ListAnalysesResponse{
		Analyses: summaries,
		Count:    len(summaries),
		Limit:    limit,
		Offset:   offset,
	})
}

// handleGetAnalysis returns a stored analysis by ID
func (s *Server) handleGetAnalysis(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.errorFrom(w, &ErrStoreDisabled{})
		return
	}
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}

	stored, err := s.store.GetAnalysis(r.Context(), id)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if stored == nil {
		s.errorFrom(w, &ErrAnalysisNotFound{ID: id})
		return
	}
	s.jsonResponse(w, http.StatusOK, stored)
}

// handleDeleteAnalysis removes a stored analysis
func (s *Server) handleDeleteAnalysis(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.errorFrom(w, &ErrStoreDisabled{})
		return
	}
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}

	deleted, err := s.store.DeleteAnalysis(r.Context(), id)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if !deleted {
		s.errorFrom(w, &ErrAnalysisNotFound{ID: id})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid analysis ID format")
		return uuid.Nil, false
	}
	return id, true
}

// validationError reports the first failing field of a validator error.
func validationError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return &ErrValidation{
			Field:   fe.Field(),
			Message: fmt.Sprintf("failed '%s' constraint", fe.Tag()),
		}
	}
	return &ErrValidation{Field: "body", Message: err.Error()}
}
