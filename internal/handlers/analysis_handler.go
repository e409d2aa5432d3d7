// File: internal/handlers/analysis_handler.go
package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/dresai/dresai/internal/domain"
	"github.com/dresai/dresai/internal/dtos"
	"github.com/dresai/dresai/internal/services/analysis"
)

// Uploaded files larger than this are rejected before decoding.
const maxUploadBytes = 10 << 20

type AnalysisHandler struct {
	AnalysisService *analysis.Service
}

func NewAnalysisHandler(analysisService *analysis.Service) *AnalysisHandler {
	return &AnalysisHandler{AnalysisService: analysisService}
}

// Analyze runs one outfit analysis. Accepts either a JSON body carrying a
// data URL or a multipart upload with an "image" file field.
func (h *AnalysisHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r)
	if !ok {
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var (
		result *domain.AnalysisResult
		err    error
	)
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		result, err = h.analyzeUpload(w, r, userID)
	} else {
		result, err = h.analyzeJSON(r, userID)
	}
	if err != nil {
		h.writeAnalysisError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// History returns the user's past analyses, newest first.
func (h *AnalysisHandler) History(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r)
	if !ok {
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	records, err := h.AnalysisService.History(r.Context(), userID, 0)
	if err != nil {
		writeError(w, "Could not retrieve analyses", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, records)
}

func (h *AnalysisHandler) analyzeJSON(r *http.Request, userID uint) (*domain.AnalysisResult, error) {
	var req dtos.AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ImageData == "" {
		return nil, analysis.ErrUnsupportedImage
	}
	return h.AnalysisService.Analyze(r.Context(), userID, req.ImageData, domain.Tone(req.Tone))
}

func (h *AnalysisHandler) analyzeUpload(w http.ResponseWriter, r *http.Request, userID uint) (*domain.AnalysisResult, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		return nil, analysis.ErrUnsupportedImage
	}
	file, _, err := r.FormFile("image")
	if err != nil {
		return nil, analysis.ErrUnsupportedImage
	}
	defer file.Close()

	raw, err := io.ReadAll(file)
	if err != nil {
		return nil, analysis.ErrUnsupportedImage
	}
	return h.AnalysisService.AnalyzeBytes(r.Context(), userID, raw, domain.Tone(r.FormValue("tone")))
}

func (h *AnalysisHandler) writeAnalysisError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, analysis.ErrNoAccess):
		writeError(w, "No analyses remaining. Upgrade your plan to continue.", http.StatusPaymentRequired)
	case errors.Is(err, analysis.ErrUnsupportedImage):
		writeError(w, "Please upload a valid image.", http.StatusBadRequest)
	default:
		log.Printf("Analysis error: %v", err)
		writeError(w, "Analysis failed, please try again.", http.StatusInternalServerError)
	}
}
