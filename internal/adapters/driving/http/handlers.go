package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/askpdf/askpdf-core/internal/core/domain"
	"github.com/askpdf/askpdf-core/internal/core/ports/driving"
	"github.com/askpdf/askpdf-core/internal/extractors"
)

// maxUploadBytes caps the accepted file size.
const maxUploadBytes = 32 << 20 // 32 MB

// ErrorResponse represents an API error response
// @Description API error response
type ErrorResponse struct {
	Error string `json:"error" example:"invalid request body"`
}

// StatusResponse represents a simple status response
// @Description Simple status response
type StatusResponse struct {
	Status string `json:"status" example:"ok"`
}

// VersionResponse represents the API version response
// @Description API version response
type VersionResponse struct {
	Version string `json:"version" example:"1.0.0"`
}

// UploadResponse represents a successful ingestion
// @Description Result of a document ingestion
type UploadResponse struct {
	Filename        string `json:"filename" example:"report.pdf"`
	ChunksProcessed int    `json:"chunks_processed" example:"12"`
	PageCount       int    `json:"page_count" example:"5"`
}

// ChatRequest represents a chat question
// @Description Question with optional persona
type ChatRequest struct {
	Query   string `json:"query" example:"What is the refund window?"`
	Persona string `json:"persona,omitempty" example:"lawyer"`
}

// Health endpoints

// handleHealth godoc
// @Summary      Health check
// @Description  Returns the health status of the API
// @Tags         Health
// @Produce      json
// @Success      200  {object}  StatusResponse
// @Router       /health [get]
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleReady godoc
// @Summary      Readiness check
// @Description  Returns readiness, checking the vector index and embedding provider
// @Tags         Health
// @Produce      json
// @Success      200  {object}  StatusResponse
// @Failure      503  {object}  ErrorResponse  "A dependency is unavailable"
// @Router       /ready [get]
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if s.index != nil {
		if err := s.index.HealthCheck(r.Context()); err != nil {
			writeError(w, http.StatusServiceUnavailable, "vector index unavailable")
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

// handleVersion godoc
// @Summary      Get API version
// @Description  Returns the current API version
// @Tags         Health
// @Produce      json
// @Success      200  {object}  VersionResponse
// @Router       /version [get]
func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"version": s.version})
}

// Document endpoints

// handleUploadDocument godoc
// @Summary      Upload a document
// @Description  Extracts text from the uploaded file, chunks it, embeds the chunks and stores them in the vector index
// @Tags         Documents
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "Document file (PDF or Markdown)"
// @Success      200   {object}  UploadResponse
// @Failure      400   {object}  ErrorResponse  "Missing file, unsupported type or empty document"
// @Failure      429   {object}  ErrorResponse  "Embedding provider rate limit"
// @Failure      500   {object}  ErrorResponse  "Embedding provider rejected credentials"
// @Failure      502   {object}  ErrorResponse  "Upstream embedding or index failure"
// @Router       /api/v1/documents [post]
func (s *Server) handleUploadDocument(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart request")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "file field is required")
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = extractors.TypeForFilename(header.Filename)
	}

	extractor := s.extractors.Get(contentType)
	if extractor == nil {
		writeError(w, http.StatusBadRequest, "unsupported file type: "+contentType)
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read file")
		return
	}

	doc, err := extractor.Extract(header.Filename, data)
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to extract text from "+header.Filename)
		return
	}

	result, err := s.ingestService.Ingest(r.Context(), driving.IngestRequest{
		Filename:    header.Filename,
		ContentType: contentType,
		Text:        doc.Text,
		PageCount:   doc.PageCount,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, UploadResponse{
		Filename:        result.Filename,
		ChunksProcessed: result.ChunksProcessed,
		PageCount:       result.PageCount,
	})
}

// handleListUploads godoc
// @Summary      List recent uploads
// @Description  Returns recent ingestions, newest first
// @Tags         Documents
// @Produce      json
// @Param        limit  query     int  false  "Maximum number of uploads to return"  default(20)
// @Success      200    {array}   domain.Upload
// @Failure      500    {object}  ErrorResponse
// @Router       /api/v1/uploads [get]
func (s *Server) handleListUploads(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		limit, _ = strconv.Atoi(v)
	}

	uploads, err := s.ingestService.History(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list uploads")
		return
	}

	writeJSON(w, http.StatusOK, uploads)
}

// Chat endpoint

// handleChat godoc
// @Summary      Ask a question
// @Description  Retrieves relevant document context and generates an answer in the selected persona
// @Tags         Chat
// @Accept       json
// @Produce      json
// @Param        request  body      ChatRequest  true  "Question and optional persona"
// @Success      200      {object}  domain.ChatAnswer
// @Failure      400      {object}  ErrorResponse  "Invalid request body or empty query"
// @Failure      429      {object}  ErrorResponse  "Embedding provider rate limit"
// @Failure      502      {object}  ErrorResponse  "Upstream embedding or index failure"
// @Router       /api/v1/chat [post]
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	answer, err := s.chatService.Ask(r.Context(), domain.ChatRequest{
		Query:   req.Query,
		Persona: req.Persona,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, answer)
}

// writeServiceError maps pipeline errors onto HTTP statuses
func writeServiceError(w http.ResponseWriter, err error) {
	var dimErr *domain.DimensionError
	switch {
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrUnsupportedType):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrEmbeddingUnauthorized):
		writeError(w, http.StatusInternalServerError, "embedding provider rejected the configured credentials")
	case errors.Is(err, domain.ErrEmbeddingRateLimited):
		writeError(w, http.StatusTooManyRequests, "embedding provider rate limit or quota exceeded, retry later")
	case errors.As(err, &dimErr), errors.Is(err, domain.ErrEmbeddingMalformed):
		writeError(w, http.StatusBadGateway, "embedding provider returned an invalid response")
	case errors.Is(err, domain.ErrIndexUnavailable):
		writeError(w, http.StatusBadGateway, "vector index is unavailable")
	default:
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
