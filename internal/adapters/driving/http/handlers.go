package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gomot-academy/bitacora-core/internal/core/domain"
	"github.com/gomot-academy/bitacora-core/internal/core/ports/driving"
)

// ErrorResponse represents an API error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// Health endpoints

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if s.db != nil {
		if err := s.db.Ping(r.Context()); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]any{
				"status": "not ready",
				"error":  "database unreachable",
			})
			return
		}
	}

	cfg := s.services.Config()
	writeJSON(w, http.StatusOK, map[string]any{
		"status":              "ready",
		"embedding_available": cfg.EmbeddingAvailable(),
		"chat_available":      cfg.ChatAvailable(),
	})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"version": s.version})
}

// Article endpoints

type createArticleResponse struct {
	Article *domain.Article      `json:"article"`
	TaskID  string               `json:"task_id,omitempty"`
	Ingest  *domain.IngestResult `json:"ingest,omitempty"`
}

// handleCreateArticle accepts the article document as multipart form data
// (fields: file, title, difficulty) or as a raw request body with title and
// difficulty query parameters. Ingestion runs queued unless ?sync=true.
func (s *Server) handleCreateArticle(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes)

	title, difficulty, contentType, payload, err := s.readUpload(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if len(payload) == 0 {
		writeError(w, http.StatusBadRequest, "empty document payload")
		return
	}

	article, err := s.articleService.Create(r.Context(), title, domain.Difficulty(difficulty))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	if err := s.payloadStore.SavePayload(r.Context(), article.ID, contentType, payload); err != nil {
		// Best effort cleanup so a retried upload does not hit a duplicate
		_ = s.articleService.Delete(r.Context(), article.ID)
		writeError(w, http.StatusInternalServerError, "failed to store document")
		return
	}

	if r.URL.Query().Get("sync") == "true" {
		result, err := s.ingestService.Ingest(r.Context(), article.ID, payload)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		article, _ = s.articleService.Get(r.Context(), article.ID)
		writeJSON(w, http.StatusCreated, createArticleResponse{Article: article, Ingest: result})
		return
	}

	task := domain.NewIngestArticleTask(article.ID)
	if err := s.taskQueue.Enqueue(r.Context(), task); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to enqueue ingestion")
		return
	}

	writeJSON(w, http.StatusAccepted, createArticleResponse{Article: article, TaskID: task.ID})
}

// readUpload pulls title, difficulty, content type, and document bytes out
// of either a multipart form or a raw body request.
func (s *Server) readUpload(r *http.Request) (title, difficulty, contentType string, payload []byte, err error) {
	ct := r.Header.Get("Content-Type")

	if strings.HasPrefix(ct, "multipart/form-data") {
		if err := r.ParseMultipartForm(s.maxUploadBytes); err != nil {
			return "", "", "", nil, errors.New("invalid multipart form")
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			return "", "", "", nil, errors.New("missing file field")
		}
		defer file.Close()

		data, err := io.ReadAll(file)
		if err != nil {
			return "", "", "", nil, errors.New("failed to read file")
		}

		fileType := header.Header.Get("Content-Type")
		if fileType == "" {
			fileType = "application/octet-stream"
		}

		return r.FormValue("title"), r.FormValue("difficulty"), fileType, data, nil
	}

	data, err := io.ReadAll(r.Body)
	if err != nil {
		return "", "", "", nil, errors.New("failed to read request body")
	}

	q := r.URL.Query()
	if ct == "" {
		ct = "application/octet-stream"
	}
	return q.Get("title"), q.Get("difficulty"), ct, data, nil
}

func (s *Server) handleGetArticle(w http.ResponseWriter, r *http.Request) {
	article, err := s.articleService.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, article)
}

func (s *Server) handleListArticles(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 50)
	offset := queryInt(r, "offset", 0)

	articles, err := s.articleService.List(r.Context(), limit, offset)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"articles": articles,
		"count":    len(articles),
	})
}

func (s *Server) handleDeleteArticle(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if err := s.articleService.Delete(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}

	// Stored payload goes with the article
	_ = s.payloadStore.DeletePayload(r.Context(), id)

	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// handleReingestArticle re-runs ingestion from the stored payload,
// replacing the article's chunk corpus.
func (s *Server) handleReingestArticle(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if _, err := s.articleService.Get(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}

	payload, _, err := s.payloadStore.GetPayload(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusConflict, "no stored document for article")
			return
		}
		writeServiceError(w, err)
		return
	}

	if r.URL.Query().Get("sync") == "true" {
		result, err := s.ingestService.Ingest(r.Context(), id, payload)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, result)
		return
	}

	task := domain.NewIngestArticleTask(id)
	if err := s.taskQueue.Enqueue(r.Context(), task); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to enqueue ingestion")
		return
	}

	writeJSON(w, http.StatusAccepted, map[string]string{"task_id": task.ID})
}

func (s *Server) handleGetArticleChunks(w http.ResponseWriter, r *http.Request) {
	chunks, err := s.articleService.Chunks(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"chunks": chunks,
		"count":  len(chunks),
	})
}

type retrieveRequest struct {
	Query string `json:"query"`
	TopK  int    `json:"top_k"`
}

func (s *Server) handleRetrieve(w http.ResponseWriter, r *http.Request) {
	var req retrieveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	results, err := s.retrievalService.Retrieve(r.Context(), r.PathValue("id"), req.Query, req.TopK)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"results": results,
		"count":   len(results),
	})
}

// Attempt endpoints

type chatRequest struct {
	Message string `json:"message"`
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	turn, err := s.tutorService.Respond(r.Context(), r.PathValue("id"), req.Message)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, turn)
}

func (s *Server) handleListInteractions(w http.ResponseWriter, r *http.Request) {
	interactions, err := s.tutorService.Interactions(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"interactions": interactions,
		"count":        len(interactions),
	})
}

// Problem endpoints

func (s *Server) handleGenerateProblem(w http.ResponseWriter, r *http.Request) {
	var req driving.ProblemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	claims := GetClaims(r.Context())
	if claims == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	problem, err := s.problemService.Generate(r.Context(), claims.UserID, req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, problem)
}

func (s *Server) handleGenerateHint(w http.ResponseWriter, r *http.Request) {
	var req driving.HintRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	hint, err := s.problemService.GenerateHint(r.Context(), req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"hint": hint})
}

// Helpers

func queryInt(r *http.Request, name string, def int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return def
	}
	return n
}

// writeServiceError maps domain sentinel errors onto HTTP statuses
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, domain.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "unauthorized")
	case errors.Is(err, domain.ErrForbidden):
		writeError(w, http.StatusForbidden, "forbidden")
	case errors.Is(err, domain.ErrNoExtractableText):
		writeError(w, http.StatusUnprocessableEntity, "document has no extractable text")
	case errors.Is(err, domain.ErrAttemptBusy):
		writeError(w, http.StatusConflict, "another turn is in progress for this attempt")
	case errors.Is(err, domain.ErrIngestInProgress):
		writeError(w, http.StatusConflict, "ingestion already in progress")
	case errors.Is(err, domain.ErrEmbeddingUnavailable),
		errors.Is(err, domain.ErrChatUnavailable),
		errors.Is(err, domain.ErrServiceUnavailable):
		writeError(w, http.StatusServiceUnavailable, "ai service unavailable")
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
	writeJSON(w, status, ErrorResponse{Error: message})
}
