package httpserver

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	appanalysis "github.com/bryanwahyu/hairscan/internal/application/analysis"
	domai "github.com/bryanwahyu/hairscan/internal/domain/ai"
	domain "github.com/bryanwahyu/hairscan/internal/domain/analysis"
	"github.com/bryanwahyu/hairscan/internal/domain/parsefailures"
	"github.com/bryanwahyu/hairscan/internal/middleware"
)

// Analyses is the part of the analysis service the router needs.
type Analyses interface {
	Analyze(ctx context.Context, subject string, in appanalysis.Input) (appanalysis.Result, error)
	Preview(subject, raw, sourceRef string) (*domain.Record, error)
	Get(ctx context.Context, subject string, id domain.RecordID) (*domain.Record, error)
	Latest(ctx context.Context, subject string) (*domain.Record, error)
	List(ctx context.Context, subject string, page, pageSize int) (domain.PaginatedResult, error)
	Delete(ctx context.Context, subject string, id domain.RecordID) error
	Failures(ctx context.Context, subject string, limit int) ([]*parsefailures.ParseFailure, error)
}

type Router struct {
	svc           Analyses
	maxImageBytes int64
}

// NewRouter mounts the /v1/{subject} API. maxImageBytes caps uploads and
// JSON bodies.
func NewRouter(svc Analyses, maxImageBytes int64) http.Handler {
	r := &Router{svc: svc, maxImageBytes: maxImageBytes}
	mux := chi.NewRouter()

	mux.Route("/v1/{subject}", func(rt chi.Router) {
		rt.Use(r.requireSubject, middleware.RequireSubjectAccess)
		rt.Post("/analyses", r.wrap(r.handleAnalyze))
		rt.Get("/analyses", r.wrap(r.handleList))
		rt.Get("/analyses/latest", r.wrap(r.handleLatest))
		rt.Get("/analyses/{id}", r.wrap(r.handleGet))
		rt.Delete("/analyses/{id}", r.wrap(r.handleDelete))
		rt.Get("/failures", r.wrap(r.handleFailures))
		rt.Post("/parse", r.wrap(r.handleParse))
	})

	return mux
}

type handlerFunc func(http.ResponseWriter, *http.Request) error

// badRequest marks client mistakes that are not domain errors.
type badRequest struct{ msg string }

func (e badRequest) Error() string { return e.msg }

func (r *Router) wrap(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		err := h(w, req)
		if err == nil {
			return
		}

		var perr *domain.Error
		var bad badRequest
		switch {
		case errors.As(err, &perr):
			middleware.IncrementParseFailures()
			writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
				"error": perr.Error(),
				"kind":  perr.Kind,
			})
		case errors.As(err, &bad), errors.Is(err, appanalysis.ErrEmptyImage):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, sql.ErrNoRows):
			http.Error(w, "not found", http.StatusNotFound)
		case errors.Is(err, domai.ErrQuotaExceeded):
			http.Error(w, "ai quota exceeded", http.StatusTooManyRequests)
		default:
			log.Printf("request failed method=%s path=%s: %v", req.Method, req.URL.Path, err)
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	}
}

func (r *Router) requireSubject(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if err := middleware.ValidateSubjectID(chi.URLParam(req, "subject")); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		next.ServeHTTP(w, req)
	})
}

// POST /v1/{subject}/analyses
// multipart field "image", or JSON {"image_key"} / {"raw_text","source_ref"}
func (r *Router) handleAnalyze(w http.ResponseWriter, req *http.Request) error {
	subject := chi.URLParam(req, "subject")

	in, err := r.decodeInput(w, req, subject)
	if err != nil {
		return err
	}

	middleware.IncrementAnalysesRunning()
	res, err := r.svc.Analyze(req.Context(), subject, in)
	middleware.DecrementAnalysesRunning()
	if err != nil {
		return err
	}
	middleware.IncrementAnalyses()
	if res.DuplicateOf != "" {
		middleware.IncrementDuplicates()
	}

	writeJSON(w, http.StatusCreated, res)
	return nil
}

func (r *Router) decodeInput(w http.ResponseWriter, req *http.Request, subject string) (appanalysis.Input, error) {
	if r.maxImageBytes > 0 {
		// room for multipart framing
		req.Body = http.MaxBytesReader(w, req.Body, r.maxImageBytes+1<<20)
	}

	if strings.HasPrefix(req.Header.Get("Content-Type"), "multipart/form-data") {
		file, hdr, err := req.FormFile("image")
		if err != nil {
			return nil, badRequest{fmt.Sprintf("image field: %v", err)}
		}
		defer file.Close()

		contentType := hdr.Header.Get("Content-Type")
		if err := middleware.ValidateImageContentType(contentType); err != nil {
			return nil, badRequest{err.Error()}
		}
		if err := middleware.ValidateImageSize(hdr.Size, r.maxImageBytes); err != nil {
			return nil, badRequest{err.Error()}
		}
		data, err := io.ReadAll(file)
		if err != nil {
			return nil, fmt.Errorf("read image: %w", err)
		}
		return appanalysis.ImageInput{Data: data, ContentType: contentType}, nil
	}

	var body struct {
		ImageKey  string `json:"image_key"`
		RawText   string `json:"raw_text"`
		SourceRef string `json:"source_ref"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		return nil, badRequest{fmt.Sprintf("invalid body: %v", err)}
	}
	switch {
	case body.ImageKey != "":
		if err := middleware.ValidateImageKey(subject, body.ImageKey); err != nil {
			return nil, badRequest{err.Error()}
		}
		return appanalysis.StoredImageInput{Key: body.ImageKey}, nil
	case body.RawText != "":
		return appanalysis.TextInput{Raw: body.RawText, SourceRef: middleware.SanitizeString(body.SourceRef)}, nil
	default:
		return nil, badRequest{"one of image, image_key or raw_text is required"}
	}
}

// POST /v1/{subject}/parse
func (r *Router) handleParse(w http.ResponseWriter, req *http.Request) error {
	subject := chi.URLParam(req, "subject")

	var body struct {
		RawText   string `json:"raw_text"`
		SourceRef string `json:"source_ref"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		return badRequest{fmt.Sprintf("invalid body: %v", err)}
	}

	rec, err := r.svc.Preview(subject, body.RawText, middleware.SanitizeString(body.SourceRef))
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, rec)
	return nil
}

// GET /v1/{subject}/analyses?page=&page_size=
func (r *Router) handleList(w http.ResponseWriter, req *http.Request) error {
	subject := chi.URLParam(req, "subject")
	page, _ := strconv.Atoi(req.URL.Query().Get("page"))
	size, _ := strconv.Atoi(req.URL.Query().Get("page_size"))

	list, err := r.svc.List(req.Context(), subject, page, middleware.ValidateLimit(size))
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, list)
	return nil
}

// GET /v1/{subject}/analyses/latest
func (r *Router) handleLatest(w http.ResponseWriter, req *http.Request) error {
	subject := chi.URLParam(req, "subject")

	rec, err := r.svc.Latest(req.Context(), subject)
	if err != nil {
		return err
	}
	if rec == nil {
		return sql.ErrNoRows
	}
	writeJSON(w, http.StatusOK, rec)
	return nil
}

// GET /v1/{subject}/analyses/{id}
func (r *Router) handleGet(w http.ResponseWriter, req *http.Request) error {
	subject := chi.URLParam(req, "subject")
	id := chi.URLParam(req, "id")
	if err := middleware.ValidateRecordID(id); err != nil {
		return badRequest{err.Error()}
	}

	rec, err := r.svc.Get(req.Context(), subject, domain.RecordID(id))
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, rec)
	return nil
}

// DELETE /v1/{subject}/analyses/{id}
func (r *Router) handleDelete(w http.ResponseWriter, req *http.Request) error {
	subject := chi.URLParam(req, "subject")
	id := chi.URLParam(req, "id")
	if err := middleware.ValidateRecordID(id); err != nil {
		return badRequest{err.Error()}
	}

	if err := r.svc.Delete(req.Context(), subject, domain.RecordID(id)); err != nil {
		return err
	}
	w.WriteHeader(http.StatusNoContent)
	return nil
}

// GET /v1/{subject}/failures?limit=20
func (r *Router) handleFailures(w http.ResponseWriter, req *http.Request) error {
	subject := chi.URLParam(req, "subject")
	limit, _ := strconv.Atoi(req.URL.Query().Get("limit"))

	list, err := r.svc.Failures(req.Context(), subject, middleware.ValidateLimit(limit))
	if err != nil {
		return err
	}
	if list == nil {
		list = []*parsefailures.ParseFailure{}
	}
	writeJSON(w, http.StatusOK, list)
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode response: %v", err)
	}
}
