package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"synthetic_data_generator/apperrors"
	"synthetic_data_generator/encoder"
	"synthetic_data_generator/logger"
	"synthetic_data_generator/metrics"
	"synthetic_data_generator/orchestrator"
	"synthetic_data_generator/store"
)

// maxGenerateBody bounds a generate request; the payload is four short fields.
const maxGenerateBody = 8 << 10

// Options tune the HTTP surface.
type Options struct {
	GenerateTimeout time.Duration
	HistoryLimit    int
	EnableMetrics   bool
}

type Server struct {
	orch *orchestrator.Orchestrator
	opts Options
}

func New(orch *orchestrator.Orchestrator, opts Options) (*Server, error) {
	if orch == nil {
		return nil, errors.New("orchestrator required")
	}
	if opts.HistoryLimit <= 0 {
		opts.HistoryLimit = 50
	}
	return &Server{orch: orch, opts: opts}, nil
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logMiddleware)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	if s.opts.EnableMetrics {
		r.Handle("/metrics", metrics.Handler())
	}

	r.Route("/api", func(r chi.Router) {
		r.Get("/formats", s.handleFormats)
		r.Post("/generate", s.handleGenerate)
		r.Get("/jobs", s.handleJobList)
		r.Get("/jobs/{id}", s.handleJobGet)
		r.Get("/jobs/{id}/file", s.handleJobFile)
	})
	return r
}

// --- Handlers ---

// flexString accepts both "10" and 10, since the UI sends dropdown values as either.
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = flexString(n.String())
	return nil
}

type generateReq struct {
	Format  string     `json:"format"`
	Size    flexString `json:"size"`
	Content flexString `json:"content"`
	Subject string     `json:"subject"`
}

type generateResp struct {
	JobID      string              `json:"job_id"`
	OK         bool                `json:"ok"`
	Status     string              `json:"status"`
	File       string              `json:"file,omitempty"`
	URL        string              `json:"url,omitempty"`
	Bytes      int                 `json:"bytes,omitempty"`
	DurationMS int64               `json:"duration_ms"`
	Code       apperrors.ErrorCode `json:"code,omitempty"`
}

type errorResp struct {
	Code    apperrors.ErrorCode `json:"code"`
	Message string              `json:"message"`
}

func (s *Server) handleFormats(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.orch.Registry().Catalog())
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req generateReq
	body := http.MaxBytesReader(w, r.Body, maxGenerateBody)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		writeError(w, apperrors.Wrap(err, apperrors.CodeInvalidParam, "Invalid request body"))
		return
	}

	ctx := r.Context()
	if s.opts.GenerateTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.opts.GenerateTimeout)
		defer cancel()
	}
	res := s.orch.Run(ctx, req.Format, string(req.Size), string(req.Content), req.Subject)

	resp := generateResp{
		JobID:      res.JobID,
		OK:         res.OK,
		Status:     res.Status,
		URL:        res.URL,
		Bytes:      res.Bytes,
		DurationMS: res.Duration.Milliseconds(),
	}
	code := http.StatusOK
	if res.OK {
		resp.File = filepath.Base(res.Path)
	} else {
		resp.Code = apperrors.AsAppError(res.Err).Code
		code = apperrors.HTTPStatus(res.Err)
	}
	writeJSON(w, code, resp)
}

func (s *Server) handleJobList(w http.ResponseWriter, r *http.Request) {
	limit := s.opts.HistoryLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeError(w, apperrors.Newf(apperrors.CodeInvalidParam, "Invalid limit: %s", raw))
			return
		}
		limit = n
	}
	jobs := s.orch.Jobs()
	if jobs == nil {
		writeJSON(w, http.StatusOK, []store.Job{})
		return
	}
	list, err := jobs.List(r.Context(), limit)
	if err != nil {
		writeError(w, err)
		return
	}
	if list == nil {
		list = []store.Job{}
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleJobGet(w http.ResponseWriter, r *http.Request) {
	job, err := s.lookupJob(r)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, job)
}

func (s *Server) handleJobFile(w http.ResponseWriter, r *http.Request) {
	job, err := s.lookupJob(r)
	if err != nil {
		writeError(w, err)
		return
	}
	if !job.OK || job.Path == "" {
		writeError(w, apperrors.Newf(apperrors.CodeNotFound, "job %s has no file", job.ID))
		return
	}
	f, err := os.Open(job.Path)
	if err != nil {
		writeError(w, apperrors.Wrap(err, apperrors.CodeNotFound, "Generated file is no longer available"))
		return
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil {
		writeError(w, apperrors.Wrap(err, apperrors.CodeStorageFailed, "Failed to read generated file"))
		return
	}

	name := filepath.Base(job.Path)
	if mime := encoder.Format(job.Format).MIMEType(); mime != "" {
		w.Header().Set("Content-Type", mime)
	}
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
	http.ServeContent(w, r, name, info.ModTime(), f)
}

func (s *Server) lookupJob(r *http.Request) (store.Job, error) {
	id := strings.TrimSpace(chi.URLParam(r, "id"))
	jobs := s.orch.Jobs()
	if id == "" || jobs == nil {
		return store.Job{}, apperrors.Newf(apperrors.CodeNotFound, "job %s not found", id)
	}
	return jobs.Get(r.Context(), id)
}

// --- Helpers ---

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	appErr := apperrors.AsAppError(err)
	writeJSON(w, appErr.HTTPStatus, errorResp{Code: appErr.Code, Message: apperrors.UserMessage(err)})
}

func logMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ctx := r.Context()
		if reqID := middleware.GetReqID(ctx); reqID != "" {
			ctx = logger.WithContext(ctx, logger.RequestIDKey, reqID)
			r = r.WithContext(ctx)
		}
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		path := r.URL.Path
		if rctx := chi.RouteContext(ctx); rctx != nil && rctx.RoutePattern() != "" {
			path = rctx.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		elapsed := time.Since(start)
		metrics.HTTPRequestsTotal.WithLabelValues(r.Method, path, strconv.Itoa(status)).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(r.Method, path).Observe(elapsed.Seconds())
		logger.Info(ctx, "http request", "method", r.Method, "path", r.URL.Path, "route", path,
			"status", status, "bytes", ww.BytesWritten(), "duration_ms", elapsed.Milliseconds(),
			"remote", r.RemoteAddr)
	})
}
