// Command tapscand is the tap target audit service. It exposes the
// audit pipeline over HTTP: submit a URL, get back the stored report.
//
// Environment:
//
//	PORT                 listen port (default 8080)
//	TAPSCAN_DB           SQLite database path (default tapscan.db)
//	TAPSCAN_BROWSER_URL  WebSocket URL of a remote Chrome (default: launch locally)
//	TAPSCAN_USER         basic auth user (auth disabled when empty)
//	TAPSCAN_PASS_HASH    bcrypt hash of the basic auth password
package main

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/crypto/bcrypt"
	_ "modernc.org/sqlite"

	"github.com/tapscan/tapscan/gatherer"
	"github.com/tapscan/tapscan/idgen"
	"github.com/tapscan/tapscan/kit"
	"github.com/tapscan/tapscan/report"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, logger); err != nil {
		logger.Error("tapscand: fatal", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *slog.Logger) error {
	store, err := report.OpenStore(env("TAPSCAN_DB", "tapscan.db"))
	if err != nil {
		return err
	}
	defer store.Close()

	g := gatherer.New(gatherer.Config{
		RemoteURL: os.Getenv("TAPSCAN_BROWSER_URL"),
		Logger:    logger,
	})
	if err := g.Start(ctx); err != nil {
		return err
	}
	defer g.Close()

	auditor := gatherer.NewAuditor(g, gatherer.WithStore(store))
	srv := &server{auditor: auditor, store: store, logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(requestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(2 * time.Minute))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Group(func(r chi.Router) {
		r.Use(basicAuth(os.Getenv("TAPSCAN_USER"), os.Getenv("TAPSCAN_PASS_HASH"), logger))
		r.Post("/v1/audits", srv.handleCreateAudit)
		r.Get("/v1/audits", srv.handleListAudits)
		r.Get("/v1/audits/{id}", srv.handleGetAudit)
		r.Get("/v1/audits/{id}/markdown", srv.handleGetAuditMarkdown)
	})

	addr := ":" + env("PORT", "8080")
	httpSrv := &http.Server{Addr: addr, Handler: r}

	go func() {
		<-ctx.Done()
		shutCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		httpSrv.Shutdown(shutCtx)
	}()

	logger.Info("tapscand: listening", "addr", addr)
	if err := httpSrv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

type server struct {
	auditor *gatherer.Auditor
	store   *report.Store
	logger  *slog.Logger
}

func (s *server) handleCreateAudit(w http.ResponseWriter, r *http.Request) {
	var req struct {
		URL string `json:"url"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if req.URL == "" {
		writeError(w, http.StatusBadRequest, fmt.Errorf("url is required"))
		return
	}

	rep, err := s.auditor.Audit(r.Context(), req.URL)
	if err != nil {
		s.logger.Error("tapscand: audit failed", "url", req.URL, "error", err)
		writeError(w, http.StatusBadGateway, err)
		return
	}
	writeJSON(w, http.StatusCreated, rep)
}

func (s *server) handleListAudits(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	runs, err := s.store.List(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if runs == nil {
		runs = []report.RunSummary{}
	}
	writeJSON(w, http.StatusOK, runs)
}

func (s *server) handleGetAudit(w http.ResponseWriter, r *http.Request) {
	rep, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, report.ErrNotFound) {
		writeError(w, http.StatusNotFound, err)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, rep)
}

func (s *server) handleGetAuditMarkdown(w http.ResponseWriter, r *http.Request) {
	rep, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, report.ErrNotFound) {
		writeError(w, http.StatusNotFound, err)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	md, err := report.RenderMarkdown(rep)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.Write([]byte(md))
}

// requestID tags every request context with a fresh ID for log correlation.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := middleware.GetReqID(r.Context())
		if id == "" {
			id = idgen.New()
		}
		next.ServeHTTP(w, r.WithContext(kit.WithRequestID(r.Context(), id)))
	})
}

// basicAuth enforces HTTP basic auth against a bcrypt password hash.
// With no user configured the service runs open; meant for local use only.
func basicAuth(user, passHash string, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if user == "" {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u, p, ok := r.BasicAuth()
			if !ok ||
				subtle.ConstantTimeCompare([]byte(u), []byte(user)) != 1 ||
				bcrypt.CompareHashAndPassword([]byte(passHash), []byte(p)) != nil {
				logger.Warn("tapscand: auth rejected", "remote", r.RemoteAddr)
				w.Header().Set("WWW-Authenticate", `Basic realm="tapscan"`)
				writeError(w, http.StatusUnauthorized, fmt.Errorf("unauthorized"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func env(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, err error) {
	writeJSON(w, code, map[string]string{"error": err.Error()})
}
