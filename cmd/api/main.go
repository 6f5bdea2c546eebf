package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/joho/godotenv"

	"churn-insights-go/internal/dataset"
	"churn-insights-go/internal/logger"
	"churn-insights-go/internal/pipeline"
)

// maxUploadBytes caps the multipart form held in memory per upload.
const maxUploadBytes = 32 << 20

func main() {
	_ = godotenv.Load() // loads .env

	log := logger.New()
	log.WithField("service", "churn-insights-go").Info("starting service")

	pipe := pipeline.NewDefault()

	// The latest result is swapped wholesale per upload. One upload at a
	// time is assumed, not enforced; a slower run finishing later wins.
	var mu sync.RWMutex
	var current *pipeline.Result

	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		logger.New().WithRequest(r).Info("health check")
		fmt.Fprint(w, "ok")
	})

	mux.HandleFunc("/upload", func(w http.ResponseWriter, r *http.Request) {
		reqLog := logger.New().WithRequest(r).WithField("handler", "upload")
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			reqLog.WithError(err).Warn("bad multipart form")
			http.Error(w, "bad multipart form", http.StatusBadRequest)
			return
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			reqLog.Warn("missing file field")
			http.Error(w, "missing file field", http.StatusBadRequest)
			return
		}
		defer file.Close()
		reqLog = reqLog.WithField("filename", header.Filename)

		rows, err := dataset.LoadReader(file, header.Filename)
		if err != nil {
			reqLog.WithError(err).Warn("ingestion failed")
			http.Error(w, fmt.Sprintf("ingestion failed: %v", err), http.StatusBadRequest)
			return
		}

		start := time.Now()
		res, ok := pipe.Process(r.Context(), rows)
		if !ok {
			reqLog.Warn("pipeline reported no data")
			http.Error(w, "no processable rows", http.StatusUnprocessableEntity)
			return
		}
		mu.Lock()
		current = res
		mu.Unlock()

		reqLog.WithField("rows", len(rows)).
			WithField("duration_ms", time.Since(start).Milliseconds()).
			Info("upload processed")
		writeJSON(w, map[string]interface{}{
			"users_processed": len(res.Users()),
			"personas":        len(res.Personas()),
		})
	})

	snapshot := func() *pipeline.Result {
		mu.RLock()
		defer mu.RUnlock()
		return current
	}

	mux.HandleFunc("/status", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]bool{"has_data": snapshot().HasGeneratedData()})
	})
	mux.HandleFunc("/users", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, snapshot().Users())
	})
	mux.HandleFunc("/personas", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, snapshot().Personas())
	})
	mux.HandleFunc("/stories", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, snapshot().Stories())
	})
	mux.HandleFunc("/metrics", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, snapshot().Metrics())
	})
	mux.HandleFunc("/insights", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, snapshot().Insights())
	})

	addr := fmt.Sprintf(":%s", envOr("PORT", "8080"))
	srv := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	log.WithField("addr", addr).Info("listening")
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.WithError(err).Fatal("server terminated")
	}
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		logger.New().WithError(err).Error("failed to write response")
	}
}

func envOr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
