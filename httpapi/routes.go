package httpapi

import (
	"bytes"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/user/showcut-cli/cue"
	"github.com/user/showcut-cli/pkg/export"
	"github.com/user/showcut-cli/pkg/timeutil"
)

func NewRouter(cfg ServerConfig) *chi.Mux {
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(RecoveryMiddleware(cfg.Logger))
	r.Use(LoggingMiddleware(cfg.Logger))

	r.Get("/health", healthHandler(cfg))
	r.Get("/document", documentHandler(cfg))
	r.Get("/cues", cuesHandler(cfg))
	r.Get("/cues/active", activeCueHandler(cfg))
	r.Route("/export", func(r chi.Router) {
		r.Get("/edl", edlHandler(cfg))
		r.Get("/csv", csvHandler(cfg))
	})

	return r
}

func healthHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var uptime int64
		if !cfg.Started.IsZero() {
			uptime = int64(time.Since(cfg.Started).Seconds())
		}
		WriteJSON(w, http.StatusOK, HealthResponse{
			Status:  "ok",
			Version: cfg.Version,
			UptimeS: uptime,
		})
	}
}

// loadDocument writes a 503 and returns nil when the source fails.
func loadDocument(cfg ServerConfig, w http.ResponseWriter) *cue.Document {
	doc, err := cfg.Source.Document()
	if err != nil || doc == nil {
		cfg.Logger.Error("load document", "error", err)
		WriteError(w, http.StatusServiceUnavailable, "document unavailable")
		return nil
	}
	return doc
}

func documentHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		doc := loadDocument(cfg, w)
		if doc == nil {
			return
		}
		var duration float64
		if n := len(doc.Cues); n > 0 {
			duration = doc.Cues[n-1].EndTime
		}
		WriteJSON(w, http.StatusOK, DocumentResponse{
			Title:     doc.Title,
			Num:       doc.Num,
			VideoPath: doc.VideoPath,
			Framerate: doc.Framerate,
			CueCount:  len(doc.Cues),
			Duration:  duration,
		})
	}
}

func cuesHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		doc := loadDocument(cfg, w)
		if doc == nil {
			return
		}
		cues := doc.Cues
		if cues == nil {
			cues = []cue.Cue{}
		}
		WriteJSON(w, http.StatusOK, CuesResponse{Cues: cues})
	}
}

func activeCueHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw := r.URL.Query().Get("t")
		if raw == "" {
			WriteError(w, http.StatusBadRequest, "missing query parameter t")
			return
		}
		t, err := timeutil.ParseTimeToSeconds(raw)
		if err != nil {
			WriteError(w, http.StatusBadRequest, err.Error())
			return
		}

		doc := loadDocument(cfg, w)
		if doc == nil {
			return
		}
		i := cue.FindActiveIndex(doc.Cues, t)
		if i < 0 {
			WriteError(w, http.StatusNotFound, "no cue at that time")
			return
		}
		WriteJSON(w, http.StatusOK, ActiveCueResponse{Time: t, Index: i, Cue: doc.Cues[i]})
	}
}

func edlHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var fps float64
		if raw := r.URL.Query().Get("fps"); raw != "" {
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil || v <= 0 {
				WriteError(w, http.StatusBadRequest, "fps must be a positive number")
				return
			}
			fps = v
		}

		doc := loadDocument(cfg, w)
		if doc == nil {
			return
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(export.EDL(doc, fps)))
	}
}

func csvHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		doc := loadDocument(cfg, w)
		if doc == nil {
			return
		}
		var buf bytes.Buffer
		if err := export.CutSheet(&buf, doc); err != nil {
			cfg.Logger.Error("render cut sheet", "error", err)
			WriteError(w, http.StatusInternalServerError, "render failed")
			return
		}
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write(buf.Bytes())
	}
}
