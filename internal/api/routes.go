// Package api provides HTTP handlers for the colormap server.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/customcolour/colormaps/internal/cache"
	"github.com/customcolour/colormaps/internal/service"
	"github.com/customcolour/colormaps/pkg/colormap"
)

// RouterConfig contains router configuration.
type RouterConfig struct {
	Service         *service.SwatchService
	Cache           *cache.Manager
	CORSOrigins     []string
	Title           string
	DefaultColormap string
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))

	// CORS
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/colormaps", listHandler(cfg.Service, cfg.Title, cfg.DefaultColormap))
		r.Post("/colormaps", saveHandler(cfg.Service))
		r.Get("/colormaps/{name}", getHandler(cfg.Service))
		r.Delete("/colormaps/{name}", deleteHandler(cfg.Service))
		r.Get("/colormaps/{name}/lut.csv.gz", lutHandler(cfg.Service))
		if cfg.Cache != nil {
			r.Get("/stats", statsHandler(cfg.Cache))
		}
	})

	// Swatch previews: /swatch/{name}.png?transform=...&blend=...
	r.Get("/swatch/{name}.png", swatchHandler(cfg.Service))

	return r
}

func listHandler(svc *service.SwatchService, title, defaultName string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entries, err := svc.List()
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"title":     title,
			"default":   defaultName,
			"colormaps": entries,
		})
	}
}

func getHandler(svc *service.SwatchService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := chi.URLParam(r, "name")
		m, err := svc.Derive(name, parseTransformOptions(r))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, m)
	}
}

// saveRequest is the POST /api/colormaps body. Either an explicit stop
// list or a base map plus transform chain.
type saveRequest struct {
	Name       string          `json:"name"`
	Stops      []colormap.Stop `json:"stops,omitempty"`
	Base       string          `json:"base,omitempty"`
	Transforms []string        `json:"transforms,omitempty"`
	Blend      string          `json:"blend,omitempty"`
	Loc        string          `json:"loc,omitempty"`
	NBlend     int             `json:"nblend,omitempty"`
	NColor     int             `json:"ncolor,omitempty"`
}

func saveHandler(svc *service.SwatchService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req saveRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSONError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		if req.Name == "" {
			writeJSONError(w, http.StatusBadRequest, "name is required")
			return
		}

		var m *colormap.Map
		var err error
		switch {
		case len(req.Stops) > 0:
			m, err = colormap.New(req.Name, req.Stops)
		case req.Base != "":
			m, err = svc.Derive(req.Base, service.TransformOptions{
				Transforms: req.Transforms,
				Blend:      req.Blend,
				Loc:        req.Loc,
				NBlend:     req.NBlend,
				NColor:     req.NColor,
			})
			if err == nil {
				m = m.Renamed(req.Name)
			}
		default:
			writeJSONError(w, http.StatusBadRequest, "either stops or base is required")
			return
		}
		if err != nil {
			writeError(w, err)
			return
		}

		if err := svc.Save(m); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, m)
	}
}

func deleteHandler(svc *service.SwatchService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Delete(chi.URLParam(r, "name")); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func lutHandler(svc *service.SwatchService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := chi.URLParam(r, "name")
		n, _ := strconv.Atoi(r.URL.Query().Get("n"))

		data, err := svc.LUT(name, n)
		if err != nil {
			writeError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/gzip")
		w.Header().Set("Content-Disposition", `attachment; filename="`+name+`-lut.csv.gz"`)
		w.Write(data)
	}
}

func swatchHandler(svc *service.SwatchService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := strings.TrimSuffix(chi.URLParam(r, "name"), ".png")

		data, err := svc.Swatch(name, parseTransformOptions(r))
		if err != nil {
			writeError(w, err)
			return
		}

		w.Header().Set("Content-Type", "image/png")
		w.Header().Set("Cache-Control", "public, max-age=3600")
		w.Write(data)
	}
}

func statsHandler(c *cache.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, c.Stats())
	}
}

func parseTransformOptions(r *http.Request) service.TransformOptions {
	q := r.URL.Query()

	var transforms []string
	if raw := q.Get("transform"); raw != "" {
		for _, tr := range strings.Split(raw, ",") {
			if tr = strings.TrimSpace(tr); tr != "" {
				transforms = append(transforms, tr)
			}
		}
	}

	nblend, _ := strconv.Atoi(q.Get("nblend"))
	ncolor, _ := strconv.Atoi(q.Get("ncolor"))

	return service.TransformOptions{
		Transforms: transforms,
		Blend:      q.Get("blend"),
		Loc:        q.Get("loc"),
		NBlend:     nblend,
		NColor:     ncolor,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// Response already started; an encode failure has nowhere to go.
	_ = json.NewEncoder(w).Encode(v)
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func writeError(w http.ResponseWriter, err error) {
	var nfe *colormap.NotFoundError
	var oor *colormap.OutOfRangeError
	var ime *colormap.InvalidMapError

	switch {
	case errors.As(err, &nfe):
		writeJSONError(w, http.StatusNotFound, err.Error())
	case errors.As(err, &oor), errors.As(err, &ime):
		writeJSONError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrReadOnly):
		writeJSONError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrInvalidOptions):
		writeJSONError(w, http.StatusBadRequest, err.Error())
	default:
		writeJSONError(w, http.StatusInternalServerError, err.Error())
	}
}
