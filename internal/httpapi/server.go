package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"aigateway/internal/apierr"
	"aigateway/pkg/types"
)

// ImageService is the image-generation surface the HTTP layer needs.
type ImageService interface {
	Generate(ctx context.Context, req types.GenerationRequest) (*types.GenerationResult, error)
	Models() types.ImageModelsResponse
	Sizes() types.SizesResponse
	Styles() types.StylesResponse
	Healthy(ctx context.Context) error
}

// ChatService is the chat surface the HTTP layer needs.
type ChatService interface {
	Reply(ctx context.Context, req types.ChatRequest) (*types.ChatResponse, error)
	Models() types.ChatModelsResponse
	Healthy(ctx context.Context) error
}

// Services groups the backends mounted by NewMux. A nil service leaves its
// routes unmounted.
type Services struct {
	Images ImageService
	Chat   ChatService
}

func NewMux(svc Services) http.Handler {
	r := chi.NewRouter()
	// Basic middlewares: request id, real ip, recoverer
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(MetricsMiddleware)
	r.Use(trustedHosts)
	if corsEnabled {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   corsAllowedOrigins,
			AllowedMethods:   corsAllowedMethods,
			AllowedHeaders:   corsAllowedHeaders,
			AllowCredentials: corsAllowCredentials,
			MaxAge:           300,
		}))
	}
	// Compression for JSON endpoints
	r.Use(middleware.Compress(5))
	r.Use(securityHeaders)

	if svc.Images != nil {
		h := &imageHandlers{svc: svc.Images}
		r.Route("/api/images", func(r chi.Router) {
			r.Post("/generate", h.generate)
			r.Get("/models", h.models)
			r.Get("/sizes", h.sizes)
			r.Get("/styles", h.styles)
			r.Get("/health", h.health)
		})
	}
	if svc.Chat != nil {
		h := &chatHandlers{svc: svc.Chat}
		r.Route("/api/chat", func(r chi.Router) {
			r.Post("/message", h.message)
			r.Get("/models", h.models)
			r.Get("/health", h.health)
		})
	}

	r.Get("/health", appHealth)
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	// Prometheus metrics endpoint
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	MountSwagger(r)
	if staticDir != "" {
		mountStatic(r, staticDir)
	}
	return r
}

// writeJSON encodes v with status 200.
func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "Internal server error", "failed to encode response", "internal_error")
	}
}

// decodeJSON reads a size-limited JSON body into dst. On failure it writes the
// error response and returns its status with ok=false.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) (status int, ok bool) {
	ct := r.Header.Get("Content-Type")
	if ct == "" || !strings.HasPrefix(strings.ToLower(ct), "application/json") {
		writeJSONError(w, http.StatusUnsupportedMediaType, "Unsupported media type", "Content-Type must be application/json", "unsupported_media_type")
		return http.StatusUnsupportedMediaType, false
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			writeJSONError(w, http.StatusRequestEntityTooLarge, "Request too large", "request body exceeds the size limit", "request_too_large")
			return http.StatusRequestEntityTooLarge, false
		}
		return writeError(w, apierr.Validation("invalid JSON body")), false
	}
	return 0, true
}

type imageHandlers struct {
	svc ImageService
}

// generate godoc
// @Summary      Generate images
// @Description  Composes the prompt for the requested style, calls the image provider and returns inline PNG data.
// @Tags         images
// @Accept       json
// @Produce      json
// @Param        request  body      types.GenerationRequest  true  "Generation request"
// @Success      200      {object}  types.GenerationResult
// @Failure      400      {object}  types.ErrorResponse  "Provider rejected the request (other provider 4xx/5xx statuses are relayed the same way)"
// @Failure      408      {object}  types.ErrorResponse
// @Failure      413      {object}  types.ErrorResponse
// @Failure      415      {object}  types.ErrorResponse
// @Failure      422      {object}  types.ErrorResponse
// @Failure      429      {object}  types.ErrorResponse
// @Failure      500      {object}  types.ErrorResponse
// @Failure      502      {object}  types.ErrorResponse  "Provider answered with a non-error, non-200 status"
// @Failure      503      {object}  types.ErrorResponse  "Provider unavailable after retry, or server shutting down"
// @Router       /api/images/generate [post]
func (h *imageHandlers) generate(w http.ResponseWriter, r *http.Request) {
	lvl := requestLogLevel(r)
	start := time.Now()
	var req types.GenerationRequest
	if status, ok := decodeJSON(w, r, &req); !ok {
		logEnd(r, lvl, "generate", status, start, errors.New("bad request body"))
		return
	}
	logStart(r, lvl, "generate", map[string]any{"model": req.Model, "size": req.Size, "style": req.Style})

	ctx, cancel := handlerContext(r)
	defer cancel()
	res, err := h.svc.Generate(ctx, req)
	if err != nil {
		// Client disconnected; nobody is left to read a response.
		if clientGone(r) {
			return
		}
		if shuttingDown() {
			err = errShuttingDown()
		}
		logEnd(r, lvl, "generate", writeError(w, err), start, err)
		return
	}
	writeJSON(w, res)
	logEnd(r, lvl, "generate", http.StatusOK, start, nil)
}

// models godoc
// @Summary  List image models
// @Tags     images
// @Produce  json
// @Success  200  {object}  types.ImageModelsResponse
// @Router   /api/images/models [get]
func (h *imageHandlers) models(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.svc.Models())
}

// sizes godoc
// @Summary  List image sizes
// @Tags     images
// @Produce  json
// @Success  200  {object}  types.SizesResponse
// @Router   /api/images/sizes [get]
func (h *imageHandlers) sizes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.svc.Sizes())
}

// styles godoc
// @Summary  List image styles
// @Tags     images
// @Produce  json
// @Success  200  {object}  types.StylesResponse
// @Router   /api/images/styles [get]
func (h *imageHandlers) styles(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.svc.Styles())
}

// health godoc
// @Summary      Image provider health
// @Description  Runs a minimal generation against the provider.
// @Tags         images
// @Produce      json
// @Success      200  {object}  types.ServiceHealth
// @Failure      503  {object}  types.ErrorResponse
// @Router       /api/images/health [get]
func (h *imageHandlers) health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := handlerContext(r)
	defer cancel()
	if err := h.svc.Healthy(ctx); err != nil {
		writeError(w, apierr.Unavailable("Image generation service health check failed"))
		return
	}
	writeJSON(w, types.ServiceHealth{Status: "healthy", Service: "huggingface"})
}

type chatHandlers struct {
	svc ChatService
}

// message godoc
// @Summary  Send a chat message
// @Tags     chat
// @Accept   json
// @Produce  json
// @Param    request  body      types.ChatRequest  true  "Chat request"
// @Success  200      {object}  types.ChatResponse
// @Failure  408      {object}  types.ErrorResponse
// @Failure  413      {object}  types.ErrorResponse
// @Failure  415      {object}  types.ErrorResponse
// @Failure  422      {object}  types.ErrorResponse
// @Failure  500      {object}  types.ErrorResponse
// @Failure  503      {object}  types.ErrorResponse  "Server shutting down"
// @Router   /api/chat/message [post]
func (h *chatHandlers) message(w http.ResponseWriter, r *http.Request) {
	lvl := requestLogLevel(r)
	start := time.Now()
	var req types.ChatRequest
	if status, ok := decodeJSON(w, r, &req); !ok {
		logEnd(r, lvl, "chat", status, start, errors.New("bad request body"))
		return
	}
	logStart(r, lvl, "chat", map[string]any{"history": len(req.ConversationHistory)})

	ctx, cancel := handlerContext(r)
	defer cancel()
	res, err := h.svc.Reply(ctx, req)
	if err != nil {
		if clientGone(r) {
			return
		}
		if shuttingDown() {
			err = errShuttingDown()
		}
		logEnd(r, lvl, "chat", writeError(w, err), start, err)
		return
	}
	writeJSON(w, res)
	logEnd(r, lvl, "chat", http.StatusOK, start, nil)
}

// models godoc
// @Summary  List chat models
// @Tags     chat
// @Produce  json
// @Success  200  {object}  types.ChatModelsResponse
// @Router   /api/chat/models [get]
func (h *chatHandlers) models(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.svc.Models())
}

// health godoc
// @Summary  Chat provider health
// @Tags     chat
// @Produce  json
// @Success  200  {object}  types.ServiceHealth
// @Failure  503  {object}  types.ErrorResponse
// @Router   /api/chat/health [get]
func (h *chatHandlers) health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := handlerContext(r)
	defer cancel()
	if err := h.svc.Healthy(ctx); err != nil {
		writeError(w, apierr.Unavailable("Chat service health check failed"))
		return
	}
	writeJSON(w, types.ServiceHealth{Status: "healthy", Service: "gemini"})
}

// appHealth godoc
// @Summary  Application health
// @Tags     health
// @Produce  json
// @Success  200  {object}  types.AppHealth
// @Router   /health [get]
func appHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, types.AppHealth{Status: "healthy", AppName: appName, Version: appVersion, Debug: appDebug})
}
