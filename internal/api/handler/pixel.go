package handler

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/creamcroissant/pixelbeacon/internal/pixel"
	"github.com/creamcroissant/pixelbeacon/internal/repository"
	"github.com/creamcroissant/pixelbeacon/internal/service"
)

// PixelHandler serves the tracking image endpoint: it records a hit and
// responds with a flat-color PNG synthesized from the request parameters.
type PixelHandler struct {
	hits        service.HitService
	renderer    *pixel.Renderer
	behindProxy bool
	logger      *slog.Logger
}

func NewPixelHandler(hits service.HitService, renderer *pixel.Renderer, behindProxy bool, logger *slog.Logger) *PixelHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &PixelHandler{
		hits:        hits,
		renderer:    renderer,
		behindProxy: behindProxy,
		logger:      logger,
	}
}

func (h *PixelHandler) Serve(w http.ResponseWriter, r *http.Request) {
	noCache(w)

	category := truncate(strings.TrimSpace(chi.URLParam(r, "category")), 32)
	if category == "" {
		RespondNotFound(w)
		return
	}

	width := queryIntClamped(r, "w", 1, 1, 512)
	height := queryIntClamped(r, "h", 1, 1, 512)
	color := queryUint32(r, "c", 0)

	var metadata *string
	if m := r.URL.Query().Get("m"); m != "" {
		value := truncate(m, 255)
		metadata = &value
	}

	rgba := pixel.DefaultColor
	if color > 0 {
		red, green, blue, alpha := pixel.Unpack(color)
		rgba = [4]uint8{red, green, blue, alpha}
	}

	hit := &repository.Hit{
		Date:      time.Now().Unix(),
		Category:  &category,
		IPAddress: clientIP(r, h.behindProxy),
		Width:     width,
		Height:    height,
		Color:     color,
		Metadata:  metadata,
		UserAgent: truncate(r.UserAgent(), 255),
	}

	if err := h.hits.Record(r.Context(), hit); err != nil {
		h.logger.Error("failed to record hit", "error", err, "category", category)
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}

	h.logger.Info("hit recorded",
		"id", hit.ID,
		"date", hit.Date,
		"category", category,
		"ip_address", hit.IPAddress,
		"width", width,
		"height", height,
		"color", color,
	)

	buf, err := h.renderer.Render(width, height, rgba)
	if err != nil {
		h.logger.Error("failed to render image", "error", err, "width", width, "height", height)
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}

	w.Header().Set("Content-Type", pixel.ContentType)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf); err != nil {
		h.logger.Warn("failed to write image response", "error", err)
	}
}
