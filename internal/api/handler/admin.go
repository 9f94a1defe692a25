package handler

import (
	"crypto/subtle"
	"log/slog"
	"math"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/creamcroissant/pixelbeacon/internal/pixel"
	"github.com/creamcroissant/pixelbeacon/internal/repository"
	"github.com/creamcroissant/pixelbeacon/internal/service"
)

// AdminHandler serves the authenticated query interface over the hit log.
type AdminHandler struct {
	hits        service.HitService
	key         string
	behindProxy bool
	logger      *slog.Logger
}

func NewAdminHandler(hits service.HitService, key string, behindProxy bool, logger *slog.Logger) *AdminHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AdminHandler{
		hits:        hits,
		key:         key,
		behindProxy: behindProxy,
		logger:      logger,
	}
}

func (h *AdminHandler) Handle(w http.ResponseWriter, r *http.Request) {
	noCache(w)

	command := chi.URLParam(r, "command")

	// Every access attempt is logged before the credential is checked.
	h.logger.Info("admin access",
		"date", time.Now().Unix(),
		"ip_address", clientIP(r, h.behindProxy),
		"path", r.URL.Path,
		"user_agent", r.UserAgent(),
		"command", command,
	)

	if !h.authorized(r.URL.Query().Get("key")) {
		respondError(w, http.StatusForbidden, "unauthorized")
		return
	}

	switch command {
	case "stats":
		h.stats(w, r)
	case "color":
		h.color(w, r)
	default:
		RespondNotFound(w)
	}
}

// authorized requires an exact match against the configured key. An
// unconfigured key rejects everything.
func (h *AdminHandler) authorized(key string) bool {
	if h.key == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(key), []byte(h.key)) == 1
}

func (h *AdminHandler) stats(w http.ResponseWriter, r *http.Request) {
	filter := repository.HitFilter{
		Category:  queryTrimmed(r, "category", 32),
		IPAddress: queryTrimmed(r, "ip_address", 45),
		Before:    queryInt64Clamped(r, "before", 0, 0, math.MaxInt64),
		After:     queryInt64Clamped(r, "after", 0, 0, math.MaxInt64),
		Limit:     queryIntClamped(r, "limit", 50, 1, 255),
		Page:      queryIntClamped(r, "page", 1, 1, 100000),
	}

	results, err := h.hits.Query(r.Context(), filter)
	if err != nil {
		h.logger.Error("failed to query hits", "error", err)
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}

	respondOK(w, map[string]any{
		"filters":       filter.Applied(),
		"results_count": len(results),
		"results":       results,
	})
}

func (h *AdminHandler) color(w http.ResponseWriter, r *http.Request) {
	color := pixel.Pack(
		queryChannel(r, "red"),
		queryChannel(r, "green"),
		queryChannel(r, "blue"),
		queryChannel(r, "alpha"),
	)

	respondOK(w, map[string]any{
		"color": color,
	})
}
