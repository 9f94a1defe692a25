package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
)

// Request parameter normalization: every numeric field has a default and a
// clamp range, and malformed input falls back to the default instead of
// failing the request.

func queryIntClamped(r *http.Request, key string, def, min, max int) int {
	str := r.URL.Query().Get(key)
	if str == "" {
		return clampInt(def, min, max)
	}
	val, err := strconv.Atoi(str)
	if err != nil {
		return clampInt(def, min, max)
	}
	return clampInt(val, min, max)
}

func queryInt64Clamped(r *http.Request, key string, def, min, max int64) int64 {
	str := r.URL.Query().Get(key)
	if str == "" {
		return clampInt64(def, min, max)
	}
	val, err := strconv.ParseInt(str, 10, 64)
	if err != nil {
		return clampInt64(def, min, max)
	}
	return clampInt64(val, min, max)
}

func queryUint32(r *http.Request, key string, def uint32) uint32 {
	str := r.URL.Query().Get(key)
	if str == "" {
		return def
	}
	val, err := strconv.ParseUint(str, 10, 32)
	if err != nil {
		// Values above the unsigned 32-bit range clamp to the bound.
		// ParseUint already reports the saturated value with ErrRange.
		if errors.Is(err, strconv.ErrRange) {
			return uint32(val)
		}
		return def
	}
	return uint32(val)
}

// queryChannel reads one 8-bit color channel, clamped to [0,255], default 0.
func queryChannel(r *http.Request, key string) uint8 {
	return uint8(queryIntClamped(r, key, 0, 0, 255))
}

// queryTrimmed returns the trimmed, length-bounded value of an optional
// string parameter; empty means absent.
func queryTrimmed(r *http.Request, key string, maxLen int) string {
	return truncate(strings.TrimSpace(r.URL.Query().Get(key)), maxLen)
}

func clampInt(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func clampInt64(v, min, max int64) int64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// truncate bounds a string to maxLen runes, never splitting a rune.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen])
}
