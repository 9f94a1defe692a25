package handler

import "net/http"

const robotsTxt = `# disallow all robots
User-agent: *
Disallow: /
`

// Status responds to the root probe.
func Status(w http.ResponseWriter, _ *http.Request) {
	noCache(w)
	respondJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"message": nil,
	})
}

// RobotsTXT excludes all crawlers.
func RobotsTXT(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(robotsTxt))
}

// Favicon responds 404 with the icon content type and no body.
func Favicon(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "image/x-icon")
	w.WriteHeader(http.StatusNotFound)
}
