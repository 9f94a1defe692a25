package api

import (
	"bytes"
	"encoding/json"
	"image/png"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/creamcroissant/pixelbeacon/internal/bootstrap"
	"github.com/creamcroissant/pixelbeacon/internal/migrations"
	"github.com/creamcroissant/pixelbeacon/internal/pixel"
	"github.com/creamcroissant/pixelbeacon/internal/repository/sqlite"
	"github.com/creamcroissant/pixelbeacon/internal/service"
)

// newTestServer wires a router over a migrated temp database.
// Metrics stay disabled so repeated router construction does not re-register
// collectors on the default prometheus registry.
func newTestServer(t *testing.T, opts Options) *httptest.Server {
	t.Helper()

	db, err := bootstrap.OpenSQLite(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, migrations.Up(db))

	router := NewRouter(slog.Default(), Services{
		Hits:     service.NewHitService(sqlite.NewStore(db)),
		Renderer: pixel.NewRenderer(),
	}, opts)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return server
}

func get(t *testing.T, url string) (*http.Response, []byte) {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, url, nil)
	require.NoError(t, err)
	req.Header.Set("User-Agent", "router-test/1.0")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()
	return resp, body
}

func decodeJSON(t *testing.T, body []byte, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(body, v))
}

type statsResponse struct {
	Status       string            `json:"status"`
	Filters      map[string]any    `json:"filters"`
	ResultsCount int               `json:"results_count"`
	Results      []service.HitView `json:"results"`
}

func TestRouter_RootStatus(t *testing.T) {
	server := newTestServer(t, Options{})

	resp, body := get(t, server.URL+"/")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Cache-Control"), "no-cache")

	var payload map[string]any
	decodeJSON(t, body, &payload)
	assert.Equal(t, "ok", payload["status"])
	assert.Nil(t, payload["message"])
}

func TestRouter_RobotsTXT(t *testing.T) {
	server := newTestServer(t, Options{})

	resp, body := get(t, server.URL+"/robots.txt")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/plain", resp.Header.Get("Content-Type"))
	assert.Contains(t, string(body), "Disallow: /")
}

func TestRouter_Favicon(t *testing.T) {
	server := newTestServer(t, Options{})

	resp, body := get(t, server.URL+"/favicon.ico")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "image/x-icon", resp.Header.Get("Content-Type"))
	assert.Empty(t, body)
}

func TestRouter_UnknownRoute(t *testing.T) {
	server := newTestServer(t, Options{})

	resp, body := get(t, server.URL+"/nope")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	var payload map[string]any
	decodeJSON(t, body, &payload)
	assert.Equal(t, "error", payload["status"])
	assert.Equal(t, "not found", payload["message"])
}

func TestRouter_PixelServesImageAndRecordsHit(t *testing.T) {
	server := newTestServer(t, Options{AdminKey: "sekrit"})

	resp, body := get(t, server.URL+"/image/ads.png?w=10&h=5&c=4278190335&m=campaign-7")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Cache-Control"), "no-store")

	img, err := png.Decode(bytes.NewReader(body))
	require.NoError(t, err)
	assert.Equal(t, 10, img.Bounds().Dx())
	assert.Equal(t, 5, img.Bounds().Dy())

	r, g, b, a := img.At(4, 2).RGBA()
	assert.Equal(t, uint32(0xFFFF), r, "pixel should be red")
	assert.Zero(t, g)
	assert.Zero(t, b)
	assert.Equal(t, uint32(0xFFFF), a)

	// The hit must be queryable through the admin interface.
	resp, body = get(t, server.URL+"/admin/stats?key=sekrit&category=ads")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var stats statsResponse
	decodeJSON(t, body, &stats)
	assert.Equal(t, "ok", stats.Status)
	assert.Equal(t, 1, stats.ResultsCount)
	require.Len(t, stats.Results, 1)

	hit := stats.Results[0]
	require.NotNil(t, hit.Category)
	assert.Equal(t, "ads", *hit.Category)
	assert.Equal(t, 10, hit.Image.Width)
	assert.Equal(t, 5, hit.Image.Height)
	assert.Equal(t, uint32(4278190335), hit.Image.Color)
	require.NotNil(t, hit.Metadata)
	assert.Equal(t, "campaign-7", *hit.Metadata)
	assert.Equal(t, "router-test/1.0", hit.UserAgent)
	assert.NotEmpty(t, hit.IPAddress)
	assert.Positive(t, hit.UnixTime)
	assert.Len(t, hit.Date, 19, "date is formatted to second precision")
	assert.Equal(t, map[string]any{"category": "ads"}, stats.Filters)
}

func TestRouter_PixelDefaultsToTransparentSinglePixel(t *testing.T) {
	server := newTestServer(t, Options{AdminKey: "sekrit"})

	resp, body := get(t, server.URL+"/image/blank.png")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	img, err := png.Decode(bytes.NewReader(body))
	require.NoError(t, err)
	assert.Equal(t, 1, img.Bounds().Dx())
	assert.Equal(t, 1, img.Bounds().Dy())

	_, _, _, a := img.At(0, 0).RGBA()
	assert.Zero(t, a, "default pixel is fully transparent")
}

func TestRouter_PixelClampsOversizedDimensions(t *testing.T) {
	server := newTestServer(t, Options{AdminKey: "sekrit"})

	resp, body := get(t, server.URL+"/image/big.png?w=100000&h=-3")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	img, err := png.Decode(bytes.NewReader(body))
	require.NoError(t, err)
	assert.Equal(t, 512, img.Bounds().Dx())
	assert.Equal(t, 1, img.Bounds().Dy())
}

func TestRouter_PixelWithoutCategoryIsNotFound(t *testing.T) {
	server := newTestServer(t, Options{AdminKey: "sekrit"})

	resp, body := get(t, server.URL+"/image/.png")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	var payload map[string]any
	decodeJSON(t, body, &payload)
	assert.Equal(t, "error", payload["status"])

	// No record may exist for the rejected request.
	resp, body = get(t, server.URL+"/admin/stats?key=sekrit")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var stats statsResponse
	decodeJSON(t, body, &stats)
	assert.Zero(t, stats.ResultsCount)
}

func TestRouter_AdminRejectedWithoutConfiguredKey(t *testing.T) {
	server := newTestServer(t, Options{AdminKey: ""})

	for _, url := range []string{
		server.URL + "/admin/stats",
		server.URL + "/admin/stats?key=",
		server.URL + "/admin/stats?key=anything",
	} {
		resp, body := get(t, url)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)

		var payload map[string]any
		decodeJSON(t, body, &payload)
		assert.Equal(t, "error", payload["status"])
		assert.Equal(t, "unauthorized", payload["message"])
	}
}

func TestRouter_AdminRejectsWrongKey(t *testing.T) {
	server := newTestServer(t, Options{AdminKey: "sekrit"})

	resp, _ := get(t, server.URL+"/admin/stats?key=wrong")
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestRouter_AdminUnknownCommand(t *testing.T) {
	server := newTestServer(t, Options{AdminKey: "sekrit"})

	resp, body := get(t, server.URL+"/admin/bogus?key=sekrit")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	var payload map[string]any
	decodeJSON(t, body, &payload)
	assert.Equal(t, "error", payload["status"])
	assert.Equal(t, "not found", payload["message"])
}

func TestRouter_AdminColorCommand(t *testing.T) {
	server := newTestServer(t, Options{AdminKey: "sekrit"})

	resp, body := get(t, server.URL+"/admin/color?key=sekrit&red=255&green=0&blue=0&alpha=255")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var payload struct {
		Status string `json:"status"`
		Color  uint32 `json:"color"`
	}
	decodeJSON(t, body, &payload)
	assert.Equal(t, "ok", payload.Status)
	assert.Equal(t, uint32(4278190335), payload.Color)
}

func TestRouter_AdminColorClampsChannels(t *testing.T) {
	server := newTestServer(t, Options{AdminKey: "sekrit"})

	resp, body := get(t, server.URL+"/admin/color?key=sekrit&red=999&alpha=-7")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var payload struct {
		Color uint32 `json:"color"`
	}
	decodeJSON(t, body, &payload)
	assert.Equal(t, uint32(0xFF000000), payload.Color)
}

func TestRouter_AdminStatsPagination(t *testing.T) {
	server := newTestServer(t, Options{AdminKey: "sekrit"})

	for i := 0; i < 15; i++ {
		resp, _ := get(t, server.URL+"/image/bulk.png")
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}

	resp, body := get(t, server.URL+"/admin/stats?key=sekrit&limit=10&page=2")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var stats statsResponse
	decodeJSON(t, body, &stats)
	assert.Equal(t, 5, stats.ResultsCount, "page 2 holds the remainder")
	assert.Empty(t, stats.Filters, "limit/page are not filter dimensions")
}

func TestRouter_AdminStatsTimeWindow(t *testing.T) {
	server := newTestServer(t, Options{AdminKey: "sekrit"})

	resp, _ := get(t, server.URL+"/image/win.png")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// A before bound far in the past excludes the fresh hit.
	resp, body := get(t, server.URL+"/admin/stats?key=sekrit&before=1000")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var stats statsResponse
	decodeJSON(t, body, &stats)
	assert.Zero(t, stats.ResultsCount)
	assert.Equal(t, map[string]any{"before": float64(1000)}, stats.Filters)

	// An after bound in the past includes it.
	resp, body = get(t, server.URL+"/admin/stats?key=sekrit&after=1000")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeJSON(t, body, &stats)
	assert.Equal(t, 1, stats.ResultsCount)
}

func TestRouter_Healthz(t *testing.T) {
	server := newTestServer(t, Options{})

	resp, body := get(t, server.URL+"/healthz")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var payload map[string]any
	decodeJSON(t, body, &payload)
	assert.Equal(t, "ok", payload["status"])
}
