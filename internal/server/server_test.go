package server

import (
	"bytes"
	"encoding/json"
	"image/color"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/disintegration/imaging"

	"github.com/flagring/flagring/pkg/assets"
	"github.com/flagring/flagring/pkg/cache"
	"github.com/flagring/flagring/pkg/flag"
	"github.com/flagring/flagring/pkg/pipeline"
)

func testManifest() *assets.Manifest {
	return &assets.Manifest{
		Version: "1",
		Flags: []flag.Flag{
			{
				ID:          "trans",
				DisplayName: "Transgender Pride",
				Category:    "pride",
				Orientation: flag.Horizontal,
				Stripes: []flag.Stripe{
					{Color: "#5BCEFA", Weight: 1},
					{Color: "#F5A9B8", Weight: 1},
					{Color: "#FFFFFF", Weight: 1},
					{Color: "#F5A9B8", Weight: 1},
					{Color: "#5BCEFA", Weight: 1},
				},
			},
			{
				ID:          "ukraine",
				DisplayName: "Ukraine",
				Category:    "national",
				Orientation: flag.Horizontal,
				Stripes: []flag.Stripe{
					{Color: "#0057B7", Weight: 1},
					{Color: "#FFD700", Weight: 1},
				},
			},
		},
	}
}

func testServer(t *testing.T) *Server {
	t.Helper()
	logger := log.New(io.Discard)
	manifest := testManifest()
	runner := pipeline.NewRunner(manifest, cache.NewNullCache(), nil, logger)
	return New(Config{Manifest: manifest, Runner: runner, Logger: logger})
}

func photoPNG(t *testing.T) []byte {
	t.Helper()
	img := imaging.New(64, 64, color.NRGBA{R: 200, G: 100, B: 50, A: 255})
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		t.Fatalf("encode photo: %v", err)
	}
	return buf.Bytes()
}

func renderRequest(t *testing.T, fields map[string]string, photo []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatalf("write field %s: %v", k, err)
		}
	}
	if photo != nil {
		part, err := mw.CreateFormFile("photo", "photo.png")
		if err != nil {
			t.Fatalf("create photo part: %v", err)
		}
		if _, err := part.Write(photo); err != nil {
			t.Fatalf("write photo: %v", err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/v1/render", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestHealthz(t *testing.T) {
	srv := testServer(t)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("content type = %q, want application/json", ct)
	}
}

func TestListFlags(t *testing.T) {
	srv := testServer(t)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/flags", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp flagsResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Flags) != 2 {
		t.Errorf("len(flags) = %d, want 2", len(resp.Flags))
	}
}

func TestListFlagsByCategory(t *testing.T) {
	srv := testServer(t)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/flags?category=national", nil))

	var resp flagsResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Flags) != 1 || resp.Flags[0].ID != "ukraine" {
		t.Errorf("flags = %+v, want only ukraine", resp.Flags)
	}
}

func TestListFlagsUnknownCategory(t *testing.T) {
	srv := testServer(t)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/flags?category=nope", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"flags":[]`) {
		t.Errorf("body = %s, want an empty flags array", rec.Body.String())
	}
}

func TestGetFlag(t *testing.T) {
	srv := testServer(t)

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/flags/trans", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var f flag.Flag
	if err := json.NewDecoder(rec.Body).Decode(&f); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if f.DisplayName != "Transgender Pride" {
		t.Errorf("display name = %q", f.DisplayName)
	}
}

func TestGetFlagNotFound(t *testing.T) {
	srv := testServer(t)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/flags/nope", nil))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}

	var resp errorResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if resp.Error.Code != "FLAG_NOT_FOUND" {
		t.Errorf("error code = %q, want FLAG_NOT_FOUND", resp.Error.Code)
	}
}

func TestRenderWithPhoto(t *testing.T) {
	srv := testServer(t)
	req := renderRequest(t, map[string]string{"flag": "ukraine"}, photoPNG(t))

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/png" {
		t.Errorf("content type = %q, want image/png", ct)
	}
	if got := rec.Header().Get("X-Render-Cache"); got != "miss" {
		t.Errorf("cache header = %q, want miss", got)
	}

	img, err := imaging.Decode(bytes.NewReader(rec.Body.Bytes()))
	if err != nil {
		t.Fatalf("decode PNG: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 512 || b.Dy() != 512 {
		t.Errorf("bounds = %v, want 512x512", b)
	}
}

func TestRenderInlinePattern(t *testing.T) {
	srv := testServer(t)
	pattern := `{"orientation":"horizontal","stripes":[{"color":"#FF0000","weight":1},{"color":"#FFFFFF","weight":1}]}`
	req := renderRequest(t, map[string]string{
		"pattern": pattern,
		"size":    "512",
	}, nil)

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
}

func TestRenderValidation(t *testing.T) {
	tests := []struct {
		name     string
		fields   map[string]string
		wantCode int
	}{
		{
			name:     "no border source",
			fields:   map[string]string{},
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "both sources",
			fields:   map[string]string{"flag": "trans", "pattern": `{"stripes":[]}`},
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "unknown flag",
			fields:   map[string]string{"flag": "atlantis"},
			wantCode: http.StatusNotFound,
		},
		{
			name:     "bad size",
			fields:   map[string]string{"flag": "trans", "size": "300"},
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "non-numeric thickness",
			fields:   map[string]string{"flag": "trans", "thickness_pct": "thick"},
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "malformed pattern JSON",
			fields:   map[string]string{"pattern": "{not json"},
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "bad background color",
			fields:   map[string]string{"flag": "trans", "background": "cornflower"},
			wantCode: http.StatusBadRequest,
		},
	}

	srv := testServer(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			srv.Router().ServeHTTP(rec, renderRequest(t, tt.fields, nil))
			if rec.Code != tt.wantCode {
				t.Errorf("status = %d, want %d (body %s)", rec.Code, tt.wantCode, rec.Body.String())
			}
		})
	}
}

func TestRenderOptionsParsing(t *testing.T) {
	srv := testServer(t)
	req := renderRequest(t, map[string]string{
		"flag":          "trans",
		"size":          "1024",
		"thickness_pct": "15",
		"presentation":  "segment",
		"background":    "#FFFFFF",
		"stroke_color":  "#000000",
		"stroke_width":  "3",
		"offset_x":      "10",
	}, photoPNG(t))

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	img, err := imaging.Decode(bytes.NewReader(rec.Body.Bytes()))
	if err != nil {
		t.Fatalf("decode PNG: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 1024 {
		t.Errorf("width = %d, want 1024", b.Dx())
	}
	// White background: the canvas corner is opaque white.
	nrgba := imaging.Clone(img)
	if got := nrgba.NRGBAAt(0, 0); got != (color.NRGBA{R: 255, G: 255, B: 255, A: 255}) {
		t.Errorf("corner = %+v, want opaque white", got)
	}
}

func TestRequestIDEchoed(t *testing.T) {
	srv := testServer(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Request-ID", "req-42")
	srv.Router().ServeHTTP(rec, req)

	if got := rec.Header().Get("X-Request-ID"); got != "req-42" {
		t.Errorf("request id = %q, want req-42", got)
	}
}

func TestRequestIDGenerated(t *testing.T) {
	srv := testServer(t)

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	id := rec.Header().Get("X-Request-ID")
	if id == "" {
		t.Fatal("no request id assigned")
	}
	if strings.Count(id, "-") != 4 {
		t.Errorf("request id %q does not look like a UUID", id)
	}
}
