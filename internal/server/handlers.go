package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/flagring/flagring/pkg/errors"
	"github.com/flagring/flagring/pkg/flag"
	"github.com/flagring/flagring/pkg/pipeline"
	"github.com/flagring/flagring/pkg/render"
)

// maxPhotoSize bounds the multipart photo upload.
const maxPhotoSize = 20 << 20

// flagsResponse is the payload of GET /v1/flags.
type flagsResponse struct {
	Version string      `json:"version"`
	Flags   []flag.Flag `json:"flags"`
}

func (s *Server) handleFlags(w http.ResponseWriter, r *http.Request) {
	if s.manifest == nil {
		writeError(w, errors.New(errors.ErrCodeInternal, "no manifest loaded"))
		return
	}

	flags := s.manifest.Flags
	if category := r.URL.Query().Get("category"); category != "" {
		flags = s.manifest.FilterCategory(category)
	}
	writeJSON(w, http.StatusOK, flagsResponse{Version: s.manifest.Version, Flags: flags})
}

func (s *Server) handleFlag(w http.ResponseWriter, r *http.Request) {
	if s.manifest == nil {
		writeError(w, errors.New(errors.ErrCodeInternal, "no manifest loaded"))
		return
	}

	f, err := s.manifest.Find(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, f)
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	opts, err := parseRenderRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("X-Render-Cache", cacheStatus(result.CacheInfo.RenderHit))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.PNG)
}

// parseRenderRequest turns a multipart form into pipeline options. The
// photo part is optional; all other inputs arrive as form values.
func parseRenderRequest(r *http.Request) (pipeline.Options, error) {
	var opts pipeline.Options

	if err := r.ParseMultipartForm(maxPhotoSize); err != nil {
		return opts, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid multipart form")
	}

	if file, _, err := r.FormFile("photo"); err == nil {
		defer file.Close()
		data, err := io.ReadAll(io.LimitReader(file, maxPhotoSize+1))
		if err != nil {
			return opts, errors.Wrap(errors.ErrCodeInvalidInput, err, "read photo")
		}
		if len(data) > maxPhotoSize {
			return opts, errors.New(errors.ErrCodeInvalidInput, "photo exceeds %d bytes", maxPhotoSize)
		}
		opts.Photo = data
	}

	opts.FlagID = r.FormValue("flag")
	if raw := r.FormValue("pattern"); raw != "" {
		var p flag.Pattern
		if err := json.Unmarshal([]byte(raw), &p); err != nil {
			return opts, errors.Wrap(errors.ErrCodeInvalidPattern, err, "invalid pattern JSON")
		}
		opts.Pattern = &p
	}
	opts.Refresh = r.FormValue("refresh") == "true"

	renderOpts, err := parseRenderOptions(r)
	if err != nil {
		return opts, err
	}
	opts.Render = renderOpts

	return opts, nil
}

func parseRenderOptions(r *http.Request) (render.Options, error) {
	var opts render.Options

	intFields := []struct {
		name string
		dst  *int
	}{
		{"size", &opts.Size},
		{"offset_x", &opts.ImageOffset.X},
	}
	for _, f := range intFields {
		if v := r.FormValue(f.name); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return opts, errors.New(errors.ErrCodeInvalidOptions, "%s must be an integer, got %q", f.name, v)
			}
			*f.dst = n
		}
	}

	floatFields := []struct {
		name string
		dst  *float64
	}{
		{"thickness_pct", &opts.ThicknessPct},
		{"padding_pct", &opts.PaddingPct},
		{"image_inset", &opts.ImageInset},
	}
	for _, f := range floatFields {
		if v := r.FormValue(f.name); v != "" {
			n, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return opts, errors.New(errors.ErrCodeInvalidOptions, "%s must be a number, got %q", f.name, v)
			}
			*f.dst = n
		}
	}

	opts.Presentation = render.Presentation(r.FormValue("presentation"))

	if v := r.FormValue("background"); v != "" {
		c, err := flag.ParseHex(v)
		if err != nil {
			return opts, err
		}
		opts.Background = &c
	}
	if v := r.FormValue("stroke_color"); v != "" {
		c, err := flag.ParseHex(v)
		if err != nil {
			return opts, err
		}
		width := 2.0
		if wv := r.FormValue("stroke_width"); wv != "" {
			n, err := strconv.ParseFloat(wv, 64)
			if err != nil || n <= 0 {
				return opts, errors.New(errors.ErrCodeInvalidOptions, "stroke_width must be positive, got %q", wv)
			}
			width = n
		}
		opts.OuterStroke = &render.Stroke{Color: c, Width: width}
	}

	return opts, nil
}

func cacheStatus(hit bool) string {
	if hit {
		return "hit"
	}
	return "miss"
}

// errorResponse is the JSON error envelope.
type errorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// statusFor maps error codes onto HTTP status codes.
func statusFor(code errors.Code) int {
	switch code {
	case errors.ErrCodeNotFound, errors.ErrCodeFlagNotFound, errors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case errors.ErrCodeNetwork, errors.ErrCodeTimeout:
		return http.StatusBadGateway
	}
	if strings.HasPrefix(string(code), "INVALID") {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)

	var resp errorResponse
	resp.Error.Code = string(code)
	if resp.Error.Code == "" {
		resp.Error.Code = string(errors.ErrCodeInternal)
	}
	resp.Error.Message = errors.UserMessage(err)

	writeJSON(w, statusFor(code), resp)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		fmt.Fprintf(w, `{"error":{"code":"INTERNAL_ERROR","message":"encode response"}}`)
	}
}
