// Package pipeline provides the core badge-rendering pipeline.
//
// This package implements the complete resolve → render → encode flow
// shared by the CLI and the HTTP server. Centralizing it keeps caching and
// validation behavior identical across entry points.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Resolve: Look up the flag in the manifest and, for image-backed
//     flags, fetch and rasterize its artwork into a border texture
//  2. Render: Composite the photo and border onto the canvas
//  3. Encode: Serialize the canvas to PNG
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(manifest, cache, nil, logger)
//	opts := pipeline.Options{
//	    FlagID: "pride",
//	    Photo:  photoBytes,
//	    Render: render.Options{Size: 1024},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	png := result.PNG
package pipeline

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/flagring/flagring/pkg/errors"
	"github.com/flagring/flagring/pkg/flag"
	"github.com/flagring/flagring/pkg/render"
)

// Options configures one pipeline execution. Exactly one border source is
// required: a FlagID resolved through the manifest, or an inline Pattern.
type Options struct {
	// FlagID selects a flag from the runner's manifest.
	FlagID string

	// Pattern is an inline stripe pattern, bypassing the manifest.
	Pattern *flag.Pattern

	// Photo is the raw uploaded photo (PNG or JPEG bytes). Empty renders
	// a border-only preview.
	Photo []byte

	// Render holds the canvas and presentation options.
	Render render.Options

	// Refresh bypasses cache reads. Results are still written back.
	Refresh bool

	// Logger overrides the runner's logger for this execution.
	Logger *log.Logger
}

// ValidateAndSetDefaults checks option consistency. Render option values
// are validated strictly here; the renderer itself would clamp them.
func (o *Options) ValidateAndSetDefaults() error {
	if o.FlagID == "" && o.Pattern == nil {
		return errors.New(errors.ErrCodeInvalidInput, "either flag id or pattern is required")
	}
	if o.FlagID != "" && o.Pattern != nil {
		return errors.New(errors.ErrCodeInvalidInput, "flag id and pattern are mutually exclusive")
	}
	if o.FlagID != "" {
		if err := errors.ValidateFlagID(o.FlagID); err != nil {
			return err
		}
	}
	return o.Render.Validate()
}

// Stats holds per-stage timings for one execution.
type Stats struct {
	ResolveTime time.Duration `json:"resolve_time"`
	RenderTime  time.Duration `json:"render_time"`
	EncodeTime  time.Duration `json:"encode_time"`
}

// CacheInfo reports which stages were served from cache.
type CacheInfo struct {
	TextureHit bool `json:"texture_hit"`
	RenderHit  bool `json:"render_hit"`
}

// Result is the output of a pipeline execution.
type Result struct {
	// PNG is the encoded badge.
	PNG []byte

	// Flag is the resolved manifest entry, nil for inline patterns.
	Flag *flag.Flag

	Stats     Stats
	CacheInfo CacheInfo
}
