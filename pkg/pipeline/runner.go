package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"math"
	"time"

	"github.com/charmbracelet/log"
	"github.com/disintegration/imaging"

	"github.com/flagring/flagring/pkg/assets"
	"github.com/flagring/flagring/pkg/cache"
	"github.com/flagring/flagring/pkg/errors"
	"github.com/flagring/flagring/pkg/flag"
	"github.com/flagring/flagring/pkg/observability"
	"github.com/flagring/flagring/pkg/render"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and server use this to avoid duplicating caching logic.
//
// The Runner is stateless except for its collaborators - it doesn't store
// pipeline results. Multiple goroutines can safely share one Runner with
// different options.
type Runner struct {
	Manifest *assets.Manifest
	Fetcher  *assets.Fetcher
	Cache    cache.Cache
	Keyer    cache.Keyer
	Logger   *log.Logger
}

// NewRunner creates a runner over the given manifest.
// If keyer is nil, a DefaultKeyer is used.
// If c is nil, a NullCache is used (caching disabled).
// The Fetcher field starts as a default Fetcher; callers needing custom
// fetch behavior can replace it before first use.
func NewRunner(manifest *assets.Manifest, c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Manifest: manifest,
		Fetcher:  assets.NewFetcher(assets.WithLogger(logger)),
		Cache:    c,
		Keyer:    keyer,
		Logger:   logger,
	}
}

// Execute runs the complete resolve → render → encode pipeline with
// caching. The final PNG is cached by border source, photo, and render
// options; a full cache hit skips every pixel stage.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	r.applyLogger(&opts)

	result := &Result{}

	// Stage 1: Resolve
	resolveStart := time.Now()
	observability.Render().OnResolveStart(ctx, opts.FlagID)
	border, resolved, textureHit, err := r.resolveBorder(ctx, &opts)
	result.Stats.ResolveTime = time.Since(resolveStart)
	observability.Render().OnResolveComplete(ctx, opts.FlagID, result.Stats.ResolveTime, err)
	if err != nil {
		return nil, err
	}
	result.Flag = resolved
	result.CacheInfo.TextureHit = textureHit

	sourceHash := borderHash(border)
	photoHash := cache.Hash(opts.Photo)
	renderKey := r.Keyer.RenderKey(sourceHash, photoHash, renderKeyOpts(opts.Render))

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, renderKey); err == nil && hit {
			observability.Cache().OnCacheHit(ctx, "render")
			result.PNG = data
			result.CacheInfo.RenderHit = true
			return result, nil
		}
		observability.Cache().OnCacheMiss(ctx, "render")
	}

	photo, err := decodePhoto(opts.Photo)
	if err != nil {
		return nil, err
	}

	// Stage 2: Render
	presentation := string(opts.Render.Presentation)
	renderStart := time.Now()
	observability.Render().OnRenderStart(ctx, presentation, opts.Render.Size)
	canvas, err := render.Render(photo, border, opts.Render)
	if err != nil {
		observability.Render().OnRenderComplete(ctx, presentation, 0, time.Since(renderStart), err)
		return nil, err
	}
	result.Stats.RenderTime = time.Since(renderStart)

	opts.Logger.Debug("rendered badge",
		"size", canvas.Bounds().Dx(),
		"duration", result.Stats.RenderTime)

	// Stage 3: Encode
	encodeStart := time.Now()
	png, err := render.EncodePNG(canvas)
	if err != nil {
		return nil, err
	}
	result.PNG = png
	result.Stats.EncodeTime = time.Since(encodeStart)

	observability.Render().OnRenderComplete(ctx, presentation, len(png),
		result.Stats.RenderTime+result.Stats.EncodeTime, nil)

	if err := r.Cache.Set(ctx, renderKey, png, cache.TTLRender); err == nil {
		observability.Cache().OnCacheSet(ctx, "render", len(png))
	}
	return result, nil
}

// resolveBorder turns the options' border source into a render.Border.
// Stripe-backed flags become patterns; image-backed flags become textures,
// rasterized at the annulus dimensions of the requested render options and
// cached as PNG.
func (r *Runner) resolveBorder(ctx context.Context, opts *Options) (render.Border, *flag.Flag, bool, error) {
	if opts.Pattern != nil {
		return render.Border{Pattern: opts.Pattern}, nil, false, nil
	}

	if r.Manifest == nil {
		return render.Border{}, nil, false, errors.New(errors.ErrCodeInternal, "runner has no manifest")
	}
	f, err := r.Manifest.Find(opts.FlagID)
	if err != nil {
		return render.Border{}, nil, false, err
	}

	if f.AssetURL == "" {
		return render.Border{Pattern: f.Pattern()}, f, false, nil
	}

	tex, hit, err := r.textureFor(ctx, f, opts)
	if err != nil {
		return render.Border{}, nil, false, err
	}
	return render.Border{Texture: tex}, f, hit, nil
}

// textureFor fetches and rasterizes an image-backed flag's artwork, sized
// to the annulus of the requested render. Rasterized textures are cached
// separately from the fetcher's raw-byte cache, keyed by flag and size.
func (r *Runner) textureFor(ctx context.Context, f *flag.Flag, opts *Options) (image.Image, bool, error) {
	w, h := textureSize(opts.Render)
	key := r.Keyer.AssetKey(f.ID, cache.AssetKeyOpts{Width: w, Height: h})

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			if img, err := imaging.Decode(bytes.NewReader(data)); err == nil {
				observability.Cache().OnCacheHit(ctx, "texture")
				return img, true, nil
			}
			// Undecodable entry: fall through and rebuild it.
		}
		observability.Cache().OnCacheMiss(ctx, "texture")
	}

	tex, err := r.Fetcher.FetchTexture(ctx, f, w, h)
	if err != nil {
		return nil, false, err
	}

	if data, err := render.EncodePNG(tex); err == nil {
		if err := r.Cache.Set(ctx, key, data, cache.TTLAsset); err == nil {
			observability.Cache().OnCacheSet(ctx, "texture", len(data))
		}
	}
	return tex, false, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

// textureSize is the cover-fit target for a border texture: annulus
// midline circumference by radial thickness.
func textureSize(opts render.Options) (w, h int) {
	g := render.ResolveGeometry(opts)
	mid := (g.RingInner + g.RingOuter) / 2
	w = max(1, int(math.Round(2*math.Pi*mid)))
	h = max(1, int(math.Round(g.Thickness())))
	return w, h
}

// borderHash produces a stable hash of the border source for cache keys.
func borderHash(b render.Border) string {
	if b.Pattern != nil {
		data, _ := json.Marshal(b.Pattern)
		return cache.Hash(data)
	}
	if nrgba, ok := b.Texture.(*image.NRGBA); ok {
		return cache.Hash(nrgba.Pix)
	}
	data, _ := json.Marshal(b.Texture.Bounds())
	return cache.Hash(data)
}

func decodePhoto(data []byte) (image.Image, error) {
	if len(data) == 0 {
		return nil, nil
	}
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidImage, err, "decode photo")
	}
	return img, nil
}

func renderKeyOpts(o render.Options) cache.RenderKeyOpts {
	opts := cache.RenderKeyOpts{
		Size:         o.Size,
		ThicknessPct: o.ThicknessPct,
		PaddingPct:   o.PaddingPct,
		ImageInset:   o.ImageInset,
		OffsetX:      o.ImageOffset.X,
		Presentation: string(o.Presentation),
	}
	if o.Background != nil {
		opts.Background = colorKey(*o.Background)
	}
	if s := o.OuterStroke; s != nil && s.Width > 0 {
		opts.StrokeColor = colorKey(s.Color)
		opts.StrokeWidth = s.Width
	}
	return opts
}

func colorKey(c color.NRGBA) string {
	return fmt.Sprintf("%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}
