package cli

import (
	"encoding/json"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/flagring/flagring/pkg/errors"
	"github.com/flagring/flagring/pkg/flag"
	"github.com/flagring/flagring/pkg/pipeline"
	"github.com/flagring/flagring/pkg/render"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	flagID       string  // manifest flag id
	pattern      string  // inline pattern JSON or a path to a JSON file
	photo        string  // input photo path
	output       string  // output PNG path
	manifest     string  // manifest path override
	size         int     // canvas size: 512 or 1024
	thickness    float64 // border thickness in percent of size
	padding      float64 // padding in percent of size
	inset        float64 // gap between border and photo in pixels
	offsetX      int     // cutout horizontal shift
	presentation string  // ring, segment, or cutout
	background   string  // canvas background hex color
	strokeColor  string  // outer stroke hex color
	strokeWidth  float64 // outer stroke width in pixels
	noCache      bool
	refresh      bool
}

// renderCommand creates the render command for composing badges.
//
// Default settings:
//   - size: 512px
//   - thickness: 10% of size
//   - presentation: ring for horizontal flags, segment for vertical
func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{
		size:        render.SizeSmall,
		strokeWidth: 2,
	}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a flag border around a photo",
		Example: `  flagring render --flag trans --photo me.png -o badge.png
  flagring render --flag ukraine --presentation segment --photo me.jpg
  flagring render --pattern '{"orientation":"horizontal","stripes":[{"color":"#F00","weight":1}]}'`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd, &opts)
		},
	}

	cmd.Flags().StringVar(&opts.flagID, "flag", "", "flag id from the manifest")
	cmd.Flags().StringVar(&opts.pattern, "pattern", "", "inline pattern JSON, or @file to read from a file")
	cmd.Flags().StringVarP(&opts.photo, "photo", "p", "", "input photo (PNG or JPEG)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output PNG path (default: derived from photo)")
	cmd.Flags().StringVar(&opts.manifest, "manifest", "", "manifest file (default: manifest.json)")
	cmd.Flags().IntVar(&opts.size, "size", opts.size, "canvas size: 512 or 1024")
	cmd.Flags().Float64Var(&opts.thickness, "thickness", 0, "border thickness in percent of size (5-20)")
	cmd.Flags().Float64Var(&opts.padding, "padding", 0, "padding from the canvas edge in percent of size")
	cmd.Flags().Float64Var(&opts.inset, "inset", 0, "gap between border and photo in pixels (may be negative)")
	cmd.Flags().IntVar(&opts.offsetX, "offset-x", 0, "cutout horizontal shift in pixels")
	cmd.Flags().StringVar(&opts.presentation, "presentation", "", "border style: ring, segment, cutout")
	cmd.Flags().StringVar(&opts.background, "background", "", "canvas background hex color (default: transparent)")
	cmd.Flags().StringVar(&opts.strokeColor, "stroke", "", "outer stroke hex color (default: none)")
	cmd.Flags().Float64Var(&opts.strokeWidth, "stroke-width", opts.strokeWidth, "outer stroke width in pixels")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the local cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "bypass cached results and re-render")

	return cmd
}

func (c *CLI) runRender(cmd *cobra.Command, opts *renderOpts) error {
	ctx := withLogger(cmd.Context(), c.Logger)

	pipeOpts, err := buildPipelineOptions(opts)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(opts.manifest, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	p := newProgress(c.Logger)
	result, err := runner.Execute(ctx, pipeOpts)
	if err != nil {
		return err
	}
	p.done("Rendered")

	outPath := outputPath(opts.output, opts.photo)
	if err := os.WriteFile(outPath, result.PNG, 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	name := opts.flagID
	if result.Flag != nil {
		name = result.Flag.DisplayName
	}
	if name == "" {
		name = "inline pattern"
	}

	printSuccess("Rendered %s", name)
	printFile(outPath)
	printRenderStats(pipeOpts.Render.Size, presentationLabel(pipeOpts, result), len(result.PNG), result.CacheInfo.RenderHit)
	return nil
}

// buildPipelineOptions translates CLI flags into pipeline options.
func buildPipelineOptions(opts *renderOpts) (pipeline.Options, error) {
	var pipeOpts pipeline.Options

	pipeOpts.FlagID = opts.flagID
	if opts.pattern != "" {
		p, err := parsePattern(opts.pattern)
		if err != nil {
			return pipeOpts, err
		}
		pipeOpts.Pattern = p
	}
	pipeOpts.Refresh = opts.refresh

	if opts.photo != "" {
		data, err := os.ReadFile(opts.photo)
		if err != nil {
			return pipeOpts, errors.Wrap(errors.ErrCodeFileNotFound, err, "read photo %s", opts.photo)
		}
		pipeOpts.Photo = data
	}

	renderOpts := render.Options{
		Size:         opts.size,
		ThicknessPct: opts.thickness,
		PaddingPct:   opts.padding,
		ImageInset:   opts.inset,
		ImageOffset:  image.Pt(opts.offsetX, 0),
		Presentation: render.Presentation(opts.presentation),
	}
	if opts.background != "" {
		c, err := flag.ParseHex(opts.background)
		if err != nil {
			return pipeOpts, err
		}
		renderOpts.Background = &c
	}
	if opts.strokeColor != "" {
		c, err := flag.ParseHex(opts.strokeColor)
		if err != nil {
			return pipeOpts, err
		}
		renderOpts.OuterStroke = &render.Stroke{Color: c, Width: opts.strokeWidth}
	}
	pipeOpts.Render = renderOpts

	return pipeOpts, nil
}

// parsePattern parses an inline JSON pattern. A leading "@" reads the
// pattern from a file, following the curl convention.
func parsePattern(s string) (*flag.Pattern, error) {
	data := []byte(s)
	if strings.HasPrefix(s, "@") {
		var err error
		data, err = os.ReadFile(s[1:])
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "read pattern file %s", s[1:])
		}
	}

	var p flag.Pattern
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPattern, err, "invalid pattern JSON")
	}
	return &p, nil
}

// outputPath derives the output path: explicit --output wins, otherwise
// the photo name with a "_badge.png" suffix, otherwise "badge.png".
func outputPath(output, photo string) string {
	if output != "" {
		return output
	}
	if photo != "" {
		base := strings.TrimSuffix(photo, filepath.Ext(photo))
		return base + "_badge.png"
	}
	return "badge.png"
}

// presentationLabel names the effective presentation for display.
func presentationLabel(opts pipeline.Options, result *pipeline.Result) string {
	if opts.Render.Presentation != "" {
		return string(opts.Render.Presentation)
	}
	if result.Flag != nil && result.Flag.Orientation == flag.Vertical {
		return string(render.PresentationSegment)
	}
	if opts.Pattern != nil && opts.Pattern.Orientation == flag.Vertical {
		return string(render.PresentationSegment)
	}
	return string(render.PresentationRing)
}
