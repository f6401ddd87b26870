package main

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"github.com/gogpu/softrast"
	"github.com/gogpu/softrast/scene"
)

// Output formats.
const (
	formatPNG  = "png"
	formatBMP  = "bmp"
	formatTIFF = "tiff"
)

var errFormat = errors.New("unknown output format")

// outputOpts holds the flags shared by render and demo.
type outputOpts struct {
	output string // color image path
	format string // png, bmp or tiff; empty means from the extension
	depth  string // optional depth image path, always PNG
}

func (o *outputOpts) register(cmd *cobra.Command, defaultOutput string) {
	cmd.Flags().StringVarP(&o.output, "output", "o", defaultOutput, "output image path")
	cmd.Flags().StringVarP(&o.format, "format", "f", "", "output format: png, bmp or tiff (default from extension)")
	cmd.Flags().StringVar(&o.depth, "depth", "", "also write the depth buffer as a grayscale PNG")
}

func newRenderCmd(logger *log.Logger) *cobra.Command {
	var opts outputOpts
	cmd := &cobra.Command{
		Use:   "render <scene.toml>",
		Short: "Render a scene file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := scene.Load(args[0])
			if err != nil {
				return err
			}
			return renderScene(logger, s, filepath.Dir(args[0]), opts)
		},
	}
	opts.register(cmd, "out.png")
	return cmd
}

func newDemoCmd(logger *log.Logger) *cobra.Command {
	var opts outputOpts
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Render the built-in demo scene",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return renderScene(logger, scene.Demo(), "", opts)
		},
	}
	opts.register(cmd, "demo.png")
	return cmd
}

func renderScene(logger *log.Logger, s *scene.Scene, dir string, opts outputOpts) error {
	format, err := outputFormat(opts.output, opts.format)
	if err != nil {
		return err
	}

	prog := newProgress(logger)
	target, stats, err := s.Render(dir)
	if err != nil {
		return err
	}
	var total softrast.Stats
	for _, st := range stats {
		total.Primitives += st.Primitives
		total.Shaded += st.Shaded
		total.OutOfRange += st.OutOfRange
	}
	prog.done("Rendered scene",
		"size", fmt.Sprintf("%dx%d", target.Width(), target.Height()),
		"draws", len(stats),
		"primitives", total.Primitives,
		"shaded", total.Shaded,
	)
	if total.OutOfRange > 0 {
		logger.Warn("Fragments fell outside the framebuffer", "count", total.OutOfRange)
	}

	if err := writeImage(opts.output, format, target.ToImage()); err != nil {
		return err
	}
	logger.Info("Wrote image", "path", opts.output, "format", format)

	if opts.depth != "" {
		if err := writeImage(opts.depth, formatPNG, target.DepthImage()); err != nil {
			return err
		}
		logger.Info("Wrote depth", "path", opts.depth)
	}
	return nil
}

// outputFormat resolves the image format from the flag or the extension.
func outputFormat(path, flag string) (string, error) {
	f := strings.ToLower(flag)
	if f == "" {
		f = strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	}
	switch f {
	case formatPNG, formatBMP, formatTIFF:
		return f, nil
	case "tif":
		return formatTIFF, nil
	case "":
		return formatPNG, nil
	}
	return "", fmt.Errorf("%w %q", errFormat, f)
}

func encode(w io.Writer, format string, img image.Image) error {
	switch format {
	case formatBMP:
		return bmp.Encode(w, img)
	case formatTIFF:
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	default:
		return png.Encode(w, img)
	}
}

func writeImage(path, format string, img image.Image) (err error) {
	f, err := os.Create(path) //nolint:gosec // path comes from the command line
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return encode(f, format, img)
}
