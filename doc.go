// Package softrast provides a deterministic software rasterization pipeline.
//
// # Overview
//
// softrast reproduces the fixed-function part of a GPU on the CPU: vertex
// shading, homogeneous clipping, line and triangle rasterization, depth
// testing, fragment shading and blending. The output is bit-for-bit
// reproducible, which makes it suitable as a reference renderer and for
// testing shading programs without a device.
//
// # Quick Start
//
//	import "github.com/gogpu/softrast"
//
//	// Shading program with parameters of type P
//	pl, err := softrast.New[P](prog,
//	    softrast.WithDepth(gputypes.CompareFunctionLess),
//	    softrast.WithInterp(softrast.InterpCorrect),
//	)
//	if err != nil {
//	    return err
//	}
//
//	fb, _ := softrast.NewTarget(512, 512)
//	fb.Clear(softrast.Black, 1)
//	stats := pl.Run(vertices, params, fb)
//	fb.SavePNG("output.png")
//
// # Stages
//
// Run executes, in order and without concurrency:
//   - Vertex shading: Program.ShadeVertex once per vertex, in input order
//   - Clipping: primitives are truncated to -w <= x,y,z <= w and divided by w
//   - Rasterization: lines use the diamond-exit rule, triangles cover pixel
//     centers with a left/bottom edge ownership rule
//   - Depth test and write
//   - Fragment shading with Program.ShadeFragment, then blending
//
// # Coordinate System
//
// Framebuffer coordinates put the origin at the bottom-left corner with y
// increasing upward. Pixel (x, y) is sampled at (x+0.5, y+0.5). Normalized
// depth maps -1..1 in clip space onto 0..1.
//
// Configuration vocabulary (topology, compare functions, write masks, blend
// states) comes from github.com/gogpu/gputypes, so a State reads like the
// corresponding WebGPU pipeline descriptor.
//
// # Related Packages
//
// Package program provides ready-made programs and textures, package scene
// renders TOML scene descriptions, and cmd/softrast wraps both in a CLI.
package softrast

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)
