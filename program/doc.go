// Package program provides shading programs for softrast pipelines.
//
// VertexColor draws unlit geometry with per-vertex colors. Lambertian draws
// lit, optionally textured geometry; it requests the derivatives of its
// texture coordinates to pick a mipmap level per fragment.
package program
