// Package shaders provides embedded GLSL shader sources.
package shaders

import _ "embed"

// SurfaceVertexShader transforms surface vertices and normals.
//
//go:embed surface.vert
var SurfaceVertexShader string

// SurfaceFragmentShader shades the surface with a flat color.
//
//go:embed surface.frag
var SurfaceFragmentShader string
