// Package shaders provides embedded GLSL shader sources.
package shaders

import _ "embed"

// BookVertexShader is the vertex shader for covers and pages.
//
//go:embed book.vert
var BookVertexShader string

// BookFragmentShader is the fragment shader for covers and pages.
//
//go:embed book.frag
var BookFragmentShader string
