// Package template defines the seam exporters use to wrap a rendered body in
// a page layout. The pongo subpackage provides the default engine.
package template
