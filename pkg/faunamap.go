// Package faunamap holds application-wide metadata.
package faunamap

var (
	// Version of faunamap, set by build flags.
	Version = "v0.1.0"
	// Build timestamp, set by build flags.
	Build = "n/a"
)
