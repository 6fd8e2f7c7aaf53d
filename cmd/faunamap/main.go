// Package main provides the faunamap CLI application.
// faunamap collects animal occurrences of Russian regions and derives
// their biodiversity features.
package main

import "github.com/gnames/faunamap/cmd"

func main() {
	cmd.Execute()
}
