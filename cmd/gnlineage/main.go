// Package main provides the gnlineage CLI application.
// gnlineage annotates search hits with NCBI taxonomy lineages.
package main

import (
	"github.com/gnames/gnlineage/cmd"
)

func main() {
	cmd.Execute()
}
