// Package main provides the gotable CLI: render one page of a JSON file or a
// sqlite table as a searchable, sortable listing.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
