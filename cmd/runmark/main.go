// Command runmark searches and highlights text documents split into runs.
package main

import (
	"fmt"
	"os"

	"github.com/gdamore/tcell/v2"
)

var version = "dev"

func main() {
	// Set UTF-8 as fallback encoding so non-ASCII text displays correctly.
	tcell.SetEncodingFallback(tcell.EncodingFallbackUTF8)

	root := newRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "runmark: %v\n", err)
		os.Exit(1)
	}
}
