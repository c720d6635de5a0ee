// Command lemonlex is a minimal demonstration driver for the lemon core: it
// reads a single source file, runs the scanner, and prints the resulting
// token stream. It performs no option parsing beyond a positional filename
// and no later compiler passes — those are all external per spec.md §1 and
// SPEC_FULL.md §A.5. It mirrors the teacher's cmd/main.go (os.Args, a single
// call into the library, fmt.Println reporting) rather than reaching for a
// CLI-flag library, since the teacher never does either.
package main

import (
	"fmt"
	"os"

	"go.lemonlang.dev/pkg"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Println("Expected one argument: source location")
		os.Exit(1)
	}

	src, err := os.ReadFile(os.Args[1])
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	ch, status := lemon.ScannerInit(lemon.ScannerOptions{DiagnosticsEnabled: true}, src)
	if !status.IsOK() {
		fmt.Println(status)
		os.Exit(1)
	}

	errCount := 0
	for {
		r := ch.Recv()
		if !r.Ok {
			break
		}

		fmt.Println(r.Token)

		if r.Token.IsError() {
			errCount++
		}

		if r.Token.Kind == lemon.KindEOF {
			break
		}
	}

	if errCount > 0 {
		fmt.Printf("%d error(s)\n", errCount)
		os.Exit(1)
	}
}
