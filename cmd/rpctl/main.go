package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/jrsteele09/research-platform-client/internal/cmd"
)

func main() {
	os.Exit(run(os.Args))
}

func run(args []string) (exitCode int) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Recovered from panic: %v\n", r)
			debug.PrintStack()
			exitCode = 1
		}
	}()

	return cmd.Main(args)
}
