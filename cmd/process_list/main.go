package main

import (
	"fmt"
	"os"

	"memsnoop/process_list"
)

func main() {
	lister := process_list.New(newSystem(), os.Stdout, os.Stderr)
	if _, err := lister.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
