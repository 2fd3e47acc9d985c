package main

import (
	"memsnoop/process"
	"memsnoop/process_windows"
)

func newSystem() process.System {
	return process_windows.New()
}
