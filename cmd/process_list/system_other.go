//go:build !windows

package main

import (
	"errors"
	"runtime"

	"memsnoop/process"
)

var errUnsupported = errors.New("process listing is only supported on windows, not " + runtime.GOOS)

// unsupportedSystem fails enumeration so the tool exits with a diagnostic
type unsupportedSystem struct{}

func newSystem() process.System {
	return unsupportedSystem{}
}

func (unsupportedSystem) EnumProcesses([]uint32) (uint32, error) {
	return 0, errUnsupported
}

func (unsupportedSystem) OpenProcess(process.AccessRights, process.ProcessID) (process.RawHandle, error) {
	return 0, errUnsupported
}

func (unsupportedSystem) EnumProcessModules(process.RawHandle, []process.ModuleHandle) (uint32, error) {
	return 0, errUnsupported
}

func (unsupportedSystem) ModuleBaseName(process.RawHandle, process.ModuleHandle, []byte) (uint32, error) {
	return 0, errUnsupported
}

func (unsupportedSystem) CloseHandle(process.RawHandle) error {
	return errUnsupported
}
