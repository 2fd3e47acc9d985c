//go:build windows

package process_windows

import (
	"unsafe"

	"memsnoop/process"

	"github.com/Moonlight-Companies/gologger/coloransi"
	"github.com/Moonlight-Companies/gologger/logger"
	"golang.org/x/sys/windows"
)

var (
	// x/sys only wraps GetModuleBaseNameW and drops its return value, which
	// is the length of the name.
	modpsapi               = windows.NewLazySystemDLL("psapi.dll")
	procGetModuleBaseNameA = modpsapi.NewProc("GetModuleBaseNameA")
)

// WindowsSystem implements process.System on top of the psapi and kernel32 process APIs
type WindowsSystem struct {
	log *logger.Logger
}

// New creates a new WindowsSystem
func New() process.System {
	return &WindowsSystem{
		log: logger.NewLogger(coloransi.Color(coloransi.ColorPurple, coloransi.ColorOrange, "process-windows")),
	}
}

func (s *WindowsSystem) EnumProcesses(buf []uint32) (uint32, error) {
	var size uint32
	if err := windows.EnumProcesses(buf, &size); err != nil {
		return 0, err
	}
	return size, nil
}

func (s *WindowsSystem) OpenProcess(access process.AccessRights, pid process.ProcessID) (process.RawHandle, error) {
	handle, err := windows.OpenProcess(uint32(access), false, uint32(pid))
	if err != nil {
		return 0, err
	}
	return process.RawHandle(handle), nil
}

func (s *WindowsSystem) EnumProcessModules(h process.RawHandle, modules []process.ModuleHandle) (uint32, error) {
	if len(modules) == 0 {
		return 0, windows.ERROR_INVALID_PARAMETER
	}

	// process.ModuleHandle and windows.Handle are both uintptr sized.
	var needed uint32
	err := windows.EnumProcessModules(
		windows.Handle(h),
		(*windows.Handle)(unsafe.Pointer(&modules[0])),
		uint32(len(modules))*uint32(unsafe.Sizeof(windows.Handle(0))),
		&needed,
	)
	if err != nil {
		return 0, err
	}
	return needed, nil
}

func (s *WindowsSystem) ModuleBaseName(h process.RawHandle, m process.ModuleHandle, buf []byte) (uint32, error) {
	if len(buf) == 0 {
		return 0, windows.ERROR_INSUFFICIENT_BUFFER
	}

	ret, _, err := procGetModuleBaseNameA.Call(
		uintptr(h),
		uintptr(m),
		uintptr(unsafe.Pointer(&buf[0])),
		uintptr(len(buf)),
	)
	if ret == 0 {
		return 0, err
	}
	return uint32(ret), nil
}

func (s *WindowsSystem) CloseHandle(h process.RawHandle) error {
	if err := windows.CloseHandle(windows.Handle(h)); err != nil {
		s.log.Debugln("CloseHandle failed:", err)
		return err
	}
	return nil
}
