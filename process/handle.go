package process

import (
	"fmt"

	"github.com/Moonlight-Companies/gologger/coloransi"
	"github.com/Moonlight-Companies/gologger/logger"
	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"
)

// Handle owns one open OS handle to a process. Open is the only way to get
// one and Close is the only way to release it; the raw value is never exposed.
//
// A Handle is not safe for concurrent use.
type Handle struct {
	pid    ProcessID
	raw    RawHandle
	sys    System
	opts   NameOptions
	closed bool
	log    *logger.Logger
}

// Open opens pid for query and memory read access. Failures here are
// routine for protected or already exited processes.
func Open(sys System, pid ProcessID) (*Handle, error) {
	return OpenWithOptions(sys, pid, DefaultNameOptions())
}

// OpenWithOptions is Open with explicit name buffer sizing
func OpenWithOptions(sys System, pid ProcessID, opts NameOptions) (*Handle, error) {
	raw, err := sys.OpenProcess(DefaultAccess, pid)
	if err != nil {
		return nil, fmt.Errorf("OpenProcess failed: %w", err)
	}

	h := &Handle{
		pid:  pid,
		raw:  raw,
		sys:  sys,
		opts: opts.normalize(),
		log:  logger.NewLogger(coloransi.Color(coloransi.ColorPurple, coloransi.ColorOrange, fmt.Sprintf("process-%d", pid))),
	}
	h.log.Debugln("Process opened with access", DefaultAccess)
	return h, nil
}

// PID returns the identifier the handle was opened on
func (h *Handle) PID() ProcessID {
	return h.pid
}

// Name resolves the base file name of the process's primary module.
func (h *Handle) Name() (string, error) {
	if h.closed {
		return "", ErrHandleClosed
	}

	module, err := h.primaryModule()
	if err != nil {
		return "", err
	}

	capacity := h.opts.InitialCapacity
	for {
		// ModuleBaseName is bounded by len(buf), so the buffer is allocated
		// at full length rather than with spare capacity.
		buf := make([]byte, capacity)
		n, err := h.sys.ModuleBaseName(h.raw, module, buf)
		if n == 0 {
			if err == nil {
				err = fmt.Errorf("empty name for module 0x%X", uintptr(module))
			}
			return "", fmt.Errorf("GetModuleBaseName failed: %w", err)
		}

		length := min(int(n), len(buf))
		if length >= len(buf)-1 && capacity < h.opts.MaxCapacity {
			capacity = min(capacity*2, h.opts.MaxCapacity)
			h.log.Debugln("Module name filled buffer, retrying with capacity", capacity)
			continue
		}

		return decodeName(buf[:length])
	}
}

func (h *Handle) primaryModule() (ModuleHandle, error) {
	// Room for exactly one entry: the first module is the executable image.
	modules := make([]ModuleHandle, 1)
	needed, err := h.sys.EnumProcessModules(h.raw, modules)
	if err != nil {
		return 0, fmt.Errorf("EnumProcessModules failed: %w", err)
	}
	if needed == 0 {
		return 0, ErrNoModule
	}
	return modules[0], nil
}

func decodeName(b []byte) (string, error) {
	name, _, err := transform.Bytes(encoding.UTF8Validator, b)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidName, err)
	}
	return string(name), nil
}

// Close releases the OS handle. Only the first call reaches the OS; later
// calls return ErrHandleClosed.
func (h *Handle) Close() error {
	if h.closed {
		return ErrHandleClosed
	}
	h.closed = true

	if err := h.sys.CloseHandle(h.raw); err != nil {
		return fmt.Errorf("CloseHandle failed for %d: %w", h.pid, err)
	}
	h.raw = 0
	h.log.Debugln("Process closed")
	return nil
}
