// Package processtest provides an in-memory process.System for tests.
package processtest

import (
	"errors"
	"sync"

	"memsnoop/process"
)

var (
	ErrAccessDenied     = errors.New("access is denied")
	ErrInvalidParameter = errors.New("the parameter is incorrect")
)

// Proc describes one fake process.
//
// Name is returned as raw bytes so tests can feed invalid encodings.
type Proc struct {
	PID       process.ProcessID
	Name      []byte
	OpenErr   error
	ModuleErr error
	NoModule  bool
	NameErr   error
	CloseErr  error
}

// System is a fake process.System. It behaves like the OS with regard to
// buffer sizes: identifiers and names that do not fit are truncated silently.
type System struct {
	mu sync.Mutex

	procs   []Proc
	enumErr error
	handles map[process.RawHandle]*Proc
	next    process.RawHandle

	EnumCalls int
	Opens     int
	Closes    int
	// Access records the rights requested by every OpenProcess call.
	Access []process.AccessRights
	// NameBufLens records len(buf) of every ModuleBaseName call.
	NameBufLens []int
	// EnumBufLens records len(buf) of every EnumProcesses call.
	EnumBufLens []int
}

func New(procs ...Proc) *System {
	return &System{
		procs:   procs,
		handles: make(map[process.RawHandle]*Proc),
		next:    0x100,
	}
}

// WithPIDs returns a System with one process per pid, all named proc.exe.
func WithPIDs(pids ...process.ProcessID) *System {
	procs := make([]Proc, len(pids))
	for i, pid := range pids {
		procs[i] = Proc{PID: pid, Name: []byte("proc.exe")}
	}
	return New(procs...)
}

// FailEnumeration makes EnumProcesses fail with err
func (s *System) FailEnumeration(err error) *System {
	s.enumErr = err
	return s
}

// OpenHandles returns the number of handles not yet closed
func (s *System) OpenHandles() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.handles)
}

func (s *System) EnumProcesses(buf []uint32) (uint32, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.EnumCalls++
	s.EnumBufLens = append(s.EnumBufLens, len(buf))
	if s.enumErr != nil {
		return 0, s.enumErr
	}

	n := min(len(buf), len(s.procs))
	for i := 0; i < n; i++ {
		buf[i] = uint32(s.procs[i].PID)
	}
	return uint32(n * 4), nil
}

func (s *System) OpenProcess(access process.AccessRights, pid process.ProcessID) (process.RawHandle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Access = append(s.Access, access)
	p := s.lookup(pid)
	if p == nil {
		return 0, ErrInvalidParameter
	}
	if p.OpenErr != nil {
		return 0, p.OpenErr
	}

	s.Opens++
	h := s.next
	s.next += 4
	s.handles[h] = p
	return h, nil
}

func (s *System) EnumProcessModules(h process.RawHandle, modules []process.ModuleHandle) (uint32, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.handles[h]
	if !ok {
		return 0, ErrInvalidParameter
	}
	if p.ModuleErr != nil {
		return 0, p.ModuleErr
	}
	if p.NoModule {
		return 0, nil
	}
	if len(modules) > 0 {
		modules[0] = process.ModuleHandle(0x400000 + uintptr(p.PID))
	}
	// Pretend every process also has two libraries loaded.
	return 3 * 8, nil
}

func (s *System) ModuleBaseName(h process.RawHandle, m process.ModuleHandle, buf []byte) (uint32, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.NameBufLens = append(s.NameBufLens, len(buf))
	p, ok := s.handles[h]
	if !ok || m != process.ModuleHandle(0x400000+uintptr(p.PID)) {
		return 0, ErrInvalidParameter
	}
	if p.NameErr != nil {
		return 0, p.NameErr
	}
	if len(buf) == 0 {
		return 0, ErrInvalidParameter
	}

	// Room is kept for the terminating NUL, as the OS does.
	n := copy(buf[:len(buf)-1], p.Name)
	buf[n] = 0
	return uint32(n), nil
}

func (s *System) CloseHandle(h process.RawHandle) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.handles[h]
	if !ok {
		return ErrInvalidParameter
	}
	s.Closes++
	delete(s.handles, h)
	return p.CloseErr
}

func (s *System) lookup(pid process.ProcessID) *Proc {
	for i := range s.procs {
		if s.procs[i].PID == pid {
			return &s.procs[i]
		}
	}
	return nil
}
