package process

import "fmt"

// ProcessID represents an identifier of a live process at enumeration time.
// IDs are recycled by the OS, so they are only unique among live processes.
type ProcessID uint32

// RawHandle is an OS handle value for an opened process
type RawHandle uintptr

// ModuleHandle is an OS handle value for a module loaded in a process
type ModuleHandle uintptr

// AccessRights is the access mask requested when opening a process
type AccessRights uint32

const (
	VMRead           AccessRights = 0x0010
	QueryInformation AccessRights = 0x0400

	// DefaultAccess is all that name resolution needs. Nothing that can
	// change process state is ever requested.
	DefaultAccess = QueryInformation | VMRead
)

func (a AccessRights) String() string {
	return fmt.Sprintf("0x%04X", uint32(a))
}
