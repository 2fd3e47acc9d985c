package process

// System is the subset of the OS process introspection API the listing
// depends on. Implementations only read process state.
type System interface {
	// EnumProcesses fills buf with live process identifiers and reports how
	// many bytes of buf were written. A full buffer may mean truncation.
	EnumProcesses(buf []uint32) (bytesReturned uint32, err error)

	// OpenProcess opens pid with the given access rights
	OpenProcess(access AccessRights, pid ProcessID) (RawHandle, error)

	// EnumProcessModules fills modules with module handles of the process,
	// primary module first, and reports the bytes needed for all of them.
	EnumProcessModules(h RawHandle, modules []ModuleHandle) (bytesNeeded uint32, err error)

	// ModuleBaseName writes the base file name of module m into buf and
	// returns the number of bytes written. Zero means failure and err then
	// holds the OS last error.
	ModuleBaseName(h RawHandle, m ModuleHandle, buf []byte) (n uint32, err error)

	// CloseHandle releases h
	CloseHandle(h RawHandle) error
}
