package process

import (
	"fmt"

	"github.com/Moonlight-Companies/gologger/coloransi"
	"github.com/Moonlight-Companies/gologger/logger"
)

var enumLog = logger.NewLogger(coloransi.Color(coloransi.ColorPurple, coloransi.ColorOrange, "process-enum"))

// Enumerate returns the identifiers of all live processes.
//
// The OS silently truncates when the buffer is too small, so a completely
// filled buffer is retried with double the capacity until opts.MaxCapacity.
func Enumerate(sys System, opts EnumOptions) ([]ProcessID, error) {
	opts = opts.normalize()

	capacity := opts.InitialCapacity
	for {
		buf := make([]uint32, capacity)
		size, err := sys.EnumProcesses(buf)
		if err != nil {
			return nil, fmt.Errorf("EnumProcesses failed: %w", err)
		}

		count := int(size) / processIDSize
		if count > len(buf) {
			count = len(buf)
		}

		if count == len(buf) {
			if capacity < opts.MaxCapacity {
				capacity = min(capacity*2, opts.MaxCapacity)
				enumLog.Debugln("process list filled buffer, retrying with capacity", capacity)
				continue
			}
			enumLog.Warn("process list may be truncated at capacity ", capacity)
		}

		pids := make([]ProcessID, count)
		for i, pid := range buf[:count] {
			pids[i] = ProcessID(pid)
		}
		return pids, nil
	}
}
