// Package process_list prints one line per live process: its identifier and
// the base name of its executable.
package process_list

import (
	"fmt"
	"io"

	"memsnoop/process"

	"github.com/Moonlight-Companies/gologger/coloransi"
	"github.com/Moonlight-Companies/gologger/logger"
)

// Summary counts the outcome of one listing run.
// Total always equals Named + NameFailed + OpenFailed.
type Summary struct {
	Total       int
	Named       int
	NameFailed  int
	OpenFailed  int
	CloseFailed int
}

// Lister writes process listings. Successful lines and name failures go to
// Stdout, open failures go to Stderr.
type Lister struct {
	System process.System
	Stdout io.Writer
	Stderr io.Writer

	EnumOptions process.EnumOptions
	NameOptions process.NameOptions

	log *logger.Logger
}

func New(sys process.System, stdout, stderr io.Writer) *Lister {
	return &Lister{
		System:      sys,
		Stdout:      stdout,
		Stderr:      stderr,
		EnumOptions: process.DefaultEnumOptions(),
		NameOptions: process.DefaultNameOptions(),
	}
}

// Run lists every process once. Only a failed enumeration is returned as an
// error; per process failures are reported inline and the run continues.
func (l *Lister) Run() (Summary, error) {
	if l.log == nil {
		l.log = logger.NewLogger(coloransi.Color(coloransi.ColorPurple, coloransi.ColorOrange, "process-list"))
	}

	var summary Summary

	pids, err := process.Enumerate(l.System, l.EnumOptions)
	if err != nil {
		return summary, fmt.Errorf("failed to enumerate processes: %w", err)
	}

	for _, pid := range pids {
		summary.Total++
		l.listOne(pid, &summary)
	}

	l.log.Debugln("Listed", summary.Total, "processes,", summary.OpenFailed, "could not be opened")
	return summary, nil
}

func (l *Lister) listOne(pid process.ProcessID, summary *Summary) {
	h, err := process.OpenWithOptions(l.System, pid, l.NameOptions)
	if err != nil {
		summary.OpenFailed++
		fmt.Fprintf(l.Stderr, "failed to open %d: %v\n", pid, err)
		return
	}
	defer func() {
		if err := h.Close(); err != nil {
			summary.CloseFailed++
			l.log.Warn("Failed to release process handle: ", err)
		}
	}()

	name, err := h.Name()
	if err != nil {
		summary.NameFailed++
		fmt.Fprintf(l.Stdout, "%d: (failed to get name: %v)\n", pid, err)
		return
	}

	summary.Named++
	fmt.Fprintf(l.Stdout, "%d: %s\n", pid, name)
}
