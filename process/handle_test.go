package process_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"memsnoop/process"
	"memsnoop/process/processtest"
)

func TestOpenRequestsLeastPrivilege(t *testing.T) {
	sys := processtest.WithPIDs(812)

	h, err := process.Open(sys, 812)
	require.NoError(t, err)
	defer h.Close()

	assert.Equal(t, process.ProcessID(812), h.PID())
	require.Len(t, sys.Access, 1)
	assert.Equal(t, process.QueryInformation|process.VMRead, sys.Access[0])
	assert.Equal(t, "0x0410", sys.Access[0].String())
}

func TestOpenFailure(t *testing.T) {
	sys := processtest.New(processtest.Proc{PID: 4, OpenErr: processtest.ErrAccessDenied})

	h, err := process.Open(sys, 4)
	assert.Nil(t, h)
	assert.ErrorIs(t, err, processtest.ErrAccessDenied)

	_, err = process.Open(sys, 1234)
	assert.ErrorIs(t, err, processtest.ErrInvalidParameter)
	assert.Equal(t, 0, sys.Opens)
}

func TestName(t *testing.T) {
	sys := processtest.New(processtest.Proc{PID: 812, Name: []byte("svchost.exe")})

	h, err := process.Open(sys, 812)
	require.NoError(t, err)
	defer h.Close()

	name, err := h.Name()
	require.NoError(t, err)
	assert.Equal(t, "svchost.exe", name)
	assert.Equal(t, []int{64}, sys.NameBufLens)
}

func TestNameLongerThanInitialBuffer(t *testing.T) {
	long := strings.Repeat("a", 150) + ".exe"
	sys := processtest.New(processtest.Proc{PID: 9, Name: []byte(long)})

	h, err := process.Open(sys, 9)
	require.NoError(t, err)
	defer h.Close()

	name, err := h.Name()
	require.NoError(t, err)
	assert.Equal(t, long, name)
	assert.Equal(t, []int{64, 128, 256}, sys.NameBufLens)
}

func TestNameExactlyFillingBufferIsRetried(t *testing.T) {
	// 63 bytes plus the terminator fill a 64 byte buffer completely.
	exact := strings.Repeat("b", 59) + ".exe"
	sys := processtest.New(processtest.Proc{PID: 9, Name: []byte(exact)})

	h, err := process.Open(sys, 9)
	require.NoError(t, err)
	defer h.Close()

	name, err := h.Name()
	require.NoError(t, err)
	assert.Equal(t, exact, name)
	assert.Equal(t, []int{64, 128}, sys.NameBufLens)
}

func TestNameCappedAtMaxCapacity(t *testing.T) {
	sys := processtest.New(processtest.Proc{PID: 9, Name: []byte(strings.Repeat("c", 500))})

	h, err := process.OpenWithOptions(sys, 9, process.NameOptions{InitialCapacity: 16, MaxCapacity: 100})
	require.NoError(t, err)
	defer h.Close()

	name, err := h.Name()
	require.NoError(t, err)
	assert.Len(t, name, 99)
	assert.Equal(t, []int{16, 32, 64, 100}, sys.NameBufLens)
}

func TestNameFailures(t *testing.T) {
	moduleErr := errors.New("partial copy")
	nameErr := errors.New("invalid handle")

	tests := []struct {
		name string
		proc processtest.Proc
		want error
	}{
		{"module query fails", processtest.Proc{PID: 1, ModuleErr: moduleErr}, moduleErr},
		{"no module yet", processtest.Proc{PID: 2, NoModule: true}, process.ErrNoModule},
		{"zero length with last error", processtest.Proc{PID: 3, NameErr: nameErr}, nameErr},
		{"invalid utf8", processtest.Proc{PID: 4, Name: []byte{'a', 0xff, 0xfe, 'b'}}, process.ErrInvalidName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sys := processtest.New(tt.proc)

			h, err := process.Open(sys, tt.proc.PID)
			require.NoError(t, err)

			name, err := h.Name()
			assert.Empty(t, name)
			assert.ErrorIs(t, err, tt.want)

			require.NoError(t, h.Close())
			assert.Equal(t, 0, sys.OpenHandles())
		})
	}
}

func TestNameEmptyWithoutError(t *testing.T) {
	sys := processtest.New(processtest.Proc{PID: 5})

	h, err := process.Open(sys, 5)
	require.NoError(t, err)
	defer h.Close()

	_, err = h.Name()
	assert.ErrorContains(t, err, "GetModuleBaseName failed")
}

func TestCloseOnce(t *testing.T) {
	sys := processtest.WithPIDs(4)

	h, err := process.Open(sys, 4)
	require.NoError(t, err)

	require.NoError(t, h.Close())
	assert.ErrorIs(t, h.Close(), process.ErrHandleClosed)
	assert.Equal(t, 1, sys.Closes)

	_, err = h.Name()
	assert.ErrorIs(t, err, process.ErrHandleClosed)
	assert.Empty(t, sys.NameBufLens)
}

func TestCloseFailureIsReturned(t *testing.T) {
	closeErr := errors.New("invalid handle")
	sys := processtest.New(processtest.Proc{PID: 4, Name: []byte("a.exe"), CloseErr: closeErr})

	h, err := process.Open(sys, 4)
	require.NoError(t, err)

	err = h.Close()
	assert.ErrorIs(t, err, closeErr)
	assert.ErrorIs(t, h.Close(), process.ErrHandleClosed)
	assert.Equal(t, 1, sys.Closes)
}
