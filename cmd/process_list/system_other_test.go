//go:build !windows

package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"memsnoop/process_list"
)

func TestUnsupportedPlatformFailsEnumeration(t *testing.T) {
	var stdout, stderr bytes.Buffer

	_, err := process_list.New(newSystem(), &stdout, &stderr).Run()
	assert.ErrorIs(t, err, errUnsupported)
	assert.Empty(t, stdout.String())
}
