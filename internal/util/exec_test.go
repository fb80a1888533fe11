package util

import (
	"context"
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSafeCmdExecution(t *testing.T) {
	// GIVEN
	if _, err := exec.LookPath("echo"); err != nil {
		t.Skip("echo not available")
	}

	// WHEN
	result, err := SafeCmdExecution(context.Background(), "echo", []string{"  42  "}, time.Second)

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, "42", result)
}

func TestSafeCmdExecution_NotFound(t *testing.T) {
	// WHEN
	result, err := SafeCmdExecution(context.Background(), "/usr/bin/does_not_exist", nil, time.Second)

	// THEN
	assert.Error(t, err)
	assert.Empty(t, result)
}

func TestReplacePlaceholders(t *testing.T) {
	// GIVEN
	args := []string{"%cpu%", "--gpu=%gpu%", "static"}

	// WHEN
	result := ReplacePlaceholders(args, map[string]string{"cpu": "1", "gpu": "-"})

	// THEN
	assert.Equal(t, []string{"1", "--gpu=-", "static"}, result)
	assert.Equal(t, "%cpu%", args[0])
}
