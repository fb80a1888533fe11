package requirements

import (
	"path/filepath"
	"testing"

	"github.com/markusressel/i8kfans/internal/configuration"
	"github.com/stretchr/testify/assert"
)

func TestCheckExecutables(t *testing.T) {
	// WHEN
	results := CheckExecutables("echo", "i8kfans-does-not-exist")

	// THEN
	assert.Len(t, results, 2)

	assert.True(t, results[0].Ok())
	assert.Equal(t, "echo", results[0].Name)
	assert.NotEmpty(t, results[0].Detail)

	assert.False(t, results[1].Ok())
	assert.ErrorIs(t, results[1].Err, ErrRequirementMissing)
	assert.Contains(t, results[1].Err.Error(), "i8kfans-does-not-exist program is necessary")
}

func TestCheckProcEntry(t *testing.T) {
	// WHEN
	result := CheckProcEntry(t.TempDir())

	// THEN
	assert.True(t, result.Ok())
}

func TestCheckProcEntry_Missing(t *testing.T) {
	// WHEN
	result := CheckProcEntry(filepath.Join(t.TempDir(), "i8k"))

	// THEN
	assert.False(t, result.Ok())
	assert.ErrorIs(t, result.Err, ErrRequirementMissing)
	assert.Contains(t, result.Err.Error(), "kernel module is not loaded")
}

func TestCheck(t *testing.T) {
	// GIVEN
	config := configuration.RequirementsConfig{
		Executables: []string{"echo"},
		ProcEntry:   t.TempDir(),
	}

	// WHEN
	results, err := Check(config)

	// THEN
	assert.NoError(t, err)
	assert.Len(t, results, 2)
}

func TestCheck_Missing(t *testing.T) {
	// GIVEN
	config := configuration.RequirementsConfig{
		Executables: []string{"echo", "i8kfans-does-not-exist"},
		ProcEntry:   filepath.Join(t.TempDir(), "i8k"),
	}

	// WHEN
	results, err := Check(config)

	// THEN
	assert.ErrorIs(t, err, ErrRequirementMissing)
	assert.Len(t, results, 3)
	assert.Contains(t, err.Error(), "i8kfans-does-not-exist")
	assert.Contains(t, err.Error(), "i8k kernel module")
}
