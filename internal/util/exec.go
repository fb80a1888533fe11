package util

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/markusressel/i8kfans/internal/ui"
)

// ResolveExecutable returns the absolute path of the given executable,
// looking it up in $PATH if it is not a path already.
func ResolveExecutable(executable string) (string, error) {
	path, err := exec.LookPath(executable)
	if err != nil {
		return "", fmt.Errorf("%s not found: %w", executable, err)
	}
	return path, nil
}

// SafeCmdExecution runs the given executable, if its permissions are safe to do so,
// and returns its trimmed stdout.
func SafeCmdExecution(ctx context.Context, executable string, args []string, timeout time.Duration) (string, error) {
	path, err := ResolveExecutable(executable)
	if err != nil {
		return "", err
	}
	if _, err := CheckFilePermissionsForExecution(path); err != nil {
		return "", fmt.Errorf("cannot execute %s: %w", executable, err)
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, path, args...)
	out, err := cmd.Output()

	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		ui.Warning("Command timed out: %s", executable)
		return "", fmt.Errorf("command %s timed out after %s", executable, timeout)
	}

	if err != nil {
		ui.Warning("Command failed to execute: %s", executable)
		return "", err
	}

	return strings.TrimSpace(string(out)), nil
}

// ReplacePlaceholders replaces every "%key%" in the given args with its value.
func ReplacePlaceholders(args []string, values map[string]string) []string {
	result := make([]string, 0, len(args))
	for _, arg := range args {
		for key, value := range values {
			arg = strings.ReplaceAll(arg, "%"+key+"%", value)
		}
		result = append(result, arg)
	}
	return result
}
