package requirements

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/markusressel/i8kfans/internal/configuration"
	"github.com/markusressel/i8kfans/internal/util"
)

var ErrRequirementMissing = errors.New("requirement missing")

// Result of a single requirement check. Err is nil if the requirement is met.
type Result struct {
	Name   string
	Detail string
	Err    error
}

func (r Result) Ok() bool {
	return r.Err == nil
}

// CheckExecutables checks that every given executable can be found in $PATH.
func CheckExecutables(names ...string) []Result {
	var results []Result
	for _, name := range names {
		path, err := util.ResolveExecutable(name)
		result := Result{Name: name, Detail: path}
		if err != nil {
			result.Err = fmt.Errorf("%w: the %s program is necessary to run i8kfans", ErrRequirementMissing, name)
		}
		results = append(results, result)
	}
	return results
}

// CheckProcEntry checks that the given path exists, which is the case
// for /proc/i8k while the i8k kernel module is loaded.
func CheckProcEntry(path string) Result {
	result := Result{Name: path, Detail: "kernel module"}
	_, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		result.Err = fmt.Errorf("%w: %s does not exist, the i8k kernel module is not loaded", ErrRequirementMissing, path)
	} else if err != nil {
		result.Err = fmt.Errorf("%w: unable to access %s: %v", ErrRequirementMissing, path, err)
	}
	return result
}

// Check runs all configured checks. The returned error joins every failed check.
func Check(config configuration.RequirementsConfig) ([]Result, error) {
	results := CheckExecutables(config.Executables...)
	if len(config.ProcEntry) > 0 {
		results = append(results, CheckProcEntry(config.ProcEntry))
	}

	var messages []string
	for _, result := range results {
		if !result.Ok() {
			messages = append(messages, result.Err.Error())
		}
	}
	if len(messages) > 0 {
		return results, fmt.Errorf("%w: %s", ErrRequirementMissing, strings.Join(messages, "; "))
	}
	return results, nil
}
