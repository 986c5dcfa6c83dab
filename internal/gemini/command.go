package gemini

import (
	"runtime"
	"strings"
)

// DefaultBinary returns the platform's name for the Gemini CLI executable.
// On Windows the npm shim is gemini.cmd.
func DefaultBinary() string {
	if runtime.GOOS == "windows" {
		return "gemini.cmd"
	}
	return "gemini"
}

// BuildArgs returns the CLI arguments for prompt under opts:
//
//	-m <model> [-s] [-d] [-a] [--show_memory_usage] [-y] [-c] -p <prompt>
//
// Boolean flags appear only when set, always in that order.
func BuildArgs(prompt string, opts Options) []string {
	args := make([]string, 0, 4+len(booleanFlags))
	args = append(args, "-m", opts.Model)
	for _, bf := range booleanFlags {
		if bf.get(opts) {
			args = append(args, bf.flag)
		}
	}
	return append(args, "-p", prompt)
}

// commandLine renders the command for metadata and logs.
func commandLine(name string, args []string) string {
	return name + " " + strings.Join(args, " ")
}
