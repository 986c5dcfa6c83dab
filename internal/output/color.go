package output

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// ColorMode is a value of the --color flag.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// NoColorEnvVar turns styling off in auto mode when set to any value.
const NoColorEnvVar = "NO_COLOR"

// ParseColorMode validates a --color value. An empty value is auto.
func ParseColorMode(s string) (ColorMode, error) {
	switch mode := ColorMode(strings.ToLower(strings.TrimSpace(s))); mode {
	case "":
		return ColorAuto, nil
	case ColorAuto, ColorAlways, ColorNever:
		return mode, nil
	}
	return "", NewUserError(fmt.Sprintf("invalid --color value %q: use auto, always, or never", s))
}

// UseColor reports whether human output should be styled. In auto mode that
// follows isTTY unless $NO_COLOR is set.
func UseColor(mode ColorMode, isTTY bool) bool {
	switch mode {
	case ColorNever:
		return false
	case ColorAlways:
		return true
	}
	if os.Getenv(NoColorEnvVar) != "" {
		return false
	}
	return isTTY
}

// IsTTY reports whether writer is a terminal. Buffers and pipes are not,
// nor is stdout when an MCP client has spawned the server.
func IsTTY(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	stat, err := file.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) != 0
}
