package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestParseColorMode(t *testing.T) {
	tests := []struct {
		in      string
		want    ColorMode
		wantErr bool
	}{
		{in: "", want: ColorAuto},
		{in: "auto", want: ColorAuto},
		{in: "Always", want: ColorAlways},
		{in: " never ", want: ColorNever},
		{in: "sometimes", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseColorMode(tt.in)
			if tt.wantErr {
				if GetExitCode(err) != ExitUserError {
					t.Fatalf("ParseColorMode(%q) error = %v, want a user error", tt.in, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseColorMode(%q) error = %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseColorMode(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestUseColor(t *testing.T) {
	tests := []struct {
		name    string
		mode    ColorMode
		isTTY   bool
		noColor string
		want    bool
	}{
		{name: "never on a terminal", mode: ColorNever, isTTY: true, want: false},
		{name: "always when piped", mode: ColorAlways, isTTY: false, want: true},
		{name: "always ignores NO_COLOR", mode: ColorAlways, isTTY: true, noColor: "1", want: true},
		{name: "auto on a terminal", mode: ColorAuto, isTTY: true, want: true},
		{name: "auto when piped", mode: ColorAuto, isTTY: false, want: false},
		{name: "auto with NO_COLOR", mode: ColorAuto, isTTY: true, noColor: "1", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(NoColorEnvVar, tt.noColor)
			if got := UseColor(tt.mode, tt.isTTY); got != tt.want {
				t.Errorf("UseColor(%q, %v) = %v, want %v", tt.mode, tt.isTTY, got, tt.want)
			}
		})
	}
}

func TestIsTTY_Buffer(t *testing.T) {
	var buf bytes.Buffer
	if IsTTY(&buf) {
		t.Error("IsTTY(buffer) should return false")
	}
}

func TestPrinter_StylesFollowColor(t *testing.T) {
	t.Setenv(NoColorEnvVar, "")
	empty := lipgloss.NewStyle()

	plain := NewPrinter(&bytes.Buffer{}, false, UseColor(ColorNever, true))
	if plain.IsTTY() || plain.styles.Warning.GetForeground() != empty.GetForeground() {
		t.Error("--color never should leave the printer unstyled")
	}

	styled := NewPrinter(&bytes.Buffer{}, false, UseColor(ColorAlways, false))
	if !styled.IsTTY() || styled.styles.Warning.GetForeground() == empty.GetForeground() {
		t.Error("--color always should keep the warning color")
	}
}

func TestPrinter_NeverWritesNoANSI(t *testing.T) {
	var out, errOut bytes.Buffer
	printer := NewPrinter(&out, false, UseColor(ColorNever, true)).WithStderr(&errOut)

	printer.Error(NewUserError("no prompt given"))
	printer.Warn("cannot read %s", "missing.go")

	for _, s := range []string{out.String(), errOut.String()} {
		if strings.Contains(s, "\033[") {
			t.Errorf("--color never wrote ANSI codes: %q", s)
		}
	}
}
