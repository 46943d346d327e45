// Package color renders terminal diagnostics through a termenv profile.
package color

import (
	"fmt"
	"os"

	"github.com/muesli/termenv"
)

// ANSI palette indices
const (
	Red       = "1"
	Green     = "2"
	Yellow    = "3"
	Blue      = "4"
	Cyan      = "6"
	Gray      = "8"
	BrightRed = "9"
)

var profile = termenv.EnvColorProfile()

func init() {
	if os.Getenv("NO_COLOR") != "" {
		profile = termenv.Ascii
	}
}

// EnableColor switches between the environment's profile and plain text
func EnableColor(enable bool) {
	if !enable {
		profile = termenv.Ascii
		return
	}
	profile = termenv.EnvColorProfile()
	if profile == termenv.Ascii {
		profile = termenv.ANSI
	}
}

// Profile returns the active color profile
func Profile() termenv.Profile {
	return profile
}

func IsColorEnabled() bool {
	return profile != termenv.Ascii
}

func Colorize(color, text string) string {
	if !IsColorEnabled() {
		return text
	}
	return profile.String(text).Foreground(profile.Color(color)).String()
}

func RedText(text string) string {
	return Colorize(Red, text)
}

func BrightRedText(text string) string {
	return Colorize(BrightRed, text)
}

func GreenText(text string) string {
	return Colorize(Green, text)
}

func YellowText(text string) string {
	return Colorize(Yellow, text)
}

func BlueText(text string) string {
	return Colorize(Blue, text)
}

func CyanText(text string) string {
	return Colorize(Cyan, text)
}

func GrayText(text string) string {
	return Colorize(Gray, text)
}

func BoldText(text string) string {
	if !IsColorEnabled() {
		return text
	}
	return profile.String(text).Bold().String()
}

func Error(message string) string {
	if !IsColorEnabled() {
		return "Error: " + message
	}
	return BrightRedText(BoldText("Error: ")) + message
}

// Position renders a 1-based instruction index or source line
func Position(n int) string {
	pos := fmt.Sprintf("%d", n)
	if !IsColorEnabled() {
		return pos
	}
	return CyanText(pos)
}

// ErrorWithPosition formats a diagnostic anchored at an instruction or line,
// followed by the offending code if any
func ErrorWithPosition(where string, n int, message, context string) string {
	if context == "" {
		return fmt.Sprintf("%s at %s %s: %s", BrightRedText(BoldText("Error")), where, Position(n), message)
	}
	return fmt.Sprintf("%s at %s %s: %s\n  %s",
		BrightRedText(BoldText("Error")),
		where,
		Position(n),
		message,
		GrayText(context))
}
