package errors

import (
	stderrors "errors"
	"strings"
)

// ANSI color codes for terminal output.
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
	colorWhite  = "\033[37m"
	colorGray   = "\033[90m"
	colorBold   = "\033[1m"
)

// colorEnabled controls whether ANSI colors are used.
var colorEnabled = true

// DisableColors disables ANSI color output.
func DisableColors() {
	colorEnabled = false
}

// EnableColors enables ANSI color output.
func EnableColors() {
	colorEnabled = true
}

func color(code, text string) string {
	if !colorEnabled {
		return text
	}
	return code + text + colorReset
}

func red(text string) string    { return color(colorRed, text) }
func yellow(text string) string { return color(colorYellow, text) }
func cyan(text string) string   { return color(colorCyan, text) }
func white(text string) string  { return color(colorWhite, text) }
func gray(text string) string   { return color(colorGray, text) }
func bold(text string) string   { return color(colorBold, text) }

// Format returns a console diagnostic for err. Non-BehaviorErrors are
// rendered as a plain one-line error.
func Format(err error) string {
	if err == nil {
		return ""
	}
	var be *BehaviorError
	if !stderrors.As(err, &be) {
		return red(bold("ERROR: ")) + white(err.Error()) + "\n"
	}
	return be.Format()
}

// Format returns the formatted diagnostic for terminal display.
func (e *BehaviorError) Format() string {
	var b strings.Builder

	label := red(bold("ERROR "))
	if e.Category == CategoryElement {
		label = yellow(bold("WARN "))
	}

	b.WriteString("\n")
	b.WriteString(label)
	b.WriteString(white(e.Error()))
	b.WriteString("\n\n")

	if e.Kind != "" {
		b.WriteString("  ")
		b.WriteString(gray("kind: "))
		b.WriteString(cyan(string(e.Kind)))
		if e.Category != "" {
			b.WriteString(gray("  category: "))
			b.WriteString(string(e.Category))
		}
		b.WriteString("\n\n")
	}

	if e.Detail != "" {
		for _, line := range wrapText(e.Detail, 70) {
			b.WriteString("  ")
			b.WriteString(line)
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if e.Suggestion != "" {
		b.WriteString("  ")
		b.WriteString(cyan("Hint: "))
		b.WriteString(e.Suggestion)
		b.WriteString("\n\n")
	}

	return b.String()
}

// wrapText wraps text at the given width on word boundaries.
func wrapText(text string, width int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	var lines []string
	line := words[0]
	for _, w := range words[1:] {
		if len(line)+1+len(w) > width {
			lines = append(lines, line)
			line = w
			continue
		}
		line += " " + w
	}
	return append(lines, line)
}
