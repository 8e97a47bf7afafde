package ui

import "fmt"

// Unicode symbols for status lines and menu rendering
const (
	SymbolSuccess   = "✓"
	SymbolError     = "✗"
	SymbolWarning   = "⚠"
	SymbolCursor    = "›"
	SymbolSeparator = "─"
)

// Success returns a success line.
func Success(msg string) string {
	return SymbolSuccess + " " + msg
}

// Successf formats a success line.
func Successf(format string, args ...interface{}) string {
	return Success(fmt.Sprintf(format, args...))
}

// Error returns an error line.
func Error(msg string) string {
	return SymbolError + " " + msg
}

// Warningf formats a warning line.
func Warningf(format string, args ...interface{}) string {
	return SymbolWarning + " " + fmt.Sprintf(format, args...)
}

// Header returns a bold section header.
func Header(msg string) string {
	return Bold.Render(msg)
}

// FilePath returns an accent-styled file path.
func FilePath(path string) string {
	return Accent.Render(path)
}

// Key returns an accent-styled attribute key.
func Key(key string) string {
	return AccentBold.Render(key)
}

// Hint returns muted hint text.
func Hint(msg string) string {
	return Muted.Render(msg)
}

// LineNum returns a muted, right-padded line number.
func LineNum(n int, width int) string {
	return Muted.Render(fmt.Sprintf("%*d", width, n))
}

// Count returns "(1 file)" or "(3 files)".
func Count(n int, singular, plural string) string {
	if n == 1 {
		return fmt.Sprintf("(%d %s)", n, singular)
	}
	return fmt.Sprintf("(%d %s)", n, plural)
}
