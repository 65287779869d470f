package guard

import "strings"

// TrimStack cleans a runtime/debug stack dump for display: the goroutine
// header, the recovery machinery, and this package's own frames are dropped,
// and the file lines lose their leading tab so the result sits flat inside a
// fenced code block.
func TrimStack(raw []byte) []string {
	lines := strings.Split(strings.TrimRight(string(raw), "\n"), "\n")
	if len(lines) > 0 && strings.HasPrefix(lines[0], "goroutine ") {
		lines = lines[1:]
	}

	// Frames come in (function, location) pairs. Everything up to and
	// including the runtime panic frame is recovery plumbing.
	start := 0
	for i := 0; i+1 < len(lines); i += 2 {
		fn := lines[i]
		if strings.HasPrefix(fn, "panic(") || strings.Contains(fn, "runtime.gopanic") {
			start = i + 2
		}
	}
	lines = lines[start:]

	// Drop this package's own Run frame if it survived.
	out := make([]string, 0, len(lines))
	for i := 0; i < len(lines); i += 2 {
		if i+1 >= len(lines) {
			out = append(out, strings.TrimPrefix(lines[i], "\t"))
			break
		}
		if strings.Contains(lines[i], "/internal/guard.Run") {
			continue
		}
		out = append(out, lines[i], strings.TrimPrefix(lines[i+1], "\t"))
	}
	return out
}
