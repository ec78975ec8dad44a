package hooks

import (
	"runtime/debug"
	"strings"

	"github.com/sirupsen/logrus"
)

// contextHook tags each entry with the file:line of the logging call site,
// relative to the module root.
type contextHook struct {
}

func NewContextHook() contextHook {
	return contextHook{}
}

func (hook contextHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

func (hook contextHook) Fire(entry *logrus.Entry) error {
	if loc := callSite(string(debug.Stack())); loc != "" {
		entry.Data["file:line"] = loc
	}
	return nil
}

// callSite returns the first frame outside logrus and this hook.
func callSite(stack string) string {
	lines := strings.Split(stack, "\n")
	foundHook := false
	for i := 0; i+1 < len(lines); i++ {
		if strings.Contains(lines[i], "context_hook.go:") {
			foundHook = true
			continue
		}
		if !foundHook || strings.HasPrefix(lines[i], "\t") {
			continue
		}
		// function line; the following line holds its location
		if strings.Contains(lines[i], "sirupsen/logrus") {
			continue
		}
		loc := strings.TrimSpace(lines[i+1])
		if idx := strings.LastIndex(loc, " +0x"); idx >= 0 {
			loc = loc[:idx]
		}
		parts := strings.Split(loc, "satt/")
		return parts[len(parts)-1]
	}
	return ""
}
