// Package hints provides actionable error hints for common failure
// scenarios. Hints are formatted consistently as "\n  hint: <text>" for
// appending to error messages.
package hints

import (
	"os"
	"strings"

	"github.com/alnah/go-cv2pdf/internal/fileutil"
)

// IsInContainer detects if running inside a Docker container or similar.
// Checks for /.dockerenv which Docker creates automatically.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// ForBrowserConnect returns hints for browser launch/connect errors.
func ForBrowserConnect() string {
	var hs []string

	inCI := os.Getenv("CI") != "" ||
		os.Getenv("GITHUB_ACTIONS") != "" ||
		os.Getenv("GITLAB_CI") != ""

	if inCI || IsInContainer() {
		hs = append(hs, "ensure Chrome dependencies are installed in the container")
	}
	if os.Getenv("ROD_BROWSER_BIN") == "" {
		hs = append(hs, "set ROD_BROWSER_BIN to use a pre-installed Chrome")
	}

	return formatHints(hs)
}

// ForPageLoad returns a hint for slow or stalled page loads.
func ForPageLoad() string {
	return format("raise timeouts.pageLoad in the settings file for slow documents")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hs []string) string {
	if len(hs) == 0 {
		return ""
	}
	return format(strings.Join(hs, "; "))
}
