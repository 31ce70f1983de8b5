package hints

import (
	"strings"
	"testing"
)

// clearCIEnv blanks the CI markers so host CI does not leak into tests.
func clearCIEnv(t *testing.T) {
	t.Helper()
	t.Setenv("CI", "")
	t.Setenv("GITHUB_ACTIONS", "")
	t.Setenv("GITLAB_CI", "")
}

func TestForBrowserConnect_Local(t *testing.T) {
	clearCIEnv(t)
	t.Setenv("ROD_BROWSER_BIN", "/usr/bin/chromium")

	orig := IsInContainer
	IsInContainer = func() bool { return false }
	defer func() { IsInContainer = orig }()

	if got := ForBrowserConnect(); got != "" {
		t.Errorf("ForBrowserConnect() = %q, want empty on a configured local host", got)
	}
}

func TestForBrowserConnect_Container(t *testing.T) {
	clearCIEnv(t)
	t.Setenv("ROD_BROWSER_BIN", "")

	orig := IsInContainer
	IsInContainer = func() bool { return true }
	defer func() { IsInContainer = orig }()

	got := ForBrowserConnect()
	if !strings.Contains(got, "Chrome dependencies") {
		t.Errorf("ForBrowserConnect() = %q, want container dependency hint", got)
	}
	if !strings.Contains(got, "ROD_BROWSER_BIN") {
		t.Errorf("ForBrowserConnect() = %q, want browser binary hint", got)
	}
	if !strings.HasPrefix(got, "\n  hint: ") {
		t.Errorf("ForBrowserConnect() = %q, want the hint prefix", got)
	}
}

func TestForBrowserConnect_CI(t *testing.T) {
	clearCIEnv(t)
	t.Setenv("CI", "true")
	t.Setenv("ROD_BROWSER_BIN", "/usr/bin/chromium")

	orig := IsInContainer
	IsInContainer = func() bool { return false }
	defer func() { IsInContainer = orig }()

	if got := ForBrowserConnect(); !strings.Contains(got, "Chrome dependencies") {
		t.Errorf("ForBrowserConnect() = %q, want CI dependency hint", got)
	}
}

func TestForPageLoad(t *testing.T) {
	t.Parallel()

	got := ForPageLoad()
	if !strings.Contains(got, "timeouts.pageLoad") {
		t.Errorf("ForPageLoad() = %q, want the settings key", got)
	}
	if !strings.HasPrefix(got, "\n  hint: ") {
		t.Errorf("ForPageLoad() = %q, want the hint prefix", got)
	}
}
