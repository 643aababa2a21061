package shared

import (
	"fmt"
	"os/exec"
	"runtime"
)

// swapped in tests to exercise the per-platform branches
var getRuntime = func() string { return runtime.GOOS }

// OpenBrowser hands a URL to the platform's default browser. Used for track
// video previews, which the terminal cannot render.
func OpenBrowser(url string) error {
	var cmd *exec.Cmd
	switch rt := getRuntime(); rt {
	case "darwin":
		cmd = exec.Command("open", url)
	case "linux":
		cmd = exec.Command("xdg-open", url)
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", url)
	default:
		return fmt.Errorf("no browser launcher for platform %s", rt)
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to launch browser: %w", err)
	}

	return nil
}
