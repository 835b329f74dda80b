package browser

import (
	"errors"
	"fmt"
	"os/exec"
	"runtime"

	"github.com/fredcamaral/webdeck/internal/domain/ports"
)

// Launcher opens the stage page in a local browser when Play arrives
type Launcher struct {
	browsers []Browser
}

// Browser represents a browser configuration
type Browser struct {
	Name    string
	Command string
	Args    func(url string) []string
}

// NewLauncher creates a launcher with the platform's browser candidates
func NewLauncher() *Launcher {
	return &Launcher{
		browsers: detectBrowsers(),
	}
}

// Launch opens a URL without waiting for the browser to exit
func (l *Launcher) Launch(url string) error {
	browser, err := l.selectBrowser()
	if err != nil {
		return fmt.Errorf("browser selection: %w", err)
	}

	cmd := exec.Command(browser.Command, browser.Args(url)...) // #nosec G204 - command comes from the fixed platform table
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("launching browser: %w", err)
	}

	// Don't wait for the browser to close
	go func() {
		_ = cmd.Wait()
	}()

	return nil
}

// Detect returns the name of the browser Launch would use
func (l *Launcher) Detect() (string, error) {
	browser, err := l.selectBrowser()
	if err != nil {
		return "", err
	}
	return browser.Name, nil
}

// selectBrowser returns the first candidate whose executable is on PATH
func (l *Launcher) selectBrowser() (*Browser, error) {
	if len(l.browsers) == 0 {
		return nil, errors.New("no browsers available")
	}

	for _, candidate := range l.browsers {
		if _, err := exec.LookPath(candidate.Command); err == nil {
			return &candidate, nil
		}
	}

	return nil, errors.New("no supported browsers found on this system")
}

// detectBrowsers lists browser candidates for the current platform
func detectBrowsers() []Browser {
	switch runtime.GOOS {
	case "darwin":
		return []Browser{
			{
				Name:    "Default",
				Command: "open",
				Args: func(url string) []string {
					return []string{url}
				},
			},
		}
	case "linux":
		return []Browser{
			{
				Name:    "xdg-open",
				Command: "xdg-open",
				Args: func(url string) []string {
					return []string{url}
				},
			},
			{
				Name:    "Chrome",
				Command: "google-chrome",
				Args: func(url string) []string {
					return []string{url}
				},
			},
			{
				Name:    "Firefox",
				Command: "firefox",
				Args: func(url string) []string {
					return []string{url}
				},
			},
		}
	case "windows":
		return []Browser{
			{
				Name:    "Default",
				Command: "cmd",
				Args: func(url string) []string {
					return []string{"/c", "start", url}
				},
			},
		}
	default:
		return []Browser{}
	}
}

var _ ports.BrowserLauncher = (*Launcher)(nil)
