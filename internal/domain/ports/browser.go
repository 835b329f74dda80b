package ports

// BrowserLauncher opens URLs in a local browser
type BrowserLauncher interface {
	// Launch opens the URL without waiting for the browser to exit
	Launch(url string) error

	// Detect returns the name of the browser that Launch would use
	Detect() (string, error)
}
