//go:build !linux && !windows
// +build !linux,!windows

package executor

import "runtime"

// macOS ships open(1); the BSDs usually carry xdg-utils
var openCommands = func() []OpenCommand {
	if runtime.GOOS == "darwin" {
		return []OpenCommand{{Name: "open", Binary: "open"}}
	}
	return []OpenCommand{{Name: "xdg-open", Binary: "xdg-open"}}
}()
