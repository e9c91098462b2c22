//go:build linux
// +build linux

package executor

// Ordered list of opener commands to try (highest priority first)
var openCommands = []OpenCommand{
	// freedesktop.org generic opener
	{Name: "xdg-open", Binary: "xdg-open"},
	// GNOME / GLib
	{Name: "gio", Binary: "gio", Args: []string{"open"}},
	// KDE Plasma
	{Name: "kde-open", Binary: "kde-open5"},
}
