// Package platform binds the OS primitives the controller drives: media key
// injection, process enumeration and top-level window control.
package platform

import "errors"

// ErrUnsupported is returned by primitives that have no backend on this OS
var ErrUnsupported = errors.New("not supported on this platform")
