package domain

import (
	"context"
	"io"
	"time"
)

//go:generate mockgen -destination=mocks/domain_mock.go -package=mocks github.com/genricoloni/mediabridge/internal/domain ProcessTable,WindowController,URIOpener,KeyInjector

// ManagerProvider hands out the OS media-session manager.
// Implementations should handle D-Bus/MPRIS (or platform equivalent) communication
type ManagerProvider interface {
	// RequestManager connects to the session manager.
	// It may block; callers bound it with a deadline
	RequestManager(ctx context.Context) (SessionManager, error)
}

// SessionManager enumerates media sessions
type SessionManager interface {
	// CurrentSession returns the session the OS considers current, or nil if none is
	CurrentSession(ctx context.Context) (Session, error)

	// Sessions returns every known session in a stable order
	Sessions(ctx context.Context) ([]Session, error)

	// Close releases the connection to the manager
	Close() error
}

// Session is one application's media playback
type Session interface {
	// SourceAppID returns the opaque identifier of the owning application
	SourceAppID() string

	// MediaProperties queries artist, title and artwork
	MediaProperties(ctx context.Context) (*MediaProperties, error)

	// PlaybackInfo queries the playback status
	PlaybackInfo(ctx context.Context) (*PlaybackInfo, error)

	// Timeline queries position and track length
	Timeline(ctx context.Context) (*Timeline, error)

	// SetPosition moves the playback position.
	// Returns false when the session refused the request
	SetPosition(ctx context.Context, position time.Duration) (bool, error)
}

// ThumbnailRef is a lazily opened artwork reference
type ThumbnailRef interface {
	OpenRead(ctx context.Context) (ThumbnailStream, error)
}

// ThumbnailStream is an open artwork byte stream of known size
type ThumbnailStream interface {
	io.ReadCloser
	Size() int64
}

// KeyInjector presses and releases virtual media keys
type KeyInjector interface {
	Tap(key MediaKey) error
}

// ProcessTable enumerates running processes
type ProcessTable interface {
	// FindByName returns processes whose name matches (case-insensitive, without ".exe")
	FindByName(ctx context.Context, name string) ([]Process, error)
}

// WindowController locates and raises top-level windows
type WindowController interface {
	// MainWindow returns the main window of a process; ok is false if it has none
	MainWindow(pid int32) (handle WindowHandle, ok bool, err error)

	// Restore un-minimizes a window
	Restore(handle WindowHandle) error

	// SetForeground activates a window. Returns false when the OS refused
	SetForeground(handle WindowHandle) (bool, error)
}

// URIOpener hands a URI to the OS shell
type URIOpener interface {
	Open(ctx context.Context, uri string) error
}

// Config defines the interface for application configuration
type Config interface {
	// GetPollInterval returns the reader tick interval
	GetPollInterval() time.Duration

	// GetManagerTimeout bounds session-manager acquisition
	GetManagerTimeout() time.Duration

	// GetMetadataTimeout bounds the media properties query
	GetMetadataTimeout() time.Duration

	// GetThumbnailTimeout bounds opening the thumbnail stream
	GetThumbnailTimeout() time.Duration

	// GetCallTimeout bounds a single synchronous property read
	GetCallTimeout() time.Duration

	// GetThumbnailMaxEdge returns the longest allowed thumbnail edge in pixels (0 disables resizing)
	GetThumbnailMaxEdge() int

	// GetLockName returns the name of the reader single-instance lock
	GetLockName() string
}
