package domain

import (
	"math"
	"strings"
	"time"
)

// PlaybackStatus represents the current state of the media session
type PlaybackStatus string

const (
	// StatusPlaying indicates the media is currently playing
	StatusPlaying PlaybackStatus = "PLAYING"
	// StatusPaused indicates the media is paused
	StatusPaused PlaybackStatus = "PAUSED"
	// StatusStopped indicates the media is stopped (also the default when unknown)
	StatusStopped PlaybackStatus = "STOPPED"
	// StatusChanging indicates the session is switching tracks or sources
	StatusChanging PlaybackStatus = "CHANGING"
	// StatusClosed indicates the session has been closed by its owner
	StatusClosed PlaybackStatus = "CLOSED"
)

// ParsePlaybackStatus maps a status name (any case) to a PlaybackStatus.
// Unknown names map to StatusStopped.
func ParsePlaybackStatus(s string) PlaybackStatus {
	switch PlaybackStatus(strings.ToUpper(strings.TrimSpace(s))) {
	case StatusPlaying:
		return StatusPlaying
	case StatusPaused:
		return StatusPaused
	case StatusChanging:
		return StatusChanging
	case StatusClosed:
		return StatusClosed
	default:
		return StatusStopped
	}
}

// MediaSnapshot is a point-in-time record of what is playing.
// Field order matches the wire format of the reader.
type MediaSnapshot struct {
	Artist string         `json:"artist"`
	Title  string         `json:"title"`
	Status PlaybackStatus `json:"status"`
	// Position and Duration are expressed in seconds
	Position float64 `json:"position"`
	Duration float64 `json:"duration"`
	// Thumbnail carries base64 image bytes, or "" when unavailable
	Thumbnail string `json:"thumbnail"`
}

// EmptySnapshot returns the "nothing playing" snapshot
func EmptySnapshot() MediaSnapshot {
	return MediaSnapshot{Status: StatusStopped}
}

// Normalize returns a copy with every field at a valid value:
// negative or non-finite times become 0 and unknown statuses become STOPPED.
func (s MediaSnapshot) Normalize() MediaSnapshot {
	s.Status = ParsePlaybackStatus(string(s.Status))
	s.Position = nonNegative(s.Position)
	s.Duration = nonNegative(s.Duration)
	return s
}

// IsPlaying reports whether the snapshot status is PLAYING
func (s MediaSnapshot) IsPlaying() bool {
	return s.Status == StatusPlaying
}

// IsEmpty reports whether neither artist nor title is known
func (s MediaSnapshot) IsEmpty() bool {
	return s.Artist == "" && s.Title == ""
}

// Progress returns position/duration in [0, 1]; 0 when the duration is unknown
func (s MediaSnapshot) Progress() float64 {
	if s.Duration <= 0 {
		return 0
	}
	return math.Min(1, nonNegative(s.Position)/s.Duration)
}

func nonNegative(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

// MediaProperties is the metadata reported by a session
type MediaProperties struct {
	Artist string
	Title  string
	// Thumbnail is nil when the session does not expose artwork
	Thumbnail ThumbnailRef
}

// PlaybackInfo is the playback state reported by a session
type PlaybackInfo struct {
	Status PlaybackStatus
}

// Timeline is the timeline reported by a session
type Timeline struct {
	Position time.Duration
	End      time.Duration
}

// MediaKey identifies a virtual media key
type MediaKey int

const (
	// KeyPlayPause is the single play/pause toggle key
	KeyPlayPause MediaKey = iota
	// KeyNextTrack skips to the next track
	KeyNextTrack
	// KeyPreviousTrack skips to the previous track
	KeyPreviousTrack
)

// String returns the key name used in logs
func (k MediaKey) String() string {
	switch k {
	case KeyPlayPause:
		return "play_pause"
	case KeyNextTrack:
		return "next_track"
	case KeyPreviousTrack:
		return "previous_track"
	default:
		return "unknown"
	}
}

// Process is a running OS process
type Process struct {
	PID  int32
	Name string
}

// WindowHandle is an opaque OS window identifier
type WindowHandle uintptr
