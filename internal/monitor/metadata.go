//go:build linux

package monitor

import (
	"fmt"
	"time"

	"github.com/genricoloni/mediabridge/internal/domain"
	"github.com/godbus/dbus/v5"
	"go.uber.org/zap"
)

// trackMetadata is the subset of the MPRIS Metadata dictionary we read
type trackMetadata struct {
	Artist  string
	Title   string
	ArtURL  string
	TrackID dbus.ObjectPath
	Length  time.Duration
}

// parseMetadata converts the MPRIS Metadata dictionary.
// Missing or mistyped entries are left at their zero value.
func parseMetadata(logger *zap.Logger, metadata map[string]dbus.Variant) trackMetadata {
	var meta trackMetadata
	if metadata == nil {
		return meta
	}

	if titleVar, ok := metadata["xesam:title"]; ok {
		if title, ok := titleVar.Value().(string); ok {
			meta.Title = title
		}
	}

	// xesam:artist is a list, but some players send a plain string
	if artistVar, ok := metadata["xesam:artist"]; ok {
		switch artists := artistVar.Value().(type) {
		case []string:
			if len(artists) > 0 {
				meta.Artist = artists[0]
			}
		case string:
			meta.Artist = artists
		default:
			logger.Debug("Unexpected artist type in metadata",
				zap.String("type", fmt.Sprintf("%T", artistVar.Value())))
		}
	}

	if artVar, ok := metadata["mpris:artUrl"]; ok {
		if artURL, ok := artVar.Value().(string); ok {
			meta.ArtURL = artURL
		}
	}

	if idVar, ok := metadata["mpris:trackid"]; ok {
		switch id := idVar.Value().(type) {
		case dbus.ObjectPath:
			meta.TrackID = id
		case string:
			meta.TrackID = dbus.ObjectPath(id)
		}
	}

	if lengthVar, ok := metadata["mpris:length"]; ok {
		if us, ok := microseconds(lengthVar.Value()); ok {
			meta.Length = us
		}
	}

	return meta
}

// parseStatus maps an MPRIS PlaybackStatus to the domain status
func parseStatus(status string) domain.PlaybackStatus {
	switch status {
	case "Playing":
		return domain.StatusPlaying
	case "Paused":
		return domain.StatusPaused
	default:
		return domain.StatusStopped
	}
}

// microseconds converts an MPRIS time value. MPRIS declares int64 but
// several players publish uint64 or double instead.
func microseconds(v any) (time.Duration, bool) {
	var us int64
	switch n := v.(type) {
	case int64:
		us = n
	case uint64:
		us = int64(n)
	case int32:
		us = int64(n)
	case uint32:
		us = int64(n)
	case float64:
		us = int64(n)
	default:
		return 0, false
	}
	if us < 0 {
		us = 0
	}
	return time.Duration(us) * time.Microsecond, true
}
