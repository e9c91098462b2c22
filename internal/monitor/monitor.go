// Package monitor reads media sessions from MPRIS players over the D-Bus session bus.
package monitor

import "github.com/genricoloni/mediabridge/internal/domain"

// ArtworkRefs turns the artwork URL a player publishes into a lazy thumbnail reference
type ArtworkRefs interface {
	Ref(url string) domain.ThumbnailRef
}
