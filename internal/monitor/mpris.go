//go:build linux

package monitor

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/genricoloni/mediabridge/internal/domain"
	"github.com/godbus/dbus/v5"
	"github.com/sourcegraph/conc/iter"
	"go.uber.org/zap"
)

const (
	playerPrefix  = "org.mpris.MediaPlayer2."
	objectPath    = "/org/mpris/MediaPlayer2"
	rootInterface = "org.mpris.MediaPlayer2"
	playerIface   = "org.mpris.MediaPlayer2.Player"
	propDesktop   = rootInterface + ".DesktopEntry"
	propMetadata  = playerIface + ".Metadata"
	propStatus    = playerIface + ".PlaybackStatus"
	propPosition  = playerIface + ".Position"
	propCanSeek   = playerIface + ".CanSeek"
	methodSetPos  = playerIface + ".SetPosition"
	statusPlaying = "Playing"
)

// errNoTimeline is returned when a player exposes neither length nor position
var errNoTimeline = errors.New("player exposes no timeline")

// Provider hands out MPRIS session managers backed by a session bus connection
type Provider struct {
	logger *zap.Logger
	cfg    domain.Config
	art    ArtworkRefs
	dial   func(ctx context.Context) (DBusClient, error)
}

// NewProvider creates a provider that connects to the user's session bus
func NewProvider(logger *zap.Logger, cfg domain.Config, art ArtworkRefs) *Provider {
	return &Provider{
		logger: logger,
		cfg:    cfg,
		art:    art,
		dial: func(ctx context.Context) (DBusClient, error) {
			return NewStdDBusClient(ctx)
		},
	}
}

// RequestManager opens a session bus connection. The returned manager owns it.
func (p *Provider) RequestManager(ctx context.Context) (domain.SessionManager, error) {
	conn, err := p.dial(ctx)
	if err != nil {
		return nil, fmt.Errorf("session bus connection failed: %w", err)
	}
	return newManager(p.logger, p.cfg, conn, p.art), nil
}

// Manager enumerates MPRIS players on one bus connection
type Manager struct {
	logger *zap.Logger
	cfg    domain.Config
	conn   DBusClient
	art    ArtworkRefs
}

func newManager(logger *zap.Logger, cfg domain.Config, conn DBusClient, art ArtworkRefs) *Manager {
	return &Manager{logger: logger, cfg: cfg, conn: conn, art: art}
}

// Sessions returns one session per MPRIS player, ordered by bus name.
// Only the bus is listed here; per-player properties are read on demand.
func (m *Manager) Sessions(ctx context.Context) ([]domain.Session, error) {
	players, err := m.players(ctx)
	if err != nil {
		return nil, err
	}

	sessions := make([]domain.Session, 0, len(players))
	for _, p := range players {
		sessions = append(sessions, p)
	}
	return sessions, nil
}

func (m *Manager) players(ctx context.Context) ([]*Player, error) {
	callCtx, cancel := m.callContext(ctx)
	defer cancel()

	names, err := m.conn.ListNames(callCtx)
	if err != nil {
		return nil, fmt.Errorf("failed to list bus names: %w", err)
	}

	var buses []string
	for _, name := range names {
		if strings.HasPrefix(name, playerPrefix) {
			buses = append(buses, name)
		}
	}
	sort.Strings(buses)

	players := make([]*Player, 0, len(buses))
	for _, bus := range buses {
		players = append(players, &Player{m: m, bus: bus})
	}

	m.logger.Debug("MPRIS players enumerated", zap.Int("count", len(players)))
	return players, nil
}

// CurrentSession returns the first player, in bus name order, that is playing,
// or nil when none is. Statuses are read concurrently so a player that never
// answers costs one call timeout per query, not one per player.
func (m *Manager) CurrentSession(ctx context.Context) (domain.Session, error) {
	players, err := m.players(ctx)
	if err != nil {
		return nil, err
	}

	playing := iter.Map(players, func(p **Player) bool {
		return m.isPlaying(ctx, *p)
	})
	for i, ok := range playing {
		if ok {
			return players[i], nil
		}
	}
	return nil, nil
}

func (m *Manager) isPlaying(ctx context.Context, p *Player) bool {
	v, err := m.property(ctx, p.bus, propStatus)
	if err != nil {
		m.logger.Debug("Failed to read playback status", zap.String("player", p.bus), zap.Error(err))
		return false
	}
	status, ok := v.Value().(string)
	return ok && status == statusPlaying
}

// Close releases the bus connection
func (m *Manager) Close() error {
	return m.conn.Close()
}

// property reads one property bounded by the call timeout
func (m *Manager) property(ctx context.Context, bus, prop string) (dbus.Variant, error) {
	callCtx, cancel := m.callContext(ctx)
	defer cancel()
	return m.conn.GetProperty(callCtx, bus, objectPath, prop)
}

func (m *Manager) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if d := m.cfg.GetCallTimeout(); d > 0 {
		return context.WithTimeout(ctx, d)
	}
	return context.WithCancel(ctx)
}

// sourceAppID builds "<desktop entry>!<bus suffix>", or just the suffix when
// the player does not publish a desktop entry
func (m *Manager) sourceAppID(ctx context.Context, bus string) string {
	suffix := strings.TrimPrefix(bus, playerPrefix)

	v, err := m.property(ctx, bus, propDesktop)
	if err != nil {
		return suffix
	}
	entry, ok := v.Value().(string)
	if !ok || entry == "" {
		return suffix
	}
	return entry + "!" + suffix
}

// Player is a single MPRIS player seen as a media session
type Player struct {
	m   *Manager
	bus string

	once  sync.Once
	appID string
}

// SourceAppID returns the identifier of the owning application. The desktop
// entry is read on first use and cached.
func (p *Player) SourceAppID() string {
	p.once.Do(func() {
		if p.appID == "" {
			p.appID = p.m.sourceAppID(context.Background(), p.bus)
		}
	})
	return p.appID
}

func (p *Player) metadata(ctx context.Context) (trackMetadata, error) {
	v, err := p.m.property(ctx, p.bus, propMetadata)
	if err != nil {
		return trackMetadata{}, fmt.Errorf("failed to get metadata: %w", err)
	}
	// Players with nothing loaded may return an empty or mistyped value
	raw, ok := v.Value().(map[string]dbus.Variant)
	if !ok {
		return trackMetadata{}, nil
	}
	return parseMetadata(p.m.logger, raw), nil
}

// MediaProperties returns artist, title and a lazy artwork reference
func (p *Player) MediaProperties(ctx context.Context) (*domain.MediaProperties, error) {
	meta, err := p.metadata(ctx)
	if err != nil {
		return nil, err
	}

	props := &domain.MediaProperties{Artist: meta.Artist, Title: meta.Title}
	if meta.ArtURL != "" && p.m.art != nil {
		props.Thumbnail = p.m.art.Ref(meta.ArtURL)
	}
	return props, nil
}

// PlaybackInfo returns the playback status
func (p *Player) PlaybackInfo(ctx context.Context) (*domain.PlaybackInfo, error) {
	v, err := p.m.property(ctx, p.bus, propStatus)
	if err != nil {
		return nil, fmt.Errorf("failed to get playback status: %w", err)
	}
	status, ok := v.Value().(string)
	if !ok {
		return nil, fmt.Errorf("invalid playback status format")
	}
	return &domain.PlaybackInfo{Status: parseStatus(status)}, nil
}

// Timeline returns the position and track length. Either may be missing,
// not both.
func (p *Player) Timeline(ctx context.Context) (*domain.Timeline, error) {
	meta, metaErr := p.metadata(ctx)

	var position time.Duration
	v, posErr := p.m.property(ctx, p.bus, propPosition)
	if posErr == nil {
		var ok bool
		if position, ok = microseconds(v.Value()); !ok {
			posErr = fmt.Errorf("invalid position format")
		}
	}

	if metaErr != nil && posErr != nil {
		return nil, fmt.Errorf("%w: %v", errNoTimeline, posErr)
	}
	return &domain.Timeline{Position: position, End: meta.Length}, nil
}

// SetPosition seeks the current track. MPRIS only accepts absolute seeks
// on the track identified by mpris:trackid, so players without one refuse.
func (p *Player) SetPosition(ctx context.Context, position time.Duration) (bool, error) {
	if v, err := p.m.property(ctx, p.bus, propCanSeek); err == nil {
		if canSeek, ok := v.Value().(bool); ok && !canSeek {
			return false, nil
		}
	}

	meta, err := p.metadata(ctx)
	if err != nil {
		return false, err
	}
	if meta.TrackID == "" {
		p.m.logger.Debug("Player published no track id", zap.String("player", p.bus))
		return false, nil
	}

	callCtx, cancel := p.m.callContext(ctx)
	defer cancel()
	if err := p.m.conn.Call(callCtx, p.bus, objectPath, methodSetPos, meta.TrackID, position.Microseconds()); err != nil {
		return false, fmt.Errorf("SetPosition failed: %w", err)
	}
	return true, nil
}
