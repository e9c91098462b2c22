//go:build linux

package monitor

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/genricoloni/mediabridge/internal/domain"
	"github.com/genricoloni/mediabridge/internal/domain/domaintest"
	"github.com/genricoloni/mediabridge/internal/monitor/mocks"
	"github.com/godbus/dbus/v5"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

const (
	spotifyBus = "org.mpris.MediaPlayer2.spotify"
	chromeBus  = "org.mpris.MediaPlayer2.chromium.instance42"
)

type stubArtwork struct {
	urls []string
}

func (s *stubArtwork) Ref(url string) domain.ThumbnailRef {
	s.urls = append(s.urls, url)
	return &domaintest.Thumbnail{Data: []byte(url)}
}

func newTestManager(client DBusClient, art ArtworkRefs) *Manager {
	return newManager(zap.NewNop(), domaintest.NewConfig(), client, art)
}

func TestManager_Sessions(t *testing.T) {
	tests := []struct {
		name        string
		setupMock   func(*mocks.MockDBusClient)
		expectError bool
		expectedIDs []string
	}{
		{
			name: "Success - Players Sorted With Desktop Entries",
			setupMock: func(m *mocks.MockDBusClient) {
				m.EXPECT().ListNames(gomock.Any()).Return([]string{
					"org.freedesktop.DBus",
					spotifyBus,
					chromeBus,
					"com.example.OtherApp",
				}, nil)
				m.EXPECT().GetProperty(gomock.Any(), chromeBus, objectPath, propDesktop).
					Return(dbus.MakeVariant("google-chrome"), nil)
				m.EXPECT().GetProperty(gomock.Any(), spotifyBus, objectPath, propDesktop).
					Return(dbus.MakeVariant(""), fmt.Errorf("no such property"))
			},
			expectedIDs: []string{"google-chrome!chromium.instance42", "spotify"},
		},
		{
			name: "Success - No Players",
			setupMock: func(m *mocks.MockDBusClient) {
				m.EXPECT().ListNames(gomock.Any()).Return([]string{"org.freedesktop.DBus"}, nil)
			},
			expectedIDs: []string{},
		},
		{
			name: "Failure - ListNames fails",
			setupMock: func(m *mocks.MockDBusClient) {
				m.EXPECT().ListNames(gomock.Any()).Return(nil, fmt.Errorf("bus error"))
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			mockClient := mocks.NewMockDBusClient(ctrl)
			tt.setupMock(mockClient)

			sessions, err := newTestManager(mockClient, nil).Sessions(context.Background())
			if tt.expectError {
				if err == nil {
					t.Fatal("Expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if len(sessions) != len(tt.expectedIDs) {
				t.Fatalf("Expected %d sessions, got %d", len(tt.expectedIDs), len(sessions))
			}
			for i, want := range tt.expectedIDs {
				if got := sessions[i].SourceAppID(); got != want {
					t.Errorf("Session %d: want %q, got %q", i, want, got)
				}
			}
		})
	}
}

func TestManager_CurrentSession(t *testing.T) {
	tests := []struct {
		name       string
		statuses   map[string]dbus.Variant
		expectedID string
	}{
		{
			name: "Playing Player Wins",
			statuses: map[string]dbus.Variant{
				chromeBus:  dbus.MakeVariant("Paused"),
				spotifyBus: dbus.MakeVariant("Playing"),
			},
			expectedID: "spotify",
		},
		{
			name: "None Playing",
			statuses: map[string]dbus.Variant{
				chromeBus:  dbus.MakeVariant("Paused"),
				spotifyBus: dbus.MakeVariant("Stopped"),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			m := mocks.NewMockDBusClient(ctrl)
			m.EXPECT().ListNames(gomock.Any()).Return([]string{spotifyBus, chromeBus}, nil)
			m.EXPECT().GetProperty(gomock.Any(), gomock.Any(), objectPath, propDesktop).
				Return(dbus.Variant{}, errors.New("unknown property")).AnyTimes()
			for bus, status := range tt.statuses {
				m.EXPECT().GetProperty(gomock.Any(), bus, objectPath, propStatus).Return(status, nil).MaxTimes(1)
			}

			current, err := newTestManager(m, nil).CurrentSession(context.Background())
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if tt.expectedID == "" {
				if current != nil {
					t.Errorf("Expected no current session, got %q", current.SourceAppID())
				}
				return
			}
			if current == nil || current.SourceAppID() != tt.expectedID {
				t.Errorf("Expected current session %q, got %v", tt.expectedID, current)
			}
		})
	}
}

// slowBus answers PlaybackStatus only for the playing bus; every other
// player blocks until its context expires
type slowBus struct {
	DBusClient
	names   []string
	playing string

	mu      sync.Mutex
	desktop int
}

func (b *slowBus) ListNames(context.Context) ([]string, error) { return b.names, nil }

func (b *slowBus) GetProperty(ctx context.Context, player, _, prop string) (dbus.Variant, error) {
	if prop == propDesktop {
		b.mu.Lock()
		b.desktop++
		b.mu.Unlock()
		return dbus.Variant{}, errors.New("unknown property")
	}
	if player == b.playing {
		return dbus.MakeVariant(statusPlaying), nil
	}
	<-ctx.Done()
	return dbus.Variant{}, ctx.Err()
}

func TestManager_CurrentSession_UnresponsivePlayers(t *testing.T) {
	for _, hung := range []int{1, 4, 8} {
		t.Run(fmt.Sprintf("%d Unresponsive", hung), func(t *testing.T) {
			names := []string{spotifyBus}
			for i := range hung {
				// sorts before spotify
				names = append(names, fmt.Sprintf("org.mpris.MediaPlayer2.browser.instance%d", i))
			}
			bus := &slowBus{names: names, playing: spotifyBus}
			cfg := domaintest.NewConfig()
			m := newManager(zap.NewNop(), cfg, bus, nil)

			start := time.Now()
			current, err := m.CurrentSession(context.Background())
			elapsed := time.Since(start)

			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if current == nil {
				t.Fatal("Expected the playing player to be current")
			}
			if limit := 2 * cfg.CallTimeout; elapsed > limit {
				t.Errorf("CurrentSession took %v with %d unresponsive players, want under %v", elapsed, hung, limit)
			}

			bus.mu.Lock()
			reads := bus.desktop
			bus.mu.Unlock()
			if reads != 0 {
				t.Errorf("Expected no desktop entry reads while picking, got %d", reads)
			}

			if id := current.SourceAppID(); id != "spotify" {
				t.Errorf("Expected spotify, got %q", id)
			}
		})
	}
}

func TestPlayer_Queries(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := mocks.NewMockDBusClient(ctrl)
	art := &stubArtwork{}

	metadata := dbus.MakeVariant(map[string]dbus.Variant{
		"xesam:title":  dbus.MakeVariant("Stairway to Heaven"),
		"xesam:artist": dbus.MakeVariant([]string{"Led Zeppelin"}),
		"mpris:artUrl": dbus.MakeVariant("file:///tmp/cover.png"),
		"mpris:length": dbus.MakeVariant(int64(482_000_000)),
	})
	m.EXPECT().GetProperty(gomock.Any(), spotifyBus, objectPath, propMetadata).Return(metadata, nil).Times(2)
	m.EXPECT().GetProperty(gomock.Any(), spotifyBus, objectPath, propStatus).Return(dbus.MakeVariant("Paused"), nil)
	m.EXPECT().GetProperty(gomock.Any(), spotifyBus, objectPath, propPosition).Return(dbus.MakeVariant(int64(30_500_000)), nil)

	p := &Player{m: newTestManager(m, art), bus: spotifyBus, appID: "spotify"}
	ctx := context.Background()

	props, err := p.MediaProperties(ctx)
	if err != nil {
		t.Fatalf("MediaProperties: %v", err)
	}
	if props.Title != "Stairway to Heaven" || props.Artist != "Led Zeppelin" {
		t.Errorf("unexpected properties %+v", props)
	}
	if props.Thumbnail == nil || len(art.urls) != 1 || art.urls[0] != "file:///tmp/cover.png" {
		t.Errorf("expected artwork ref for cover, got %v", art.urls)
	}

	info, err := p.PlaybackInfo(ctx)
	if err != nil {
		t.Fatalf("PlaybackInfo: %v", err)
	}
	if info.Status != domain.StatusPaused {
		t.Errorf("expected PAUSED, got %v", info.Status)
	}

	tl, err := p.Timeline(ctx)
	if err != nil {
		t.Fatalf("Timeline: %v", err)
	}
	if tl.Position != 30500*time.Millisecond || tl.End != 482*time.Second {
		t.Errorf("unexpected timeline %+v", tl)
	}
}

func TestPlayer_Queries_Failures(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := mocks.NewMockDBusClient(ctrl)
	m.EXPECT().GetProperty(gomock.Any(), spotifyBus, objectPath, gomock.Any()).
		Return(dbus.Variant{}, fmt.Errorf("connection timeout")).AnyTimes()

	p := &Player{m: newTestManager(m, nil), bus: spotifyBus, appID: "spotify"}
	ctx := context.Background()

	if _, err := p.MediaProperties(ctx); err == nil {
		t.Error("expected MediaProperties error")
	}
	if _, err := p.PlaybackInfo(ctx); err == nil {
		t.Error("expected PlaybackInfo error")
	}
	if _, err := p.Timeline(ctx); !errors.Is(err, errNoTimeline) {
		t.Errorf("expected errNoTimeline, got %v", err)
	}
}

func TestPlayer_MediaProperties_NoTrackLoaded(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := mocks.NewMockDBusClient(ctrl)
	m.EXPECT().GetProperty(gomock.Any(), spotifyBus, objectPath, propMetadata).Return(dbus.MakeVariant(12345), nil)

	p := &Player{m: newTestManager(m, &stubArtwork{}), bus: spotifyBus}
	props, err := p.MediaProperties(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if props.Title != "" || props.Artist != "" || props.Thumbnail != nil {
		t.Errorf("expected empty properties, got %+v", props)
	}
}

func TestPlayer_SetPosition(t *testing.T) {
	trackID := dbus.ObjectPath("/com/spotify/track/6rqhFgbbKwnb9MLmUQDhG6")
	withTrack := dbus.MakeVariant(map[string]dbus.Variant{"mpris:trackid": dbus.MakeVariant(trackID)})

	tests := []struct {
		name        string
		setupMock   func(*mocks.MockDBusClient)
		expectOK    bool
		expectError bool
	}{
		{
			name: "Success",
			setupMock: func(m *mocks.MockDBusClient) {
				m.EXPECT().GetProperty(gomock.Any(), spotifyBus, objectPath, propCanSeek).Return(dbus.MakeVariant(true), nil)
				m.EXPECT().GetProperty(gomock.Any(), spotifyBus, objectPath, propMetadata).Return(withTrack, nil)
				m.EXPECT().Call(gomock.Any(), spotifyBus, objectPath, methodSetPos, trackID, int64(30_500_000)).Return(nil)
			},
			expectOK: true,
		},
		{
			name: "Refused - CanSeek False",
			setupMock: func(m *mocks.MockDBusClient) {
				m.EXPECT().GetProperty(gomock.Any(), spotifyBus, objectPath, propCanSeek).Return(dbus.MakeVariant(false), nil)
			},
		},
		{
			name: "Refused - No Track ID",
			setupMock: func(m *mocks.MockDBusClient) {
				m.EXPECT().GetProperty(gomock.Any(), spotifyBus, objectPath, propCanSeek).Return(dbus.Variant{}, errors.New("unknown"))
				m.EXPECT().GetProperty(gomock.Any(), spotifyBus, objectPath, propMetadata).
					Return(dbus.MakeVariant(map[string]dbus.Variant{}), nil)
			},
		},
		{
			name: "Failure - Call Error",
			setupMock: func(m *mocks.MockDBusClient) {
				m.EXPECT().GetProperty(gomock.Any(), spotifyBus, objectPath, propCanSeek).Return(dbus.MakeVariant(true), nil)
				m.EXPECT().GetProperty(gomock.Any(), spotifyBus, objectPath, propMetadata).Return(withTrack, nil)
				m.EXPECT().Call(gomock.Any(), spotifyBus, objectPath, methodSetPos, gomock.Any(), gomock.Any()).
					Return(errors.New("org.freedesktop.DBus.Error.NoReply"))
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			m := mocks.NewMockDBusClient(ctrl)
			tt.setupMock(m)

			p := &Player{m: newTestManager(m, nil), bus: spotifyBus}
			ok, err := p.SetPosition(context.Background(), 30500*time.Millisecond)
			if tt.expectError != (err != nil) {
				t.Fatalf("expectError=%v, got %v", tt.expectError, err)
			}
			if ok != tt.expectOK {
				t.Errorf("expected ok=%v, got %v", tt.expectOK, ok)
			}
		})
	}
}

func TestProvider_RequestManager(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := mocks.NewMockDBusClient(ctrl)
	m.EXPECT().Close().Return(nil)

	p := NewProvider(zap.NewNop(), domaintest.NewConfig(), nil)
	p.dial = func(context.Context) (DBusClient, error) { return m, nil }

	mgr, err := p.RequestManager(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mgr.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}

	p.dial = func(context.Context) (DBusClient, error) { return nil, errors.New("no session bus") }
	if _, err := p.RequestManager(context.Background()); err == nil {
		t.Error("expected dial error")
	}
}
