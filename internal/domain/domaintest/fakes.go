// Package domaintest provides hand-written fakes of the domain interfaces
// for tests that need scripted sessions rather than call expectations.
package domaintest

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"github.com/genricoloni/mediabridge/internal/domain"
)

// Config is a domain.Config with short timeouts suitable for tests
type Config struct {
	PollInterval     time.Duration
	ManagerTimeout   time.Duration
	MetadataTimeout  time.Duration
	ThumbnailTimeout time.Duration
	CallTimeout      time.Duration
	ThumbnailMaxEdge int
	LockName         string
}

// NewConfig returns a Config with millisecond-scale timeouts
func NewConfig() *Config {
	return &Config{
		PollInterval:     20 * time.Millisecond,
		ManagerTimeout:   100 * time.Millisecond,
		MetadataTimeout:  50 * time.Millisecond,
		ThumbnailTimeout: 50 * time.Millisecond,
		CallTimeout:      50 * time.Millisecond,
		LockName:         "mediabridge.test",
	}
}

func (c *Config) GetPollInterval() time.Duration     { return c.PollInterval }
func (c *Config) GetManagerTimeout() time.Duration   { return c.ManagerTimeout }
func (c *Config) GetMetadataTimeout() time.Duration  { return c.MetadataTimeout }
func (c *Config) GetThumbnailTimeout() time.Duration { return c.ThumbnailTimeout }
func (c *Config) GetCallTimeout() time.Duration      { return c.CallTimeout }
func (c *Config) GetThumbnailMaxEdge() int           { return c.ThumbnailMaxEdge }
func (c *Config) GetLockName() string                { return c.LockName }

// Hang blocks until ctx is done and returns its error.
// Use it in Session funcs to simulate a source that never answers.
func Hang(ctx context.Context) error {
	<-ctx.Done()
	return ctx.Err()
}

// Session is a scripted domain.Session. Nil funcs return zero values.
type Session struct {
	ID              string
	PropertiesFunc  func(ctx context.Context) (*domain.MediaProperties, error)
	PlaybackFunc    func(ctx context.Context) (*domain.PlaybackInfo, error)
	TimelineFunc    func(ctx context.Context) (*domain.Timeline, error)
	SetPositionFunc func(ctx context.Context, position time.Duration) (bool, error)

	mu        sync.Mutex
	positions []time.Duration
}

func (s *Session) SourceAppID() string { return s.ID }

func (s *Session) MediaProperties(ctx context.Context) (*domain.MediaProperties, error) {
	if s.PropertiesFunc == nil {
		return nil, nil
	}
	return s.PropertiesFunc(ctx)
}

func (s *Session) PlaybackInfo(ctx context.Context) (*domain.PlaybackInfo, error) {
	if s.PlaybackFunc == nil {
		return nil, nil
	}
	return s.PlaybackFunc(ctx)
}

func (s *Session) Timeline(ctx context.Context) (*domain.Timeline, error) {
	if s.TimelineFunc == nil {
		return nil, nil
	}
	return s.TimelineFunc(ctx)
}

func (s *Session) SetPosition(ctx context.Context, position time.Duration) (bool, error) {
	s.mu.Lock()
	s.positions = append(s.positions, position)
	s.mu.Unlock()
	if s.SetPositionFunc == nil {
		return true, nil
	}
	return s.SetPositionFunc(ctx, position)
}

// Positions returns every position passed to SetPosition
func (s *Session) Positions() []time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]time.Duration(nil), s.positions...)
}

// Manager is a scripted domain.SessionManager
type Manager struct {
	Current    domain.Session
	CurrentErr error
	List       []domain.Session
	ListErr    error

	mu     sync.Mutex
	closed int
}

func (m *Manager) CurrentSession(context.Context) (domain.Session, error) {
	return m.Current, m.CurrentErr
}

func (m *Manager) Sessions(context.Context) ([]domain.Session, error) {
	return m.List, m.ListErr
}

func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed++
	return nil
}

// Closed returns how many times Close was called
func (m *Manager) Closed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

// Provider is a scripted domain.ManagerProvider
type Provider struct {
	Manager domain.SessionManager
	Err     error
	// Block makes RequestManager ignore ctx and wait on the channel
	Block chan struct{}

	mu    sync.Mutex
	calls int
}

// ErrNoManager is returned by a Provider without a Manager
var ErrNoManager = errors.New("no session manager")

func (p *Provider) RequestManager(context.Context) (domain.SessionManager, error) {
	p.mu.Lock()
	p.calls++
	p.mu.Unlock()

	if p.Block != nil {
		<-p.Block
	}
	if p.Err != nil {
		return nil, p.Err
	}
	if p.Manager == nil {
		return nil, ErrNoManager
	}
	return p.Manager, nil
}

// Calls returns how many times RequestManager was called
func (p *Provider) Calls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls
}

// Thumbnail is a ThumbnailRef over fixed bytes
type Thumbnail struct {
	Data    []byte
	OpenErr error
	// Hang makes OpenRead block until ctx is done
	Hang bool
}

func (t *Thumbnail) OpenRead(ctx context.Context) (domain.ThumbnailStream, error) {
	if t.Hang {
		return nil, Hang(ctx)
	}
	if t.OpenErr != nil {
		return nil, t.OpenErr
	}
	return &stream{Reader: bytes.NewReader(t.Data), size: int64(len(t.Data))}, nil
}

type stream struct {
	io.Reader
	size int64
}

func (s *stream) Close() error { return nil }
func (s *stream) Size() int64  { return s.size }
