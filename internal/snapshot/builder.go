// Package snapshot turns a media session into a fully populated MediaSnapshot.
package snapshot

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"

	"github.com/genricoloni/mediabridge/internal/domain"
	"github.com/genricoloni/mediabridge/internal/timebox"
	"go.uber.org/zap"
)

// Thumbnailer post-processes raw artwork bytes
type Thumbnailer interface {
	Process(data []byte) []byte
}

// Builder queries a session step by step. Each step has its own deadline and
// a failed step only leaves its own fields at their defaults.
type Builder struct {
	logger *zap.Logger
	cfg    domain.Config
	thumbs Thumbnailer
}

// NewBuilder creates a snapshot builder
func NewBuilder(logger *zap.Logger, cfg domain.Config, thumbs Thumbnailer) *Builder {
	return &Builder{
		logger: logger,
		cfg:    cfg,
		thumbs: thumbs,
	}
}

// Build never fails: a nil session or any failing query yields defaults
func (b *Builder) Build(ctx context.Context, s domain.Session) domain.MediaSnapshot {
	snap := domain.EmptySnapshot()
	if s == nil {
		return snap
	}

	props, err := timebox.Run(ctx, b.cfg.GetMetadataTimeout(), s.MediaProperties, nil)
	if err != nil {
		b.logger.Debug("Media properties unavailable", zap.String("source", s.SourceAppID()), zap.Error(err))
	} else if props != nil {
		snap.Artist = props.Artist
		snap.Title = props.Title
	}

	info, err := timebox.Run(ctx, b.cfg.GetCallTimeout(), s.PlaybackInfo, nil)
	if err != nil {
		b.logger.Debug("Playback info unavailable", zap.Error(err))
	} else if info != nil {
		snap.Status = info.Status
	}

	tl, err := timebox.Run(ctx, b.cfg.GetCallTimeout(), s.Timeline, nil)
	if err != nil {
		b.logger.Debug("Timeline unavailable", zap.Error(err))
	} else if tl != nil {
		snap.Position = tl.Position.Seconds()
		snap.Duration = tl.End.Seconds()
	}

	if props != nil && props.Thumbnail != nil {
		snap.Thumbnail = b.thumbnail(ctx, props.Thumbnail)
	}

	return snap.Normalize()
}

// thumbnail opens and reads the artwork within the thumbnail timeout and
// returns it base64 encoded, or "" on any failure
func (b *Builder) thumbnail(ctx context.Context, ref domain.ThumbnailRef) string {
	data, err := timebox.Run(ctx, b.cfg.GetThumbnailTimeout(), func(ctx context.Context) ([]byte, error) {
		return readThumbnail(ctx, ref)
	}, nil)
	if err != nil {
		b.logger.Debug("Thumbnail unavailable", zap.Error(err))
		return ""
	}
	if len(data) == 0 {
		return ""
	}

	if b.thumbs != nil {
		data = b.thumbs.Process(data)
	}
	return base64.StdEncoding.EncodeToString(data)
}

func readThumbnail(ctx context.Context, ref domain.ThumbnailRef) ([]byte, error) {
	stream, err := ref.OpenRead(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to open thumbnail: %w", err)
	}
	defer stream.Close()

	if stream.Size() <= 0 {
		return nil, nil
	}

	data, err := io.ReadAll(io.LimitReader(stream, stream.Size()))
	if err != nil {
		return nil, fmt.Errorf("failed to read thumbnail: %w", err)
	}
	return data, nil
}
