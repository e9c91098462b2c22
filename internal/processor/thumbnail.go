package processor

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png" // PNG format support

	"github.com/disintegration/imaging"
	"github.com/genricoloni/mediabridge/internal/domain"
	"go.uber.org/zap"
)

const jpegQuality = 85

// ThumbnailProcessor bounds artwork to a maximum edge length
type ThumbnailProcessor struct {
	logger  *zap.Logger
	maxEdge int
}

// NewThumbnailProcessor creates a processor using the configured edge limit
func NewThumbnailProcessor(logger *zap.Logger, cfg domain.Config) *ThumbnailProcessor {
	return &ThumbnailProcessor{
		logger:  logger,
		maxEdge: cfg.GetThumbnailMaxEdge(),
	}
}

// Process returns artwork ready for the snapshot. With no limit configured,
// or when the image already fits, the original bytes are returned untouched.
// Undecodable data is passed through as well: the consumer may know the format.
func (p *ThumbnailProcessor) Process(data []byte) []byte {
	if p.maxEdge <= 0 || len(data) == 0 {
		return data
	}

	out, err := p.downscale(data)
	if err != nil {
		p.logger.Debug("Keeping original thumbnail", zap.Error(err))
		return data
	}
	return out
}

func (p *ThumbnailProcessor) downscale(data []byte) ([]byte, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image header: %w", err)
	}
	if cfg.Width <= p.maxEdge && cfg.Height <= p.maxEdge {
		return data, nil
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	resized := imaging.Fit(img, p.maxEdge, p.maxEdge, imaging.Lanczos)

	buf := new(bytes.Buffer)
	if err := jpeg.Encode(buf, resized, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("failed to encode thumbnail: %w", err)
	}

	p.logger.Debug("Thumbnail downscaled",
		zap.Int("width", cfg.Width),
		zap.Int("height", cfg.Height),
		zap.Int("bytes", buf.Len()))
	return buf.Bytes(), nil
}
