package platform

import (
	"fmt"

	"github.com/genricoloni/mediabridge/internal/domain"
	"github.com/go-vgo/robotgo"
	"go.uber.org/zap"
)

// robotgo names of the virtual media keys
var keyNames = map[domain.MediaKey]string{
	domain.KeyPlayPause:     "audio_play",
	domain.KeyNextTrack:     "audio_next",
	domain.KeyPreviousTrack: "audio_prev",
}

// RobotKeys injects media keys through robotgo
type RobotKeys struct {
	logger *zap.Logger
	tap    func(key string, args ...interface{}) error
}

// NewKeyInjector creates a key injector backed by robotgo
func NewKeyInjector(logger *zap.Logger) *RobotKeys {
	return &RobotKeys{logger: logger, tap: robotgo.KeyTap}
}

// Tap presses and releases the key
func (k *RobotKeys) Tap(key domain.MediaKey) error {
	name, ok := keyNames[key]
	if !ok {
		return fmt.Errorf("unknown media key %d", key)
	}

	k.logger.Debug("Injecting media key", zap.String("key", key.String()), zap.String("robotgo", name))
	if err := k.tap(name); err != nil {
		return fmt.Errorf("key tap %s failed: %w", name, err)
	}
	return nil
}
