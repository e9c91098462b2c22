package platform

import (
	"context"
	"fmt"
	"strings"

	"github.com/genricoloni/mediabridge/internal/domain"
	"github.com/shirou/gopsutil/v4/process"
	"go.uber.org/zap"
)

// ProcessList enumerates processes through gopsutil
type ProcessList struct {
	logger *zap.Logger
	list   func(ctx context.Context) ([]*process.Process, error)
}

// NewProcessTable creates a gopsutil backed process table
func NewProcessTable(logger *zap.Logger) *ProcessList {
	return &ProcessList{logger: logger, list: process.ProcessesWithContext}
}

// FindByName returns every process whose name equals name, ignoring case
// and a trailing ".exe" on either side
func (t *ProcessList) FindByName(ctx context.Context, name string) ([]domain.Process, error) {
	want := normalizeName(name)
	if want == "" {
		return nil, nil
	}

	procs, err := t.list(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list processes: %w", err)
	}

	var matches []domain.Process
	for _, p := range procs {
		// Processes exit or deny access while we iterate
		n, err := p.NameWithContext(ctx)
		if err != nil {
			continue
		}
		if normalizeName(n) == want {
			matches = append(matches, domain.Process{PID: p.Pid, Name: n})
		}
	}

	t.logger.Debug("Process lookup", zap.String("name", name), zap.Int("matches", len(matches)))
	return matches, nil
}

func normalizeName(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	return strings.TrimSuffix(n, ".exe")
}
