package repository

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"go.uber.org/zap"

	appErrors "github.com/noah-isme/tcc-admin-api/pkg/errors"
	"github.com/noah-isme/tcc-admin-api/pkg/metrics"
)

// Filestore owns one entity's backing file. Every read-modify-write runs under
// the store's mutex, so id generation and the subsequent append of the same
// operation form one critical section.
type Filestore struct {
	path   string
	entity string

	mu      sync.Mutex
	logger  *zap.Logger
	metrics *metrics.Service
}

// NewFilestore wraps the file at path. The entity name labels log lines and
// metrics only.
func NewFilestore(path, entity string, logger *zap.Logger, m *metrics.Service) *Filestore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Filestore{path: path, entity: entity, logger: logger, metrics: m}
}

// Path returns the backing file path.
func (f *Filestore) Path() string {
	return f.path
}

// ReadLines returns the file's non-blank lines. A missing file yields an
// empty slice: read paths expect the bootstrap collaborator to have seeded
// the file, but tolerate its absence.
func (f *Filestore) ReadLines() ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.readLocked()
}

func (f *Filestore) readLocked() ([]string, error) {
	raw, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, appErrors.Wrap(err, appErrors.ErrIO.Code, appErrors.ErrIO.Kind,
			fmt.Sprintf("read %s file", f.entity))
	}
	var lines []string
	for _, line := range strings.Split(string(raw), "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines, nil
}

// WriteLines replaces the file's entire contents. The new content is written
// to a sibling temp file, synced, then renamed over the destination in a
// single step, so a failure at any point leaves the original file untouched.
func (f *Filestore) WriteLines(lines []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.writeLocked(lines)
}

func (f *Filestore) writeLocked(lines []string) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		f.metrics.ObserveRewrite(f.entity, false)
		return appErrors.Wrap(err, appErrors.ErrIO.Code, appErrors.ErrIO.Kind,
			fmt.Sprintf("prepare %s directory", f.entity))
	}
	tmp, err := os.CreateTemp(filepath.Dir(f.path), "."+filepath.Base(f.path)+".tmp-*")
	if err != nil {
		f.metrics.ObserveRewrite(f.entity, false)
		return appErrors.Wrap(err, appErrors.ErrIO.Code, appErrors.ErrIO.Kind,
			fmt.Sprintf("create %s temp file", f.entity))
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	content := ""
	if len(lines) > 0 {
		content = strings.Join(lines, "\n") + "\n"
	}
	if _, err := tmp.WriteString(content); err != nil {
		_ = tmp.Close()
		f.metrics.ObserveRewrite(f.entity, false)
		return appErrors.Wrap(err, appErrors.ErrIO.Code, appErrors.ErrIO.Kind,
			fmt.Sprintf("write %s temp file", f.entity))
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		f.metrics.ObserveRewrite(f.entity, false)
		return appErrors.Wrap(err, appErrors.ErrIO.Code, appErrors.ErrIO.Kind,
			fmt.Sprintf("sync %s temp file", f.entity))
	}
	if err := tmp.Close(); err != nil {
		f.metrics.ObserveRewrite(f.entity, false)
		return appErrors.Wrap(err, appErrors.ErrIO.Code, appErrors.ErrIO.Kind,
			fmt.Sprintf("close %s temp file", f.entity))
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		f.metrics.ObserveRewrite(f.entity, false)
		return appErrors.Wrap(err, appErrors.ErrIO.Code, appErrors.ErrIO.Kind,
			fmt.Sprintf("replace %s file", f.entity))
	}
	f.metrics.ObserveRewrite(f.entity, true)
	return nil
}

// AppendLine adds one record line to the end of the file.
func (f *Filestore) AppendLine(line string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.appendLocked(line)
}

func (f *Filestore) appendLocked(line string) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return appErrors.Wrap(err, appErrors.ErrIO.Code, appErrors.ErrIO.Kind,
			fmt.Sprintf("prepare %s directory", f.entity))
	}
	file, err := os.OpenFile(f.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrIO.Code, appErrors.ErrIO.Kind,
			fmt.Sprintf("open %s file for append", f.entity))
	}
	defer file.Close() //nolint:errcheck
	if _, err := file.WriteString(line + "\n"); err != nil {
		return appErrors.Wrap(err, appErrors.ErrIO.Code, appErrors.ErrIO.Kind,
			fmt.Sprintf("append %s record", f.entity))
	}
	return nil
}

// Update runs transform over the current lines under the store lock and,
// when transform reports a change, rewrites the file atomically. transform
// returns the new line set, whether anything changed, and an optional error
// that aborts the update before any write.
func (f *Filestore) Update(transform func(lines []string) ([]string, bool, error)) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	lines, err := f.readLocked()
	if err != nil {
		return false, err
	}
	next, changed, err := transform(lines)
	if err != nil {
		return false, err
	}
	if !changed {
		return false, nil
	}
	if err := f.writeLocked(next); err != nil {
		return false, err
	}
	return true, nil
}

// ReplaceLine swaps the first line matching match for newLine. Returns false
// when no line matched.
func (f *Filestore) ReplaceLine(match func(line string) bool, newLine string) (bool, error) {
	return f.Update(func(lines []string) ([]string, bool, error) {
		for i, line := range lines {
			if match(line) {
				out := make([]string, len(lines))
				copy(out, lines)
				out[i] = newLine
				return out, true, nil
			}
		}
		return lines, false, nil
	})
}

// DeleteLine removes the first line matching match. Returns false when no
// line matched.
func (f *Filestore) DeleteLine(match func(line string) bool) (bool, error) {
	return f.Update(func(lines []string) ([]string, bool, error) {
		for i, line := range lines {
			if match(line) {
				out := make([]string, 0, len(lines)-1)
				out = append(out, lines[:i]...)
				out = append(out, lines[i+1:]...)
				return out, true, nil
			}
		}
		return lines, false, nil
	})
}

// observeLoad reports one load outcome to the metrics service.
func (f *Filestore) observeLoad(decoded, skipped int) {
	f.metrics.ObserveLoad(f.entity, decoded, skipped)
}

// warnSkipped logs one dropped malformed line.
func (f *Filestore) warnSkipped(err error) {
	f.logger.Warn("skipping malformed record",
		zap.String("entity", f.entity),
		zap.String("file", f.path),
		zap.Error(err),
	)
}
