package xlsx

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"production/internal/core/domain/model/history"
	"production/internal/core/domain/services"
)

// WriterSink streams the workbook to an io.Writer, e.g. an HTTP response.
type WriterSink struct {
	w io.Writer
}

func NewWriterSink(w io.Writer) *WriterSink {
	return &WriterSink{w: w}
}

// Write implements ports.ReportSink.
func (s *WriterSink) Write(_ context.Context, table services.ReportTable, records []history.Record) error {
	f, err := Render(table, records)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	_, err = f.WriteTo(s.w)
	return err
}

// DirSink saves each report as a new timestamped file in a directory.
type DirSink struct {
	dir string
	now func() time.Time

	mu   sync.Mutex
	last string
}

// NewDirSink creates the sink. now defaults to time.Now.
func NewDirSink(dir string, now func() time.Time) *DirSink {
	if now == nil {
		now = time.Now
	}
	return &DirSink{dir: dir, now: now}
}

// Write implements ports.ReportSink.
func (s *DirSink) Write(_ context.Context, table services.ReportTable, records []history.Record) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create report dir: %w", err)
	}

	f, err := Render(table, records)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	path := filepath.Join(s.dir, FileName(s.now()))
	if err = f.SaveAs(path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}

	s.mu.Lock()
	s.last = path
	s.mu.Unlock()

	return nil
}

// LastPath returns the file written by the most recent successful Write.
func (s *DirSink) LastPath() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}

// FileName is the name used for a report generated at t.
func FileName(t time.Time) string {
	return "efficiency-report-" + t.UTC().Format("20060102-150405") + ".xlsx"
}
