// Package telemetry records one CSV row per simulation frame and summarizes
// frame timing.
package telemetry

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/gocarina/gocsv"
	"github.com/klauspost/compress/zstd"

	"github.com/opd-ai/go-asteroids/pkg/event"
)

// zstdExt selects compressed output.
const zstdExt = ".zst"

// FrameRecord is one row of frame telemetry.
type FrameRecord struct {
	Tick      uint64  `csv:"tick"`
	Dt        float64 `csv:"dt"`
	StepUS    int64   `csv:"step_us"`
	Entities  int     `csv:"entities"`
	Asteroids int     `csv:"asteroids"`
	Bullets   int     `csv:"bullets"`
	Overlaps  int     `csv:"overlaps"`
	Spawned   int     `csv:"spawned"`
	Removed   int     `csv:"removed"`
}

// RecordFromEvent converts a frame summary to a row.
func RecordFromEvent(e *event.FrameEvent) FrameRecord {
	return FrameRecord{
		Tick:      e.Tick,
		Dt:        e.Dt,
		StepUS:    e.Elapsed.Microseconds(),
		Entities:  e.Entities,
		Asteroids: e.Asteroids,
		Bullets:   e.Bullets,
		Overlaps:  e.Overlaps,
		Spawned:   e.Spawned,
		Removed:   e.Removed,
	}
}

// Recorder writes FrameRecords as CSV and keeps them for Summary.
type Recorder struct {
	mu            sync.Mutex
	w             *bufio.Writer
	closers       []io.Closer
	headerWritten bool
	records       []FrameRecord
	err           error
	sub           *event.Subscription
}

// NewRecorder creates path and records into it. A ".zst" suffix
// compresses the output with zstd.
func NewRecorder(path string) (*Recorder, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating telemetry directory: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", filepath.Base(path), err)
	}

	if !strings.EqualFold(filepath.Ext(path), zstdExt) {
		r := NewRecorderWithWriter(f)
		r.closers = append(r.closers, f)
		return r, nil
	}

	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("creating zstd encoder: %w", err)
	}
	r := NewRecorderWithWriter(enc)
	// Encoder first so its frame is complete before the file closes.
	r.closers = append(r.closers, enc, f)
	return r, nil
}

// NewRecorderWithWriter records into w. Closing the recorder flushes but
// does not close w.
func NewRecorderWithWriter(w io.Writer) *Recorder {
	return &Recorder{w: bufio.NewWriter(w)}
}

// Attach subscribes the recorder to frame summaries on bus.
func (r *Recorder) Attach(bus *event.Bus) {
	r.sub = bus.Subscribe(event.FrameCompleted, func(e event.Event) {
		if frame, ok := e.(*event.FrameEvent); ok {
			r.Record(RecordFromEvent(frame))
		}
	})
}

// Record appends one row. The first write error is kept and reported by
// Err and Close; later rows are still kept for Summary.
func (r *Recorder) Record(rec FrameRecord) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.records = append(r.records, rec)
	if r.err != nil {
		return
	}

	rows := []FrameRecord{rec}
	var err error
	if !r.headerWritten {
		err = gocsv.Marshal(rows, r.w)
		r.headerWritten = true
	} else {
		err = gocsv.MarshalWithoutHeaders(rows, r.w)
	}
	if err != nil {
		r.err = fmt.Errorf("writing telemetry: %w", err)
	}
}

// Records returns a copy of every recorded row.
func (r *Recorder) Records() []FrameRecord {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]FrameRecord, len(r.records))
	copy(out, r.records)
	return out
}

// Summary summarizes every recorded row.
func (r *Recorder) Summary() Summary {
	return Summarize(r.Records())
}

// Err returns the first write error, if any.
func (r *Recorder) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}

// Close detaches from the bus, flushes buffered rows and closes any files
// the recorder opened.
func (r *Recorder) Close() error {
	if r.sub != nil {
		r.sub.Cancel()
		r.sub = nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	errs := []error{r.err}
	if err := r.w.Flush(); err != nil {
		errs = append(errs, fmt.Errorf("flushing telemetry: %w", err))
	}
	for _, c := range r.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, fmt.Errorf("closing telemetry: %w", err))
		}
	}
	r.closers = nil
	return errors.Join(errs...)
}

// ReadRecords loads rows written by a Recorder, decompressing ".zst" files.
func ReadRecords(path string) ([]FrameRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", filepath.Base(path), err)
	}
	defer f.Close()

	var in io.Reader = f
	if strings.EqualFold(filepath.Ext(path), zstdExt) {
		dec, err := zstd.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("creating zstd decoder: %w", err)
		}
		defer dec.Close()
		in = dec
	}

	var records []FrameRecord
	if err := gocsv.Unmarshal(in, &records); err != nil {
		return nil, fmt.Errorf("reading telemetry: %w", err)
	}
	return records, nil
}
