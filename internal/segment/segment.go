// Package segment implements the append-only log files a Bitcask-style
// engine is built from: a single writer bound to the tail segment, and a
// sparse set of positioned readers, one per segment ordinal that exists on
// disk.
package segment

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/iamNilotpal/kvd/internal/record"
	"github.com/iamNilotpal/kvd/pkg/errors"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// FileName renders the on-disk name for a segment ordinal: kvd_<n>.wal.
func FileName(ordinal uint64) string {
	return fmt.Sprintf("kvd_%d.wal", ordinal)
}

// Locator is the byte-precise address of one record: which segment, at
// what offset, spanning how many bytes.
type Locator struct {
	SegmentOrdinal uint64
	Offset         uint64
	Length         uint64
}

// Writer owns the tail file handle and exposes append-and-locate. It wraps
// an append-mode *os.File in a bufio.Writer and maintains its own position
// counter, grounded on iamNilotpal-ignite/internal/storage.Storage's
// activeSegment/size pairing.
type Writer struct {
	ordinal  uint64
	path     string
	fileName string

	file *os.File
	bw   *bufio.Writer
	pos  uint64

	syncOnWrite bool
	log         *zap.SugaredLogger
}

// OpenWriter opens (creating if absent) the segment file for ordinal in
// dataDir, in append mode, and positions pos at the file's current length —
// not zero — so re-opening a non-empty tail resumes correctly.
func OpenWriter(dataDir string, ordinal uint64, syncOnWrite bool, log *zap.SugaredLogger) (*Writer, error) {
	fileName := FileName(ordinal)
	path := filepath.Join(dataDir, fileName)

	file, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR|os.O_APPEND, 0644)
	if err != nil {
		return nil, errors.ClassifyFileOpenError(err, path, fileName)
	}

	pos, err := file.Seek(0, io.SeekEnd)
	if err != nil {
		file.Close()
		return nil, errors.NewStorageError(err, errors.ErrorCodeIO, "failed to seek to end of segment file").
			WithPath(path).
			WithFileName(fileName)
	}

	log.Infow("opened segment writer", "ordinal", ordinal, "path", path, "pos", pos)

	return &Writer{
		ordinal:     ordinal,
		path:        path,
		fileName:    fileName,
		file:        file,
		bw:          bufio.NewWriter(file),
		pos:         uint64(pos),
		syncOnWrite: syncOnWrite,
		log:         log,
	}, nil
}

// Ordinal returns the segment ordinal this writer is bound to.
func (w *Writer) Ordinal() uint64 {
	return w.ordinal
}

// Position returns the current logical byte offset in the tail.
func (w *Writer) Position() uint64 {
	return w.pos
}

// SyncOnWrite reports whether Append fsyncs after every record.
func (w *Writer) SyncOnWrite() bool {
	return w.syncOnWrite
}

// IsFull reports whether the writer's current position has reached or
// passed capacity. Capacity is a soft cap: Append never splits a record
// across segments, so a single record may push Position() past capacity;
// the next Append will roll to a new segment first.
func (w *Writer) IsFull(capacity uint64) bool {
	return w.pos >= capacity
}

// Append serializes rec, writes it in full, flushes to the OS, and — if
// syncOnWrite is set — fsyncs. It returns the locator identifying where the
// record landed.
func (w *Writer) Append(rec record.Record) (Locator, error) {
	buf := record.Marshal(rec)
	offset := w.pos

	n, err := w.bw.Write(buf)
	w.pos += uint64(n)
	if err != nil {
		return Locator{}, errors.NewStorageError(err, errors.ErrorCodeIO, "failed to write record to segment").
			WithPath(w.path).
			WithFileName(w.fileName).
			WithOffset(offset)
	}

	if err := w.bw.Flush(); err != nil {
		return Locator{}, errors.ClassifySyncError(err, w.fileName, w.path, offset)
	}

	if w.syncOnWrite {
		if err := w.file.Sync(); err != nil {
			return Locator{}, errors.ClassifySyncError(err, w.fileName, w.path, offset)
		}
	}

	return Locator{SegmentOrdinal: w.ordinal, Offset: offset, Length: uint64(len(buf))}, nil
}

// Close flushes any buffered bytes and closes the underlying file handle.
func (w *Writer) Close() error {
	var err error
	if ferr := w.bw.Flush(); ferr != nil {
		err = multierr.Append(err, errors.ClassifySyncError(ferr, w.fileName, w.path, w.pos))
	}
	if cerr := w.file.Close(); cerr != nil {
		err = multierr.Append(err, errors.NewStorageError(cerr, errors.ErrorCodeIO, "failed to close segment file").
			WithPath(w.path).
			WithFileName(w.fileName))
	}
	return err
}

// ReaderSet is a sparse, indexed collection of positioned readers, one per
// existing segment ordinal, grounded on
// iamNilotpal-ignite/internal/storage's single-active-file model
// generalized to hold one handle per segment instead of only the tail.
type ReaderSet struct {
	dataDir string
	files   map[uint64]*os.File
	log     *zap.SugaredLogger
}

// NewReaderSet creates an empty reader set rooted at dataDir.
func NewReaderSet(dataDir string, log *zap.SugaredLogger) *ReaderSet {
	return &ReaderSet{dataDir: dataDir, files: make(map[uint64]*os.File), log: log}
}

// Register installs file as the reader for ordinal, replacing any reader
// already registered there. Open is the variant that opens the file itself.
func (rs *ReaderSet) Register(ordinal uint64, file *os.File) {
	rs.files[ordinal] = file
}

// Open opens (read-only) and registers the segment file for ordinal.
func (rs *ReaderSet) Open(ordinal uint64) error {
	fileName := FileName(ordinal)
	path := filepath.Join(rs.dataDir, fileName)

	file, err := os.Open(path)
	if err != nil {
		return errors.ClassifyFileOpenError(err, path, fileName)
	}

	rs.Register(ordinal, file)
	return nil
}

// ReadAt reads exactly loc.Length bytes at loc.Offset from the reader for
// loc.SegmentOrdinal, using a positional read that leaves the file's cursor
// where it was, and decodes them as a record.
func (rs *ReaderSet) ReadAt(loc Locator) (record.Record, error) {
	file, ok := rs.files[loc.SegmentOrdinal]
	if !ok {
		return record.Record{}, errors.NewStorageError(nil, errors.ErrorCodeFileNotFound, "no reader registered for segment").
			WithSegmentOrdinal(loc.SegmentOrdinal)
	}

	buf := make([]byte, loc.Length)
	if _, err := file.ReadAt(buf, int64(loc.Offset)); err != nil {
		return record.Record{}, errors.NewStorageError(err, errors.ErrorCodeIO, "failed to read record from segment").
			WithSegmentOrdinal(loc.SegmentOrdinal).
			WithOffset(loc.Offset)
	}

	rec, _, err := record.DecodeFrom(bytes.NewReader(buf))
	if err != nil {
		return record.Record{}, decorateSerdeError(err, loc.SegmentOrdinal, loc.Offset)
	}
	return rec, nil
}

// Visit is the callback Stream invokes once per successfully decoded
// record: offset is the record's pre-decode byte offset in the segment. A
// non-nil return stops Stream, which returns that error. Stream never calls
// Visit after a decode error.
type Visit func(offset uint64, rec record.Record) error

// Stream positions the reader for ordinal at byte 0 and invokes fn for
// every record in on-disk order, stopping cleanly at end-of-file. A short
// trailing record is reported through the returned error, not swallowed —
// recovery decides whether to tolerate it.
func (rs *ReaderSet) Stream(ordinal uint64, fn Visit) error {
	file, ok := rs.files[ordinal]
	if !ok {
		return errors.NewStorageError(nil, errors.ErrorCodeFileNotFound, "no reader registered for segment").
			WithSegmentOrdinal(ordinal)
	}

	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return errors.NewStorageError(err, errors.ErrorCodeIO, "failed to seek to start of segment").
			WithSegmentOrdinal(ordinal)
	}

	r := bufio.NewReader(file)
	var offset uint64
	for {
		rec, n, err := record.DecodeFrom(r)
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return decorateSerdeError(err, ordinal, offset)
		}

		if err := fn(offset, rec); err != nil {
			return err
		}
		offset += uint64(n)
	}
}

// Close closes every registered reader, aggregating per-file errors.
func (rs *ReaderSet) Close() error {
	var err error
	for ordinal, file := range rs.files {
		if cerr := file.Close(); cerr != nil {
			err = multierr.Append(err, errors.NewStorageError(cerr, errors.ErrorCodeIO, "failed to close segment reader").
				WithSegmentOrdinal(ordinal))
		}
	}
	return err
}

func decorateSerdeError(err error, ordinal, offset uint64) error {
	if se, ok := errors.AsStorageError(err); ok {
		return se.WithSegmentOrdinal(ordinal).WithOffset(offset)
	}
	return err
}
