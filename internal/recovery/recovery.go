// Package recovery implements the bootstrap procedure that runs once, at
// Engine.Open: turn whatever segments exist in a data directory into a
// consistent keydir, plus a writer and reader set ready for continued
// operation.
//
// Grounded on iamNilotpal-ignite/internal/storage.New's latest-segment
// discovery and original_source/src/store.rs's FileStore::open
// (get_sorted_file_number_list / is_wal_file / new_wal_file), generalized
// from "one active file" to "replay every segment into a keydir".
package recovery

import (
	"os"
	"path/filepath"

	"github.com/iamNilotpal/kvd/internal/keydir"
	"github.com/iamNilotpal/kvd/internal/record"
	"github.com/iamNilotpal/kvd/internal/segment"
	"github.com/iamNilotpal/kvd/pkg/errors"
	"github.com/iamNilotpal/kvd/pkg/filesys"
	"github.com/iamNilotpal/kvd/pkg/seginfo"
	"go.uber.org/zap"
)

// Result bundles everything Open needs to hand off to the engine: the
// reconstructed keydir, a reader registered for every segment on disk, a
// writer bound to the tail, and the tail's ordinal.
type Result struct {
	Keydir      *keydir.Keydir
	Readers     *segment.ReaderSet
	Writer      *segment.Writer
	TailOrdinal uint64
}

// Run performs the full bootstrap procedure described in the component
// design: ensure dataDir exists, discover segments, replay each in ordinal
// order into a fresh keydir, and open a writer against the tail.
//
// syncOnWrite is threaded into the tail writer returned in Result (both
// the empty-dir bootstrap and the existing-dir recovery path), so a
// configured SyncOnWrite policy takes effect immediately rather than only
// after the first segment roll-over.
//
// When tolerateTruncatedTail is true, a short or corrupt final record in
// the tail segment is truncated away instead of failing Run with a Serde
// error; every other segment still fails recovery on any decode error,
// since only the tail can have been left mid-write by a crash.
func Run(dataDir string, syncOnWrite, tolerateTruncatedTail bool, log *zap.SugaredLogger) (*Result, error) {
	if err := filesys.CreateDir(dataDir, 0755, true); err != nil {
		return nil, errors.ClassifyDirectoryCreationError(err, dataDir)
	}

	ordinals, err := seginfo.ListSegmentOrdinals(dataDir)
	if err != nil {
		return nil, errors.NewStorageError(err, errors.ErrorCodeIO, "failed to list data directory").
			WithPath(dataDir)
	}

	kd := keydir.New()
	readers := segment.NewReaderSet(dataDir, log)

	if len(ordinals) == 0 {
		log.Infow("no segments found, bootstrapping fresh data directory", "dataDir", dataDir)

		writer, err := segment.OpenWriter(dataDir, 0, syncOnWrite, log)
		if err != nil {
			return nil, err
		}
		if err := readers.Open(0); err != nil {
			writer.Close()
			return nil, err
		}

		return &Result{Keydir: kd, Readers: readers, Writer: writer, TailOrdinal: 0}, nil
	}

	for _, ordinal := range ordinals {
		if err := readers.Open(ordinal); err != nil {
			readers.Close()
			return nil, err
		}
	}

	tailOrdinal := ordinals[len(ordinals)-1]

	for _, ordinal := range ordinals {
		isTail := ordinal == tailOrdinal

		replayErr := readers.Stream(ordinal, func(offset uint64, rec record.Record) error {
			loc := segment.Locator{SegmentOrdinal: ordinal, Offset: offset, Length: record.EncodedLen(rec)}
			switch rec.Kind {
			case record.KindSet:
				kd.Insert(rec.Key, loc)
			case record.KindDel:
				kd.Remove(rec.Key)
			}
			return nil
		})

		if replayErr == nil {
			continue
		}

		if isTail && tolerateTruncatedTail && errors.IsStorageError(replayErr) {
			log.Warnw("truncating corrupt tail record during recovery",
				"segment", ordinal, "path", filepath.Join(dataDir, seginfo.GenerateName(ordinal)), "error", replayErr)

			if err := truncateTail(dataDir, ordinal, readers, kd, log); err != nil {
				readers.Close()
				return nil, err
			}
			continue
		}

		readers.Close()
		return nil, replayErr
	}

	writer, err := segment.OpenWriter(dataDir, tailOrdinal, syncOnWrite, log)
	if err != nil {
		readers.Close()
		return nil, err
	}

	return &Result{Keydir: kd, Readers: readers, Writer: writer, TailOrdinal: tailOrdinal}, nil
}

// truncateTail re-streams ordinal, this time stopping at and discarding the
// first record that fails to decode, then truncates the on-disk file to
// that boundary so the writer that will be opened against it next starts
// clean. The keydir is populated from the records that decoded fine.
func truncateTail(dataDir string, ordinal uint64, readers *segment.ReaderSet, kd *keydir.Keydir, log *zap.SugaredLogger) error {
	var validLen uint64

	_ = readers.Stream(ordinal, func(offset uint64, rec record.Record) error {
		loc := segment.Locator{SegmentOrdinal: ordinal, Offset: offset, Length: record.EncodedLen(rec)}
		switch rec.Kind {
		case record.KindSet:
			kd.Insert(rec.Key, loc)
		case record.KindDel:
			kd.Remove(rec.Key)
		}
		validLen = offset + record.EncodedLen(rec)
		return nil
	})

	path := filepath.Join(dataDir, seginfo.GenerateName(ordinal))
	if err := truncateFile(path, int64(validLen)); err != nil {
		return errors.NewStorageError(err, errors.ErrorCodeIO, "failed to truncate corrupt tail segment").
			WithPath(path).
			WithSegmentOrdinal(ordinal).
			WithOffset(validLen)
	}

	log.Warnw("truncated corrupt tail segment", "segment", ordinal, "path", path, "validLength", validLen)
	return nil
}

func truncateFile(path string, size int64) error {
	return os.Truncate(path, size)
}
