// Package record implements the on-disk encoding for a single Bitcask
// entry: a self-delimiting binary blob a streaming decoder can recover
// together with the exact number of bytes it consumed, which is what the
// segment writer needs to hand back a record locator.
package record

import (
	"encoding/binary"
	"hash/crc32"
	"io"

	"github.com/iamNilotpal/kvd/pkg/errors"
)

// Kind distinguishes a Set assertion from a Del tombstone.
type Kind uint8

const (
	// KindSet asserts that a key now maps to a value.
	KindSet Kind = 0x01
	// KindDel asserts that a key is removed.
	KindDel Kind = 0x02
)

// String renders Kind for logging.
func (k Kind) String() string {
	switch k {
	case KindSet:
		return "Set"
	case KindDel:
		return "Del"
	default:
		return "Unknown"
	}
}

// headerLen is totalLen(4) + tag(1) + keyLen(4) + valLen(4) + crc32(4).
const headerLen = 17

// Record is the decoded form of a single entry.
type Record struct {
	Kind  Kind
	Key   []byte
	Value []byte
}

// NewSet builds a Set record. key and value are retained, not copied.
func NewSet(key, value []byte) Record {
	return Record{Kind: KindSet, Key: key, Value: value}
}

// NewDel builds a Del record. key is retained, not copied.
func NewDel(key []byte) Record {
	return Record{Kind: KindDel, Key: key}
}

// EncodedLen returns the total number of bytes Marshal produces for r.
func EncodedLen(r Record) uint32 {
	return headerLen + uint32(len(r.Key)) + uint32(len(r.Value))
}

// Marshal serializes r into the wire layout described in the data model:
// totalLen | tag | keyLen | valLen | crc32 | key | value, all little-endian.
func Marshal(r Record) []byte {
	total := EncodedLen(r)
	buf := make([]byte, total)

	binary.LittleEndian.PutUint32(buf[0:4], total)
	buf[4] = byte(r.Kind)
	binary.LittleEndian.PutUint32(buf[5:9], uint32(len(r.Key)))
	binary.LittleEndian.PutUint32(buf[9:13], uint32(len(r.Value)))

	keyStart := headerLen
	valStart := keyStart + len(r.Key)
	copy(buf[keyStart:valStart], r.Key)
	copy(buf[valStart:], r.Value)

	sum := crc32.ChecksumIEEE(buf[4:13])
	sum = crc32.Update(sum, crc32.IEEETable, r.Key)
	sum = crc32.Update(sum, crc32.IEEETable, r.Value)
	binary.LittleEndian.PutUint32(buf[13:17], sum)

	return buf
}

// DecodeFrom reads exactly one record from r, returning the record and the
// number of bytes consumed. It returns io.EOF, unmodified, when r is
// exhausted before any bytes of a new record are read — the clean
// end-of-stream case a segment stream reader relies on to stop. Any other
// short read, or a CRC mismatch, is reported as a *errors.StorageError with
// ErrorCodeSerde.
func DecodeFrom(r io.Reader) (Record, uint32, error) {
	var lenBuf [4]byte
	if _, err := io.ReadFull(r, lenBuf[:]); err != nil {
		if err == io.EOF {
			return Record{}, 0, io.EOF
		}
		return Record{}, 0, errors.NewStorageError(err, errors.ErrorCodeSerde, "truncated record length prefix")
	}

	total := binary.LittleEndian.Uint32(lenBuf[:])
	if total < headerLen {
		return Record{}, 0, errors.NewStorageError(nil, errors.ErrorCodeSerde, "record length shorter than header").
			WithDetail("totalLen", total)
	}

	rest := make([]byte, total-4)
	if _, err := io.ReadFull(r, rest); err != nil {
		return Record{}, 0, errors.NewStorageError(err, errors.ErrorCodeSerde, "truncated record body").
			WithDetail("totalLen", total)
	}

	tag := Kind(rest[0])
	keyLen := binary.LittleEndian.Uint32(rest[1:5])
	valLen := binary.LittleEndian.Uint32(rest[5:9])
	wantCRC := binary.LittleEndian.Uint32(rest[9:13])

	body := rest[13:]
	if uint64(keyLen)+uint64(valLen) != uint64(len(body)) {
		return Record{}, 0, errors.NewStorageError(nil, errors.ErrorCodeSerde, "key/value length mismatch with record frame").
			WithDetail("keyLen", keyLen).
			WithDetail("valLen", valLen)
	}

	gotCRC := crc32.ChecksumIEEE(rest[0:9])
	gotCRC = crc32.Update(gotCRC, crc32.IEEETable, body)
	if gotCRC != wantCRC {
		return Record{}, 0, errors.NewStorageError(nil, errors.ErrorCodeSerde, "record checksum mismatch").
			WithDetail("wantCRC", wantCRC).
			WithDetail("gotCRC", gotCRC)
	}

	key := body[:keyLen]
	value := body[keyLen:]

	if tag != KindSet && tag != KindDel {
		return Record{}, 0, errors.NewStorageError(nil, errors.ErrorCodeSerde, "unrecognized record tag").
			WithDetail("tag", tag)
	}

	return Record{Kind: tag, Key: key, Value: value}, total, nil
}
