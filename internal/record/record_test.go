package record

import (
	"bytes"
	"io"
	"testing"

	"github.com/iamNilotpal/kvd/pkg/errors"
)

func TestMarshalDecodeRoundTrip(t *testing.T) {
	tt := []struct {
		name string
		rec  Record
	}{
		{name: "set with value", rec: NewSet([]byte("k1"), []byte("v1"))},
		{name: "set with empty value", rec: NewSet([]byte("k2"), []byte(""))},
		{name: "set with zero byte in key and value", rec: NewSet([]byte("k\x003"), []byte("v\x004"))},
		{name: "del", rec: NewDel([]byte("k5"))},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			buf := Marshal(tc.rec)
			if uint32(len(buf)) != EncodedLen(tc.rec) {
				t.Fatalf("Marshal produced %d bytes, EncodedLen says %d", len(buf), EncodedLen(tc.rec))
			}

			got, n, err := DecodeFrom(bytes.NewReader(buf))
			if err != nil {
				t.Fatalf("DecodeFrom: %v", err)
			}
			if n != uint32(len(buf)) {
				t.Fatalf("DecodeFrom consumed %d bytes, want %d", n, len(buf))
			}
			if got.Kind != tc.rec.Kind {
				t.Fatalf("Kind = %v, want %v", got.Kind, tc.rec.Kind)
			}
			if !bytes.Equal(got.Key, tc.rec.Key) {
				t.Fatalf("Key = %q, want %q", got.Key, tc.rec.Key)
			}
			if !bytes.Equal(got.Value, tc.rec.Value) {
				t.Fatalf("Value = %q, want %q", got.Value, tc.rec.Value)
			}
		})
	}
}

func TestDecodeFromCleanEOF(t *testing.T) {
	_, _, err := DecodeFrom(bytes.NewReader(nil))
	if err != io.EOF {
		t.Fatalf("DecodeFrom on empty reader = %v, want io.EOF", err)
	}
}

func TestDecodeFromTruncatedBody(t *testing.T) {
	buf := Marshal(NewSet([]byte("key"), []byte("value")))
	truncated := buf[:len(buf)-2]

	_, _, err := DecodeFrom(bytes.NewReader(truncated))
	if err == nil {
		t.Fatal("DecodeFrom on truncated body: want error, got nil")
	}
	if !errors.IsStorageError(err) {
		t.Fatalf("DecodeFrom on truncated body: want *errors.StorageError, got %T", err)
	}
}

func TestDecodeFromCorruptedChecksum(t *testing.T) {
	buf := Marshal(NewSet([]byte("key"), []byte("value")))
	buf[len(buf)-1] ^= 0xFF // flip every bit of the last value byte

	_, _, err := DecodeFrom(bytes.NewReader(buf))
	if err == nil {
		t.Fatal("DecodeFrom on corrupted payload: want error, got nil")
	}

	se, ok := errors.AsStorageError(err)
	if !ok {
		t.Fatalf("DecodeFrom on corrupted payload: want *errors.StorageError, got %T", err)
	}
	if se.Code() != errors.ErrorCodeSerde {
		t.Fatalf("code = %v, want %v", se.Code(), errors.ErrorCodeSerde)
	}
}

func TestStreamOfRecords(t *testing.T) {
	recs := []Record{
		NewSet([]byte("a"), []byte("1")),
		NewSet([]byte("b"), []byte("2")),
		NewDel([]byte("a")),
	}

	var buf bytes.Buffer
	for _, r := range recs {
		buf.Write(Marshal(r))
	}

	r := bytes.NewReader(buf.Bytes())
	for i, want := range recs {
		got, _, err := DecodeFrom(r)
		if err != nil {
			t.Fatalf("record %d: DecodeFrom: %v", i, err)
		}
		if got.Kind != want.Kind || !bytes.Equal(got.Key, want.Key) || !bytes.Equal(got.Value, want.Value) {
			t.Fatalf("record %d = %+v, want %+v", i, got, want)
		}
	}

	if _, _, err := DecodeFrom(r); err != io.EOF {
		t.Fatalf("final DecodeFrom = %v, want io.EOF", err)
	}
}
