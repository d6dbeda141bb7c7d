package memstore

import (
	"bytes"
	"testing"

	"github.com/iamNilotpal/kvd/internal/engine"
	"github.com/iamNilotpal/kvd/pkg/errors"
)

var _ engine.Store = (*Store)(nil)

func TestSetGetDel(t *testing.T) {
	s := New()

	if err := s.Set([]byte("k"), []byte("v")); err != nil {
		t.Fatalf("Set: %v", err)
	}

	got, err := s.Get([]byte("k"))
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !bytes.Equal(got, []byte("v")) {
		t.Errorf("Get = %q, want v", got)
	}

	if err := s.Del([]byte("k")); err != nil {
		t.Fatalf("Del: %v", err)
	}

	got, err = s.Get([]byte("k"))
	if err != nil {
		t.Fatalf("Get after Del: %v", err)
	}
	if got != nil {
		t.Errorf("Get after Del = %q, want nil", got)
	}
}

func TestGetMiss(t *testing.T) {
	s := New()
	got, err := s.Get([]byte("absent"))
	if err != nil || got != nil {
		t.Errorf("Get on miss = (%q, %v), want (nil, nil)", got, err)
	}
}

func TestDelOnAbsentKeyFailsWithKeyNotFound(t *testing.T) {
	s := New()
	err := s.Del([]byte("absent"))
	if err == nil {
		t.Fatal("Del on absent key: want error, got nil")
	}
	if code := errors.GetErrorCode(err); code != errors.ErrorCodeKeyNotFound {
		t.Errorf("code = %v, want ErrorCodeKeyNotFound", code)
	}
}

func TestSetIsolatesCallerBuffer(t *testing.T) {
	s := New()
	value := []byte("original")
	if err := s.Set([]byte("k"), value); err != nil {
		t.Fatalf("Set: %v", err)
	}

	value[0] = 'X'

	got, err := s.Get([]byte("k"))
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !bytes.Equal(got, []byte("original")) {
		t.Errorf("Get after mutating caller buffer = %q, want original", got)
	}
}
