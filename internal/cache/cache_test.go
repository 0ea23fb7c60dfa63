package cache

import (
	"bytes"
	"path/filepath"
	"testing"
)

func TestPutGetRoundTrip(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "snapshots.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s.Close()

	if _, _, ok, err := s.Get("http://localhost:8001"); err != nil || ok {
		t.Fatalf("empty cache: ok=%v err=%v", ok, err)
	}

	payload := []byte(`{"tree":{"name":"/"}}`)
	if err := s.Put("http://localhost:8001", payload); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, fetchedAt, ok, err := s.Get("http://localhost:8001")
	if err != nil || !ok {
		t.Fatalf("Get: ok=%v err=%v", ok, err)
	}
	if !bytes.Equal(got, payload) {
		t.Errorf("payload = %s, want %s", got, payload)
	}
	if fetchedAt.IsZero() {
		t.Error("fetchedAt is zero")
	}
}

func TestPutReplaces(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "snapshots.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s.Close()

	if err := s.Put("http://a", []byte("old")); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := s.Put("http://a", []byte("new")); err != nil {
		t.Fatalf("Put: %v", err)
	}
	got, _, ok, err := s.Get("http://a")
	if err != nil || !ok {
		t.Fatalf("Get: ok=%v err=%v", ok, err)
	}
	if string(got) != "new" {
		t.Errorf("payload = %q, want new", got)
	}
}

func TestEntriesPerServer(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "snapshots.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s.Close()

	s.Put("http://a", []byte("aa"))
	s.Put("http://b", []byte("bb"))

	got, _, _, _ := s.Get("http://a")
	if string(got) != "aa" {
		t.Errorf("server a payload = %q", got)
	}
	got, _, _, _ = s.Get("http://b")
	if string(got) != "bb" {
		t.Errorf("server b payload = %q", got)
	}
}
