package cache

import (
	"os"
	"path/filepath"
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "status.json"))
}

func TestLoad_MissingFile(t *testing.T) {
	s := newTestStore(t)

	r, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if r != nil {
		t.Errorf("expected nil record for missing file, got %+v", r)
	}
}

func TestLoad_CorruptFile(t *testing.T) {
	s := newTestStore(t)
	if err := os.WriteFile(s.filePath, []byte("{not json"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	r, err := s.Load()
	if err != nil {
		t.Fatalf("Load on corrupt file must not error, got %v", err)
	}
	if r != nil {
		t.Errorf("corrupt file must read as absent, got %+v", r)
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	s := newTestStore(t)
	in := Record{
		Title:         "Song A",
		Artist:        "Artist X",
		Album:         "Album Z",
		ArtworkURL:    "https://x/a.jpg",
		NowPlaying:    true,
		LastWrittenAt: "2026-03-01T12:00:00Z",
	}

	if err := s.Save(in); err != nil {
		t.Fatalf("Save: %v", err)
	}

	out, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if out == nil {
		t.Fatal("expected record after save")
	}
	if *out != in {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", *out, in)
	}
}

func TestSave_CreatesParentDirs(t *testing.T) {
	dir := t.TempDir()
	s := NewStore(filepath.Join(dir, "a", "b", "status.json"))

	if err := s.Save(Record{Title: "t", Artist: "a"}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := os.Stat(s.filePath); err != nil {
		t.Errorf("expected file to exist: %v", err)
	}
}

func TestSave_OverwritesInPlace(t *testing.T) {
	s := newTestStore(t)

	if err := s.Save(Record{Title: "first", Artist: "a"}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := s.Save(Record{Title: "second", Artist: "a"}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	out, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if out.Title != "second" {
		t.Errorf("expected overwrite, got %q", out.Title)
	}
}

func TestWrittenAt(t *testing.T) {
	tests := []struct {
		name  string
		stamp string
		ok    bool
	}{
		{name: "valid", stamp: "2026-03-01T12:00:00Z", ok: true},
		{name: "valid with offset", stamp: "2026-03-01T12:00:00+02:00", ok: true},
		{name: "empty", stamp: "", ok: false},
		{name: "garbage", stamp: "yesterday", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &Record{LastWrittenAt: tt.stamp}
			got, ok := r.WrittenAt()
			if ok != tt.ok {
				t.Fatalf("WrittenAt() ok = %v, want %v", ok, tt.ok)
			}
			if ok && got.IsZero() {
				t.Error("valid stamp parsed to zero time")
			}
		})
	}
}
