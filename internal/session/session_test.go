package session

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestRecord_AppendsAndCounts(t *testing.T) {
	s := New("sess-1")
	s.Record("GreetingIntent", "hello", "Hello! How can I help?", 10)

	if got := s.IntentCount["GreetingIntent"]; got != 1 {
		t.Fatalf("expected intent count 1, got %d", got)
	}
	if len(s.History) != 1 {
		t.Fatalf("expected 1 history entry, got %d", len(s.History))
	}
	if s.History[0].UserInput != "hello" {
		t.Fatalf("unexpected history entry: %+v", s.History[0])
	}
}

func TestRecord_TruncatesToLimit(t *testing.T) {
	s := New("sess-2")
	for i := 0; i < 14; i++ {
		s.Record("FallbackIntent", fmt.Sprintf("question %d", i), "answer", 10)
	}
	if len(s.History) != 10 {
		t.Fatalf("expected history capped at 10, got %d", len(s.History))
	}
	if s.History[0].UserInput != "question 4" {
		t.Fatalf("expected oldest entries evicted first, got %q", s.History[0].UserInput)
	}
	if s.IntentCount["FallbackIntent"] != 14 {
		t.Fatalf("expected intent count to keep counting past the cap, got %d", s.IntentCount["FallbackIntent"])
	}
}

func TestMemoryStore_RoundTrip(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	if _, err := store.Get(ctx, "unknown"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	s := New("sess-3")
	s.Record("FallbackIntent", "what is s3", "S3 is object storage.", 10)
	if err := store.Put(ctx, s); err != nil {
		t.Fatalf("Put: %v", err)
	}

	loaded, err := store.Get(ctx, "sess-3")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(loaded.History) != 1 || loaded.History[0].BotResponse != "S3 is object storage." {
		t.Fatalf("round-trip lost the appended entry: %+v", loaded.History)
	}
	if len(loaded.History) > 10 {
		t.Fatalf("history exceeds cap: %d", len(loaded.History))
	}
}
