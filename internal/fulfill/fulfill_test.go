package fulfill

import (
	"context"
	"errors"
	"testing"

	"chatkb/internal/session"
)

type staticResolver struct{ answer string }

func (r staticResolver) Resolve(ctx context.Context, question string) string { return r.answer }

type brokenStore struct {
	getErr error
	putErr error
	inner  *session.MemoryStore
}

func (b *brokenStore) Get(ctx context.Context, id string) (session.Session, error) {
	if b.getErr != nil {
		return session.Session{}, b.getErr
	}
	return b.inner.Get(ctx, id)
}

func (b *brokenStore) Put(ctx context.Context, s session.Session) error {
	if b.putErr != nil {
		return b.putErr
	}
	return b.inner.Put(ctx, s)
}

func TestHandle_FirstTurnCreatesSession(t *testing.T) {
	store := session.NewMemoryStore()
	engine := NewEngine(store, staticResolver{answer: "resolved"}, 10)

	res := engine.Handle(context.Background(), Request{
		SessionID:       "user-1",
		IntentName:      IntentGreeting,
		InputTranscript: "hi there",
	})
	if res.Message != msgGreeting {
		t.Fatalf("expected greeting, got %q", res.Message)
	}
	if res.State != StateFulfilled {
		t.Fatalf("expected state %q, got %q", StateFulfilled, res.State)
	}
	if !res.Persisted {
		t.Fatal("expected the session save to succeed")
	}

	sess, err := store.Get(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if sess.IntentCount[IntentGreeting] != 1 {
		t.Fatalf("expected intent_count 1 after first turn, got %v", sess.IntentCount)
	}
	if len(sess.History) != 1 {
		t.Fatalf("expected one history entry, got %d", len(sess.History))
	}
}

func TestHandle_FallbackUsesResolver(t *testing.T) {
	store := session.NewMemoryStore()
	engine := NewEngine(store, staticResolver{answer: "S3 is object storage."}, 10)

	res := engine.Handle(context.Background(), Request{
		SessionID:       "user-2",
		IntentName:      IntentFallback,
		InputTranscript: "what is s3",
	})
	if res.Message != "S3 is object storage." {
		t.Fatalf("expected resolver answer, got %q", res.Message)
	}
}

func TestHandle_EmptyTranscriptPromptsRephrase(t *testing.T) {
	engine := NewEngine(session.NewMemoryStore(), staticResolver{answer: "unused"}, 10)

	res := engine.Handle(context.Background(), Request{
		SessionID:  "user-3",
		IntentName: IntentFallback,
	})
	if res.Message != msgNoInput {
		t.Fatalf("expected rephrase prompt, got %q", res.Message)
	}
}

func TestHandle_GetFailureTreatedAsEmptySession(t *testing.T) {
	store := &brokenStore{getErr: errors.New("table offline"), inner: session.NewMemoryStore()}
	engine := NewEngine(store, staticResolver{answer: "ok"}, 10)

	res := engine.Handle(context.Background(), Request{
		SessionID:       "user-4",
		IntentName:      IntentCheckStatus,
		InputTranscript: "status please",
	})
	if res.Message != msgCheckStatus {
		t.Fatalf("expected status message, got %q", res.Message)
	}

	sess, err := store.inner.Get(context.Background(), "user-4")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if sess.IntentCount[IntentCheckStatus] != 1 {
		t.Fatalf("expected a fresh session to be saved, got %v", sess.IntentCount)
	}
}

func TestHandle_PutFailureIsNonFatal(t *testing.T) {
	store := &brokenStore{putErr: errors.New("throughput exceeded"), inner: session.NewMemoryStore()}
	engine := NewEngine(store, staticResolver{answer: "the answer"}, 10)

	res := engine.Handle(context.Background(), Request{
		SessionID:       "user-5",
		IntentName:      IntentFallback,
		InputTranscript: "anything",
	})
	if res.Message != "the answer" {
		t.Fatalf("expected normal answer despite save failure, got %q", res.Message)
	}
	if res.Persisted {
		t.Fatal("expected Persisted=false when the save fails")
	}
	if res.State != StateFulfilled {
		t.Fatalf("expected state %q, got %q", StateFulfilled, res.State)
	}
}

func TestHandle_HistoryCapAcrossTurns(t *testing.T) {
	store := session.NewMemoryStore()
	engine := NewEngine(store, staticResolver{answer: "a"}, 10)

	for i := 0; i < 12; i++ {
		engine.Handle(context.Background(), Request{
			SessionID:       "user-6",
			IntentName:      IntentFallback,
			InputTranscript: "q",
		})
	}
	sess, _ := store.Get(context.Background(), "user-6")
	if len(sess.History) != 10 {
		t.Fatalf("expected history capped at 10, got %d", len(sess.History))
	}
	if sess.IntentCount[IntentFallback] != 12 {
		t.Fatalf("expected cumulative intent count 12, got %d", sess.IntentCount[IntentFallback])
	}
}

func TestCloseResponse_Shape(t *testing.T) {
	env := CloseResponse(nil, IntentFallback, StateFulfilled, "hello")
	if env.SessionState.DialogAction.Type != "Close" {
		t.Fatalf("expected Close dialog action, got %q", env.SessionState.DialogAction.Type)
	}
	if env.SessionState.SessionAttributes == nil {
		t.Fatal("expected non-nil session attributes")
	}
	if len(env.Messages) != 1 || env.Messages[0].ContentType != "PlainText" {
		t.Fatalf("expected a single PlainText message, got %+v", env.Messages)
	}
}
