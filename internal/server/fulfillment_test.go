package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	appconfig "chatkb/config"
	"chatkb/internal/fulfill"
	"chatkb/internal/session"
)

type staticResolver struct{ answer string }

func (r staticResolver) Resolve(ctx context.Context, question string) string { return r.answer }

func TestBuildEngine_FileCorpusNeedsNoAWS(t *testing.T) {
	cfg := &appconfig.Config{}
	cfg.Session.Backend = "memory"
	cfg.Session.HistoryLimit = 10
	cfg.Knowledge.File = "testdata/kb.pdf"
	cfg.Knowledge.UseDocumentKB = true

	engine, err := BuildEngine(context.Background(), cfg)
	if err != nil {
		t.Fatalf("BuildEngine: %v", err)
	}
	if engine == nil {
		t.Fatal("expected an engine")
	}
}

func postFulfillment(t *testing.T, engine *fulfill.Engine, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := newEcho()
	h := &FulfillmentHandler{Engine: engine}
	e.POST("/fulfillment", h.Handle)

	req := httptest.NewRequest(http.MethodPost, "/fulfillment", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestFulfillment_FallbackEvent(t *testing.T) {
	store := session.NewMemoryStore()
	engine := fulfill.NewEngine(store, staticResolver{answer: "EC2 provides virtual servers."}, 10)

	body := `{
		"sessionId": "sess-9",
		"inputTranscript": "tell me about ec2",
		"sessionState": {
			"sessionAttributes": {"channel": "web"},
			"intent": {"name": "FallbackIntent"}
		}
	}`
	rec := postFulfillment(t, engine, body)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var env fulfill.Envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decoding envelope: %v", err)
	}
	if env.SessionState.DialogAction.Type != "Close" {
		t.Fatalf("expected Close action, got %q", env.SessionState.DialogAction.Type)
	}
	if env.SessionState.Intent.Name != "FallbackIntent" || env.SessionState.Intent.State != fulfill.StateFulfilled {
		t.Fatalf("unexpected intent result: %+v", env.SessionState.Intent)
	}
	if env.SessionState.SessionAttributes["channel"] != "web" {
		t.Fatalf("expected session attributes preserved, got %v", env.SessionState.SessionAttributes)
	}
	if len(env.Messages) != 1 || env.Messages[0].Content != "EC2 provides virtual servers." {
		t.Fatalf("unexpected messages: %+v", env.Messages)
	}

	sess, err := store.Get(context.Background(), "sess-9")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if sess.IntentCount["FallbackIntent"] != 1 {
		t.Fatalf("expected intent recorded, got %v", sess.IntentCount)
	}
}

func TestFulfillment_MissingIntentAndSession(t *testing.T) {
	engine := fulfill.NewEngine(session.NewMemoryStore(), staticResolver{answer: "a"}, 10)

	rec := postFulfillment(t, engine, `{"inputTranscript": "hello"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var env fulfill.Envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decoding envelope: %v", err)
	}
	if env.SessionState.Intent.Name != "Unknown" {
		t.Fatalf("expected Unknown intent, got %q", env.SessionState.Intent.Name)
	}
}

func TestFulfillment_MalformedBodyStillCloses(t *testing.T) {
	engine := fulfill.NewEngine(session.NewMemoryStore(), staticResolver{answer: "a"}, 10)

	rec := postFulfillment(t, engine, `{broken`)
	if rec.Code != http.StatusOK {
		t.Fatalf("the fulfillment hook must always answer 200, got %d", rec.Code)
	}
	var env fulfill.Envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decoding envelope: %v", err)
	}
	if env.SessionState.Intent.State != fulfill.StateFailed {
		t.Fatalf("expected Failed state, got %q", env.SessionState.Intent.State)
	}
	if len(env.Messages) != 1 || env.Messages[0].Content != fulfill.MsgProcessingError {
		t.Fatalf("expected apologetic message, got %+v", env.Messages)
	}
}
