package fulfill

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"chatkb/internal/session"
)

// Intent names recognized by the fulfillment hook. Anything else is
// treated as the fallback intent and answered from the knowledge
// sources.
const (
	IntentGreeting    = "GreetingIntent"
	IntentCheckStatus = "CheckStatusIntent"
	IntentFallback    = "FallbackIntent"
)

const (
	StateFulfilled = "Fulfilled"
	StateFailed    = "Failed"
)

const (
	msgGreeting    = "Hello! How can I help you with your AWS questions?"
	msgCheckStatus = "I am checking your status now."
	msgNoInput     = "I'm not sure how to help with that. Could you please rephrase your question?"
	// MsgProcessingError is the apologetic envelope for any failure the
	// outer handler absorbs.
	MsgProcessingError = "I apologize, but I encountered an error processing your request. Please try again."
)

var persistFailures = promauto.NewCounter(prometheus.CounterOpts{
	Name: "chatkb_session_persist_failures_total",
	Help: "Session saves that failed and were swallowed.",
})

// Resolver answers fallback questions. It always returns a message,
// never an error.
type Resolver interface {
	Resolve(ctx context.Context, question string) string
}

// Request is one fulfillment turn as handed over by the bot platform.
type Request struct {
	SessionID         string
	IntentName        string
	InputTranscript   string
	SessionAttributes map[string]string
}

// Result is the outcome of a turn. Persisted is false when the session
// save failed; the turn still succeeds from the caller's point of view.
type Result struct {
	Message           string
	State             string
	SessionAttributes map[string]string
	Persisted         bool
}

// Engine dispatches intents, maintains session state and shapes the
// final response.
type Engine struct {
	store        session.Store
	resolver     Resolver
	historyLimit int
	logger       *log.Logger
}

func NewEngine(store session.Store, resolver Resolver, historyLimit int) *Engine {
	return &Engine{
		store:        store,
		resolver:     resolver,
		historyLimit: historyLimit,
		logger:       log.New(log.Writer(), "[FULFILL] ", log.LstdFlags),
	}
}

// Handle processes one turn. Store failures are absorbed: a failed get
// behaves like an unknown session, a failed put is counted and
// reported through Result.Persisted.
func (e *Engine) Handle(ctx context.Context, req Request) Result {
	sess, err := e.store.Get(ctx, req.SessionID)
	if err != nil {
		if !errors.Is(err, session.ErrNotFound) {
			e.logger.Printf("loading session %s: %v", req.SessionID, err)
		}
		sess = session.New(req.SessionID)
	}

	message := e.respond(ctx, req)

	sess.Record(req.IntentName, req.InputTranscript, message, e.historyLimit)
	persisted := true
	if err := e.store.Put(ctx, sess); err != nil {
		e.logger.Printf("saving session %s: %v", req.SessionID, err)
		persistFailures.Inc()
		persisted = false
	}

	return Result{
		Message:           message,
		State:             StateFulfilled,
		SessionAttributes: req.SessionAttributes,
		Persisted:         persisted,
	}
}

func (e *Engine) respond(ctx context.Context, req Request) string {
	switch req.IntentName {
	case IntentGreeting:
		return msgGreeting
	case IntentCheckStatus:
		return msgCheckStatus
	default:
		transcript := strings.TrimSpace(req.InputTranscript)
		if transcript == "" {
			return msgNoInput
		}
		return e.resolver.Resolve(ctx, transcript)
	}
}
