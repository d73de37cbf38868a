package resolver

import (
	"context"
	"fmt"
	"log"
	"strings"

	"chatkb/internal/catalog"
	"chatkb/internal/corpus"
	"chatkb/internal/retrieval"
	"chatkb/internal/textutil"
)

// Fixed user-facing messages for the terminal outcomes of the chain.
const (
	MsgNothingRelevant = "I couldn't find anything relevant to your question in the knowledge base."
	MsgConnectivity    = "I'm having trouble reaching the knowledge base right now. Please try again."
	MsgSearchError     = "I encountered an error searching the knowledge base. Please try rephrasing your question."
	MsgCorpusDisabled  = "The document knowledge base is disabled."
)

// MsgNoCorpusMatch carries the original question text verbatim.
func MsgNoCorpusMatch(question string) string {
	return fmt.Sprintf("I couldn't find information about '%s' in the knowledge base. "+
		"Could you rephrase your question?", question)
}

// Config captures which answer sources are available and how they are
// addressed.
type Config struct {
	// KnowledgeBaseID enables the managed retrieval tier when set.
	KnowledgeBaseID string
	// ModelARNs is the fixed, ordered model list tried by the managed
	// tier. A recognized client error advances to the next entry.
	ModelARNs []string
	// CorpusConfigured enables the document corpus tier.
	CorpusConfigured bool
	// UseDocumentKB short-circuits the corpus tier with a static
	// message when false.
	UseDocumentKB bool
}

// Resolver walks the answer-source hierarchy for a fallback question:
// managed retrieval, then the optional local generative tier, then the
// document corpus, then the static catalog. It always produces a
// user-facing string, never an error.
type Resolver struct {
	cfg     Config
	gen     retrieval.Generator
	local   retrieval.LocalAnswerer
	library *corpus.Library
	logger  *log.Logger
}

func New(cfg Config, gen retrieval.Generator, local retrieval.LocalAnswerer, library *corpus.Library) *Resolver {
	return &Resolver{
		cfg:     cfg,
		gen:     gen,
		local:   local,
		library: library,
		logger:  log.New(log.Writer(), "[RESOLVER] ", log.LstdFlags),
	}
}

func (r *Resolver) Resolve(ctx context.Context, question string) string {
	if r.cfg.KnowledgeBaseID != "" && r.gen != nil {
		if answer, done := r.managed(ctx, question); done {
			return answer
		}
	}

	if r.local != nil {
		if answer, ok := r.localModel(ctx, question); ok {
			return answer
		}
	}

	if r.cfg.CorpusConfigured {
		return r.searchCorpus(ctx, question)
	}

	answersTotal.WithLabelValues("catalog").Inc()
	return catalog.Answer(question)
}

// managed tries each configured model in order. Only recognized client
// errors advance the list; any other failure is terminal with a
// connectivity message. Exhausting the list falls through (done=false).
func (r *Resolver) managed(ctx context.Context, question string) (string, bool) {
	for _, arn := range r.cfg.ModelARNs {
		text, err := r.gen.RetrieveAndGenerate(ctx, question, r.cfg.KnowledgeBaseID, arn)
		if err != nil {
			if code, ok := retrieval.ClientErrCode(err); ok {
				r.logger.Printf("model %s failed with %s, trying next", arn, code)
				modelFailovers.Inc()
				continue
			}
			r.logger.Printf("managed retrieval failed: %v", err)
			answersTotal.WithLabelValues("managed_error").Inc()
			return MsgConnectivity, true
		}
		if strings.TrimSpace(text) == "" {
			answersTotal.WithLabelValues("managed_empty").Inc()
			return MsgNothingRelevant, true
		}
		answersTotal.WithLabelValues("managed").Inc()
		return text, true
	}
	r.logger.Printf("all %d models failed, falling back", len(r.cfg.ModelARNs))
	return "", false
}

func (r *Resolver) localModel(ctx context.Context, question string) (string, bool) {
	answer, err := r.local.Answer(ctx, question)
	if err != nil {
		r.logger.Printf("local model failed: %v", err)
		return "", false
	}
	if answer == "" {
		return "", false
	}
	answersTotal.WithLabelValues("local_model").Inc()
	return answer, true
}

func (r *Resolver) searchCorpus(ctx context.Context, question string) string {
	if !r.cfg.UseDocumentKB {
		answersTotal.WithLabelValues("corpus_disabled").Inc()
		return MsgCorpusDisabled
	}

	chunks, err := r.library.Load(ctx)
	if err != nil {
		r.logger.Printf("corpus load failed: %v", err)
		answersTotal.WithLabelValues("corpus_error").Inc()
		return MsgSearchError
	}

	keywords := textutil.Keywords(question)
	best, ok := corpus.Best(chunks, keywords)
	if !ok {
		answersTotal.WithLabelValues("corpus_miss").Inc()
		return MsgNoCorpusMatch(question)
	}
	r.logger.Printf("answer found on page %d (score: %d)", best.Chunk.Ordinal, best.Score)
	answersTotal.WithLabelValues("corpus").Inc()
	return best.SourcedAnswer(keywords)
}
