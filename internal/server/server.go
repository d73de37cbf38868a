package server

import (
	"context"
	"fmt"
	"log"
	"net/http"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockagentruntime"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	appconfig "chatkb/config"
	"chatkb/internal/corpus"
	"chatkb/internal/fulfill"
	"chatkb/internal/resolver"
	"chatkb/internal/retrieval"
	"chatkb/internal/session"
)

// newEcho builds an echo app with the shared middleware: panic
// recovery, permissive CORS, a JSON error envelope, health and
// metrics endpoints.
func newEcho() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())

	baseLogger := log.New(log.Writer(), "[HTTP] ", log.LstdFlags)
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		code := http.StatusInternalServerError
		msg := err.Error()
		if he, ok := err.(*echo.HTTPError); ok {
			code = he.Code
			if he.Message != nil {
				msg = fmt.Sprint(he.Message)
			}
		}
		req := c.Request()
		baseLogger.Printf("%d %s %s from %s: %v", code, req.Method, req.URL.Path, c.RealIP(), err)
		if !c.Response().Committed {
			_ = c.JSON(code, map[string]string{"error": msg, "status": "error"})
		}
	}
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"POST", "OPTIONS"},
		AllowHeaders: []string{"Content-Type"},
	}))

	e.GET("/healthz", func(c echo.Context) error { return c.String(http.StatusOK, "ok") })
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	return e
}

// BuildEngine wires the fulfillment engine from configuration: the
// session store backend, the answer-source clients and the resolver.
func BuildEngine(ctx context.Context, cfg *appconfig.Config) (*fulfill.Engine, error) {
	store, err := buildSessionStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	var gen retrieval.Generator
	var lib *corpus.Library
	needAWS := cfg.Knowledge.KnowledgeBaseID != "" || cfg.Knowledge.Bucket != ""
	if needAWS {
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWS.Region))
		if err != nil {
			return nil, fmt.Errorf("loading aws config: %w", err)
		}
		if cfg.Knowledge.KnowledgeBaseID != "" {
			gen = &retrieval.BedrockGenerator{Client: bedrockagentruntime.NewFromConfig(awsCfg)}
		}
		if cfg.Knowledge.Bucket != "" {
			lib = corpus.NewLibrary(&corpus.S3Fetcher{
				Client: s3.NewFromConfig(awsCfg),
				Bucket: cfg.Knowledge.Bucket,
				Key:    cfg.Knowledge.Key,
			})
		}
	}
	// A local file stands in for the object store when no bucket is set.
	if lib == nil && cfg.Knowledge.File != "" {
		lib = corpus.NewLibrary(&corpus.FileFetcher{Path: cfg.Knowledge.File})
	}

	var local retrieval.LocalAnswerer
	if cfg.Knowledge.LocalBaseURL != "" {
		local = retrieval.NewLocalGenerator(cfg.Knowledge.LocalBaseURL, cfg.Knowledge.LocalModel)
	}

	res := resolver.New(resolver.Config{
		KnowledgeBaseID:  cfg.Knowledge.KnowledgeBaseID,
		ModelARNs:        cfg.Knowledge.ModelARNs,
		CorpusConfigured: cfg.Knowledge.Bucket != "" || cfg.Knowledge.File != "",
		UseDocumentKB:    cfg.Knowledge.UseDocumentKB,
	}, gen, local, lib)

	return fulfill.NewEngine(store, res, cfg.Session.HistoryLimit), nil
}

func buildSessionStore(ctx context.Context, cfg *appconfig.Config) (session.Store, error) {
	switch cfg.Session.Backend {
	case "memory":
		return session.NewMemoryStore(), nil
	case "redis":
		return session.NewRedisStore(cfg.Session.Redis.Addr, cfg.Session.Redis.Password,
			cfg.Session.Redis.DB, cfg.Session.TTL)
	case "dynamo":
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWS.Region))
		if err != nil {
			return nil, fmt.Errorf("loading aws config: %w", err)
		}
		return session.NewDynamoStore(dynamodb.NewFromConfig(awsCfg), cfg.Session.Table), nil
	default:
		return nil, fmt.Errorf("unknown session backend %q", cfg.Session.Backend)
	}
}

// RunFulfillment starts the fulfillment API server.
func RunFulfillment(cfg *appconfig.Config) error {
	engine, err := BuildEngine(context.Background(), cfg)
	if err != nil {
		return err
	}

	e := newEcho()
	h := &FulfillmentHandler{Engine: engine}
	e.POST("/fulfillment", h.Handle)

	log.Printf("[SERVER] fulfillment API listening on %s", cfg.Server.Address)
	return e.Start(cfg.Server.Address)
}

// FulfillmentHandler exposes the engine as the bot platform's
// fulfillment hook.
type FulfillmentHandler struct {
	Engine *fulfill.Engine
}

// Handle accepts a Lex-shaped event and always answers with a
// well-formed close envelope: engine-level trouble surfaces as a
// Failed envelope, not as a transport error.
func (h *FulfillmentHandler) Handle(c echo.Context) error {
	var event fulfill.Event
	if err := c.Bind(&event); err != nil {
		return c.JSON(http.StatusOK, fulfill.CloseResponse(nil,
			fulfill.IntentFallback, fulfill.StateFailed, fulfill.MsgProcessingError))
	}

	intent := event.SessionState.Intent.Name
	if intent == "" {
		intent = "Unknown"
	}
	sessionID := event.SessionID
	if sessionID == "" {
		sessionID = "unknown-session"
	}
	res := h.Engine.Handle(c.Request().Context(), fulfill.Request{
		SessionID:         sessionID,
		IntentName:        intent,
		InputTranscript:   event.InputTranscript,
		SessionAttributes: event.SessionState.SessionAttributes,
	})
	return c.JSON(http.StatusOK, fulfill.CloseResponse(res.SessionAttributes, intent, res.State, res.Message))
}
