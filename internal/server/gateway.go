package server

import (
	"context"
	"fmt"
	"log"
	"net/http"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/lexruntimev2"
	"github.com/labstack/echo/v4"

	appconfig "chatkb/config"
	"chatkb/internal/botrt"
	"chatkb/internal/retrieval"
)

// ChatRequest is the gateway's inbound payload.
type ChatRequest struct {
	Message string `json:"message"`
	UserID  string `json:"user_id"`
}

// ChatResponse is the gateway's reply shape, echoing the recognized
// intent and its state for the client.
type ChatResponse struct {
	Reply       string `json:"reply"`
	Intent      string `json:"intent"`
	IntentState string `json:"intent_state"`
	SessionID   string `json:"session_id"`
}

// RunGateway starts the HTTP-to-bot proxy.
func RunGateway(cfg *appconfig.Config) error {
	rt, err := buildRuntime(context.Background(), cfg)
	if err != nil {
		return err
	}

	e := newEcho()
	h := &GatewayHandler{Runtime: rt}
	e.POST("/chat", h.Chat)

	log.Printf("[GATEWAY] chat gateway listening on %s", cfg.Gateway.Address)
	return e.Start(cfg.Gateway.Address)
}

func buildRuntime(ctx context.Context, cfg *appconfig.Config) (botrt.Runtime, error) {
	switch cfg.Gateway.Bot {
	case "lex":
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWS.Region))
		if err != nil {
			return nil, fmt.Errorf("loading aws config: %w", err)
		}
		return &botrt.LexRuntime{
			Client:     lexruntimev2.NewFromConfig(awsCfg),
			BotID:      cfg.Gateway.BotID,
			BotAliasID: cfg.Gateway.BotAliasID,
			LocaleID:   cfg.Gateway.LocaleID,
		}, nil
	case "local":
		engine, err := BuildEngine(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return &botrt.LocalRuntime{Engine: engine}, nil
	default:
		return nil, fmt.Errorf("unknown gateway bot %q", cfg.Gateway.Bot)
	}
}

// GatewayHandler translates REST requests into bot-runtime calls.
type GatewayHandler struct {
	Runtime botrt.Runtime
	logger  *log.Logger
}

func (h *GatewayHandler) log() *log.Logger {
	if h.logger == nil {
		h.logger = log.New(log.Writer(), "[GATEWAY] ", log.LstdFlags)
	}
	return h.logger
}

func (h *GatewayHandler) Chat(c echo.Context) error {
	var req ChatRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid JSON in request body")
	}
	if req.Message == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Message must be a non-empty string")
	}
	if req.UserID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "User ID must be a non-empty string")
	}

	reply, err := h.Runtime.Recognize(c.Request().Context(), req.UserID, req.Message)
	if err != nil {
		if code, ok := retrieval.ClientErrCode(err); ok {
			h.log().Printf("bot client error [%s]: %v", code, err)
			switch code {
			case "ResourceNotFoundException":
				return echo.NewHTTPError(http.StatusInternalServerError,
					"Lex bot configuration error. Please contact support.")
			case "AccessDeniedException":
				return echo.NewHTTPError(http.StatusInternalServerError,
					"Permission error accessing Lex bot.")
			default:
				return echo.NewHTTPError(http.StatusInternalServerError,
					"Error communicating with the chatbot. Please try again.")
			}
		}
		h.log().Printf("bot call failed: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError,
			"An unexpected error occurred. Please try again.")
	}

	return c.JSON(http.StatusOK, ChatResponse{
		Reply:       reply.Message,
		Intent:      reply.Intent,
		IntentState: reply.IntentState,
		SessionID:   req.UserID,
	})
}
