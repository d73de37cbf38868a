package config

import (
	"strings"
	"testing"
)

func TestSessionConfigValidate(t *testing.T) {
	cases := []struct {
		name    string
		cfg     SessionConfig
		wantErr string
	}{
		{"memory ok", SessionConfig{Backend: "memory", HistoryLimit: 10}, ""},
		{"redis ok", SessionConfig{Backend: "redis", HistoryLimit: 10, Redis: RedisConfig{Addr: "localhost:6379"}}, ""},
		{"redis missing addr", SessionConfig{Backend: "redis", HistoryLimit: 10}, "session.redis.addr"},
		{"dynamo ok", SessionConfig{Backend: "dynamo", HistoryLimit: 10, Table: "Sessions"}, ""},
		{"dynamo missing table", SessionConfig{Backend: "dynamo", HistoryLimit: 10}, "session.table"},
		{"unknown backend", SessionConfig{Backend: "postgres", HistoryLimit: 10}, "session.backend"},
		{"zero history limit", SessionConfig{Backend: "memory"}, "history_limit"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if tc.wantErr == "" {
				if err != nil {
					t.Fatalf("expected no error, got %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("expected error mentioning %q, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestGatewayConfigValidate(t *testing.T) {
	if err := (GatewayConfig{Bot: "local"}).Validate(); err != nil {
		t.Fatalf("expected local bot to validate, got %v", err)
	}
	if err := (GatewayConfig{Bot: "lex", BotID: "b", BotAliasID: "a"}).Validate(); err != nil {
		t.Fatalf("expected lex bot with ids to validate, got %v", err)
	}
	if err := (GatewayConfig{Bot: "lex"}).Validate(); err == nil {
		t.Fatal("expected lex bot without ids to fail validation")
	}
	if err := (GatewayConfig{Bot: "dialogflow"}).Validate(); err == nil {
		t.Fatal("expected unknown bot to fail validation")
	}
}
