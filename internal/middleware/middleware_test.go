package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"connectrpc.com/connect"

	"github.com/mmynk/chitfund/internal/models"
)

type pingRequest struct{}

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	buf := &bytes.Buffer{}
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { slog.SetDefault(prev) })
	return buf
}

func callLogged(t *testing.T, ctx context.Context, handlerErr error) map[string]any {
	t.Helper()
	buf := captureLogs(t)

	next := func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
		if handlerErr != nil {
			return nil, handlerErr
		}
		return connect.NewResponse(&pingRequest{}), nil
	}
	req := connect.NewRequest(&pingRequest{})
	_, _ = LoggingInterceptor()(next)(ctx, req)

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log line is not JSON: %v: %q", err, buf.String())
	}
	return entry
}

func TestLoggingInterceptor(t *testing.T) {
	member := models.AuthUser{ID: "m1", Name: "John Doe", Role: models.RoleMember, MemberID: "m1"}

	tests := []struct {
		name      string
		ctx       context.Context
		err       error
		wantLevel string
		wantCode  string
		wantActor bool
	}{
		{
			name:      "success with actor",
			ctx:       WithUser(context.Background(), member),
			wantLevel: "INFO",
			wantCode:  "ok",
			wantActor: true,
		},
		{
			name:      "client error",
			ctx:       WithUser(context.Background(), member),
			err:       connect.NewError(connect.CodePermissionDenied, errors.New("admin only")),
			wantLevel: "WARN",
			wantCode:  "permission_denied",
			wantActor: true,
		},
		{
			name:      "server fault without actor",
			ctx:       context.Background(),
			err:       errors.New("disk on fire"),
			wantLevel: "ERROR",
			wantCode:  "unknown",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry := callLogged(t, tt.ctx, tt.err)

			if entry["level"] != tt.wantLevel {
				t.Errorf("level = %v, want %s", entry["level"], tt.wantLevel)
			}
			if entry["code"] != tt.wantCode {
				t.Errorf("code = %v, want %s", entry["code"], tt.wantCode)
			}
			actor, ok := entry["actor"].(map[string]any)
			if ok != tt.wantActor {
				t.Fatalf("actor present = %v, want %v", ok, tt.wantActor)
			}
			if ok && (actor["id"] != "m1" || actor["role"] != string(models.RoleMember)) {
				t.Errorf("actor = %v", actor)
			}
		})
	}
}

func TestResultCode(t *testing.T) {
	if got := resultCode(nil); got != "ok" {
		t.Errorf("resultCode(nil) = %q", got)
	}
	if got := resultCode(connect.NewError(connect.CodeNotFound, errors.New("x"))); got != "not_found" {
		t.Errorf("resultCode(not found) = %q", got)
	}
}
