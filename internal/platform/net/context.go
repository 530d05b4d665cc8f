// Package net carries request scoped ids across transports
package net

import (
	"context"

	chimw "github.com/go-chi/chi/v5/middleware"
)

type ctxKey uint8

const keySessionID ctxKey = 1

// WithRequest stores the request id under chi's key and the labeling session id under ours
// blank values are not stored
func WithRequest(ctx context.Context, reqID, sessionID string) context.Context {
	if reqID != "" {
		ctx = context.WithValue(ctx, chimw.RequestIDKey, reqID)
	}
	if sessionID != "" {
		ctx = context.WithValue(ctx, keySessionID, sessionID)
	}
	return ctx
}

// RequestID returns the id set by WithRequest or chi's RequestID middleware
func RequestID(ctx context.Context) string { return chimw.GetReqID(ctx) }

// SessionID returns the labeling session id or ""
func SessionID(ctx context.Context) string {
	v, _ := ctx.Value(keySessionID).(string)
	return v
}
