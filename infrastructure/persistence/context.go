// Package persistence carries per-request persistence state through
// context: the active GORM transaction and the request id used for log
// correlation.
package persistence

import (
	"context"

	"gorm.io/gorm"
)

type txKey struct{}

// TxFromContext retrieves the GORM transaction from context.
// Returns nil if no transaction is present.
func TxFromContext(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx
	}
	return nil
}

// ContextWithTx returns a new context with the GORM transaction attached.
func ContextWithTx(ctx context.Context, tx *gorm.DB) context.Context {
	return context.WithValue(ctx, txKey{}, tx)
}

type requestIDKey struct{}

// ContextWithRequestID attaches the request id for log correlation.
func ContextWithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

// RequestIDFromContext retrieves the request id, or "" when absent.
func RequestIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey{}).(string); ok {
		return id
	}
	return ""
}
