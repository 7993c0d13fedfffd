package di

import (
	"context"
	"net/http"
	"sync/atomic"

	"github.com/google/uuid"
)

// The three lifetimes mirrored here: the singleton is constructed once
// in main, the scoped value once per request by middleware, and the
// transient value at every use site.

// Singleton is created once at composition time. Its instance id never
// changes; its counter shows shared state across requests.
type Singleton struct {
	InstanceID string
	calls      atomic.Int64
}

func NewSingleton() *Singleton {
	return &Singleton{InstanceID: uuid.NewString()}
}

func (s *Singleton) Touch() int64 {
	return s.calls.Add(1)
}

type scopeKey int

const ctxKeyScopeID scopeKey = iota

// WithRequestScope creates one scoped id per request.
func WithRequestScope(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := context.WithValue(r.Context(), ctxKeyScopeID, uuid.NewString())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ScopeIDFromContext returns the per-request scoped id.
func ScopeIDFromContext(ctx context.Context) string {
	v, _ := ctx.Value(ctxKeyScopeID).(string)
	return v
}

// NewTransient returns a fresh value on every call.
func NewTransient() string {
	return uuid.NewString()
}
