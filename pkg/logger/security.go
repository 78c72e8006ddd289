package logger

import (
	"context"
	"log/slog"
	"sync"

	"github.com/aferchichi/stockshop/config"
)

// Security is the audit logger for auth and upload events. It always writes
// through the main handler; when MONGO_LOG_URI is configured it also fans
// out to the MongoDB audit collection.
var (
	securityOnce sync.Once
	securityLog  *slog.Logger
	securityCl   func()
)

// SecurityLog returns the audit logger, initialising it on first use.
func SecurityLog() *slog.Logger {
	securityOnce.Do(func() {
		base := L.Handler()

		uri := config.MongoLogURI()
		if uri == "" {
			securityLog = slog.New(base).With("channel", "security")
			return
		}

		mh, err := NewMongoHandler(uri, "stockshop", "security_events")
		if err != nil {
			L.Warn("security log: mongo sink unavailable, using stdout only", "error", err)
			securityLog = slog.New(base).With("channel", "security")
			return
		}
		securityCl = mh.Close
		securityLog = slog.New(NewMultiHandler(base, mh)).With("channel", "security")
	})
	return securityLog
}

// CloseSecurityLog flushes the Mongo sink, if one was opened.
func CloseSecurityLog() {
	if securityCl != nil {
		securityCl()
	}
}

// NewMultiHandler returns a handler that sends each record to all hs.
func NewMultiHandler(hs ...slog.Handler) slog.Handler {
	return &multiHandler{handlers: hs}
}

type multiHandler struct {
	handlers []slog.Handler
}

func (m *multiHandler) Enabled(ctx context.Context, l slog.Level) bool {
	for _, h := range m.handlers {
		if h.Enabled(ctx, l) {
			return true
		}
	}
	return false
}

func (m *multiHandler) Handle(ctx context.Context, r slog.Record) error {
	for _, h := range m.handlers {
		if h.Enabled(ctx, r.Level) {
			_ = h.Handle(ctx, r.Clone())
		}
	}
	return nil
}

func (m *multiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	hs := make([]slog.Handler, len(m.handlers))
	for i, h := range m.handlers {
		hs[i] = h.WithAttrs(attrs)
	}
	return &multiHandler{handlers: hs}
}

func (m *multiHandler) WithGroup(name string) slog.Handler {
	hs := make([]slog.Handler, len(m.handlers))
	for i, h := range m.handlers {
		hs[i] = h.WithGroup(name)
	}
	return &multiHandler{handlers: hs}
}
