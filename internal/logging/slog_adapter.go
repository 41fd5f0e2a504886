// Nexus - Community Group Recommendations
// Copyright 2026 Nexus contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jasperfordesq-ai/nexus-v1-sub002

package logging

import (
	"context"
	"log/slog"
	"strings"

	"github.com/rs/zerolog"
)

// slogHandler lets sutureslog write supervisor events through zerolog.
// Request and tenant ids carried by the record's context are added the same
// way Ctx adds them.
type slogHandler struct {
	logger zerolog.Logger
	prefix string
	attrs  []slog.Attr
}

// NewSlogLogger returns an *slog.Logger over the process logger, tagged
// with component=supervisor.
func NewSlogLogger() *slog.Logger {
	return NewSlogLoggerFrom(Logger().With().Str("component", "supervisor").Logger())
}

// NewSlogLoggerFrom returns an *slog.Logger over logger.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewSlogLoggerFrom(logger zerolog.Logger) *slog.Logger {
	return slog.New(&slogHandler{logger: logger})
}

func (h *slogHandler) Enabled(_ context.Context, level slog.Level) bool {
	l := zerologLevel(level)
	return l >= h.logger.GetLevel() && l >= zerolog.GlobalLevel()
}

//nolint:gocritic // slog.Record is passed by value per slog.Handler
func (h *slogHandler) Handle(ctx context.Context, record slog.Record) error {
	ev := h.logger.WithLevel(zerologLevel(record.Level))
	if ctx != nil {
		if id := RequestIDFromContext(ctx); id != "" {
			ev = ev.Str("request_id", id)
		}
		if tenant, ok := TenantIDFromContext(ctx); ok {
			ev = ev.Int64("tenant_id", tenant)
		}
	}
	for _, a := range h.attrs {
		ev = writeAttr(ev, "", a)
	}
	record.Attrs(func(a slog.Attr) bool {
		ev = writeAttr(ev, h.prefix, a)
		return true
	})
	ev.Msg(record.Message)
	return nil
}

func (h *slogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := *h
	next.attrs = make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	next.attrs = append(next.attrs, h.attrs...)
	for _, a := range attrs {
		a.Key = h.prefix + a.Key
		next.attrs = append(next.attrs, a)
	}
	return &next
}

func (h *slogHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	next := *h
	next.prefix = h.prefix + name + "."
	return &next
}

// writeAttr flattens groups into dotted keys. Empty attrs are dropped as
// slog.Handler requires.
func writeAttr(ev *zerolog.Event, prefix string, a slog.Attr) *zerolog.Event {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return ev
	}
	key := prefix + a.Key

	switch a.Value.Kind() {
	case slog.KindGroup:
		inner := prefix
		if a.Key != "" {
			inner = key + "."
		}
		for _, ga := range a.Value.Group() {
			ev = writeAttr(ev, inner, ga)
		}
		return ev
	case slog.KindString:
		return ev.Str(key, a.Value.String())
	case slog.KindInt64:
		return ev.Int64(key, a.Value.Int64())
	case slog.KindUint64:
		return ev.Uint64(key, a.Value.Uint64())
	case slog.KindFloat64:
		return ev.Float64(key, a.Value.Float64())
	case slog.KindBool:
		return ev.Bool(key, a.Value.Bool())
	case slog.KindDuration:
		return ev.Dur(key, a.Value.Duration())
	case slog.KindTime:
		return ev.Time(key, a.Value.Time())
	}

	if err, ok := a.Value.Any().(error); ok {
		if strings.EqualFold(a.Key, "err") || strings.EqualFold(a.Key, "error") {
			return ev.Err(err)
		}
		return ev.AnErr(key, err)
	}
	return ev.Interface(key, a.Value.Any())
}

// zerologLevel maps slog levels, including the ones between the named
// levels, onto zerolog.
func zerologLevel(level slog.Level) zerolog.Level {
	switch {
	case level >= slog.LevelError:
		return zerolog.ErrorLevel
	case level >= slog.LevelWarn:
		return zerolog.WarnLevel
	case level >= slog.LevelInfo:
		return zerolog.InfoLevel
	case level >= slog.LevelDebug:
		return zerolog.DebugLevel
	default:
		return zerolog.TraceLevel
	}
}
