// Nexus - Community Group Recommendations
// Copyright 2026 Nexus contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/jasperfordesq-ai/nexus-v1-sub002

// Package queue forwards interaction events to a Redis stream.
//
// Each event becomes one XADD entry with flat string fields, so consumers
// in any language can read the stream with XREAD or a consumer group
// without a JSON decoder. The stream is trimmed approximately to MaxLen.
package queue

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jasperfordesq-ai/nexus-v1-sub002/internal/recommend/interactions"
)

// Stream entry field names.
const (
	FieldEventID   = "event_id"
	FieldTenantID  = "tenant_id"
	FieldUserID    = "user_id"
	FieldGroupID   = "group_id"
	FieldAction    = "action"
	FieldTimestamp = "ts"
)

// Options configures the Redis client and target stream.
type Options struct {
	Addr     string
	Password string
	DB       int
	Stream   string
	// MaxLen caps the stream length with approximate trimming. Zero disables
	// trimming.
	MaxLen int64
}

// RedisStreamSink appends interaction events to a Redis stream.
// It implements interactions.Sink.
type RedisStreamSink struct {
	client redis.Cmdable
	stream string
	maxLen int64
}

// NewRedisStreamSink creates a sink over an existing client.
func NewRedisStreamSink(client redis.Cmdable, stream string, maxLen int64) (*RedisStreamSink, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client required")
	}
	if stream == "" {
		return nil, fmt.Errorf("redis stream name required")
	}
	return &RedisStreamSink{client: client, stream: stream, maxLen: maxLen}, nil
}

// Connect dials Redis, verifies the connection and returns a sink together
// with the client so the caller can close it on shutdown.
func Connect(ctx context.Context, opts Options) (*RedisStreamSink, *redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:        opts.Addr,
		Password:    opts.Password,
		DB:          opts.DB,
		DialTimeout: 5 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, nil, fmt.Errorf("redis ping: %w", err)
	}

	sink, err := NewRedisStreamSink(rdb, opts.Stream, opts.MaxLen)
	if err != nil {
		_ = rdb.Close()
		return nil, nil, err
	}
	return sink, rdb, nil
}

// Name implements interactions.Sink.
func (s *RedisStreamSink) Name() string {
	return "redis"
}

// Write implements interactions.Sink.
//
//nolint:gocritic // hugeParam: ev passed by value for immutability
func (s *RedisStreamSink) Write(ctx context.Context, ev interactions.Event) error {
	if err := s.client.XAdd(ctx, s.addArgs(&ev)).Err(); err != nil {
		return fmt.Errorf("xadd %s: %w", s.stream, err)
	}
	return nil
}

// Read returns up to count entries from the start of the stream, decoded
// back into events.
func (s *RedisStreamSink) Read(ctx context.Context, count int64) ([]interactions.Event, error) {
	msgs, err := s.client.XRangeN(ctx, s.stream, "-", "+", count).Result()
	if err != nil {
		return nil, fmt.Errorf("xrange %s: %w", s.stream, err)
	}

	events := make([]interactions.Event, 0, len(msgs))
	for _, m := range msgs {
		ev, err := decodeValues(m.Values)
		if err != nil {
			return nil, fmt.Errorf("entry %s: %w", m.ID, err)
		}
		events = append(events, ev)
	}
	return events, nil
}

func (s *RedisStreamSink) addArgs(ev *interactions.Event) *redis.XAddArgs {
	args := &redis.XAddArgs{
		Stream: s.stream,
		Values: encodeValues(ev),
	}
	if s.maxLen > 0 {
		args.MaxLen = s.maxLen
		args.Approx = true
	}
	return args
}

func encodeValues(ev *interactions.Event) map[string]interface{} {
	return map[string]interface{}{
		FieldEventID:   ev.ID,
		FieldTenantID:  strconv.FormatInt(ev.TenantID, 10),
		FieldUserID:    strconv.FormatInt(ev.UserID, 10),
		FieldGroupID:   strconv.FormatInt(ev.GroupID, 10),
		FieldAction:    ev.Action.String(),
		FieldTimestamp: ev.Timestamp.UTC().Format(time.RFC3339Nano),
	}
}

func decodeValues(values map[string]interface{}) (interactions.Event, error) {
	str := func(key string) string {
		v, _ := values[key].(string)
		return v
	}
	id := func(key string) (int64, error) {
		n, err := strconv.ParseInt(str(key), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("field %s: %w", key, err)
		}
		return n, nil
	}

	var ev interactions.Event
	var err error
	ev.ID = str(FieldEventID)
	if ev.TenantID, err = id(FieldTenantID); err != nil {
		return ev, err
	}
	if ev.UserID, err = id(FieldUserID); err != nil {
		return ev, err
	}
	if ev.GroupID, err = id(FieldGroupID); err != nil {
		return ev, err
	}
	if ev.Action, err = interactions.ParseAction(str(FieldAction)); err != nil {
		return ev, err
	}
	if ev.Timestamp, err = time.Parse(time.RFC3339Nano, str(FieldTimestamp)); err != nil {
		return ev, fmt.Errorf("field %s: %w", FieldTimestamp, err)
	}
	return ev, nil
}
