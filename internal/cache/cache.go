// Package cache holds upstream responses and translation memory entries for a
// bounded time.
package cache

import (
	"context"
	"errors"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/tarjumo/internal/metrics"
)

type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)
	Delete(ctx context.Context, key string)
}

// Memory is an in-process LRU cache. Every entry shares the TTL the cache was
// created with; a shorter per-entry ttl is honoured by storing its deadline.
type Memory struct {
	lru *expirable.LRU[string, memoryEntry]
}

type memoryEntry struct {
	value    []byte
	deadline time.Time
}

func NewMemory(size int, ttl time.Duration) *Memory {
	if size <= 0 {
		size = 1024
	}
	return &Memory{lru: expirable.NewLRU[string, memoryEntry](size, nil, ttl)}
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, bool) {
	e, ok := m.lru.Get(key)
	if !ok {
		metrics.CacheLookupsTotal.WithLabelValues("memory", metrics.ResultMiss).Inc()
		return nil, false
	}
	if !e.deadline.IsZero() && time.Now().After(e.deadline) {
		m.lru.Remove(key)
		metrics.CacheLookupsTotal.WithLabelValues("memory", metrics.ResultMiss).Inc()
		return nil, false
	}
	metrics.CacheLookupsTotal.WithLabelValues("memory", metrics.ResultHit).Inc()
	return e.value, true
}

func (m *Memory) Set(_ context.Context, key string, value []byte, ttl time.Duration) {
	e := memoryEntry{value: value}
	if ttl > 0 {
		e.deadline = time.Now().Add(ttl)
	}
	m.lru.Add(key, e)
}

func (m *Memory) Delete(_ context.Context, key string) {
	m.lru.Remove(key)
}

func (m *Memory) Len() int {
	return m.lru.Len()
}

// Redis stores entries under a key prefix with native expiry.
type Redis struct {
	rdb    *redis.Client
	prefix string
}

func NewRedis(rdb *redis.Client, prefix string) *Redis {
	return &Redis{rdb: rdb, prefix: prefix}
}

func (r *Redis) Get(ctx context.Context, key string) ([]byte, bool) {
	val, err := r.rdb.Get(ctx, r.prefix+key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Warn().Err(err).Str("key", key).Msg("[cache] redis get failed")
		}
		metrics.CacheLookupsTotal.WithLabelValues("redis", metrics.ResultMiss).Inc()
		return nil, false
	}
	metrics.CacheLookupsTotal.WithLabelValues("redis", metrics.ResultHit).Inc()
	return val, true
}

func (r *Redis) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	if err := r.rdb.Set(ctx, r.prefix+key, value, ttl).Err(); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("[cache] redis set failed")
	}
}

func (r *Redis) Delete(ctx context.Context, key string) {
	if err := r.rdb.Del(ctx, r.prefix+key).Err(); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("[cache] redis delete failed")
	}
}

// Layered reads through a fast local cache before a shared one. Hits in the
// shared layer are copied into the local layer.
type Layered struct {
	local  Cache
	shared Cache
	// localTTL bounds how long a shared hit lives locally.
	localTTL time.Duration
}

func NewLayered(local, shared Cache, localTTL time.Duration) *Layered {
	return &Layered{local: local, shared: shared, localTTL: localTTL}
}

func (l *Layered) Get(ctx context.Context, key string) ([]byte, bool) {
	if v, ok := l.local.Get(ctx, key); ok {
		return v, true
	}
	v, ok := l.shared.Get(ctx, key)
	if ok {
		l.local.Set(ctx, key, v, l.localTTL)
	}
	return v, ok
}

func (l *Layered) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	localTTL := ttl
	if l.localTTL > 0 && (localTTL <= 0 || localTTL > l.localTTL) {
		localTTL = l.localTTL
	}
	l.local.Set(ctx, key, value, localTTL)
	l.shared.Set(ctx, key, value, ttl)
}

func (l *Layered) Delete(ctx context.Context, key string) {
	l.local.Delete(ctx, key)
	l.shared.Delete(ctx, key)
}
