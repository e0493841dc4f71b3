// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package cache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	visitKeyPrefix = "visits:"

	// VisitRetention is how long per-day counters are kept.
	VisitRetention = 90 * 24 * time.Hour

	// MaxVisitDays bounds the length of a requested daily series.
	MaxVisitDays = 90
)

// VisitorCounter counts storefront visits per tenant: a running total and
// one counter per UTC day.
type VisitorCounter struct {
	client *redis.Client
	now    func() time.Time
}

// NewVisitorCounter creates a VisitorCounter on the given Valkey client.
func NewVisitorCounter(client *redis.Client) *VisitorCounter {
	return &VisitorCounter{client: client, now: time.Now}
}

// VisitorStats is a tenant's visit total and a daily series, oldest first.
type VisitorStats struct {
	Total int64         `json:"total"`
	Daily []DailyVisits `json:"daily"`
}

// DailyVisits is the visit count of a single UTC day.
type DailyVisits struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}

func totalKey(tenantID uuid.UUID) string {
	return visitKeyPrefix + tenantID.String() + ":total"
}

func dayKey(tenantID uuid.UUID, day time.Time) string {
	return visitKeyPrefix + tenantID.String() + ":" + day.Format(time.DateOnly)
}

// Record counts one visit for the tenant and returns the new total.
func (v *VisitorCounter) Record(ctx context.Context, tenantID uuid.UUID) (int64, error) {
	day := dayKey(tenantID, v.now().UTC())

	var total *redis.IntCmd
	_, err := v.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		total = pipe.Incr(ctx, totalKey(tenantID))
		pipe.Incr(ctx, day)
		pipe.Expire(ctx, day, VisitRetention)
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("record visit: %w", err)
	}
	return total.Val(), nil
}

// Stats returns the total and the last days of counts, ending today.
// days is clamped to [1, MaxVisitDays].
func (v *VisitorCounter) Stats(ctx context.Context, tenantID uuid.UUID, days int) (*VisitorStats, error) {
	days = min(max(days, 1), MaxVisitDays)

	today := v.now().UTC()
	keys := make([]string, 0, days+1)
	dates := make([]string, 0, days)
	keys = append(keys, totalKey(tenantID))
	for i := days - 1; i >= 0; i-- {
		day := today.AddDate(0, 0, -i)
		keys = append(keys, dayKey(tenantID, day))
		dates = append(dates, day.Format(time.DateOnly))
	}

	vals, err := v.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("visitor stats: %w", err)
	}

	stats := &VisitorStats{Total: parseCount(vals[0]), Daily: make([]DailyVisits, 0, days)}
	for i, date := range dates {
		stats.Daily = append(stats.Daily, DailyVisits{Date: date, Count: parseCount(vals[i+1])})
	}
	return stats, nil
}

func parseCount(v any) int64 {
	s, ok := v.(string)
	if !ok {
		return 0
	}
	n, _ := strconv.ParseInt(s, 10, 64)
	return n
}
