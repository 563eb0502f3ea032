package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"dentalcare-backend/internal/scheduling"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const (
	doctorRulesKeyPrefix = "doctor:rules:"
	doctorRulesTTL       = 10 * time.Minute
)

// DoctorRulesCache keeps normalized doctor booking rules in Redis so the hot
// booking path skips the JSONB normalization on repeated hits. Every cache
// failure degrades to a miss; the database stays the source of truth.
type DoctorRulesCache struct {
	client *redis.Client
	log    *logrus.Logger
}

func NewDoctorRulesCache(client *redis.Client, log *logrus.Logger) *DoctorRulesCache {
	return &DoctorRulesCache{client: client, log: log}
}

func (c *DoctorRulesCache) key(doctorID string) string {
	return doctorRulesKeyPrefix + doctorID
}

// Get returns the cached rules for a doctor, or (nil, nil) on a miss.
func (c *DoctorRulesCache) Get(ctx context.Context, doctorID string) (*scheduling.DoctorRules, error) {
	raw, err := c.client.Get(ctx, c.key(doctorID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		c.log.Warnf("Failed to read doctor rules cache for %s: %+v", doctorID, err)
		return nil, nil
	}

	var rules scheduling.DoctorRules
	if err := json.Unmarshal(raw, &rules); err != nil {
		c.log.Warnf("Corrupt doctor rules cache entry for %s, dropping: %+v", doctorID, err)
		c.client.Del(ctx, c.key(doctorID))
		return nil, nil
	}
	return &rules, nil
}

// Set stores the normalized rules with a TTL.
func (c *DoctorRulesCache) Set(ctx context.Context, rules *scheduling.DoctorRules) error {
	raw, err := json.Marshal(rules)
	if err != nil {
		return fmt.Errorf("marshal doctor rules: %w", err)
	}
	if err := c.client.Set(ctx, c.key(rules.DoctorID), raw, doctorRulesTTL).Err(); err != nil {
		c.log.Warnf("Failed to write doctor rules cache for %s: %+v", rules.DoctorID, err)
		return err
	}
	return nil
}

// Invalidate drops the cached rules after availability or time-off edits.
func (c *DoctorRulesCache) Invalidate(ctx context.Context, doctorID string) {
	if err := c.client.Del(ctx, c.key(doctorID)).Err(); err != nil {
		c.log.Warnf("Failed to invalidate doctor rules cache for %s: %+v", doctorID, err)
	}
}
