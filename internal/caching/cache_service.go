package caching

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"dinetap/internal/models"
)

// CacheService is a shared read-through cache plus the table-session store.
// Redis is the only cache in the system: nothing tenant-owned is ever held in
// process memory across requests.
type CacheService interface {
	// Menu listing cache. The found flag distinguishes a cached empty
	// menu from a miss.
	GetMenu(ctx context.Context, tenantID int64) ([]*models.MenuItem, bool, error)
	SetMenu(ctx context.Context, tenantID int64, items []*models.MenuItem, ttl time.Duration) error
	DeleteMenu(ctx context.Context, tenantID int64) error

	// Dashboard cache, keyed per reporting range
	GetDashboard(ctx context.Context, tenantID int64, rangeKey string, dest interface{}) (bool, error)
	SetDashboard(ctx context.Context, tenantID int64, rangeKey string, dashboard interface{}, ttl time.Duration) error
	DeleteDashboards(ctx context.Context, tenantID int64) error

	// Table sessions
	SetSession(ctx context.Context, session *models.TableSession, ttl time.Duration) error
	GetSession(ctx context.Context, token string) (*models.TableSession, error)
	DeleteSession(ctx context.Context, token string) error

	// Cache invalidation
	InvalidateTenantCache(ctx context.Context, tenantID int64) error
}

type redisCacheService struct {
	client *redis.Client
}

func NewRedisCacheService(addr, password string, db int) CacheService {
	parsedAddr := addr
	if hostPort := strings.TrimPrefix(strings.TrimPrefix(addr, "redis://"), "rediss://"); hostPort != addr {
		parsedAddr = hostPort
	}

	client := redis.NewClient(&redis.Options{
		Addr:     parsedAddr,
		Password: password,
		DB:       db,
	})

	if pingErr := client.Ping(context.Background()).Err(); pingErr != nil {
		log.Printf("WARN: Redis ping failed on initialization: %v (address: %s)", pingErr, parsedAddr)
	}

	return &redisCacheService{client: client}
}

func menuKey(tenantID int64) string {
	return fmt.Sprintf("dinetap:menu:%d", tenantID)
}

func dashboardKey(tenantID int64, rangeKey string) string {
	return fmt.Sprintf("dinetap:dashboard:%d:%s", tenantID, rangeKey)
}

func sessionKey(token string) string {
	return fmt.Sprintf("dinetap:session:%s", token)
}

func (r *redisCacheService) GetMenu(ctx context.Context, tenantID int64) ([]*models.MenuItem, bool, error) {
	data, err := r.client.Get(ctx, menuKey(tenantID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, false, nil // cache miss
		}
		return nil, false, err
	}

	var items []*models.MenuItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, false, err
	}
	if items == nil {
		// An empty menu round-trips through JSON as null; keep the hit
		// non-nil so callers do not mistake it for a miss.
		items = []*models.MenuItem{}
	}
	return items, true, nil
}

func (r *redisCacheService) SetMenu(ctx context.Context, tenantID int64, items []*models.MenuItem, ttl time.Duration) error {
	data, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, menuKey(tenantID), data, ttl).Err()
}

func (r *redisCacheService) DeleteMenu(ctx context.Context, tenantID int64) error {
	return r.client.Del(ctx, menuKey(tenantID)).Err()
}

func (r *redisCacheService) GetDashboard(ctx context.Context, tenantID int64, rangeKey string, dest interface{}) (bool, error) {
	data, err := r.client.Get(ctx, dashboardKey(tenantID, rangeKey)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return false, nil
		}
		return false, err
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, err
	}
	return true, nil
}

func (r *redisCacheService) SetDashboard(ctx context.Context, tenantID int64, rangeKey string, dashboard interface{}, ttl time.Duration) error {
	data, err := json.Marshal(dashboard)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, dashboardKey(tenantID, rangeKey), data, ttl).Err()
}

func (r *redisCacheService) DeleteDashboards(ctx context.Context, tenantID int64) error {
	pattern := fmt.Sprintf("dinetap:dashboard:%d:*", tenantID)
	return r.deleteByPattern(ctx, pattern)
}

func (r *redisCacheService) SetSession(ctx context.Context, session *models.TableSession, ttl time.Duration) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, sessionKey(session.Token), data, ttl).Err()
}

func (r *redisCacheService) GetSession(ctx context.Context, token string) (*models.TableSession, error) {
	data, err := r.client.Get(ctx, sessionKey(token)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var session models.TableSession
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *redisCacheService) DeleteSession(ctx context.Context, token string) error {
	return r.client.Del(ctx, sessionKey(token)).Err()
}

func (r *redisCacheService) InvalidateTenantCache(ctx context.Context, tenantID int64) error {
	if err := r.DeleteMenu(ctx, tenantID); err != nil {
		return err
	}
	return r.DeleteDashboards(ctx, tenantID)
}

func (r *redisCacheService) deleteByPattern(ctx context.Context, pattern string) error {
	iter := r.client.Scan(ctx, 0, pattern, 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return r.client.Del(ctx, keys...).Err()
}
