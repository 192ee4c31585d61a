package auth

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"picklesaathi/internal/cache"
)

const identityKeyPrefix = "identity:"

// IdentityCacheInterface defines the interface for the reconciled-identity cache.
type IdentityCacheInterface interface {
	StoreUserID(ctx context.Context, externalID string, userID uuid.UUID, ttl time.Duration) error
	GetUserID(ctx context.Context, externalID string) (uuid.UUID, bool)
	Invalidate(ctx context.Context, externalID string) error
}

// IdentityCache keeps the external-subject-id to local-user-id mapping in
// Redis so hot paths skip the email lookup after first reconciliation.
// The store stays authoritative; a miss just means a DB round trip.
type IdentityCache struct {
	cache *cache.Client
}

// Ensure IdentityCache implements IdentityCacheInterface
var _ IdentityCacheInterface = (*IdentityCache)(nil)

// NewIdentityCache creates a new identity cache.
func NewIdentityCache(cache *cache.Client) *IdentityCache {
	return &IdentityCache{cache: cache}
}

// StoreUserID records the mapping with a TTL.
func (s *IdentityCache) StoreUserID(ctx context.Context, externalID string, userID uuid.UUID, ttl time.Duration) error {
	payload, err := json.Marshal(userID.String())
	if err != nil {
		return err
	}
	return s.cache.Set(ctx, identityKeyPrefix+externalID, payload, ttl)
}

// GetUserID resolves an external subject id to a local user id.
func (s *IdentityCache) GetUserID(ctx context.Context, externalID string) (uuid.UUID, bool) {
	data, err := s.cache.Get(ctx, identityKeyPrefix+externalID)
	if err != nil || data == nil {
		return uuid.Nil, false
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// Invalidate drops the mapping for an external subject id.
func (s *IdentityCache) Invalidate(ctx context.Context, externalID string) error {
	return s.cache.Delete(ctx, identityKeyPrefix+externalID)
}
