package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"picklesaathi/internal/auth"
	"picklesaathi/internal/errors"
	"picklesaathi/internal/model"
	"picklesaathi/internal/repository"
)

const (
	identityCacheTTL = 30 * time.Minute
	defaultLocation  = "Ahmedabad"
)

// IdentityService maps identities issued by the auth provider onto local
// user rows: exactly one row per identity, created or linked on demand.
type IdentityService interface {
	// Reconcile resolves an identity to its user row, creating or
	// backfilling as needed. A nil identity resolves to (nil, nil):
	// anonymous is a valid outcome, not an error.
	Reconcile(ctx context.Context, ident *auth.Identity) (*model.User, error)
	// CurrentUser resolves an identity to an existing row without
	// creating one.
	CurrentUser(ctx context.Context, ident *auth.Identity) (*model.User, error)
}

type identityService struct {
	users   repository.UserRepository
	idCache auth.IdentityCacheInterface
}

// NewIdentityService creates a new identity service.
func NewIdentityService(users repository.UserRepository, idCache auth.IdentityCacheInterface) IdentityService {
	return &identityService{users: users, idCache: idCache}
}

// Reconcile implements the email-first resolution order: the email is the
// durable natural key, since external ids may be absent on rows created
// before the provider migration.
func (s *identityService) Reconcile(ctx context.Context, ident *auth.Identity) (*model.User, error) {
	if ident == nil {
		return nil, nil
	}

	email, err := ident.PrimaryEmail()
	if err != nil {
		return nil, errors.ErrInvalidClaims
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil && err != gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("find user by email: %w", err)
	}

	if user != nil {
		if !user.Linked() {
			// Legacy row: link it instead of creating a duplicate account.
			externalID := ident.ExternalID
			user.ExternalID = &externalID
			if err := s.users.Update(ctx, user); err != nil {
				return nil, fmt.Errorf("backfill external id: %w", err)
			}
		}
		_ = s.idCache.StoreUserID(ctx, ident.ExternalID, user.ID, identityCacheTTL)
		return user, nil
	}

	externalID := ident.ExternalID
	user = &model.User{
		ExternalID: &externalID,
		Email:      email,
		Name:       ident.FullName(),
		Username:   usernameFor(ident, email),
		AvatarURL:  ident.AvatarURL,
		Location:   defaultLocation,
		SkillLevel: model.SkillBeginner,
	}

	if err := s.users.Create(ctx, user); err != nil {
		// A concurrent first login may have won the unique-email race;
		// the row it created is the one we want.
		if existing, findErr := s.users.FindByEmail(ctx, email); findErr == nil {
			_ = s.idCache.StoreUserID(ctx, ident.ExternalID, existing.ID, identityCacheTTL)
			return existing, nil
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	_ = s.idCache.StoreUserID(ctx, ident.ExternalID, user.ID, identityCacheTTL)
	return user, nil
}

// CurrentUser resolves through the identity cache first, falling back to
// the external id column.
func (s *identityService) CurrentUser(ctx context.Context, ident *auth.Identity) (*model.User, error) {
	if ident == nil {
		return nil, nil
	}

	if id, ok := s.idCache.GetUserID(ctx, ident.ExternalID); ok {
		user, err := s.users.FindByID(ctx, id)
		if err == nil {
			return user, nil
		}
		// Stale mapping; fall through to the authoritative lookup.
		_ = s.idCache.Invalidate(ctx, ident.ExternalID)
	}

	user, err := s.users.FindByExternalID(ctx, ident.ExternalID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user by external id: %w", err)
	}

	_ = s.idCache.StoreUserID(ctx, ident.ExternalID, user.ID, identityCacheTTL)
	return user, nil
}

// usernameFor prefers the provider's username claim and falls back to the
// local part of the email address.
func usernameFor(ident *auth.Identity, email string) string {
	if ident.Username != "" {
		return ident.Username
	}
	if at := strings.Index(email, "@"); at >= 0 {
		return email[:at]
	}
	return email
}
