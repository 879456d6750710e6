package userrepo

import (
	"context"
	"errors"
	"strings"

	"production/internal/core/domain/model/principal"
	"production/internal/core/ports"
	"production/internal/pkg/errs"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormDirectory implements ports.Directory. Secrets are hashed with bcrypt
// on write and only compared on read.
type GormDirectory struct {
	db   *gorm.DB
	cost int
}

// NewGormDirectory creates a directory. A cost below bcrypt.MinCost falls
// back to bcrypt.DefaultCost.
func NewGormDirectory(db *gorm.DB, cost int) *GormDirectory {
	if cost < bcrypt.MinCost {
		cost = bcrypt.DefaultCost
	}
	return &GormDirectory{db: db, cost: cost}
}

// Authenticate returns ports.ErrAuthenticationFailed for unknown users and
// wrong secrets alike.
func (d *GormDirectory) Authenticate(ctx context.Context, username, secret string) (principal.Principal, error) {
	dto, err := d.find(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return principal.Principal{}, ports.ErrAuthenticationFailed
		}
		return principal.Principal{}, err
	}

	if err = bcrypt.CompareHashAndPassword(dto.SecretHash, []byte(secret)); err != nil {
		return principal.Principal{}, ports.ErrAuthenticationFailed
	}

	return toDomain(dto)
}

// Get returns the principal or errs.ErrObjectNotFound.
func (d *GormDirectory) Get(ctx context.Context, username string) (principal.Principal, error) {
	dto, err := d.find(ctx, strings.TrimSpace(username))
	if err != nil {
		return principal.Principal{}, err
	}
	return toDomain(dto)
}

// ListPrincipals returns every principal ordered by username.
func (d *GormDirectory) ListPrincipals(ctx context.Context) ([]principal.Principal, error) {
	var dtos []PrincipalDTO
	if err := d.db.WithContext(ctx).Order("username").Find(&dtos).Error; err != nil {
		return nil, err
	}

	result := make([]principal.Principal, 0, len(dtos))
	for _, dto := range dtos {
		p, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	return result, nil
}

// CreatePrincipal inserts a new entry. The insert skips an existing username
// instead of failing, and a skipped insert reports
// ports.ErrPrincipalAlreadyExists.
func (d *GormDirectory) CreatePrincipal(ctx context.Context, p principal.Principal, secret string) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if secret == "" {
		return errs.NewValueIsRequiredError("secret")
	}

	hash, err := d.hash(secret)
	if err != nil {
		return err
	}

	dto := fromDomain(p)
	dto.SecretHash = hash

	result := d.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "username"}}, DoNothing: true}).
		Create(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrPrincipalAlreadyExists
	}
	return nil
}

// UpsertPrincipal creates or replaces the entry. An empty secret keeps the
// stored hash.
func (d *GormDirectory) UpsertPrincipal(ctx context.Context, p principal.Principal, secret string) error {
	if err := p.Validate(); err != nil {
		return err
	}

	dto := fromDomain(p)

	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if secret == "" {
			var existing PrincipalDTO
			err := tx.First(&existing, "username = ?", dto.Username).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errs.NewValueIsRequiredError("secret")
			}
			if err != nil {
				return err
			}
			dto.SecretHash = existing.SecretHash
		} else {
			hash, err := d.hash(secret)
			if err != nil {
				return err
			}
			dto.SecretHash = hash
		}

		return tx.Save(&dto).Error
	})
}

// RemovePrincipal deletes the entry or returns errs.ErrObjectNotFound.
func (d *GormDirectory) RemovePrincipal(ctx context.Context, username string) error {
	result := d.db.WithContext(ctx).Delete(&PrincipalDTO{}, "username = ?", strings.TrimSpace(username))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("principal", username)
	}
	return nil
}

func (d *GormDirectory) find(ctx context.Context, username string) (PrincipalDTO, error) {
	var dto PrincipalDTO
	if err := d.db.WithContext(ctx).First(&dto, "username = ?", username).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PrincipalDTO{}, errs.NewObjectNotFoundError("principal", username)
		}
		return PrincipalDTO{}, err
	}
	return dto, nil
}

func (d *GormDirectory) hash(secret string) ([]byte, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), d.cost)
	if err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("secret", err)
	}
	return hash, nil
}
