// Package userrepo is the directory service: principals and their bcrypt
// hashed secrets stored with GORM.
package userrepo

import (
	"production/internal/core/domain/model/principal"
	"production/internal/core/domain/model/stage"
)

// PrincipalDTO is a directory entry.
type PrincipalDTO struct {
	Username   string `gorm:"primaryKey;size:128"`
	Role       string `gorm:"size:32;index;not null"`
	Stage      string `gorm:"size:64"`
	SecretHash []byte `gorm:"not null"`
}

// TableName overrides GORM's default naming.
func (PrincipalDTO) TableName() string {
	return "principals"
}

func fromDomain(p principal.Principal) PrincipalDTO {
	assigned, _ := p.AssignedStage()
	return PrincipalDTO{
		Username: p.Username(),
		Role:     p.Role().String(),
		Stage:    assigned.String(),
	}
}

func toDomain(dto PrincipalDTO) (principal.Principal, error) {
	role, err := principal.ParseRole(dto.Role)
	if err != nil {
		return principal.Principal{}, err
	}
	return principal.New(dto.Username, role, stage.Stage(dto.Stage))
}
