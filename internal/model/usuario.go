package model

import (
	"time"

	"github.com/google/uuid"
)

// Usuario stores system users with role-based access.
// Perfil: "operador" | "supervisor" | "administrador"
type Usuario struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Username     string    `gorm:"uniqueIndex;not null"`
	Nome         string    `gorm:"not null"`
	Email        *string
	PasswordHash string `gorm:"not null"`
	Perfil       string `gorm:"type:varchar(20);not null"`
	// Permissoes is the serialized capability set (see internal/permission).
	// Empty means the profile's defaults apply.
	Permissoes *string `gorm:"type:jsonb"`
	// CaixaID restricts the user to a single caixa; nil = any caixa.
	CaixaID   *uuid.UUID `gorm:"type:uuid"`
	Ativo     bool       `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
