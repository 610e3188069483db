package model

import (
	"time"

	"github.com/google/uuid"
)

// MetodoPagamento is a payment method available at the register
// (dinheiro, pix, débito, crédito…).
type MetodoPagamento struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nome      string    `gorm:"uniqueIndex;not null"`
	Ativo     bool      `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
