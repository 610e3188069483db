package model

import (
	"time"

	"github.com/google/uuid"
)

// Cliente stores the responsible adult and the child attached to a lançamento.
type Cliente struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nome        string    `gorm:"index;not null"`
	Responsavel *string
	Telefone    *string
	Documento   *string `gorm:"index"`
	Observacoes *string
	Ativo       bool `gorm:"not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
