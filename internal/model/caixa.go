package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Caixa estados
const (
	CaixaAberto  = "aberto"
	CaixaFechado = "fechado"
)

// Movimento tipos
const (
	MovimentoSangria    = "sangria"
	MovimentoSuprimento = "suprimento"
)

// Caixa represents a physical cash drawer with an open/close lifecycle.
// A caixa is created fechado; Abrir sets AbertoEm and FundoTroco and starts a
// new opening. Movements are never deleted — the ledger of the current opening
// is the set of MovimentoCaixa with OcorridoEm >= AbertoEm.
type Caixa struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nome       string          `gorm:"uniqueIndex;not null"`
	Estado     string          `gorm:"type:varchar(20);not null;default:'fechado'"`
	FundoTroco decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	AbertoEm   *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time

	Movimentos []MovimentoCaixa `gorm:"foreignKey:CaixaID"`
}

// MovimentoCaixa is an immutable entry in the cash drawer ledger.
// Tipo: "sangria" (withdrawal) | "suprimento" (deposit)
// Valor is always positive; the sign is implied by Tipo.
// Movements are NEVER modified or deleted.
type MovimentoCaixa struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CaixaID    uuid.UUID       `gorm:"type:uuid;index;not null"`
	Tipo       string          `gorm:"type:varchar(20);not null"`
	Valor      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Motivo     *string
	OcorridoEm time.Time `gorm:"index;not null"`
}
