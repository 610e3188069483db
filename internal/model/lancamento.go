package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Lancamento estados
const (
	LancamentoAberto    = "aberto"
	LancamentoPago      = "pago"
	LancamentoCancelado = "cancelado"
)

// Lancamento origens
const (
	OrigemParque         = "parque"
	OrigemEstacionamento = "estacionamento"
)

// Lancamento is a billable timed session: a child playing in the park or a
// vehicle in the attached parking lot (both share pricing and lifecycle).
//
// TempoMinutos nil means "tempo livre" (unlimited); the engine prices it as
// zero and the service keeps the last non-zero computed Valor frozen.
//
// Lifecycle: aberto → pago | cancelado. Both are terminal; the transition is a
// compare-and-set on Estado so a second concurrent pay/cancel fails instead of
// silently succeeding.
type Lancamento struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Origem       string    `gorm:"type:varchar(20);not null;default:'parque'"`
	ClienteID    *uuid.UUID `gorm:"type:uuid;index"`
	ItemID       *uuid.UUID `gorm:"type:uuid;index"`
	// CaixaID records which caixa was open when the lançamento was created.
	// Closing reports still match by calendar day (see caixa_service).
	CaixaID           *uuid.UUID      `gorm:"type:uuid;index"`
	TempoMinutos      *int
	Valor             decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Estado            string          `gorm:"type:varchar(20);not null;default:'aberto'"`
	MetodoPagamentoID *uuid.UUID      `gorm:"type:uuid"`
	CreatedAt         time.Time       `gorm:"index"`
	UpdatedAt         time.Time

	Cliente *Cliente         `gorm:"foreignKey:ClienteID"`
	Item    *Item            `gorm:"foreignKey:ItemID"`
	Metodo  *MetodoPagamento `gorm:"foreignKey:MetodoPagamentoID"`
}
