package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CriarLancamentoRequest struct {
	Origem    string  `json:"origem"     validate:"omitempty,oneof=parque estacionamento"`
	ClienteID *string `json:"cliente_id" validate:"omitempty,uuid"`
	ItemID    *string `json:"item_id"    validate:"omitempty,uuid"`
	CaixaID   *string `json:"caixa_id"   validate:"omitempty,uuid"`
	// TempoMinutos nil = tempo livre
	TempoMinutos *int `json:"tempo_minutos" validate:"omitempty,min=0"`
}

type AtualizarTempoRequest struct {
	// TempoMinutos nil switches the lançamento to tempo livre, keeping the
	// last computed price frozen.
	TempoMinutos *int `json:"tempo_minutos" validate:"omitempty,min=0"`
}

type PagarLancamentoRequest struct {
	MetodoPagamentoID string `json:"metodo_pagamento_id" validate:"required,uuid"`
}

type LancamentoFilter struct {
	Estado string `form:"estado" validate:"omitempty,oneof=aberto pago cancelado"`
	Origem string `form:"origem" validate:"omitempty,oneof=parque estacionamento"`
	Dia    string `form:"dia"    validate:"omitempty,datetime=2006-01-02"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type LancamentoResponse struct {
	ID                string          `json:"id"`
	Origem            string          `json:"origem"`
	ClienteID         *string         `json:"cliente_id"`
	ItemID            *string         `json:"item_id"`
	CaixaID           *string         `json:"caixa_id"`
	TempoMinutos      *int            `json:"tempo_minutos"`
	Valor             decimal.Decimal `json:"valor"`
	Estado            string          `json:"estado"` // aberto | pago | cancelado
	MetodoPagamentoID *string         `json:"metodo_pagamento_id"`
	CriadoEm          string          `json:"criado_em"`
}
