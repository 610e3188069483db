package dto

import "github.com/shopspring/decimal"

// ─── Tarifa ──────────────────────────────────────────────────────────────────

// TarifaRequest mirrors model.Tarifa for the global configuração and for
// per-item overrides.
type TarifaRequest struct {
	TempoInicialMinutos *int            `json:"tempo_inicial_minutos" validate:"omitempty,min=1"`
	ValorInicial        decimal.Decimal `json:"valor_inicial"         validate:"min=0"`
	TempoCicloMinutos   *int            `json:"tempo_ciclo_minutos"   validate:"omitempty,min=1"`
	ValorCiclo          decimal.Decimal `json:"valor_ciclo"           validate:"min=0"`
}

type TarifaResponse struct {
	TempoInicialMinutos *int            `json:"tempo_inicial_minutos"`
	ValorInicial        decimal.Decimal `json:"valor_inicial"`
	TempoCicloMinutos   *int            `json:"tempo_ciclo_minutos"`
	ValorCiclo          decimal.Decimal `json:"valor_ciclo"`
}

// ─── Item ────────────────────────────────────────────────────────────────────

type ItemRequest struct {
	Nome      string  `json:"nome" validate:"required,min=2"`
	Descricao *string `json:"descricao"`
	// Tarifa, when present, replaces the global tarifa for this item.
	Tarifa *TarifaRequest `json:"tarifa"`
}

type ItemResponse struct {
	ID        string          `json:"id"`
	Nome      string          `json:"nome"`
	Descricao *string         `json:"descricao"`
	Tarifa    *TarifaResponse `json:"tarifa"`
	Ativo     bool            `json:"ativo"`
}

// ─── Cliente ─────────────────────────────────────────────────────────────────

type ClienteRequest struct {
	Nome        string  `json:"nome" validate:"required,min=2"`
	Responsavel *string `json:"responsavel"`
	Telefone    *string `json:"telefone"`
	Documento   *string `json:"documento"`
	Observacoes *string `json:"observacoes"`
}

type ClienteResponse struct {
	ID          string  `json:"id"`
	Nome        string  `json:"nome"`
	Responsavel *string `json:"responsavel"`
	Telefone    *string `json:"telefone"`
	Documento   *string `json:"documento"`
	Observacoes *string `json:"observacoes"`
	Ativo       bool    `json:"ativo"`
}

// ─── Método de pagamento ─────────────────────────────────────────────────────

type MetodoPagamentoRequest struct {
	Nome string `json:"nome" validate:"required,min=2"`
}

type MetodoPagamentoResponse struct {
	ID    string `json:"id"`
	Nome  string `json:"nome"`
	Ativo bool   `json:"ativo"`
}
