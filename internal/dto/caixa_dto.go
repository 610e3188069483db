package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CriarCaixaRequest struct {
	Nome string `json:"nome" validate:"required,min=2"`
}

type AbrirCaixaRequest struct {
	FundoTroco decimal.Decimal `json:"fundo_troco" validate:"min=0"`
}

type MovimentoRequest struct {
	Tipo   string          `json:"tipo"   validate:"required,oneof=sangria suprimento"`
	Valor  decimal.Decimal `json:"valor"  validate:"required,gt=0"`
	Motivo *string         `json:"motivo"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type CaixaResponse struct {
	ID         string          `json:"id"`
	Nome       string          `json:"nome"`
	Estado     string          `json:"estado"` // aberto | fechado
	FundoTroco decimal.Decimal `json:"fundo_troco"`
	AbertoEm   *string         `json:"aberto_em"`
}

type MovimentoResponse struct {
	ID         string          `json:"id"`
	CaixaID    string          `json:"caixa_id"`
	Tipo       string          `json:"tipo"`
	Valor      decimal.Decimal `json:"valor"`
	Motivo     *string         `json:"motivo"`
	OcorridoEm string          `json:"ocorrido_em"`
}

type VendaPorMetodo struct {
	MetodoPagamentoID string          `json:"metodo_pagamento_id"`
	Metodo            string          `json:"metodo"`
	Total             decimal.Decimal `json:"total"`
}

// RelatorioFechamentoResponse is the end-of-day reconciliation: sales of the
// caixa's business day plus the current opening's manual movements.
type RelatorioFechamentoResponse struct {
	CaixaID          string           `json:"caixa_id"`
	Nome             string           `json:"nome"`
	Estado           string           `json:"estado"`
	AbertoEm         *string          `json:"aberto_em"`
	FundoTroco       decimal.Decimal  `json:"fundo_troco"`
	TotalVendas      decimal.Decimal  `json:"total_vendas"`
	VendasPorMetodo  []VendaPorMetodo `json:"vendas_por_metodo"`
	TotalSangrias    decimal.Decimal  `json:"total_sangrias"`
	TotalSuprimentos decimal.Decimal  `json:"total_suprimentos"`
	SaldoEsperado    decimal.Decimal  `json:"saldo_esperado"`
}
