package model

import "github.com/shopspring/decimal"

// Tarifa is the billing rule applied to timed sessions: a base fee covering an
// initial time window, plus a metered fee per started cycle beyond it.
//
//   - TempoInicialMinutos nil → flat fee, unlimited time (ciclo fields ignored)
//   - TempoCicloMinutos nil   → overage is not metered beyond the window
//
// Defined globally (Configuracao) or overridden per item; the override
// supersedes the global tarifa entirely, field by field merging never happens.
type Tarifa struct {
	TempoInicialMinutos *int            `json:"tempo_inicial_minutos"`
	ValorInicial        decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"valor_inicial"`
	TempoCicloMinutos   *int            `json:"tempo_ciclo_minutos"`
	ValorCiclo          decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"valor_ciclo"`
}

// Configuracao is the singleton row holding site-wide settings, currently only
// the global tarifa. ID is always 1.
type Configuracao struct {
	ID     int    `gorm:"primaryKey"`
	Tarifa Tarifa `gorm:"embedded;embeddedPrefix:tarifa_"`
}
