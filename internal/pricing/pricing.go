// Package pricing computes the price of a timed session from a tarifa.
// It is pure: no repositories, no clock, no errors.
package pricing

import (
	"parquepos/internal/model"

	"github.com/shopspring/decimal"
)

// Calcular returns the price of a session of tempoMinutos under tarifa.
//
// tempoMinutos nil means "tempo livre": the engine always returns zero and the
// caller is responsible for carrying forward a previously computed price when
// that policy applies (see LancamentoService.AtualizarTempo).
//
// Rules:
//   - no initial window → flat ValorInicial for any duration
//   - tempo <= window (including tempo == 0) → ValorInicial
//   - window exceeded but no cycle configured → ValorInicial
//   - otherwise ValorInicial + (started cycles over the window) × ValorCiclo
func Calcular(tarifa model.Tarifa, tempoMinutos *int) decimal.Decimal {
	if tempoMinutos == nil {
		return decimal.Zero
	}

	if tarifa.TempoInicialMinutos == nil {
		// Flat fee, unlimited time.
		return tarifa.ValorInicial
	}

	tempo := *tempoMinutos
	janela := *tarifa.TempoInicialMinutos
	if tempo <= janela {
		return tarifa.ValorInicial
	}

	if tarifa.TempoCicloMinutos == nil {
		return tarifa.ValorInicial
	}

	ciclo := *tarifa.TempoCicloMinutos
	if ciclo < 1 {
		// Misconfigured cycle length is clamped, never an error.
		ciclo = 1
	}

	excedente := tempo - janela
	ciclos := (excedente + ciclo - 1) / ciclo
	return tarifa.ValorInicial.Add(tarifa.ValorCiclo.Mul(decimal.NewFromInt(int64(ciclos))))
}

// Resolver picks the tarifa for a lançamento: the item's own tarifa when the
// item defines one, otherwise the global tarifa. No field merging.
func Resolver(global model.Tarifa, item *model.Item) model.Tarifa {
	if override := item.TarifaOverride(); override != nil {
		return *override
	}
	return global
}
