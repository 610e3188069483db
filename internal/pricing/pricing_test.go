package pricing

import (
	"testing"

	"parquepos/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func intp(v int) *int { return &v }

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func tarifaPadrao() model.Tarifa {
	return model.Tarifa{
		TempoInicialMinutos: intp(30),
		ValorInicial:        dec("20.00"),
		TempoCicloMinutos:   intp(15),
		ValorCiclo:          dec("10.00"),
	}
}

func TestCalcularDentroDaJanela(t *testing.T) {
	tarifa := tarifaPadrao()

	for _, tempo := range []int{1, 15, 29, 30} {
		assert.True(t, Calcular(tarifa, intp(tempo)).Equal(dec("20.00")),
			"tempo=%d deve cobrar apenas o valor inicial", tempo)
	}
}

func TestCalcularTempoZero(t *testing.T) {
	// Zero minutes is "at or below window", never free.
	assert.True(t, Calcular(tarifaPadrao(), intp(0)).Equal(dec("20.00")))
}

func TestCalcularComExcedente(t *testing.T) {
	tarifa := tarifaPadrao()

	cases := []struct {
		tempo   int
		esperado string
	}{
		{31, "30.00"},  // 1 min over → 1 ciclo
		{40, "30.00"},  // 10 min over → ceil(10/15) = 1
		{45, "30.00"},  // exactly 1 ciclo
		{46, "40.00"},  // 16 min over → 2 ciclos
		{90, "60.00"},  // 60 min over → 4 ciclos
	}
	for _, tc := range cases {
		got := Calcular(tarifa, intp(tc.tempo))
		assert.True(t, got.Equal(dec(tc.esperado)),
			"tempo=%d: esperado %s, obtido %s", tc.tempo, tc.esperado, got)
	}
}

func TestCalcularTempoLivre(t *testing.T) {
	// nil minutes prices as zero for any tarifa; the frozen-price policy
	// lives in the service layer, not here.
	assert.True(t, Calcular(tarifaPadrao(), nil).IsZero())
	assert.True(t, Calcular(model.Tarifa{ValorInicial: dec("99.00")}, nil).IsZero())
}

func TestCalcularTarifaFixa(t *testing.T) {
	// No initial window → flat fee regardless of duration, ciclo ignored.
	tarifa := model.Tarifa{
		ValorInicial:      dec("15.00"),
		TempoCicloMinutos: intp(10),
		ValorCiclo:        dec("5.00"),
	}
	for _, tempo := range []int{0, 1, 60, 600} {
		assert.True(t, Calcular(tarifa, intp(tempo)).Equal(dec("15.00")),
			"tarifa fixa deve ignorar tempo=%d", tempo)
	}
}

func TestCalcularSemCicloConfigurado(t *testing.T) {
	// Window set but no cycle: overage is not metered.
	tarifa := model.Tarifa{
		TempoInicialMinutos: intp(30),
		ValorInicial:        dec("20.00"),
	}
	assert.True(t, Calcular(tarifa, intp(25)).Equal(dec("20.00")))
	assert.True(t, Calcular(tarifa, intp(120)).Equal(dec("20.00")))
}

func TestCalcularCicloInvalidoClampado(t *testing.T) {
	// ciclo <= 0 is clamped to 1 minute instead of raising.
	tarifa := model.Tarifa{
		TempoInicialMinutos: intp(10),
		ValorInicial:        dec("10.00"),
		TempoCicloMinutos:   intp(0),
		ValorCiclo:          dec("1.00"),
	}
	// 5 min over → 5 ciclos of 1 min
	assert.True(t, Calcular(tarifa, intp(15)).Equal(dec("15.00")))
}

func TestCalcularSemDriftDeCentavos(t *testing.T) {
	// Decimal arithmetic: 0.10 × 3 ciclos must be exactly 0.30 over the base.
	tarifa := model.Tarifa{
		TempoInicialMinutos: intp(10),
		ValorInicial:        dec("0.10"),
		TempoCicloMinutos:   intp(10),
		ValorCiclo:          dec("0.10"),
	}
	got := Calcular(tarifa, intp(40)) // 30 min over → 3 ciclos
	assert.Equal(t, "0.40", got.StringFixed(2))
}

func TestResolverTarifaDoItem(t *testing.T) {
	global := tarifaPadrao()
	item := &model.Item{
		TarifaPropria: true,
		Tarifa:        model.Tarifa{ValorInicial: dec("15.00")},
	}

	resolved := Resolver(global, item)
	// Override replaces the global tarifa entirely — no window inherited.
	assert.Nil(t, resolved.TempoInicialMinutos)
	assert.True(t, Calcular(resolved, intp(240)).Equal(dec("15.00")))
}

func TestResolverSemOverride(t *testing.T) {
	global := tarifaPadrao()

	semTarifa := &model.Item{TarifaPropria: false, Tarifa: model.Tarifa{ValorInicial: dec("1.00")}}
	assert.True(t, Resolver(global, semTarifa).ValorInicial.Equal(dec("20.00")))

	var nenhum *model.Item
	assert.True(t, Resolver(global, nenhum).ValorInicial.Equal(dec("20.00")))
}
