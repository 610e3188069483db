package service

import (
	"context"
	"testing"

	"parquepos/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Without a configuração row the global tarifa is zero (flat R$ 0), not an
// error — a fresh install prices everything at zero until configured.
func TestObterGlobalSemConfiguracao(t *testing.T) {
	svc := NewTarifaService(&fakeConfiguracaoRepo{}, nil)

	tarifa, err := svc.ObterGlobal(context.Background())

	require.NoError(t, err)
	assert.Nil(t, tarifa.TempoInicialMinutos)
	assert.True(t, tarifa.ValorInicial.IsZero())
}

func TestAtualizarGlobal(t *testing.T) {
	repo := &fakeConfiguracaoRepo{}
	svc := NewTarifaService(repo, nil)
	ctx := context.Background()

	resp, err := svc.AtualizarGlobal(ctx, dto.TarifaRequest{
		TempoInicialMinutos: intPtr(30),
		ValorInicial:        dec("20.00"),
		TempoCicloMinutos:   intPtr(15),
		ValorCiclo:          dec("5.00"),
	})

	require.NoError(t, err)
	require.NotNil(t, resp.TempoInicialMinutos)
	assert.Equal(t, 30, *resp.TempoInicialMinutos)

	tarifa, err := svc.ObterGlobal(ctx)
	require.NoError(t, err)
	assert.Equal(t, "20", tarifa.ValorInicial.String())
	require.NotNil(t, tarifa.TempoCicloMinutos)
	assert.Equal(t, 15, *tarifa.TempoCicloMinutos)
}
