package permission

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVazio(t *testing.T) {
	c, err := Parse(nil)
	require.NoError(t, err)
	assert.False(t, c.Permite("caixa", "", ""))
}

func TestModuloCompleto(t *testing.T) {
	c, err := Parse([]byte(`{"caixa": {}}`))
	require.NoError(t, err)

	assert.True(t, c.Permite("caixa", "", ""))
	assert.True(t, c.Permite("caixa", "abertura", ""))
	assert.True(t, c.Permite("caixa", "fechamento", "relatorio"))
	assert.False(t, c.Permite("lancamentos", "", ""))
}

func TestTelaRestrita(t *testing.T) {
	raw := []byte(`{"lancamentos": {"telas": {"lista": {}, "pagamento": {"subtelas": ["confirmar"]}}}}`)
	c, err := Parse(raw)
	require.NoError(t, err)

	// módulo visible because at least one tela is granted
	assert.True(t, c.Permite("lancamentos", "", ""))
	// tela with no subtelas listed grants all its subtelas
	assert.True(t, c.Permite("lancamentos", "lista", ""))
	assert.True(t, c.Permite("lancamentos", "lista", "detalhe"))
	// tela with listed subtelas grants only those
	assert.True(t, c.Permite("lancamentos", "pagamento", "confirmar"))
	assert.False(t, c.Permite("lancamentos", "pagamento", "estornar"))
	// tela not granted at all
	assert.False(t, c.Permite("lancamentos", "cadastro", ""))
}

func TestParseInvalido(t *testing.T) {
	_, err := Parse([]byte(`{nope`))
	assert.Error(t, err)
}

func TestConjuntoNil(t *testing.T) {
	var c *Conjunto
	assert.False(t, c.Permite("caixa", "", ""))
}
