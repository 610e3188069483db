package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"parquepos/internal/dto"
	"parquepos/internal/model"
	"parquepos/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// ── In-memory CaixaRepository ────────────────────────────────────────────────

type fakeCaixaRepo struct {
	mu         sync.Mutex
	caixas     map[uuid.UUID]*model.Caixa
	movimentos []model.MovimentoCaixa
}

func newFakeCaixaRepo() *fakeCaixaRepo {
	return &fakeCaixaRepo{caixas: make(map[uuid.UUID]*model.Caixa)}
}

func (r *fakeCaixaRepo) Create(_ context.Context, c *model.Caixa) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	c.CreatedAt = time.Now()
	r.caixas[c.ID] = c
	return nil
}

func (r *fakeCaixaRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Caixa, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.caixas[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *c
	return &clone, nil
}

func (r *fakeCaixaRepo) List(_ context.Context) ([]model.Caixa, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.Caixa, 0, len(r.caixas))
	for _, c := range r.caixas {
		out = append(out, *c)
	}
	return out, nil
}

func (r *fakeCaixaRepo) Abrir(_ context.Context, id uuid.UUID, fundoTroco decimal.Decimal, abertoEm time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.caixas[id]
	if !ok || c.Estado != model.CaixaFechado {
		return false, nil
	}
	c.Estado = model.CaixaAberto
	c.FundoTroco = fundoTroco
	c.AbertoEm = &abertoEm
	return true, nil
}

func (r *fakeCaixaRepo) Fechar(_ context.Context, id uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.caixas[id]
	if !ok || c.Estado != model.CaixaAberto {
		return false, nil
	}
	c.Estado = model.CaixaFechado
	return true, nil
}

func (r *fakeCaixaRepo) CreateMovimento(_ context.Context, m *model.MovimentoCaixa) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	r.movimentos = append(r.movimentos, *m)
	return nil
}

func (r *fakeCaixaRepo) ListMovimentosDesde(_ context.Context, caixaID uuid.UUID, desde time.Time) ([]model.MovimentoCaixa, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.MovimentoCaixa
	for _, m := range r.movimentos {
		if m.CaixaID == caixaID && !m.OcorridoEm.Before(desde) {
			out = append(out, m)
		}
	}
	return out, nil
}

var _ repository.CaixaRepository = (*fakeCaixaRepo)(nil)

// ── In-memory MetodoPagamentoRepository ──────────────────────────────────────

type fakeMetodoRepo struct {
	metodos map[uuid.UUID]*model.MetodoPagamento
}

func newFakeMetodoRepo() *fakeMetodoRepo {
	return &fakeMetodoRepo{metodos: make(map[uuid.UUID]*model.MetodoPagamento)}
}

func (r *fakeMetodoRepo) Create(_ context.Context, m *model.MetodoPagamento) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	r.metodos[m.ID] = m
	return nil
}

func (r *fakeMetodoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.MetodoPagamento, error) {
	m, ok := r.metodos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return m, nil
}

func (r *fakeMetodoRepo) List(_ context.Context) ([]model.MetodoPagamento, error) {
	out := make([]model.MetodoPagamento, 0, len(r.metodos))
	for _, m := range r.metodos {
		out = append(out, *m)
	}
	return out, nil
}

func (r *fakeMetodoRepo) Update(_ context.Context, m *model.MetodoPagamento) error {
	r.metodos[m.ID] = m
	return nil
}

var _ repository.MetodoPagamentoRepository = (*fakeMetodoRepo)(nil)

// ── Helpers ──────────────────────────────────────────────────────────────────

func novoCaixaServiceTeste() (CaixaService, *fakeCaixaRepo, *fakeLancamentoRepo, *fakeMetodoRepo) {
	caixaRepo := newFakeCaixaRepo()
	lancRepo := newFakeLancamentoRepo()
	metodoRepo := newFakeMetodoRepo()
	svc := NewCaixaService(caixaRepo, lancRepo, metodoRepo, nil)
	return svc, caixaRepo, lancRepo, metodoRepo
}

func criarCaixa(t *testing.T, svc CaixaService, nome string) uuid.UUID {
	t.Helper()
	resp, err := svc.Criar(context.Background(), dto.CriarCaixaRequest{Nome: nome})
	require.NoError(t, err)
	id, err := uuid.Parse(resp.ID)
	require.NoError(t, err)
	return id
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// ── Abrir ────────────────────────────────────────────────────────────────────

func TestAbrirCaixa(t *testing.T) {
	svc, _, _, _ := novoCaixaServiceTeste()
	id := criarCaixa(t, svc, "Caixa 1")

	resp, err := svc.Abrir(context.Background(), id, dto.AbrirCaixaRequest{FundoTroco: dec("100.00")})

	require.NoError(t, err)
	assert.Equal(t, model.CaixaAberto, resp.Estado)
	assert.Equal(t, "100", resp.FundoTroco.String())
	require.NotNil(t, resp.AbertoEm)
}

func TestAbrirCaixaJaAberto(t *testing.T) {
	svc, _, _, _ := novoCaixaServiceTeste()
	id := criarCaixa(t, svc, "Caixa 1")

	_, err := svc.Abrir(context.Background(), id, dto.AbrirCaixaRequest{FundoTroco: dec("100.00")})
	require.NoError(t, err)

	_, err = svc.Abrir(context.Background(), id, dto.AbrirCaixaRequest{FundoTroco: dec("50.00")})
	assert.ErrorIs(t, err, ErrEstadoInvalido)
}

func TestAbrirCaixaFundoNegativo(t *testing.T) {
	svc, _, _, _ := novoCaixaServiceTeste()
	id := criarCaixa(t, svc, "Caixa 1")

	_, err := svc.Abrir(context.Background(), id, dto.AbrirCaixaRequest{FundoTroco: dec("-1.00")})
	assert.ErrorIs(t, err, ErrValorInvalido)
}

func TestAbrirCaixaInexistente(t *testing.T) {
	svc, _, _, _ := novoCaixaServiceTeste()

	_, err := svc.Abrir(context.Background(), uuid.New(), dto.AbrirCaixaRequest{FundoTroco: dec("100.00")})
	assert.ErrorIs(t, err, ErrNaoEncontrado)
}

// Exactly one of N concurrent opens wins the compare-and-set.
func TestAbrirCaixaConcorrente(t *testing.T) {
	svc, _, _, _ := novoCaixaServiceTeste()
	id := criarCaixa(t, svc, "Caixa 1")

	const n = 10
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Abrir(context.Background(), id, dto.AbrirCaixaRequest{FundoTroco: dec("100.00")})
		}(i)
	}
	wg.Wait()

	sucessos := 0
	for _, err := range errs {
		if err == nil {
			sucessos++
		} else {
			assert.ErrorIs(t, err, ErrEstadoInvalido)
		}
	}
	assert.Equal(t, 1, sucessos)
}

// ── Fechar ───────────────────────────────────────────────────────────────────

func TestFecharCaixa(t *testing.T) {
	svc, _, _, _ := novoCaixaServiceTeste()
	id := criarCaixa(t, svc, "Caixa 1")
	_, err := svc.Abrir(context.Background(), id, dto.AbrirCaixaRequest{FundoTroco: dec("100.00")})
	require.NoError(t, err)

	relatorio, err := svc.Fechar(context.Background(), id)

	require.NoError(t, err)
	assert.Equal(t, model.CaixaFechado, relatorio.Estado)
	assert.Equal(t, "100", relatorio.SaldoEsperado.String())
}

func TestFecharCaixaJaFechado(t *testing.T) {
	svc, _, _, _ := novoCaixaServiceTeste()
	id := criarCaixa(t, svc, "Caixa 1")

	_, err := svc.Fechar(context.Background(), id)
	assert.ErrorIs(t, err, ErrEstadoInvalido)
}

// ── Movimentos ───────────────────────────────────────────────────────────────

func TestRegistrarMovimento(t *testing.T) {
	svc, _, _, _ := novoCaixaServiceTeste()
	id := criarCaixa(t, svc, "Caixa 1")
	_, err := svc.Abrir(context.Background(), id, dto.AbrirCaixaRequest{FundoTroco: dec("100.00")})
	require.NoError(t, err)

	motivo := "troco para o turno da tarde"
	resp, err := svc.RegistrarMovimento(context.Background(), id, dto.MovimentoRequest{
		Tipo:   model.MovimentoSangria,
		Valor:  dec("20.00"),
		Motivo: &motivo,
	})

	require.NoError(t, err)
	assert.Equal(t, model.MovimentoSangria, resp.Tipo)
	assert.Equal(t, "20", resp.Valor.String())

	movs, err := svc.ListarMovimentos(context.Background(), id)
	require.NoError(t, err)
	require.Len(t, movs, 1)
}

func TestRegistrarMovimentoCaixaFechado(t *testing.T) {
	svc, _, _, _ := novoCaixaServiceTeste()
	id := criarCaixa(t, svc, "Caixa 1")

	_, err := svc.RegistrarMovimento(context.Background(), id, dto.MovimentoRequest{
		Tipo:  model.MovimentoSuprimento,
		Valor: dec("10.00"),
	})
	assert.ErrorIs(t, err, ErrEstadoInvalido)
}

func TestRegistrarMovimentoValorNaoPositivo(t *testing.T) {
	svc, _, _, _ := novoCaixaServiceTeste()
	id := criarCaixa(t, svc, "Caixa 1")
	_, err := svc.Abrir(context.Background(), id, dto.AbrirCaixaRequest{FundoTroco: dec("100.00")})
	require.NoError(t, err)

	_, err = svc.RegistrarMovimento(context.Background(), id, dto.MovimentoRequest{
		Tipo:  model.MovimentoSangria,
		Valor: decimal.Zero,
	})
	assert.ErrorIs(t, err, ErrValorInvalido)
}

// Reopening starts a fresh ledger: movements of previous openings stay stored
// but are not listed.
func TestMovimentosReiniciamAposReabertura(t *testing.T) {
	svc, caixaRepo, _, _ := novoCaixaServiceTeste()
	id := criarCaixa(t, svc, "Caixa 1")

	// Movement from a previous opening, an hour in the past.
	caixaRepo.movimentos = append(caixaRepo.movimentos, model.MovimentoCaixa{
		ID:         uuid.New(),
		CaixaID:    id,
		Tipo:       model.MovimentoSangria,
		Valor:      dec("50.00"),
		OcorridoEm: time.Now().Add(-1 * time.Hour),
	})

	_, err := svc.Abrir(context.Background(), id, dto.AbrirCaixaRequest{FundoTroco: dec("100.00")})
	require.NoError(t, err)

	movs, err := svc.ListarMovimentos(context.Background(), id)
	require.NoError(t, err)
	assert.Empty(t, movs)

	relatorio, err := svc.Relatorio(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "0", relatorio.TotalSangrias.String())
}

// ── Relatório de fechamento ──────────────────────────────────────────────────

// Fundo 100 + venda 30 (dinheiro) + suprimento 50 − sangria 20 = saldo 160.
func TestRelatorioFechamento(t *testing.T) {
	svc, _, lancRepo, metodoRepo := novoCaixaServiceTeste()
	ctx := context.Background()
	id := criarCaixa(t, svc, "Caixa 1")
	_, err := svc.Abrir(ctx, id, dto.AbrirCaixaRequest{FundoTroco: dec("100.00")})
	require.NoError(t, err)

	dinheiro := &model.MetodoPagamento{Nome: "Dinheiro", Ativo: true}
	require.NoError(t, metodoRepo.Create(ctx, dinheiro))

	lancRepo.inserirPago(dec("30.00"), dinheiro.ID, time.Now())

	_, err = svc.RegistrarMovimento(ctx, id, dto.MovimentoRequest{Tipo: model.MovimentoSangria, Valor: dec("20.00")})
	require.NoError(t, err)
	_, err = svc.RegistrarMovimento(ctx, id, dto.MovimentoRequest{Tipo: model.MovimentoSuprimento, Valor: dec("50.00")})
	require.NoError(t, err)

	relatorio, err := svc.Relatorio(ctx, id)

	require.NoError(t, err)
	assert.Equal(t, "30", relatorio.TotalVendas.String())
	assert.Equal(t, "20", relatorio.TotalSangrias.String())
	assert.Equal(t, "50", relatorio.TotalSuprimentos.String())
	assert.Equal(t, "160", relatorio.SaldoEsperado.String())
	require.Len(t, relatorio.VendasPorMetodo, 1)
	assert.Equal(t, "Dinheiro", relatorio.VendasPorMetodo[0].Metodo)
	assert.Equal(t, "30", relatorio.VendasPorMetodo[0].Total.String())
}

// Repeated previews with no mutation in between yield identical numbers — the
// report is recomputed, never cached.
func TestRelatorioIdempotente(t *testing.T) {
	svc, _, lancRepo, metodoRepo := novoCaixaServiceTeste()
	ctx := context.Background()
	id := criarCaixa(t, svc, "Caixa 1")
	_, err := svc.Abrir(ctx, id, dto.AbrirCaixaRequest{FundoTroco: dec("100.00")})
	require.NoError(t, err)

	pix := &model.MetodoPagamento{Nome: "Pix", Ativo: true}
	require.NoError(t, metodoRepo.Create(ctx, pix))
	lancRepo.inserirPago(dec("42.50"), pix.ID, time.Now())

	primeiro, err := svc.Relatorio(ctx, id)
	require.NoError(t, err)
	segundo, err := svc.Relatorio(ctx, id)
	require.NoError(t, err)

	assert.Equal(t, primeiro, segundo)
}

// Paid lançamentos whose payment method no longer resolves are excluded from
// the per-method breakdown and from TotalVendas alike.
func TestRelatorioMetodoNaoResolvido(t *testing.T) {
	svc, _, lancRepo, metodoRepo := novoCaixaServiceTeste()
	ctx := context.Background()
	id := criarCaixa(t, svc, "Caixa 1")
	_, err := svc.Abrir(ctx, id, dto.AbrirCaixaRequest{FundoTroco: dec("100.00")})
	require.NoError(t, err)

	dinheiro := &model.MetodoPagamento{Nome: "Dinheiro", Ativo: true}
	require.NoError(t, metodoRepo.Create(ctx, dinheiro))

	lancRepo.inserirPago(dec("30.00"), dinheiro.ID, time.Now())
	lancRepo.inserirPago(dec("99.00"), uuid.New(), time.Now()) // método desconhecido

	relatorio, err := svc.Relatorio(ctx, id)

	require.NoError(t, err)
	assert.Equal(t, "30", relatorio.TotalVendas.String())
	require.Len(t, relatorio.VendasPorMetodo, 1)
	assert.Equal(t, "130", relatorio.SaldoEsperado.String())
}
