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

// ── In-memory LancamentoRepository ───────────────────────────────────────────

type fakeLancamentoRepo struct {
	mu          sync.Mutex
	lancamentos map[uuid.UUID]*model.Lancamento
}

func newFakeLancamentoRepo() *fakeLancamentoRepo {
	return &fakeLancamentoRepo{lancamentos: make(map[uuid.UUID]*model.Lancamento)}
}

func (r *fakeLancamentoRepo) Create(_ context.Context, l *model.Lancamento) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	if l.CreatedAt.IsZero() {
		l.CreatedAt = time.Now()
	}
	r.lancamentos[l.ID] = l
	return nil
}

func (r *fakeLancamentoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Lancamento, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.lancamentos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *l
	return &clone, nil
}

func (r *fakeLancamentoRepo) List(_ context.Context, estado, origem string, dia *time.Time) ([]model.Lancamento, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Lancamento
	for _, l := range r.lancamentos {
		if estado != "" && l.Estado != estado {
			continue
		}
		if origem != "" && l.Origem != origem {
			continue
		}
		if dia != nil {
			inicio := time.Date(dia.Year(), dia.Month(), dia.Day(), 0, 0, 0, 0, dia.Location())
			if l.CreatedAt.Before(inicio) || !l.CreatedAt.Before(inicio.AddDate(0, 0, 1)) {
				continue
			}
		}
		out = append(out, *l)
	}
	return out, nil
}

func (r *fakeLancamentoRepo) ListPagosEntre(_ context.Context, inicio, fim time.Time) ([]model.Lancamento, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Lancamento
	for _, l := range r.lancamentos {
		if l.Estado == model.LancamentoPago && !l.CreatedAt.Before(inicio) && l.CreatedAt.Before(fim) {
			out = append(out, *l)
		}
	}
	return out, nil
}

func (r *fakeLancamentoRepo) AtualizarTempo(_ context.Context, id uuid.UUID, tempoMinutos *int, valor decimal.Decimal) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.lancamentos[id]
	if !ok || l.Estado != model.LancamentoAberto {
		return false, nil
	}
	l.TempoMinutos = tempoMinutos
	l.Valor = valor
	return true, nil
}

func (r *fakeLancamentoRepo) Pagar(_ context.Context, id uuid.UUID, metodoID uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.lancamentos[id]
	if !ok || l.Estado != model.LancamentoAberto {
		return false, nil
	}
	l.Estado = model.LancamentoPago
	l.MetodoPagamentoID = &metodoID
	return true, nil
}

func (r *fakeLancamentoRepo) Cancelar(_ context.Context, id uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.lancamentos[id]
	if !ok || l.Estado != model.LancamentoAberto {
		return false, nil
	}
	l.Estado = model.LancamentoCancelado
	return true, nil
}

// inserirPago seeds a paid lançamento directly, bypassing the lifecycle.
func (r *fakeLancamentoRepo) inserirPago(valor decimal.Decimal, metodoID uuid.UUID, criadoEm time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := uuid.New()
	r.lancamentos[id] = &model.Lancamento{
		ID:                id,
		Origem:            model.OrigemParque,
		Valor:             valor,
		Estado:            model.LancamentoPago,
		MetodoPagamentoID: &metodoID,
		CreatedAt:         criadoEm,
	}
}

var _ repository.LancamentoRepository = (*fakeLancamentoRepo)(nil)

// ── In-memory ItemRepository ─────────────────────────────────────────────────

type fakeItemRepo struct {
	itens map[uuid.UUID]*model.Item
}

func newFakeItemRepo() *fakeItemRepo {
	return &fakeItemRepo{itens: make(map[uuid.UUID]*model.Item)}
}

func (r *fakeItemRepo) Create(_ context.Context, i *model.Item) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	r.itens[i.ID] = i
	return nil
}

func (r *fakeItemRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Item, error) {
	i, ok := r.itens[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return i, nil
}

func (r *fakeItemRepo) List(_ context.Context, incluirInativos bool) ([]model.Item, error) {
	var out []model.Item
	for _, i := range r.itens {
		if !incluirInativos && !i.Ativo {
			continue
		}
		out = append(out, *i)
	}
	return out, nil
}

func (r *fakeItemRepo) Update(_ context.Context, i *model.Item) error {
	r.itens[i.ID] = i
	return nil
}

var _ repository.ItemRepository = (*fakeItemRepo)(nil)

// ── In-memory ConfiguracaoRepository ─────────────────────────────────────────

type fakeConfiguracaoRepo struct {
	cfg *model.Configuracao
}

func (r *fakeConfiguracaoRepo) Get(_ context.Context) (*model.Configuracao, error) {
	if r.cfg == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return r.cfg, nil
}

func (r *fakeConfiguracaoRepo) Save(_ context.Context, c *model.Configuracao) error {
	c.ID = 1
	r.cfg = c
	return nil
}

var _ repository.ConfiguracaoRepository = (*fakeConfiguracaoRepo)(nil)

// ── Helpers ──────────────────────────────────────────────────────────────────

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }

// Tarifa global dos testes: R$ 20 pelos primeiros 30 min, R$ 5 por ciclo de
// 15 min iniciado.
func novoLancamentoServiceTeste() (LancamentoService, *fakeLancamentoRepo, *fakeItemRepo, *fakeMetodoRepo) {
	lancRepo := newFakeLancamentoRepo()
	itemRepo := newFakeItemRepo()
	metodoRepo := newFakeMetodoRepo()
	cfgRepo := &fakeConfiguracaoRepo{cfg: &model.Configuracao{
		ID: 1,
		Tarifa: model.Tarifa{
			TempoInicialMinutos: intPtr(30),
			ValorInicial:        dec("20.00"),
			TempoCicloMinutos:   intPtr(15),
			ValorCiclo:          dec("5.00"),
		},
	}}
	tarifas := NewTarifaService(cfgRepo, nil)
	svc := NewLancamentoService(lancRepo, itemRepo, metodoRepo, tarifas)
	return svc, lancRepo, itemRepo, metodoRepo
}

// ── Criar ────────────────────────────────────────────────────────────────────

func TestCriarLancamentoTarifaGlobal(t *testing.T) {
	svc, _, _, _ := novoLancamentoServiceTeste()

	// 40 min = 30 iniciais + 1 ciclo de 15 iniciado → 20 + 5
	resp, err := svc.Criar(context.Background(), dto.CriarLancamentoRequest{TempoMinutos: intPtr(40)})

	require.NoError(t, err)
	assert.Equal(t, model.LancamentoAberto, resp.Estado)
	assert.Equal(t, model.OrigemParque, resp.Origem)
	assert.Equal(t, "25", resp.Valor.String())
}

func TestCriarLancamentoTempoLivre(t *testing.T) {
	svc, _, _, _ := novoLancamentoServiceTeste()

	resp, err := svc.Criar(context.Background(), dto.CriarLancamentoRequest{})

	require.NoError(t, err)
	assert.Nil(t, resp.TempoMinutos)
	assert.Equal(t, "0", resp.Valor.String())
}

func TestCriarLancamentoItemComTarifaPropria(t *testing.T) {
	svc, _, itemRepo, _ := novoLancamentoServiceTeste()

	// Tarifa fixa: R$ 15 independente da duração.
	item := &model.Item{
		Nome:          "Cama elástica",
		TarifaPropria: true,
		Tarifa:        model.Tarifa{ValorInicial: dec("15.00")},
		Ativo:         true,
	}
	require.NoError(t, itemRepo.Create(context.Background(), item))

	itemID := item.ID.String()
	resp, err := svc.Criar(context.Background(), dto.CriarLancamentoRequest{
		ItemID:       &itemID,
		TempoMinutos: intPtr(240),
	})

	require.NoError(t, err)
	assert.Equal(t, "15", resp.Valor.String())
	require.NotNil(t, resp.ItemID)
	assert.Equal(t, itemID, *resp.ItemID)
}

func TestCriarLancamentoItemInexistente(t *testing.T) {
	svc, _, _, _ := novoLancamentoServiceTeste()

	_, err := svc.Criar(context.Background(), dto.CriarLancamentoRequest{ItemID: strPtr(uuid.NewString())})
	assert.ErrorIs(t, err, ErrNaoEncontrado)
}

func TestCriarLancamentoEstacionamento(t *testing.T) {
	svc, _, _, _ := novoLancamentoServiceTeste()

	resp, err := svc.Criar(context.Background(), dto.CriarLancamentoRequest{
		Origem:       model.OrigemEstacionamento,
		TempoMinutos: intPtr(20),
	})

	require.NoError(t, err)
	assert.Equal(t, model.OrigemEstacionamento, resp.Origem)
	assert.Equal(t, "20", resp.Valor.String()) // dentro da janela inicial
}

// ── AtualizarTempo ───────────────────────────────────────────────────────────

func TestAtualizarTempoReprecifica(t *testing.T) {
	svc, _, _, _ := novoLancamentoServiceTeste()
	ctx := context.Background()

	criado, err := svc.Criar(ctx, dto.CriarLancamentoRequest{TempoMinutos: intPtr(30)})
	require.NoError(t, err)
	assert.Equal(t, "20", criado.Valor.String())

	id := uuid.MustParse(criado.ID)
	// 65 min = 30 iniciais + 3 ciclos de 15 iniciados → 20 + 15
	resp, err := svc.AtualizarTempo(ctx, id, dto.AtualizarTempoRequest{TempoMinutos: intPtr(65)})

	require.NoError(t, err)
	assert.Equal(t, "35", resp.Valor.String())
	assert.Equal(t, 65, *resp.TempoMinutos)
}

// Switching a priced lançamento to tempo livre keeps the last Valor frozen
// instead of repricing it to zero.
func TestAtualizarTempoParaLivreCongelaValor(t *testing.T) {
	svc, _, _, _ := novoLancamentoServiceTeste()
	ctx := context.Background()

	criado, err := svc.Criar(ctx, dto.CriarLancamentoRequest{TempoMinutos: intPtr(40)})
	require.NoError(t, err)
	assert.Equal(t, "25", criado.Valor.String())

	id := uuid.MustParse(criado.ID)
	resp, err := svc.AtualizarTempo(ctx, id, dto.AtualizarTempoRequest{TempoMinutos: nil})

	require.NoError(t, err)
	assert.Nil(t, resp.TempoMinutos)
	assert.Equal(t, "25", resp.Valor.String())
}

func TestAtualizarTempoLancamentoPago(t *testing.T) {
	svc, _, _, metodoRepo := novoLancamentoServiceTeste()
	ctx := context.Background()

	metodo := &model.MetodoPagamento{Nome: "Pix", Ativo: true}
	require.NoError(t, metodoRepo.Create(ctx, metodo))

	criado, err := svc.Criar(ctx, dto.CriarLancamentoRequest{TempoMinutos: intPtr(30)})
	require.NoError(t, err)
	id := uuid.MustParse(criado.ID)

	_, err = svc.Pagar(ctx, id, dto.PagarLancamentoRequest{MetodoPagamentoID: metodo.ID.String()})
	require.NoError(t, err)

	_, err = svc.AtualizarTempo(ctx, id, dto.AtualizarTempoRequest{TempoMinutos: intPtr(60)})
	assert.ErrorIs(t, err, ErrEstadoInvalido)
}

// ── Pagar / Cancelar ─────────────────────────────────────────────────────────

func TestPagarLancamento(t *testing.T) {
	svc, _, _, metodoRepo := novoLancamentoServiceTeste()
	ctx := context.Background()

	metodo := &model.MetodoPagamento{Nome: "Dinheiro", Ativo: true}
	require.NoError(t, metodoRepo.Create(ctx, metodo))

	criado, err := svc.Criar(ctx, dto.CriarLancamentoRequest{TempoMinutos: intPtr(30)})
	require.NoError(t, err)

	resp, err := svc.Pagar(ctx, uuid.MustParse(criado.ID), dto.PagarLancamentoRequest{
		MetodoPagamentoID: metodo.ID.String(),
	})

	require.NoError(t, err)
	assert.Equal(t, model.LancamentoPago, resp.Estado)
	require.NotNil(t, resp.MetodoPagamentoID)
	assert.Equal(t, metodo.ID.String(), *resp.MetodoPagamentoID)
}

func TestPagarLancamentoJaPago(t *testing.T) {
	svc, _, _, metodoRepo := novoLancamentoServiceTeste()
	ctx := context.Background()

	metodo := &model.MetodoPagamento{Nome: "Dinheiro", Ativo: true}
	require.NoError(t, metodoRepo.Create(ctx, metodo))

	criado, err := svc.Criar(ctx, dto.CriarLancamentoRequest{TempoMinutos: intPtr(30)})
	require.NoError(t, err)
	id := uuid.MustParse(criado.ID)
	req := dto.PagarLancamentoRequest{MetodoPagamentoID: metodo.ID.String()}

	_, err = svc.Pagar(ctx, id, req)
	require.NoError(t, err)

	_, err = svc.Pagar(ctx, id, req)
	assert.ErrorIs(t, err, ErrEstadoInvalido)
}

func TestPagarMetodoInexistente(t *testing.T) {
	svc, _, _, _ := novoLancamentoServiceTeste()
	ctx := context.Background()

	criado, err := svc.Criar(ctx, dto.CriarLancamentoRequest{TempoMinutos: intPtr(30)})
	require.NoError(t, err)

	_, err = svc.Pagar(ctx, uuid.MustParse(criado.ID), dto.PagarLancamentoRequest{
		MetodoPagamentoID: uuid.NewString(),
	})
	assert.ErrorIs(t, err, ErrNaoEncontrado)
}

func TestCancelarLancamento(t *testing.T) {
	svc, _, _, _ := novoLancamentoServiceTeste()
	ctx := context.Background()

	criado, err := svc.Criar(ctx, dto.CriarLancamentoRequest{TempoMinutos: intPtr(30)})
	require.NoError(t, err)

	resp, err := svc.Cancelar(ctx, uuid.MustParse(criado.ID))

	require.NoError(t, err)
	assert.Equal(t, model.LancamentoCancelado, resp.Estado)
}

func TestCancelarLancamentoPago(t *testing.T) {
	svc, _, _, metodoRepo := novoLancamentoServiceTeste()
	ctx := context.Background()

	metodo := &model.MetodoPagamento{Nome: "Dinheiro", Ativo: true}
	require.NoError(t, metodoRepo.Create(ctx, metodo))

	criado, err := svc.Criar(ctx, dto.CriarLancamentoRequest{TempoMinutos: intPtr(30)})
	require.NoError(t, err)
	id := uuid.MustParse(criado.ID)

	_, err = svc.Pagar(ctx, id, dto.PagarLancamentoRequest{MetodoPagamentoID: metodo.ID.String()})
	require.NoError(t, err)

	_, err = svc.Cancelar(ctx, id)
	assert.ErrorIs(t, err, ErrEstadoInvalido)
}

// ── Listar ───────────────────────────────────────────────────────────────────

func TestListarLancamentosPorEstado(t *testing.T) {
	svc, _, _, metodoRepo := novoLancamentoServiceTeste()
	ctx := context.Background()

	metodo := &model.MetodoPagamento{Nome: "Pix", Ativo: true}
	require.NoError(t, metodoRepo.Create(ctx, metodo))

	a, err := svc.Criar(ctx, dto.CriarLancamentoRequest{TempoMinutos: intPtr(30)})
	require.NoError(t, err)
	_, err = svc.Criar(ctx, dto.CriarLancamentoRequest{TempoMinutos: intPtr(30)})
	require.NoError(t, err)
	_, err = svc.Pagar(ctx, uuid.MustParse(a.ID), dto.PagarLancamentoRequest{MetodoPagamentoID: metodo.ID.String()})
	require.NoError(t, err)

	pagos, err := svc.Listar(ctx, dto.LancamentoFilter{Estado: model.LancamentoPago})
	require.NoError(t, err)
	require.Len(t, pagos, 1)
	assert.Equal(t, a.ID, pagos[0].ID)

	abertos, err := svc.Listar(ctx, dto.LancamentoFilter{Estado: model.LancamentoAberto})
	require.NoError(t, err)
	assert.Len(t, abertos, 1)
}
