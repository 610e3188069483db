package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"parquepos/internal/dto"
	"parquepos/internal/model"
	"parquepos/internal/repository"
	"parquepos/internal/worker"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

type CaixaService interface {
	Criar(ctx context.Context, req dto.CriarCaixaRequest) (*dto.CaixaResponse, error)
	Listar(ctx context.Context) ([]dto.CaixaResponse, error)
	Abrir(ctx context.Context, id uuid.UUID, req dto.AbrirCaixaRequest) (*dto.CaixaResponse, error)
	Fechar(ctx context.Context, id uuid.UUID) (*dto.RelatorioFechamentoResponse, error)
	RegistrarMovimento(ctx context.Context, id uuid.UUID, req dto.MovimentoRequest) (*dto.MovimentoResponse, error)
	ListarMovimentos(ctx context.Context, id uuid.UUID) ([]dto.MovimentoResponse, error)
	// Relatorio previews the reconciliation of the current opening without
	// closing. Pure read: repeated calls yield identical results while no
	// mutation happens in between.
	Relatorio(ctx context.Context, id uuid.UUID) (*dto.RelatorioFechamentoResponse, error)
}

type caixaService struct {
	repo        repository.CaixaRepository
	lancamentos repository.LancamentoRepository
	metodos     repository.MetodoPagamentoRepository
	dispatcher  *worker.Dispatcher // nil in unit tests
}

func NewCaixaService(
	repo repository.CaixaRepository,
	lancamentos repository.LancamentoRepository,
	metodos repository.MetodoPagamentoRepository,
	dispatcher *worker.Dispatcher,
) CaixaService {
	return &caixaService{repo: repo, lancamentos: lancamentos, metodos: metodos, dispatcher: dispatcher}
}

// ── Criar / Listar ────────────────────────────────────────────────────────────

func (s *caixaService) Criar(ctx context.Context, req dto.CriarCaixaRequest) (*dto.CaixaResponse, error) {
	caixa := &model.Caixa{Nome: req.Nome, Estado: model.CaixaFechado}
	if err := s.repo.Create(ctx, caixa); err != nil {
		return nil, err
	}
	return caixaToResponse(caixa), nil
}

func (s *caixaService) Listar(ctx context.Context) ([]dto.CaixaResponse, error) {
	caixas, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CaixaResponse, 0, len(caixas))
	for i := range caixas {
		out = append(out, *caixaToResponse(&caixas[i]))
	}
	return out, nil
}

// ── Abrir ─────────────────────────────────────────────────────────────────────

// Abrir transitions fechado → aberto. The status check-and-set happens in a
// single conditional UPDATE so that exactly one of two concurrent opens wins.
func (s *caixaService) Abrir(ctx context.Context, id uuid.UUID, req dto.AbrirCaixaRequest) (*dto.CaixaResponse, error) {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return nil, fmt.Errorf("%w: caixa %s", ErrNaoEncontrado, id)
	}
	if req.FundoTroco.IsNegative() {
		return nil, fmt.Errorf("%w: fundo de troco %s", ErrValorInvalido, req.FundoTroco)
	}

	ok, err := s.repo.Abrir(ctx, id, req.FundoTroco, time.Now())
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: caixa %s já está aberto", ErrEstadoInvalido, id)
	}

	caixa, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return caixaToResponse(caixa), nil
}

// ── Fechar ────────────────────────────────────────────────────────────────────

// Fechar builds the reconciliation of the current opening, then transitions
// aberto → fechado. The report is returned to the caller and, when a worker
// dispatcher is wired, also queued for PDF generation and e-mail.
func (s *caixaService) Fechar(ctx context.Context, id uuid.UUID) (*dto.RelatorioFechamentoResponse, error) {
	caixa, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: caixa %s", ErrNaoEncontrado, id)
	}
	if caixa.Estado != model.CaixaAberto {
		return nil, fmt.Errorf("%w: caixa %s já está fechado", ErrEstadoInvalido, id)
	}

	relatorio, err := s.buildRelatorio(ctx, caixa)
	if err != nil {
		return nil, err
	}

	ok, err := s.repo.Fechar(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: caixa %s já está fechado", ErrEstadoInvalido, id)
	}
	relatorio.Estado = model.CaixaFechado

	if s.dispatcher != nil {
		if err := s.dispatcher.EnqueueFechamento(ctx, worker.FechamentoJobPayload{Relatorio: *relatorio}); err != nil {
			// The close already happened; a failed report job must not undo it.
			log.Error().Err(err).Str("caixa_id", id.String()).Msg("fechamento: falha ao enfileirar relatório")
		}
	}
	return relatorio, nil
}

// ── RegistrarMovimento ────────────────────────────────────────────────────────

// Sangria / suprimento. Movements are immutable — the repository has no
// update or delete for them.
func (s *caixaService) RegistrarMovimento(ctx context.Context, id uuid.UUID, req dto.MovimentoRequest) (*dto.MovimentoResponse, error) {
	caixa, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: caixa %s", ErrNaoEncontrado, id)
	}
	if caixa.Estado != model.CaixaAberto {
		return nil, fmt.Errorf("%w: caixa %s não está aberto", ErrEstadoInvalido, id)
	}
	if !req.Valor.IsPositive() {
		return nil, fmt.Errorf("%w: movimento de %s", ErrValorInvalido, req.Valor)
	}

	mov := &model.MovimentoCaixa{
		CaixaID:    id,
		Tipo:       req.Tipo,
		Valor:      req.Valor,
		Motivo:     req.Motivo,
		OcorridoEm: time.Now(),
	}
	if err := s.repo.CreateMovimento(ctx, mov); err != nil {
		return nil, err
	}
	return movimentoToResponse(mov), nil
}

func (s *caixaService) ListarMovimentos(ctx context.Context, id uuid.UUID) ([]dto.MovimentoResponse, error) {
	caixa, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: caixa %s", ErrNaoEncontrado, id)
	}
	if caixa.AbertoEm == nil {
		return []dto.MovimentoResponse{}, nil
	}
	movs, err := s.repo.ListMovimentosDesde(ctx, caixa.ID, *caixa.AbertoEm)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MovimentoResponse, 0, len(movs))
	for i := range movs {
		out = append(out, *movimentoToResponse(&movs[i]))
	}
	return out, nil
}

// ── Relatorio ─────────────────────────────────────────────────────────────────

func (s *caixaService) Relatorio(ctx context.Context, id uuid.UUID) (*dto.RelatorioFechamentoResponse, error) {
	caixa, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: caixa %s", ErrNaoEncontrado, id)
	}
	return s.buildRelatorio(ctx, caixa)
}

// buildRelatorio recomputes the reconciliation from current lançamento and
// movement state on every call — no cached totals.
//
// Sales matching is by business day: paid lançamentos created on the same
// local calendar day as the caixa's AbertoEm. Lançamentos whose payment
// method does not resolve are dropped from the breakdown AND from the total.
func (s *caixaService) buildRelatorio(ctx context.Context, caixa *model.Caixa) (*dto.RelatorioFechamentoResponse, error) {
	relatorio := &dto.RelatorioFechamentoResponse{
		CaixaID:          caixa.ID.String(),
		Nome:             caixa.Nome,
		Estado:           caixa.Estado,
		FundoTroco:       caixa.FundoTroco,
		TotalVendas:      decimal.Zero,
		VendasPorMetodo:  []dto.VendaPorMetodo{},
		TotalSangrias:    decimal.Zero,
		TotalSuprimentos: decimal.Zero,
	}
	if caixa.AbertoEm == nil {
		relatorio.SaldoEsperado = caixa.FundoTroco
		return relatorio, nil
	}
	abertoEm := caixa.AbertoEm.Format(time.RFC3339)
	relatorio.AbertoEm = &abertoEm

	// Business day in local time, not UTC-normalized.
	dia := *caixa.AbertoEm
	inicio := time.Date(dia.Year(), dia.Month(), dia.Day(), 0, 0, 0, 0, dia.Location())
	pagos, err := s.lancamentos.ListPagosEntre(ctx, inicio, inicio.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}

	type metodoAgg struct {
		nome  string
		total decimal.Decimal
	}
	porMetodo := make(map[uuid.UUID]*metodoAgg)
	for i := range pagos {
		l := &pagos[i]
		if l.MetodoPagamentoID == nil {
			continue
		}
		agg, ok := porMetodo[*l.MetodoPagamentoID]
		if !ok {
			metodo, err := s.metodos.FindByID(ctx, *l.MetodoPagamentoID)
			if err != nil {
				// Unresolvable method: excluded from breakdown and total.
				continue
			}
			agg = &metodoAgg{nome: metodo.Nome, total: decimal.Zero}
			porMetodo[*l.MetodoPagamentoID] = agg
		}
		agg.total = agg.total.Add(l.Valor)
		relatorio.TotalVendas = relatorio.TotalVendas.Add(l.Valor)
	}
	for id, agg := range porMetodo {
		relatorio.VendasPorMetodo = append(relatorio.VendasPorMetodo, dto.VendaPorMetodo{
			MetodoPagamentoID: id.String(),
			Metodo:            agg.nome,
			Total:             agg.total,
		})
	}
	sort.Slice(relatorio.VendasPorMetodo, func(i, j int) bool {
		return relatorio.VendasPorMetodo[i].Metodo < relatorio.VendasPorMetodo[j].Metodo
	})

	movs, err := s.repo.ListMovimentosDesde(ctx, caixa.ID, *caixa.AbertoEm)
	if err != nil {
		return nil, err
	}
	for i := range movs {
		switch movs[i].Tipo {
		case model.MovimentoSangria:
			relatorio.TotalSangrias = relatorio.TotalSangrias.Add(movs[i].Valor)
		case model.MovimentoSuprimento:
			relatorio.TotalSuprimentos = relatorio.TotalSuprimentos.Add(movs[i].Valor)
		}
	}

	relatorio.SaldoEsperado = caixa.FundoTroco.
		Add(relatorio.TotalVendas).
		Add(relatorio.TotalSuprimentos).
		Sub(relatorio.TotalSangrias)
	return relatorio, nil
}

// ── Helpers ───────────────────────────────────────────────────────────────────

func caixaToResponse(c *model.Caixa) *dto.CaixaResponse {
	resp := &dto.CaixaResponse{
		ID:         c.ID.String(),
		Nome:       c.Nome,
		Estado:     c.Estado,
		FundoTroco: c.FundoTroco,
	}
	if c.AbertoEm != nil {
		t := c.AbertoEm.Format(time.RFC3339)
		resp.AbertoEm = &t
	}
	return resp
}

func movimentoToResponse(m *model.MovimentoCaixa) *dto.MovimentoResponse {
	return &dto.MovimentoResponse{
		ID:         m.ID.String(),
		CaixaID:    m.CaixaID.String(),
		Tipo:       m.Tipo,
		Valor:      m.Valor,
		Motivo:     m.Motivo,
		OcorridoEm: m.OcorridoEm.Format(time.RFC3339),
	}
}
