package service

import (
	"context"
	"fmt"
	"time"

	"parquepos/internal/dto"
	"parquepos/internal/model"
	"parquepos/internal/pricing"
	"parquepos/internal/repository"

	"github.com/google/uuid"
)

type LancamentoService interface {
	Criar(ctx context.Context, req dto.CriarLancamentoRequest) (*dto.LancamentoResponse, error)
	Listar(ctx context.Context, filter dto.LancamentoFilter) ([]dto.LancamentoResponse, error)
	Obter(ctx context.Context, id uuid.UUID) (*dto.LancamentoResponse, error)
	AtualizarTempo(ctx context.Context, id uuid.UUID, req dto.AtualizarTempoRequest) (*dto.LancamentoResponse, error)
	Pagar(ctx context.Context, id uuid.UUID, req dto.PagarLancamentoRequest) (*dto.LancamentoResponse, error)
	Cancelar(ctx context.Context, id uuid.UUID) (*dto.LancamentoResponse, error)
}

type lancamentoService struct {
	repo    repository.LancamentoRepository
	itens   repository.ItemRepository
	metodos repository.MetodoPagamentoRepository
	tarifas TarifaService
}

func NewLancamentoService(
	repo repository.LancamentoRepository,
	itens repository.ItemRepository,
	metodos repository.MetodoPagamentoRepository,
	tarifas TarifaService,
) LancamentoService {
	return &lancamentoService{repo: repo, itens: itens, metodos: metodos, tarifas: tarifas}
}

// ── Criar ─────────────────────────────────────────────────────────────────────

// Criar prices the lançamento at creation time: item tarifa when the item
// defines one, global tarifa otherwise. Tempo livre starts at zero.
func (s *lancamentoService) Criar(ctx context.Context, req dto.CriarLancamentoRequest) (*dto.LancamentoResponse, error) {
	lancamento := &model.Lancamento{
		Origem: model.OrigemParque,
		Estado: model.LancamentoAberto,
	}
	if req.Origem != "" {
		lancamento.Origem = req.Origem
	}
	if req.ClienteID != nil {
		id, err := uuid.Parse(*req.ClienteID)
		if err != nil {
			return nil, fmt.Errorf("cliente_id inválido: %w", err)
		}
		lancamento.ClienteID = &id
	}
	if req.CaixaID != nil {
		id, err := uuid.Parse(*req.CaixaID)
		if err != nil {
			return nil, fmt.Errorf("caixa_id inválido: %w", err)
		}
		lancamento.CaixaID = &id
	}

	tarifa, err := s.resolverTarifa(ctx, req.ItemID, lancamento)
	if err != nil {
		return nil, err
	}
	lancamento.TempoMinutos = req.TempoMinutos
	lancamento.Valor = pricing.Calcular(tarifa, req.TempoMinutos)

	if err := s.repo.Create(ctx, lancamento); err != nil {
		return nil, err
	}
	return lancamentoToResponse(lancamento), nil
}

// ── AtualizarTempo ────────────────────────────────────────────────────────────

// AtualizarTempo reprices a still-open lançamento for the new duration.
// Switching to tempo livre (nil) keeps the last computed Valor frozen — the
// engine itself always prices nil as zero, so the snapshot lives here.
func (s *lancamentoService) AtualizarTempo(ctx context.Context, id uuid.UUID, req dto.AtualizarTempoRequest) (*dto.LancamentoResponse, error) {
	lancamento, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: lançamento %s", ErrNaoEncontrado, id)
	}
	if lancamento.Estado != model.LancamentoAberto {
		return nil, fmt.Errorf("%w: lançamento %s está %s", ErrEstadoInvalido, id, lancamento.Estado)
	}

	valor := lancamento.Valor // frozen when switching to tempo livre
	if req.TempoMinutos != nil {
		var itemID *string
		if lancamento.ItemID != nil {
			raw := lancamento.ItemID.String()
			itemID = &raw
		}
		tarifa, err := s.resolverTarifa(ctx, itemID, nil)
		if err != nil {
			return nil, err
		}
		valor = pricing.Calcular(tarifa, req.TempoMinutos)
	}

	ok, err := s.repo.AtualizarTempo(ctx, id, req.TempoMinutos, valor)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: lançamento %s não está mais aberto", ErrEstadoInvalido, id)
	}

	lancamento.TempoMinutos = req.TempoMinutos
	lancamento.Valor = valor
	return lancamentoToResponse(lancamento), nil
}

// ── Pagar / Cancelar ──────────────────────────────────────────────────────────

func (s *lancamentoService) Pagar(ctx context.Context, id uuid.UUID, req dto.PagarLancamentoRequest) (*dto.LancamentoResponse, error) {
	metodoID, err := uuid.Parse(req.MetodoPagamentoID)
	if err != nil {
		return nil, fmt.Errorf("metodo_pagamento_id inválido: %w", err)
	}
	if _, err := s.metodos.FindByID(ctx, metodoID); err != nil {
		return nil, fmt.Errorf("%w: método de pagamento %s", ErrNaoEncontrado, metodoID)
	}
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return nil, fmt.Errorf("%w: lançamento %s", ErrNaoEncontrado, id)
	}

	ok, err := s.repo.Pagar(ctx, id, metodoID)
	if err != nil {
		return nil, err
	}
	if !ok {
		// A concurrent pay/cancel won the compare-and-set.
		return nil, fmt.Errorf("%w: lançamento %s não está aberto", ErrEstadoInvalido, id)
	}

	lancamento, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return lancamentoToResponse(lancamento), nil
}

func (s *lancamentoService) Cancelar(ctx context.Context, id uuid.UUID) (*dto.LancamentoResponse, error) {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return nil, fmt.Errorf("%w: lançamento %s", ErrNaoEncontrado, id)
	}

	ok, err := s.repo.Cancelar(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: lançamento %s não está aberto", ErrEstadoInvalido, id)
	}

	lancamento, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return lancamentoToResponse(lancamento), nil
}

// ── Listar / Obter ────────────────────────────────────────────────────────────

func (s *lancamentoService) Listar(ctx context.Context, filter dto.LancamentoFilter) ([]dto.LancamentoResponse, error) {
	var dia *time.Time
	if filter.Dia != "" {
		parsed, err := time.ParseInLocation("2006-01-02", filter.Dia, time.Local)
		if err != nil {
			return nil, fmt.Errorf("dia inválido: %w", err)
		}
		dia = &parsed
	}
	lancamentos, err := s.repo.List(ctx, filter.Estado, filter.Origem, dia)
	if err != nil {
		return nil, err
	}
	out := make([]dto.LancamentoResponse, 0, len(lancamentos))
	for i := range lancamentos {
		out = append(out, *lancamentoToResponse(&lancamentos[i]))
	}
	return out, nil
}

func (s *lancamentoService) Obter(ctx context.Context, id uuid.UUID) (*dto.LancamentoResponse, error) {
	lancamento, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: lançamento %s", ErrNaoEncontrado, id)
	}
	return lancamentoToResponse(lancamento), nil
}

// ── Helpers ───────────────────────────────────────────────────────────────────

// resolverTarifa loads the item (when given) and applies the single
// resolution order: item override, else global. When lancamento is non-nil
// the parsed item id is recorded on it.
func (s *lancamentoService) resolverTarifa(ctx context.Context, itemID *string, lancamento *model.Lancamento) (model.Tarifa, error) {
	global, err := s.tarifas.ObterGlobal(ctx)
	if err != nil {
		return model.Tarifa{}, err
	}
	if itemID == nil {
		return global, nil
	}

	id, err := uuid.Parse(*itemID)
	if err != nil {
		return model.Tarifa{}, fmt.Errorf("item_id inválido: %w", err)
	}
	item, err := s.itens.FindByID(ctx, id)
	if err != nil {
		return model.Tarifa{}, fmt.Errorf("%w: item %s", ErrNaoEncontrado, id)
	}
	if lancamento != nil {
		lancamento.ItemID = &item.ID
	}
	return pricing.Resolver(global, item), nil
}

func lancamentoToResponse(l *model.Lancamento) *dto.LancamentoResponse {
	resp := &dto.LancamentoResponse{
		ID:           l.ID.String(),
		Origem:       l.Origem,
		TempoMinutos: l.TempoMinutos,
		Valor:        l.Valor,
		Estado:       l.Estado,
		CriadoEm:     l.CreatedAt.Format(time.RFC3339),
	}
	if l.ClienteID != nil {
		v := l.ClienteID.String()
		resp.ClienteID = &v
	}
	if l.ItemID != nil {
		v := l.ItemID.String()
		resp.ItemID = &v
	}
	if l.CaixaID != nil {
		v := l.CaixaID.String()
		resp.CaixaID = &v
	}
	if l.MetodoPagamentoID != nil {
		v := l.MetodoPagamentoID.String()
		resp.MetodoPagamentoID = &v
	}
	return resp
}
