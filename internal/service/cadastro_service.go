package service

import (
	"context"
	"fmt"

	"parquepos/internal/dto"
	"parquepos/internal/model"
	"parquepos/internal/repository"

	"github.com/google/uuid"
)

// Cadastro services are thin CRUD layers over their repositories; the core
// consumes them as the item / cliente / método lookups of the billing flow.

// ── Itens ─────────────────────────────────────────────────────────────────────

type ItemService interface {
	Criar(ctx context.Context, req dto.ItemRequest) (*dto.ItemResponse, error)
	Listar(ctx context.Context, incluirInativos bool) ([]dto.ItemResponse, error)
	Atualizar(ctx context.Context, id uuid.UUID, req dto.ItemRequest) (*dto.ItemResponse, error)
	Desativar(ctx context.Context, id uuid.UUID) error
}

type itemService struct{ repo repository.ItemRepository }

func NewItemService(repo repository.ItemRepository) ItemService { return &itemService{repo: repo} }

func (s *itemService) Criar(ctx context.Context, req dto.ItemRequest) (*dto.ItemResponse, error) {
	item := &model.Item{Nome: req.Nome, Descricao: req.Descricao, Ativo: true}
	aplicarTarifaItem(item, req.Tarifa)
	if err := s.repo.Create(ctx, item); err != nil {
		return nil, err
	}
	return itemToResponse(item), nil
}

func (s *itemService) Listar(ctx context.Context, incluirInativos bool) ([]dto.ItemResponse, error) {
	itens, err := s.repo.List(ctx, incluirInativos)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ItemResponse, 0, len(itens))
	for i := range itens {
		out = append(out, *itemToResponse(&itens[i]))
	}
	return out, nil
}

func (s *itemService) Atualizar(ctx context.Context, id uuid.UUID, req dto.ItemRequest) (*dto.ItemResponse, error) {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: item %s", ErrNaoEncontrado, id)
	}
	item.Nome = req.Nome
	item.Descricao = req.Descricao
	aplicarTarifaItem(item, req.Tarifa)
	if err := s.repo.Update(ctx, item); err != nil {
		return nil, err
	}
	return itemToResponse(item), nil
}

func (s *itemService) Desativar(ctx context.Context, id uuid.UUID) error {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("%w: item %s", ErrNaoEncontrado, id)
	}
	item.Ativo = false
	return s.repo.Update(ctx, item)
}

func aplicarTarifaItem(item *model.Item, req *dto.TarifaRequest) {
	if req == nil {
		item.TarifaPropria = false
		item.Tarifa = model.Tarifa{}
		return
	}
	item.TarifaPropria = true
	item.Tarifa = model.Tarifa{
		TempoInicialMinutos: req.TempoInicialMinutos,
		ValorInicial:        req.ValorInicial,
		TempoCicloMinutos:   req.TempoCicloMinutos,
		ValorCiclo:          req.ValorCiclo,
	}
}

func itemToResponse(i *model.Item) *dto.ItemResponse {
	resp := &dto.ItemResponse{
		ID:        i.ID.String(),
		Nome:      i.Nome,
		Descricao: i.Descricao,
		Ativo:     i.Ativo,
	}
	if override := i.TarifaOverride(); override != nil {
		resp.Tarifa = tarifaToResponse(*override)
	}
	return resp
}

// ── Clientes ──────────────────────────────────────────────────────────────────

type ClienteService interface {
	Criar(ctx context.Context, req dto.ClienteRequest) (*dto.ClienteResponse, error)
	Listar(ctx context.Context, busca string) ([]dto.ClienteResponse, error)
	Atualizar(ctx context.Context, id uuid.UUID, req dto.ClienteRequest) (*dto.ClienteResponse, error)
	Desativar(ctx context.Context, id uuid.UUID) error
}

type clienteService struct{ repo repository.ClienteRepository }

func NewClienteService(repo repository.ClienteRepository) ClienteService {
	return &clienteService{repo: repo}
}

func (s *clienteService) Criar(ctx context.Context, req dto.ClienteRequest) (*dto.ClienteResponse, error) {
	cliente := &model.Cliente{
		Nome:        req.Nome,
		Responsavel: req.Responsavel,
		Telefone:    req.Telefone,
		Documento:   req.Documento,
		Observacoes: req.Observacoes,
		Ativo:       true,
	}
	if err := s.repo.Create(ctx, cliente); err != nil {
		return nil, err
	}
	return clienteToResponse(cliente), nil
}

func (s *clienteService) Listar(ctx context.Context, busca string) ([]dto.ClienteResponse, error) {
	clientes, err := s.repo.List(ctx, busca)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ClienteResponse, 0, len(clientes))
	for i := range clientes {
		out = append(out, *clienteToResponse(&clientes[i]))
	}
	return out, nil
}

func (s *clienteService) Atualizar(ctx context.Context, id uuid.UUID, req dto.ClienteRequest) (*dto.ClienteResponse, error) {
	cliente, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: cliente %s", ErrNaoEncontrado, id)
	}
	cliente.Nome = req.Nome
	cliente.Responsavel = req.Responsavel
	cliente.Telefone = req.Telefone
	cliente.Documento = req.Documento
	cliente.Observacoes = req.Observacoes
	if err := s.repo.Update(ctx, cliente); err != nil {
		return nil, err
	}
	return clienteToResponse(cliente), nil
}

func (s *clienteService) Desativar(ctx context.Context, id uuid.UUID) error {
	cliente, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("%w: cliente %s", ErrNaoEncontrado, id)
	}
	cliente.Ativo = false
	return s.repo.Update(ctx, cliente)
}

func clienteToResponse(c *model.Cliente) *dto.ClienteResponse {
	return &dto.ClienteResponse{
		ID:          c.ID.String(),
		Nome:        c.Nome,
		Responsavel: c.Responsavel,
		Telefone:    c.Telefone,
		Documento:   c.Documento,
		Observacoes: c.Observacoes,
		Ativo:       c.Ativo,
	}
}

// ── Métodos de pagamento ──────────────────────────────────────────────────────

type MetodoPagamentoService interface {
	Criar(ctx context.Context, req dto.MetodoPagamentoRequest) (*dto.MetodoPagamentoResponse, error)
	Listar(ctx context.Context) ([]dto.MetodoPagamentoResponse, error)
	Desativar(ctx context.Context, id uuid.UUID) error
}

type metodoPagamentoService struct{ repo repository.MetodoPagamentoRepository }

func NewMetodoPagamentoService(repo repository.MetodoPagamentoRepository) MetodoPagamentoService {
	return &metodoPagamentoService{repo: repo}
}

func (s *metodoPagamentoService) Criar(ctx context.Context, req dto.MetodoPagamentoRequest) (*dto.MetodoPagamentoResponse, error) {
	metodo := &model.MetodoPagamento{Nome: req.Nome, Ativo: true}
	if err := s.repo.Create(ctx, metodo); err != nil {
		return nil, err
	}
	return metodoToResponse(metodo), nil
}

func (s *metodoPagamentoService) Listar(ctx context.Context) ([]dto.MetodoPagamentoResponse, error) {
	metodos, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MetodoPagamentoResponse, 0, len(metodos))
	for i := range metodos {
		out = append(out, *metodoToResponse(&metodos[i]))
	}
	return out, nil
}

func (s *metodoPagamentoService) Desativar(ctx context.Context, id uuid.UUID) error {
	metodo, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("%w: método %s", ErrNaoEncontrado, id)
	}
	metodo.Ativo = false
	return s.repo.Update(ctx, metodo)
}

func metodoToResponse(m *model.MetodoPagamento) *dto.MetodoPagamentoResponse {
	return &dto.MetodoPagamentoResponse{ID: m.ID.String(), Nome: m.Nome, Ativo: m.Ativo}
}
