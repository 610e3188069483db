package repository

import (
	"context"
	"time"

	"parquepos/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type LancamentoRepository interface {
	Create(ctx context.Context, l *model.Lancamento) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Lancamento, error)
	List(ctx context.Context, estado, origem string, dia *time.Time) ([]model.Lancamento, error)
	// ListPagosEntre returns paid lançamentos created in [inicio, fim).
	ListPagosEntre(ctx context.Context, inicio, fim time.Time) ([]model.Lancamento, error)
	// AtualizarTempo rewrites tempo/valor while the lançamento is still
	// aberto. Returns false when it already reached a terminal state.
	AtualizarTempo(ctx context.Context, id uuid.UUID, tempoMinutos *int, valor decimal.Decimal) (bool, error)
	// Pagar is a compare-and-set aberto → pago; the first writer wins.
	Pagar(ctx context.Context, id uuid.UUID, metodoID uuid.UUID) (bool, error)
	// Cancelar is a compare-and-set aberto → cancelado.
	Cancelar(ctx context.Context, id uuid.UUID) (bool, error)
}

type lancamentoRepo struct{ db *gorm.DB }

func NewLancamentoRepository(db *gorm.DB) LancamentoRepository { return &lancamentoRepo{db: db} }

func (r *lancamentoRepo) Create(ctx context.Context, l *model.Lancamento) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *lancamentoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Lancamento, error) {
	var l model.Lancamento
	err := r.db.WithContext(ctx).First(&l, id).Error
	return &l, err
}

func (r *lancamentoRepo) List(ctx context.Context, estado, origem string, dia *time.Time) ([]model.Lancamento, error) {
	q := r.db.WithContext(ctx).Model(&model.Lancamento{})
	if estado != "" {
		q = q.Where("estado = ?", estado)
	}
	if origem != "" {
		q = q.Where("origem = ?", origem)
	}
	if dia != nil {
		inicio := time.Date(dia.Year(), dia.Month(), dia.Day(), 0, 0, 0, 0, dia.Location())
		q = q.Where("created_at >= ? AND created_at < ?", inicio, inicio.AddDate(0, 0, 1))
	}
	var lancamentos []model.Lancamento
	err := q.Order("created_at DESC").Find(&lancamentos).Error
	return lancamentos, err
}

func (r *lancamentoRepo) ListPagosEntre(ctx context.Context, inicio, fim time.Time) ([]model.Lancamento, error) {
	var lancamentos []model.Lancamento
	err := r.db.WithContext(ctx).
		Where("estado = ? AND created_at >= ? AND created_at < ?", model.LancamentoPago, inicio, fim).
		Order("created_at ASC").
		Find(&lancamentos).Error
	return lancamentos, err
}

func (r *lancamentoRepo) AtualizarTempo(ctx context.Context, id uuid.UUID, tempoMinutos *int, valor decimal.Decimal) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.Lancamento{}).
		Where("id = ? AND estado = ?", id, model.LancamentoAberto).
		Updates(map[string]interface{}{
			"tempo_minutos": tempoMinutos,
			"valor":         valor,
		})
	return res.RowsAffected == 1, res.Error
}

func (r *lancamentoRepo) Pagar(ctx context.Context, id uuid.UUID, metodoID uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.Lancamento{}).
		Where("id = ? AND estado = ?", id, model.LancamentoAberto).
		Updates(map[string]interface{}{
			"estado":              model.LancamentoPago,
			"metodo_pagamento_id": metodoID,
		})
	return res.RowsAffected == 1, res.Error
}

func (r *lancamentoRepo) Cancelar(ctx context.Context, id uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.Lancamento{}).
		Where("id = ? AND estado = ?", id, model.LancamentoAberto).
		Update("estado", model.LancamentoCancelado)
	return res.RowsAffected == 1, res.Error
}
