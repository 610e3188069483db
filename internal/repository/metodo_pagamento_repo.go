package repository

import (
	"context"

	"parquepos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MetodoPagamentoRepository interface {
	Create(ctx context.Context, m *model.MetodoPagamento) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.MetodoPagamento, error)
	List(ctx context.Context) ([]model.MetodoPagamento, error)
	Update(ctx context.Context, m *model.MetodoPagamento) error
}

type metodoPagamentoRepo struct{ db *gorm.DB }

func NewMetodoPagamentoRepository(db *gorm.DB) MetodoPagamentoRepository {
	return &metodoPagamentoRepo{db: db}
}

func (r *metodoPagamentoRepo) Create(ctx context.Context, m *model.MetodoPagamento) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *metodoPagamentoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.MetodoPagamento, error) {
	var m model.MetodoPagamento
	err := r.db.WithContext(ctx).First(&m, id).Error
	return &m, err
}

func (r *metodoPagamentoRepo) List(ctx context.Context) ([]model.MetodoPagamento, error) {
	var metodos []model.MetodoPagamento
	err := r.db.WithContext(ctx).Where("ativo = true").Order("nome ASC").Find(&metodos).Error
	return metodos, err
}

func (r *metodoPagamentoRepo) Update(ctx context.Context, m *model.MetodoPagamento) error {
	return r.db.WithContext(ctx).Save(m).Error
}
