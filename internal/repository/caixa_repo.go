package repository

import (
	"context"
	"time"

	"parquepos/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CaixaRepository interface {
	Create(ctx context.Context, c *model.Caixa) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Caixa, error)
	List(ctx context.Context) ([]model.Caixa, error)
	// Abrir is a compare-and-set fechado → aberto. Returns false when the
	// caixa was not fechado (a concurrent open won).
	Abrir(ctx context.Context, id uuid.UUID, fundoTroco decimal.Decimal, abertoEm time.Time) (bool, error)
	// Fechar is a compare-and-set aberto → fechado.
	Fechar(ctx context.Context, id uuid.UUID) (bool, error)
	CreateMovimento(ctx context.Context, m *model.MovimentoCaixa) error
	// ListMovimentosDesde returns the ledger of the opening started at desde,
	// ordered by occurrence (ties resolved by insertion order).
	ListMovimentosDesde(ctx context.Context, caixaID uuid.UUID, desde time.Time) ([]model.MovimentoCaixa, error)
}

type caixaRepo struct{ db *gorm.DB }

func NewCaixaRepository(db *gorm.DB) CaixaRepository { return &caixaRepo{db: db} }

func (r *caixaRepo) Create(ctx context.Context, c *model.Caixa) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *caixaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Caixa, error) {
	var c model.Caixa
	err := r.db.WithContext(ctx).First(&c, id).Error
	return &c, err
}

func (r *caixaRepo) List(ctx context.Context) ([]model.Caixa, error) {
	var caixas []model.Caixa
	err := r.db.WithContext(ctx).Order("nome ASC").Find(&caixas).Error
	return caixas, err
}

func (r *caixaRepo) Abrir(ctx context.Context, id uuid.UUID, fundoTroco decimal.Decimal, abertoEm time.Time) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.Caixa{}).
		Where("id = ? AND estado = ?", id, model.CaixaFechado).
		Updates(map[string]interface{}{
			"estado":      model.CaixaAberto,
			"fundo_troco": fundoTroco,
			"aberto_em":   abertoEm,
		})
	return res.RowsAffected == 1, res.Error
}

func (r *caixaRepo) Fechar(ctx context.Context, id uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.Caixa{}).
		Where("id = ? AND estado = ?", id, model.CaixaAberto).
		Update("estado", model.CaixaFechado)
	return res.RowsAffected == 1, res.Error
}

func (r *caixaRepo) CreateMovimento(ctx context.Context, m *model.MovimentoCaixa) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *caixaRepo) ListMovimentosDesde(ctx context.Context, caixaID uuid.UUID, desde time.Time) ([]model.MovimentoCaixa, error) {
	var movs []model.MovimentoCaixa
	err := r.db.WithContext(ctx).
		Where("caixa_id = ? AND ocorrido_em >= ?", caixaID, desde).
		Order("ocorrido_em ASC, id ASC").
		Find(&movs).Error
	return movs, err
}
