package repository

import (
	"context"

	"parquepos/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ConfiguracaoRepository interface {
	Get(ctx context.Context) (*model.Configuracao, error)
	Save(ctx context.Context, c *model.Configuracao) error
}

type configuracaoRepo struct{ db *gorm.DB }

func NewConfiguracaoRepository(db *gorm.DB) ConfiguracaoRepository {
	return &configuracaoRepo{db: db}
}

func (r *configuracaoRepo) Get(ctx context.Context) (*model.Configuracao, error) {
	var c model.Configuracao
	err := r.db.WithContext(ctx).First(&c, 1).Error
	return &c, err
}

func (r *configuracaoRepo) Save(ctx context.Context, c *model.Configuracao) error {
	c.ID = 1
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(c).Error
}
