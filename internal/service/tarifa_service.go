package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"parquepos/internal/dto"
	"parquepos/internal/model"
	"parquepos/internal/repository"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const (
	tarifaCacheKey = "cache:tarifa_global"
	tarifaCacheTTL = 5 * time.Minute
)

type TarifaService interface {
	// ObterGlobal returns the site-wide tarifa. When no configuração row
	// exists yet, a zero tarifa (flat R$ 0) is returned without error.
	ObterGlobal(ctx context.Context) (model.Tarifa, error)
	AtualizarGlobal(ctx context.Context, req dto.TarifaRequest) (*dto.TarifaResponse, error)
}

type tarifaService struct {
	repo repository.ConfiguracaoRepository
	rdb  *redis.Client // nil in unit tests — cache becomes a no-op
}

func NewTarifaService(repo repository.ConfiguracaoRepository, rdb *redis.Client) TarifaService {
	return &tarifaService{repo: repo, rdb: rdb}
}

func (s *tarifaService) ObterGlobal(ctx context.Context) (model.Tarifa, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, tarifaCacheKey).Bytes(); err == nil {
			var tarifa model.Tarifa
			if json.Unmarshal(cached, &tarifa) == nil {
				return tarifa, nil
			}
		}
	}

	cfg, err := s.repo.Get(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.Tarifa{}, nil
		}
		return model.Tarifa{}, err
	}

	if s.rdb != nil {
		if data, err := json.Marshal(cfg.Tarifa); err == nil {
			s.rdb.Set(ctx, tarifaCacheKey, data, tarifaCacheTTL)
		}
	}
	return cfg.Tarifa, nil
}

func (s *tarifaService) AtualizarGlobal(ctx context.Context, req dto.TarifaRequest) (*dto.TarifaResponse, error) {
	tarifa := model.Tarifa{
		TempoInicialMinutos: req.TempoInicialMinutos,
		ValorInicial:        req.ValorInicial,
		TempoCicloMinutos:   req.TempoCicloMinutos,
		ValorCiclo:          req.ValorCiclo,
	}
	if err := s.repo.Save(ctx, &model.Configuracao{Tarifa: tarifa}); err != nil {
		return nil, err
	}
	if s.rdb != nil {
		s.rdb.Del(ctx, tarifaCacheKey)
	}
	return tarifaToResponse(tarifa), nil
}

func tarifaToResponse(t model.Tarifa) *dto.TarifaResponse {
	return &dto.TarifaResponse{
		TempoInicialMinutos: t.TempoInicialMinutos,
		ValorInicial:        t.ValorInicial,
		TempoCicloMinutos:   t.TempoCicloMinutos,
		ValorCiclo:          t.ValorCiclo,
	}
}
