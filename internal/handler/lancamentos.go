package handler

import (
	"net/http"

	"parquepos/internal/apierror"
	"parquepos/internal/dto"
	"parquepos/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type LancamentosHandler struct{ svc service.LancamentoService }

func NewLancamentosHandler(svc service.LancamentoService) *LancamentosHandler {
	return &LancamentosHandler{svc: svc}
}

// Criar godoc
// @Summary Abre um lançamento (sessão de parque ou estacionamento)
// @Tags lancamentos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CriarLancamentoRequest true "Dados do lançamento"
// @Success 201 {object} dto.LancamentoResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/lancamentos [post]
func (h *LancamentosHandler) Criar(c *gin.Context) {
	var req dto.CriarLancamentoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Criar(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Listar godoc
// @Summary Lista lançamentos com filtros opcionais
// @Tags lancamentos
// @Produce json
// @Security BearerAuth
// @Param estado query string false "aberto | pago | cancelado"
// @Param origem query string false "parque | estacionamento"
// @Param dia query string false "AAAA-MM-DD"
// @Success 200 {array} dto.LancamentoResponse
// @Router /v1/lancamentos [get]
func (h *LancamentosHandler) Listar(c *gin.Context) {
	var filter dto.LancamentoFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("filtros inválidos"))
		return
	}
	if err := validate.Struct(filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("filtros inválidos"))
		return
	}
	resp, err := h.svc.Listar(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Obter returns a single lançamento.
func (h *LancamentosHandler) Obter(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	resp, err := h.svc.Obter(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// AtualizarTempo godoc
// @Summary Altera o tempo de um lançamento aberto, recalculando o valor
// @Tags lancamentos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID do lançamento"
// @Param body body dto.AtualizarTempoRequest true "Novo tempo (nulo = tempo livre)"
// @Success 200 {object} dto.LancamentoResponse
// @Failure 409 {object} apierror.APIError
// @Router /v1/lancamentos/{id}/tempo [patch]
func (h *LancamentosHandler) AtualizarTempo(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	var req dto.AtualizarTempoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AtualizarTempo(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Pagar godoc
// @Summary Registra o pagamento de um lançamento aberto
// @Tags lancamentos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID do lançamento"
// @Param body body dto.PagarLancamentoRequest true "Método de pagamento"
// @Success 200 {object} dto.LancamentoResponse
// @Failure 404 {object} apierror.APIError
// @Failure 409 {object} apierror.APIError
// @Router /v1/lancamentos/{id}/pagar [post]
func (h *LancamentosHandler) Pagar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	var req dto.PagarLancamentoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Pagar(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Cancelar godoc
// @Summary Cancela um lançamento aberto
// @Tags lancamentos
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID do lançamento"
// @Success 200 {object} dto.LancamentoResponse
// @Failure 409 {object} apierror.APIError
// @Router /v1/lancamentos/{id}/cancelar [post]
func (h *LancamentosHandler) Cancelar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	resp, err := h.svc.Cancelar(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
