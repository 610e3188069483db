package handler

import (
	"net/http"

	"parquepos/internal/apierror"
	"parquepos/internal/dto"
	"parquepos/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ── Itens ─────────────────────────────────────────────────────────────────────

type ItensHandler struct{ svc service.ItemService }

func NewItensHandler(svc service.ItemService) *ItensHandler { return &ItensHandler{svc: svc} }

func (h *ItensHandler) Criar(c *gin.Context) {
	var req dto.ItemRequest
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

func (h *ItensHandler) Listar(c *gin.Context) {
	incluirInativos := c.Query("incluir_inativos") == "true"
	resp, err := h.svc.Listar(c.Request.Context(), incluirInativos)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ItensHandler) Atualizar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	var req dto.ItemRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Atualizar(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ItensHandler) Desativar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	if err := h.svc.Desativar(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ── Clientes ──────────────────────────────────────────────────────────────────

type ClientesHandler struct{ svc service.ClienteService }

func NewClientesHandler(svc service.ClienteService) *ClientesHandler {
	return &ClientesHandler{svc: svc}
}

func (h *ClientesHandler) Criar(c *gin.Context) {
	var req dto.ClienteRequest
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

func (h *ClientesHandler) Listar(c *gin.Context) {
	resp, err := h.svc.Listar(c.Request.Context(), c.Query("busca"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ClientesHandler) Atualizar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	var req dto.ClienteRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Atualizar(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ClientesHandler) Desativar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	if err := h.svc.Desativar(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ── Métodos de pagamento ──────────────────────────────────────────────────────

type MetodosHandler struct{ svc service.MetodoPagamentoService }

func NewMetodosHandler(svc service.MetodoPagamentoService) *MetodosHandler {
	return &MetodosHandler{svc: svc}
}

func (h *MetodosHandler) Criar(c *gin.Context) {
	var req dto.MetodoPagamentoRequest
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

func (h *MetodosHandler) Listar(c *gin.Context) {
	resp, err := h.svc.Listar(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *MetodosHandler) Desativar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	if err := h.svc.Desativar(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ── Tarifa global ─────────────────────────────────────────────────────────────

type TarifaHandler struct{ svc service.TarifaService }

func NewTarifaHandler(svc service.TarifaService) *TarifaHandler { return &TarifaHandler{svc: svc} }

// Obter godoc
// @Summary Retorna a tarifa global vigente
// @Tags tarifa
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.TarifaResponse
// @Router /v1/tarifa [get]
func (h *TarifaHandler) Obter(c *gin.Context) {
	tarifa, err := h.svc.ObterGlobal(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, dto.TarifaResponse{
		TempoInicialMinutos: tarifa.TempoInicialMinutos,
		ValorInicial:        tarifa.ValorInicial,
		TempoCicloMinutos:   tarifa.TempoCicloMinutos,
		ValorCiclo:          tarifa.ValorCiclo,
	})
}

// Atualizar godoc
// @Summary Substitui a tarifa global
// @Tags tarifa
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.TarifaRequest true "Nova tarifa"
// @Success 200 {object} dto.TarifaResponse
// @Router /v1/tarifa [put]
func (h *TarifaHandler) Atualizar(c *gin.Context) {
	var req dto.TarifaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AtualizarGlobal(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
