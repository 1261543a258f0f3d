package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/CordeiroLucas/gerenciador-fin/internal/application/dto"
	"github.com/CordeiroLucas/gerenciador-fin/internal/application/sales"
	"github.com/CordeiroLucas/gerenciador-fin/internal/domain/repository"
)

// SaleHandler trata as requisições HTTP para Sale (protegido).
type SaleHandler struct {
	uc  *sales.SaleUseCase
	loc *time.Location
}

// NewSaleHandler constrói o handler. loc é o fuso dos relatórios, usado
// para interpretar os filtros de data.
func NewSaleHandler(uc *sales.SaleUseCase, loc *time.Location) *SaleHandler {
	return &SaleHandler{uc: uc, loc: loc}
}

// Record godoc
// @Summary      Registrar venda (totais congelados no momento da venda)
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RecordSaleRequest  true  "Dados da venda"
// @Success      201   {object}  dto.SaleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/sales [post]
func (h *SaleHandler) Record(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "user_id obrigatório"})
	}
	var in dto.RecordSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	out, err := h.uc.Record(c.Context(), userID, in)
	if err != nil {
		return handleError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obter venda por ID
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID da venda"
// @Success      200  {object}  dto.SaleResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id} [get]
func (h *SaleHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return handleError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "venda não encontrada"})
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar vendas com totais do conjunto filtrado
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        product_id   query  string  false  "Filtrar por produto"
// @Param        category_id  query  string  false  "Filtrar por categoria"
// @Param        from         query  string  false  "Data inicial (YYYY-MM-DD)"
// @Param        to           query  string  false  "Data final inclusiva (YYYY-MM-DD)"
// @Param        search       query  string  false  "Busca em produto/observações"
// @Param        limit        query  int     false  "Limite"  default(20)
// @Param        offset       query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.SaleListResponse
// @Router       /api/sales [get]
func (h *SaleHandler) List(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	from, ok := parseDateParam(c, "from", false, h.loc)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from inválido (use YYYY-MM-DD)", Field: "from"})
	}
	to, ok := parseDateParam(c, "to", true, h.loc)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to inválido (use YYYY-MM-DD)", Field: "to"})
	}
	out, err := h.uc.List(c.Context(), repository.SaleFilter{
		ProductID:  c.Query("product_id"),
		CategoryID: c.Query("category_id"),
		From:       from,
		To:         to,
		Search:     c.Query("search"),
		Limit:      limit,
		Offset:     offset,
	})
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Editar venda (recalcula contra o custo congelado na venda)
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID da venda"
// @Param        body  body  dto.UpdateSaleRequest  true  "Dados a atualizar"
// @Success      200   {object}  dto.SaleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/sales/{id} [put]
func (h *SaleHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	out, err := h.uc.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		return handleError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "venda não encontrada"})
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Excluir venda
// @Tags         sales
// @Security     Bearer
// @Param        id  path  string  true  "ID da venda"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id} [delete]
func (h *SaleHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return handleError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// parseDateParam lê um parâmetro de data YYYY-MM-DD da query, interpretado
// no fuso dos relatórios para que os limites coincidam com os buckets das
// agregações. Devolve (nil, true) quando ausente e (nil, false) quando
// malformado. Para limites finais (endOfDay) soma um dia, tornando a data
// final inclusiva.
func parseDateParam(c *fiber.Ctx, name string, endOfDay bool, loc *time.Location) (*time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	t, err := time.ParseInLocation("2006-01-02", raw, loc)
	if err != nil {
		return nil, false
	}
	if endOfDay {
		t = t.AddDate(0, 0, 1)
	}
	return &t, true
}
