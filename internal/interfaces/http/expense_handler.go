package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/CordeiroLucas/gerenciador-fin/internal/application/dto"
	"github.com/CordeiroLucas/gerenciador-fin/internal/application/usecase"
	"github.com/CordeiroLucas/gerenciador-fin/internal/domain/entity"
	"github.com/CordeiroLucas/gerenciador-fin/internal/domain/repository"
)

// ExpenseHandler trata as requisições HTTP para Expense (protegido).
type ExpenseHandler struct {
	uc  *usecase.ExpenseUseCase
	loc *time.Location
}

// NewExpenseHandler constrói o handler. loc é o fuso dos relatórios, usado
// para interpretar os filtros de data.
func NewExpenseHandler(uc *usecase.ExpenseUseCase, loc *time.Location) *ExpenseHandler {
	return &ExpenseHandler{uc: uc, loc: loc}
}

// Create godoc
// @Summary      Registrar despesa
// @Tags         expenses
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateExpenseRequest  true  "Dados da despesa"
// @Success      201   {object}  dto.ExpenseResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/expenses [post]
func (h *ExpenseHandler) Create(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "user_id obrigatório"})
	}
	var in dto.CreateExpenseRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	out, err := h.uc.Create(c.Context(), userID, in)
	if err != nil {
		return handleError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obter despesa por ID
// @Tags         expenses
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID da despesa"
// @Success      200  {object}  dto.ExpenseResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/expenses/{id} [get]
func (h *ExpenseHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return handleError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "despesa não encontrada"})
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar despesas com totais do conjunto filtrado
// @Tags         expenses
// @Security     Bearer
// @Produce      json
// @Param        category  query  string  false  "Categoria (operacional, marketing, ...)"
// @Param        status    query  string  false  "Status derivado: pago | pendente | vencido"
// @Param        from      query  string  false  "Data inicial (YYYY-MM-DD)"
// @Param        to        query  string  false  "Data final inclusiva (YYYY-MM-DD)"
// @Param        search    query  string  false  "Busca em descrição/observações"
// @Param        limit     query  int     false  "Limite"  default(20)
// @Param        offset    query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.ExpenseListResponse
// @Router       /api/expenses [get]
func (h *ExpenseHandler) List(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	from, ok := parseDateParam(c, "from", false, h.loc)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from inválido (use YYYY-MM-DD)", Field: "from"})
	}
	to, ok := parseDateParam(c, "to", true, h.loc)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to inválido (use YYYY-MM-DD)", Field: "to"})
	}

	category := entity.ExpenseCategory(c.Query("category"))
	if category != "" && !category.Valid() {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "categoria de despesa desconhecida", Field: "category"})
	}

	status := c.Query("status")
	switch status {
	case "", repository.ExpenseStatusFilterPaid, repository.ExpenseStatusFilterPending, repository.ExpenseStatusFilterOverdue:
	default:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "status deve ser pago, pendente ou vencido", Field: "status"})
	}

	out, err := h.uc.List(c.Context(), repository.ExpenseFilter{
		Category: category,
		Status:   status,
		From:     from,
		To:       to,
		Search:   c.Query("search"),
		Limit:    limit,
		Offset:   offset,
		Now:      time.Now(),
	})
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Atualizar despesa
// @Tags         expenses
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID da despesa"
// @Param        body  body  dto.UpdateExpenseRequest  true  "Dados a atualizar"
// @Success      200   {object}  dto.ExpenseResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/expenses/{id} [put]
func (h *ExpenseHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateExpenseRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	out, err := h.uc.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		return handleError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "despesa não encontrada"})
	}
	return c.JSON(out)
}

// MarkPaid godoc
// @Summary      Marcar despesa como paga (carimba a data de pagamento)
// @Tags         expenses
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID da despesa"
// @Success      200  {object}  dto.ExpenseResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/expenses/{id}/pay [post]
func (h *ExpenseHandler) MarkPaid(c *fiber.Ctx) error {
	out, err := h.uc.MarkPaid(c.Context(), c.Params("id"))
	if err != nil {
		return handleError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "despesa não encontrada"})
	}
	return c.JSON(out)
}

// MarkPending godoc
// @Summary      Reverter despesas pagas para pendentes (ação em lote)
// @Tags         expenses
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.MarkPendingRequest  true  "IDs das despesas"
// @Success      200   {object}  dto.MarkPendingResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/expenses/mark-pending [post]
func (h *ExpenseHandler) MarkPending(c *fiber.Ctx) error {
	var in dto.MarkPendingRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	if len(in.IDs) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "ids é obrigatório", Field: "ids"})
	}
	out, err := h.uc.MarkPending(c.Context(), in)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Excluir despesa
// @Tags         expenses
// @Security     Bearer
// @Param        id  path  string  true  "ID da despesa"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/expenses/{id} [delete]
func (h *ExpenseHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return handleError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
