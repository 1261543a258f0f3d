package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/CordeiroLucas/gerenciador-fin/internal/application/dto"
	"github.com/CordeiroLucas/gerenciador-fin/internal/application/reports"
	"github.com/CordeiroLucas/gerenciador-fin/internal/domain/repository"
)

// ReportHandler trata as requisições HTTP de relatórios (protegido).
type ReportHandler struct {
	uc  *reports.ReportUseCase
	loc *time.Location
}

// NewReportHandler constrói o handler. loc é o fuso dos relatórios, usado
// para interpretar os filtros de data.
func NewReportHandler(uc *reports.ReportUseCase, loc *time.Location) *ReportHandler {
	return &ReportHandler{uc: uc, loc: loc}
}

// Revenue godoc
// @Summary      Relatório de receita por período pré-definido
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        period  query  string  false  "dia | semana | mes | ano | todos"  default(mes)
// @Success      200  {object}  dto.RevenueReportResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/revenue [get]
func (h *ReportHandler) Revenue(c *fiber.Ctx) error {
	out, err := h.uc.Revenue(c.Context(), c.Query("period", reports.PeriodMonth))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// Detailed godoc
// @Summary      Relatório detalhado com janela e filtros livres
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        from         query  string  false  "Data inicial (YYYY-MM-DD)"
// @Param        to           query  string  false  "Data final inclusiva (YYYY-MM-DD)"
// @Param        category_id  query  string  false  "Filtrar por categoria do produto"
// @Param        product_id   query  string  false  "Filtrar por produto"
// @Success      200  {object}  dto.DetailedReportResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/detailed [get]
func (h *ReportHandler) Detailed(c *fiber.Ctx) error {
	w, ok := h.reportWindow(c)
	if !ok {
		return nil
	}
	out, err := h.uc.Detailed(c.Context(), w)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// DetailedPDF godoc
// @Summary      Relatório detalhado em PDF
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Param        from         query  string  false  "Data inicial (YYYY-MM-DD)"
// @Param        to           query  string  false  "Data final inclusiva (YYYY-MM-DD)"
// @Param        category_id  query  string  false  "Filtrar por categoria do produto"
// @Param        product_id   query  string  false  "Filtrar por produto"
// @Success      200  {file}    binary
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/detailed/pdf [get]
func (h *ReportHandler) DetailedPDF(c *fiber.Ctx) error {
	w, ok := h.reportWindow(c)
	if !ok {
		return nil
	}
	data, err := h.uc.DetailedPDF(c.Context(), w)
	if err != nil {
		return handleError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="relatorio-%s.pdf"`, time.Now().Format("2006-01-02")))
	return c.Send(data)
}

// reportWindow monta a janela a partir da query; em erro já responde 400.
func (h *ReportHandler) reportWindow(c *fiber.Ctx) (repository.ReportWindow, bool) {
	from, ok := parseDateParam(c, "from", false, h.loc)
	if !ok {
		_ = c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from inválido (use YYYY-MM-DD)", Field: "from"})
		return repository.ReportWindow{}, false
	}
	to, ok := parseDateParam(c, "to", true, h.loc)
	if !ok {
		_ = c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to inválido (use YYYY-MM-DD)", Field: "to"})
		return repository.ReportWindow{}, false
	}
	return repository.ReportWindow{
		From:       from,
		To:         to,
		CategoryID: c.Query("category_id"),
		ProductID:  c.Query("product_id"),
	}, true
}
