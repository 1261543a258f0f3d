package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/CordeiroLucas/gerenciador-fin/internal/application/reports"
)

// DashboardHandler trata as requisições HTTP do dashboard (protegido).
type DashboardHandler struct {
	uc *reports.DashboardUseCase
}

// NewDashboardHandler constrói o handler.
func NewDashboardHandler(uc *reports.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Home godoc
// @Summary      Resumo inicial: contadores, mês corrente e itens recentes
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.HomeSummaryResponse
// @Router       /api/dashboard [get]
func (h *DashboardHandler) Home(c *fiber.Ctx) error {
	out, err := h.uc.HomeSummary(c.Context())
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// Financial godoc
// @Summary      Dashboard financeiro com KPIs, séries, tendências e alertas
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Param        period  query  string  false  "30_dias | 90_dias | 6_meses | 12_meses"  default(30_dias)
// @Success      200  {object}  dto.FinancialDashboardResponse
// @Router       /api/dashboard/financial [get]
func (h *DashboardHandler) Financial(c *fiber.Ctx) error {
	out, err := h.uc.Financial(c.Context(), c.Query("period", reports.Window30Days))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}
