package reports

import (
	"context"
	"time"

	"github.com/CordeiroLucas/gerenciador-fin/internal/application/dto"
)

// ReportPDFGenerator produz a versão PDF do relatório detalhado.
// Implementado na infraestrutura (Maroto); o caso de uso só conhece o porto.
type ReportPDFGenerator interface {
	GenerateDetailedReport(ctx context.Context, report *dto.DetailedReportResponse, generatedAt time.Time) ([]byte, error)
}
