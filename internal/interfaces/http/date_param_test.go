package http

import (
	"encoding/json"
	"io"
	nethttp "net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildDateParamApp expõe parseDateParam atrás de uma rota mínima, devolvendo
// os limites interpretados em RFC3339 para inspecionar o offset aplicado.
func buildDateParamApp(loc *time.Location) *fiber.App {
	app := fiber.New()
	app.Get("/dates", func(c *fiber.Ctx) error {
		from, ok := parseDateParam(c, "from", false, loc)
		if !ok {
			return c.SendStatus(fiber.StatusBadRequest)
		}
		to, ok := parseDateParam(c, "to", true, loc)
		if !ok {
			return c.SendStatus(fiber.StatusBadRequest)
		}
		out := fiber.Map{}
		if from != nil {
			out["from"] = from.Format(time.RFC3339)
		}
		if to != nil {
			out["to"] = to.Format(time.RFC3339)
		}
		return c.JSON(out)
	})
	return app
}

func getDates(t *testing.T, app *fiber.App, query string) (*nethttp.Response, map[string]string) {
	t.Helper()
	req := httptest.NewRequest(nethttp.MethodGet, "/dates"+query, nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	if resp.StatusCode != fiber.StatusOK {
		return resp, nil
	}
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out map[string]string
	require.NoError(t, json.Unmarshal(body, &out))
	return resp, out
}

func TestParseDateParam_InterpretaNoFusoDosRelatorios(t *testing.T) {
	loc, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)
	app := buildDateParamApp(loc)

	// from abre o dia no fuso dos relatórios, não em UTC; to é inclusivo
	// (meia-noite do dia seguinte, mesmo fuso).
	resp, out := getDates(t, app, "?from=2024-06-12&to=2024-06-12")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "2024-06-12T00:00:00-03:00", out["from"])
	assert.Equal(t, "2024-06-13T00:00:00-03:00", out["to"])
}

func TestParseDateParam_AusenteNaoFiltra(t *testing.T) {
	loc, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)
	app := buildDateParamApp(loc)

	resp, out := getDates(t, app, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.NotContains(t, out, "from")
	assert.NotContains(t, out, "to")
}

func TestParseDateParam_MalformadaDevolve400(t *testing.T) {
	app := buildDateParamApp(time.UTC)

	resp, _ := getDates(t, app, "?from=12-06-2024")
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
