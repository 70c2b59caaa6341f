package portfolio

import (
	portfoliosvc "ryzer-backend/internal/application/portfolio"
	"ryzer-backend/internal/interfaces/dto"
	"ryzer-backend/internal/middleware"
	"ryzer-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

type Handlers struct {
	Service *portfoliosvc.Service
}

// GetPortfolio GET /portfolio?buyer=NAME. Without buyer every purchase is included.
func (h *Handlers) GetPortfolio(c *fiber.Ctx) error {
	summary, err := h.Service.View(c.UserContext(), c.Query("buyer"))
	if err != nil {
		log.Error().Err(err).Str("trace_id", middleware.GetTraceID(c)).Msg("Failed to build portfolio")
		return response.Error(c, "Failed to fetch portfolio", fiber.StatusInternalServerError)
	}
	return response.OK(c, dto.FromSummary(summary))
}
