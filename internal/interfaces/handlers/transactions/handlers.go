package transactions

import (
	"ryzer-backend/internal/application/ledger"
	"ryzer-backend/internal/interfaces/dto"
	"ryzer-backend/internal/middleware"
	"ryzer-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

type Handlers struct {
	Ledger *ledger.Service
}

// GetTransactions GET /transactions, most recent first.
func (h *Handlers) GetTransactions(c *fiber.Ctx) error {
	txs, err := h.Ledger.ListAll(c.UserContext())
	if err != nil {
		log.Error().Err(err).Str("trace_id", middleware.GetTraceID(c)).Msg("Failed to list transactions")
		return response.Error(c, "Failed to fetch transactions", fiber.StatusInternalServerError)
	}
	return response.OK(c, dto.FromTransactions(txs))
}
