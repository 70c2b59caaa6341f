package trading

import (
	"errors"

	"ryzer-backend/internal/application/catalog"
	tradesvc "ryzer-backend/internal/application/trading"
	"ryzer-backend/internal/interfaces/dto"
	"ryzer-backend/internal/middleware"
	"ryzer-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

type Handlers struct {
	Service *tradesvc.Service
}

// Buy POST /buy
func (h *Handlers) Buy(c *fiber.Ctx) error {
	var body dto.BuyRequest
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, tradesvc.ErrMissingFields.Error(), fiber.StatusBadRequest)
	}
	if body.AssetID == 0 || body.Quantity == 0 || body.BuyerName == "" {
		return response.Error(c, tradesvc.ErrMissingFields.Error(), fiber.StatusBadRequest)
	}

	receipt, err := h.Service.Buy(c.UserContext(), body.AssetID, body.Quantity, body.BuyerName)
	if err != nil {
		var validationErr *tradesvc.ValidationError
		var supplyErr *catalog.InsufficientSupplyError
		switch {
		case errors.As(err, &validationErr):
			return response.Error(c, validationErr.Error(), fiber.StatusBadRequest)
		case errors.Is(err, catalog.ErrAssetNotFound):
			return response.Error(c, err.Error(), fiber.StatusNotFound)
		case errors.As(err, &supplyErr):
			return response.Error(c, supplyErr.Error(), fiber.StatusBadRequest)
		}
		log.Error().Err(err).Str("trace_id", middleware.GetTraceID(c)).Int64("asset_id", body.AssetID).Msg("Purchase failed")
		return response.Error(c, "Failed to process purchase", fiber.StatusInternalServerError)
	}

	log.Info().Str("trace_id", middleware.GetTraceID(c)).
		Int64("transaction_id", receipt.Transaction.ID).
		Int64("asset_id", receipt.Transaction.AssetID).
		Int64("quantity", receipt.Transaction.Quantity).
		Int64("remaining_supply", receipt.RemainingSupply).
		Msg("Purchase committed")
	return response.OK(c, dto.BuyResponse{
		Success:         true,
		Message:         "Purchase successful",
		Transaction:     dto.FromTransaction(receipt.Transaction),
		RemainingSupply: receipt.RemainingSupply,
	})
}
