package assets

import (
	"errors"
	"strconv"

	"ryzer-backend/internal/application/assetevents"
	"ryzer-backend/internal/application/catalog"
	"ryzer-backend/internal/interfaces/dto"
	"ryzer-backend/internal/middleware"
	"ryzer-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

type Handlers struct {
	Catalog *catalog.Service
	Events  *assetevents.Service
}

// ListAssets GET /assets
func (h *Handlers) ListAssets(c *fiber.Ctx) error {
	assets, err := h.Catalog.ListAssets(c.UserContext())
	if err != nil {
		log.Error().Err(err).Str("trace_id", middleware.GetTraceID(c)).Msg("Failed to list assets")
		return response.Error(c, "Failed to fetch assets", fiber.StatusInternalServerError)
	}
	return response.OK(c, dto.FromAssets(assets))
}

// GetAsset GET /assets/:id
func (h *Handlers) GetAsset(c *fiber.Ctx) error {
	id, ok := assetID(c)
	if !ok {
		return response.Error(c, "Invalid asset id", fiber.StatusBadRequest)
	}
	asset, err := h.Catalog.GetAsset(c.UserContext(), id)
	if err != nil {
		return assetError(c, err)
	}
	return response.OK(c, dto.FromAsset(asset))
}

// ListEvents GET /assets/:id/events, newest first.
func (h *Handlers) ListEvents(c *fiber.Ctx) error {
	id, ok := assetID(c)
	if !ok {
		return response.Error(c, "Invalid asset id", fiber.StatusBadRequest)
	}
	events, err := h.Events.ListForAsset(c.UserContext(), id)
	if err != nil {
		return assetError(c, err)
	}
	return response.OK(c, dto.FromAssetEvents(events))
}

func assetID(c *fiber.Ctx) (int64, bool) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}

func assetError(c *fiber.Ctx, err error) error {
	if errors.Is(err, catalog.ErrAssetNotFound) {
		return response.Error(c, err.Error(), fiber.StatusNotFound)
	}
	log.Error().Err(err).Str("trace_id", middleware.GetTraceID(c)).Str("asset_id", c.Params("id")).Msg("Asset lookup failed")
	return response.Error(c, "Failed to fetch asset", fiber.StatusInternalServerError)
}
