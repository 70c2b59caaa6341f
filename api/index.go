package handler

import (
	"net/http"
	"sync"

	"ryzer-backend/bootstrap"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/rs/zerolog/log"
)

var (
	initOnce sync.Once
	fiberApp *fiber.App
	initErr  error
)

// Handler is the serverless entry point. All requests are rewritten here.
// Without DATABASE_URL each instance keeps its own in-memory catalog.
func Handler(w http.ResponseWriter, r *http.Request) {
	initOnce.Do(func() {
		fiberApp, initErr = bootstrap.New()
		if initErr != nil {
			log.Error().Err(initErr).Msg("app create")
		}
	})
	if initErr != nil {
		http.Error(w, `{"error":"Service unavailable"}`, http.StatusServiceUnavailable)
		return
	}
	r.RequestURI = r.URL.String()
	adaptor.FiberApp(fiberApp)(w, r)
}
