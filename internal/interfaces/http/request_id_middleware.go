package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/jhoicas/Almacen-api/pkg/logger"
)

// LocalRequestID key del identificador de petición en Fiber.
const LocalRequestID = "request_id"

// HeaderRequestID header de respuesta con el identificador de la petición.
const HeaderRequestID = "X-Request-ID"

// RequestIDMiddleware asigna un UUID a cada petición (o respeta el entrante)
// y loguea método, ruta, estado y duración al terminar.
func RequestIDMiddleware(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		requestID := c.Get(HeaderRequestID)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Locals(LocalRequestID, requestID)
		c.Set(HeaderRequestID, requestID)

		start := time.Now()
		err := c.Next()

		log.Info().
			Str("request_id", requestID).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", c.Response().StatusCode()).
			Dur("duration", time.Since(start)).
			Str("ip", c.IP()).
			Msg("request")
		return err
	}
}
