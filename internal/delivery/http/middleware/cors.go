package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

// preflightMaxAge - сколько секунд браузер кэширует preflight
const preflightMaxAge = 600

// CORS - браузерный виджет ходит в /sessions с другого origin, поэтому
// разрешаем DELETE и отдаем Location для созданной сессии
func CORS(allowOrigins string) fiber.Handler {
	return cors.New(cors.Config{
		AllowOrigins:  allowOrigins,
		AllowMethods:  "GET,POST,DELETE,OPTIONS",
		AllowHeaders:  "Content-Type,Accept,Accept-Language",
		ExposeHeaders: "Location",
		MaxAge:        preflightMaxAge,
	})
}
