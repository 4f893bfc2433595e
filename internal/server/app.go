package server

import (
	"quiz-ia/internal/config"
	"quiz-ia/internal/handler"
	"quiz-ia/internal/middleware"
	"quiz-ia/internal/util"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/swagger"
)

// CORS headers accepted from browser clients of the generation endpoint.
const (
	corsAllowOrigins = "*"
	corsAllowMethods = "POST,OPTIONS"
	corsAllowHeaders = "authorization, x-client-info, apikey, content-type"
)

// NewApp builds the fiber application shared by the HTTP server and the Lambda entrypoint.
func NewApp(cfg *config.Config, quizHandler *handler.QuizHandler) *fiber.App {
	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		BodyLimit:    cfg.Server.BodyLimit,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(requestid.New(requestid.Config{Generator: util.NewULID}))
	app.Use(middleware.RequestLogger())
	app.Use(cors.New(cors.Config{
		AllowOrigins: corsAllowOrigins,
		AllowMethods: corsAllowMethods,
		AllowHeaders: corsAllowHeaders,
	}))
	app.Use(recover.New())

	app.Get("/swagger/*", swagger.HandlerDefault)

	apiGroup := app.Group("/api")
	apiGroup.Options("/generate-quiz", preflight)
	apiGroup.Post("/generate-quiz", quizHandler.GenerateQuiz)

	return app
}

// preflight answers OPTIONS requests the cors middleware passes through,
// which are those without an Origin header.
func preflight(c *fiber.Ctx) error {
	c.Set(fiber.HeaderAccessControlAllowOrigin, corsAllowOrigins)
	c.Set(fiber.HeaderAccessControlAllowMethods, corsAllowMethods)
	c.Set(fiber.HeaderAccessControlAllowHeaders, corsAllowHeaders)
	return c.SendStatus(fiber.StatusNoContent)
}
