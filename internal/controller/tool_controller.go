package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"kommo-tools-be/internal/config"
	"kommo-tools-be/internal/dto"
	"kommo-tools-be/internal/pkg/apperr"
	"kommo-tools-be/internal/pkg/logger"
	"kommo-tools-be/internal/pkg/serverutils"
	"kommo-tools-be/internal/service"
	"kommo-tools-be/pkg/store"
)

// SessionHeader carries the encoded session between stateless requests.
const SessionHeader = "X-Session"

type IToolController interface {
	RegisterRoutes(r fiber.Router)
	Health(ctx *fiber.Ctx) error
	ListTools(ctx *fiber.Ctx) error
	Execute(ctx *fiber.Ctx) error
}

type toolController struct {
	registry *service.ToolRegistry
	cfg      *config.Config
	logger   logger.ILogger
}

func NewToolController(registry *service.ToolRegistry, cfg *config.Config, log logger.ILogger) IToolController {
	return &toolController{registry: registry, cfg: cfg, logger: log}
}

func (c *toolController) RegisterRoutes(r fiber.Router) {
	r.Get("/", c.Health)
	r.Get("/health", c.Health)

	if c.cfg.Auth.Mode == config.AuthModeBearer {
		guard := serverutils.BearerMiddleware(c.cfg.Auth.BearerToken)
		r.Get("/tools", guard, c.ListTools)
		r.Post("/execute", guard, c.Execute)
		return
	}
	r.Get("/tools", c.ListTools)
	r.Post("/execute", c.Execute)
}

// Health is public in both variants.
func (c *toolController) Health(ctx *fiber.Ctx) error {
	return ctx.JSON(fiber.Map{
		"status":  "ok",
		"version": c.cfg.App.Version,
		"name":    c.cfg.App.Name,
		"tools":   c.registry.Names(),
	})
}

func (c *toolController) ListTools(ctx *fiber.Ctx) error {
	return ctx.JSON(fiber.Map{
		"tools": c.registry.Descriptors(),
	})
}

func (c *toolController) Execute(ctx *fiber.Ctx) error {
	var req dto.ExecuteRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse("Corpo da requisição inválido."))
	}

	sessionMode := c.cfg.Auth.Mode == config.AuthModeSession

	// Decoded once per request; corrupt or absent header means no session
	var sess store.Session
	if sessionMode {
		sess = store.DecodeSession(ctx.Get(SessionHeader))
	}

	result, newSess, err := c.registry.Execute(ctx.Context(), req.Tool, req.Params, sess)
	if err != nil {
		var appErr *apperr.AppError
		if errors.As(err, &appErr) {
			return ctx.Status(appErr.Status).JSON(serverutils.ErrorResponse(appErr.Message))
		}
		c.logger.Error("tools", "Tool execution failed", map[string]interface{}{
			"tool":  req.Tool,
			"error": err.Error(),
		})
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(err.Error()))
	}

	// Only changed sessions travel back; otherwise the caller keeps
	// presenting its previous header
	if sessionMode && newSess != nil {
		ctx.Set(SessionHeader, store.EncodeSession(*newSess))
	}

	status := result.Status
	if status == 0 {
		status = fiber.StatusOK
	}
	return ctx.Status(status).JSON(serverutils.SuccessResponse(result.Message, result.Data))
}
