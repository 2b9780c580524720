package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/pedidos-api/internal/application/auth"
	"github.com/jhoicas/pedidos-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	PedidoUC    *usecase.PedidoUseCase
	AuthUC      *auth.AuthUseCase
	JWTSecret   string
	JWTIssuer   string
	JWTAudience string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	app.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret, deps.JWTIssuer, deps.JWTAudience))

	pedidos := api.Group("/pedidos")
	pedidoHandler := NewPedidoHandler(deps.PedidoUC)
	pedidos.Get("/", pedidoHandler.List)
	pedidos.Post("/", pedidoHandler.Create)
	pedidos.Get("/:id", pedidoHandler.GetByID)
	pedidos.Put("/:id", pedidoHandler.Update)
	pedidos.Delete("/:id", pedidoHandler.Delete)
}
