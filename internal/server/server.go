package server

import (
	"app/internal/config"
	"app/internal/handler"
	"app/internal/middleware"
	"app/internal/repository"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

type Handlers struct {
	Auth    *handler.AuthHandler
	Order   *handler.OrderHandler
	User    *handler.UserHandler
	Product *handler.ProductHandler
	Chat    *handler.ChatHandler
	Contact *handler.ContactHandler
}

// Newはechoを組み立ててルートを登録する。
func New(cfg config.Config, logger zerolog.Logger, userRepo repository.UserRepository, h Handlers) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.RequestLogger(logger))

	h.Auth.RegisterRoutes(e, cfg, userRepo)
	h.Order.RegisterRoutes(e, cfg, userRepo)
	h.User.RegisterRoutes(e, cfg, userRepo)
	h.Product.RegisterRoutes(e)
	h.Chat.RegisterRoutes(e)
	h.Contact.RegisterRoutes(e)

	return e
}

func Start(e *echo.Echo, addr string) error {
	return e.Start(addr)
}
