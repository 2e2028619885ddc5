package server

import (
	"net/http"

	"marketcart/internal/config"
	"marketcart/internal/handler"

	"github.com/labstack/echo/v4"
)

func RegisterRoutes(e *echo.Echo, cfg config.Config, cartH *handler.CartHandler, productH *handler.ProductHandler) {
	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	productH.RegisterRoutes(e)
	cartH.RegisterRoutes(e, cfg)
}
