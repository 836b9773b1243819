package main

import (
	"net/http"
	"strconv"

	"VaultStoreAPI/internal/middleware"
	"VaultStoreAPI/internal/services"

	"github.com/labstack/echo/v4"
)

func registerOrderRoutes(g *echo.Group, os *services.OrderService) {
	p := g.Group("/orders")
	p.Use(middleware.JWTMiddleware())

	// the caller's own orders, all states
	p.GET("", func(c echo.Context) error {
		claims := middleware.GetClaims(c)
		out, err := os.ListForUser(c.Request().Context(), claims.UserID)
		if err != nil {
			return jsonError(c, err)
		}
		return c.JSON(http.StatusOK, out)
	})

	p.GET("/:orderid", func(c echo.Context) error {
		claims := middleware.GetClaims(c)
		orderID, _ := strconv.ParseInt(c.Param("orderid"), 10, 64)
		out, err := os.GetForUser(c.Request().Context(), orderID, claims.UserID)
		if err != nil {
			return jsonError(c, err)
		}
		return c.JSON(http.StatusOK, out)
	})
}
