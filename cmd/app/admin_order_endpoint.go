package main

import (
	"net/http"
	"strconv"

	"VaultStoreAPI/internal/middleware"
	"VaultStoreAPI/internal/model"
	"VaultStoreAPI/internal/services"

	"github.com/labstack/echo/v4"
)

type deliverRequest struct {
	DeliveryDetails string `json:"deliverydetails"`
}

func registerAdminOrderRoutes(g *echo.Group, os *services.OrderService) {
	p := g.Group("/admin/orders")
	p.Use(middleware.JWTMiddleware())
	p.Use(middleware.AdminOnly)

	// queue view, defaults to pending
	p.GET("", func(c echo.Context) error {
		status := c.QueryParam("status")
		if status == "" {
			status = model.StatusPending
		}
		out, err := os.ListByStatus(c.Request().Context(), status)
		if err != nil {
			return jsonError(c, err)
		}
		return c.JSON(http.StatusOK, out)
	})

	p.GET("/:orderid", func(c echo.Context) error {
		orderID, _ := strconv.ParseInt(c.Param("orderid"), 10, 64)
		out, err := os.GetAny(c.Request().Context(), orderID)
		if err != nil {
			return jsonError(c, err)
		}
		return c.JSON(http.StatusOK, out)
	})

	p.GET("/:orderid/history", func(c echo.Context) error {
		orderID, _ := strconv.ParseInt(c.Param("orderid"), 10, 64)
		out, err := os.History(c.Request().Context(), orderID)
		if err != nil {
			return jsonError(c, err)
		}
		return c.JSON(http.StatusOK, out)
	})

	p.POST("/:orderid/process", func(c echo.Context) error {
		claims := middleware.GetClaims(c)
		orderID, _ := strconv.ParseInt(c.Param("orderid"), 10, 64)
		if err := os.Process(c.Request().Context(), orderID, claims.AdminID); err != nil {
			return jsonError(c, err)
		}
		return c.JSON(http.StatusOK, map[string]string{"message": "processing"})
	})

	p.POST("/:orderid/deliver", func(c echo.Context) error {
		claims := middleware.GetClaims(c)
		orderID, _ := strconv.ParseInt(c.Param("orderid"), 10, 64)
		req := new(deliverRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
		}
		if err := os.Complete(c.Request().Context(), orderID, claims.AdminID, req.DeliveryDetails); err != nil {
			return jsonError(c, err)
		}
		return c.JSON(http.StatusOK, map[string]string{"message": "completed"})
	})

	p.POST("/:orderid/cancel", func(c echo.Context) error {
		claims := middleware.GetClaims(c)
		orderID, _ := strconv.ParseInt(c.Param("orderid"), 10, 64)
		if err := os.Cancel(c.Request().Context(), orderID, claims.AdminID); err != nil {
			return jsonError(c, err)
		}
		return c.JSON(http.StatusOK, map[string]string{"message": "cancelled"})
	})
}
