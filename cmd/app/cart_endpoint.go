package main

import (
	"net/http"
	"strconv"

	"VaultStoreAPI/internal/middleware"
	"VaultStoreAPI/internal/services"

	"github.com/labstack/echo/v4"
)

type addCartRequest struct {
	ProductID int64 `json:"productid"`
	Qty       int   `json:"quantity"`
}

type updateCartRequest struct {
	Qty int `json:"quantity"`
}

func registerCartRoutes(g *echo.Group, cs *services.CartService, co *services.CheckoutService) {
	// GET cart; guests get an empty one, so no hard auth here
	g.GET("/cart", func(c echo.Context) error {
		var userID int64
		if claims := middleware.TryGetClaimsFromAuthHeader(c); claims != nil {
			userID = claims.UserID
		}
		cart, err := cs.Get(c.Request().Context(), userID)
		if err != nil {
			return jsonError(c, err)
		}
		return c.JSON(http.StatusOK, cart)
	})

	p := g.Group("/cart")
	p.Use(middleware.JWTMiddleware())

	// ADD item (merges into an existing line)
	p.POST("", func(c echo.Context) error {
		claims := middleware.GetClaims(c)
		req := new(addCartRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
		}
		if req.Qty == 0 {
			req.Qty = 1
		}
		cart, err := cs.Add(c.Request().Context(), claims.UserID, req.ProductID, req.Qty)
		if err != nil {
			return jsonError(c, err)
		}
		return c.JSON(http.StatusCreated, cart)
	})

	// UPDATE quantity; zero or less removes the line
	p.PUT("/:productid", func(c echo.Context) error {
		claims := middleware.GetClaims(c)
		productID, _ := strconv.ParseInt(c.Param("productid"), 10, 64)
		req := new(updateCartRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
		}
		cart, err := cs.SetQuantity(c.Request().Context(), claims.UserID, productID, req.Qty)
		if err != nil {
			return jsonError(c, err)
		}
		return c.JSON(http.StatusOK, cart)
	})

	// REMOVE item
	p.DELETE("/:productid", func(c echo.Context) error {
		claims := middleware.GetClaims(c)
		productID, _ := strconv.ParseInt(c.Param("productid"), 10, 64)
		cart, err := cs.Remove(c.Request().Context(), claims.UserID, productID)
		if err != nil {
			return jsonError(c, err)
		}
		return c.JSON(http.StatusOK, cart)
	})

	// CLEAR cart (also drops the applied coupon)
	p.DELETE("", func(c echo.Context) error {
		claims := middleware.GetClaims(c)
		cart, err := cs.Clear(c.Request().Context(), claims.UserID)
		if err != nil {
			return jsonError(c, err)
		}
		return c.JSON(http.StatusOK, cart)
	})

	// CHECKOUT
	p.POST("/checkout", func(c echo.Context) error {
		claims := middleware.GetClaims(c)
		displayID, err := co.Checkout(c.Request().Context(), claims.UserID)
		if err != nil {
			return jsonError(c, err)
		}
		return c.JSON(http.StatusOK, map[string]string{"displayid": displayID})
	})
}
