package main

import (
	"net/http"
	"strconv"

	"VaultStoreAPI/internal/middleware"
	"VaultStoreAPI/internal/repository"
	"VaultStoreAPI/internal/services"

	"github.com/labstack/echo/v4"
)

type applyCouponRequest struct {
	Code string `json:"code"`
}

type createCouponRequest struct {
	Code        string  `json:"code"`
	DiscountPct float64 `json:"discountpct"`
	MaxUses     *int    `json:"maxuses,omitempty"`
}

func registerCouponRoutes(g *echo.Group, cs *services.CouponService, repo *repository.CouponRepository) {
	p := g.Group("/coupons")
	p.Use(middleware.JWTMiddleware())

	// APPLY to the caller's cart
	p.POST("/apply", func(c echo.Context) error {
		claims := middleware.GetClaims(c)
		req := new(applyCouponRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
		}
		ac, err := cs.Apply(c.Request().Context(), claims.UserID, req.Code)
		if err != nil {
			return jsonError(c, err)
		}
		return c.JSON(http.StatusOK, ac)
	})

	// DROP the applied coupon
	p.DELETE("/applied", func(c echo.Context) error {
		claims := middleware.GetClaims(c)
		if err := cs.ClearApplied(c.Request().Context(), claims.UserID); err != nil {
			return jsonError(c, err)
		}
		return c.JSON(http.StatusOK, map[string]string{"message": "cleared"})
	})

	admin := g.Group("/admin/coupons")
	admin.Use(middleware.JWTMiddleware())
	admin.Use(middleware.AdminOnly)

	admin.GET("", func(c echo.Context) error {
		out, err := repo.List(c.Request().Context())
		if err != nil {
			return jsonError(c, err)
		}
		return c.JSON(http.StatusOK, out)
	})

	admin.POST("", func(c echo.Context) error {
		req := new(createCouponRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
		}
		id, err := cs.Create(c.Request().Context(), req.Code, req.DiscountPct, req.MaxUses)
		if err != nil {
			return jsonError(c, err)
		}
		return c.JSON(http.StatusCreated, map[string]interface{}{"couponid": id})
	})

	admin.PUT("/:couponid/active", func(c echo.Context) error {
		id, _ := strconv.ParseInt(c.Param("couponid"), 10, 64)
		var req struct {
			Active bool `json:"active"`
		}
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
		}
		if err := repo.SetActive(c.Request().Context(), id, req.Active); err != nil {
			return jsonError(c, err)
		}
		return c.JSON(http.StatusOK, map[string]string{"message": "updated"})
	})
}
