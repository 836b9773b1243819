package main

import (
	"net/http"
	"strconv"

	"VaultStoreAPI/internal/middleware"
	"VaultStoreAPI/internal/services"

	"github.com/labstack/echo/v4"
)

type createAdminRequest struct {
	DiscordID string `json:"discordid"`
	Role      string `json:"role"`
	Rank      int    `json:"rank"`
}

func registerAdminRoutes(g *echo.Group, as *services.AdminService) {
	p := g.Group("/admin/admins")
	p.Use(middleware.JWTMiddleware())
	p.Use(middleware.AdminOnly)

	p.GET("", func(c echo.Context) error {
		out, err := as.List(c.Request().Context())
		if err != nil {
			return jsonError(c, err)
		}
		return c.JSON(http.StatusOK, out)
	})

	p.POST("", func(c echo.Context) error {
		claims := middleware.GetClaims(c)
		req := new(createAdminRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
		}
		id, err := as.Create(c.Request().Context(), claims.AdminRank, req.DiscordID, req.Role, req.Rank)
		if err != nil {
			return jsonError(c, err)
		}
		return c.JSON(http.StatusCreated, map[string]interface{}{"adminid": id})
	})

	p.DELETE("/:adminid", func(c echo.Context) error {
		claims := middleware.GetClaims(c)
		id, _ := strconv.ParseInt(c.Param("adminid"), 10, 64)
		if err := as.Delete(c.Request().Context(), claims.AdminRank, id); err != nil {
			return jsonError(c, err)
		}
		return c.JSON(http.StatusOK, map[string]string{"message": "removed"})
	})
}
