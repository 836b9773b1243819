package main

import (
	"net/http"
	"strconv"

	"VaultStoreAPI/internal/middleware"
	"VaultStoreAPI/internal/model"
	"VaultStoreAPI/internal/services"

	"github.com/labstack/echo/v4"
)

func registerProductRoutes(g *echo.Group, cs *services.CatalogService) {
	p := g.Group("/products")

	// public catalog: only active products
	p.GET("", func(c echo.Context) error {
		f := model.ProductFilter{
			Category:   c.QueryParam("category"),
			Platform:   c.QueryParam("platform"),
			Search:     c.QueryParam("search"),
			ActiveOnly: true,
		}
		out, err := cs.List(c.Request().Context(), f)
		if err != nil {
			return jsonError(c, err)
		}
		return c.JSON(http.StatusOK, out)
	})

	p.GET("/:productid", func(c echo.Context) error {
		id, _ := strconv.ParseInt(c.Param("productid"), 10, 64)
		out, err := cs.Get(c.Request().Context(), id)
		if err != nil {
			return jsonError(c, err)
		}
		return c.JSON(http.StatusOK, out)
	})

	admin := g.Group("/admin/products")
	admin.Use(middleware.JWTMiddleware())
	admin.Use(middleware.AdminOnly)

	admin.GET("", func(c echo.Context) error {
		// admins see inactive products too
		out, err := cs.List(c.Request().Context(), model.ProductFilter{
			Category: c.QueryParam("category"),
			Search:   c.QueryParam("search"),
		})
		if err != nil {
			return jsonError(c, err)
		}
		return c.JSON(http.StatusOK, out)
	})

	admin.POST("", func(c echo.Context) error {
		req := new(model.Product)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
		}
		id, err := cs.Create(c.Request().Context(), req)
		if err != nil {
			return jsonError(c, err)
		}
		return c.JSON(http.StatusCreated, map[string]interface{}{"productid": id})
	})

	admin.PUT("/:productid", func(c echo.Context) error {
		id, _ := strconv.ParseInt(c.Param("productid"), 10, 64)
		req := new(model.Product)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
		}
		req.ProductID = id
		if err := cs.Update(c.Request().Context(), req); err != nil {
			return jsonError(c, err)
		}
		return c.JSON(http.StatusOK, map[string]string{"message": "updated"})
	})

	admin.DELETE("/:productid", func(c echo.Context) error {
		id, _ := strconv.ParseInt(c.Param("productid"), 10, 64)
		if err := cs.Delete(c.Request().Context(), id); err != nil {
			return jsonError(c, err)
		}
		return c.JSON(http.StatusOK, map[string]string{"message": "deleted"})
	})
}
