package main

import (
	"net/http"
	"strconv"

	"VaultStoreAPI/internal/middleware"
	"VaultStoreAPI/internal/model"
	"VaultStoreAPI/internal/services"

	"github.com/labstack/echo/v4"
)

type reviewRequest struct {
	Rating int    `json:"rating"`
	Body   string `json:"body"`
}

type replyRequest struct {
	Body string `json:"body"`
}

type settingRequest struct {
	Value string `json:"value"`
}

func registerContentRoutes(g *echo.Group, cs *services.ContentService) {
	// public homepage content, served through the TTL cache
	g.GET("/home/carousel", func(c echo.Context) error {
		out, err := cs.Carousel(c.Request().Context())
		if err != nil {
			return jsonError(c, err)
		}
		return c.JSON(http.StatusOK, out)
	})

	g.GET("/home/top-products", func(c echo.Context) error {
		out, err := cs.TopProducts(c.Request().Context())
		if err != nil {
			return jsonError(c, err)
		}
		return c.JSON(http.StatusOK, out)
	})

	g.GET("/products/:productid/reviews", func(c echo.Context) error {
		id, _ := strconv.ParseInt(c.Param("productid"), 10, 64)
		out, err := cs.Reviews(c.Request().Context(), id)
		if err != nil {
			return jsonError(c, err)
		}
		return c.JSON(http.StatusOK, out)
	})

	rv := g.Group("/products/:productid/reviews")
	rv.Use(middleware.JWTMiddleware())
	rv.POST("", func(c echo.Context) error {
		claims := middleware.GetClaims(c)
		productID, _ := strconv.ParseInt(c.Param("productid"), 10, 64)
		req := new(reviewRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
		}
		id, err := cs.AddReview(c.Request().Context(), &model.Review{
			ProductID: productID,
			UserID:    claims.UserID,
			Rating:    req.Rating,
			Body:      req.Body,
		})
		if err != nil {
			return jsonError(c, err)
		}
		return c.JSON(http.StatusCreated, map[string]interface{}{"reviewid": id})
	})

	admin := g.Group("/admin/content")
	admin.Use(middleware.JWTMiddleware())
	admin.Use(middleware.AdminOnly)

	admin.POST("/carousel", func(c echo.Context) error {
		req := new(model.CarouselSlide)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
		}
		id, err := cs.SaveSlide(c.Request().Context(), req)
		if err != nil {
			return jsonError(c, err)
		}
		return c.JSON(http.StatusOK, map[string]interface{}{"slideid": id})
	})

	admin.DELETE("/carousel/:slideid", func(c echo.Context) error {
		id, _ := strconv.ParseInt(c.Param("slideid"), 10, 64)
		if err := cs.DeleteSlide(c.Request().Context(), id); err != nil {
			return jsonError(c, err)
		}
		return c.JSON(http.StatusOK, map[string]string{"message": "deleted"})
	})

	admin.PUT("/top-products", func(c echo.Context) error {
		var req []model.TopProduct
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
		}
		if err := cs.SetTopProducts(c.Request().Context(), req); err != nil {
			return jsonError(c, err)
		}
		return c.JSON(http.StatusOK, map[string]string{"message": "updated"})
	})

	admin.POST("/products/:productid/reviews/:reviewid/reply", func(c echo.Context) error {
		claims := middleware.GetClaims(c)
		productID, _ := strconv.ParseInt(c.Param("productid"), 10, 64)
		reviewID, _ := strconv.ParseInt(c.Param("reviewid"), 10, 64)
		req := new(replyRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
		}
		id, err := cs.AddReply(c.Request().Context(), productID, reviewID, claims.AdminID, req.Body)
		if err != nil {
			return jsonError(c, err)
		}
		return c.JSON(http.StatusCreated, map[string]interface{}{"replyid": id})
	})

	admin.GET("/settings/:key", func(c echo.Context) error {
		v, err := cs.Setting(c.Request().Context(), c.Param("key"))
		if err != nil {
			return jsonError(c, err)
		}
		return c.JSON(http.StatusOK, map[string]string{"key": c.Param("key"), "value": v})
	})

	admin.PUT("/settings/:key", func(c echo.Context) error {
		req := new(settingRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
		}
		if err := cs.SetSetting(c.Request().Context(), c.Param("key"), req.Value); err != nil {
			return jsonError(c, err)
		}
		return c.JSON(http.StatusOK, map[string]string{"message": "updated"})
	})
}
