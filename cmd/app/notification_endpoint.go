package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"VaultStoreAPI/internal/middleware"
	"VaultStoreAPI/internal/push"
	"VaultStoreAPI/internal/services"

	"github.com/labstack/echo/v4"
)

const streamKeepalive = 25 * time.Second

func registerNotificationRoutes(g *echo.Group, ns *services.NotificationService, hub *push.Hub) {
	p := g.Group("/notifications")
	p.Use(middleware.JWTMiddleware())

	p.GET("", func(c echo.Context) error {
		claims := middleware.GetClaims(c)
		out, err := ns.List(c.Request().Context(), claims.UserID)
		if err != nil {
			return jsonError(c, err)
		}
		return c.JSON(http.StatusOK, out)
	})

	p.GET("/unread-count", func(c echo.Context) error {
		claims := middleware.GetClaims(c)
		n, err := ns.UnreadCount(c.Request().Context(), claims.UserID)
		if err != nil {
			return jsonError(c, err)
		}
		return c.JSON(http.StatusOK, map[string]int{"unread": n})
	})

	p.PUT("/:notificationid/read", func(c echo.Context) error {
		claims := middleware.GetClaims(c)
		id, _ := strconv.ParseInt(c.Param("notificationid"), 10, 64)
		if err := ns.MarkRead(c.Request().Context(), id, claims.UserID); err != nil {
			return jsonError(c, err)
		}
		return c.JSON(http.StatusOK, map[string]string{"message": "read"})
	})

	p.PUT("/read-all", func(c echo.Context) error {
		claims := middleware.GetClaims(c)
		if err := ns.MarkAllRead(c.Request().Context(), claims.UserID); err != nil {
			return jsonError(c, err)
		}
		return c.JSON(http.StatusOK, map[string]string{"message": "read"})
	})

	// live feed over SSE. Clients reconnect freely (tab refocus etc);
	// delivery resumes from now, the list endpoint has the backlog.
	p.GET("/stream", func(c echo.Context) error {
		claims := middleware.GetClaims(c)
		ch, cancel := hub.Subscribe(claims.UserID)
		defer cancel()

		w := c.Response()
		w.Header().Set(echo.HeaderContentType, "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")
		w.WriteHeader(http.StatusOK)
		w.Flush()

		ctx := c.Request().Context()
		keepalive := time.NewTicker(streamKeepalive)
		defer keepalive.Stop()

		for {
			select {
			case <-ctx.Done():
				return nil
			case n, ok := <-ch:
				if !ok {
					return nil
				}
				b, err := json.Marshal(n)
				if err != nil {
					continue
				}
				fmt.Fprintf(w, "data: %s\n\n", b)
				w.Flush()
			case <-keepalive.C:
				fmt.Fprint(w, ": keepalive\n\n")
				w.Flush()
			}
		}
	})
}
