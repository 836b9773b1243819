package main

import (
	"fmt"
	"net/http"

	"VaultStoreAPI/external/discord"
	"VaultStoreAPI/internal/middleware"
	"VaultStoreAPI/internal/repository"
	"VaultStoreAPI/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const sessionHours = 72

func registerAuthRoutes(g *echo.Group, dc *discord.Client, users *repository.UserRepository, admins *services.AdminService) {
	a := g.Group("/auth")

	// hand the client the provider redirect; state is echoed back on callback
	a.GET("/discord/login", func(c echo.Context) error {
		state := uuid.NewString()
		return c.JSON(http.StatusOK, map[string]string{
			"url":   dc.AuthURL(state),
			"state": state,
		})
	})

	a.GET("/discord/callback", func(c echo.Context) error {
		code := c.QueryParam("code")
		if code == "" {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "missing code"})
		}
		ctx := c.Request().Context()

		token, err := dc.ExchangeCode(ctx, code)
		if err != nil {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "discord sign-in failed"})
		}
		du, err := dc.FetchUser(ctx, token.AccessToken)
		if err != nil {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "discord sign-in failed"})
		}

		var avatarURL *string
		if du.Avatar != nil {
			u := fmt.Sprintf("https://cdn.discordapp.com/avatars/%s/%s.png", du.ID, *du.Avatar)
			avatarURL = &u
		}
		userID, err := users.Upsert(ctx, du.ID, du.Username, avatarURL, token.AccessToken)
		if err != nil {
			return jsonError(c, err)
		}

		var adminID int64
		var rank int
		if a, err := admins.Lookup(ctx, du.ID); err != nil {
			return jsonError(c, err)
		} else if a != nil {
			adminID, rank = a.AdminID, a.Rank
		}

		// informational only; checkout re-verifies membership fresh
		member, err := dc.IsGuildMember(ctx, token.AccessToken)
		if err != nil {
			member = false
		}

		jwt, err := middleware.GenerateToken(userID, du.ID, du.Username, adminID, rank, sessionHours)
		if err != nil {
			return jsonError(c, err)
		}
		return c.JSON(http.StatusOK, map[string]interface{}{
			"token":     jwt,
			"userid":    userID,
			"username":  du.Username,
			"adminrank": rank,
			"member":    member,
		})
	})

	me := a.Group("/me")
	me.Use(middleware.JWTMiddleware())
	me.GET("", func(c echo.Context) error {
		claims := middleware.GetClaims(c)
		return c.JSON(http.StatusOK, map[string]interface{}{
			"userid":    claims.UserID,
			"discordid": claims.DiscordID,
			"username":  claims.Username,
			"adminrank": claims.AdminRank,
		})
	})
}
