package discord

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

var (
	// ErrTokenStale means the stored provider token was rejected (401);
	// the user must re-authenticate.
	ErrTokenStale = errors.New("discord token stale")
	// ErrRateLimited means Discord answered 429; do not retry immediately.
	ErrRateLimited = errors.New("discord rate limited")
)

type Client struct {
	clientID     string
	clientSecret string
	redirectURI  string
	guildID      string
	client       *http.Client
	apiBase      string
	oauthBase    string
}

func NewClient() (*Client, error) {
	id := os.Getenv("DISCORD_CLIENT_ID")
	secret := os.Getenv("DISCORD_CLIENT_SECRET")
	redirect := os.Getenv("DISCORD_REDIRECT_URI")
	guild := os.Getenv("DISCORD_GUILD_ID")
	if id == "" || secret == "" || redirect == "" || guild == "" {
		return nil, errors.New("DISCORD_CLIENT_ID, DISCORD_CLIENT_SECRET, DISCORD_REDIRECT_URI and DISCORD_GUILD_ID must be set")
	}

	return &Client{
		clientID:     id,
		clientSecret: secret,
		redirectURI:  redirect,
		guildID:      guild,
		client:       &http.Client{Timeout: 5 * time.Second},
		apiBase:      "https://discord.com/api/v10",
		oauthBase:    "https://discord.com/api/oauth2",
	}, nil
}

// AuthURL builds the provider redirect for the identify+guilds scopes.
func (c *Client) AuthURL(state string) string {
	q := url.Values{}
	q.Set("client_id", c.clientID)
	q.Set("redirect_uri", c.redirectURI)
	q.Set("response_type", "code")
	q.Set("scope", "identify guilds guilds.members.read")
	q.Set("state", state)
	return c.oauthBase + "/authorize?" + q.Encode()
}

type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

// ExchangeCode trades the OAuth callback code for an access token.
func (c *Client) ExchangeCode(ctx context.Context, code string) (*Token, error) {
	form := url.Values{}
	form.Set("client_id", c.clientID)
	form.Set("client_secret", c.clientSecret)
	form.Set("grant_type", "authorization_code")
	form.Set("code", code)
	form.Set("redirect_uri", c.redirectURI)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.oauthBase+"/token",
		strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("discord token exchange failed: %s", resp.Status)
	}

	var t Token
	if err := json.NewDecoder(resp.Body).Decode(&t); err != nil {
		return nil, err
	}
	return &t, nil
}

type User struct {
	ID       string  `json:"id"`
	Username string  `json:"username"`
	Avatar   *string `json:"avatar"`
}

// FetchUser returns the identity behind an access token.
func (c *Client) FetchUser(ctx context.Context, accessToken string) (*User, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiBase+"/users/@me", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized:
		return nil, ErrTokenStale
	case http.StatusTooManyRequests:
		return nil, ErrRateLimited
	default:
		return nil, fmt.Errorf("discord user fetch failed: %s", resp.Status)
	}

	var u User
	if err := json.NewDecoder(resp.Body).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// IsGuildMember checks the membership gate with the user's own token.
// 404 is a definite "not a member"; 401 and 429 surface as their
// sentinels so callers can force re-auth or back off.
func (c *Client) IsGuildMember(ctx context.Context, accessToken string) (bool, error) {
	u := fmt.Sprintf("%s/users/@me/guilds/%s/member", c.apiBase, c.guildID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return false, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.client.Do(req)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		return true, nil
	case http.StatusNotFound:
		return false, nil
	case http.StatusUnauthorized:
		return false, ErrTokenStale
	case http.StatusTooManyRequests:
		return false, ErrRateLimited
	default:
		return false, fmt.Errorf("discord membership check failed: %s", resp.Status)
	}
}
