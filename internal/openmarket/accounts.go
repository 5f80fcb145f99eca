// internal/openmarket/accounts.go
package openmarket

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/hodu/storefront/internal/models"
)

type LoginRequest struct {
	Username  string           `json:"username"`
	Password  string           `json:"password"`
	LoginType models.LoginType `json:"login_type"`
}

type LoginResponse struct {
	Access  string          `json:"access"`
	Refresh string          `json:"refresh"`
	User    json.RawMessage `json:"user"`
}

type SignupRequest struct {
	Username    string `json:"username"`
	Password    string `json:"password"`
	Name        string `json:"name"`
	PhoneNumber string `json:"phone_number"`
}

func (c *Client) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	var resp LoginResponse
	if err := c.do(ctx, http.MethodPost, "accounts/login/", nil, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ValidateUsername asks whether username is still free. A rejection comes back as *APIError.
func (c *Client) ValidateUsername(ctx context.Context, username string) error {
	body := map[string]string{"username": username}
	return c.do(ctx, http.MethodPost, "accounts/signup/valid/username/", nil, body, nil)
}

func (c *Client) Signup(ctx context.Context, kind models.UserType, req SignupRequest) error {
	if !kind.Valid() {
		return fmt.Errorf("unknown account kind %q", kind)
	}
	path := "accounts/" + string(kind) + "/signup/"
	return c.do(ctx, http.MethodPost, path, nil, req, nil)
}
