package client

import "context"

// RegisterRequest represents a registration request
type RegisterRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

// AuthResponse represents a login or registration response
type AuthResponse struct {
	User         *User  `json:"user"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// Login authenticates with email and password
func (c *Client) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	req := map[string]string{
		"email":    email,
		"password": password,
	}

	var resp AuthResponse
	if _, err := c.doRequest(ctx, "POST", "/api/auth/login", req, &resp); err != nil {
		return nil, err
	}

	// Automatically set the token for future requests
	if resp.AccessToken != "" {
		c.SetToken(resp.AccessToken)
	}

	return &resp, nil
}

// Register creates a new user account and logs in
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	var resp AuthResponse
	if _, err := c.doRequest(ctx, "POST", "/api/auth/register", req, &resp); err != nil {
		return nil, err
	}

	if resp.AccessToken != "" {
		c.SetToken(resp.AccessToken)
	}

	return &resp, nil
}

// Refresh exchanges a refresh token for a new access token and uses it
func (c *Client) Refresh(ctx context.Context, refreshToken string) (string, error) {
	var resp struct {
		AccessToken string `json:"accessToken"`
	}
	req := map[string]string{"refreshToken": refreshToken}
	if _, err := c.doRequest(ctx, "POST", "/api/auth/refresh", req, &resp); err != nil {
		return "", err
	}

	c.SetToken(resp.AccessToken)
	return resp.AccessToken, nil
}

// Me returns the current user
func (c *Client) Me(ctx context.Context) (*User, error) {
	var u User
	if _, err := c.doRequest(ctx, "GET", "/api/auth/me", nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// Logout ends the session and forgets the token
func (c *Client) Logout(ctx context.Context) error {
	if _, err := c.doRequest(ctx, "POST", "/api/auth/logout", nil, nil); err != nil {
		return err
	}
	c.SetToken("")
	return nil
}
