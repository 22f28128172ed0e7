package upstream

import (
	"context"
	"net/http"
	"net/url"
	"strings"
)

// Login exchanges credentials for a bearer token. The backend speaks the
// OAuth2 password-grant form convention: the email goes in as "username".
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	form := url.Values{}
	form.Set("username", email)
	form.Set("password", password)

	var result LoginResult
	err := c.do(ctx, "login", http.MethodPost, "/auth/login", "",
		"application/x-www-form-urlencoded", strings.NewReader(form.Encode()), &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// Signup creates an account. The response carries no token; callers follow
// up with Login to obtain a session.
func (c *Client) Signup(ctx context.Context, name, email, password string) (*User, error) {
	payload := map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
	}
	var user User
	if err := c.sendJSON(ctx, "signup", http.MethodPost, "/auth/signup", "", payload, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Me validates a token against the backend and returns the user behind it.
func (c *Client) Me(ctx context.Context, token string) (*User, error) {
	var user User
	if err := c.getJSON(ctx, "whoami", "/auth/me", token, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
