package session

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"
)

const (
	loginPath           = "/Orion/Login.aspx"
	defaultLoginTimeout = 30 * time.Second
)

// Session is an authenticated web-console session. The cookie jar inside its
// HTTP client carries the server session cookie; the session is established
// once and reused read-only for every alert lookup.
type Session struct {
	base   *url.URL
	client *http.Client
}

// Establish logs in to the web console at baseURL (e.g. http://orion.example.com)
// with the given credentials and returns a Session whose client presents the
// resulting cookies on every request.
func Establish(ctx context.Context, baseURL, username, password string, insecureSkipVerify bool) (*Session, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("session: parse base url: %w", err)
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("session: create cookie jar: %w", err)
	}
	client := &http.Client{
		Jar: jar,
		Transport: &http.Transport{
			TLSClientConfig: &tls.Config{
				InsecureSkipVerify: insecureSkipVerify, //nolint:gosec // user-configured
			},
		},
		Timeout: defaultLoginTimeout,
	}

	form := url.Values{
		"Username": {username},
		"Password": {password},
	}
	loginURL := u.JoinPath(loginPath)
	loginURL.RawQuery = "autologin=true"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, loginURL.String(), strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("session: build login request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("session: login: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, fmt.Errorf("session: login: unexpected status %d", resp.StatusCode)
	}
	if len(jar.Cookies(u)) == 0 {
		return nil, fmt.Errorf("session: login did not yield a session cookie")
	}

	return &Session{base: u, client: client}, nil
}

// BaseURL returns the web console base URL the session was established against.
func (s *Session) BaseURL() *url.URL {
	return s.base
}

// Client returns the HTTP client carrying the session cookie.
func (s *Session) Client() *http.Client {
	return s.client
}
