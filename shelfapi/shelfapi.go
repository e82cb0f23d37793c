// Package shelfapi is a client for the shelf collection-tracker REST API:
// the game catalog, per-user favorites, and user-defined collections with
// per-game metadata (status, rating, notes, play time, completion date).
package shelfapi

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/itchio/httpkit/timeout"
)

// RequestTimeout bounds every API call, transfer included. A request
// that blows through it surfaces as CodeNetworkError.
const RequestTimeout = 10 * time.Second

// A Client allows consuming the shelf API.
type Client struct {
	// Token is the bearer credential for the current session. Leave
	// empty for unauthenticated calls (catalog browsing, login).
	Token string

	HTTPClient *http.Client
	BaseURL    string
	UserAgent  string

	// RetryPatterns is the sleep schedule used when the server answers
	// 429; once exhausted, the last response is surfaced as-is.
	RetryPatterns []time.Duration
}

func defaultRetryPatterns() []time.Duration {
	return []time.Duration{
		1 * time.Second,
		2 * time.Second,
		4 * time.Second,
	}
}

// ClientWithToken creates a new shelf API client with a given bearer token.
func ClientWithToken(token string) *Client {
	httpClient := timeout.NewDefaultClient()
	httpClient.Timeout = RequestTimeout

	c := &Client{
		Token:         token,
		HTTPClient:    httpClient,
		RetryPatterns: defaultRetryPatterns(),
		UserAgent:     "shelf",
	}
	c.SetServer("https://api.gameshelf.example")
	return c
}

// SetServer allows changing the server to which we're making API
// requests.
func (c *Client) SetServer(address string) *Client {
	c.BaseURL = fmt.Sprintf("%s/api", strings.TrimRight(address, "/"))
	return c
}

// MakePath crafts an API url from our configured base URL.
func (c *Client) MakePath(format string, a ...interface{}) string {
	return c.MakeValuesPath(nil, format, a...)
}

// MakeValuesPath crafts an API url from our configured base URL, with
// an optional query string.
func (c *Client) MakeValuesPath(values url.Values, format string, a ...interface{}) string {
	base := strings.Trim(c.BaseURL, "/")
	subPath := strings.Trim(fmt.Sprintf(format, a...), "/")
	path := fmt.Sprintf("%s/%s", base, subPath)
	if len(values) == 0 {
		return path
	}
	return fmt.Sprintf("%s?%s", path, values.Encode())
}
