package swis

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const (
	queryPath           = "/SolarWinds/InformationService/v3/Json/Query"
	defaultQueryTimeout = 60 * time.Second
)

// Element is one monitorable entity discovered from the query service: a
// node, an interface or a storage volume. All three discovery queries return
// this uniform column shape; the sub-element fields are empty strings when
// the element is a bare node.
type Element struct {
	NodeID       int    `json:"NodeID"`
	Caption      string `json:"Caption"`
	IPAddress    string `json:"IPAddress"`
	Vendor       string `json:"Vendor"`
	URI          string `json:"Uri"`
	InstanceType string `json:"InstanceType"`

	SubElementID              string `json:"SubElementID"`
	SubElementName            string `json:"SubElementName"`
	SubElementType            string `json:"SubElementType"`
	SubElementTypeDescription string `json:"SubElementTypeDescription"`
}

// Client queries the SWIS JSON endpoint with basic auth.
// The HTTP client is built once and reused across queries.
type Client struct {
	base   *url.URL
	client *http.Client
}

// NewClient creates a Client for the SWIS endpoint at baseURL
// (e.g. https://orion.example.com:17778).
func NewClient(baseURL, username, password string, insecureSkipVerify bool) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("swis: parse base url: %w", err)
	}
	transport := &basicAuthRoundTripper{
		base: &http.Transport{
			TLSClientConfig: &tls.Config{
				InsecureSkipVerify: insecureSkipVerify, //nolint:gosec // user-configured
			},
		},
		username: username,
		password: password,
	}
	return &Client{
		base: u,
		client: &http.Client{
			Transport: transport,
			Timeout:   defaultQueryTimeout,
		},
	}, nil
}

// basicAuthRoundTripper injects basic-auth credentials into every outgoing request.
type basicAuthRoundTripper struct {
	base     http.RoundTripper
	username string
	password string
}

func (t *basicAuthRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.SetBasicAuth(t.username, t.password)
	return t.base.RoundTrip(req)
}

// queryRequest is the SWIS query envelope.
type queryRequest struct {
	Query      string            `json:"query"`
	Parameters map[string]string `json:"parameters"`
}

// queryResponse wraps the row list SWIS returns.
type queryResponse struct {
	Results []Element `json:"results"`
}

// Query runs one SWQL query and returns the result rows in server order.
// Any transport, HTTP or decode failure is returned as an error; callers
// treat discovery failures as fatal to the run.
func (c *Client) Query(ctx context.Context, swql string) ([]Element, error) {
	body, err := json.Marshal(queryRequest{Query: swql, Parameters: map[string]string{}})
	if err != nil {
		return nil, fmt.Errorf("swis: encode query: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base.JoinPath(queryPath).String(), bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("swis: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("swis: query: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("swis: query: unexpected status %d", resp.StatusCode)
	}

	var out queryResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("swis: decode response: %w", err)
	}
	return out.Results, nil
}

// Nodes returns one Element per monitored node, sub-element fields blank.
// limit caps the result size; 0 means unlimited.
func (c *Client) Nodes(ctx context.Context, limit int) ([]Element, error) {
	return c.Query(ctx, withLimit(nodesQuery, limit))
}

// Interfaces returns one Element per monitored interface, joined to its
// owning node.
func (c *Client) Interfaces(ctx context.Context, limit int) ([]Element, error) {
	return c.Query(ctx, withLimit(interfacesQuery, limit))
}

// Volumes returns one Element per monitored storage volume, joined to its
// owning node.
func (c *Client) Volumes(ctx context.Context, limit int) ([]Element, error) {
	return c.Query(ctx, withLimit(volumesQuery, limit))
}
