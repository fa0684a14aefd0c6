package alertapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/alertscope/alertscope/internal/swis"
)

const getAlertsPath = "/api/AllAlertThisObjectCanTrigger/GetAlerts"

// Client calls the alert-discovery endpoint once per element. The HTTP
// client is expected to carry an authenticated web session cookie; the
// client never modifies it.
type Client struct {
	base     *url.URL
	client   *http.Client
	pageSize int
}

// NewClient creates a Client for the web API rooted at base, using the
// session-carrying httpClient. pageSize is sent on every request; only the
// first page is ever fetched, so it also caps the alerts seen per element.
func NewClient(base *url.URL, httpClient *http.Client, pageSize int) *Client {
	return &Client{base: base, client: httpClient, pageSize: pageSize}
}

// getAlertsRequest mirrors the endpoint's JSON body key for key. Paging
// fields are fixed: the first page only, no ordering, no limitations.
type getAlertsRequest struct {
	EntityName                string `json:"EntityName"`
	TriggeringObjectEntityURI string `json:"TriggeringObjectEntityUri"`
	CurrentPageIndex          int    `json:"CurrentPageIndex"`
	PageSize                  int    `json:"PageSize"`
	OrderByClause             string `json:"OrderByClause"`
	LimitationIDs             []int  `json:"LimitationIds"`
}

type getAlertsResponse struct {
	TotalRows int        `json:"TotalRows"`
	DataTable *dataTable `json:"DataTable"`
}

type dataTable struct {
	Columns []string `json:"Columns"`
	Rows    [][]any  `json:"Rows"`
}

// Result is the set of candidate alerts returned for one element. The
// column set is dynamic (the endpoint may return different custom fields
// per call), so values are addressed positionally against Columns.
type Result struct {
	TotalRows int
	Columns   []string
	Rows      [][]any
}

// Empty reports whether the lookup found no candidate alerts. This is a
// normal outcome, not an error; most elements have zero to a handful.
func (r Result) Empty() bool {
	return r.TotalRows == 0
}

// CandidatesFor asks the endpoint which alerts could trigger against el.
// Errors are per-element: callers log them with the element URI and move on
// to the next element rather than aborting the run.
func (c *Client) CandidatesFor(ctx context.Context, el swis.Element) (Result, error) {
	body, err := json.Marshal(getAlertsRequest{
		EntityName:                el.InstanceType,
		TriggeringObjectEntityURI: el.URI,
		CurrentPageIndex:          0,
		PageSize:                  c.pageSize,
		OrderByClause:             "",
		LimitationIDs:             []int{},
	})
	if err != nil {
		return Result{}, fmt.Errorf("alertapi: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base.JoinPath(getAlertsPath).String(), bytes.NewReader(body))
	if err != nil {
		return Result{}, fmt.Errorf("alertapi: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("alertapi: get alerts: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Result{}, fmt.Errorf("alertapi: get alerts: unexpected status %d", resp.StatusCode)
	}

	var out getAlertsResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return Result{}, fmt.Errorf("alertapi: decode response: %w", err)
	}

	if out.TotalRows == 0 {
		return Result{}, nil
	}
	if out.DataTable == nil {
		return Result{}, fmt.Errorf("alertapi: %d rows reported but no data table", out.TotalRows)
	}
	return Result{
		TotalRows: out.TotalRows,
		Columns:   out.DataTable.Columns,
		Rows:      out.DataTable.Rows,
	}, nil
}
