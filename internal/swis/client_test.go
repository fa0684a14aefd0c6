package swis

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// newTestClient points a Client at a httptest server.
func newTestClient(t *testing.T, srv *httptest.Server) *Client {
	t.Helper()
	c, err := NewClient(srv.URL, "reporter", "secret", false)
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	return c
}

func TestQuery_DecodesRows(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != queryPath {
			t.Errorf("path: got %q, want %q", r.URL.Path, queryPath)
		}
		if user, pass, ok := r.BasicAuth(); !ok || user != "reporter" || pass != "secret" {
			t.Errorf("basic auth: got %q/%q ok=%v", user, pass, ok)
		}
		var req queryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if !strings.Contains(req.Query, "FROM Orion.Nodes") {
			t.Errorf("query text: got %q", req.Query)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"results":[
			{"NodeID":1,"Caption":"core-sw1","IPAddress":"10.0.0.1","Vendor":"Cisco","Uri":"swis://host/Orion/Orion.Nodes/NodeID=1","InstanceType":"Orion.Nodes","SubElementID":"","SubElementName":"","SubElementType":"","SubElementTypeDescription":""},
			{"NodeID":2,"Caption":"edge-rtr1","IPAddress":"10.0.0.2","Vendor":"Juniper","Uri":"swis://host/Orion/Orion.Nodes/NodeID=2","InstanceType":"Orion.Nodes","SubElementID":"","SubElementName":"","SubElementType":"","SubElementTypeDescription":""}
		]}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv)
	els, err := c.Nodes(context.Background(), 0)
	if err != nil {
		t.Fatalf("Nodes() error = %v", err)
	}
	if len(els) != 2 {
		t.Fatalf("rows: got %d, want 2", len(els))
	}
	if els[0].NodeID != 1 || els[0].Caption != "core-sw1" {
		t.Errorf("first row: got %+v", els[0])
	}
	if els[0].SubElementType != "" {
		t.Errorf("node SubElementType: got %q, want empty", els[0].SubElementType)
	}
	if els[1].URI != "swis://host/Orion/Orion.Nodes/NodeID=2" {
		t.Errorf("second row uri: got %q", els[1].URI)
	}
}

func TestInterfaces_SubElementColumns(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req queryRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		if !strings.Contains(req.Query, "FROM Orion.NPM.Interfaces") {
			t.Errorf("query text: got %q", req.Query)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"results":[
			{"NodeID":1,"Caption":"core-sw1","IPAddress":"10.0.0.1","Vendor":"Cisco","Uri":"swis://host/Orion/Orion.Nodes/NodeID=1/Interfaces/InterfaceID=7","InstanceType":"Orion.NPM.Interfaces","SubElementID":"7","SubElementName":"GigabitEthernet0/1","SubElementType":"Interface","SubElementTypeDescription":"ethernetCsmacd"}
		]}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv)
	els, err := c.Interfaces(context.Background(), 0)
	if err != nil {
		t.Fatalf("Interfaces() error = %v", err)
	}
	if len(els) != 1 {
		t.Fatalf("rows: got %d, want 1", len(els))
	}
	el := els[0]
	if el.SubElementType != "Interface" {
		t.Errorf("SubElementType: got %q, want Interface", el.SubElementType)
	}
	if el.SubElementID != "7" || el.SubElementName != "GigabitEthernet0/1" {
		t.Errorf("sub-element identity: got %+v", el)
	}
}

func TestQuery_RowLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req queryRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		if !strings.HasPrefix(req.Query, "SELECT TOP 5 ") {
			t.Errorf("limited query: got %q", req.Query)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"results":[]}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv)
	if _, err := c.Volumes(context.Background(), 5); err != nil {
		t.Fatalf("Volumes() error = %v", err)
	}
}

func TestQuery_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := newTestClient(t, srv)
	if _, err := c.Nodes(context.Background(), 0); err == nil {
		t.Fatal("expected error on HTTP 500, got nil")
	}
}

func TestQuery_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"results": not-json`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv)
	if _, err := c.Nodes(context.Background(), 0); err == nil {
		t.Fatal("expected decode error, got nil")
	}
}

func TestWithLimit(t *testing.T) {
	if got := withLimit(nodesQuery, 0); got != nodesQuery {
		t.Errorf("limit 0 should leave query unchanged")
	}
	got := withLimit(nodesQuery, 10)
	if !strings.HasPrefix(got, "SELECT TOP 10 NodeID") {
		t.Errorf("withLimit(10): got %q", got[:40])
	}
	if strings.Count(got, "TOP 10") != 1 {
		t.Errorf("TOP inserted more than once: %q", got)
	}
}
