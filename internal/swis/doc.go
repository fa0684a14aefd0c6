// Package swis is the client for the monitoring platform's SWIS JSON query
// endpoint. It runs the three fixed element-discovery queries (nodes,
// interfaces, volumes) and returns uniform Element rows.
//
// Authentication is HTTP basic auth, injected by a RoundTripper so every
// query reuses one pre-configured *http.Client. Query failures are returned
// to the caller; element discovery is a prerequisite for the whole run, so
// callers abort on error rather than continue with a partial element set.
package swis
