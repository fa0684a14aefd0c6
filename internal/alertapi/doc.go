// Package alertapi is the client for the per-element alert-discovery
// endpoint (POST /api/AllAlertThisObjectCanTrigger/GetAlerts). One request
// is made per element, always for page 0; a TotalRows of zero is a normal
// "no candidate alerts" outcome. The response's column set is dynamic, so
// Result carries the column names alongside a row-major value matrix.
package alertapi
