// Package session establishes the authenticated web-console session used by
// the alert lookup API. Establish performs one form login and captures the
// session cookie in a jar; the returned *http.Client is then shared,
// unmodified, by every subsequent lookup call.
package session
