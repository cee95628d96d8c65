// Package cookie provides a small cookie manager with secure-by-default
// attributes (path "/", HttpOnly, SameSite=Lax).
//
// Tamper resistance of the session cookie is provided by the token it
// carries, not by the cookie layer; the manager is only responsible for
// transport attributes (HttpOnly, Secure, Max-Age, Path).
package cookie
