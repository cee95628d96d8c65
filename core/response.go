package core

import "net/http"

// Response renders itself to the HTTP response writer. Handlers return a
// Response instead of writing directly, keeping status/encoding decisions in
// one place.
type Response interface {
	Render(w http.ResponseWriter, r *http.Request) error
}
