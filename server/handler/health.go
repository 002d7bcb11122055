package handler

import "net/http"

type healthBody struct {
	Status      string         `json:"status"`
	Activations map[string]int `json:"activations,omitempty"`
}

// NewHealthHandler reports liveness plus the number of live actor
// activations per kind when activations is not nil.
func NewHealthHandler(activations func() map[string]int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body := healthBody{Status: "ok"}
		if activations != nil {
			body.Activations = activations()
		}
		writeJSON(r.Context(), w, http.StatusOK, body)
	}
}
