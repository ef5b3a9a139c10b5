package rest

// ErrorResponse is the JSON body returned for client-visible errors.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
