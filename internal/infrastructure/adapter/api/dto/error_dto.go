package dto

// ErrorResponse represents a standardized error response for the API
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// HealthResponse reports whether the ledger can be read
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service,omitempty"`
}
