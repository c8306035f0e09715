// models/common_models.go
package models

// ErrorResponse is the body of every non-200 response.
type ErrorResponse struct {
	Error string `json:"error" example:"Domain parameter is required"`
}

// HealthResponse is returned by the health endpoint.
type HealthResponse struct {
	Status  string `json:"status" example:"UP"`
	Version string `json:"version" example:"1.0.0"`
	Uptime  string `json:"uptime" example:"3h2m10s"`
}
