package model

// GenerateResponse represents response for POST /eth/generate
type GenerateResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Network string `json:"network,omitempty"`
	Address string `json:"address,omitempty"`
}
