package response

type ErrorResponse struct {
	Status  string `json:"status,omitempty"`
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

type MessageResponse struct {
	Message string `json:"message"`
	ID      string `json:"id,omitempty"`
}

type OKResponse struct {
	OK bool `json:"ok"`
}
