package dto

// DataResponse wraps a payload in the {data: ...} envelope.
type DataResponse struct {
	Data any `json:"data"`
}

// StatusResponse is the {success, data?, message?} envelope used by the
// sponsorship and pickup endpoints.
type StatusResponse struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}
