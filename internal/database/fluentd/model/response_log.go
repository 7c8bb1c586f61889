package model

// ResponseLog 以 request_id 與 RequestLog 對應
type ResponseLog struct {
	RequestID   string  `json:"request_id"`
	ProjectName string  `json:"project_name,omitempty"`
	Route       string  `json:"route,omitempty"`
	UserID      string  `json:"user_id,omitempty"`
	Code        int     `json:"code"`
	StatusCode  int     `json:"status_code"`
	DurationMs  float64 `json:"duration_ms"`
	Body        string  `json:"body,omitempty"`
	Error       string  `json:"error,omitempty"`
	Version     string  `json:"version,omitempty"`
	ResponseTS  string  `json:"response_ts"`
	LoggedAt    string  `json:"logged_at"`
}
