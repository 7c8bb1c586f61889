package model

// RequestLog 進入 API 時送出，body 已遮蔽敏感欄位
type RequestLog struct {
	RequestID   string `json:"request_id"`
	ProjectName string `json:"project_name,omitempty"`
	Method      string `json:"method"`
	Path        string `json:"path"`
	// gin 路由樣板, 例如 /api/v1/teams/:teamID/summary
	Route     string `json:"route,omitempty"`
	Query     string `json:"query,omitempty"`
	Body      string `json:"body,omitempty"`
	IPHash    string `json:"ip_hash,omitempty"`
	UserAgent string `json:"user_agent,omitempty"`
	Version   string `json:"version,omitempty"`
	RequestTS string `json:"request_ts"`
	LoggedAt  string `json:"logged_at"`
}
