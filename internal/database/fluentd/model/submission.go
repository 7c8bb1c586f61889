package model

// SubmissionLog 每次健康檢查提交 (成功或被拒) 都送一筆
type SubmissionLog struct {
	RequestID        string `json:"request_id,omitempty"`
	ProjectName      string `json:"project_name,omitempty"`
	SessionID        string `json:"session_id,omitempty"`
	UserID           string `json:"user_id"`
	TeamID           string `json:"team_id"`
	Date             string `json:"date"`
	AssessmentPeriod string `json:"assessment_period,omitempty"`
	Responses        int    `json:"responses"`
	Result           string `json:"result"`
	Error            string `json:"error,omitempty"`
	Version          string `json:"version"`
	LoggedAt         string `json:"logged_at"`
}
