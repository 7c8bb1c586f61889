package core

const (
	ContextTraceKey        = "telemetry_trace_ctx"
	ContextRequestStartKey = "request_start"
)

// ==== 型別安全 span name ====
// 專案全域建議都寫這裡，方便集中管理
type TraceSpanName string

const (
	SpanHttpRequest        TraceSpanName = "http_request"
	SpanLoggerMiddleware   TraceSpanName = "logger_middleware"
	SpanRecoveryMiddleware TraceSpanName = "recovery_middleware"
	SpanCorsMiddleware     TraceSpanName = "cors_middleware"
	SpanResponseMiddleware TraceSpanName = "response_middleware"
	SpanAuthMiddleware     TraceSpanName = "auth_middleware"
	SpanQuotaMiddleware    TraceSpanName = "submission_quota_middleware"
	SpanUserMiddleware     TraceSpanName = "user_middleware"
	SpanSnapshotLoad       TraceSpanName = "snapshot_load"
	SpanOrgTreeBuild       TraceSpanName = "orgtree_build"
	SpanCronAdvance        TraceSpanName = "cron_advance_check_dates"
)

// 指標名稱常數
type MetricName string

const (
	MetricHttpRequestsTotal    MetricName = "requests_total"
	MetricHttpRequestDuration  MetricName = "request_duration_seconds"
	MetricResponseSuccessTotal MetricName = "response_success_total"
	MetricResponseFailTotal    MetricName = "response_fail_total"
	MetricCacheLookupTotal     MetricName = "cache_lookup_total"
	MetricOrgTreeBuildSeconds  MetricName = "orgtree_build_seconds"
	MetricSubmissionsTotal     MetricName = "submissions_total"
)

// label name 常數
type MetricLabelName string

const (
	MetricLabelEndpoint MetricLabelName = "endpoint"
	MetricLabelStatus   MetricLabelName = "status"
	MetricLabelReason   MetricLabelName = "reason"
	MetricLabelResult   MetricLabelName = "result"
)

type LoggerRequestMeta struct {
	Method     string            `trace:"request.method"`
	Path       string            `trace:"request.path"`
	FullPath   string            `trace:"request.full_path"`
	Query      string            `trace:"request.query"`
	Body       string            `trace:"request.body"`
	Scheme     string            `trace:"http.scheme"`
	Host       string            `trace:"http.host"`
	UserAgent  string            `trace:"http.user_agent"`
	ContentLen int64             `trace:"http.request_content_length"`
	Proto      string            `trace:"http.flavor"`
	ClientIP   string            `trace:"net.peer.ip"`
	Headers    map[string]string `trace:"http.request.header"`
	Params     map[string]string `trace:"http.request.param"`
}

type TraceAuthMiddlewareMeta struct {
	Where    string `trace:"auth.where"`
	ClientIP string `trace:"net.peer.ip,omitempty"`
	UserID   string `trace:"auth.user_id,omitempty"`
	Status   string `trace:"auth.status,omitempty"`
}

type TraceUserMiddlewareMeta struct {
	UserID  string `trace:"auth.user_id,omitempty"`
	LevelID string `trace:"user.level_id,omitempty"`
	IsAdmin bool   `trace:"user.is_admin"`
	Status  string `trace:"auth.status,omitempty"`
}

// 供 Redis 提交次數 Consume / Get / Reset 使用
type TraceSubmissionQuotaMeta struct {
	UserID    string `trace:"quota.user_id"`
	Day       string `trace:"quota.day"`
	Limit     int    `trace:"quota.limit_count"`
	WindowSec int64  `trace:"quota.window_sec"`
	Remaining int    `trace:"quota.remaining,omitempty"`
	TTL       int64  `trace:"quota.ttl_sec,omitempty"`
	Op        string `trace:"quota.op"` // "consume" / "reset" / "get" / "delete"
}

type TraceSnapshotMeta struct {
	Driver     string `trace:"snapshot.driver"`
	CacheHit   bool   `trace:"snapshot.cache_hit"`
	Levels     int    `trace:"snapshot.levels"`
	Users      int    `trace:"snapshot.users"`
	Teams      int    `trace:"snapshot.teams"`
	Dimensions int    `trace:"snapshot.dimensions"`
}

type TraceOrgTreeMeta struct {
	ViewerID     string  `trace:"orgtree.viewer_id"`
	RootUserID   string  `trace:"orgtree.root_user_id"`
	Sessions     int     `trace:"orgtree.sessions"`
	TotalTeams   int     `trace:"orgtree.total_teams,omitempty"`
	TotalMembers int     `trace:"orgtree.total_members,omitempty"`
	DurationMs   float64 `trace:"orgtree.duration_ms"`
}

type TraceSubmissionMeta struct {
	UserID           string `trace:"session.user_id"`
	TeamID           string `trace:"session.team_id"`
	Date             string `trace:"session.date"`
	AssessmentPeriod string `trace:"session.assessment_period"`
	Responses        int    `trace:"session.responses"`
	SessionID        string `trace:"session.id,omitempty"`
}

type TraceAdminListMeta struct {
	Resource    string         `trace:"list.resource"`
	Page        int64          `trace:"list.page"`
	Size        int64          `trace:"list.size"`
	Filter      map[string]any `trace:"filter,omitempty"`
	ResultCount int            `trace:"result.count,omitempty"`
}

type TracePanicMeta struct {
	Path       string  `trace:"http.path"`
	Method     string  `trace:"http.method"`
	ClientIP   string  `trace:"net.peer.ip"`
	UserAgent  string  `trace:"http.user_agent"`
	DurationMs float64 `trace:"response.latency_ms"`
	Status     int     `trace:"http.status_code"`
	Message    string  `trace:"error.message"`
	Stack      string  `trace:"error.stack"`
}

type TraceErrorMeta struct {
	Code       int     `trace:"error.code"`
	Message    string  `trace:"error.message"`
	Detail     string  `trace:"error.detail"`
	Status     int     `trace:"http.status_code"`
	DurationMs float64 `trace:"response.latency_ms"`
}

type TraceResponseMeta struct {
	Path       string  `trace:"http.path"`
	Method     string  `trace:"http.method"`
	Status     int     `trace:"http.status_code"`
	Message    string  `trace:"response.message"`
	Code       int     `trace:"response.code"`
	DurationMs float64 `trace:"response.latency_ms"`
	Data       string  `trace:"response.data_preview"`
}
type TraceHttpServerMeta struct {
	// request side
	ClientAddr        string `trace:"client.address"`
	HttpRequestMethod string `trace:"http.request.method"`
	HttpRoute         string `trace:"http.route"`
	UrlPath           string `trace:"http.request.path"`
	UrlScheme         string `trace:"http.request.url.scheme"`
	UserAgent         string `trace:"user_agent.original"`
	ServerAddress     string `trace:"server.address"`
	NetworkPeerAddr   string `trace:"network.peer.address"`
	NetworkPeerPort   int    `trace:"network.peer.port"`
	NetworkProtoVer   string `trace:"network.protocol.version"`
	SpanTraceID       string `trace:"span.trace_id"`
	HttpStatusCode    int    `trace:"http.response.status_code,omitempty"`
	EndUserID         string `trace:"enduser.id,omitempty"`
	EndUserLevel      string `trace:"enduser.role,omitempty"`
}

type TraceProxyMeta struct {
	Method     string `trace:"proxy.method"`
	Target     string `trace:"proxy.target"`
	StatusCode int    `trace:"proxy.status_code,omitempty"`
	BodyBytes  int    `trace:"proxy.body_bytes,omitempty"`
}
