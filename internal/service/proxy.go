package service

import (
	"context"
	"io"
	"net/http"
	"strings"

	"squadhealth/config"
	"squadhealth/internal/core"
	cErr "squadhealth/internal/pkg/error"
	"squadhealth/internal/telemetry"
)

type ForwardParams struct {
	Method   string      // GET/POST/PUT/DELETE...
	Path     string      // 後端相對路徑（可含或不含前導 /）
	RawQuery string      // 原始 query string（不含 ?）
	Header   http.Header // 來自上游請求的 header（會做 hop-by-hop 過濾）
	Body     io.Reader   // 請求 body（可直接塞 c.Request.Body）
	UserID   string      // 目前登入者，帶給後端做稽核
}

// ProxyService 把 /api/v1/backend/* 原樣轉給外部後端
type ProxyService struct {
	httpClient *http.Client
	trace      *telemetry.Trace
	baseURL    string
	token      string
}

func NewProxyService(trace *telemetry.Trace, client *http.Client, conf *config.Configuration) *ProxyService {
	// client 建議在 DI 時就統一設好 Transport／Timeout
	return &ProxyService{
		httpClient: client,
		trace:      trace,
		baseURL:    strings.TrimRight(conf.Backend.BaseURL, "/"),
		token:      conf.Backend.Token,
	}
}

func (service *ProxyService) Forward(ctx context.Context, req ForwardParams) (_ *http.Response, returnedError error) {
	ctx, span, end := service.trace.WithSpan(ctx, "backend.forward")
	defer func() { end(returnedError) }()

	if service.baseURL == "" {
		return nil, cErr.ServiceUnavailable("backend is not configured")
	}

	// 組合目標 URL
	target := service.baseURL + "/" + strings.TrimLeft(req.Path, "/")
	if req.RawQuery != "" {
		target = target + "?" + req.RawQuery
	}
	meta := core.TraceProxyMeta{Method: req.Method, Target: target}

	request, err := http.NewRequestWithContext(ctx, req.Method, target, req.Body)
	if err != nil {
		return nil, cErr.InternalServer("create backend request failed")
	}

	// 1) 複製上游 header（去除 hop-by-hop 與由我們管理的授權）
	copySafeHeaders(req.Header, request.Header)

	// 2) 改用服務本身的後端 token
	if service.token != "" {
		request.Header.Set("Authorization", "Bearer "+service.token)
	}
	if req.UserID != "" {
		request.Header.Set("X-Forwarded-User", req.UserID)
	}

	// 預設補上 Accept
	if request.Header.Get("Accept") == "" {
		request.Header.Set("Accept", "application/json")
	}

	resp, err := service.httpClient.Do(request)
	if err != nil {
		service.trace.ApplyTraceAttributes(span, meta)
		if ctx.Err() != nil {
			return nil, cErr.GatewayTimeout("backend request timed out")
		}
		return nil, cErr.ExternalRequestError("backend request failed")
	}

	meta.StatusCode = resp.StatusCode
	service.trace.ApplyTraceAttributes(span, meta)
	return resp, nil
}

// ---- helpers ----

var hopByHopHeaders = map[string]struct{}{
	"Connection":          {},
	"Proxy-Connection":    {},
	"Keep-Alive":          {},
	"Proxy-Authenticate":  {},
	"Proxy-Authorization": {},
	"Te":                  {},
	"Trailer":             {},
	"Transfer-Encoding":   {},
	"Upgrade":             {},
}

func copySafeHeaders(src http.Header, dst http.Header) {
	// 先複製
	for k, vv := range src {
		if _, banned := hopByHopHeaders[http.CanonicalHeaderKey(k)]; banned {
			continue
		}
		// 來自上游的 Authorization 不往下游傳（使用者的 JWT 不外流到後端）
		if strings.EqualFold(k, "Authorization") {
			continue
		}
		for _, v := range vv {
			dst.Add(k, v)
		}
	}
	// RFC7230: 若 Connection 有列出其他 header，也必須移除
	if cval := src.Get("Connection"); cval != "" {
		tokens := strings.Split(cval, ",")
		for _, t := range tokens {
			if h := http.CanonicalHeaderKey(strings.TrimSpace(t)); h != "" {
				dst.Del(h)
			}
		}
	}
}
