package client

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"squadhealth/config"

	"github.com/bytedance/sonic"
	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// BackendError 後端回傳非 2xx
type BackendError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("backend %s %s: status %d: %s", e.Method, e.Path, e.StatusCode, e.Body)
}

// BackendClient 外部 REST 後端 (健康檢查資料來源)
type BackendClient struct {
	httpClient *resty.Client
	baseURL    string
	logger     *zap.Logger
}

func NewBackendClient(logger *zap.Logger, conf *config.Configuration) *BackendClient {
	timeout := 10 * time.Second
	if conf.Backend.Timeout > 0 {
		timeout = time.Duration(conf.Backend.Timeout) * time.Second
	}
	retryWait := time.Second
	if conf.Backend.RetryWaitTime > 0 {
		retryWait = time.Duration(conf.Backend.RetryWaitTime) * time.Second
	}
	httpClient := resty.New().
		SetBaseURL(strings.TrimRight(conf.Backend.BaseURL, "/")).
		SetTimeout(timeout).
		SetRetryCount(conf.Backend.RetryCount).
		SetRetryWaitTime(retryWait).
		SetRetryMaxWaitTime(5*retryWait).
		SetJSONMarshaler(sonic.Marshal).
		SetJSONUnmarshaler(sonic.Unmarshal).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")
	if conf.Backend.Token != "" {
		httpClient.SetAuthToken(conf.Backend.Token)
	}
	// 只重試連線錯誤與 5xx，4xx 直接回傳
	httpClient.AddRetryCondition(func(resp *resty.Response, err error) bool {
		return err != nil || resp.StatusCode() >= http.StatusInternalServerError
	})

	return &BackendClient{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(conf.Backend.BaseURL, "/"),
		logger:     logger,
	}
}

func (c *BackendClient) BaseURL() string {
	return c.baseURL
}

// Get GET path 並把回應解碼到 result
func (c *BackendClient) Get(ctx context.Context, path string, query map[string]string, result any) error {
	request := c.httpClient.R().SetContext(ctx).SetResult(result)
	for k, v := range query {
		if v != "" {
			request.SetQueryParam(k, v)
		}
	}
	resp, err := request.Get(path)
	return c.check(http.MethodGet, path, resp, err)
}

// Post POST body 到 path，result 可為 nil
func (c *BackendClient) Post(ctx context.Context, path string, body any, result any) error {
	request := c.httpClient.R().SetContext(ctx).SetBody(body)
	if result != nil {
		request.SetResult(result)
	}
	resp, err := request.Post(path)
	return c.check(http.MethodPost, path, resp, err)
}

func (c *BackendClient) check(method, path string, resp *resty.Response, err error) error {
	if err != nil {
		c.logger.Error("backend request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err),
		)
		return fmt.Errorf("backend %s %s: %w", method, path, err)
	}
	if resp.IsError() {
		body := resp.String()
		if len(body) > 512 {
			body = body[:512]
		}
		c.logger.Warn("backend returned error",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status_code", resp.StatusCode()),
		)
		return &BackendError{Method: method, Path: path, StatusCode: resp.StatusCode(), Body: body}
	}
	return nil
}
