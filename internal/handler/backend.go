package handler

import (
	"bytes"
	"compress/gzip"
	"compress/zlib"
	"io"
	"net/http"
	"strings"

	"squadhealth/internal/middleware"
	cErr "squadhealth/internal/pkg/error"
	"squadhealth/internal/pkg/response"
	"squadhealth/internal/service"
	"squadhealth/internal/telemetry"

	"github.com/andybalholm/brotli"
	"github.com/bytedance/sonic"
	"github.com/gin-gonic/gin"
	"github.com/klauspost/compress/zstd"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

const backendPreviewRunes = 4000

type BackendHandler struct {
	trace        *telemetry.Trace
	logger       *zap.Logger
	proxyService *service.ProxyService
}

func NewBackendHandler(
	trace *telemetry.Trace,
	logger *zap.Logger,
	proxyService *service.ProxyService,
) *BackendHandler {
	return &BackendHandler{
		trace:        trace,
		logger:       logger,
		proxyService: proxyService,
	}
}

// Passthrough 透明轉傳到外部後端
// @Summary 後端透明轉傳
// @Description 將請求（method / path / query / headers / body）原樣轉給設定的後端 API，並把後端的狀態碼、標頭、內容原樣回傳。
// @Tags Backend
// @Accept */*
// @Produce application/json
// @Param action path string true "欲轉傳之相對路徑（例：/teams）"
// @Security BearerAuth
// @Success 200 {string} string "後端原始回應"
// @Failure 401 {object} response.Response "Unauthorized"
// @Failure 503 {object} response.Response "Backend not configured"
// @Failure 504 {object} response.Response "Gateway Timeout"
// @Router /api/v1/backend/{action} [get]
// @Router /api/v1/backend/{action} [post]
// @Router /api/v1/backend/{action} [put]
// @Router /api/v1/backend/{action} [patch]
// @Router /api/v1/backend/{action} [delete]
func (h *BackendHandler) Passthrough(c *gin.Context) {
	ctx, span, end := h.trace.WithSpan(c)
	defer end(nil)

	action := c.Param("action")
	if action == "" {
		action = "/"
	}
	span.SetAttributes(
		attribute.String("proxy.action", action),
		attribute.String("http.method", c.Request.Method),
	)

	fail := func(err error) {
		end(err)
		response.AbortWithError(c, err)
	}

	user, ok := middleware.CurrentUser(c)
	if !ok {
		fail(cErr.Unauthorized("missing user context"))
		return
	}

	resp, err := h.proxyService.Forward(ctx, service.ForwardParams{
		Method:   c.Request.Method,
		Path:     action,
		RawQuery: c.Request.URL.RawQuery,
		Header:   c.Request.Header,
		Body:     c.Request.Body,
		UserID:   user.ID,
	})
	if err != nil {
		fail(err)
		return
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		fail(cErr.ExternalResponseFormatError("read backend body failed"))
		return
	}

	response.Raw(c, bodyPreview(body, resp.Header))
	c.Writer.Header().Set("X-Proxy-Passthrough", "true")
	copyDownstreamHeaders(resp.Header, c.Writer.Header())
	c.Status(resp.StatusCode)

	if _, werr := c.Writer.Write(body); werr != nil {
		h.logger.Warn("write backend body failed", zap.Error(werr))
	}
}

// bodyPreview 解壓後若是 JSON 就回傳解析結果，否則回傳截斷的文字
func bodyPreview(raw []byte, header http.Header) any {
	decoded, err := decompressOnly(raw, header)
	if err != nil {
		return "(undecodable body)"
	}
	var anyJSON any
	if err := sonic.Unmarshal(decoded, &anyJSON); err == nil {
		return anyJSON
	}
	return safeTruncateRunes(string(decoded), backendPreviewRunes)
}

// 只負責解壓，不做更多處理；若 Content-Encoding 缺失則用 magic 猜測
func decompressOnly(raw []byte, h http.Header) ([]byte, error) {
	enc := strings.ToLower(strings.TrimSpace(h.Get("Content-Encoding")))
	switch enc {
	case "gzip":
		return gunzipBytes(raw)
	case "deflate":
		return inflateZlibBytes(raw)
	case "zstd":
		return zstdBytes(raw)
	case "br":
		return brotliBytes(raw)
	default:
		if isGzip(raw) {
			return gunzipBytes(raw)
		}
		if isZlib(raw) {
			return inflateZlibBytes(raw)
		}
		if isZstd(raw) {
			return zstdBytes(raw)
		}
		return raw, nil
	}
}

// ---- Header utilities ----

func copyDownstreamHeaders(src, dst http.Header) {
	for k, vv := range src {
		ck := http.CanonicalHeaderKey(k)
		switch ck {
		case "Connection",
			"Proxy-Connection",
			"Keep-Alive",
			"Proxy-Authenticate",
			"Proxy-Authorization",
			"Te",
			"Trailer",
			"Transfer-Encoding",
			"Upgrade":
			continue
		}
		dst.Del(ck)
		for _, v := range vv {
			dst.Add(ck, v)
		}
	}
}

// ---- Decompressors ----

func gunzipBytes(b []byte) ([]byte, error) {
	zr, err := gzip.NewReader(bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	defer zr.Close()
	return io.ReadAll(zr)
}

func inflateZlibBytes(b []byte) ([]byte, error) {
	zr, err := zlib.NewReader(bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	defer zr.Close()
	return io.ReadAll(zr)
}

func zstdBytes(b []byte) ([]byte, error) {
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, err
	}
	defer dec.Close()
	return dec.DecodeAll(b, nil)
}
func brotliBytes(b []byte) ([]byte, error) {
	r := brotli.NewReader(bytes.NewReader(b))
	return io.ReadAll(r)
}

// ---- Simple magic number checks ----

func isGzip(b []byte) bool { return len(b) > 2 && b[0] == 0x1f && b[1] == 0x8b }

func isZlib(b []byte) bool {
	return len(b) >= 2 && b[0] == 0x78 && (b[1] == 0x01 || b[1] == 0x9C || b[1] == 0xDA)
}

func isZstd(b []byte) bool {
	return len(b) >= 4 && b[0] == 0x28 && b[1] == 0xB5 && b[2] == 0x2F && b[3] == 0xFD
}

// ---- Misc ----

// 安全截斷前 n 個 rune，避免 UTF-8 亂碼
func safeTruncateRunes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) > n {
		return string(r[:n]) + "…"
	}
	return s
}
