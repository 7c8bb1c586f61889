package error

const (
	// 0 ~ 999: 成功類別
	SUCCESS = 0 // 200 OK

	// 40000 ~ 49999: 用戶請求錯誤 (400 系列)
	BAD_REQUEST_BODY    = 40000 // 400 - 無效的請求體
	BAD_REQUEST_PARAMS  = 40001 // 400 - 無效的請求參數
	BAD_REQUEST_HEADERS = 40002 // 400 - 無效的請求標頭
	INVALID_SUBMISSION  = 40003 // 400 - 健康檢查內容不合法
	INVALID_SETTING     = 40004 // 400 - 系統設定不合法 (維度 / 階層)

	// 40100 ~ 40399: 驗證與權限錯誤 (401 403 系列)
	UNAUTHORIZED      = 40100 // 401 - 未授權
	INVALID_TOKEN     = 40101 // 401 - Token 失效
	FORBIDDEN         = 40301 // 403 - 禁止訪問
	PERMISSION_DENIED = 40302 // 403 - 階層權限不足

	// 40400 ~ 40499: 資源錯誤 (404 系列)
	NOT_FOUND = 40400 // 404 - 資源未找到
	NO_DATA   = 40401 // 404 - 尚無健康檢查資料

	// 40900 ~ 40999: 狀態衝突 (409 系列)
	CONFLICT                 = 40900 // 409 - 資料重複
	HIERARCHY_CYCLE_DETECTED = 40901 // 409 - 匯報關係出現循環
	HIERARCHY_INTEGRITY      = 40902 // 409 - 上下級階層順序錯誤

	// 42900 ~ 42999: 流量限制錯誤 (429 系列)
	RATE_LIMIT_EXCEEDED = 42900 // 429 - 速率限制超過

	// 50000 ~ 50199: 伺服器內部錯誤 (500 系列)
	INTERNAL_ERROR      = 50000 // 500 - 內部錯誤
	DATABASE_ERROR      = 50001 // 500 - 資料庫錯誤
	SERVICE_UNAVAILABLE = 50002 // 503 - 服務暫停 (維護模式)

	// 50200 ~ 50499: 外部請求錯誤 (502 504 系列)
	EXTERNAL_REQUEST_ERROR         = 50200 // 502 - 外部 API 請求錯誤
	EXTERNAL_RESPONSE_FORMAT_ERROR = 50201 // 502 - 外部 API 回應格式錯誤
	GATEWAY_TIMEOUT                = 50400 // 504 - 外部 API 超時
)
