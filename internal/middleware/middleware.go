package middleware

import (
	"strings"

	"github.com/google/wire"
)

var ProviderSet = wire.NewSet(
	NewCors,
	NewLogger,
	NewRecovery,
	NewTraceEntry,
	NewAuth,
	NewUser,
	NewSubmissionQuota,
	NewResponse,
)

// 不追蹤、不包裝回應的基礎路徑
var infraPrefixes = []string{"/swagger", "/metrics", "/version", "/health", "/debug/pprof"}

func isInfraEndpoint(endpoint string) bool {
	for _, prefix := range infraPrefixes {
		if strings.HasPrefix(endpoint, prefix) {
			return true
		}
	}
	return false
}
