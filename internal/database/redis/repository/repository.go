package repository

import (
	"strings"

	"squadhealth/internal/core"

	"github.com/google/wire"
)

var ProviderSet = wire.NewSet(
	NewSnapshotCacheRepository,
	NewSubmissionQuotaRepository,
)

// redisKey 以 "squadhealth:<kind>:<parts...>" 組 key，方便用 SCAN 依種類清除
func redisKey(kind core.RedisKey, parts ...string) string {
	return strings.Join(append([]string{string(core.RedisKeyServerName), string(kind)}, parts...), ":")
}
