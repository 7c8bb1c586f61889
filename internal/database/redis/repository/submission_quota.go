package repository

import (
	"context"
	"errors"
	"time"

	"squadhealth/internal/core"
	client "squadhealth/internal/database/client"
	"squadhealth/internal/telemetry"

	"github.com/redis/go-redis/v9"
)

type SubmissionQuotaRepository struct {
	trace  *telemetry.Trace
	client *redis.Client
}

func NewSubmissionQuotaRepository(trace *telemetry.Trace, client *client.RedisClient) *SubmissionQuotaRepository {
	return &SubmissionQuotaRepository{trace: trace, client: client.Client()}
}

var ErrQuotaExceeded = errors.New("daily submission quota exceeded")

// Consume 消耗一次當日配額；第一次消耗時建立 key 並設定到當日結束的 TTL。
// 回傳：remaining（剩餘次數）、ttlSec（剩餘秒數）、err（若超限為 ErrQuotaExceeded）
func (repository *SubmissionQuotaRepository) Consume(
	contextValue context.Context,
	userID string,
	day string,
	windowSeconds int64,
	limitCount int,
) (remainingCount int, timeToLiveSeconds int64, returnedError error) {

	contextValue, span, endSpan := repository.trace.WithSpan(contextValue)
	defer func() {
		endSpan(returnedError)
	}()

	traceMetadata := core.TraceSubmissionQuotaMeta{
		UserID:    userID,
		Day:       day,
		Limit:     limitCount,
		WindowSec: windowSeconds,
		Op:        "consume",
	}
	repository.trace.ApplyTraceAttributes(span, traceMetadata)

	redisKey := repository.buildKey(userID, day)
	expirationDuration := time.Duration(windowSeconds) * time.Second

	// 嘗試初始化：SETNX key value EX expiration
	wasSet, setError := repository.client.SetNX(
		contextValue,
		redisKey,
		limitCount-1, // 本次消耗一次，所以初始值 = 總額-1
		expirationDuration,
	).Result()
	if setError != nil {
		returnedError = setError
		return 0, 0, returnedError
	}
	if wasSet {
		remainingCount = limitCount - 1
		if remainingCount < 0 {
			remainingCount = 0
			returnedError = ErrQuotaExceeded
		}
		timeToLiveSeconds = windowSeconds
		traceMetadata.Remaining, traceMetadata.TTL = remainingCount, timeToLiveSeconds
		repository.trace.ApplyTraceAttributes(span, traceMetadata)
		return remainingCount, timeToLiveSeconds, returnedError
	}

	// Key 已存在 → 執行 DECR 扣一次
	newValue, decrError := repository.client.Decr(contextValue, redisKey).Result()
	if decrError != nil {
		returnedError = decrError
		return 0, 0, returnedError
	}

	ttlDuration, _ := repository.client.TTL(contextValue, redisKey).Result()
	if ttlDuration > 0 {
		timeToLiveSeconds = int64(ttlDuration.Seconds())
	}

	if newValue < 0 {
		remainingCount = 0
		traceMetadata.Remaining, traceMetadata.TTL = remainingCount, timeToLiveSeconds
		repository.trace.ApplyTraceAttributes(span, traceMetadata)
		returnedError = ErrQuotaExceeded
		return remainingCount, timeToLiveSeconds, returnedError
	}

	remainingCount = int(newValue)
	traceMetadata.Remaining, traceMetadata.TTL = remainingCount, timeToLiveSeconds
	repository.trace.ApplyTraceAttributes(span, traceMetadata)
	return remainingCount, timeToLiveSeconds, nil
}

// GetCurrent 查詢目前剩餘次數與 TTL（秒）。尚未消耗過回傳 limitCount, 0。
func (repository *SubmissionQuotaRepository) GetCurrent(
	contextValue context.Context,
	userID string,
	day string,
	limitCount int,
) (remainingCount int, timeToLiveSeconds int64, returnedError error) {

	contextValue, span, endSpan := repository.trace.WithSpan(contextValue)
	defer func() { endSpan(returnedError) }()

	traceMetadata := core.TraceSubmissionQuotaMeta{
		UserID: userID,
		Day:    day,
		Limit:  limitCount,
		Op:     "get",
	}
	repository.trace.ApplyTraceAttributes(span, traceMetadata)

	redisKey := repository.buildKey(userID, day)

	// 用 pipeline 併發 GET + TTL 減少往返
	pipeline := repository.client.Pipeline()
	getCommand := pipeline.Get(contextValue, redisKey)
	ttlCommand := pipeline.TTL(contextValue, redisKey)
	if _, execError := pipeline.Exec(contextValue); execError != nil && !errors.Is(execError, redis.Nil) {
		returnedError = execError
		return 0, 0, returnedError
	}

	value, getError := getCommand.Int()
	if errors.Is(getError, redis.Nil) {
		return limitCount, 0, nil
	}
	if getError != nil {
		returnedError = getError
		return 0, 0, returnedError
	}

	if ttlDuration := ttlCommand.Val(); ttlDuration > 0 {
		timeToLiveSeconds = int64(ttlDuration.Seconds())
	}

	remainingCount = value
	if remainingCount < 0 {
		remainingCount = 0
	}

	traceMetadata.Remaining, traceMetadata.TTL = remainingCount, timeToLiveSeconds
	repository.trace.ApplyTraceAttributes(span, traceMetadata)
	return remainingCount, timeToLiveSeconds, nil
}

// Refund 提交在寫入階段失敗時歸還一次配額；key 已過期則不處理
func (repository *SubmissionQuotaRepository) Refund(
	contextValue context.Context,
	userID string,
	day string,
) (returnedError error) {

	contextValue, span, endSpan := repository.trace.WithSpan(contextValue)
	defer func() { endSpan(returnedError) }()

	repository.trace.ApplyTraceAttributes(span, core.TraceSubmissionQuotaMeta{UserID: userID, Day: day, Op: "refund"})

	redisKey := repository.buildKey(userID, day)
	exists, existsError := repository.client.Exists(contextValue, redisKey).Result()
	if existsError != nil {
		return existsError
	}
	if exists == 0 {
		return nil
	}
	return repository.client.Incr(contextValue, redisKey).Err()
}

// buildKey 建構每日提交次數用的 Redis key
func (repository *SubmissionQuotaRepository) buildKey(userID, day string) string {
	return redisKey(core.RedisKeySubmission, userID, day)
}
