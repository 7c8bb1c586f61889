package client

import (
	"context"
	"squadhealth/config"
	"time"

	"github.com/fluent/fluent-logger-golang/fluent"
	"go.uber.org/zap"
)

// Client is a minimal interface to allow mocking in tests.
type Client interface {
	Post(ctx context.Context, tag string, message any) error
	Close() error
}

// FluentdClient implements Client using fluent-logger-golang.
type FluentdClient struct {
	client    *fluent.Fluent
	tagPrefix string
}

// NewFluentdClient 未設定 FLUENTD__HOST 時回傳 NoopClient
func NewFluentdClient(logger *zap.Logger, config *config.Configuration) (Client, func(), error) {
	if config.Fluentd.Host == "" {
		logger.Info("fluentd disabled, request/response logs are not shipped")
		return &NoopClient{}, func() {}, nil
	}
	prefix := "squadhealth"
	if config.Fluentd.TagPrefix != "" {
		prefix = config.Fluentd.TagPrefix
	}
	var timeout time.Duration
	if config.Fluentd.Timeout > 0 {
		timeout = time.Duration(config.Fluentd.Timeout) * time.Millisecond
	}

	fluent, err := fluent.New(fluent.Config{
		FluentHost:  config.Fluentd.Host,
		FluentPort:  config.Fluentd.Port,
		Timeout:     timeout,
		TagPrefix:   prefix,
		Async:       true,
		BufferLimit: config.Fluentd.BufferLimit,
	})
	if err != nil {
		logger.Error("failed to create fluentd client", zap.Error(err))
		return nil, nil, err
	}
	fluentdClient := &FluentdClient{client: fluent, tagPrefix: prefix}
	cleanup := func() {
		logger.Info("closing the fluentd client")
		if err := fluentdClient.Close(); err != nil {
			logger.Error("failed to close fluentd client", zap.Error(err))
		}
	}
	return fluentdClient, cleanup, nil
}

func (c *FluentdClient) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// Post sends a record to Fluentd; the configured TagPrefix is prepended by the library.
// e.g. tag="request_log" => "squadhealth.request_log"
func (c *FluentdClient) Post(ctx context.Context, tag string, message any) error {
	// fluent-logger-golang 不支援 context 取消，保留參數以維持介面一致
	return c.client.Post(tag, message)
}

// --------------------
// Noop client (disabled mode)
// --------------------

type NoopClient struct{}

func (n *NoopClient) Post(ctx context.Context, tag string, message any) error { return nil }
func (n *NoopClient) Close() error                                            { return nil }
