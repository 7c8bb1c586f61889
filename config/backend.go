package config

// Backend 外部 REST 後端 (STORE__DRIVER=backend 時作為資料來源, 同時提供 passthrough 代理)
type Backend struct {
	BaseURL string `mapstructure:"BASE_URL" json:"base_url" yaml:"base_url"`
	// 秒
	Timeout       int    `mapstructure:"TIMEOUT" json:"timeout" yaml:"timeout"`
	RetryCount    int    `mapstructure:"RETRY_COUNT" json:"retry_count" yaml:"retry_count"`
	RetryWaitTime int    `mapstructure:"RETRY_WAIT_TIME" json:"retry_wait_time" yaml:"retry_wait_time"`
	Token         string `mapstructure:"TOKEN" json:"token" yaml:"token"`
}

type Store struct {
	// mongo | backend
	Driver string `mapstructure:"DRIVER" json:"driver" yaml:"driver"`
}
