package config

type TelemetryConfig struct {
	Metric MetricConfig `yaml:"metric" mapstructure:"METRIC" json:"metric"`
	Trace  TraceConfig  `yaml:"trace" mapstructure:"TRACE" json:"trace"`
}

type MetricConfig struct {
	Enabled bool `yaml:"enabled" mapstructure:"ENABLED" json:"enabled"`
	// request_duration_seconds / orgtree_build_seconds 的 bucket, 空值用 prometheus 預設
	Buckets []float64 `yaml:"buckets" mapstructure:"BUCKETS" json:"buckets"`
}

type TraceConfig struct {
	Enabled     bool   `yaml:"enabled" mapstructure:"ENABLED" json:"enabled"`
	EndpointUrl string `yaml:"endpointUrl" mapstructure:"ENDPOINT_URL" json:"endpointUrl"`
	// 0 或 >= 1 代表全部取樣
	SampleRatio float64 `yaml:"sampleRatio" mapstructure:"SAMPLE_RATIO" json:"sampleRatio"`
	// 匯出逾時 (秒)
	Timeout int `yaml:"timeout" mapstructure:"TIMEOUT" json:"timeout"`
}
