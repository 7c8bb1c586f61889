package config

type Configuration struct {
	App         App             `mapstructure:"APP" json:"app" yaml:"app"`
	Redis       Redis           `mapstructure:"REDIS" json:"redis" yaml:"redis"`
	Log         Log             `mapstructure:"LOG" json:"log" yaml:"log"`
	MongoDB     MongoDB         `mapstructure:"MONGODB" json:"mongodb" yaml:"mongodb"`
	Telemetry   TelemetryConfig `mapstructure:"TELEMETRY" yaml:"telemetry"`
	Fluentd     Fluentd         `mapstructure:"FLUENTD" yaml:"fluentd"`
	Cors        Cors            `mapstructure:"CORS" json:"cors" yaml:"cors"`
	Backend     Backend         `mapstructure:"BACKEND" json:"backend" yaml:"backend"`
	Store       Store           `mapstructure:"STORE" json:"store" yaml:"store"`
	Cache       Cache           `mapstructure:"CACHE" json:"cache" yaml:"cache"`
	Aggregation Aggregation     `mapstructure:"AGGREGATION" json:"aggregation" yaml:"aggregation"`
	Submission  Submission      `mapstructure:"SUBMISSION" json:"submission" yaml:"submission"`
	Cron        Cron            `mapstructure:"CRON" json:"cron" yaml:"cron"`
}
