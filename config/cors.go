package config

type Cors struct {
	// 空值代表允許所有來源
	AllowOrigins []string `mapstructure:"ALLOW_ORIGINS" json:"allow_origins" yaml:"allow_origins"`
	// preflight 快取秒數
	MaxAge int `mapstructure:"MAX_AGE" json:"max_age" yaml:"max_age"`
}
