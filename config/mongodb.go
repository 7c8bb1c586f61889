package config

type MongoDB struct {
	URI string `mapstructure:"URI" json:"uri" yaml:"uri"`
	// 附加在 URI 後的參數, 例如 authSource=admin&retryWrites=true
	Options  string `mapstructure:"OPTIONS" json:"options" yaml:"options"`
	Database string `mapstructure:"DATABASE" json:"database" yaml:"database"`
	// 啟動時連線與 ping 的逾時 (秒)
	ConnectTimeout int    `mapstructure:"CONNECT_TIMEOUT" json:"connect_timeout" yaml:"connect_timeout"`
	MaxPoolSize    uint64 `mapstructure:"MAX_POOL_SIZE" json:"max_pool_size" yaml:"max_pool_size"`
}
