package config

// Redis 組織快照快取與每日提交配額共用
type Redis struct {
	Host     string `mapstructure:"HOST" json:"host" yaml:"host"`
	Port     int    `mapstructure:"PORT" json:"port" yaml:"port"`
	Password string `mapstructure:"PASSWORD" json:"password" yaml:"password"`
	DB       int    `mapstructure:"DB" json:"db" yaml:"db"`
	// 0 使用 go-redis 預設 (10 * GOMAXPROCS)
	PoolSize int `mapstructure:"POOL_SIZE" json:"pool_size" yaml:"pool_size"`
	// 連線逾時 (秒)
	DialTimeout int `mapstructure:"DIAL_TIMEOUT" json:"dial_timeout" yaml:"dial_timeout"`
}
