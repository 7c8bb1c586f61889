package config

// Fluentd request / response / submission log 的轉送目的地, HOST 為空時停用
type Fluentd struct {
	Host      string `mapstructure:"HOST" json:"host" yaml:"host"`
	Port      int    `mapstructure:"PORT" json:"port" yaml:"port"`
	TagPrefix string `mapstructure:"TAG_PREFIX" json:"tagPrefix" yaml:"tagPrefix"`
	// 毫秒
	Timeout int64 `mapstructure:"TIMEOUT" json:"timeout" yaml:"timeout"`
	// 非同步送出時的緩衝上限 (筆)
	BufferLimit int `mapstructure:"BUFFER_LIMIT" json:"bufferLimit" yaml:"bufferLimit"`
}
