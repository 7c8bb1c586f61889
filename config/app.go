package config

import "time"

type App struct {
	Env     string `mapstructure:"ENV" json:"env" yaml:"env"`
	Port    uint32 `mapstructure:"PORT" json:"port" yaml:"port"`
	Name    string `mapstructure:"NAME" json:"name" yaml:"name"`
	Version string `mapstructure:"VERSION" json:"version" yaml:"version"`
	// HS256 簽章金鑰；空值時所有 /api 請求都會 401
	SecretKey      string `mapstructure:"SECRET_KEY" json:"secret_key" yaml:"secret_key"`
	SwaggerEnabled bool   `mapstructure:"SWAGGER_ENABLED" json:"swagger_enabled" yaml:"swagger_enabled"`
	// 反向代理下的路徑前綴, 例如 /squadhealth
	BasePath string `mapstructure:"BASE_PATH" json:"base_path" yaml:"base_path"`

	// 以下皆為秒
	ReadHeaderTimeout int `mapstructure:"READ_HEADER_TIMEOUT" json:"read_header_timeout" yaml:"read_header_timeout"`
	WriteTimeout      int `mapstructure:"WRITE_TIMEOUT" json:"write_timeout" yaml:"write_timeout"`
	ShutdownTimeout   int `mapstructure:"SHUTDOWN_TIMEOUT" json:"shutdown_timeout" yaml:"shutdown_timeout"`
}

func (a App) IsProduction() bool {
	return a.Env == "production"
}

// Seconds 把設定的秒數轉成 Duration，<= 0 時用 fallback
func Seconds(v int, fallback time.Duration) time.Duration {
	if v <= 0 {
		return fallback
	}
	return time.Duration(v) * time.Second
}
