package config

type Log struct {
	// debug / info / warn / error
	Level string `mapstructure:"LEVEL" json:"level" yaml:"level"`
	// 為空時只輸出到 stdout / stderr
	File string `mapstructure:"FILE" json:"file" yaml:"file"`
	// 單檔上限 (MB)
	MaxSize int `mapstructure:"MAX_SIZE" json:"max_size" yaml:"max_size"`
	// 保留的舊檔數量
	MaxBackups int `mapstructure:"MAX_BACKUPS" json:"max_backups" yaml:"max_backups"`
	// 保留天數
	MaxAge int `mapstructure:"MAX_AGE" json:"max_age" yaml:"max_age"`
}
