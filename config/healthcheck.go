package config

type Cache struct {
	Enabled bool `mapstructure:"ENABLED" json:"enabled" yaml:"enabled"`
	// 組織快照的存活時間 (秒)
	TTL int `mapstructure:"TTL" json:"ttl" yaml:"ttl"`
}

type Aggregation struct {
	// 計算完成率時往回看的天數
	CompletionWindowDays int `mapstructure:"COMPLETION_WINDOW_DAYS" json:"completion_window_days" yaml:"completion_window_days"`
}

type Submission struct {
	// 每位使用者每日可提交的次數, 0 表示不限制
	DailyLimit int `mapstructure:"DAILY_LIMIT" json:"daily_limit" yaml:"daily_limit"`
}

type Cron struct {
	// 推進到期團隊下次檢查日的排程
	AdvanceSpec string `mapstructure:"ADVANCE_SPEC" json:"advance_spec" yaml:"advance_spec"`
}
