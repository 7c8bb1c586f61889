package config

import (
	"fmt"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// LoadOptions 對應 --env / --config；兩者皆空時只讀環境變數
type LoadOptions struct {
	EnvFile  string
	YAMLFile string
	// 相對路徑的基準目錄
	Root string
}

var defaults = map[string]any{
	"APP__NAME":                           "squadhealth",
	"APP__ENV":                            "development",
	"APP__PORT":                           3000,
	"LOG__LEVEL":                          "info",
	"STORE__DRIVER":                       "mongo",
	"MONGODB__DATABASE":                   "squadhealth",
	"CACHE__ENABLED":                      true,
	"CACHE__TTL":                          60,
	"AGGREGATION__COMPLETION_WINDOW_DAYS": 30,
	"CRON__ADVANCE_SPEC":                  "@every 1h",
	"BACKEND__TIMEOUT":                    30,
}

// Load 讀取設定檔與環境變數 (環境變數優先)，巢狀鍵以 "__" 分隔，例如 REDIS__HOST。
// onChange 不為 nil 時會監聽設定檔，變更後以新的 Configuration 呼叫。
func Load(opts LoadOptions, onChange func(*Configuration)) (*Configuration, error) {
	v := viper.NewWithOptions(viper.KeyDelimiter("__"))
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "__"))
	v.AutomaticEnv()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	file, fileType := opts.file()
	if file != "" {
		v.SetConfigFile(file)
		v.SetConfigType(fileType)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", file, err)
		}
	}
	bindEnvs(v, reflect.TypeOf(Configuration{}))

	conf := &Configuration{}
	if err := v.Unmarshal(conf); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if file != "" && onChange != nil {
		v.OnConfigChange(func(fsnotify.Event) {
			next := &Configuration{}
			if err := v.Unmarshal(next); err != nil {
				return
			}
			onChange(next)
		})
		v.WatchConfig()
	}
	return conf, nil
}

// --env 優先於 --config；yaml 的相對路徑以 <root>/conf 為基準
func (opts LoadOptions) file() (string, string) {
	switch {
	case opts.EnvFile != "":
		return opts.abs(opts.EnvFile, ""), "env"
	case opts.YAMLFile != "":
		return opts.abs(opts.YAMLFile, "conf"), "yaml"
	default:
		return "", ""
	}
}

func (opts LoadOptions) abs(file, dir string) string {
	if filepath.IsAbs(file) || opts.Root == "" {
		return file
	}
	return filepath.Join(opts.Root, dir, file)
}

// bindEnvs 讓 AutomaticEnv 也能對應到沒有出現在設定檔中的巢狀鍵
func bindEnvs(v *viper.Viper, t reflect.Type, path ...string) {
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")
		if tag == "" || tag == "-" {
			tag = field.Name
		}
		key := append(append([]string{}, path...), tag)
		ft := field.Type
		if ft.Kind() == reflect.Ptr {
			ft = ft.Elem()
		}
		if ft.Kind() == reflect.Struct {
			bindEnvs(v, ft, key...)
			continue
		}
		_ = v.BindEnv(strings.Join(key, "__"))
	}
}
