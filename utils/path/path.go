package path

import (
	"os"
	"path/filepath"
)

// RootPath 回傳相對設定檔路徑的基準目錄。
// 順序：APP_ROOT 環境變數 → 從工作目錄往上找到 go.mod 的目錄 → 執行檔所在目錄
func RootPath() string {
	if root := os.Getenv("APP_ROOT"); root != "" {
		return filepath.Clean(root)
	}
	if wd, err := os.Getwd(); err == nil {
		if root, ok := findUp(wd, "go.mod"); ok {
			return root
		}
	}
	if exe, err := os.Executable(); err == nil {
		return filepath.Dir(exe)
	}
	return "."
}

// findUp 從 dir 往上找含有 marker 的目錄
func findUp(dir, marker string) (string, bool) {
	dir = filepath.Clean(dir)
	for {
		if ok, _ := Exists(filepath.Join(dir, marker)); ok {
			return dir, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// Exists 路徑是否存在
func Exists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}
