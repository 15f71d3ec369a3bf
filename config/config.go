package config

import (
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Export   ExportConfig   `yaml:"export"`
	Data     DataConfig     `yaml:"data"`
}

type ServerConfig struct {
	Port string `yaml:"port"`
	Mode string `yaml:"mode"` // debug, release
}

type DatabaseConfig struct {
	Type string `yaml:"type"` // sqlite, mysql
	DSN  string `yaml:"dsn"`
}

type ExportConfig struct {
	Dir        string `yaml:"dir"`         // 导出产物目录
	PageFormat string `yaml:"page_format"` // 默认纸张，A4 或 Letter
	ChromePath string `yaml:"chrome_path"` // 留空则在 PATH 中查找 chromium
}

type DataConfig struct {
	Dir       string `yaml:"dir"`
	UploadDir string `yaml:"upload_dir"`
}

var (
	cfg  *Config
	once sync.Once
)

func GetConfig() *Config {
	once.Do(func() {
		cfg = loadConfig()
	})
	return cfg
}

func loadConfig() *Config {
	config := &Config{
		Server: ServerConfig{
			Port: "8080",
			Mode: "debug",
		},
		Database: DatabaseConfig{
			Type: "sqlite",
			DSN:  "./data/app.db",
		},
		Export: ExportConfig{
			Dir:        "./data/exports",
			PageFormat: "A4",
		},
		Data: DataConfig{
			Dir:       "./data",
			UploadDir: "./data/uploads",
		},
	}

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}

	data, err := os.ReadFile(configPath)
	if err == nil {
		yaml.Unmarshal(data, config)
	}

	// 环境变量优先级高于配置文件
	if port := os.Getenv("SERVER_PORT"); port != "" {
		config.Server.Port = port
	}
	if mode := os.Getenv("SERVER_MODE"); mode != "" {
		config.Server.Mode = mode
	}

	// 数据库环境变量
	if dbType := os.Getenv("DB_TYPE"); dbType != "" {
		config.Database.Type = dbType
	}
	if dbDSN := os.Getenv("DB_DSN"); dbDSN != "" {
		config.Database.DSN = dbDSN
	}

	// 数据目录环境变量
	if dataDir := os.Getenv("DATA_DIR"); dataDir != "" {
		config.Data.Dir = dataDir
	}
	if uploadDir := os.Getenv("UPLOAD_DIR"); uploadDir != "" {
		config.Data.UploadDir = uploadDir
	}
	if exportDir := os.Getenv("EXPORT_DIR"); exportDir != "" {
		config.Export.Dir = exportDir
	}
	if chromePath := os.Getenv("CHROME_PATH"); chromePath != "" {
		config.Export.ChromePath = chromePath
	}

	if config.Data.UploadDir == "" {
		config.Data.UploadDir = filepath.Join(config.Data.Dir, "uploads")
	}
	if config.Export.Dir == "" {
		config.Export.Dir = filepath.Join(config.Data.Dir, "exports")
	}

	return config
}

func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func UpdateConfig(newCfg *Config) {
	cfg = newCfg
}
