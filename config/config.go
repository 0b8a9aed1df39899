package config

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/spf13/viper"
)

const envPrefix = "SOILADVISOR"

// 生成服务后端
const (
	BackendREST = "rest"
	BackendSDK  = "sdk"
	BackendMock = "mock"
)

// MaxModels 每次请求最多尝试的模型数
const MaxModels = 3

// Config 服务配置
type Config struct {
	Server ServerConfig `mapstructure:"server"`
	Gemini GeminiConfig `mapstructure:"gemini"`
	Log    LogConfig    `mapstructure:"log"`
}

// ServerConfig HTTP 服务配置
type ServerConfig struct {
	Addr string `mapstructure:"addr"`
	Mode string `mapstructure:"mode"`
}

// GeminiConfig 生成服务配置
type GeminiConfig struct {
	Backend    string        `mapstructure:"backend"`
	APIKey     string        `mapstructure:"api_key"`
	BaseURL    string        `mapstructure:"base_url"`
	APIVersion string        `mapstructure:"api_version"`
	Models     []string      `mapstructure:"models"`
	Timeout    time.Duration `mapstructure:"timeout"`
}

// LogConfig 日志配置
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

var (
	Cfg     *Config
	once    sync.Once
	initErr error
)

// InitConfig 初始化全局配置，只加载一次，后续调用返回同一结果
func InitConfig(path string) (*Config, error) {
	once.Do(func() {
		Cfg, initErr = Load(path)
	})
	return Cfg, initErr
}

// Load 读取配置文件和环境变量，path 为空时只使用默认值和环境变量
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// 兼容通用的 GEMINI_API_KEY
	if err := v.BindEnv("gemini.api_key", envPrefix+"_GEMINI_API_KEY", "GEMINI_API_KEY"); err != nil {
		return nil, err
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	cfg.Gemini.Models = normalizeModels(cfg.Gemini.Models)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.mode", "release")

	v.SetDefault("gemini.backend", BackendREST)
	v.SetDefault("gemini.api_key", "")
	v.SetDefault("gemini.base_url", "https://generativelanguage.googleapis.com")
	v.SetDefault("gemini.api_version", "v1")
	v.SetDefault("gemini.models", []string{"gemini-1.5-flash", "gemini-1.5-pro", "gemini-pro"})
	v.SetDefault("gemini.timeout", "0s")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
}

// normalizeModels 去掉空白和重复的模型，保持原有顺序
func normalizeModels(in []string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, m := range in {
		m = strings.TrimSpace(m)
		if m == "" || seen[m] {
			continue
		}
		seen[m] = true
		out = append(out, m)
	}
	return out
}

// Validate 校验配置
func (c *Config) Validate() error {
	switch c.Gemini.Backend {
	case BackendREST, BackendSDK, BackendMock:
	default:
		return fmt.Errorf("gemini.backend must be one of rest, sdk, mock, got %q", c.Gemini.Backend)
	}
	if c.Gemini.Backend != BackendMock {
		if c.Gemini.APIKey == "" {
			return errors.New("gemini.api_key is required (set SOILADVISOR_GEMINI_API_KEY or GEMINI_API_KEY)")
		}
		if c.Gemini.BaseURL == "" {
			return errors.New("gemini.base_url is required")
		}
		if len(c.Gemini.Models) == 0 {
			return errors.New("gemini.models must name at least one model")
		}
	}
	if len(c.Gemini.Models) > MaxModels {
		return fmt.Errorf("gemini.models accepts at most %d models, got %d", MaxModels, len(c.Gemini.Models))
	}
	if c.Gemini.Timeout < 0 {
		return errors.New("gemini.timeout must not be negative")
	}
	switch c.Server.Mode {
	case "release", "debug", "test":
	default:
		return fmt.Errorf("server.mode must be release, debug or test, got %q", c.Server.Mode)
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("log.format must be json or console, got %q", c.Log.Format)
	}
	return nil
}
