package config

import (
	"errors"
	"fmt"
	"time"
)

// Config 应用配置根结构
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	AI         AIConfig         `mapstructure:"ai"`
	Generation GenerationConfig `mapstructure:"generation"`
	Log        LogConfig        `mapstructure:"log"`
	Mongo      MongoConfig      `mapstructure:"mongo"`
	Redis      RedisConfig      `mapstructure:"redis"`
	NATS       NATSConfig       `mapstructure:"nats"`
	Telemetry  TelemetryConfig  `mapstructure:"telemetry"`
}

// ServerConfig HTTP 服务器配置
type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	Mode         string        `mapstructure:"mode"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// AIConfig AI 服务配置
type AIConfig struct {
	Provider string          `mapstructure:"provider"` // openai(Responses API) / openai-chat / azure / ark / gemini
	APIKey   string          `mapstructure:"api_key"`
	Model    string          `mapstructure:"model"`
	BaseURL  string          `mapstructure:"base_url"`
	Timeout  time.Duration   `mapstructure:"timeout"` // HTTP 边界为单次生成设置的截止时间，0 表示不限制
	Options  AIOptionsConfig `mapstructure:"options"`
}

// AIOptionsConfig AI 模型参数
type AIOptionsConfig struct {
	Temperature float64 `mapstructure:"temperature"`
	MaxTokens   int     `mapstructure:"max_tokens"`
	TopP        float64 `mapstructure:"top_p"`
}

// GenerationConfig 生成参数校验配置
type GenerationConfig struct {
	SliderMax int `mapstructure:"slider_max"` // 三个滑块共用的上限，设为 11 开启“拉满”彩蛋
}

// LogConfig 日志配置 (Zerolog)
type LogConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	Output     string `mapstructure:"output"`
	FilePath   string `mapstructure:"file_path"`
	TimeFormat string `mapstructure:"time_format"`
}

// MongoConfig MongoDB 配置，URI 为空时不记录生成审计
type MongoConfig struct {
	URI         string `mapstructure:"uri"`
	Database    string `mapstructure:"database"`
	MaxPoolSize uint64 `mapstructure:"max_pool_size"`
	MinPoolSize uint64 `mapstructure:"min_pool_size"`
}

// RedisConfig Redis 配置，Addr 为空时不统计
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// NATSConfig NATS 配置，URL 为空时不发布生成事件
type NATSConfig struct {
	URL     string `mapstructure:"url"`
	Subject string `mapstructure:"subject"`
}

// TelemetryConfig OpenTelemetry 链路追踪配置，Endpoint 为空时不导出
type TelemetryConfig struct {
	Endpoint    string  `mapstructure:"endpoint"` // OTLP gRPC 地址，如 localhost:4317
	Insecure    bool    `mapstructure:"insecure"`
	ServiceName string  `mapstructure:"service_name"`
	SampleRatio float64 `mapstructure:"sample_ratio"`
}

// Providers 支持的 AI Provider
var Providers = map[string]bool{"openai": true, "openai-chat": true, "azure": true, "ark": true, "gemini": true}

// Validate 验证配置有效性
// 注意：不检查 ai.api_key，凭证缺失由 ai 层作为 ConfigurationError 报告
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return errors.New("invalid server port")
	}

	validModes := map[string]bool{"debug": true, "release": true, "test": true}
	if !validModes[c.Server.Mode] {
		return errors.New("invalid server mode, must be debug/release/test")
	}

	if c.Generation.SliderMax < 1 || c.Generation.SliderMax > 100 {
		return fmt.Errorf("invalid generation.slider_max %d, must be in [1, 100]", c.Generation.SliderMax)
	}

	if c.Telemetry.SampleRatio < 0 || c.Telemetry.SampleRatio > 1 {
		return fmt.Errorf("invalid telemetry.sample_ratio %v, must be in [0, 1]", c.Telemetry.SampleRatio)
	}

	if c.AI.Provider != "" && !Providers[c.AI.Provider] {
		return fmt.Errorf("unsupported AI provider: %s", c.AI.Provider)
	}

	return nil
}
