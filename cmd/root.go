package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"flexgen/internal/config"
	"flexgen/internal/pkg/logger"
)

var (
	cfgFile string
	cfg     *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "flexgen",
	Short: "Flexgen - humblebrag social post generator",
	Long: `Flexgen turns a platform, a tone and three intensity sliders into a
satirical "flex" post for LinkedIn, X or Instagram.
It runs as an HTTP service or as a one-shot command.`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ./configs/config.yaml)")

	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath("./configs")
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME/.flexgen")
	}

	// 环境变量设置
	viper.SetEnvPrefix("FLEXGEN")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// 设置默认值
	setDefaults()

	// 读取配置文件
	if err := viper.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFoundError) {
			fmt.Fprintln(os.Stderr, "No config file found, using defaults and environment variables")
		} else {
			fmt.Fprintf(os.Stderr, "Failed to read config: %v\n", err)
			os.Exit(1)
		}
	}

	// 反序列化到结构体
	cfg = &config.Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to unmarshal config: %v\n", err)
		os.Exit(1)
	}

	// 初始化日志
	if err := logger.Init(&cfg.Log); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to init logger: %v\n", err)
		os.Exit(1)
	}

	log.Debug().Str("config_file", viper.ConfigFileUsed()).Msg("configuration loaded")
}

func setDefaults() {
	// Server
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.mode", "release")
	viper.SetDefault("server.read_timeout", "30s")
	viper.SetDefault("server.write_timeout", "90s")

	// AI
	viper.SetDefault("ai.provider", "openai")
	viper.SetDefault("ai.model", "") // 空值由各 Provider 取默认模型
	viper.SetDefault("ai.timeout", "60s")
	viper.SetDefault("ai.options.temperature", 0.9)
	viper.SetDefault("ai.options.max_tokens", 1024)
	viper.SetDefault("ai.options.top_p", 1.0)

	// Generation
	viper.SetDefault("generation.slider_max", 10)

	// Log
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", "console")
	viper.SetDefault("log.output", "stderr")
	viper.SetDefault("log.time_format", "RFC3339")

	// MongoDB (uri 为空时关闭生成审计)
	viper.SetDefault("mongo.uri", "")
	viper.SetDefault("mongo.database", "flexgen")
	viper.SetDefault("mongo.max_pool_size", 20)
	viper.SetDefault("mongo.min_pool_size", 0)

	// Redis (addr 为空时关闭生成计数)
	viper.SetDefault("redis.addr", "")
	viper.SetDefault("redis.db", 0)

	// NATS (url 为空时不发布生成事件)
	viper.SetDefault("nats.url", "")
	viper.SetDefault("nats.subject", "flexgen.generations")

	// Telemetry (endpoint 为空时不导出 trace)
	viper.SetDefault("telemetry.endpoint", "")
	viper.SetDefault("telemetry.insecure", true)
	viper.SetDefault("telemetry.service_name", "flexgen")
	viper.SetDefault("telemetry.sample_ratio", 1.0)
}

// GetConfig returns the global configuration
func GetConfig() *config.Config {
	return cfg
}
