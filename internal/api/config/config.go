package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

// Cfg 进程级配置单例，LoadConfig 成功后可用
var Cfg *Config

// LoadConfig 读取 ./configs/config.yaml 并填充 Cfg。
// 文件缺失视为错误，解析失败同样中止启动。
func LoadConfig() error {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return fmt.Errorf("config file not found: %w", err)
		}
	}

	cfg := new(Config)
	if err := viper.Unmarshal(cfg); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}
	Cfg = cfg
	return nil
}
