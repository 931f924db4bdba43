// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package arena

import (
	"errors"

	"github.com/spf13/viper"
)

// Config holds the server settings, read from config.yaml with
// environment overrides. Every field has a working default, so the
// server runs without a config file.
type Config struct {
	Listen        string `mapstructure:"listen"`
	MetricsListen string `mapstructure:"metrics_listen"`
	ReadLimit     int64  `mapstructure:"read_limit"`
}

func LoadConfig(path string) (config *Config, err error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.SetDefault("listen", ":8080")
	viper.SetDefault("metrics_listen", ":9090")
	viper.SetDefault("read_limit", 1<<16)

	viper.AutomaticEnv()

	if err = viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	err = viper.Unmarshal(&config)
	return
}
