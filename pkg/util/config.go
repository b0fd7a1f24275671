package util

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

// ReadConfig load ./data/config.{yaml,json,...} into viper. a missing config
// file is fine, every key has a default.
func ReadConfig() error {
	viper.SetConfigName("config")
	viper.AddConfigPath("./data/")

	err := viper.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("fatal error config file: %w", err)
	}
	return nil
}
