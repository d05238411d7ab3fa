package utils

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App    AppConfig
	API    APIConfig
	Stream StreamConfig
}

type AppConfig struct {
	Name    string
	Port    string
	Debug   bool
	LogPath string
}

type APIConfig struct {
	BaseURL        string
	AuthToken      string
	RequestTimeout time.Duration
}

type StreamConfig struct {
	NATSURL string
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("PORT", "3000")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("API_BASE_URL", "http://localhost:8080")
	viper.SetDefault("NATS_URL", "nats://localhost:4222")
	viper.SetDefault("REQUEST_TIMEOUT_SECONDS", 10)

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	viper.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:    viper.GetString("APP_NAME"),
			Port:    viper.GetString("PORT"),
			Debug:   viper.GetBool("DEBUG"),
			LogPath: viper.GetString("LOG_PATH"),
		},
		API: APIConfig{
			BaseURL:        viper.GetString("API_BASE_URL"),
			AuthToken:      viper.GetString("AUTH_TOKEN"),
			RequestTimeout: time.Duration(viper.GetInt("REQUEST_TIMEOUT_SECONDS")) * time.Second,
		},
		Stream: StreamConfig{
			NATSURL: viper.GetString("NATS_URL"),
		},
	}

	return config, nil
}
