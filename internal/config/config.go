package config

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	Port               string `mapstructure:"PORT"`
	DatabasePath       string `mapstructure:"DATABASE_PATH"`
	JWTSecret          string `mapstructure:"JWT_SECRET"`
	TokenExpiryMinutes int    `mapstructure:"TOKEN_EXPIRY_MINUTES"`
	EnableCORS         bool   `mapstructure:"ENABLE_CORS"`
}

func LoadConfig() *Config {
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DATABASE_PATH", "eventdesk.db")
	viper.SetDefault("TOKEN_EXPIRY_MINUTES", 30)

	viper.BindEnv("JWT_SECRET")
	viper.BindEnv("ENABLE_CORS")

	viper.AutomaticEnv()

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		log.Fatal().Err(err).Msg("Unable to decode config")
	}

	return &config
}
