package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

//go:embed config.yml
var embeddedConfig []byte

type Config struct {
	Mode   string `mapstructure:"mode"`
	Server struct {
		HTTPPort string        `mapstructure:"HTTPPort"`
		Timeout  time.Duration `mapstructure:"HTTPTimeout"`
	} `mapstructure:"server"`
	Repositories struct {
		Postgres struct {
			Host     string `mapstructure:"host"`
			Port     string `mapstructure:"port"`
			Username string `mapstructure:"username"`
			Password string `mapstructure:"password"`
			DB       string `mapstructure:"db"`
			SSLMode  string `mapstructure:"sslmode"`
		} `mapstructure:"postgres"`
	} `mapstructure:"repositories"`
	Auth struct {
		// JWTSecret is overridden by the JWT_SECRET environment variable.
		JWTSecret string `mapstructure:"jwtSecret"`
	} `mapstructure:"auth"`
	Providers struct {
		Nominatim struct {
			BaseURL   string `mapstructure:"baseURL"`
			UserAgent string `mapstructure:"userAgent"`
		} `mapstructure:"nominatim"`
		Wikipedia struct {
			DefaultLang string `mapstructure:"defaultLang"`
		} `mapstructure:"wikipedia"`
		GooglePlaces struct {
			// APIKey is overridden by the GOOGLE_PLACES_API_KEY environment
			// variable. An empty key disables category search.
			APIKey string `mapstructure:"apiKey"`
		} `mapstructure:"googlePlaces"`
		Gemini struct {
			// APIKey is overridden by the GOOGLE_GEMINI_API_KEY environment
			// variable.
			APIKey string `mapstructure:"apiKey"`
			Model  string `mapstructure:"model"`
		} `mapstructure:"gemini"`
	} `mapstructure:"providers"`
}

func InitConfig() (Config, error) {
	var config Config
	v := viper.New()

	v.AddConfigPath(".")
	v.AddConfigPath("config")
	v.AddConfigPath("/app/config")

	v.SetConfigName("config")
	v.SetConfigType("yml")

	// Fall back to the embedded config when no file is present.
	err := v.ReadInConfig()
	if err != nil {
		fmt.Printf("Warning: Failed to find file-based config: %s. Falling back to embedded config.\n", err)
		if err = v.ReadConfig(bytes.NewReader(embeddedConfig)); err != nil {
			return Config{}, fmt.Errorf("failed to read embedded config: %s", err)
		}
	}

	if err = v.Unmarshal(&config); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %s", err)
	}

	// Secrets come from the environment, never from the checked-in file.
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		config.Auth.JWTSecret = secret
	}
	if key := os.Getenv("GOOGLE_PLACES_API_KEY"); key != "" {
		config.Providers.GooglePlaces.APIKey = key
	}
	if key := os.Getenv("GOOGLE_GEMINI_API_KEY"); key != "" {
		config.Providers.Gemini.APIKey = key
	}

	fmt.Println("Successfully loaded app configs...")
	return config, nil
}
