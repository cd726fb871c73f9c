package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	AuthModeBearer  = "bearer"
	AuthModeSession = "session"
)

type Config struct {
	App   AppConfig
	Kommo KommoConfig
	Auth  AuthConfig
}

type AppConfig struct {
	Name               string
	Version            string
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
}

type KommoConfig struct {
	BaseURL     string
	AccessToken string
}

type AuthConfig struct {
	// Mode selects the deployment variant: "bearer" guards /tools and
	// /execute with a shared secret, "session" threads lead state through
	// the X-Session header instead.
	Mode        string
	BearerToken string
	Debug       bool
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Name:               getEnv("APP_NAME", "kommo-tools-server"),
			Version:            getEnv("APP_VERSION", "1.0.0"),
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
		},
		Kommo: KommoConfig{
			BaseURL:     getEnv("KOMMO_BASE_URL", ""),
			AccessToken: getEnv("KOMMO_ACCESS_TOKEN", ""),
		},
		Auth: AuthConfig{
			Mode:        getEnv("API_AUTH_MODE", AuthModeBearer),
			BearerToken: getEnv("API_BEARER_TOKEN", ""),
			Debug:       getEnvAsBool("API_DEBUG", false),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseBool(strValue); err == nil {
		return value
	}
	return fallback
}
