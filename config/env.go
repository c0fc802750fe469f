package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv          string
	Port            string
	SheetAPIURL     string
	SheetAPITimeout time.Duration
	StateDir        string
	OriginURL       string
}

var AppConfig *Config

func LoadConfig() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}

	timeoutSec, _ := strconv.Atoi(os.Getenv("SHEET_API_TIMEOUT"))
	if timeoutSec <= 0 {
		timeoutSec = 15
	}

	AppConfig = &Config{
		AppEnv:          getEnv("APP_ENV", "development"),
		Port:            getEnv("APP_PORT", getEnv("PORT", "8080")),
		SheetAPIURL:     os.Getenv("SHEET_API_URL"),
		SheetAPITimeout: time.Duration(timeoutSec) * time.Second,
		StateDir:        getEnv("STATE_DIR", "./data"),
		OriginURL:       os.Getenv("ORIGIN_URL"),
	}

	log.Println("Configuration loaded successfully")
	log.Printf("Environment: %s", AppConfig.AppEnv)
	log.Printf("Server will run on port: %s", AppConfig.Port)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
