package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config aggregates application configuration loaded from environment
// variables, with a best-effort .env file on top.
type Config struct {
	Env           string
	HTTPAddr      string
	StorageDriver string
	MongoURI      string
	MongoDB       string
	KafkaBrokers  []string
	KafkaTopic    string
	FixturesPath  string
}

// Load reads configuration from the environment. A missing .env file is not
// an error.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Env:           getEnv("APP_ENV", "dev"),
		HTTPAddr:      getEnv("HTTP_ADDR", ":8080"),
		StorageDriver: strings.ToLower(getEnv("STORAGE_DRIVER", "memory")),
		MongoURI:      os.Getenv("MONGO_URI"),
		MongoDB:       getEnv("MONGO_DB", "roomly"),
		KafkaTopic:    getEnv("KAFKA_TOPIC", "room.calendar"),
		FixturesPath:  getEnv("ROOM_FIXTURES", "fixtures/rooms.json"),
	}
	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		cfg.KafkaBrokers = strings.Split(brokers, ",")
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
