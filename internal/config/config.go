package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config is the server configuration, read from the environment with an
// optional .env file in the working directory.
//
// Env:
//
//	BOOTFORGE_ADDR, BOOTFORGE_NODE_ID, BOOTFORGE_ENROLL_JWT_SECRET,
//	BOOTFORGE_HISTORY_DB
type Config struct {
	Addr         string
	NodeID       string
	EnrollSecret string
	HistoryDB    string
}

func Load() Config {
	_ = loadDotEnv()
	hostname, _ := os.Hostname()
	return Config{
		Addr:         getenv("BOOTFORGE_ADDR", ":8080"),
		NodeID:       getenv("BOOTFORGE_NODE_ID", hostname),
		EnrollSecret: os.Getenv("BOOTFORGE_ENROLL_JWT_SECRET"),
		HistoryDB:    getenv("BOOTFORGE_HISTORY_DB", "/var/lib/bootforge/runs.db"),
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func loadDotEnv() error {
	if _, err := os.Stat(".env"); err == nil {
		return godotenv.Load(".env")
	}
	return nil
}
