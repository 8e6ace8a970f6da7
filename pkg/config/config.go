package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort       string
	FirebaseProject  string
	FirebaseApiKey   string
	Environment      string
	BookImagesBucket string
	AvatarsBucket    string
}

func Load() (*Config, error) {
	godotenv.Load()

	config := &Config{
		ServerPort:       getEnv("SERVER_PORT", "8080"),
		FirebaseProject:  getEnv("FIREBASE_PROJECT_ID", ""),
		FirebaseApiKey:   getEnv("FIREBASE_API_KEY", ""),
		Environment:      getEnv("ENVIRONMENT", "development"),
		BookImagesBucket: getEnv("BOOK_IMAGES_BUCKET", "book-images"),
		AvatarsBucket:    getEnv("AVATARS_BUCKET", "avatars"),
	}

	return config, nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
