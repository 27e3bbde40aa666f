package config

import "os"

type Config struct {
	Port string

	// OpenRouter credential. The chat endpoint refuses to work without it,
	// but the rest of the API stays usable.
	OpenRouterAPIKey string

	// "openrouter" or "mock". The mock answers with a canned reply and is
	// only meant for local development.
	ChatBackend string

	FamilyPassword string
	JWTSecret      string

	// "sqlite" or "memory"
	StorageBackend string
	SQLitePath     string
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// Load reads all env vars and builds the config.
func Load() *Config {
	return &Config{
		Port: getEnv("PORT", "8080"),

		OpenRouterAPIKey: getEnv("OPENROUTER_API_KEY", ""),
		ChatBackend:      getEnv("CHAT_BACKEND", "openrouter"),

		FamilyPassword: getEnv("FAMILY_PASSWORD", "1234"),
		JWTSecret:      getEnv("JWT_SECRET", "los-lozano-cambiadme-en-produccion"),

		StorageBackend: getEnv("STORAGE_BACKEND", "sqlite"),
		SQLitePath:     getEnv("SQLITE_PATH", "madrid_guide.db"),
	}
}
