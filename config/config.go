package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	Port     string
	DBPath   string
	Timezone string

	JWTSecret     string
	JWTTTLHours   int
	AdminEmail    string
	AdminPassword string

	PincodeBaseURL   string
	NominatimBaseURL string
	SoilGridsBaseURL string
	GeocoderUA       string

	AgmarknetBaseURL    string
	AgmarknetResourceID string
	AgmarknetAPIKey     string

	AIEndpoint       string
	AIAPIKey         string
	AIChatModel      string
	AIEmbeddingModel string
	AIAllowedDomains string
}

func Load() AppConfig {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Printf("[cfg] No .env file found or error loading: %v", err)
	}

	get := func(k, def string) string {
		if v := os.Getenv(k); v != "" {
			return v
		}
		return def
	}
	ttl := 24
	if v, err := strconv.Atoi(get("JWT_TTL_HOURS", "24")); err == nil && v > 0 {
		ttl = v
	}
	cfg := AppConfig{
		Port:     get("PORT", "8080"),
		DBPath:   get("DB_PATH", "sfa.db"),
		Timezone: get("TZ", "Asia/Kolkata"),

		JWTSecret:     get("JWT_SECRET", "dev-secret-change-me"),
		JWTTTLHours:   ttl,
		AdminEmail:    get("ADMIN_EMAIL", ""),
		AdminPassword: get("ADMIN_PASSWORD", ""),

		PincodeBaseURL:   get("PINCODE_BASE_URL", "https://api.postalpincode.in"),
		NominatimBaseURL: get("NOMINATIM_BASE_URL", "https://nominatim.openstreetmap.org"),
		SoilGridsBaseURL: get("SOILGRIDS_BASE_URL", "https://rest.isric.org"),
		GeocoderUA:       get("GEOCODER_USER_AGENT", "SoilFarmingAgent/1.0 (support@local)"),

		AgmarknetBaseURL:    get("AGMARKNET_BASE_URL", "https://api.data.gov.in/resource"),
		AgmarknetResourceID: get("AGMARKNET_RESOURCE_ID", "9ef84268-d588-465a-a308-a864a43d0070"),
		AgmarknetAPIKey:     get("AGMARKNET_API_KEY", ""),

		AIEndpoint:       get("AI_ENDPOINT", ""),
		AIAPIKey:         get("AI_API_KEY", ""),
		AIChatModel:      get("AI_CHAT_MODEL", "gpt-4o-mini"),
		AIEmbeddingModel: get("AI_EMBEDDING_MODEL", "text-embedding-3-small"),
		AIAllowedDomains: get("AI_ALLOWED_DOMAINS", ""),
	}
	log.Printf("[cfg] port=%s db=%s tz=%s", cfg.Port, cfg.DBPath, cfg.Timezone)
	return cfg
}
