package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all runtime configuration. Provider credentials and tunable
// thresholds are read once here; nothing else in the service touches the
// environment directly.
type Config struct {
	Port      string
	DBPath    string
	JWTSecret string

	// Routing provider (pedestrian + vehicle profiles)
	RoutingBaseURL string
	RoutingAPIKey  string

	// Transit routing provider
	TransitBaseURL string
	TransitAPIKey  string

	// Isochrone provider
	IsochroneBaseURL string
	IsochroneAPIKey  string

	// Reverse geocoding provider
	GeocodeBaseURL string
	GeocodeAPIKey  string

	// Per-fetch timeout applied to every provider call.
	FetchTimeout time.Duration

	// Speed classification and fetch-eligibility thresholds (km/h).
	WalkingMaxKmh        float64
	TransitMaxKmh        float64
	PedestrianGateMaxKmh float64
	VehicleGateMinKmh    float64

	// Duration tolerance ratio for candidate route filtering.
	ToleranceRatio float64

	// Rate limiting per client IP.
	RateLimit  int
	RateWindow time.Duration
}

// Load reads configuration from environment variables with defaults.
func Load() *Config {
	return &Config{
		Port:      getEnv("PORT", ":8080"),
		DBPath:    getEnv("DB_PATH", "./data/tracker.db"),
		JWTSecret: os.Getenv("JWT_SECRET"),

		RoutingBaseURL: getEnv("ROUTING_BASE_URL", "https://api.openrouteservice.org"),
		RoutingAPIKey:  os.Getenv("ROUTING_API_KEY"),

		TransitBaseURL: getEnv("TRANSIT_BASE_URL", "https://api.odsay.com/v1/api"),
		TransitAPIKey:  os.Getenv("TRANSIT_API_KEY"),

		IsochroneBaseURL: getEnv("ISOCHRONE_BASE_URL", "https://api.openrouteservice.org"),
		IsochroneAPIKey:  os.Getenv("ISOCHRONE_API_KEY"),

		GeocodeBaseURL: getEnv("GEOCODE_BASE_URL", "https://dapi.kakao.com/v2/local"),
		GeocodeAPIKey:  os.Getenv("GEOCODE_API_KEY"),

		FetchTimeout: getEnvDuration("FETCH_TIMEOUT", 5*time.Second),

		WalkingMaxKmh:        getEnvFloat("WALKING_MAX_KMH", 6),
		TransitMaxKmh:        getEnvFloat("TRANSIT_MAX_KMH", 30),
		PedestrianGateMaxKmh: getEnvFloat("PEDESTRIAN_GATE_MAX_KMH", 15),
		VehicleGateMinKmh:    getEnvFloat("VEHICLE_GATE_MIN_KMH", 6),

		ToleranceRatio: getEnvFloat("TOLERANCE_RATIO", 0.3),

		RateLimit:  getEnvInt("RATE_LIMIT", 120),
		RateWindow: getEnvDuration("RATE_WINDOW", time.Minute),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
