package config // package config loads application configuration from environment variables

import (
	"log"     // log is used to report configuration errors and halt execution
	"os"      // os provides access to environment variables
	"strconv" // strconv converts strings to other types
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.  The types reflect how the values are used in
// the application: strings for identifiers and secrets, ints for durations
// and costs.
type Config struct {
	Env            string // application environment (e.g. "dev", "prod")
	Port           string // HTTP port to listen on
	DBUser         string // database username
	DBPass         string // database password (optional)
	DBHost         string // database host address
	DBPort         string // database port number
	DBName         string // database name
	JWTSecret      string // secret used to sign JWTs
	AccessTTLMin   int    // access token time-to-live in minutes
	RefreshTTLDays int    // refresh token time-to-live in days
	BcryptCost     int    // bcrypt cost for password hashing

	GeocoderProvider string // geocoding backend: "nominatim" (default) or "google"
	GeocoderAPIKey   string // API key for the google provider (unused by nominatim)

	StorageBucket    string // S3 bucket that receives uploaded images
	StorageRegion    string // bucket region (default "us-east-1")
	StorageAccessKey string // S3 access key id
	StorageSecretKey string // S3 secret access key
	StorageEndpoint  string // custom S3 endpoint for minio-style deployments (optional)
	StoragePublicURL string // public base URL for stored objects (optional)
}

// Load reads configuration values from environment variables and returns a
// Config.  Required variables are enforced by must() and missing values
// cause the program to exit with a fatal log message.
func Load() Config {
	return Config{
		Env:            must("APP_ENV"),
		Port:           must("APP_PORT"),
		DBUser:         must("DB_USER"),
		DBPass:         os.Getenv("DB_PASS"), // empty allowed
		DBHost:         must("DB_HOST"),
		DBPort:         must("DB_PORT"),
		DBName:         must("DB_NAME"),
		JWTSecret:      must("JWT_SECRET"),
		AccessTTLMin:   mustInt("ACCESS_TOKEN_TTL_MIN"),
		RefreshTTLDays: mustInt("REFRESH_TOKEN_TTL_DAYS"),
		BcryptCost:     mustInt("BCRYPT_COST"),

		GeocoderProvider: envOr("GEOCODER_PROVIDER", "nominatim"),
		GeocoderAPIKey:   os.Getenv("GEOCODER_API_KEY"),

		StorageBucket:    must("STORAGE_BUCKET"),
		StorageRegion:    envOr("STORAGE_REGION", "us-east-1"),
		StorageAccessKey: must("STORAGE_ACCESS_KEY"),
		StorageSecretKey: must("STORAGE_SECRET_KEY"),
		StorageEndpoint:  os.Getenv("STORAGE_ENDPOINT"),
		StoragePublicURL: os.Getenv("STORAGE_PUBLIC_URL"),
	}
}

// must retrieves the value of a required environment variable.  If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// mustInt is like must() but converts the retrieved string into an integer.
// If conversion fails, the application logs a fatal error and exits.
func mustInt(key string) int {
	s := must(key)
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, s)
	}
	return n
}

// envOr returns the value of an optional environment variable, falling
// back to the given default when unset or empty.
func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
