package config // package config loads application configuration from environment variables

import (
	"log"
	"os"
	"strconv"
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.  Secrets (JWT signing key, S3 credentials) are
// carried here explicitly and handed to the components that need them at
// construction time; nothing reads them as ambient state later.
type Config struct {
	Env           string // application environment (e.g. "dev", "prod")
	Port          string // HTTP port to listen on
	DBUser        string // database username
	DBPass        string // database password (optional)
	DBHost        string // database host address
	DBPort        string // database port number
	DBName        string // database name
	JWTSecret     string // secret used to sign bearer tokens
	BcryptCost    int    // bcrypt cost for password hashing
	S3Region      string // region of the media bucket
	S3Bucket      string // bucket receiving uploaded photos
	S3AccessKey   string // static S3 access key (optional, falls back to SDK defaults)
	S3SecretKey   string // static S3 secret key
	S3Endpoint    string // custom S3 endpoint for MinIO-style deployments (optional)
	S3PublicBase  string // CDN-style base URL for stored objects (optional)
	UploadDir     string // local directory keeping a fallback copy of uploads
	PublicBaseURL string // base URL under which /uploads is reachable
	FrontendURL   string // allowed CORS origin for the browser client
}

// Load reads configuration values from environment variables and returns a
// Config.  Required variables are enforced by must() and missing values
// cause the program to exit with a fatal log message; everything else has a
// development-friendly default.
func Load() Config {
	return Config{
		Env:           getenv("APP_ENV", "dev"),
		Port:          getenv("APP_PORT", "4000"),
		DBUser:        must("DB_USER"),
		DBPass:        os.Getenv("DB_PASS"),
		DBHost:        must("DB_HOST"),
		DBPort:        must("DB_PORT"),
		DBName:        must("DB_NAME"),
		JWTSecret:     must("JWT_SECRET"),
		BcryptCost:    envInt("BCRYPT_COST", 10),
		S3Region:      getenv("S3_REGION", "us-east-1"),
		S3Bucket:      getenv("S3_BUCKET", "booking-app-media"),
		S3AccessKey:   os.Getenv("S3_ACCESS_KEY"),
		S3SecretKey:   os.Getenv("S3_SECRET_ACCESS_KEY"),
		S3Endpoint:    os.Getenv("S3_ENDPOINT"),
		S3PublicBase:  os.Getenv("S3_PUBLIC_BASE"),
		UploadDir:     getenv("UPLOAD_DIR", "uploads"),
		PublicBaseURL: getenv("PUBLIC_BASE_URL", "http://localhost:4000"),
		FrontendURL:   getenv("FRONTEND_URL", "http://localhost:5173"),
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

func envInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, v)
	}
	return n
}
