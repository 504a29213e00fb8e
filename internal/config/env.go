package config

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Env struct {
	AppAddr string
	GinMode string

	DBUser string
	DBPass string
	DBHost string
	DBName string

	// JWTSecret signs the QR token claims.
	JWTSecret string

	// PoliceSecret is the shared secret expected in x-police-auth.
	// PoliceSecretHash, when set, takes precedence and is compared with
	// bcrypt so the plaintext never has to live in the environment.
	PoliceSecret     string
	PoliceSecretHash string

	GeocoderBaseURL string
	CORSOrigins     []string
}

func LoadEnv() Env {
	// .env is optional; real deployments set the environment directly.
	if err := godotenv.Load(); err == nil {
		log.Println("loaded configuration from .env")
	}

	env := Env{
		AppAddr:          getenv("APP_ADDR", ":8080"),
		GinMode:          getenv("GIN_MODE", ""),
		DBUser:           getenv("DB_USER", "root"),
		DBPass:           getenv("DB_PASS", ""),
		DBHost:           getenv("DB_HOST", "127.0.0.1:3306"),
		DBName:           getenv("DB_NAME", "gatepass"),
		JWTSecret:        getenv("JWT_SECRET", "gatepass-dev-secret-change-me"),
		PoliceSecret:     getenv("POLICE_AUTH_SECRET", ""),
		PoliceSecretHash: getenv("POLICE_AUTH_SECRET_HASH", ""),
		GeocoderBaseURL:  getenv("GEOCODER_BASE_URL", "https://nominatim.openstreetmap.org"),
	}

	if raw := getenv("CORS_ALLOWED_ORIGINS", ""); raw != "" {
		for _, o := range strings.Split(raw, ",") {
			if o = strings.TrimSpace(o); o != "" {
				env.CORSOrigins = append(env.CORSOrigins, o)
			}
		}
	}

	return env
}

func getenv(key, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	return v
}
