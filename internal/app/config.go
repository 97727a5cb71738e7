package app

import (
	"github.com/studyweave/studyweave-backend/internal/platform/envutil"
)

type Config struct {
	JWTSecretKey string
	ListenAddr   string
}

func LoadConfig() Config {
	return Config{
		JWTSecretKey: envutil.Str("JWT_SECRET_KEY", "defaultsecret"),
		ListenAddr:   envutil.Str("LISTEN_ADDR", ":8080"),
	}
}
