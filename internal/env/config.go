package env

import (
	"context"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Host       string        `env:"VARNISH_HOST,default=localhost"`
	Port       int           `env:"VARNISH_PORT,default=6082"`
	SecretFile string        `env:"VARNISH_SECRET_FILE"`
	Timeout    time.Duration `env:"VARNISH_TIMEOUT,default=5s"`
	Debug      bool          `env:"VARNISH_DEBUG"`
}

func LoadConfig(ctx context.Context) (*Config, error) {
	config := Config{}

	if err := godotenv.Load(".env.local"); err != nil {
		if !os.IsNotExist(err) {
			panic(err)
		}
	}

	if err := envconfig.Process(ctx, &config); err != nil {
		return nil, err
	}

	return &config, nil
}
