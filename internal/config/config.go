package config

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	envPath  = ".env"
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"
)

// Backend names accepted in BACKEND.
const (
	BackendFile     = "file"
	BackendMemory   = "memory"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
)

type Config struct {
	Env    string
	Vault  vault
	DB     db
	Server server
	Logger logger
}

type vault struct {
	Name     string `env:"VAULT_NAME"`
	Location string `env:"VAULT_PATH"`
	Backend  string `env:"BACKEND"`
}

type db struct {
	DatabaseURI string `env:"DATABASE_URI"`
	Migrations  string `env:"MIGRATIONS_PATH"`
}

type server struct {
	RunAddress string `env:"RUN_ADDRESS"`
}

type logger struct {
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

// MustLoad reads the environment into a Config. A missing .env file is
// fine; the process environment still applies.
func MustLoad() *Config {
	if err := godotenv.Load(envPath); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	viper.AutomaticEnv()

	config := Config{
		Env: viper.GetString("app_env"),
		Vault: vault{
			Name:     viper.GetString("vault_name"),
			Location: viper.GetString("vault_path"),
			Backend:  viper.GetString("backend"),
		},
		DB: db{
			DatabaseURI: viper.GetString("database_uri"),
			Migrations:  viper.GetString("migrations_path"),
		},
		Server: server{RunAddress: viper.GetString("run_address")},
		Logger: logger{LogLevel: viper.GetString("log_level")},
	}

	if config.Vault.Backend == "" {
		config.Vault.Backend = BackendFile
	}
	if config.Server.RunAddress == "" {
		config.Server.RunAddress = ":8080"
	}

	return &config
}
