package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config agrupa a configuração da aplicação lida do ambiente (e de um .env opcional).
type Config struct {
	App  AppConfig
	HTTP HTTPConfig
	DB   DBConfig
	JWT  JWTConfig
	// TempDir é onde ficam o template gerado e os uploads em processamento.
	TempDir string
}

type AppConfig struct {
	Env      string // development, production
	LogLevel string
}

type HTTPConfig struct {
	Port                 int
	CORSOrigens          []string
	LoginLimitePorMinuto int
}

// Addr devolve o endereço de escuta.
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// DBConfig configuração do banco. Driver "postgres" usa Host/Port/Name e credenciais
// (ou o segredo SecretID no AWS Secrets Manager); "sqlite" usa SQLitePath.
type DBConfig struct {
	Driver     string
	Host       string
	Port       int
	Name       string
	Username   string
	Password   string
	SecretID   string
	SSLDisable bool
	SQLitePath string
}

type JWTConfig struct {
	Secret    string
	Expiracao time.Duration
}

// Load lê .env (se existir) e as variáveis de ambiente, aplicando os valores padrão.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		HTTP: HTTPConfig{
			Port:                 getInt(v, "HTTP_PORT", 8080),
			CORSOrigens:          splitLista(getString(v, "CORS_ORIGENS", "*")),
			LoginLimitePorMinuto: getInt(v, "LOGIN_LIMITE_POR_MINUTO", 20),
		},
		DB: DBConfig{
			Driver:     strings.ToLower(getString(v, "DB_DRIVER", "postgres")),
			Host:       getString(v, "DB_HOST", "localhost"),
			Port:       getInt(v, "DB_PORT", 5432),
			Name:       getString(v, "DB_NAME", "vendas"),
			Username:   getString(v, "DB_USERNAME", ""),
			Password:   getString(v, "DB_PASSWORD", ""),
			SecretID:   getString(v, "DB_SECRET_ID", ""),
			SSLDisable: getString(v, "DB_SSL_MODE_DISABLE", "") == "true",
			SQLitePath: getString(v, "SQLITE_PATH", "app.db"),
		},
		JWT: JWTConfig{
			Secret:    getString(v, "JWT_SECRET", ""),
			Expiracao: time.Duration(getInt(v, "JWT_EXPIRACAO_HORAS", 24)) * time.Hour,
		},
		TempDir: getString(v, "TEMP_DIR", "temp"),
	}

	if err := cfg.Validar(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validar confere os campos sem os quais a API não sobe.
func (c *Config) Validar() error {
	if c.JWT.Secret == "" {
		return errors.New("JWT_SECRET não definida")
	}
	if c.JWT.Expiracao <= 0 {
		return errors.New("JWT_EXPIRACAO_HORAS deve ser maior que zero")
	}
	switch c.DB.Driver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("DB_DRIVER desconhecido: %q", c.DB.Driver)
	}
	return nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if !v.IsSet(key) {
		return def
	}
	n, err := strconv.Atoi(strings.TrimSpace(v.GetString(key)))
	if err != nil {
		return def
	}
	return n
}

func splitLista(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
