package config

import (
	"errors"
	"fmt"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// ErrConfig configuración ausente o inválida. Siempre es fatal en el arranque.
var ErrConfig = errors.New("configuración inválida")

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
// Se carga una sola vez al arranque y no se modifica después.
type Config struct {
	App     AppConfig
	Mongo   MongoConfig
	JWT     JWTConfig
	HTTP    HTTPConfig
	Hashing HashingConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
}

// MongoConfig conexión al document store.
type MongoConfig struct {
	URL      string        // MONGODB_URL, obligatorio
	Database string        // MONGODB_DATABASE
	Timeout  time.Duration // tope por operación (STORE_TIMEOUT)
}

// JWTConfig configuración de JWT. El TTL es fijo (1h) y no se configura.
type JWTConfig struct {
	Secret string // SECRET_KEY, obligatorio; nunca se registra en logs
	Issuer string
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host string
	Port int
}

// HashingConfig límite de cálculos Argon2 simultáneos (cada uno reserva ~19 MiB).
type HashingConfig struct {
	Concurrency int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo)
// y valida las claves obligatorias. Las env vars tienen prioridad.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: archivo de configuración (.env o config.env)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := FromViper(v)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// FromViper construye la configuración aplicando valores por defecto.
func FromViper(v *viper.Viper) *Config {
	return &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "tienda-api"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		Mongo: MongoConfig{
			URL:      getString(v, "MONGODB_URL", ""),
			Database: getString(v, "MONGODB_DATABASE", "tienda"),
			Timeout:  getDuration(v, "STORE_TIMEOUT", 5*time.Second),
		},
		JWT: JWTConfig{
			Secret: getString(v, "SECRET_KEY", ""),
			Issuer: getString(v, "JWT_ISSUER", "tienda-api"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8000),
		},
		Hashing: HashingConfig{
			Concurrency: getInt(v, "HASH_CONCURRENCY", runtime.NumCPU()),
		},
	}
}

// Validate verifica las claves sin las cuales el proceso no debe arrancar.
func (c *Config) Validate() error {
	var missing []string
	if strings.TrimSpace(c.JWT.Secret) == "" {
		missing = append(missing, "SECRET_KEY")
	}
	if strings.TrimSpace(c.Mongo.URL) == "" {
		missing = append(missing, "MONGODB_URL")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: faltan %s", ErrConfig, strings.Join(missing, ", "))
	}
	if c.Mongo.Timeout <= 0 {
		return fmt.Errorf("%w: STORE_TIMEOUT debe ser positivo", ErrConfig)
	}
	if c.Hashing.Concurrency <= 0 {
		return fmt.Errorf("%w: HASH_CONCURRENCY debe ser positivo", ErrConfig)
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
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, err := strconv.Atoi(v.GetString(key))
			if err != nil {
				return def
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}

// getDuration acepta "5s", "750ms" o un entero en segundos.
func getDuration(v *viper.Viper, key string, def time.Duration) time.Duration {
	if !v.IsSet(key) {
		return def
	}
	raw := strings.TrimSpace(v.GetString(key))
	if n, err := strconv.Atoi(raw); err == nil {
		return time.Duration(n) * time.Second
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return def
	}
	return d
}
