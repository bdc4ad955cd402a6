package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config содержит всю конфигурацию приложения
type Config struct {
	Server   ServerConfig   // Настройки HTTP сервера
	Database DatabaseConfig // Настройки подключения к БД
	JWT      JWTConfig      // Настройки сессионных и ID токенов
	Web      WebConfig      // Настройки страниц хакатона
}

// ServerConfig содержит настройки HTTP сервера
type ServerConfig struct {
	Port string `envconfig:"SERVER_PORT" default:"8080"`
	Host string `envconfig:"SERVER_HOST" default:"0.0.0.0"`
}

// DatabaseConfig содержит настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" default:"hackathon"`
	Password string `envconfig:"DB_PASSWORD" default:"hackathon_pass"`
	Name     string `envconfig:"DB_NAME" default:"hackathon"`
	SSLMode  string `envconfig:"DB_SSLMODE" default:"disable"`
	MaxConns int32  `envconfig:"DB_MAX_CONNS" default:"25"`
	MinConns int32  `envconfig:"DB_MIN_CONNS" default:"5"`
	// Migrate применяет встроенные миграции при старте
	Migrate  bool   `envconfig:"DB_MIGRATE" default:"true"`
}

// JWTConfig содержит настройки подписи токенов
type JWTConfig struct {
	Secret         string `envconfig:"JWT_SECRET" required:"true"`
	SessionHours   int    `envconfig:"JWT_SESSION_HOURS" default:"24"`
	IDTokenMinutes int    `envconfig:"JWT_ID_TOKEN_MINUTES" default:"60"`
}

// WebConfig содержит настройки веб-страниц и клиента бэкенда
type WebConfig struct {
	// BackendURL базовый адрес API команд; пустое значение означает этот же сервер
	BackendURL        string        `envconfig:"WEB_BACKEND_URL"`
	BackendTimeout    time.Duration `envconfig:"WEB_BACKEND_TIMEOUT" default:"10s"`
	NavigationDelay   time.Duration `envconfig:"WEB_NAVIGATION_DELAY" default:"300ms"`
	SessionCookie     string        `envconfig:"WEB_SESSION_COOKIE" default:"hackathon_session"`
	CookieSecure      bool          `envconfig:"WEB_COOKIE_SECURE" default:"false"`
	AuthLookupTimeout time.Duration `envconfig:"WEB_AUTH_LOOKUP_TIMEOUT" default:"2s"`
}

// GetSessionExpiration возвращает срок действия сессии как time.Duration
func (j JWTConfig) GetSessionExpiration() time.Duration {
	return time.Duration(j.SessionHours) * time.Hour
}

// GetIDTokenExpiration возвращает срок действия ID токена как time.Duration
func (j JWTConfig) GetIDTokenExpiration() time.Duration {
	return time.Duration(j.IDTokenMinutes) * time.Minute
}

// DSN возвращает строку подключения к PostgreSQL
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// Addr возвращает адрес, на котором слушает HTTP сервер
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%s", s.Host, s.Port)
}

// ResolveBackendURL возвращает адрес API команд для веб-клиента.
// Если WEB_BACKEND_URL не задан, клиент ходит в этот же сервер через loopback.
func (c *Config) ResolveBackendURL() string {
	if c.Web.BackendURL != "" {
		return c.Web.BackendURL
	}
	host := c.Server.Host
	if host == "" || host == "0.0.0.0" {
		host = "127.0.0.1"
	}
	return fmt.Sprintf("http://%s:%s", host, c.Server.Port)
}

// Load читает конфигурацию из переменных окружения
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}
