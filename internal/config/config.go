// internal/config/config.go
package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server struct {
		Port string `mapstructure:"port"`
	} `mapstructure:"server"`
	Database struct {
		URL string `mapstructure:"url"`
	} `mapstructure:"database"`
	Mongo struct {
		URI      string `mapstructure:"uri"`
		Database string `mapstructure:"database"`
	} `mapstructure:"mongo"`
	Redis struct {
		Addr string `mapstructure:"addr"`
	} `mapstructure:"redis"`
	Auth struct {
		SessionSecret     string `mapstructure:"session_secret"`
		SessionTTLMinutes int    `mapstructure:"session_ttl_minutes"`
		IDTokenTTLMinutes int    `mapstructure:"id_token_ttl_minutes"`
		CookieName        string `mapstructure:"cookie_name"`
		CookieSecure      bool   `mapstructure:"cookie_secure"`
	} `mapstructure:"auth"`
	Draft struct {
		TTLMinutes int `mapstructure:"ttl_minutes"`
	} `mapstructure:"draft"`
	CORS struct {
		AllowedOrigins   []string `mapstructure:"allowed_origins"`
		AllowedMethods   []string `mapstructure:"allowed_methods"`
		AllowedHeaders   []string `mapstructure:"allowed_headers"`
		ExposedHeaders   []string `mapstructure:"exposed_headers"`
		AllowCredentials bool     `mapstructure:"allow_credentials"`
		MaxAge           int      `mapstructure:"max_age"`
	} `mapstructure:"cors"`
	Log struct {
		Level string `mapstructure:"level"`
	} `mapstructure:"log"`
}

var Cfg Config

// SessionTTL はセッショントークンの有効期間を返します
func (c *Config) SessionTTL() time.Duration {
	return time.Duration(c.Auth.SessionTTLMinutes) * time.Minute
}

// IDTokenTTL はIDトークンの有効期間を返します
func (c *Config) IDTokenTTL() time.Duration {
	return time.Duration(c.Auth.IDTokenTTLMinutes) * time.Minute
}

// DraftTTL は編集中ドラフトの保持期間を返します
func (c *Config) DraftTTL() time.Duration {
	return time.Duration(c.Draft.TTLMinutes) * time.Minute
}

func LoadConfig(path string) error {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(path)
	viper.AddConfigPath(".")

	// 環境変数でも上書きできるようにする (例: APP_AUTH_SESSION_SECRET)
	viper.SetEnvPrefix("APP")
	viper.AutomaticEnv()
	viper.BindEnv("database.url", "DATABASE_URL")
	viper.BindEnv("mongo.uri", "MONGO_URI")
	viper.BindEnv("redis.addr", "REDIS_ADDR")
	viper.BindEnv("auth.session_secret", "SESSION_SECRET")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Println("Warning: Config file not found. Using default settings or environment variables if available.")
		} else {
			log.Printf("Error reading config file: %s\n", err)
			return err
		}
	}

	if err := viper.Unmarshal(&Cfg); err != nil {
		log.Printf("Error unmarshalling config: %s\n", err)
		return err
	}

	// --- デフォルト値の設定 ---
	if Cfg.Server.Port == "" {
		log.Printf("Server port not set, using default '%s'", DefaultServerPort)
		Cfg.Server.Port = DefaultServerPort
	}
	if Cfg.Auth.SessionTTLMinutes <= 0 {
		Cfg.Auth.SessionTTLMinutes = DefaultSessionTTLMinutes
	}
	if Cfg.Auth.IDTokenTTLMinutes <= 0 {
		Cfg.Auth.IDTokenTTLMinutes = DefaultIDTokenTTLMinutes
	}
	if Cfg.Auth.CookieName == "" {
		Cfg.Auth.CookieName = DefaultSessionCookieName
	}
	if Cfg.Draft.TTLMinutes <= 0 {
		Cfg.Draft.TTLMinutes = DefaultDraftTTLMinutes
	}
	if Cfg.Mongo.Database == "" {
		Cfg.Mongo.Database = DefaultMongoDatabase
	}
	if Cfg.Database.URL == "" {
		log.Println("Warning: Database URL is not set in config.")
	}
	if Cfg.Auth.SessionSecret == "" {
		log.Println("Warning: Session secret is not set in config. Sessions cannot be issued without it.")
	}

	log.Println("Config loaded successfully")
	log.Printf("Server Port: %s", Cfg.Server.Port)
	log.Printf("Session TTL: %d minutes", Cfg.Auth.SessionTTLMinutes)
	log.Printf("Draft TTL: %d minutes", Cfg.Draft.TTLMinutes)

	return nil
}
