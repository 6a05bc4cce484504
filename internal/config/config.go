// internal/config/config.go
package config

import (
	"log"

	"github.com/spf13/viper"
)

type ServerConfig struct {
	Port string `mapstructure:"port"`
}

type DatabaseConfig struct {
	URL string `mapstructure:"url"`
}

type CacheConfig struct {
	URL string `mapstructure:"url"` // Redis接続URL (ローカル下書きスロット・クイズセッション用)
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type CORSConfig struct {
	AllowedOrigins   []string `mapstructure:"allowed_origins"`
	AllowedMethods   []string `mapstructure:"allowed_methods"`
	AllowedHeaders   []string `mapstructure:"allowed_headers"`
	ExposedHeaders   []string `mapstructure:"exposed_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
	MaxAge           int      `mapstructure:"max_age"`
}

type JWTConfig struct {
	SecretKey        string `mapstructure:"secret_key"`
	ExpiresInMinutes int    `mapstructure:"expires_in_minutes"`
}

type SESConfig struct {
	Region          string `mapstructure:"region"`
	AuthType        string `mapstructure:"auth_type"` // "static_credentials" or "iam_role"
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	SenderEmail     string `mapstructure:"sender_email"`
	FrontendURL     string `mapstructure:"frontend_url"` // メール内リンクの生成用
}

type AuthConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// DraftConfig は下書き自動保存の挙動設定です
type DraftConfig struct {
	DebounceMs    int `mapstructure:"debounce_ms"`     // リモートupsertの静止期間
	LocalTTLHours int `mapstructure:"local_ttl_hours"` // 端末スロットの有効期限
}

// SyncConfig はレッスンツリー保存 (差分同期) の挙動設定です
type SyncConfig struct {
	SaveTimeoutSeconds int `mapstructure:"save_timeout_seconds"`
}

// DashboardStat は管理ダッシュボードに出す静的な統計値です。
// ライブな状態ではなく起動時に注入される表示用データ。
type DashboardStat struct {
	Label string  `mapstructure:"label" json:"label"`
	Value float64 `mapstructure:"value" json:"value"`
}

type AppConfig struct {
	AdminDeleteSecret string          `mapstructure:"admin_delete_secret"`
	CatalogPageSize   int             `mapstructure:"catalog_page_size"`
	DashboardStats    []DashboardStat `mapstructure:"dashboard_stats"`
}

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Cache    CacheConfig    `mapstructure:"cache"`
	Log      LogConfig      `mapstructure:"log"`
	CORS     CORSConfig     `mapstructure:"cors"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	SES      SESConfig      `mapstructure:"ses"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Draft    DraftConfig    `mapstructure:"draft"`
	Sync     SyncConfig     `mapstructure:"sync"`
	App      AppConfig      `mapstructure:"app"`
}

var Cfg Config

func LoadConfig(path string) error {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(path)
	viper.AddConfigPath(".")

	// 環境変数 (例: APP_DATABASE_URL) でも上書き可能にする
	viper.SetEnvPrefix("APP")
	viper.AutomaticEnv()
	viper.BindEnv("database.url", "APP_DATABASE_URL")
	viper.BindEnv("cache.url", "APP_CACHE_URL")
	viper.BindEnv("jwt.secret_key", "APP_JWT_SECRET_KEY")
	viper.BindEnv("app.admin_delete_secret", "APP_ADMIN_DELETE_SECRET")
	viper.BindEnv("auth.enabled", "AUTH_ENABLED")

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
		Cfg.Server.Port = DefaultServerPort
	}
	if Cfg.Log.Level == "" {
		Cfg.Log.Level = DefaultLogLevel
	}
	if Cfg.JWT.ExpiresInMinutes <= 0 {
		Cfg.JWT.ExpiresInMinutes = DefaultJWTExpiresInMinutes
	}
	if Cfg.Draft.DebounceMs <= 0 {
		Cfg.Draft.DebounceMs = DefaultDraftDebounceMs
	}
	if Cfg.Draft.LocalTTLHours <= 0 {
		Cfg.Draft.LocalTTLHours = DefaultDraftLocalTTLHours
	}
	if Cfg.Sync.SaveTimeoutSeconds <= 0 {
		Cfg.Sync.SaveTimeoutSeconds = DefaultSyncSaveTimeoutSeconds
	}
	if Cfg.App.CatalogPageSize <= 0 {
		Cfg.App.CatalogPageSize = DefaultCatalogPageSize
	}
	if Cfg.Database.URL == "" {
		log.Println("Warning: Database URL is not set in config.")
	}
	if !viper.IsSet("auth.enabled") {
		Cfg.Auth.Enabled = true
	}

	log.Println("Config loaded successfully")
	log.Printf("Server Port: %s", Cfg.Server.Port)
	log.Printf("Auth Enabled: %t", Cfg.Auth.Enabled)

	return nil
}
