// Package config resolves runtime settings from defaults, an optional
// config.yaml, a .env file and process environment, in that order.
package config

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Cloudinary CloudinaryConfig `mapstructure:"cloudinary"`
	Telegram   TelegramConfig   `mapstructure:"telegram"`
	App        AppConfig        `mapstructure:"app"`
}

// CloudinaryConfig holds the upload target credentials. All three secrets
// must be present before an upload is attempted.
type CloudinaryConfig struct {
	CloudName      string `mapstructure:"cloud_name"`
	APIKey         string `mapstructure:"api_key"`
	APISecret      string `mapstructure:"api_secret"`
	UploadFolder   string `mapstructure:"upload_folder"`
	RequestTimeout int    `mapstructure:"request_timeout"`
	MaxRetries     int    `mapstructure:"max_retries"`
}

// TelegramConfig holds the optional photo delivery target.
type TelegramConfig struct {
	BotToken string `mapstructure:"bot_token"`
	ChatID   int64  `mapstructure:"chat_id"`
}

type AppConfig struct {
	MaxResponseSize int64 `mapstructure:"max_response_size"`
}

// LoadConfig resolves the configuration. Missing config.yaml and .env files
// are not errors; commands validate the pieces they actually need.
func LoadConfig() (*Config, error) {
	godotenv.Load(".env")

	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.ReadInConfig()

	// .env values reach viper through the process environment: godotenv has
	// already exported them (without overriding real env vars), and the
	// BindEnv aliases below pick them up. Reading .env as a second config
	// file would replace the config.yaml settings instead of layering.
	v.AutomaticEnv()
	setupEnvAliases(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}

func setupEnvAliases(v *viper.Viper) {
	// The Cloudinary names match what the upstream bot exports.
	v.BindEnv("cloudinary.cloud_name", "CLOUDINARY_CLOUD_NAME")
	v.BindEnv("cloudinary.api_key", "CLOUDINARY_API_KEY")
	v.BindEnv("cloudinary.api_secret", "CLOUDINARY_API_SECRET")
	v.BindEnv("cloudinary.upload_folder", "REPORTS_UPLOAD_FOLDER")
	v.BindEnv("cloudinary.request_timeout", "REPORTS_UPLOAD_TIMEOUT")
	v.BindEnv("cloudinary.max_retries", "REPORTS_UPLOAD_MAX_RETRIES")

	v.BindEnv("telegram.bot_token", "TELEGRAM_BOT_TOKEN")
	v.BindEnv("telegram.chat_id", "TELEGRAM_CHAT_ID")

	v.BindEnv("app.max_response_size", "REPORTS_MAX_RESPONSE_SIZE")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("cloudinary.cloud_name", "")
	v.SetDefault("cloudinary.api_key", "")
	v.SetDefault("cloudinary.api_secret", "")
	v.SetDefault("cloudinary.upload_folder", "whatsapp_reports")
	v.SetDefault("cloudinary.request_timeout", 30)
	v.SetDefault("cloudinary.max_retries", 3)

	v.SetDefault("telegram.bot_token", "")
	v.SetDefault("telegram.chat_id", 0)

	v.SetDefault("app.max_response_size", 10*1024*1024) // 10MB
}

// ValidateUpload checks the pieces an upload run needs.
func (c *Config) ValidateUpload() error {
	if c.Cloudinary.CloudName == "" || c.Cloudinary.APIKey == "" || c.Cloudinary.APISecret == "" {
		return fmt.Errorf("upload requires CLOUDINARY_CLOUD_NAME, CLOUDINARY_API_KEY and CLOUDINARY_API_SECRET")
	}
	return nil
}

// ValidateTelegram checks the pieces a telegram delivery run needs.
func (c *Config) ValidateTelegram() error {
	if c.Telegram.BotToken == "" || c.Telegram.ChatID == 0 {
		return fmt.Errorf("telegram delivery requires TELEGRAM_BOT_TOKEN and TELEGRAM_CHAT_ID")
	}
	return nil
}
