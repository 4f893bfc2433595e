package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Logger   LoggerConfig
	Provider ProviderConfig
	Quiz     QuizConfig
	Client   ClientConfig
	Telegram TelegramConfig
}

type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
	BodyLimit    int
}

type LoggerConfig struct {
	Level  string
	Env    string
	Output string
}

// ProviderConfig describes the OpenAI-compatible model gateway.
type ProviderConfig struct {
	BaseURL     string
	APIKey      string
	Model       string
	Temperature float64
	Timeout     time.Duration
}

type QuizConfig struct {
	MaxTopicLength int
}

// ClientConfig is used by front ends talking to the generation service over HTTP.
type ClientConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

type TelegramConfig struct {
	BotToken string
	Debug    bool
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8090)
	v.SetDefault("server.read_timeout", "60s")
	v.SetDefault("server.write_timeout", "60s")
	v.SetDefault("server.idle_timeout", "60s")
	v.SetDefault("server.body_limit", 1024*1024)

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.env", "development")
	v.SetDefault("logger.output", "stdout")

	v.SetDefault("provider.base_url", "https://ai.gateway.lovable.dev/v1")
	v.SetDefault("provider.model", "google/gemini-2.5-flash")
	v.SetDefault("provider.temperature", 0.7)
	v.SetDefault("provider.timeout", "0s")

	v.SetDefault("quiz.max_topic_length", 200)

	v.SetDefault("client.base_url", "http://localhost:8090/api")
	v.SetDefault("client.timeout", "60s")

	v.SetDefault("telegram.debug", false)
}

// LoadConfig reads config.yaml (optional), then environment variables.
// Keys map to env names by replacing "." with "_", e.g. PROVIDER_BASE_URL.
func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	if os.Getenv("ENV") == "test" {
		v.AddConfigPath("../../config")
		v.AddConfigPath("../../")
	} else {
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	setDefaults(v)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Legacy variable names still used by existing deployments.
	if err := v.BindEnv("provider.api_key", "PROVIDER_API_KEY", "LOVABLE_API_KEY"); err != nil {
		return nil, fmt.Errorf("failed to bind provider api key: %w", err)
	}
	if err := v.BindEnv("telegram.bot_token", "TELEGRAM_BOT_TOKEN", "BOT_TOKEN"); err != nil {
		return nil, fmt.Errorf("failed to bind telegram bot token: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if configFile := v.ConfigFileUsed(); configFile != "" {
		absPath, _ := filepath.Abs(configFile)
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", absPath)
	}

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:         v.GetInt("server.port"),
			ReadTimeout:  v.GetDuration("server.read_timeout"),
			WriteTimeout: v.GetDuration("server.write_timeout"),
			IdleTimeout:  v.GetDuration("server.idle_timeout"),
			BodyLimit:    v.GetInt("server.body_limit"),
		},
		Logger: LoggerConfig{
			Level:  v.GetString("logger.level"),
			Env:    v.GetString("logger.env"),
			Output: v.GetString("logger.output"),
		},
		Provider: ProviderConfig{
			BaseURL:     v.GetString("provider.base_url"),
			APIKey:      v.GetString("provider.api_key"),
			Model:       v.GetString("provider.model"),
			Temperature: v.GetFloat64("provider.temperature"),
			Timeout:     v.GetDuration("provider.timeout"),
		},
		Quiz: QuizConfig{
			MaxTopicLength: v.GetInt("quiz.max_topic_length"),
		},
		Client: ClientConfig{
			BaseURL: v.GetString("client.base_url"),
			APIKey:  v.GetString("client.api_key"),
			Timeout: v.GetDuration("client.timeout"),
		},
		Telegram: TelegramConfig{
			BotToken: v.GetString("telegram.bot_token"),
			Debug:    v.GetBool("telegram.debug"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that would otherwise fail later in confusing ways.
// A missing provider API key is not an error here: the service reports it per request.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server.port: %d", c.Server.Port)
	}
	if c.Provider.Temperature < 0 || c.Provider.Temperature > 2 {
		return fmt.Errorf("invalid provider.temperature: %v", c.Provider.Temperature)
	}
	if c.Quiz.MaxTopicLength <= 0 {
		return fmt.Errorf("invalid quiz.max_topic_length: %d", c.Quiz.MaxTopicLength)
	}
	return nil
}

// HasProviderCredential reports whether an API key for the model gateway is set.
func (c *Config) HasProviderCredential() bool {
	return strings.TrimSpace(c.Provider.APIKey) != ""
}
