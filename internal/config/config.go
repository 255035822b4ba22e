package config

import (
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds all runtime settings, populated from the environment.
type Config struct {
	HTTPAddr  string `env:"HTTP_ADDR" env-default:":8080"`
	StaticDir string `env:"STATIC_DIR" env-default:"./static"`

	DBDriver string `env:"DB_DRIVER" env-default:"sqlite3"`
	DBConn   string `env:"DB_CONN" env-default:"./popdict.db"`

	GeminiAPIKey string `env:"GEMINI_API_KEY"`
	TextModel    string `env:"GEMINI_TEXT_MODEL"`
	ImageModel   string `env:"GEMINI_IMAGE_MODEL"`
	TTSModel     string `env:"GEMINI_TTS_MODEL"`
	Voice        string `env:"GEMINI_TTS_VOICE"`

	NativeLanguage string `env:"NATIVE_LANGUAGE" env-default:"Mandarin Chinese"`
	TargetLanguage string `env:"TARGET_LANGUAGE" env-default:"English"`

	// MaxImageEdge bounds stored illustration size in pixels; 0 disables
	// shrinking.
	MaxImageEdge int `env:"MAX_IMAGE_EDGE" env-default:"512"`

	LogLevel  string `env:"LOG_LEVEL" env-default:"info"`
	LogFormat string `env:"LOG_FORMAT" env-default:"text"`
}

// Load reads the configuration from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	return cfg, nil
}
