package config

import (
	"fmt"
	"strings"
	"time"

	"quickestimate/internal/domain/entities"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/shopspring/decimal"
)

// Config is built once at start-up and handed to the router explicitly.
type Config struct {
	HTTP     HTTPConfig
	OpenAI   OpenAIConfig
	CORS     CORSConfig
	Company  entities.CompanyProfile
	Estimate EstimateConfig
}

type HTTPConfig struct {
	Port         string        `env:"HTTP_PORT" env-default:"8080"`
	ReadTimeout  time.Duration `env:"HTTP_READ_TIMEOUT" env-default:"15s"`
	WriteTimeout time.Duration `env:"HTTP_WRITE_TIMEOUT" env-default:"90s"`
	IdleTimeout  time.Duration `env:"HTTP_IDLE_TIMEOUT" env-default:"60s"`
}

type OpenAIConfig struct {
	APIKey             string        `env:"OPENAI_API_KEY" env-required:"true"`
	BaseURL            string        `env:"OPENAI_BASE_URL" env-default:""`
	TranscriptionModel string        `env:"OPENAI_TRANSCRIPTION_MODEL" env-default:"whisper-1"`
	ExtractionModel    string        `env:"OPENAI_EXTRACTION_MODEL" env-default:"gpt-3.5-turbo"`
	Timeout            time.Duration `env:"OPENAI_TIMEOUT" env-default:"60s"`
}

type CORSConfig struct {
	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" env-separator:"," env-default:"https://quickestimate.site,*"`
}

// AllowsAnyOrigin reports whether the wildcard origin is configured.
func (c CORSConfig) AllowsAnyOrigin() bool {
	for _, o := range c.AllowedOrigins {
		if strings.TrimSpace(o) == "*" {
			return true
		}
	}
	return false
}

type EstimateConfig struct {
	TaxRate       decimal.Decimal
	MaxAudioBytes int64
}

type companyEnv struct {
	Name    string `env:"COMPANY_NAME" env-default:"E & A"`
	Address string `env:"COMPANY_ADDRESS" env-default:"123 Business St, Business City, 12345"`
	Phone   string `env:"COMPANY_PHONE" env-default:"(123) 456-7890"`
	Email   string `env:"COMPANY_EMAIL" env-default:"info@tradesmate.com"`
}

type estimateEnv struct {
	TaxRate       string `env:"TAX_RATE" env-default:"0.10"`
	MaxAudioBytes int64  `env:"MAX_AUDIO_BYTES" env-default:"26214400"`
}

type environment struct {
	HTTP     HTTPConfig
	OpenAI   OpenAIConfig
	CORS     CORSConfig
	Company  companyEnv
	Estimate estimateEnv
}

// Load reads the process environment. A missing OPENAI_API_KEY is an error.
func Load() (Config, error) {
	var env environment
	if err := cleanenv.ReadEnv(&env); err != nil {
		return Config{}, fmt.Errorf("read env: %w", err)
	}
	if strings.TrimSpace(env.OpenAI.APIKey) == "" {
		return Config{}, fmt.Errorf("OPENAI_API_KEY not configured")
	}

	rate, err := decimal.NewFromString(strings.TrimSpace(env.Estimate.TaxRate))
	if err != nil {
		return Config{}, fmt.Errorf("TAX_RATE: %w", err)
	}
	if rate.IsNegative() || rate.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return Config{}, fmt.Errorf("TAX_RATE must be in [0, 1), got %s", rate)
	}
	if env.Estimate.MaxAudioBytes <= 0 {
		return Config{}, fmt.Errorf("MAX_AUDIO_BYTES must be positive, got %d", env.Estimate.MaxAudioBytes)
	}

	return Config{
		HTTP:   env.HTTP,
		OpenAI: env.OpenAI,
		CORS:   env.CORS,
		Company: entities.CompanyProfile{
			Name:    env.Company.Name,
			Address: env.Company.Address,
			Phone:   env.Company.Phone,
			Email:   env.Company.Email,
		},
		Estimate: EstimateConfig{
			TaxRate:       rate,
			MaxAudioBytes: env.Estimate.MaxAudioBytes,
		},
	}, nil
}
