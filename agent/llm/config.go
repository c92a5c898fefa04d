package llm

import (
	"fmt"
	"strings"
	"time"

	contractx "github.com/watcharap/Careline-Multi-Agent-Customer-Care/agent/contract"
	openrouterx "github.com/watcharap/Careline-Multi-Agent-Customer-Care/pkg/openrouter"
)

// Config holds the generative model settings. The key is optional: without
// one the system runs fully deterministic and specialists ship their drafts
// unpolished.
type Config struct {
	BaseURL            string        `envconfig:"BASE_URL" split_words:"true" default:"https://openrouter.ai/api/v1"`
	APIKey             string        `envconfig:"API_KEY" split_words:"true"`
	Model              string        `envconfig:"MODEL" split_words:"true" default:"openai/gpt-4o-mini"`
	MaxCompletionToken int           `envconfig:"MAX_COMPLETION_TOKEN" split_words:"true" default:"2000"`
	Temperature        float32       `envconfig:"TEMPERATURE" split_words:"true" default:"0.5"`
	Timeout            time.Duration `envconfig:"TIMEOUT" split_words:"true" default:"30s"`
	SiteURL            string        `envconfig:"SITE_URL" split_words:"true"`
	SiteName           string        `envconfig:"SITE_NAME" split_words:"true"`

	SynthesisModel       string  `envconfig:"SYNTHESIS_MODEL" split_words:"true"`
	SynthesisTemperature float32 `envconfig:"SYNTHESIS_TEMPERATURE" split_words:"true" default:"-1"`
}

// Enabled reports whether a model can actually be reached.
func (c Config) Enabled() bool {
	return strings.TrimSpace(c.APIKey) != ""
}

func (c Config) Validate() error {
	if !c.Enabled() {
		return nil
	}
	if strings.TrimSpace(c.Model) == "" {
		return fmt.Errorf("%w: model name is required when an api key is set", contractx.ErrValidation)
	}
	return nil
}

// OpenRouter maps the config onto the provider client settings.
func (c Config) OpenRouter() openrouterx.Config {
	maxCompletionToken := c.MaxCompletionToken
	return openrouterx.Config{
		BaseURL:            strings.TrimSpace(c.BaseURL),
		APIKey:             strings.TrimSpace(c.APIKey),
		Model:              strings.TrimSpace(c.Model),
		MaxCompletionToken: &maxCompletionToken,
		Temperature:        c.Temperature,
		Timeout:            c.Timeout,
		SiteURL:            strings.TrimSpace(c.SiteURL),
		SiteName:           strings.TrimSpace(c.SiteName),
	}
}

// OpenRouterForSynthesis applies the synthesis overrides when set.
func (c Config) OpenRouterForSynthesis() openrouterx.Config {
	conf := c.OpenRouter()
	if v := strings.TrimSpace(c.SynthesisModel); v != "" {
		conf.Model = v
	}
	if c.SynthesisTemperature >= 0 {
		conf.Temperature = c.SynthesisTemperature
	}
	return conf
}
