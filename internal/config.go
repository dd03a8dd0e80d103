package internal

import (
	"fmt"

	"time"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Config holds the whole run configuration, loaded from environment
// variables by main. Everything is validated eagerly, before any network
// activity begins.
type Config struct {
	BaseURL string `env:"LLM_BASE_URL,required=true" validate:"required,url"`
	Topic   string `env:"DIALOGUE_TOPIC,required=true" validate:"required"`

	Rounds              int           `env:"DIALOGUE_ROUNDS,default=6" validate:"gt=0"`
	CommentaryFrequency int           `env:"COMMENTARY_FREQUENCY,default=2" validate:"gt=0"`
	Temperature         float64       `env:"TEMPERATURE,default=0.7" validate:"gte=0,lte=2"`
	MaxTokens           int           `env:"MAX_TOKENS,default=500" validate:"gt=0"`
	PacingDelay         time.Duration `env:"PACING_DELAY,default=1s"`
	CallTimeout         time.Duration `env:"CALL_TIMEOUT,default=2m"`
	SinkTimeout         time.Duration `env:"SINK_TIMEOUT,default=2s"`
	HeartbeatInterval   time.Duration `env:"HEARTBEAT_INTERVAL,default=5s"`

	LogLevel         string `env:"LOG_LEVEL,default=INFO"`
	Colours          bool   `env:"COLOURS,default=true"`
	EnableModeration bool   `env:"ENABLE_MODERATION,default=false"`
	CharReplacement  string `env:"CHARACTER_REPLACEMENT,default=*"`

	ModelAName   string `env:"MODEL_A_NAME,default=Philosopher"`
	ModelAID     string `env:"MODEL_A_ID,required=true" validate:"required"`
	ModelAPrompt string `env:"MODEL_A_SYSTEM_PROMPT"`

	ModelBName   string `env:"MODEL_B_NAME,default=Analyst"`
	ModelBID     string `env:"MODEL_B_ID,required=true" validate:"required"`
	ModelBPrompt string `env:"MODEL_B_SYSTEM_PROMPT"`

	CommentatorName   string `env:"COMMENTATOR_NAME,default=Observer"`
	CommentatorID     string `env:"COMMENTATOR_ID,required=true" validate:"required"`
	CommentatorPrompt string `env:"COMMENTATOR_SYSTEM_PROMPT"`
}

func (c Config) Validate() error {
	return validate.Struct(c)
}

// CharacterRune enforces that the masking replacement is a single character.
func CharacterRune(str string) (rune, error) {
	r := []rune(str)
	if len(r) != 1 {
		return 0, fmt.Errorf(
			"CHARACTER_REPLACEMENT must be a single character, got %q",
			str,
		)
	}
	return r[0], nil
}
