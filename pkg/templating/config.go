package templating

// TemplateConfig holds all configuration options for the templating engine.
type TemplateConfig struct {
	// Language is the BCP 47 tag used for case mapping in title, upper and
	// lower, e.g. "en", "nl" or "tr".
	Language string `json:"language" yaml:"language" env:"LANGUAGE"`

	// Separator is placed between the two halves produced by the full function.
	Separator string `json:"separator" yaml:"separator" env:"SEPARATOR"`

	// MaxRepeat sets a hard upper limit on the count passed to repeat.
	MaxRepeat int `json:"max_repeat" yaml:"max_repeat" env:"MAX_REPEAT"`

	// MaxAttempts bounds the number of rejected candidates for each generator
	// call made from a template, so an impossible filter fails the render
	// instead of blocking it. Zero leaves the generators unbounded.
	MaxAttempts int `json:"max_attempts" yaml:"max_attempts" env:"MAX_ATTEMPTS"`
}

// DefaultConfig returns a TemplateConfig with safe default values.
func DefaultConfig() *TemplateConfig {
	return &TemplateConfig{
		Language:    "en",
		Separator:   " ",
		MaxRepeat:   100,
		MaxAttempts: 10_000,
	}
}
