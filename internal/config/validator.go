package config

import (
	"fmt"
	"strings"

	"github.com/kpauljoseph/ankigen/internal/prompt"
)

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate reports every configuration problem at once so a run never
// fails halfway through on something that was knowable at startup.
func (c *Config) Validate() []ValidationError {
	var errors []ValidationError

	if c.OpenAI.APIKey == "" {
		errors = append(errors, ValidationError{
			Field:   "openai.api_key",
			Message: "OpenAI API key is required (flag, config file, or OPENAI_API_KEY)",
		})
	}

	if c.OpenAI.OrganizationID == "" {
		errors = append(errors, ValidationError{
			Field:   "openai.organization_id",
			Message: "OpenAI organization ID is required (flag, config file, or OPENAI_ORG_ID)",
		})
	}

	if c.MaxWords < 1 {
		errors = append(errors, ValidationError{
			Field:   "max_words",
			Message: "max_words must be positive",
		})
	}

	if c.TimeoutSeconds < 1 {
		errors = append(errors, ValidationError{
			Field:   "timeout_seconds",
			Message: "timeout_seconds must be positive",
		})
	}

	// A template without the marker would silently drop the document
	// text from the request.
	if !strings.Contains(c.PromptTemplate, prompt.Marker) {
		errors = append(errors, ValidationError{
			Field:   "prompt_template",
			Message: fmt.Sprintf("template must contain the %q substitution marker", prompt.Marker),
		})
	}

	return errors
}
