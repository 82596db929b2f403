package cli

import (
	"errors"
	"fmt"

	"github.com/felixgeelhaar/hashdraft/pkg/domain/ai"
	"github.com/felixgeelhaar/hashdraft/pkg/domain/draft"
)

// CLIError wraps domain errors with user-facing messages and actionable hints.
type CLIError struct {
	Message  string
	Hint     string
	Err      error
	ExitCode int
}

func (e *CLIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *CLIError) Unwrap() error {
	return e.Err
}

// NewCLIError creates a CLIError with a default exit code of 1.
func NewCLIError(msg, hint string, err error) *CLIError {
	return &CLIError{
		Message:  msg,
		Hint:     hint,
		Err:      err,
		ExitCode: 1,
	}
}

// MapError converts known domain errors into CLIErrors with actionable hints.
// Unmapped errors are returned as-is.
func MapError(err error) error {
	if err == nil {
		return nil
	}

	var cliErr *CLIError
	if errors.As(err, &cliErr) {
		return err
	}

	if errors.Is(err, draft.ErrDraftInFlight) {
		return NewCLIError("a draft is already running", "Wait for the current draft to finish", err)
	}

	var aiErr *ai.Error
	if !errors.As(err, &aiErr) {
		return err
	}

	switch aiErr.Kind {
	case ai.KindMissingCredential:
		e := NewCLIError("no API credential configured", "Set OPENAI_API_KEY or add openai_api to secrets.yaml", err)
		e.ExitCode = 2
		return e
	case ai.KindTransportFailure:
		return NewCLIError("could not reach the completion service", "Check your network connection and the configured endpoint", err)
	case ai.KindProviderRejected:
		if aiErr.StatusCode == 401 || aiErr.StatusCode == 403 {
			return NewCLIError("the completion service rejected the credential", "Check the API key in secrets.yaml or OPENAI_API_KEY", err)
		}
		return NewCLIError("the completion service rejected the request", "Retry later or raise max_retries in hashdraft.yaml", err)
	case ai.KindEmptyResponseBody, ai.KindMalformedResponseBody, ai.KindUnexpectedResponseShape:
		return NewCLIError("the completion service returned an unusable response", "Check that endpoint points at a text-completion API", err)
	}

	return err
}
