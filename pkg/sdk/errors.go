package sdk

import (
	"errors"
	"fmt"
)

// ErrNoContent is returned when a tool result contains no content items.
var ErrNoContent = errors.New("hashdraft: empty tool result")

// ErrEmptyPrompt is returned before any call when the prompt has no hashtags.
var ErrEmptyPrompt = errors.New("hashdraft: prompt is empty")

// ToolError carries the message of an error tool result.
type ToolError struct {
	Tool    string
	Message string
}

func (e *ToolError) Error() string {
	return fmt.Sprintf("hashdraft: tool %s: %s", e.Tool, e.Message)
}
