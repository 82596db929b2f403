package draft

import (
	"time"

	"github.com/felixgeelhaar/hashdraft/pkg/domain/ai"
)

// Result is the outcome of one draft request. Exactly one of Text or Err is
// meaningful: Err is nil on success.
type Result struct {
	ID      string
	Prompt  string
	Text    string
	Err     error
	Latency time.Duration
}

// Succeeded builds a successful result.
func Succeeded(id, prompt, text string) Result {
	return Result{ID: id, Prompt: prompt, Text: text}
}

// Failed builds a failed result. err is classified so Kind never reports
// KindNone for a failure.
func Failed(id, prompt string, err error) Result {
	if err == nil {
		err = ai.NewError(ai.KindTransportFailure, nil)
	}
	return Result{ID: id, Prompt: prompt, Err: ai.Classify(err)}
}

// OK reports whether the draft succeeded.
func (r Result) OK() bool {
	return r.Err == nil
}

// Kind returns the failure kind, or ai.KindNone on success.
func (r Result) Kind() ai.Kind {
	return ai.KindOf(r.Err)
}
