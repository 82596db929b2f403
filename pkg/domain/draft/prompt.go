// Package draft holds the tweet-drafting domain: the instruction template,
// per-invocation results, hashtag formatting and the session state machine.
package draft

import "fmt"

// DefaultMaxTokens bounds the generated output of every draft.
const DefaultMaxTokens = 100

const instructionTemplate = "Generate a tweet based on the following hashtag(s): '%s'. Make sure to include the hashtags in the tweet."

// Instruction embeds the user's hashtags into the provider prompt.
func Instruction(prompt string) string {
	return fmt.Sprintf(instructionTemplate, prompt)
}
