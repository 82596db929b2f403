package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/hashdraft/pkg/domain/draft"
)

// copyToClipboard is swapped out in tests.
var copyToClipboard = clipboard.WriteAll

var (
	draftCopy bool
	draftJSON bool
)

type draftOutput struct {
	ID    string `json:"id"`
	Text  string `json:"text,omitempty"`
	Kind  string `json:"kind,omitempty"`
	Error string `json:"error,omitempty"`
}

var draftCmd = &cobra.Command{
	Use:   "draft <hashtag>...",
	Short: "Draft a tweet from hashtags",
	Example: `  hashdraft draft golang gophers
  hashdraft draft "#go #concurrency" --copy`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, _, err := loadDraftService(cmd.ErrOrStderr())
		if err != nil {
			return err
		}

		prompt := draft.Compose(args)
		res := <-svc.RequestCompletion(commandContext(cmd), prompt)
		text := strings.TrimSpace(res.Text)

		if draftJSON {
			out := draftOutput{ID: res.ID, Text: text}
			if !res.OK() {
				out.Kind = string(res.Kind())
				out.Error = res.Err.Error()
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if err := enc.Encode(out); err != nil {
				return fmt.Errorf("encode output: %w", err)
			}
		}

		if !res.OK() {
			return MapError(fmt.Errorf("draft %s: %w", prompt, res.Err))
		}

		if !draftJSON {
			fmt.Fprintln(cmd.OutOrStdout(), text)
		}

		if draftCopy {
			if err := copyToClipboard(text); err != nil {
				return NewCLIError("failed to copy to clipboard", "Install xclip, xsel or wl-clipboard, or drop --copy", err)
			}
			fmt.Fprintln(cmd.ErrOrStderr(), "Copied to clipboard.")
		}
		return nil
	},
}

func init() {
	draftCmd.Flags().BoolVar(&draftCopy, "copy", false, "Copy the drafted tweet to the clipboard")
	draftCmd.Flags().BoolVar(&draftJSON, "json", false, "Print the result as JSON")
	RootCmd.AddCommand(draftCmd)
}
