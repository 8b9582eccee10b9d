package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sentinai/sentinai/internal/adapters/agentapi"
	"github.com/sentinai/sentinai/internal/app/console"
	"github.com/sentinai/sentinai/internal/domain"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Interactive chat session with the agent",
	Long: `Starts an interactive session. Each line is submitted as a query;
the reply and the thinking-step timeline are printed as they arrive.

Session commands: /clear empties the conversation, /quit exits.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		gateway := agentapi.NewClient(serverURL)
		ctrl := console.NewController(gateway)

		fmt.Println("SentinAI console. Type a message, /clear or /quit.")

		scanner := bufio.NewScanner(os.Stdin)
		rendered := renderCursor{}
		for {
			fmt.Print("> ")
			if !scanner.Scan() {
				break
			}
			line := strings.TrimSpace(scanner.Text())

			switch line {
			case "/quit", "/exit":
				return nil
			case "/clear":
				ctrl.Clear()
				rendered = renderCursor{}
				fmt.Println("(conversation cleared)")
				continue
			}

			ctrl.SubmitText(cmd.Context(), line)
			rendered = renderNew(ctrl.Snapshot(), rendered)
		}
		return scanner.Err()
	},
}

// renderCursor remembers how much of the snapshot was already printed.
type renderCursor struct {
	messages int
	steps    int
}

// renderNew prints the steps and messages appended since the last render
// and returns the advanced cursor.
func renderNew(snap console.Snapshot, cur renderCursor) renderCursor {
	for _, step := range snap.Steps[cur.steps:] {
		line := fmt.Sprintf("  [%s] %s: %s", step.Status, step.Title, step.Description)
		if step.Duration > 0 {
			line += fmt.Sprintf(" (%.1fs)", step.Duration.Seconds())
		}
		fmt.Println(line)
	}

	for _, msg := range snap.Messages[cur.messages:] {
		if msg.Role != domain.RoleAssistant {
			continue
		}
		fmt.Printf("sentinai: %s\n", msg.Content)
	}

	if snap.Status == domain.StatusError {
		fmt.Println("(agent is in an error state, it will recover shortly)")
	}

	return renderCursor{
		messages: len(snap.Messages),
		steps:    len(snap.Steps),
	}
}
