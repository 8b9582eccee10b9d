package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sentinai/sentinai/internal/adapters/agentapi"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the backend agent's status and capabilities",
	RunE: func(cmd *cobra.Command, args []string) error {
		client := agentapi.NewClient(serverURL)
		st, err := client.Status(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Printf("agent:        %s\n", st.AgentID)
		fmt.Printf("status:       %s\n", st.Status)
		fmt.Printf("capabilities: %s\n", strings.Join(st.Capabilities, ", "))
		fmt.Printf("tools:        %s\n", strings.Join(st.Tools, ", "))
		return nil
	},
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check whether the backend API is reachable",
	RunE: func(cmd *cobra.Command, args []string) error {
		client := agentapi.NewClient(serverURL)
		if err := client.Health(cmd.Context()); err != nil {
			return err
		}
		fmt.Println("ok")
		return nil
	},
}
