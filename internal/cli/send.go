package cli

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sentinai/sentinai/internal/adapters/agentapi"
	"github.com/sentinai/sentinai/internal/app/console"
	"github.com/sentinai/sentinai/internal/domain"
)

var sendFilePath string

var sendCmd = &cobra.Command{
	Use:   "send [query]",
	Short: "Send a single query or file and print the reply",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := ""
		if len(args) > 0 {
			query = args[0]
		}
		if strings.TrimSpace(query) == "" && sendFilePath == "" {
			return fmt.Errorf("provide a query, a --file, or both")
		}

		gateway := agentapi.NewClient(serverURL)
		ctrl := console.NewController(gateway)

		if sendFilePath == "" {
			ctrl.SubmitText(cmd.Context(), query)
		} else {
			data, err := os.ReadFile(sendFilePath)
			if err != nil {
				return fmt.Errorf("read file: %w", err)
			}
			name := filepath.Base(sendFilePath)
			ctrl.SubmitFile(cmd.Context(), &console.FileUpload{
				Name:      name,
				MediaType: mime.TypeByExtension(filepath.Ext(name)),
				Data:      data,
			}, query)
		}

		renderNew(ctrl.Snapshot(), renderCursor{})
		if ctrl.Status() != domain.StatusReady {
			os.Exit(1)
		}
		return nil
	},
}

func init() {
	sendCmd.Flags().StringVar(&sendFilePath, "file", "", "Path of a file to attach to the query")
}
