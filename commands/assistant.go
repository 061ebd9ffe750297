package commands

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/padmaja-j12/uidam-portal-padmaja-sub002/assistant"
	"github.com/padmaja-j12/uidam-portal-padmaja-sub002/auth"
)

var assistantCmd = &cobra.Command{
	Use:   "assistant",
	Short: "Chat with the platform assistant",
	Long: `Assistant opens a conversation with the platform's assistant and reads
messages from stdin, one per line, printing each reply. The conversation
is closed on EOF (Ctrl-D) or when "exit" is entered.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := auth.Require(tokenSource.Session()); err != nil {
			return err
		}
		service := assistant.NewService(apiClient)

		chat, err := service.CreateSession(cmd.Context())
		if err != nil {
			return err
		}
		defer func() {
			if err := service.EndSession(cmd.Context(), chat.ID); err != nil {
				logger.Warn().Err(err).Str("session", chat.ID).Msg("could not end assistant session")
			}
		}()

		fmt.Println("Connected. Type a message, or \"exit\" to quit.")
		scanner := bufio.NewScanner(os.Stdin)
		for {
			fmt.Print("> ")
			if !scanner.Scan() {
				break
			}
			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				continue
			}
			if line == "exit" {
				break
			}
			reply, err := service.SendMessage(cmd.Context(), chat.ID, line)
			if err != nil {
				return err
			}
			fmt.Println(reply.Content)
		}
		return scanner.Err()
	},
}
