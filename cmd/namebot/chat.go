package main

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/vmunix/namebot/internal/chat"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Interactive chat prompt",
	Long: `Read chat commands from stdin, one per line, and print each reply.

Commands:
  !tv <pastebin link> <tmdb id> <group>
  !mo <pastebin link> <tmdb id> <group>

Prefixes are configurable under [chat]. Press Ctrl-D to exit.`,
	Args: cobra.NoArgs,
	RunE: runChatCmd,
}

func init() {
	rootCmd.AddCommand(chatCmd)
	chatCmd.Flags().String("prompt", "> ", "Prompt shown before each line when stdin is a terminal")
}

func runChatCmd(cmd *cobra.Command, _ []string) error {
	prompt, _ := cmd.Flags().GetString("prompt")
	if !isTerminal(cmd.InOrStdin()) && !cmd.Flags().Changed("prompt") {
		prompt = ""
	}

	return withApp(cmd.Context(), cmd.ErrOrStderr(), func(a *app) error {
		if prompt != "" {
			fmt.Fprintln(cmd.ErrOrStderr(), a.chat.Prefixes().Usage())
		}
		var transport chat.Transport = chat.NewREPL(cmd.InOrStdin(), cmd.OutOrStdout(), prompt)
		return transport.Serve(cmd.Context(), a.chat)
	})
}

func isTerminal(r io.Reader) bool {
	file, ok := r.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
