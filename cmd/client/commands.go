package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"hello-ai-ui/internal/adapter/client"
	"hello-ai-ui/internal/adapter/tui"
	"hello-ai-ui/internal/domain/entity"
	"hello-ai-ui/internal/usecase"
)

func newSession() *usecase.Session {
	return usecase.NewSession(client.NewRelayClient(serverURL))
}

func askCmd() *cobra.Command {
	var mode string
	cmd := &cobra.Command{
		Use:   "ask <text>",
		Short: "Ask once and print the answer",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := entity.ParseMode(mode)
			if err != nil {
				return err
			}
			session := newSession()
			session.SetMode(m)

			askErr := session.Ask(cmd.Context(), strings.Join(args, " "))
			fmt.Fprintln(cmd.OutOrStdout(), tui.RenderResult(session.Snapshot(), 0))
			return askErr
		},
	}
	cmd.Flags().StringVarP(&mode, "mode", "m", "chat", "chat or qa")
	return cmd
}

func streamCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stream <text>",
		Short: "Stream a chat answer as it is generated",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			session := newSession()
			err := session.AskStream(cmd.Context(), strings.Join(args, " "), func(chunk string) {
				fmt.Fprint(out, chunk)
			})
			fmt.Fprintln(out)
			return err
		},
	}
}

func tuiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Interactive terminal UI",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return tui.Run(newSession())
		},
	}
}
