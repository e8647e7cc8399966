package cli

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"guardian-epi/internal/infrastructure/watch"
)

func NewVigiarCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "vigiar <diretorio>",
		Short: "Vigia um diretorio e verifica cada nova imagem",
		Long: `Observa o diretorio de entrada e verifica cada imagem criada nele,
ate receber um sinal de interrupcao. Um relatorio e gerado ao encerrar.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, _, cleanup, err := buildPipeline()
			if err != nil {
				return err
			}
			defer cleanup()

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			check := c.Compliance.CheckFile
			if c.Line != nil {
				check = c.Line.CheckFile
			}

			inbox := watch.NewInbox(args[0], log.Logger)
			err = inbox.Run(ctx, func(ctx context.Context, path string) error {
				if _, err := check(ctx, path); err != nil {
					c.Compliance.Skip()
					return err
				}
				return nil
			})
			if err != nil && !errors.Is(err, context.Canceled) {
				return err
			}

			path, err := c.Compliance.Report(context.Background(), lineStatus(c))
			if err != nil {
				return err
			}
			fmt.Printf("Relatorio: %s\n", path)
			return nil
		},
	}
}
