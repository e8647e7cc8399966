package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func NewLoteCommand() *cobra.Command {
	var comRelatorio bool

	cmd := &cobra.Command{
		Use:   "lote <diretorio>",
		Short: "Verifica todas as imagens de um diretorio",
		Long: `Percorre o diretorio e verifica cada imagem (.jpg, .jpeg, .png, .bmp).
Falhas em uma imagem nao interrompem o lote: a imagem e ignorada e o
processamento continua.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, _, cleanup, err := buildPipeline()
			if err != nil {
				return err
			}
			defer cleanup()

			ctx := context.Background()
			check := c.Compliance.CheckDirectory
			if c.Line != nil {
				check = c.Line.CheckDirectory
			}
			summary, err := check(ctx, args[0])
			if err != nil {
				return err
			}

			fmt.Printf("Processadas: %d\nNao conformes: %d\nIgnoradas: %d\n",
				summary.Processed, summary.Violations, summary.Skipped)
			if c.Line != nil {
				fmt.Printf("Linha: %s\n", c.Line.Line().State())
			}

			if comRelatorio {
				path, err := c.Compliance.Report(ctx, lineStatus(c))
				if err != nil {
					return err
				}
				fmt.Printf("Relatorio: %s\n", path)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&comRelatorio, "relatorio", true, "gera relatorio ao final do lote")
	return cmd
}
