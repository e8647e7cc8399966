package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func NewRelatorioCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "relatorio",
		Short: "Gera o relatorio do perfil selecionado",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, _, cleanup, err := buildPipeline()
			if err != nil {
				return err
			}
			defer cleanup()

			path, err := c.Compliance.Report(context.Background(), lineStatus(c))
			if err != nil {
				return err
			}
			fmt.Printf("Relatorio: %s\n", path)
			return nil
		},
	}
}
