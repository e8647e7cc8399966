package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"guardian-epi/internal/domain/entity"
)

func NewVerificarCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "verificar <imagem>",
		Short: "Verifica a conformidade de uma unica imagem",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, _, cleanup, err := buildPipeline()
			if err != nil {
				return err
			}
			defer cleanup()

			out, err := c.Compliance.CheckFile(context.Background(), args[0])
			if err != nil {
				return err
			}

			if c.Line != nil {
				c.Line.Apply(out)
			}

			fmt.Printf("Classe: %s (%s)\n", out.Result.Label, out.Result.ConfidencePercent())

			if c.Line == nil {
				fmt.Println(entity.AccessFor(out.Verdict))
			}
			if out.Verdict.Compliant {
				fmt.Println("✓ Conforme")
				return nil
			}

			fmt.Printf("✗ Nao conforme: %s\n", out.Verdict.Reason)
			if out.Incident != nil {
				fmt.Printf("Evidencia: %s\n", out.Incident.ImagePath)
			}
			if c.Line != nil {
				fmt.Printf("Linha: %s\n", c.Line.Line().State())
			}
			return nil
		},
	}
}
