package cli

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"guardian-epi/internal/infrastructure/vision"
)

func NewEsteiraCommand() *cobra.Command {
	var (
		duracao time.Duration
		camera  int
	)

	cmd := &cobra.Command{
		Use:   "esteira",
		Short: "Monitora a esteira de producao pela camera",
		Long: `Captura frames da camera pelo tempo configurado e verifica cada
frame amostrado. Um objeto estranho para a linha; a linha so volta a operar
por acao manual. Ao final, imprime o resumo e gera o relatorio de qualidade.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if profileName == "" {
				profileName = "esteira"
			}

			c, cfg, cleanup, err := buildPipeline()
			if err != nil {
				return err
			}
			defer cleanup()

			if c.Line == nil {
				return fmt.Errorf("perfil %s nao controla uma esteira", c.Compliance.Profile().Name)
			}

			device := camera
			if !cmd.Flags().Changed("camera") {
				device = cfg.CameraDevice
			}
			cam, err := vision.OpenWebcam(device)
			if err != nil {
				return err
			}
			// Monitor closes the camera on every path.

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			summary, err := c.Line.Monitor(ctx, cam, duracao, cfg.FrameSampleEvery)
			if err != nil {
				return err
			}

			fmt.Println("RESUMO DO MONITORAMENTO")
			fmt.Printf("Duracao: %.1fs\n", summary.Elapsed.Seconds())
			fmt.Printf("Frames capturados: %d\n", summary.Frames)
			fmt.Printf("Frames verificados: %d\n", summary.Sampled)
			fmt.Printf("Nao conformidades: %d\n", summary.Violations)
			fmt.Printf("Paradas de linha: %d\n", summary.Stoppages)
			fmt.Printf("Linha: %s\n", c.Line.Line().State())

			path, err := c.Compliance.Report(context.Background(), c.Line.Line().State())
			if err != nil {
				return err
			}
			fmt.Printf("Relatorio: %s\n", path)
			return nil
		},
	}

	cmd.Flags().DurationVar(&duracao, "duracao", 60*time.Second, "duracao do monitoramento")
	cmd.Flags().IntVar(&camera, "camera", 0, "indice do dispositivo de camera")
	return cmd
}
