package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newExportCmd() *cobra.Command {
	var (
		id      int
		formato string
		salida  string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Descarga un contrato renderizado (pdf o word)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if id <= 0 {
				return fmt.Errorf("falta --id")
			}
			api, err := backendClient(cmd)
			if err != nil {
				return err
			}
			descarga, err := api.Contratos.Export(cmd.Context(), id, formato)
			if err != nil {
				return err
			}
			if salida == "" {
				salida = descarga.Nombre
			}
			if err := os.WriteFile(salida, descarga.Datos, 0o644); err != nil {
				return err
			}
			fmt.Printf("escrito %s (%d bytes)\n", salida, len(descarga.Datos))
			return nil
		},
	}
	cmd.Flags().IntVar(&id, "id", 0, "id del contrato")
	cmd.Flags().StringVar(&formato, "format", "pdf", "formato de salida (pdf o word)")
	cmd.Flags().StringVar(&salida, "out", "", "ruta de salida (por defecto el nombre sugerido)")
	return cmd
}
