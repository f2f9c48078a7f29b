package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newReporteCmd() *cobra.Command {
	var (
		pdf    bool
		salida string
	)

	cmd := &cobra.Command{
		Use:   "reporte <nombre>",
		Short: "Trae un reporte del backend (JSON a stdout, o PDF a disco)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := backendClient(cmd)
			if err != nil {
				return err
			}
			nombre := args[0]

			if pdf {
				descarga, err := api.Reportes.PDF(cmd.Context(), nombre, nil)
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
			}

			var datos json.RawMessage
			if err := api.Reportes.JSON(cmd.Context(), nombre, nil, &datos); err != nil {
				return err
			}
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(datos)
		},
	}
	cmd.Flags().BoolVar(&pdf, "pdf", false, "descargar la variante PDF")
	cmd.Flags().StringVar(&salida, "out", "", "ruta de salida para el PDF")
	return cmd
}
