package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/amarillaRodrigo/sigeled-own-sub002/pkg/configuration"
	"github.com/amarillaRodrigo/sigeled-own-sub002/pkg/sigeledapi"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sigeledctl",
		Short: "Herramientas de línea de comandos contra el backend SIGELED",
	}
	cmd.PersistentFlags().String("token", os.Getenv("SIGELED_TOKEN"), "bearer token para el backend")
	cmd.AddCommand(newExportCmd())
	cmd.AddCommand(newReporteCmd())
	return cmd
}

func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func backendClient(cmd *cobra.Command) (*sigeledapi.Client, error) {
	conf := configuration.Use()
	token, _ := cmd.Flags().GetString("token")
	if token == "" {
		return nil, fmt.Errorf("falta el token: use --token o SIGELED_TOKEN")
	}
	log := logrus.New()
	log.SetLevel(logrus.WarnLevel)
	return sigeledapi.New(sigeledapi.Config{
		BaseURL: conf.Backend.BaseURL,
		Timeout: conf.Backend.Timeout,
		Tokens:  sigeledapi.StaticToken(token),
		Logger:  log,
	})
}
