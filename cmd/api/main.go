// @title           Gestor de choferes
// @version         1.0.0
// @description     API para gestionar registros de entrada y salida de choferes.
// @BasePath        /
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	envFile string

	rootCmd = &cobra.Command{
		Use:   "api",
		Short: "Gestor de choferes",
		Long:  `Driver entry/exit log service with a backup after every change.`,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file applied before reading the environment")
	rootCmd.AddCommand(serveCmd, backupCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
