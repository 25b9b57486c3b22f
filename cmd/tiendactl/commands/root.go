package commands

import (
	"github.com/spf13/cobra"
)

// NewRootCmd comando raíz de la herramienta de operación.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "tiendactl",
		Short:         "Herramientas de operación para tienda-api",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		newGenKeyCommand(),
		newHashPasswordCommand(),
		newGrantAdminCommand(),
	)

	return rootCmd
}
