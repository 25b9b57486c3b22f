package commands

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"

	"github.com/spf13/cobra"
)

const minKeyBytes = 32

func newGenKeyCommand() *cobra.Command {
	var size int
	cmd := &cobra.Command{
		Use:   "genkey",
		Args:  cobra.NoArgs,
		Short: "Genera un valor aleatorio para SECRET_KEY",
		RunE: func(cmd *cobra.Command, _ []string) error {
			key, err := generateKey(size)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), key)
			return nil
		},
	}
	cmd.Flags().IntVarP(&size, "bytes", "b", 48, "bytes de entropía")
	return cmd
}

// generateKey devuelve size bytes aleatorios en base64 URL sin padding.
func generateKey(size int) (string, error) {
	if size < minKeyBytes {
		return "", fmt.Errorf("se requieren al menos %d bytes", minKeyBytes)
	}
	buf := make([]byte, size)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("leer entropía: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
