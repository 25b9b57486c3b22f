package commands

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jhoicas/Tienda-api/pkg/password"
)

func newHashPasswordCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-password",
		Args:  cobra.NoArgs,
		Short: "Lee una password de stdin e imprime su hash Argon2id",
		Long: `Lee una password (una línea) de la entrada estándar e imprime el hash en
formato PHC, listo para cargarlo en el campo password de un usuario.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			plaintext, err := readLine(cmd.InOrStdin())
			if err != nil {
				return err
			}
			hash, err := password.Hash(plaintext)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hash)
			return nil
		},
	}
}

func readLine(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("leer password: %w", err)
	}
	line = strings.TrimRight(line, "\r\n")
	if line == "" {
		return "", errors.New("password vacía")
	}
	return line, nil
}
