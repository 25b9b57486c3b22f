package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jhoicas/Tienda-api/internal/application/auth"
	"github.com/jhoicas/Tienda-api/internal/application/dto"
	"github.com/jhoicas/Tienda-api/internal/application/usecase"
	"github.com/jhoicas/Tienda-api/internal/domain"
	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-api/internal/domain/repository"
	"github.com/jhoicas/Tienda-api/internal/infrastructure/mongodb"
	"github.com/jhoicas/Tienda-api/pkg/config"
)

func newGrantAdminCommand() *cobra.Command {
	var email string
	cmd := &cobra.Command{
		Use:   "grant-admin",
		Args:  cobra.NoArgs,
		Short: "Asigna el rol Administrator a un usuario existente",
		Long: `Crea el rol Administrator si todavía no existe y lo agrega a los roles del
usuario con el email indicado. Usa MONGODB_URL y MONGODB_DATABASE del entorno.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()

			store, err := mongodb.Connect(ctx, cfg.Mongo)
			if err != nil {
				return err
			}
			defer store.Close(context.Background())

			if err := store.EnsureIndexes(ctx); err != nil {
				return err
			}
			users := mongodb.NewUserRepository(store)
			roles := usecase.NewRoleUseCase(mongodb.NewRoleRepository(store), users)

			userID, err := grantAdmin(ctx, users, roles, email)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "rol %s asignado al usuario %s\n", entity.RoleAdministrator, userID)
			return nil
		},
	}
	cmd.Flags().StringVarP(&email, "email", "e", "", "email del usuario")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

// grantAdmin resuelve el usuario por email y le asigna el rol administrador.
func grantAdmin(ctx context.Context, users repository.UserRepository, roles *usecase.RoleUseCase, email string) (string, error) {
	user, err := users.GetByEmail(ctx, auth.NormalizeEmail(email))
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", fmt.Errorf("%w: %s", domain.ErrUserNotFound, email)
	}
	admin, err := roles.EnsureAdmin(ctx)
	if err != nil {
		return "", err
	}
	if err := roles.Assign(ctx, dto.AssignRoleRequest{UserID: user.ID, RoleID: admin.ID}); err != nil {
		return "", err
	}
	return user.ID, nil
}
