package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/jhoicas/Tienda-api/internal/domain"
)

// mapError traduce errores del driver a la taxonomía de dominio.
// Deadline o timeout del driver -> ErrStoreTimeout; el resto -> ErrStore.
func mapError(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) || mongo.IsTimeout(err) {
		return fmt.Errorf("%s: %w: %w", op, domain.ErrStoreTimeout, err)
	}
	return fmt.Errorf("%s: %w: %w", op, domain.ErrStore, err)
}

func isNotFound(err error) bool {
	return errors.Is(err, mongo.ErrNoDocuments)
}
