package auth

import (
	"context"
	"fmt"

	"golang.org/x/sync/semaphore"

	"github.com/jhoicas/Tienda-api/pkg/password"
)

// HashPool limita cuántos cálculos Argon2 corren a la vez; cada uno reserva la memoria
// configurada en los parámetros del hasher.
type HashPool struct {
	sem    *semaphore.Weighted
	hasher *password.Hasher
}

// NewHashPool crea el pool. concurrency < 1 se trata como 1.
func NewHashPool(hasher *password.Hasher, concurrency int) *HashPool {
	if concurrency < 1 {
		concurrency = 1
	}
	return &HashPool{sem: semaphore.NewWeighted(int64(concurrency)), hasher: hasher}
}

// Hash espera un cupo (respetando ctx) y genera el hash.
func (p *HashPool) Hash(ctx context.Context, plaintext string) (string, error) {
	if err := p.sem.Acquire(ctx, 1); err != nil {
		return "", fmt.Errorf("esperando cupo de hashing: %w", err)
	}
	defer p.sem.Release(1)
	return p.hasher.Hash(plaintext)
}

// Verify espera un cupo y verifica plaintext contra encoded.
func (p *HashPool) Verify(ctx context.Context, plaintext, encoded string) (bool, error) {
	if err := p.sem.Acquire(ctx, 1); err != nil {
		return false, fmt.Errorf("esperando cupo de hashing: %w", err)
	}
	defer p.sem.Release(1)
	return p.hasher.Verify(plaintext, encoded)
}

// NeedsRehash no calcula hashes, no ocupa cupo.
func (p *HashPool) NeedsRehash(encoded string) bool {
	return p.hasher.NeedsRehash(encoded)
}
