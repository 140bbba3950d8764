package pgsql

import (
	"context"

	"github.com/SscSPs/ledger_core/internal/apperrors"
	portsrepo "github.com/SscSPs/ledger_core/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxSequenceRepository struct {
	BaseRepository
}

func newPgxSequenceRepository(pool *pgxpool.Pool) portsrepo.SequenceRepository {
	return &PgxSequenceRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.SequenceRepository = (*PgxSequenceRepository)(nil)

// NextValue increments the (prefix, period) counter in a single upsert. The row
// lock taken by the update serializes concurrent callers until their
// transaction ends, so values are never handed out twice.
func (r *PgxSequenceRepository) NextValue(ctx context.Context, prefix, period string) (int, error) {
	query := `
		INSERT INTO document_sequences (prefix, period, last_value)
		VALUES ($1, $2, 1)
		ON CONFLICT (prefix, period)
		DO UPDATE SET last_value = document_sequences.last_value + 1
		RETURNING last_value;
	`
	var next int
	if err := r.db(ctx).QueryRow(ctx, query, prefix, period).Scan(&next); err != nil {
		return 0, apperrors.NewAppError(500, "failed to allocate sequence value", err)
	}
	return next, nil
}
