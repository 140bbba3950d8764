package pgsql

import (
	"context"

	"github.com/SscSPs/ledger_core/internal/apperrors"
	"github.com/SscSPs/ledger_core/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_core/internal/core/ports/repositories"
	"github.com/SscSPs/ledger_core/internal/models"
	"github.com/SscSPs/ledger_core/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxBankRepository struct {
	BaseRepository
}

func newPgxBankRepository(pool *pgxpool.Pool) portsrepo.BankRepositoryFacade {
	return &PgxBankRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.BankRepositoryFacade = (*PgxBankRepository)(nil)

const bankAccountSelect = `
SELECT bank_account_id, account_name, bank_name, account_number, currency_code, gl_account_id, opening_balance,
	is_active, created_at, created_by, last_updated_at, last_updated_by
FROM bank_accounts
`

const statementLineSelect = `
SELECT statement_line_id, bank_account_id, statement_date, transaction_date, description, reference,
	debit_amount, credit_amount, is_reconciled, matched_line_id,
	created_at, created_by, last_updated_at, last_updated_by
FROM bank_statement_lines
`

func (r *PgxBankRepository) FindBankAccountByID(ctx context.Context, bankAccountID string) (*domain.BankAccount, error) {
	rows, err := r.db(ctx).Query(ctx, bankAccountSelect+"WHERE bank_account_id = $1", bankAccountID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query bank account", err)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.BankAccount])
	if err != nil {
		return nil, mapReadError(err, "bank account", bankAccountID)
	}
	a := mapping.ToDomainBankAccount(m)
	return &a, nil
}

func (r *PgxBankRepository) ListBankAccounts(ctx context.Context, activeOnly bool) ([]domain.BankAccount, error) {
	rows, err := r.db(ctx).Query(ctx, bankAccountSelect+"WHERE (NOT $1::boolean OR is_active) ORDER BY account_name, bank_account_id", activeOnly)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query bank accounts", err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.BankAccount])
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to collect bank account rows", err)
	}
	out := make([]domain.BankAccount, len(ms))
	for i, m := range ms {
		out[i] = mapping.ToDomainBankAccount(m)
	}
	return out, nil
}

func (r *PgxBankRepository) SaveBankAccount(ctx context.Context, account domain.BankAccount) error {
	m := mapping.ToModelBankAccount(account)
	query := `
		INSERT INTO bank_accounts (bank_account_id, account_name, bank_name, account_number, currency_code, gl_account_id,
			opening_balance, is_active, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.db(ctx).Exec(ctx, query,
		m.BankAccountID, m.AccountName, m.BankName, m.AccountNumber, m.CurrencyCode, m.GLAccountID,
		m.OpeningBalance, m.IsActive, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return mapWriteError(err, "bank account "+m.AccountName)
	}
	return nil
}

func (r *PgxBankRepository) UpdateBankAccount(ctx context.Context, account domain.BankAccount) error {
	m := mapping.ToModelBankAccount(account)
	query := `
		UPDATE bank_accounts
		SET account_name = $2, bank_name = $3, account_number = $4, is_active = $5, last_updated_at = $6, last_updated_by = $7
		WHERE bank_account_id = $1;
	`
	tag, err := r.db(ctx).Exec(ctx, query,
		m.BankAccountID, m.AccountName, m.BankName, m.AccountNumber, m.IsActive, m.LastUpdatedAt, m.LastUpdatedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update bank account", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("bank account", m.BankAccountID)
	}
	return nil
}

func (r *PgxBankRepository) getStatementLine(ctx context.Context, statementLineID, suffix string) (*domain.BankStatementLine, error) {
	rows, err := r.db(ctx).Query(ctx, statementLineSelect+"WHERE statement_line_id = $1"+suffix, statementLineID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query bank statement", err)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.BankStatementLine])
	if err != nil {
		return nil, mapReadError(err, "bank statement", statementLineID)
	}
	l := mapping.ToDomainStatementLine(m)
	return &l, nil
}

func (r *PgxBankRepository) FindStatementLineByID(ctx context.Context, statementLineID string) (*domain.BankStatementLine, error) {
	return r.getStatementLine(ctx, statementLineID, "")
}

func (r *PgxBankRepository) FindStatementLineForUpdate(ctx context.Context, statementLineID string) (*domain.BankStatementLine, error) {
	return r.getStatementLine(ctx, statementLineID, " FOR UPDATE")
}

func (r *PgxBankRepository) ListStatementLines(ctx context.Context, filter domain.StatementLineFilter) ([]domain.BankStatementLine, error) {
	query := statementLineSelect + `
		WHERE ($1::text = '' OR bank_account_id = $1)
		  AND ($2::date IS NULL OR statement_date >= $2)
		  AND ($3::date IS NULL OR statement_date <= $3)
		  AND (NOT $4::boolean OR NOT is_reconciled)
		ORDER BY transaction_date, created_at, statement_line_id`
	rows, err := r.db(ctx).Query(ctx, query,
		filter.BankAccountID, dateArg(filter.From), dateArg(filter.To), filter.UnreconciledOnly)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query bank statements", err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.BankStatementLine])
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to collect bank statement rows", err)
	}
	out := make([]domain.BankStatementLine, len(ms))
	for i, m := range ms {
		out[i] = mapping.ToDomainStatementLine(m)
	}
	return out, nil
}

func (r *PgxBankRepository) SumReconciled(ctx context.Context, bankAccountID string) (decimal.Decimal, error) {
	var sum decimal.Decimal
	err := r.db(ctx).QueryRow(ctx, `
		SELECT COALESCE(SUM(credit_amount - debit_amount), 0)
		FROM bank_statement_lines
		WHERE bank_account_id = $1 AND is_reconciled`, bankAccountID).Scan(&sum)
	if err != nil {
		return decimal.Zero, apperrors.NewAppError(500, "failed to sum reconciled statements", err)
	}
	return sum, nil
}

func (r *PgxBankRepository) CountUnreconciled(ctx context.Context, bankAccountID string) (int, error) {
	var n int
	err := r.db(ctx).QueryRow(ctx,
		`SELECT COUNT(*) FROM bank_statement_lines WHERE bank_account_id = $1 AND NOT is_reconciled`,
		bankAccountID).Scan(&n)
	if err != nil {
		return 0, apperrors.NewAppError(500, "failed to count unreconciled statements", err)
	}
	return n, nil
}

func (r *PgxBankRepository) IsJournalLineMatched(ctx context.Context, journalLineID string) (bool, error) {
	var matched bool
	err := r.db(ctx).QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM bank_statement_lines WHERE matched_line_id = $1 AND is_reconciled)`,
		journalLineID).Scan(&matched)
	if err != nil {
		return false, apperrors.NewAppError(500, "failed to check journal line match", err)
	}
	return matched, nil
}

// SaveStatementLines inserts the whole batch in one round trip.
func (r *PgxBankRepository) SaveStatementLines(ctx context.Context, lines []domain.BankStatementLine) error {
	batch := &pgx.Batch{}
	for _, l := range lines {
		m := mapping.ToModelStatementLine(l)
		batch.Queue(`
			INSERT INTO bank_statement_lines (statement_line_id, bank_account_id, statement_date, transaction_date,
				description, reference, debit_amount, credit_amount, is_reconciled, matched_line_id,
				created_at, created_by, last_updated_at, last_updated_by)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
			m.StatementLineID, m.BankAccountID, m.StatementDate, m.TransactionDate,
			m.Description, m.Reference, m.DebitAmount, m.CreditAmount, m.IsReconciled, m.MatchedLineID,
			m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
		)
	}
	br := r.db(ctx).SendBatch(ctx, batch)
	defer br.Close()
	for range lines {
		if _, err := br.Exec(); err != nil {
			return mapWriteError(err, "bank statement")
		}
	}
	return nil
}

// UpdateStatementMatch relies on the partial unique index on matched_line_id to reject double matches.
func (r *PgxBankRepository) UpdateStatementMatch(ctx context.Context, line domain.BankStatementLine) error {
	m := mapping.ToModelStatementLine(line)
	tag, err := r.db(ctx).Exec(ctx, `
		UPDATE bank_statement_lines
		SET is_reconciled = $2, matched_line_id = $3, last_updated_at = $4, last_updated_by = $5
		WHERE statement_line_id = $1`,
		m.StatementLineID, m.IsReconciled, m.MatchedLineID, m.LastUpdatedAt, m.LastUpdatedBy)
	if err != nil {
		return mapWriteError(err, "bank statement match")
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("bank statement", m.StatementLineID)
	}
	return nil
}
