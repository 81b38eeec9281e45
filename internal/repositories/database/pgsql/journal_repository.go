package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/contabix/contabix_backend/internal/apperrors"
	"github.com/contabix/contabix_backend/internal/core/domain"
	portsrepo "github.com/contabix/contabix_backend/internal/core/ports/repositories"
	"github.com/contabix/contabix_backend/internal/models"
	"github.com/contabix/contabix_backend/internal/utils/mapping"
	"github.com/contabix/contabix_backend/internal/utils/pagination"
)

type PgxJournalRepository struct {
	BaseRepository
}

// newPgxJournalRepository creates a new repository for journal entry data.
func newPgxJournalRepository(pool *pgxpool.Pool) portsrepo.JournalRepositoryFacade {
	return &PgxJournalRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.JournalRepositoryFacade = (*PgxJournalRepository)(nil)

const entryColumns = `entry_id, tenant_id, entry_number, entry_date, description, status, created_at, created_by, last_updated_at, last_updated_by`

func scanJournalEntry(row pgx.Row) (*models.JournalEntry, error) {
	var m models.JournalEntry
	err := row.Scan(
		&m.EntryID,
		&m.TenantID,
		&m.EntryNumber,
		&m.EntryDate,
		&m.Description,
		&m.Status,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func insertLinesBatch(ctx context.Context, tx pgx.Tx, lines []models.JournalEntryLine) error {
	batch := &pgx.Batch{}
	lineQuery := `
		INSERT INTO journal_entry_lines (line_id, entry_id, account_id, line_number, debit, credit, description, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	for _, line := range lines {
		batch.Queue(lineQuery,
			line.LineID,
			line.EntryID,
			line.AccountID,
			line.LineNumber,
			line.Debit,
			line.Credit,
			line.Description,
			line.CreatedAt,
			line.CreatedBy,
			line.LastUpdatedAt,
			line.LastUpdatedBy,
		)
	}

	results := tx.SendBatch(ctx, batch)
	defer results.Close()
	for i := range lines {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("failed to insert journal line %d: %w", lines[i].LineNumber, err)
		}
	}
	return nil
}

// CreateEntry allocates the tenant's next entry number and persists the
// draft header plus lines in one transaction. The counter lives on the
// tenants row, so the UPDATE serializes concurrent creates for the same
// tenant and no two entries ever share a number. A rolled back create
// leaves a gap; numbers are never reused.
func (r *PgxJournalRepository) CreateEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalEntryLine) (*domain.JournalEntry, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	var entryNumber int64
	counterQuery := `
		UPDATE tenants
		SET next_entry_number = next_entry_number + 1, last_updated_at = $2, last_updated_by = $3
		WHERE tenant_id = $1
		RETURNING next_entry_number - 1;
	`
	err = tx.QueryRow(ctx, counterQuery, entry.TenantID, entry.CreatedAt, entry.CreatedBy).Scan(&entryNumber)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: tenant %s", apperrors.ErrNotFound, entry.TenantID)
		}
		return nil, fmt.Errorf("failed to allocate entry number for tenant %s: %w", entry.TenantID, err)
	}

	entry.EntryNumber = entryNumber
	modelEntry := mapping.ToModelJournalEntry(entry)

	entryQuery := `
		INSERT INTO journal_entries (` + entryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err = tx.Exec(ctx, entryQuery,
		modelEntry.EntryID,
		modelEntry.TenantID,
		modelEntry.EntryNumber,
		modelEntry.EntryDate,
		modelEntry.Description,
		modelEntry.Status,
		modelEntry.CreatedAt,
		modelEntry.CreatedBy,
		modelEntry.LastUpdatedAt,
		modelEntry.LastUpdatedBy,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert journal entry %s: %w", modelEntry.EntryID, err)
	}

	modelLines := make([]models.JournalEntryLine, len(lines))
	for i, line := range lines {
		modelLines[i] = mapping.ToModelJournalEntryLine(line)
	}
	if err := insertLinesBatch(ctx, tx, modelLines); err != nil {
		return nil, err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}

	entry.Lines = lines
	return &entry, nil
}

// lockEntryStatus reads the entry's status under FOR UPDATE so concurrent
// lifecycle transitions queue behind each other.
func lockEntryStatus(ctx context.Context, tx pgx.Tx, tenantID, entryID string) (models.EntryStatus, time.Time, error) {
	var status models.EntryStatus
	var entryDate time.Time
	query := `SELECT status, entry_date FROM journal_entries WHERE tenant_id = $1 AND entry_id = $2 FOR UPDATE;`
	err := tx.QueryRow(ctx, query, tenantID, entryID).Scan(&status, &entryDate)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", time.Time{}, apperrors.ErrNotFound
		}
		return "", time.Time{}, fmt.Errorf("failed to lock journal entry %s: %w", entryID, err)
	}
	return status, entryDate, nil
}

// UpdateDraftEntry replaces a DRAFT entry's header fields and lines.
func (r *PgxJournalRepository) UpdateDraftEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalEntryLine) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	status, _, err := lockEntryStatus(ctx, tx, entry.TenantID, entry.EntryID)
	if err != nil {
		return err
	}
	if status != models.EntryDraft {
		return fmt.Errorf("%w: entry %s is %s", domain.ErrEntryNotDraft, entry.EntryID, status)
	}

	modelEntry := mapping.ToModelJournalEntry(entry)
	headerQuery := `
		UPDATE journal_entries
		SET entry_date = $3, description = $4, last_updated_at = $5, last_updated_by = $6
		WHERE tenant_id = $1 AND entry_id = $2;
	`
	_, err = tx.Exec(ctx, headerQuery,
		modelEntry.TenantID,
		modelEntry.EntryID,
		modelEntry.EntryDate,
		modelEntry.Description,
		modelEntry.LastUpdatedAt,
		modelEntry.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update journal entry %s: %w", entry.EntryID, err)
	}

	// Lines are replaced wholesale; a draft's lines have no external references.
	if _, err := tx.Exec(ctx, `DELETE FROM journal_entry_lines WHERE entry_id = $1;`, entry.EntryID); err != nil {
		return fmt.Errorf("failed to delete lines of entry %s: %w", entry.EntryID, err)
	}

	modelLines := make([]models.JournalEntryLine, len(lines))
	for i, line := range lines {
		modelLines[i] = mapping.ToModelJournalEntryLine(line)
	}
	if err := insertLinesBatch(ctx, tx, modelLines); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// DeleteDraftEntry removes a DRAFT entry and its lines.
func (r *PgxJournalRepository) DeleteDraftEntry(ctx context.Context, tenantID string, entryID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	status, _, err := lockEntryStatus(ctx, tx, tenantID, entryID)
	if err != nil {
		return err
	}
	if status != models.EntryDraft {
		return fmt.Errorf("%w: entry %s is %s", domain.ErrEntryNotDraft, entryID, status)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM journal_entry_lines WHERE entry_id = $1;`, entryID); err != nil {
		return fmt.Errorf("failed to delete lines of entry %s: %w", entryID, err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM journal_entries WHERE tenant_id = $1 AND entry_id = $2;`, tenantID, entryID); err != nil {
		return fmt.Errorf("failed to delete journal entry %s: %w", entryID, err)
	}

	return r.Commit(ctx, tx)
}

// PostEntry flips DRAFT to POSTED inside one transaction. The entry row is
// locked first, the covering period is re-read under FOR SHARE so a
// concurrent period close serializes against the post, and the lines are
// re-summed under the lock so a racing draft edit cannot post unbalanced.
func (r *PgxJournalRepository) PostEntry(ctx context.Context, tenantID string, entryID string, userID string, now time.Time) (*domain.JournalEntry, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	status, entryDate, err := lockEntryStatus(ctx, tx, tenantID, entryID)
	if err != nil {
		return nil, err
	}
	switch status {
	case models.EntryDraft:
		// Proceed.
	case models.EntryPosted:
		return nil, fmt.Errorf("%w: entry %s", domain.ErrAlreadyPosted, entryID)
	case models.EntryVoided:
		return nil, fmt.Errorf("%w: entry %s", domain.ErrAlreadyVoided, entryID)
	default:
		return nil, fmt.Errorf("%w: entry %s is %s", domain.ErrEntryNotDraft, entryID, status)
	}

	var periodStatus models.FiscalPeriodStatus
	periodQuery := `
		SELECT status FROM fiscal_periods
		WHERE tenant_id = $1 AND $2::date BETWEEN start_date AND end_date
		FOR SHARE;
	`
	err = tx.QueryRow(ctx, periodQuery, tenantID, entryDate).Scan(&periodStatus)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", domain.ErrNoOpenPeriod, entryDate.Format("2006-01-02"))
		}
		return nil, fmt.Errorf("failed to check fiscal period for entry %s: %w", entryID, err)
	}
	if periodStatus != models.PeriodOpen {
		return nil, fmt.Errorf("%w: entry date %s", domain.ErrPeriodClosed, entryDate.Format("2006-01-02"))
	}

	// Re-sum the lines under the entry lock: a draft edit may have replaced
	// them after the caller's read, and POSTED entries are immutable.
	var debitTotal, creditTotal decimal.Decimal
	sumQuery := `
		SELECT COALESCE(SUM(debit), 0), COALESCE(SUM(credit), 0)
		FROM journal_entry_lines
		WHERE entry_id = $1;
	`
	if err := tx.QueryRow(ctx, sumQuery, entryID).Scan(&debitTotal, &creditTotal); err != nil {
		return nil, fmt.Errorf("failed to sum lines for entry %s: %w", entryID, err)
	}
	if !debitTotal.Equal(creditTotal) {
		return nil, fmt.Errorf("%w: debits %s, credits %s", domain.ErrUnbalanced,
			debitTotal.String(), creditTotal.String())
	}

	updateQuery := `
		UPDATE journal_entries
		SET status = $3, last_updated_at = $4, last_updated_by = $5
		WHERE tenant_id = $1 AND entry_id = $2 AND status = $6;
	`
	tag, err := tx.Exec(ctx, updateQuery, tenantID, entryID, models.EntryPosted, now, userID, models.EntryDraft)
	if err != nil {
		return nil, fmt.Errorf("failed to post journal entry %s: %w", entryID, err)
	}
	if tag.RowsAffected() == 0 {
		// Status changed since the lock was taken.
		return nil, fmt.Errorf("%w: entry %s", domain.ErrAlreadyPosted, entryID)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}

	return r.FindEntryByID(ctx, tenantID, entryID)
}

// VoidEntry flips POSTED to VOIDED with a status-guarded update.
func (r *PgxJournalRepository) VoidEntry(ctx context.Context, tenantID string, entryID string, userID string, now time.Time) (*domain.JournalEntry, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	status, _, err := lockEntryStatus(ctx, tx, tenantID, entryID)
	if err != nil {
		return nil, err
	}
	switch status {
	case models.EntryPosted:
		// Proceed.
	case models.EntryVoided:
		return nil, fmt.Errorf("%w: entry %s", domain.ErrAlreadyVoided, entryID)
	default:
		return nil, fmt.Errorf("%w: entry %s is %s", domain.ErrNotPosted, entryID, status)
	}

	updateQuery := `
		UPDATE journal_entries
		SET status = $3, last_updated_at = $4, last_updated_by = $5
		WHERE tenant_id = $1 AND entry_id = $2 AND status = $6;
	`
	tag, err := tx.Exec(ctx, updateQuery, tenantID, entryID, models.EntryVoided, now, userID, models.EntryPosted)
	if err != nil {
		return nil, fmt.Errorf("failed to void journal entry %s: %w", entryID, err)
	}
	if tag.RowsAffected() == 0 {
		return nil, fmt.Errorf("%w: entry %s", domain.ErrAlreadyVoided, entryID)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}

	return r.FindEntryByID(ctx, tenantID, entryID)
}

// FindEntryByID retrieves an entry header within the tenant.
func (r *PgxJournalRepository) FindEntryByID(ctx context.Context, tenantID string, entryID string) (*domain.JournalEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE tenant_id = $1 AND entry_id = $2;`

	m, err := scanJournalEntry(r.Pool.QueryRow(ctx, query, tenantID, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find journal entry by ID %s: %w", entryID, err)
	}

	entry := mapping.ToDomainJournalEntry(*m)
	return &entry, nil
}

// FindLinesByEntryID retrieves the entry's lines ordered by line number.
func (r *PgxJournalRepository) FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalEntryLine, error) {
	query := `
		SELECT line_id, entry_id, account_id, line_number, debit, credit, description, created_at, created_by, last_updated_at, last_updated_by
		FROM journal_entry_lines
		WHERE entry_id = $1
		ORDER BY line_number;
	`
	rows, err := r.Pool.Query(ctx, query, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to query lines for entry %s: %w", entryID, err)
	}
	defer rows.Close()

	var modelLines []models.JournalEntryLine
	for rows.Next() {
		var m models.JournalEntryLine
		err := rows.Scan(
			&m.LineID,
			&m.EntryID,
			&m.AccountID,
			&m.LineNumber,
			&m.Debit,
			&m.Credit,
			&m.Description,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan journal line row: %w", err)
		}
		modelLines = append(modelLines, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating journal line rows: %w", err)
	}
	return mapping.ToDomainJournalEntryLineSlice(modelLines), nil
}

// ListEntries retrieves a token-paginated page of entries ordered by
// (entry_date, entry_number) descending.
func (r *PgxJournalRepository) ListEntries(ctx context.Context, tenantID string, status *domain.EntryStatus, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE tenant_id = $1`
	args := []any{tenantID}

	if status != nil {
		args = append(args, string(*status))
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}

	if nextToken != nil && *nextToken != "" {
		tokenDate, tokenNumber, err := pagination.DecodeEntryToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: invalid pagination token", apperrors.ErrValidation)
		}
		args = append(args, tokenDate)
		dateArg := len(args)
		args = append(args, tokenNumber)
		numberArg := len(args)
		query += fmt.Sprintf(" AND (entry_date, entry_number) < ($%d, $%d)", dateArg, numberArg)
	}

	args = append(args, limit+1)
	query += fmt.Sprintf(" ORDER BY entry_date DESC, entry_number DESC LIMIT $%d;", len(args))

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query journal entries: %w", err)
	}
	defer rows.Close()

	var entries []domain.JournalEntry
	for rows.Next() {
		m, err := scanJournalEntry(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan journal entry row: %w", err)
		}
		entries = append(entries, mapping.ToDomainJournalEntry(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating journal entry rows: %w", err)
	}

	var newNextToken *string
	if len(entries) > limit {
		entries = entries[:limit]
		last := entries[len(entries)-1]
		token := pagination.EncodeEntryToken(last.EntryDate, last.EntryNumber)
		newNextToken = &token
	}
	return entries, newNextToken, nil
}
