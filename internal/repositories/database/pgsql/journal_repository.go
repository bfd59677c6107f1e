package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/brightbooks/bright_books_app/internal/apperrors"
	"github.com/brightbooks/bright_books_app/internal/core/domain"
	portsrepo "github.com/brightbooks/bright_books_app/internal/core/ports/repositories"
	"github.com/brightbooks/bright_books_app/internal/models"
	"github.com/brightbooks/bright_books_app/internal/utils/accounting"
	"github.com/brightbooks/bright_books_app/internal/utils/mapping"
	"github.com/brightbooks/bright_books_app/internal/utils/pagination"
)

type PgxJournalRepository struct {
	BaseRepository
	accountRepo portsrepo.AccountRepositoryFacade
	retrier     *Retrier
}

// newPgxJournalRepository creates a new repository for journal data.
func newPgxJournalRepository(pool *pgxpool.Pool, accountRepo portsrepo.AccountRepositoryFacade, retrier *Retrier) portsrepo.JournalRepositoryFacade {
	return &PgxJournalRepository{
		BaseRepository: BaseRepository{Pool: pool},
		accountRepo:    accountRepo,
		retrier:        retrier,
	}
}

// Ensure PgxJournalRepository implements portsrepo.JournalRepositoryFacade
var _ portsrepo.JournalRepositoryFacade = (*PgxJournalRepository)(nil)

const journalColumns = `journal_id, journal_date, description, currency_code, status, source_type, source_id, amount, fiscal_period_id, posting_seq, posted_at, posted_by, original_journal_id, reversing_journal_id, created_at, created_by, last_updated_at, last_updated_by`

const journalLineColumns = `line_id, journal_id, line_no, account_id, side, amount, tax_code_id, memo, running_balance, created_at, created_by, last_updated_at, last_updated_by`

func scanJournal(row pgx.Row) (models.Journal, error) {
	var m models.Journal
	err := row.Scan(
		&m.JournalID,
		&m.JournalDate,
		&m.Description,
		&m.CurrencyCode,
		&m.Status,
		&m.SourceType,
		&m.SourceID,
		&m.Amount,
		&m.FiscalPeriodID,
		&m.PostingSeq,
		&m.PostedAt,
		&m.PostedBy,
		&m.OriginalJournalID,
		&m.ReversingJournalID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func scanJournalLine(row pgx.Row) (models.JournalLine, error) {
	var m models.JournalLine
	err := row.Scan(
		&m.LineID,
		&m.JournalID,
		&m.LineNo,
		&m.AccountID,
		&m.Side,
		&m.Amount,
		&m.TaxCodeID,
		&m.Memo,
		&m.RunningBalance,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func insertJournalInTx(ctx context.Context, tx pgx.Tx, m models.Journal) error {
	query := `
		INSERT INTO journals (` + journalColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18);
	`
	_, err := tx.Exec(ctx, query,
		m.JournalID,
		m.JournalDate,
		m.Description,
		m.CurrencyCode,
		m.Status,
		m.SourceType,
		m.SourceID,
		m.Amount,
		m.FiscalPeriodID,
		m.PostingSeq,
		m.PostedAt,
		m.PostedBy,
		m.OriginalJournalID,
		m.ReversingJournalID,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName == "idx_journals_source" {
			return fmt.Errorf("%w: a journal already exists for source %s/%s", apperrors.ErrConflict, m.SourceType, derefOrEmpty(m.SourceID))
		}
		return fmt.Errorf("failed to insert journal %s: %w", m.JournalID, err)
	}
	return nil
}

func derefOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func insertLinesInTx(ctx context.Context, tx pgx.Tx, lines []models.JournalLine) error {
	query := `
		INSERT INTO journal_lines (` + journalLineColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	batch := &pgx.Batch{}
	for _, l := range lines {
		batch.Queue(query,
			l.LineID,
			l.JournalID,
			l.LineNo,
			l.AccountID,
			l.Side,
			l.Amount,
			l.TaxCodeID,
			l.Memo,
			l.RunningBalance,
			l.CreatedAt,
			l.CreatedBy,
			l.LastUpdatedAt,
			l.LastUpdatedBy,
		)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to execute journal line batch: %w", err)
	}
	return nil
}

// SaveDraft persists a new draft journal and its lines atomically.
func (r *PgxJournalRepository) SaveDraft(ctx context.Context, journal domain.Journal, lines []domain.JournalLine) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	if err := insertJournalInTx(ctx, tx, mapping.ToModelJournal(journal)); err != nil {
		return err
	}

	modelLines := make([]models.JournalLine, len(lines))
	for i, l := range lines {
		modelLines[i] = mapping.ToModelJournalLine(l)
	}
	if err := insertLinesInTx(ctx, tx, modelLines); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// lockJournalRow locks one journal row inside tx and returns it.
func lockJournalRow(ctx context.Context, tx pgx.Tx, journalID string) (models.Journal, error) {
	query := `SELECT ` + journalColumns + ` FROM journals WHERE journal_id = $1 FOR UPDATE;`

	m, err := scanJournal(tx.QueryRow(ctx, query, journalID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Journal{}, apperrors.ErrNotFound
		}
		return models.Journal{}, fmt.Errorf("failed to lock journal %s: %w", journalID, err)
	}
	return m, nil
}

// UpdateDraft replaces a draft's header fields and lines. Fails once posted.
func (r *PgxJournalRepository) UpdateDraft(ctx context.Context, journal domain.Journal, lines []domain.JournalLine) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	existing, err := lockJournalRow(ctx, tx, journal.JournalID)
	if err != nil {
		return err
	}
	if existing.Status != string(domain.Draft) {
		return fmt.Errorf("%w: journal %s has status %s", apperrors.ErrNotDraft, journal.JournalID, existing.Status)
	}

	m := mapping.ToModelJournal(journal)
	updateQuery := `
		UPDATE journals
		SET journal_date = $2, description = $3, currency_code = $4, amount = $5, last_updated_at = $6, last_updated_by = $7
		WHERE journal_id = $1;
	`
	if _, err := tx.Exec(ctx, updateQuery, m.JournalID, m.JournalDate, m.Description, m.CurrencyCode, m.Amount, m.LastUpdatedAt, m.LastUpdatedBy); err != nil {
		return fmt.Errorf("failed to update draft journal %s: %w", m.JournalID, err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM journal_lines WHERE journal_id = $1;`, m.JournalID); err != nil {
		return fmt.Errorf("failed to delete draft lines for journal %s: %w", m.JournalID, err)
	}

	modelLines := make([]models.JournalLine, len(lines))
	for i, l := range lines {
		modelLines[i] = mapping.ToModelJournalLine(l)
	}
	if err := insertLinesInTx(ctx, tx, modelLines); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// DeleteDraft discards a draft journal and its lines. Fails once posted.
// Drafts carry no ledger effects, so no audit record is written.
func (r *PgxJournalRepository) DeleteDraft(ctx context.Context, journalID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	existing, err := lockJournalRow(ctx, tx, journalID)
	if err != nil {
		return err
	}
	if existing.Status != string(domain.Draft) {
		return fmt.Errorf("%w: journal %s has status %s", apperrors.ErrNotDraft, journalID, existing.Status)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM journal_lines WHERE journal_id = $1;`, journalID); err != nil {
		return fmt.Errorf("failed to delete lines for draft %s: %w", journalID, err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM journals WHERE journal_id = $1;`, journalID); err != nil {
		return fmt.Errorf("failed to delete draft journal %s: %w", journalID, err)
	}

	return r.Commit(ctx, tx)
}

// FindJournalByID retrieves a journal by its ID.
func (r *PgxJournalRepository) FindJournalByID(ctx context.Context, journalID string) (*domain.Journal, error) {
	query := `SELECT ` + journalColumns + ` FROM journals WHERE journal_id = $1;`

	m, err := scanJournal(r.Pool.QueryRow(ctx, query, journalID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find journal by ID %s: %w", journalID, err)
	}

	j := mapping.ToDomainJournal(m)
	return &j, nil
}

// FindLinesByJournalID retrieves all lines of one journal in line order.
func (r *PgxJournalRepository) FindLinesByJournalID(ctx context.Context, journalID string) ([]domain.JournalLine, error) {
	query := `SELECT ` + journalLineColumns + ` FROM journal_lines WHERE journal_id = $1 ORDER BY line_no;`

	rows, err := r.Pool.Query(ctx, query, journalID)
	if err != nil {
		return nil, fmt.Errorf("failed to query lines for journal %s: %w", journalID, err)
	}
	defer rows.Close()

	lines := []domain.JournalLine{}
	for rows.Next() {
		m, err := scanJournalLine(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan journal line row: %w", err)
		}
		lines = append(lines, mapping.ToDomainJournalLine(m))
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating journal line rows: %w", rows.Err())
	}

	return lines, nil
}

// FindLinesByJournalIDs retrieves lines for multiple journals, grouped by journal ID.
func (r *PgxJournalRepository) FindLinesByJournalIDs(ctx context.Context, journalIDs []string) (map[string][]domain.JournalLine, error) {
	if len(journalIDs) == 0 {
		return map[string][]domain.JournalLine{}, nil
	}

	query := `SELECT ` + journalLineColumns + ` FROM journal_lines WHERE journal_id = ANY($1) ORDER BY journal_id, line_no;`

	rows, err := r.Pool.Query(ctx, query, journalIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query lines for journals: %w", err)
	}
	defer rows.Close()

	grouped := make(map[string][]domain.JournalLine)
	for rows.Next() {
		m, err := scanJournalLine(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan journal line row during batch fetch: %w", err)
		}
		grouped[m.JournalID] = append(grouped[m.JournalID], mapping.ToDomainJournalLine(m))
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating journal line rows during batch fetch: %w", rows.Err())
	}

	return grouped, nil
}

// ListJournals retrieves a paginated list of journals using token-based pagination.
// Ordering is journal_date DESC with created_at DESC as the tie-breaker.
func (r *PgxJournalRepository) ListJournals(ctx context.Context, limit int, nextToken *string, includeReversals bool) ([]domain.Journal, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// Fetch one extra item to determine if there's a next page.
	fetchLimit := limit + 1

	baseQuery := `SELECT ` + journalColumns + ` FROM journals`

	filterClause := `WHERE TRUE`
	if !includeReversals {
		filterClause += ` AND status != 'REVERSED' AND original_journal_id IS NULL`
	}

	orderByClause := `ORDER BY journal_date DESC, created_at DESC`

	var rows pgx.Rows
	var err error
	args := []interface{}{}

	if nextToken != nil && *nextToken != "" {
		lastDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}

		cursorClause := `AND (journal_date, created_at) < ($1, $2)`
		args = append(args, lastDate, lastCreatedAt)

		query := baseQuery + " " + filterClause + " " + cursorClause + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
		args = append(args, fetchLimit)
		rows, err = r.Pool.Query(ctx, query, args...)
	} else {
		query := baseQuery + " " + filterClause + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
		args = append(args, fetchLimit)
		rows, err = r.Pool.Query(ctx, query, args...)
	}

	if err != nil {
		return nil, nil, fmt.Errorf("failed to query journals: %w", err)
	}
	defer rows.Close()

	modelJournals := make([]models.Journal, 0, fetchLimit)
	for rows.Next() {
		m, scanErr := scanJournal(rows)
		if scanErr != nil {
			return nil, nil, fmt.Errorf("failed to scan journal row: %w", scanErr)
		}
		modelJournals = append(modelJournals, m)
	}

	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating journal rows: %w", err)
	}

	var nextTokenVal *string
	if len(modelJournals) > limit {
		last := modelJournals[limit-1]
		token := pagination.EncodeToken(last.JournalDate, last.CreatedAt)
		nextTokenVal = &token
		modelJournals = modelJournals[:limit]
	}

	journals := make([]domain.Journal, len(modelJournals))
	for i, m := range modelJournals {
		journals[i] = mapping.ToDomainJournal(m)
	}

	return journals, nextTokenVal, nil
}

// FindJournalBySource returns the journal derived from a given source document, if any.
func (r *PgxJournalRepository) FindJournalBySource(ctx context.Context, sourceType domain.SourceType, sourceID string) (*domain.Journal, error) {
	query := `
		SELECT ` + journalColumns + `
		FROM journals
		WHERE source_type = $1 AND source_id = $2
		ORDER BY created_at DESC
		LIMIT 1;
	`

	m, err := scanJournal(r.Pool.QueryRow(ctx, query, string(sourceType), sourceID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find journal for source %s/%s: %w", sourceType, sourceID, err)
	}

	j := mapping.ToDomainJournal(m)
	return &j, nil
}

// lockPeriodCoveringDate finds and locks the fiscal period covering date.
// The period row lock is what serializes concurrent posting into one period:
// the gapless sequence is computed under it, and close/reopen take the same lock.
func lockPeriodCoveringDate(ctx context.Context, tx pgx.Tx, date time.Time) (models.FiscalPeriod, error) {
	query := `
		SELECT ` + fiscalPeriodColumns + `
		FROM fiscal_periods
		WHERE start_date <= $1 AND end_date >= $1
		FOR UPDATE;
	`
	m, err := scanFiscalPeriod(tx.QueryRow(ctx, query, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.FiscalPeriod{}, fmt.Errorf("%w: no fiscal period covers %s", apperrors.ErrPeriodClosedOrMissing, date.Format("2006-01-02"))
		}
		return models.FiscalPeriod{}, fmt.Errorf("failed to lock fiscal period covering %s: %w", date.Format("2006-01-02"), err)
	}
	if m.Status != string(domain.PeriodOpen) {
		return models.FiscalPeriod{}, fmt.Errorf("%w: period %s is %s", apperrors.ErrPeriodClosedOrMissing, m.PeriodID, m.Status)
	}
	return m, nil
}

// nextPostingSeq computes the next gapless posting sequence for a period.
// Must run while the period row is locked.
func nextPostingSeq(ctx context.Context, tx pgx.Tx, periodID string) (int64, error) {
	var seq int64
	query := `SELECT COALESCE(MAX(posting_seq), 0) + 1 FROM journals WHERE fiscal_period_id = $1;`
	if err := tx.QueryRow(ctx, query, periodID).Scan(&seq); err != nil {
		return 0, fmt.Errorf("failed to compute next posting sequence for period %s: %w", periodID, err)
	}
	return seq, nil
}

// applyLedgerEffects locks the affected accounts, applies balance deltas and
// computes per-line running balances. Returns the lines with running balances set.
func (r *PgxJournalRepository) applyLedgerEffects(ctx context.Context, tx pgx.Tx, lines []domain.JournalLine, actor string, now time.Time) ([]domain.JournalLine, error) {
	accountIDSet := make(map[string]struct{})
	for _, l := range lines {
		accountIDSet[l.AccountID] = struct{}{}
	}
	accountIDs := make([]string, 0, len(accountIDSet))
	for id := range accountIDSet {
		accountIDs = append(accountIDs, id)
	}

	lockedAccounts, err := r.accountRepo.FindAccountsByIDsForUpdate(ctx, tx, accountIDs)
	if err != nil {
		return nil, err
	}
	for _, acc := range lockedAccounts {
		if !acc.IsActive {
			return nil, fmt.Errorf("%w: account %s is inactive", apperrors.ErrInvalidAccount, acc.AccountID)
		}
	}

	accountTypes := make(map[string]domain.AccountType, len(lockedAccounts))
	for id, acc := range lockedAccounts {
		accountTypes[id] = acc.AccountType
	}

	balanceChanges, err := accounting.BalanceChanges(lines, accountTypes)
	if err != nil {
		return nil, fmt.Errorf("failed to compute balance changes: %w", err)
	}

	if err := r.accountRepo.UpdateAccountBalancesInTx(ctx, tx, balanceChanges, actor, now); err != nil {
		return nil, err
	}

	// Running balances start from the balance before this journal's changes
	// and accumulate line by line in line order.
	currentRunningBalances := make(map[string]decimal.Decimal)
	for id, acc := range lockedAccounts {
		currentRunningBalances[id] = acc.Balance
	}

	withBalances := make([]domain.JournalLine, len(lines))
	for i, l := range lines {
		signed, err := accounting.SignedAmount(l, accountTypes[l.AccountID])
		if err != nil {
			return nil, fmt.Errorf("failed to compute signed amount for line %d: %w", l.LineNo, err)
		}
		newBalance := currentRunningBalances[l.AccountID].Add(signed)
		currentRunningBalances[l.AccountID] = newBalance
		l.RunningBalance = newBalance
		withBalances[i] = l
	}

	return withBalances, nil
}

// PostJournal commits a draft to the ledger. The whole transition runs in one
// SERIALIZABLE transaction: period lock, sequence assignment, balance updates,
// running balances and the audit record commit together or not at all.
// Serialization conflicts are retried with exponential backoff.
func (r *PgxJournalRepository) PostJournal(ctx context.Context, journalID string, actor string, now time.Time) (*domain.Journal, error) {
	var posted *domain.Journal

	err := r.retrier.Retry(ctx, func() error {
		var err error
		posted, err = r.postJournalOnce(ctx, journalID, actor, now)
		return err
	})
	if err != nil {
		return nil, err
	}
	return posted, nil
}

func (r *PgxJournalRepository) postJournalOnce(ctx context.Context, journalID string, actor string, now time.Time) (*domain.Journal, error) {
	tx, err := r.BeginSerializable(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	m, err := lockJournalRow(ctx, tx, journalID)
	if err != nil {
		return nil, err
	}
	if m.Status != string(domain.Draft) {
		return nil, fmt.Errorf("%w: journal %s has status %s", apperrors.ErrNotDraft, journalID, m.Status)
	}

	lines, err := r.findLinesInTx(ctx, tx, journalID)
	if err != nil {
		return nil, err
	}

	// Balance is validated at draft creation too, but the posting transaction
	// is the authoritative gate.
	if err := accounting.ValidateBalance(lines); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrUnbalancedEntry, err)
	}

	period, err := lockPeriodCoveringDate(ctx, tx, m.JournalDate)
	if err != nil {
		return nil, err
	}

	seq, err := nextPostingSeq(ctx, tx, period.PeriodID)
	if err != nil {
		return nil, err
	}

	linesWithBalances, err := r.applyLedgerEffects(ctx, tx, lines, actor, now)
	if err != nil {
		return nil, err
	}

	// Persist running balances computed at posting time.
	lineUpdateQuery := `
		UPDATE journal_lines
		SET running_balance = $2, last_updated_at = $3, last_updated_by = $4
		WHERE line_id = $1;
	`
	batch := &pgx.Batch{}
	for _, l := range linesWithBalances {
		batch.Queue(lineUpdateQuery, l.LineID, l.RunningBalance, now, actor)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return nil, fmt.Errorf("failed to update running balances for journal %s: %w", journalID, err)
	}

	journalUpdateQuery := `
		UPDATE journals
		SET status = $2, fiscal_period_id = $3, posting_seq = $4, posted_at = $5, posted_by = $6, last_updated_at = $5, last_updated_by = $6
		WHERE journal_id = $1;
	`
	if _, err := tx.Exec(ctx, journalUpdateQuery, journalID, string(domain.Posted), period.PeriodID, seq, now, actor); err != nil {
		return nil, fmt.Errorf("failed to mark journal %s posted: %w", journalID, err)
	}

	after := map[string]any{"status": string(domain.Posted), "fiscalPeriodID": period.PeriodID, "postingSeq": seq}
	before := map[string]any{"status": m.Status}
	if err := insertAuditRecordInTx(ctx, tx, actor, now, "journal", journalID, domain.AuditPost, before, after); err != nil {
		return nil, err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}

	m.Status = string(domain.Posted)
	m.FiscalPeriodID = &period.PeriodID
	m.PostingSeq = &seq
	m.PostedAt = &now
	m.PostedBy = &actor
	m.LastUpdatedAt = now
	m.LastUpdatedBy = actor

	posted := mapping.ToDomainJournal(m)
	posted.Lines = linesWithBalances
	return &posted, nil
}

// PostReversingJournal saves and posts the reversing draft and marks the
// original journal REVERSED, all in one transaction.
func (r *PgxJournalRepository) PostReversingJournal(ctx context.Context, reversing domain.Journal, lines []domain.JournalLine, originalJournalID string, actor string, now time.Time) (*domain.Journal, error) {
	var posted *domain.Journal

	err := r.retrier.Retry(ctx, func() error {
		var err error
		posted, err = r.postReversingOnce(ctx, reversing, lines, originalJournalID, actor, now)
		return err
	})
	if err != nil {
		return nil, err
	}
	return posted, nil
}

func (r *PgxJournalRepository) postReversingOnce(ctx context.Context, reversing domain.Journal, lines []domain.JournalLine, originalJournalID string, actor string, now time.Time) (*domain.Journal, error) {
	tx, err := r.BeginSerializable(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	original, err := lockJournalRow(ctx, tx, originalJournalID)
	if err != nil {
		return nil, err
	}
	if original.Status != string(domain.Posted) {
		return nil, fmt.Errorf("%w: journal %s has status %s", apperrors.ErrNotPosted, originalJournalID, original.Status)
	}

	period, err := lockPeriodCoveringDate(ctx, tx, reversing.JournalDate)
	if err != nil {
		return nil, err
	}

	seq, err := nextPostingSeq(ctx, tx, period.PeriodID)
	if err != nil {
		return nil, err
	}

	linesWithBalances, err := r.applyLedgerEffects(ctx, tx, lines, actor, now)
	if err != nil {
		return nil, err
	}

	// The reversing journal is born POSTED with its posting facts set.
	reversing.Status = domain.Posted
	reversing.FiscalPeriodID = &period.PeriodID
	reversing.PostingSeq = &seq
	reversing.PostedAt = &now
	reversing.PostedBy = &actor
	reversing.OriginalJournalID = &originalJournalID

	if err := insertJournalInTx(ctx, tx, mapping.ToModelJournal(reversing)); err != nil {
		return nil, err
	}

	modelLines := make([]models.JournalLine, len(linesWithBalances))
	for i, l := range linesWithBalances {
		modelLines[i] = mapping.ToModelJournalLine(l)
	}
	if err := insertLinesInTx(ctx, tx, modelLines); err != nil {
		return nil, err
	}

	originalUpdateQuery := `
		UPDATE journals
		SET status = $2, reversing_journal_id = $3, last_updated_at = $4, last_updated_by = $5
		WHERE journal_id = $1;
	`
	if _, err := tx.Exec(ctx, originalUpdateQuery, originalJournalID, string(domain.Reversed), reversing.JournalID, now, actor); err != nil {
		return nil, fmt.Errorf("failed to mark journal %s reversed: %w", originalJournalID, err)
	}

	before := map[string]any{"status": original.Status}
	after := map[string]any{"status": string(domain.Reversed), "reversingJournalID": reversing.JournalID}
	if err := insertAuditRecordInTx(ctx, tx, actor, now, "journal", originalJournalID, domain.AuditReverse, before, after); err != nil {
		return nil, err
	}
	postAfter := map[string]any{"status": string(domain.Posted), "fiscalPeriodID": period.PeriodID, "postingSeq": seq, "originalJournalID": originalJournalID}
	if err := insertAuditRecordInTx(ctx, tx, actor, now, "journal", reversing.JournalID, domain.AuditPost, nil, postAfter); err != nil {
		return nil, err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}

	reversing.Lines = linesWithBalances
	return &reversing, nil
}

func (r *PgxJournalRepository) findLinesInTx(ctx context.Context, tx pgx.Tx, journalID string) ([]domain.JournalLine, error) {
	query := `SELECT ` + journalLineColumns + ` FROM journal_lines WHERE journal_id = $1 ORDER BY line_no;`

	rows, err := tx.Query(ctx, query, journalID)
	if err != nil {
		return nil, fmt.Errorf("failed to query lines for journal %s: %w", journalID, err)
	}
	defer rows.Close()

	lines := []domain.JournalLine{}
	for rows.Next() {
		m, err := scanJournalLine(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan journal line row: %w", err)
		}
		lines = append(lines, mapping.ToDomainJournalLine(m))
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating journal line rows: %w", rows.Err())
	}

	return lines, nil
}
