package pgsql

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/brightbooks/bright_books_app/internal/apperrors"
	"github.com/brightbooks/bright_books_app/internal/core/domain"
	portsrepo "github.com/brightbooks/bright_books_app/internal/core/ports/repositories"
	"github.com/brightbooks/bright_books_app/internal/utils/pagination"
)

// reportingRepository implements the read-only aggregation queries behind the
// financial statements and the GST return preparer.
type reportingRepository struct {
	BaseRepository
}

func newReportingRepository(db *pgxpool.Pool) portsrepo.ReportingRepositoryFacade {
	return &reportingRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

var _ portsrepo.ReportingRepositoryFacade = (*reportingRepository)(nil)

// postedFilter admits journals that have been committed to the ledger.
// REVERSED journals stay included: their lines and the reversing lines both
// remain part of history and cancel arithmetically.
const postedFilter = `j.status IN ('POSTED', 'REVERSED')`

// GetTrialBalanceData retrieves per-account debit/credit totals as of a date.
// The LEFT JOIN keeps zero-activity accounts in the result, so the aggregates
// must check j.journal_id themselves: a line whose journal is a draft or dated
// after asOf survives the join with a null j and must not be summed.
// Opening balances are folded onto the account's normal side, and each row is
// netted so only one of debit/credit is non-zero.
func (r *reportingRepository) GetTrialBalanceData(ctx context.Context, asOf time.Time) ([]domain.TrialBalanceRow, error) {
	query := `
		SELECT
			a.account_id,
			a.code,
			a.name,
			a.account_type,
			a.opening_balance,
			COALESCE(SUM(CASE WHEN j.journal_id IS NOT NULL AND l.side = 'DEBIT' THEN l.amount ELSE 0 END), 0) AS total_debit,
			COALESCE(SUM(CASE WHEN j.journal_id IS NOT NULL AND l.side = 'CREDIT' THEN l.amount ELSE 0 END), 0) AS total_credit
		FROM accounts a
		LEFT JOIN journal_lines l ON l.account_id = a.account_id
		LEFT JOIN journals j ON l.journal_id = j.journal_id AND j.journal_date <= $1 AND ` + postedFilter + `
		GROUP BY a.account_id, a.code, a.name, a.account_type, a.opening_balance
		ORDER BY a.code;
	`

	rows, err := r.Pool.Query(ctx, query, asOf)
	if err != nil {
		return nil, fmt.Errorf("error querying trial balance data: %w", err)
	}
	defer rows.Close()

	result := []domain.TrialBalanceRow{}
	for rows.Next() {
		var row domain.TrialBalanceRow
		var accountType string
		var openingBalance, totalDebit, totalCredit decimal.Decimal

		if err := rows.Scan(
			&row.AccountID,
			&row.AccountCode,
			&row.AccountName,
			&accountType,
			&openingBalance,
			&totalDebit,
			&totalCredit,
		); err != nil {
			return nil, fmt.Errorf("error scanning trial balance row: %w", err)
		}
		row.AccountType = domain.AccountType(accountType)

		// Opening balances are stored positive on the account's normal side.
		if !openingBalance.IsZero() {
			if row.AccountType.NormalBalanceSide() == domain.NormalDebit {
				totalDebit = totalDebit.Add(openingBalance)
			} else {
				totalCredit = totalCredit.Add(openingBalance)
			}
		}

		// Net each account onto a single column.
		net := totalDebit.Sub(totalCredit)
		if net.IsNegative() {
			row.Debit = decimal.Zero
			row.Credit = net.Neg()
		} else {
			row.Debit = net
			row.Credit = decimal.Zero
		}

		result = append(result, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating trial balance rows: %w", err)
	}

	return result, nil
}

// GetGeneralLedgerData retrieves a paginated ledger view of one account over a
// date range, ordered by posting sequence then line number.
func (r *reportingRepository) GetGeneralLedgerData(ctx context.Context, accountID string, from, to time.Time, limit int, nextToken *string) ([]domain.GeneralLedgerLine, *string, error) {
	if limit <= 0 {
		limit = 50
	}
	fetchLimit := limit + 1

	baseQuery := `
		SELECT j.journal_id, j.journal_date, j.description, j.posting_seq, l.line_no, l.side, l.amount, l.running_balance, l.memo
		FROM journal_lines l
		JOIN journals j ON l.journal_id = j.journal_id
		WHERE l.account_id = $1 AND j.journal_date BETWEEN $2 AND $3 AND ` + postedFilter

	orderByClause := `ORDER BY j.posting_seq, l.line_no`

	var rows pgx.Rows
	var err error
	args := []interface{}{accountID, from, to}

	if nextToken != nil && *nextToken != "" {
		lastSeq, lastLineNo, decodeErr := pagination.DecodeSeqToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}

		cursorClause := `AND (j.posting_seq, l.line_no) > ($4, $5)`
		args = append(args, lastSeq, lastLineNo)

		query := baseQuery + " " + cursorClause + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
		args = append(args, fetchLimit)
		rows, err = r.Pool.Query(ctx, query, args...)
	} else {
		query := baseQuery + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
		args = append(args, fetchLimit)
		rows, err = r.Pool.Query(ctx, query, args...)
	}

	if err != nil {
		return nil, nil, fmt.Errorf("error querying general ledger data for account %s: %w", accountID, err)
	}
	defer rows.Close()

	lines := make([]domain.GeneralLedgerLine, 0, fetchLimit)
	for rows.Next() {
		var line domain.GeneralLedgerLine
		var side string

		if err := rows.Scan(
			&line.JournalID,
			&line.JournalDate,
			&line.Description,
			&line.PostingSeq,
			&line.LineNo,
			&side,
			&line.Amount,
			&line.RunningBalance,
			&line.Memo,
		); err != nil {
			return nil, nil, fmt.Errorf("error scanning general ledger row: %w", err)
		}
		line.Side = domain.EntrySide(side)
		lines = append(lines, line)
	}

	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating general ledger rows: %w", err)
	}

	var nextTokenVal *string
	if len(lines) > limit {
		last := lines[limit-1]
		token := pagination.EncodeSeqToken(last.PostingSeq, last.LineNo)
		nextTokenVal = &token
		lines = lines[:limit]
	}

	return lines, nextTokenVal, nil
}

// GetProfitAndLossData retrieves income and expense nets for a date range.
// Income is credit-normal, expenses are debit-normal; nets are oriented so a
// normal balance is positive.
func (r *reportingRepository) GetProfitAndLossData(ctx context.Context, from, to time.Time) ([]domain.AccountAmount, []domain.AccountAmount, error) {
	query := `
		SELECT
			a.account_type,
			a.account_id,
			a.code,
			a.name,
			SUM(CASE WHEN l.side = 'DEBIT' THEN l.amount ELSE -l.amount END) AS net
		FROM journal_lines l
		JOIN accounts a ON l.account_id = a.account_id
		JOIN journals j ON l.journal_id = j.journal_id
		WHERE j.journal_date BETWEEN $1 AND $2
			AND ` + postedFilter + `
			AND a.account_type IN ('INCOME', 'EXPENSE')
		GROUP BY a.account_type, a.account_id, a.code, a.name
		ORDER BY a.code;
	`

	rows, err := r.Pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, nil, fmt.Errorf("error querying profit and loss data: %w", err)
	}
	defer rows.Close()

	income := []domain.AccountAmount{}
	expenses := []domain.AccountAmount{}

	for rows.Next() {
		var accountType string
		var amount domain.AccountAmount
		var net decimal.Decimal

		if err := rows.Scan(&accountType, &amount.AccountID, &amount.AccountCode, &amount.Name, &net); err != nil {
			return nil, nil, fmt.Errorf("error scanning profit and loss row: %w", err)
		}

		switch domain.AccountType(accountType) {
		case domain.Income:
			// Credits increase income, so the debit-minus-credit net is inverted.
			amount.NetAmount = net.Neg()
			income = append(income, amount)
		case domain.Expense:
			amount.NetAmount = net
			expenses = append(expenses, amount)
		}
	}

	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating profit and loss rows: %w", err)
	}

	return income, expenses, nil
}

// GetBalanceSheetData retrieves per-account nets as of a date, grouped by
// account type. All five types are returned; the service folds income and
// expense into a current-earnings equity line so the accounting identity can
// be checked.
func (r *reportingRepository) GetBalanceSheetData(ctx context.Context, asOf time.Time) (map[domain.AccountType][]domain.AccountAmount, error) {
	query := `
		SELECT
			a.account_type,
			a.account_id,
			a.code,
			a.name,
			a.opening_balance,
			COALESCE(SUM(CASE WHEN j.journal_id IS NULL THEN 0 WHEN l.side = 'DEBIT' THEN l.amount ELSE -l.amount END), 0) AS net
		FROM accounts a
		LEFT JOIN journal_lines l ON l.account_id = a.account_id
		LEFT JOIN journals j ON l.journal_id = j.journal_id AND j.journal_date <= $1 AND ` + postedFilter + `
		GROUP BY a.account_type, a.account_id, a.code, a.name, a.opening_balance
		ORDER BY a.code;
	`

	rows, err := r.Pool.Query(ctx, query, asOf)
	if err != nil {
		return nil, fmt.Errorf("error querying balance sheet data: %w", err)
	}
	defer rows.Close()

	result := make(map[domain.AccountType][]domain.AccountAmount)
	for rows.Next() {
		var accountType string
		var amount domain.AccountAmount
		var openingBalance, net decimal.Decimal

		if err := rows.Scan(&accountType, &amount.AccountID, &amount.AccountCode, &amount.Name, &openingBalance, &net); err != nil {
			return nil, fmt.Errorf("error scanning balance sheet row: %w", err)
		}

		t := domain.AccountType(accountType)
		// Orient the net so a normal balance is positive, then fold in the
		// opening balance (stored positive on the normal side).
		if t.NormalBalanceSide() == domain.NormalCredit {
			net = net.Neg()
		}
		amount.NetAmount = net.Add(openingBalance)

		result[t] = append(result[t], amount)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating balance sheet rows: %w", err)
	}

	return result, nil
}

// GetTaxedLineTotals aggregates posted tax-coded lines within the range,
// grouped by tax kind, account type and side.
func (r *reportingRepository) GetTaxedLineTotals(ctx context.Context, from, to time.Time) ([]domain.TaxedLineTotal, error) {
	query := `
		SELECT tc.kind, a.account_type, l.side, SUM(l.amount) AS total
		FROM journal_lines l
		JOIN journals j ON l.journal_id = j.journal_id
		JOIN accounts a ON l.account_id = a.account_id
		JOIN tax_codes tc ON l.tax_code_id = tc.tax_code_id
		WHERE j.journal_date BETWEEN $1 AND $2
			AND ` + postedFilter + `
		GROUP BY tc.kind, a.account_type, l.side;
	`

	rows, err := r.Pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("error querying taxed line totals: %w", err)
	}
	defer rows.Close()

	totals := []domain.TaxedLineTotal{}
	for rows.Next() {
		var kind, accountType, side string
		var total decimal.Decimal

		if err := rows.Scan(&kind, &accountType, &side, &total); err != nil {
			return nil, fmt.Errorf("error scanning taxed line total row: %w", err)
		}

		totals = append(totals, domain.TaxedLineTotal{
			TaxKind:     domain.TaxKind(kind),
			AccountType: domain.AccountType(accountType),
			Side:        domain.EntrySide(side),
			Total:       total,
		})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating taxed line total rows: %w", err)
	}

	return totals, nil
}

// GetAccountMovement returns the debit and credit totals of one account over
// a date range.
func (r *reportingRepository) GetAccountMovement(ctx context.Context, accountID string, from, to time.Time) (*domain.AccountMovement, error) {
	query := `
		SELECT
			COALESCE(SUM(CASE WHEN l.side = 'DEBIT' THEN l.amount ELSE 0 END), 0) AS total_debit,
			COALESCE(SUM(CASE WHEN l.side = 'CREDIT' THEN l.amount ELSE 0 END), 0) AS total_credit
		FROM journal_lines l
		JOIN journals j ON l.journal_id = j.journal_id
		WHERE l.account_id = $1
			AND j.journal_date BETWEEN $2 AND $3
			AND ` + postedFilter + `;
	`

	movement := &domain.AccountMovement{AccountID: accountID}
	if err := r.Pool.QueryRow(ctx, query, accountID, from, to).Scan(&movement.Debit, &movement.Credit); err != nil {
		return nil, fmt.Errorf("error querying account movement for %s: %w", accountID, err)
	}

	return movement, nil
}
