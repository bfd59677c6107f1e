package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConflict indicates the operation conflicts with the current state of the resource.
var ErrConflict = errors.New("operation conflicts with resource state")

// ErrInternal indicates an unexpected internal failure.
var ErrInternal = errors.New("internal error")

// Chart of accounts errors.
var (
	// ErrDuplicateCode indicates an account code is already taken.
	ErrDuplicateCode = errors.New("account code already exists")
	// ErrInvalidParent indicates the parent account is missing or the change would create a cycle.
	ErrInvalidParent = errors.New("invalid parent account")
	// ErrAccountHasPostings indicates the account classification cannot change once journal lines reference it.
	ErrAccountHasPostings = errors.New("account has postings")
	// ErrAccountHasOpenBalance indicates the account cannot be deactivated while its balance is non-zero.
	ErrAccountHasOpenBalance = errors.New("account has a non-zero balance")
	// ErrInvalidAccount indicates a journal line references an account that is inactive or not postable.
	ErrInvalidAccount = errors.New("account is inactive or not postable")
)

// Fiscal calendar errors.
var (
	// ErrOverlappingFiscalYear indicates the new year intersects an existing fiscal year.
	ErrOverlappingFiscalYear = errors.New("fiscal year overlaps an existing fiscal year")
	// ErrNonDivisibleRange indicates period generation was asked for an unusable granularity.
	ErrNonDivisibleRange = errors.New("fiscal year range cannot be divided for the requested granularity")
	// ErrNoOpenPeriod indicates no fiscal period covers the given date.
	ErrNoOpenPeriod = errors.New("no fiscal period covers the given date")
	// ErrPeriodAlreadyClosed indicates the period has already been closed.
	ErrPeriodAlreadyClosed = errors.New("fiscal period is already closed")
	// ErrPeriodNotClosed indicates a reopen was requested for a period that is open.
	ErrPeriodNotClosed = errors.New("fiscal period is not closed")
	// ErrPeriodClosedOrMissing indicates posting could not resolve an open period for the entry date.
	ErrPeriodClosedOrMissing = errors.New("no open fiscal period covers the entry date")
)

// Tax errors.
var (
	// ErrTaxCodeNotEffective indicates no tax code with the given code is effective at the date.
	ErrTaxCodeNotEffective = errors.New("no tax code effective at the given date")
)

// Posting engine errors.
var (
	// ErrUnbalancedEntry indicates the debit and credit sums of an entry differ.
	ErrUnbalancedEntry = errors.New("journal entry debits and credits do not balance")
	// ErrNotDraft indicates a post was attempted on an entry that is not a draft.
	ErrNotDraft = errors.New("journal entry is not a draft")
	// ErrNotPosted indicates a reversal was attempted on an entry that is not posted.
	ErrNotPosted = errors.New("journal entry is not posted")
)

// Source-document translation errors.
var (
	// ErrUnmappedAccount indicates a required account-role mapping is missing.
	ErrUnmappedAccount = errors.New("no ledger account mapped for the required role")
	// ErrEmptyDocument indicates the document has no line items.
	ErrEmptyDocument = errors.New("document has no line items")
)

// GST return errors.
var (
	// ErrReturnAlreadyFinalized indicates finalize was called on a finalized return.
	ErrReturnAlreadyFinalized = errors.New("GST return is already finalized")
)

// ErrStorageUnavailable indicates a fatal persistence failure (e.g. connectivity loss).
// The transaction in flight either committed or rolled back fully; no entry is left ambiguous.
var ErrStorageUnavailable = errors.New("storage unavailable")
