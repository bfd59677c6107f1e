package dto

import (
	"time"

	"github.com/brightbooks/bright_books_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateLineRequest defines one line of a draft journal entry. Exactly one of
// debit/credit semantics is carried by Side; Amount must be positive.
type CreateLineRequest struct {
	AccountID string           `json:"accountID" binding:"required"`
	Side      domain.EntrySide `json:"side" binding:"required,oneof=DEBIT CREDIT"`
	Amount    decimal.Decimal  `json:"amount" binding:"required,dpositive"`
	TaxCodeID *string          `json:"taxCodeID"`
	Memo      string           `json:"memo"`
}

// CreateJournalRequest defines the payload for creating a draft journal entry.
type CreateJournalRequest struct {
	Date        time.Time           `json:"date" binding:"required" time_format:"2006-01-02"`
	Description string              `json:"description" binding:"required"`
	Lines       []CreateLineRequest `json:"lines" binding:"required,min=2,dive"`
}

// UpdateJournalRequest defines the editable fields of a draft.
type UpdateJournalRequest struct {
	Date        *time.Time          `json:"date" time_format:"2006-01-02"`
	Description *string             `json:"description"`
	Lines       []CreateLineRequest `json:"lines"`
}

// ListJournalsParams holds parameters for listing journals.
type ListJournalsParams struct {
	Limit            int     `form:"limit"`
	NextToken        *string `form:"nextToken"`
	IncludeReversals bool    `form:"includeReversals"`
	IncludeLines     bool    `form:"includeLines"`
}

// LineResponse defines the data returned for a journal line.
type LineResponse struct {
	LineID    string          `json:"lineID"`
	LineNo    int             `json:"lineNo"`
	AccountID string          `json:"accountID"`
	Side      string          `json:"side"`
	Amount    decimal.Decimal `json:"amount"`
	TaxCodeID *string         `json:"taxCodeID"`
	Memo      string          `json:"memo"`
}

// JournalResponse defines the data returned for a journal entry.
type JournalResponse struct {
	JournalID      string          `json:"journalID"`
	Date           time.Time       `json:"date"`
	Description    string          `json:"description"`
	CurrencyCode   string          `json:"currencyCode"`
	Status         string          `json:"status"`
	SourceType     string          `json:"sourceType"`
	SourceID       *string         `json:"sourceID,omitempty"`
	Amount         decimal.Decimal `json:"amount"`
	FiscalPeriodID *string         `json:"fiscalPeriodID,omitempty"`
	PostingSeq     *int64          `json:"postingSeq,omitempty"`
	PostedAt       *time.Time      `json:"postedAt,omitempty"`
	PostedBy       *string         `json:"postedBy,omitempty"`
	OriginalJournalID  *string     `json:"originalJournalID,omitempty"`
	ReversingJournalID *string     `json:"reversingJournalID,omitempty"`
	CreatedAt      time.Time       `json:"createdAt"`
	CreatedBy      string          `json:"createdBy"`
	Lines          []LineResponse  `json:"lines,omitempty"`
}

// ListJournalsResponse is a paginated list of journals.
type ListJournalsResponse struct {
	Journals  []JournalResponse `json:"journals"`
	NextToken *string           `json:"nextToken,omitempty"`
}

// ToLineResponse converts a domain.JournalLine to LineResponse.
func ToLineResponse(l *domain.JournalLine) LineResponse {
	return LineResponse{
		LineID:    l.LineID,
		LineNo:    l.LineNo,
		AccountID: l.AccountID,
		Side:      string(l.Side),
		Amount:    l.Amount,
		TaxCodeID: l.TaxCodeID,
		Memo:      l.Memo,
	}
}

// ToJournalResponse converts a domain.Journal to JournalResponse.
func ToJournalResponse(j *domain.Journal) JournalResponse {
	resp := JournalResponse{
		JournalID:          j.JournalID,
		Date:               j.JournalDate,
		Description:        j.Description,
		CurrencyCode:       j.CurrencyCode,
		Status:             string(j.Status),
		SourceType:         string(j.SourceType),
		SourceID:           j.SourceID,
		Amount:             j.Amount,
		FiscalPeriodID:     j.FiscalPeriodID,
		PostingSeq:         j.PostingSeq,
		PostedAt:           j.PostedAt,
		PostedBy:           j.PostedBy,
		OriginalJournalID:  j.OriginalJournalID,
		ReversingJournalID: j.ReversingJournalID,
		CreatedAt:          j.CreatedAt,
		CreatedBy:          j.CreatedBy,
	}
	for i := range j.Lines {
		resp.Lines = append(resp.Lines, ToLineResponse(&j.Lines[i]))
	}
	return resp
}
