package mapping

import (
	"github.com/brightbooks/bright_books_app/internal/core/domain"
	"github.com/brightbooks/bright_books_app/internal/models"
)

// ToModelJournal converts a domain Journal to a model Journal.
func ToModelJournal(d domain.Journal) models.Journal {
	return models.Journal{
		JournalID:          d.JournalID,
		JournalDate:        d.JournalDate,
		Description:        d.Description,
		CurrencyCode:       d.CurrencyCode,
		Status:             string(d.Status),
		SourceType:         string(d.SourceType),
		SourceID:           d.SourceID,
		Amount:             d.Amount,
		FiscalPeriodID:     d.FiscalPeriodID,
		PostingSeq:         d.PostingSeq,
		PostedAt:           d.PostedAt,
		PostedBy:           d.PostedBy,
		OriginalJournalID:  d.OriginalJournalID,
		ReversingJournalID: d.ReversingJournalID,
		AuditFields:        ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainJournal converts a model Journal to a domain Journal.
func ToDomainJournal(m models.Journal) domain.Journal {
	return domain.Journal{
		JournalID:          m.JournalID,
		JournalDate:        m.JournalDate,
		Description:        m.Description,
		CurrencyCode:       m.CurrencyCode,
		Status:             domain.JournalStatus(m.Status),
		SourceType:         domain.SourceType(m.SourceType),
		SourceID:           m.SourceID,
		Amount:             m.Amount,
		FiscalPeriodID:     m.FiscalPeriodID,
		PostingSeq:         m.PostingSeq,
		PostedAt:           m.PostedAt,
		PostedBy:           m.PostedBy,
		OriginalJournalID:  m.OriginalJournalID,
		ReversingJournalID: m.ReversingJournalID,
		AuditFields:        ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelJournalLine converts a domain JournalLine to a model JournalLine.
func ToModelJournalLine(d domain.JournalLine) models.JournalLine {
	return models.JournalLine{
		LineID:         d.LineID,
		JournalID:      d.JournalID,
		LineNo:         d.LineNo,
		AccountID:      d.AccountID,
		Side:           string(d.Side),
		Amount:         d.Amount,
		TaxCodeID:      d.TaxCodeID,
		Memo:           d.Memo,
		RunningBalance: d.RunningBalance,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainJournalLine converts a model JournalLine to a domain JournalLine.
func ToDomainJournalLine(m models.JournalLine) domain.JournalLine {
	return domain.JournalLine{
		LineID:         m.LineID,
		JournalID:      m.JournalID,
		LineNo:         m.LineNo,
		AccountID:      m.AccountID,
		Side:           domain.EntrySide(m.Side),
		Amount:         m.Amount,
		TaxCodeID:      m.TaxCodeID,
		Memo:           m.Memo,
		RunningBalance: m.RunningBalance,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}
