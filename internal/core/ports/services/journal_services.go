package services

import (
	"context"

	"github.com/SscSPs/ledger_core/internal/core/domain"
	"github.com/SscSPs/ledger_core/internal/dto"
)

// JournalReaderSvc defines read operations for journal entries.
type JournalReaderSvc interface {
	GetEntry(ctx context.Context, entryID string) (*domain.JournalEntry, error)
	GetEntryByNumber(ctx context.Context, entryNumber string) (*domain.JournalEntry, error)
	ListEntries(ctx context.Context, params dto.ListJournalEntriesParams) (*dto.ListJournalEntriesResponse, error)
}

// JournalWriterSvc defines the journal entry lifecycle: DRAFT -> POSTED -> VOID, or DRAFT -> deleted.
type JournalWriterSvc interface {
	// CreateEntry validates and stores a new draft entry.
	CreateEntry(ctx context.Context, req dto.CreateJournalEntryRequest, createdBy string) (*domain.JournalEntry, error)

	// UpdateEntry replaces the fields and lines of a draft entry.
	UpdateEntry(ctx context.Context, entryID string, req dto.UpdateJournalEntryRequest, userID string) (*domain.JournalEntry, error)

	// PostEntry freezes a draft entry and makes it count toward balances.
	PostEntry(ctx context.Context, entryID string, userID string) (*domain.JournalEntry, error)

	// VoidEntry marks a posted entry void.
	VoidEntry(ctx context.Context, entryID string, userID string) (*domain.JournalEntry, error)

	// DeleteEntry removes a draft entry.
	DeleteEntry(ctx context.Context, entryID string, userID string) error

	// CreateAndPostEntry creates and posts an entry in one transaction.
	CreateAndPostEntry(ctx context.Context, req dto.CreateJournalEntryRequest, createdBy string) (*domain.JournalEntry, error)
}

// JournalSvcFacade combines all journal-related service interfaces
type JournalSvcFacade interface {
	JournalReaderSvc
	JournalWriterSvc
}
