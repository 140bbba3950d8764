package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/ledger_core/internal/apperrors"
	"github.com/SscSPs/ledger_core/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_core/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_core/internal/core/ports/services"
	"github.com/SscSPs/ledger_core/internal/dto"
	"github.com/SscSPs/ledger_core/internal/utils/accounting"
	"github.com/SscSPs/ledger_core/internal/utils/pagination"
	"github.com/SscSPs/ledger_core/internal/utils/validation"
	"github.com/google/uuid"
)

const maxEntryPageSize = 100

// journalService records journal entries and drives their DRAFT -> POSTED -> VOID lifecycle.
type journalService struct {
	BaseService
	txManager   portsrepo.TransactionManager
	journalRepo portsrepo.JournalRepositoryFacade
	accountRepo portsrepo.AccountReader
	sequence    portssvc.SequenceSvc
	fiscalYears portsrepo.FiscalYearReader // nil disables the posting guard
}

// JournalOption configures the journal service.
type JournalOption func(*journalService)

// WithFiscalYearGuard requires an open fiscal year containing the entry date on posting.
func WithFiscalYearGuard(repo portsrepo.FiscalYearReader) JournalOption {
	return func(s *journalService) {
		s.fiscalYears = repo
	}
}

// WithJournalClock overrides the clock used for postedAt and audit fields.
func WithJournalClock(now func() time.Time) JournalOption {
	return func(s *journalService) {
		s.now = now
	}
}

// NewJournalService creates the journal entry engine.
func NewJournalService(
	txManager portsrepo.TransactionManager,
	journalRepo portsrepo.JournalRepositoryFacade,
	accountRepo portsrepo.AccountReader,
	sequence portssvc.SequenceSvc,
	options ...JournalOption,
) portssvc.JournalSvcFacade {
	svc := &journalService{
		txManager:   txOrDirect(txManager),
		journalRepo: journalRepo,
		accountRepo: accountRepo,
		sequence:    sequence,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.JournalSvcFacade = (*journalService)(nil)

func buildLines(entryID string, reqLines []dto.JournalLineRequest) []domain.JournalEntryLine {
	lines := make([]domain.JournalEntryLine, len(reqLines))
	for i, l := range reqLines {
		lines[i] = domain.JournalEntryLine{
			LineID:       uuid.NewString(),
			EntryID:      entryID,
			LineNumber:   i + 1,
			AccountID:    l.AccountID,
			DebitAmount:  l.DebitAmount,
			CreditAmount: l.CreditAmount,
			Description:  strings.TrimSpace(l.Description),
		}
	}
	return lines
}

// checkAccounts verifies every referenced account exists and is active.
func (s *journalService) checkAccounts(ctx context.Context, entry domain.JournalEntry) error {
	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, entry.AccountIDs())
	if err != nil {
		return err
	}
	for _, l := range entry.Lines {
		account, ok := accounts[l.AccountID]
		if !ok {
			return apperrors.NewDomainError("Account not found: %s", l.AccountID)
		}
		if !account.IsActive {
			return apperrors.NewDomainError("Cannot use inactive account: %s", account.Code)
		}
	}
	return nil
}

func (s *journalService) checkFiscalYear(ctx context.Context, date time.Time) error {
	if s.fiscalYears == nil {
		return nil
	}
	fy, err := s.fiscalYears.FindFiscalYearForDate(ctx, date)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewDomainError("No open fiscal year for date %s", date.Format("2006-01-02"))
		}
		return err
	}
	if fy.IsClosed {
		return apperrors.NewDomainError("Fiscal year %s is closed", fy.Name)
	}
	return nil
}

func (s *journalService) CreateEntry(ctx context.Context, req dto.CreateJournalEntryRequest, createdBy string) (*domain.JournalEntry, error) {
	req.Description = strings.TrimSpace(req.Description)
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	entryID := uuid.NewString()
	entry := domain.JournalEntry{
		EntryID:     entryID,
		EntryDate:   domain.DateOnly(req.EntryDate),
		Description: req.Description,
		Reference:   strings.TrimSpace(req.Reference),
		Status:      domain.EntryDraft,
		Lines:       buildLines(entryID, req.Lines),
		AuditFields: domain.NewAuditFields(s.Now(), createdBy),
	}
	if err := accounting.ValidateEntryLines(entry.Lines); err != nil {
		return nil, err
	}

	err := s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.checkAccounts(ctx, entry); err != nil {
			return err
		}
		number, err := s.sequence.Next(ctx, domain.JournalEntryPrefix, domain.PeriodOf(entry.EntryDate))
		if err != nil {
			return err
		}
		entry.EntryNumber = number
		return s.journalRepo.SaveEntry(ctx, entry)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to create journal entry", slog.String("user_id", createdBy))
		return nil, err
	}

	s.LogInfo(ctx, "Journal entry created",
		slog.String("entry_id", entry.EntryID),
		slog.String("entry_number", entry.EntryNumber))
	return &entry, nil
}

func (s *journalService) UpdateEntry(ctx context.Context, entryID string, req dto.UpdateJournalEntryRequest, userID string) (*domain.JournalEntry, error) {
	req.Description = strings.TrimSpace(req.Description)
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	var entry *domain.JournalEntry
	err := s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		entry, err = s.journalRepo.FindEntryForUpdate(ctx, entryID)
		if err != nil {
			return err
		}
		if !entry.IsDraft() {
			return apperrors.NewDomainError("Only draft entries can be modified")
		}

		entry.EntryDate = domain.DateOnly(req.EntryDate)
		entry.Description = req.Description
		entry.Reference = strings.TrimSpace(req.Reference)
		entry.Lines = buildLines(entry.EntryID, req.Lines)
		if err := accounting.ValidateEntryLines(entry.Lines); err != nil {
			return err
		}
		if err := s.checkAccounts(ctx, *entry); err != nil {
			return err
		}
		entry.Touch(s.Now(), userID)
		return s.journalRepo.UpdateEntry(ctx, *entry)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to update journal entry", slog.String("entry_id", entryID))
		return nil, err
	}
	return entry, nil
}

// PostEntry freezes a draft and makes its lines count toward balances.
func (s *journalService) PostEntry(ctx context.Context, entryID string, userID string) (*domain.JournalEntry, error) {
	var entry *domain.JournalEntry
	err := s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		entry, err = s.journalRepo.FindEntryForUpdate(ctx, entryID)
		if err != nil {
			return err
		}
		if !entry.IsDraft() {
			return apperrors.NewDomainError("Only draft entries can be posted")
		}
		if err := accounting.ValidateEntryLines(entry.Lines); err != nil {
			return err
		}
		if err := s.checkAccounts(ctx, *entry); err != nil {
			return err
		}
		if err := s.checkFiscalYear(ctx, entry.EntryDate); err != nil {
			return err
		}

		now := s.Now()
		if err := s.journalRepo.UpdateEntryStatus(ctx, entryID, domain.EntryPosted, &now, userID, now); err != nil {
			return err
		}
		entry.Status = domain.EntryPosted
		entry.PostedAt = &now
		entry.Touch(now, userID)
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to post journal entry", slog.String("entry_id", entryID))
		return nil, err
	}

	s.LogInfo(ctx, "Journal entry posted",
		slog.String("entry_id", entry.EntryID),
		slog.String("entry_number", entry.EntryNumber))
	return entry, nil
}

// VoidEntry marks a posted entry void. The entry and its lines are kept.
func (s *journalService) VoidEntry(ctx context.Context, entryID string, userID string) (*domain.JournalEntry, error) {
	var entry *domain.JournalEntry
	err := s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		entry, err = s.journalRepo.FindEntryForUpdate(ctx, entryID)
		if err != nil {
			return err
		}
		switch entry.Status {
		case domain.EntryVoid:
			return apperrors.NewDomainError("Entry is already void")
		case domain.EntryPosted:
		default:
			return apperrors.NewDomainError("Only posted entries can be voided")
		}

		now := s.Now()
		if err := s.journalRepo.UpdateEntryStatus(ctx, entryID, domain.EntryVoid, nil, userID, now); err != nil {
			return err
		}
		entry.Status = domain.EntryVoid
		entry.Touch(now, userID)
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to void journal entry", slog.String("entry_id", entryID))
		return nil, err
	}

	s.LogInfo(ctx, "Journal entry voided", slog.String("entry_id", entryID))
	return entry, nil
}

func (s *journalService) DeleteEntry(ctx context.Context, entryID string, userID string) error {
	err := s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		entry, err := s.journalRepo.FindEntryForUpdate(ctx, entryID)
		if err != nil {
			return err
		}
		if !entry.IsDraft() {
			return apperrors.NewDomainError("Only draft entries can be deleted")
		}
		return s.journalRepo.DeleteEntry(ctx, entryID)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to delete journal entry", slog.String("entry_id", entryID))
		return err
	}
	s.LogInfo(ctx, "Journal entry deleted", slog.String("entry_id", entryID), slog.String("user_id", userID))
	return nil
}

// CreateAndPostEntry creates and posts in one transaction; a failed post leaves no draft behind.
func (s *journalService) CreateAndPostEntry(ctx context.Context, req dto.CreateJournalEntryRequest, createdBy string) (*domain.JournalEntry, error) {
	var posted *domain.JournalEntry
	err := s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		entry, err := s.CreateEntry(ctx, req, createdBy)
		if err != nil {
			return err
		}
		posted, err = s.PostEntry(ctx, entry.EntryID, createdBy)
		return err
	})
	if err != nil {
		return nil, err
	}
	return posted, nil
}

func (s *journalService) GetEntry(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	return s.journalRepo.FindEntryByID(ctx, entryID)
}

func (s *journalService) GetEntryByNumber(ctx context.Context, entryNumber string) (*domain.JournalEntry, error) {
	return s.journalRepo.FindEntryByNumber(ctx, entryNumber)
}

// ListEntries returns one page of entries, newest first.
func (s *journalService) ListEntries(ctx context.Context, params dto.ListJournalEntriesParams) (*dto.ListJournalEntriesResponse, error) {
	if err := validation.Struct(params); err != nil {
		return nil, err
	}
	if params.FromDate != nil && params.ToDate != nil && params.ToDate.Before(*params.FromDate) {
		return nil, apperrors.NewValidationError("toDate", "must not be before fromDate")
	}

	filter := domain.EntryFilter{Status: params.Status, FromDate: params.FromDate, ToDate: params.ToDate}
	limit := pagination.NormalizeLimit(params.Limit, maxEntryPageSize)

	entries, nextToken, err := s.journalRepo.ListEntries(ctx, filter, limit, params.NextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list journal entries")
		return nil, err
	}
	resp := dto.ToListJournalEntriesResponse(entries, nextToken)
	return &resp, nil
}
