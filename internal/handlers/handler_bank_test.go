package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/SscSPs/ledger_core/internal/apperrors"
	"github.com/SscSPs/ledger_core/internal/core/domain"
	portssvc "github.com/SscSPs/ledger_core/internal/core/ports/services"
	"github.com/SscSPs/ledger_core/internal/dto"
	"github.com/SscSPs/ledger_core/internal/handlers"
	"github.com/SscSPs/ledger_core/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- Mock BankService ---
type MockBankService struct {
	mock.Mock
}

func (m *MockBankService) account(args mock.Arguments) (*domain.BankAccount, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BankAccount), args.Error(1)
}

func (m *MockBankService) line(args mock.Arguments) (*domain.BankStatementLine, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BankStatementLine), args.Error(1)
}

func (m *MockBankService) lines(args mock.Arguments) ([]domain.BankStatementLine, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BankStatementLine), args.Error(1)
}

func (m *MockBankService) CreateBankAccount(ctx context.Context, req dto.CreateBankAccountRequest, userID string) (*domain.BankAccount, error) {
	return m.account(m.Called(ctx, req.GLAccountID, userID))
}
func (m *MockBankService) UpdateBankAccount(ctx context.Context, bankAccountID string, req dto.UpdateBankAccountRequest, userID string) (*domain.BankAccount, error) {
	return m.account(m.Called(ctx, bankAccountID, req, userID))
}
func (m *MockBankService) GetBankAccount(ctx context.Context, bankAccountID string) (*domain.BankAccount, error) {
	return m.account(m.Called(ctx, bankAccountID))
}
func (m *MockBankService) ListBankAccounts(ctx context.Context, activeOnly bool) ([]domain.BankAccount, error) {
	args := m.Called(ctx, activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BankAccount), args.Error(1)
}
func (m *MockBankService) ImportStatement(ctx context.Context, bankAccountID string, req dto.ImportStatementRequest, userID string) ([]domain.BankStatementLine, error) {
	return m.lines(m.Called(ctx, bankAccountID, len(req.Lines), userID))
}
func (m *MockBankService) ListStatementLines(ctx context.Context, bankAccountID string, params dto.ListStatementLinesParams) ([]domain.BankStatementLine, error) {
	return m.lines(m.Called(ctx, bankAccountID, params.UnreconciledOnly))
}
func (m *MockBankService) ReconcileStatementLine(ctx context.Context, statementLineID, journalLineID string, userID string) (*domain.BankStatementLine, error) {
	return m.line(m.Called(ctx, statementLineID, journalLineID, userID))
}
func (m *MockBankService) UnreconcileStatementLine(ctx context.Context, statementLineID string, userID string) (*domain.BankStatementLine, error) {
	return m.line(m.Called(ctx, statementLineID, userID))
}
func (m *MockBankService) GetReconciledBalance(ctx context.Context, bankAccountID string) (decimal.Decimal, error) {
	args := m.Called(ctx, bankAccountID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}
func (m *MockBankService) GetReconciliationSummary(ctx context.Context, bankAccountID string) (*domain.ReconciliationSummary, error) {
	args := m.Called(ctx, bankAccountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReconciliationSummary), args.Error(1)
}
func (m *MockBankService) FindPotentialMatches(ctx context.Context, statementLineID string) (*domain.BankStatementLine, []domain.PostedLine, error) {
	args := m.Called(ctx, statementLineID)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.BankStatementLine), args.Get(1).([]domain.PostedLine), args.Error(2)
}

var _ portssvc.BankSvcFacade = (*MockBankService)(nil)

func newBankRouter(svc *MockBankService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(testJWTSecret))
	handlers.RegisterBankRoutes(v1, svc)
	return r
}

func TestCreateBankAccount_RequiresGLAccount(t *testing.T) {
	userID := uuid.NewString()
	svc := new(MockBankService)
	svc.On("CreateBankAccount", mock.Anything, "revenue", userID).
		Return(nil, apperrors.NewDomainError("Bank account must be linked to an asset account: %s", "4000")).Once()
	r := newBankRouter(svc)

	w := serve(t, r, http.MethodPost, "/api/v1/bank-accounts", userID, dto.CreateBankAccountRequest{AccountName: "Operating"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = serve(t, r, http.MethodPost, "/api/v1/bank-accounts", userID, dto.CreateBankAccountRequest{AccountName: "Operating", GLAccountID: "revenue"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "Bank account must be linked to an asset account: 4000")

	svc.AssertExpectations(t)
}

func TestImportStatement(t *testing.T) {
	userID := uuid.NewString()
	date := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	imported := []domain.BankStatementLine{
		{StatementLineID: "s-1", BankAccountID: "b-1", StatementDate: date, TransactionDate: date, CreditAmount: decimal.NewFromInt(50)},
	}
	svc := new(MockBankService)
	svc.On("ImportStatement", mock.Anything, "b-1", 1, userID).Return(imported, nil).Once()
	r := newBankRouter(svc)

	w := serve(t, r, http.MethodPost, "/api/v1/bank-accounts/b-1/statements", userID, dto.ImportStatementRequest{})
	assert.Equal(t, http.StatusBadRequest, w.Code, "an empty batch is rejected")

	w = serve(t, r, http.MethodPost, "/api/v1/bank-accounts/b-1/statements", userID, dto.ImportStatementRequest{
		Lines: []dto.StatementLineRequest{{StatementDate: date, CreditAmount: decimal.NewFromInt(50)}},
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var resp dto.ListStatementLinesResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Lines, 1)
	assert.True(t, resp.Lines[0].NetAmount.Equal(decimal.NewFromInt(50)))
	assert.False(t, resp.Lines[0].IsReconciled)

	svc.AssertExpectations(t)
}

func TestReconcileStatementLine(t *testing.T) {
	userID := uuid.NewString()
	svc := new(MockBankService)
	svc.On("ReconcileStatementLine", mock.Anything, "s-1", "jl-1", userID).
		Return(&domain.BankStatementLine{StatementLineID: "s-1", IsReconciled: true, MatchedLineID: "jl-1"}, nil).Once()
	svc.On("ReconcileStatementLine", mock.Anything, "s-2", "jl-1", userID).
		Return(nil, apperrors.NewDomainError("Statement amount does not match journal entry amount")).Once()
	svc.On("UnreconcileStatementLine", mock.Anything, "s-1", userID).
		Return(&domain.BankStatementLine{StatementLineID: "s-1"}, nil).Once()
	r := newBankRouter(svc)

	w := serve(t, r, http.MethodPost, "/api/v1/bank-statements/s-1/reconcile", userID, dto.ReconcileRequest{JournalLineID: "jl-1"})
	require.Equal(t, http.StatusOK, w.Code)
	var resp dto.StatementLineResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.IsReconciled)
	assert.Equal(t, "jl-1", resp.MatchedLineID)

	w = serve(t, r, http.MethodPost, "/api/v1/bank-statements/s-2/reconcile", userID, dto.ReconcileRequest{JournalLineID: "jl-1"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "Statement amount does not match journal entry amount")

	w = serve(t, r, http.MethodPost, "/api/v1/bank-statements/s-1/unreconcile", userID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.IsReconciled)
	assert.Empty(t, resp.MatchedLineID)

	svc.AssertExpectations(t)
}

func TestFindPotentialMatches_FlagsAmount(t *testing.T) {
	userID := uuid.NewString()
	line := &domain.BankStatementLine{StatementLineID: "s-1", CreditAmount: decimal.NewFromInt(120)}
	candidates := []domain.PostedLine{
		{LineID: "jl-1", EntryNumber: "JE-202605-0001", DebitAmount: decimal.NewFromInt(120)},
		{LineID: "jl-2", EntryNumber: "JE-202605-0002", DebitAmount: decimal.NewFromInt(80)},
	}
	svc := new(MockBankService)
	svc.On("FindPotentialMatches", mock.Anything, "s-1").Return(line, candidates, nil).Once()
	r := newBankRouter(svc)

	w := serve(t, r, http.MethodGet, "/api/v1/bank-statements/s-1/matches", userID, nil)

	require.Equal(t, http.StatusOK, w.Code)
	var resp dto.ListMatchCandidatesResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Candidates, 2)
	assert.True(t, resp.Candidates[0].AmountMatches)
	assert.False(t, resp.Candidates[1].AmountMatches)
}

func TestReconciliationSummary(t *testing.T) {
	svc := new(MockBankService)
	svc.On("GetReconciliationSummary", mock.Anything, "b-1").Return(&domain.ReconciliationSummary{
		BankAccountID:     "b-1",
		ReconciledBalance: decimal.NewFromInt(1300),
		GLBalance:         decimal.NewFromInt(300),
		Difference:        decimal.NewFromInt(-1000),
		UnreconciledCount: 1,
	}, nil).Once()
	svc.On("GetReconciliationSummary", mock.Anything, "missing").
		Return(nil, apperrors.NewDomainError("Bank account not found: %s", "missing")).Once()
	r := newBankRouter(svc)

	w := serve(t, r, http.MethodGet, "/api/v1/bank-accounts/b-1/reconciliation", uuid.NewString(), nil)
	require.Equal(t, http.StatusOK, w.Code)
	var summary domain.ReconciliationSummary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &summary))
	assert.True(t, summary.Difference.Equal(decimal.NewFromInt(-1000)))
	assert.Equal(t, 1, summary.UnreconciledCount)

	w = serve(t, r, http.MethodGet, "/api/v1/bank-accounts/missing/reconciliation", uuid.NewString(), nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}
