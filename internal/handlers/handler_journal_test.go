package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
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

// --- Mock JournalService ---
type MockJournalService struct {
	mock.Mock
}

func (m *MockJournalService) entry(args mock.Arguments) (*domain.JournalEntry, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalService) GetEntry(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	return m.entry(m.Called(ctx, entryID))
}
func (m *MockJournalService) GetEntryByNumber(ctx context.Context, entryNumber string) (*domain.JournalEntry, error) {
	return m.entry(m.Called(ctx, entryNumber))
}
func (m *MockJournalService) ListEntries(ctx context.Context, params dto.ListJournalEntriesParams) (*dto.ListJournalEntriesResponse, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListJournalEntriesResponse), args.Error(1)
}
func (m *MockJournalService) CreateEntry(ctx context.Context, req dto.CreateJournalEntryRequest, createdBy string) (*domain.JournalEntry, error) {
	return m.entry(m.Called(ctx, req, createdBy))
}
func (m *MockJournalService) UpdateEntry(ctx context.Context, entryID string, req dto.UpdateJournalEntryRequest, userID string) (*domain.JournalEntry, error) {
	return m.entry(m.Called(ctx, entryID, req, userID))
}
func (m *MockJournalService) PostEntry(ctx context.Context, entryID string, userID string) (*domain.JournalEntry, error) {
	return m.entry(m.Called(ctx, entryID, userID))
}
func (m *MockJournalService) VoidEntry(ctx context.Context, entryID string, userID string) (*domain.JournalEntry, error) {
	return m.entry(m.Called(ctx, entryID, userID))
}
func (m *MockJournalService) DeleteEntry(ctx context.Context, entryID string, userID string) error {
	return m.Called(ctx, entryID, userID).Error(0)
}
func (m *MockJournalService) CreateAndPostEntry(ctx context.Context, req dto.CreateJournalEntryRequest, createdBy string) (*domain.JournalEntry, error) {
	return m.entry(m.Called(ctx, req, createdBy))
}

var _ portssvc.JournalSvcFacade = (*MockJournalService)(nil)

func newJournalRouter(svc *MockJournalService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(testJWTSecret))
	handlers.RegisterJournalRoutes(v1, svc)
	return r
}

func serve(t *testing.T, r *gin.Engine, method, url, userID string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, url, &buf)
	req.Header.Set("Authorization", "Bearer "+generateTestToken(t, userID))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func cashSaleRequest() dto.CreateJournalEntryRequest {
	return dto.CreateJournalEntryRequest{
		EntryDate:   time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC),
		Description: "Cash sale",
		Lines: []dto.JournalLineRequest{
			{AccountID: "cash", DebitAmount: decimal.NewFromInt(1500)},
			{AccountID: "revenue", CreditAmount: decimal.NewFromInt(1500)},
		},
	}
}

func TestCreateEntry_DraftOrPosted(t *testing.T) {
	userID := uuid.NewString()
	draft := &domain.JournalEntry{EntryID: "e-1", EntryNumber: "JE-202601-0001", Status: domain.EntryDraft}
	posted := &domain.JournalEntry{EntryID: "e-2", EntryNumber: "JE-202601-0002", Status: domain.EntryPosted}

	svc := new(MockJournalService)
	svc.On("CreateEntry", mock.Anything, mock.AnythingOfType("dto.CreateJournalEntryRequest"), userID).Return(draft, nil).Once()
	svc.On("CreateAndPostEntry", mock.Anything, mock.AnythingOfType("dto.CreateJournalEntryRequest"), userID).Return(posted, nil).Once()
	r := newJournalRouter(svc)

	w := serve(t, r, http.MethodPost, "/api/v1/journal-entries", userID, cashSaleRequest())
	require.Equal(t, http.StatusCreated, w.Code)
	var resp dto.JournalEntryResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, domain.EntryDraft, resp.Status)

	w = serve(t, r, http.MethodPost, "/api/v1/journal-entries?post=true", userID, cashSaleRequest())
	require.Equal(t, http.StatusCreated, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, domain.EntryPosted, resp.Status)

	svc.AssertExpectations(t)
}

func TestCreateEntry_Unbalanced(t *testing.T) {
	userID := uuid.NewString()
	svc := new(MockJournalService)
	svc.On("CreateEntry", mock.Anything, mock.Anything, userID).
		Return(nil, apperrors.NewDomainError("Entry is not balanced. Debits: %s, Credits: %s", "1500.00", "1400.00")).Once()
	r := newJournalRouter(svc)

	w := serve(t, r, http.MethodPost, "/api/v1/journal-entries", userID, cashSaleRequest())

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "Entry is not balanced")
}

func TestPostEntry_AlreadyPosted(t *testing.T) {
	userID := uuid.NewString()
	svc := new(MockJournalService)
	svc.On("PostEntry", mock.Anything, "e-1", userID).
		Return(nil, apperrors.NewDomainError("Only draft entries can be posted")).Once()
	r := newJournalRouter(svc)

	w := serve(t, r, http.MethodPost, "/api/v1/journal-entries/e-1/post", userID, nil)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "Only draft entries can be posted")
}

func TestDeleteAndVoidEntry(t *testing.T) {
	userID := uuid.NewString()
	svc := new(MockJournalService)
	svc.On("DeleteEntry", mock.Anything, "draft-1", userID).Return(nil).Once()
	svc.On("VoidEntry", mock.Anything, "posted-1", userID).
		Return(&domain.JournalEntry{EntryID: "posted-1", Status: domain.EntryVoid}, nil).Once()
	r := newJournalRouter(svc)

	w := serve(t, r, http.MethodDelete, "/api/v1/journal-entries/draft-1", userID, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = serve(t, r, http.MethodPost, "/api/v1/journal-entries/posted-1/void", userID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var resp dto.JournalEntryResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, domain.EntryVoid, resp.Status)

	svc.AssertExpectations(t)
}

func TestGetEntryByNumber_NotFound(t *testing.T) {
	userID := uuid.NewString()
	svc := new(MockJournalService)
	svc.On("GetEntryByNumber", mock.Anything, "JE-202601-0099").
		Return(nil, apperrors.NewNotFoundError("journal entry", "JE-202601-0099")).Once()
	r := newJournalRouter(svc)

	w := serve(t, r, http.MethodGet, "/api/v1/journal-entries/number/JE-202601-0099", userID, nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
