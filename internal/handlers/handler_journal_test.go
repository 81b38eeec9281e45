package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/contabix/contabix_backend/internal/apperrors"
	"github.com/contabix/contabix_backend/internal/core/domain"
	portssvc "github.com/contabix/contabix_backend/internal/core/ports/services"
	"github.com/contabix/contabix_backend/internal/core/services"
	"github.com/contabix/contabix_backend/internal/dto"
	"github.com/contabix/contabix_backend/internal/handlers"
	"github.com/contabix/contabix_backend/internal/middleware"
	"github.com/contabix/contabix_backend/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock JournalService ---
type MockJournalService struct {
	mock.Mock
}

func (m *MockJournalService) CreateEntry(ctx context.Context, tenantID string, req dto.CreateJournalEntryRequest, creatorUserID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, tenantID, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}
func (m *MockJournalService) GetEntryByID(ctx context.Context, tenantID string, entryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, tenantID, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}
func (m *MockJournalService) ListEntries(ctx context.Context, tenantID string, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error) {
	args := m.Called(ctx, tenantID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListEntriesResponse), args.Error(1)
}
func (m *MockJournalService) UpdateEntry(ctx context.Context, tenantID string, entryID string, req dto.UpdateJournalEntryRequest, userID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, tenantID, entryID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}
func (m *MockJournalService) DeleteEntry(ctx context.Context, tenantID string, entryID string, userID string) error {
	args := m.Called(ctx, tenantID, entryID, userID)
	return args.Error(0)
}
func (m *MockJournalService) PostEntry(ctx context.Context, tenantID string, entryID string, userID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, tenantID, entryID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}
func (m *MockJournalService) VoidEntry(ctx context.Context, tenantID string, entryID string, userID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, tenantID, entryID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.JournalSvcFacade = (*MockJournalService)(nil)

// --- Test Suite ---
type JournalHandlerTestSuite struct {
	suite.Suite
	router             *gin.Engine
	mockJournalService *MockJournalService
	jwtSecret          string
	tenantID           string
	userID             string
}

// generateTestToken creates a dummy JWT for testing.
func (suite *JournalHandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "contabix-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *JournalHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"
	suite.tenantID = uuid.NewString()
	suite.userID = uuid.NewString()

	suite.mockJournalService = new(MockJournalService)

	cfg := &config.Config{
		JWTSecret:    suite.jwtSecret,
		IsProduction: true, // keeps swagger routes out of the test router
	}
	container := &portssvc.ServiceContainer{
		Journal: suite.mockJournalService,
	}
	handlers.RegisterRoutes(suite.router, cfg, container, nil)
}

// doRequest performs an authenticated tenant-scoped request.
func (suite *JournalHandlerTestSuite) doRequest(method, url string, body []byte) *httptest.ResponseRecorder {
	var req *http.Request
	if body != nil {
		req, _ = http.NewRequest(method, url, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req, _ = http.NewRequest(method, url, nil)
	}
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(suite.userID))
	req.Header.Set(middleware.TenantHeader, suite.tenantID)

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *JournalHandlerTestSuite) TestCreateEntry_Success() {
	entryID := uuid.NewString()
	cashID := uuid.NewString()
	salesID := uuid.NewString()

	reqBody := map[string]any{
		"date":        "2025-03-15T00:00:00Z",
		"description": "Venta de mercaderia",
		"lines": []map[string]any{
			{"accountID": cashID, "debit": "100.00", "credit": "0"},
			{"accountID": salesID, "debit": "0", "credit": "100.00"},
		},
	}
	body, err := json.Marshal(reqBody)
	suite.Require().NoError(err)

	created := &domain.JournalEntry{
		EntryID:     entryID,
		TenantID:    suite.tenantID,
		EntryNumber: 7,
		EntryDate:   time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC),
		Description: "Venta de mercaderia",
		Status:      domain.EntryDraft,
		Lines: []domain.JournalEntryLine{
			{LineID: uuid.NewString(), EntryID: entryID, AccountID: cashID, LineNumber: 1, Debit: decimal.RequireFromString("100.00")},
			{LineID: uuid.NewString(), EntryID: entryID, AccountID: salesID, LineNumber: 2, Credit: decimal.RequireFromString("100.00")},
		},
	}

	suite.mockJournalService.On("CreateEntry",
		mock.Anything,
		suite.tenantID,
		mock.MatchedBy(func(req dto.CreateJournalEntryRequest) bool {
			return len(req.Lines) == 2 && req.Description == "Venta de mercaderia"
		}),
		suite.userID,
	).Return(created, nil).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/journal-entries", body)

	suite.Equal(http.StatusCreated, w.Code)

	var resp dto.JournalEntryResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(entryID, resp.EntryID)
	suite.Equal(int64(7), resp.EntryNumber)
	suite.Equal(domain.EntryDraft, resp.Status)
	suite.Len(resp.Lines, 2)

	suite.mockJournalService.AssertExpectations(suite.T())
}

func (suite *JournalHandlerTestSuite) TestCreateEntry_MissingTenantHeader() {
	body := []byte(`{"date":"2025-03-15T00:00:00Z","description":"x","lines":[]}`)

	req, _ := http.NewRequest(http.MethodPost, "/api/v1/journal-entries", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(suite.userID))

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockJournalService.AssertNotCalled(suite.T(), "CreateEntry")
}

func (suite *JournalHandlerTestSuite) TestCreateEntry_NoToken() {
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/journal-entries", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(middleware.TenantHeader, suite.tenantID)

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockJournalService.AssertNotCalled(suite.T(), "CreateEntry")
}

func (suite *JournalHandlerTestSuite) TestPostEntry_Unbalanced() {
	entryID := uuid.NewString()

	suite.mockJournalService.On("PostEntry", mock.Anything, suite.tenantID, entryID, suite.userID).
		Return(nil, fmt.Errorf("%w: debits 100.00, credits 50.00", services.ErrUnbalanced)).Once()

	w := suite.doRequest(http.MethodPatch, "/api/v1/journal-entries/"+entryID+"/post", nil)

	suite.Equal(http.StatusUnprocessableEntity, w.Code)
	suite.mockJournalService.AssertExpectations(suite.T())
}

func (suite *JournalHandlerTestSuite) TestPostEntry_AlreadyPosted() {
	entryID := uuid.NewString()

	suite.mockJournalService.On("PostEntry", mock.Anything, suite.tenantID, entryID, suite.userID).
		Return(nil, fmt.Errorf("%w: entry %s", domain.ErrAlreadyPosted, entryID)).Once()

	w := suite.doRequest(http.MethodPatch, "/api/v1/journal-entries/"+entryID+"/post", nil)

	suite.Equal(http.StatusConflict, w.Code)
	suite.mockJournalService.AssertExpectations(suite.T())
}

func (suite *JournalHandlerTestSuite) TestGetEntry_NotFound() {
	entryID := uuid.NewString()

	suite.mockJournalService.On("GetEntryByID", mock.Anything, suite.tenantID, entryID).
		Return(nil, apperrors.ErrNotFound).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/journal-entries/"+entryID, nil)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.mockJournalService.AssertExpectations(suite.T())
}

func (suite *JournalHandlerTestSuite) TestListEntries_StatusFilter() {
	posted := domain.EntryPosted
	expected := &dto.ListEntriesResponse{
		Entries: []dto.JournalEntryResponse{
			{EntryID: uuid.NewString(), TenantID: suite.tenantID, EntryNumber: 3, Status: domain.EntryPosted},
		},
	}

	suite.mockJournalService.On("ListEntries",
		mock.Anything,
		suite.tenantID,
		mock.MatchedBy(func(p dto.ListEntriesParams) bool {
			return p.Status != nil && *p.Status == posted && p.Limit == 10
		}),
	).Return(expected, nil).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/journal-entries?status=POSTED&limit=10", nil)

	suite.Equal(http.StatusOK, w.Code)

	var resp dto.ListEntriesResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp.Entries, 1)
	suite.Nil(resp.NextToken)

	suite.mockJournalService.AssertExpectations(suite.T())
}

func (suite *JournalHandlerTestSuite) TestListEntries_InvalidStatus() {
	w := suite.doRequest(http.MethodGet, "/api/v1/journal-entries?status=PENDING", nil)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockJournalService.AssertNotCalled(suite.T(), "ListEntries")
}

// --- Run Test Suite ---
func TestJournalHandler(t *testing.T) {
	suite.Run(t, new(JournalHandlerTestSuite))
}
