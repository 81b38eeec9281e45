package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/contabix/contabix_backend/internal/core/domain"
	portssvc "github.com/contabix/contabix_backend/internal/core/ports/services"
	"github.com/contabix/contabix_backend/internal/core/services"
	"github.com/contabix/contabix_backend/internal/dto"
)

type ReportingServiceTestSuite struct {
	suite.Suite
	mockReportingRepo *MockReportingRepository
	mockAccountRepo   *MockAccountRepository
	mockPeriodRepo    *MockFiscalPeriodRepository
	service           portssvc.ReportingSvcFacade

	tenantID string
	period   domain.FiscalPeriod
}

func (suite *ReportingServiceTestSuite) SetupTest() {
	suite.mockReportingRepo = new(MockReportingRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockPeriodRepo = new(MockFiscalPeriodRepository)
	suite.service = services.NewReportingService(suite.mockReportingRepo, suite.mockAccountRepo, suite.mockPeriodRepo)

	suite.tenantID = uuid.NewString()
	suite.period = domain.FiscalPeriod{
		PeriodID:  uuid.NewString(),
		TenantID:  suite.tenantID,
		Name:      "2025-03",
		StartDate: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC),
		Status:    domain.PeriodOpen,
	}
}

func (suite *ReportingServiceTestSuite) TestTrialBalance_SignsByNormalBalance() {
	ctx := context.Background()

	rows := []domain.TrialBalanceRow{
		{AccountID: uuid.NewString(), AccountCode: "1.1.01", AccountName: "Caja", AccountType: domain.Asset,
			Debit: decimal.NewFromInt(150), Credit: decimal.NewFromInt(50)},
		{AccountID: uuid.NewString(), AccountCode: "4.1", AccountName: "Ventas", AccountType: domain.Revenue,
			Debit: decimal.Zero, Credit: decimal.NewFromInt(100)},
	}
	suite.mockPeriodRepo.On("FindPeriodByID", ctx, suite.tenantID, suite.period.PeriodID).Return(&suite.period, nil).Once()
	suite.mockReportingRepo.On("GetTrialBalanceRows", ctx, suite.tenantID, suite.period.StartDate, suite.period.EndDate).Return(rows, nil).Once()

	report, err := suite.service.TrialBalance(ctx, suite.tenantID, suite.period.PeriodID)

	suite.Require().NoError(err)
	suite.Require().Len(report.Rows, 2)

	// Caja is debit-normal: 150 - 50 = 100.
	suite.True(report.Rows[0].Balance.Equal(decimal.NewFromInt(100)), "got %s", report.Rows[0].Balance)
	// Ventas is credit-normal: -(0 - 100) = 100.
	suite.True(report.Rows[1].Balance.Equal(decimal.NewFromInt(100)), "got %s", report.Rows[1].Balance)

	suite.True(report.TotalDebit.Equal(decimal.NewFromInt(150)))
	suite.True(report.TotalCredit.Equal(decimal.NewFromInt(150)))
	suite.True(report.TotalDebit.Equal(report.TotalCredit), "posted-only trial balance must balance")
}

func (suite *ReportingServiceTestSuite) TestTrialBalance_EmptyPeriod() {
	ctx := context.Background()

	suite.mockPeriodRepo.On("FindPeriodByID", ctx, suite.tenantID, suite.period.PeriodID).Return(&suite.period, nil).Once()
	suite.mockReportingRepo.On("GetTrialBalanceRows", ctx, suite.tenantID, suite.period.StartDate, suite.period.EndDate).
		Return([]domain.TrialBalanceRow{}, nil).Once()

	report, err := suite.service.TrialBalance(ctx, suite.tenantID, suite.period.PeriodID)

	suite.Require().NoError(err)
	suite.Empty(report.Rows)
	suite.True(report.TotalDebit.IsZero())
	suite.True(report.TotalCredit.IsZero())
}

func (suite *ReportingServiceTestSuite) TestGeneralLedger_RunningBalancePrefixSums() {
	ctx := context.Background()

	cash := domain.Account{
		AccountID:   uuid.NewString(),
		TenantID:    suite.tenantID,
		Code:        "1.1.01",
		Name:        "Caja",
		AccountType: domain.Asset,
		IsActive:    true,
	}
	params := dto.GeneralLedgerParams{
		AccountID: cash.AccountID,
		StartDate: suite.period.StartDate,
		EndDate:   suite.period.EndDate,
	}

	rows := []domain.GeneralLedgerRow{
		{EntryID: uuid.NewString(), EntryNumber: 1, EntryDate: time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC), Debit: decimal.NewFromInt(100)},
		{EntryID: uuid.NewString(), EntryNumber: 2, EntryDate: time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC), Credit: decimal.NewFromInt(30)},
		{EntryID: uuid.NewString(), EntryNumber: 4, EntryDate: time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC), Debit: decimal.NewFromInt(15)},
	}
	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.tenantID, cash.AccountID).Return(&cash, nil).Once()
	suite.mockReportingRepo.On("GetGeneralLedgerRows", ctx, suite.tenantID, cash.AccountID, params.StartDate, params.EndDate).Return(rows, nil).Once()

	report, err := suite.service.GeneralLedger(ctx, suite.tenantID, params)

	suite.Require().NoError(err)
	suite.Require().Len(report.Rows, 3)
	suite.True(report.Rows[0].RunningBalance.Equal(decimal.NewFromInt(100)), "got %s", report.Rows[0].RunningBalance)
	suite.True(report.Rows[1].RunningBalance.Equal(decimal.NewFromInt(70)), "got %s", report.Rows[1].RunningBalance)
	suite.True(report.Rows[2].RunningBalance.Equal(decimal.NewFromInt(85)), "got %s", report.Rows[2].RunningBalance)
	suite.Equal(cash.Code, report.AccountCode)
}

func (suite *ReportingServiceTestSuite) TestGeneralLedger_CreditNormalAccount() {
	ctx := context.Background()

	sales := domain.Account{
		AccountID:   uuid.NewString(),
		TenantID:    suite.tenantID,
		Code:        "4.1",
		Name:        "Ventas",
		AccountType: domain.Revenue,
		IsActive:    true,
	}
	params := dto.GeneralLedgerParams{
		AccountID: sales.AccountID,
		StartDate: suite.period.StartDate,
		EndDate:   suite.period.EndDate,
	}

	rows := []domain.GeneralLedgerRow{
		{EntryID: uuid.NewString(), EntryNumber: 1, EntryDate: time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC), Credit: decimal.NewFromInt(100)},
		{EntryID: uuid.NewString(), EntryNumber: 3, EntryDate: time.Date(2025, 3, 8, 0, 0, 0, 0, time.UTC), Debit: decimal.NewFromInt(20)},
	}
	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.tenantID, sales.AccountID).Return(&sales, nil).Once()
	suite.mockReportingRepo.On("GetGeneralLedgerRows", ctx, suite.tenantID, sales.AccountID, params.StartDate, params.EndDate).Return(rows, nil).Once()

	report, err := suite.service.GeneralLedger(ctx, suite.tenantID, params)

	suite.Require().NoError(err)
	suite.Require().Len(report.Rows, 2)
	suite.True(report.Rows[0].RunningBalance.Equal(decimal.NewFromInt(100)), "got %s", report.Rows[0].RunningBalance)
	suite.True(report.Rows[1].RunningBalance.Equal(decimal.NewFromInt(80)), "got %s", report.Rows[1].RunningBalance)
}

func (suite *ReportingServiceTestSuite) TestGeneralLedger_ZeroSeededRange() {
	// Activity before the range start does not carry into the running balance.
	ctx := context.Background()

	cash := domain.Account{
		AccountID:   uuid.NewString(),
		TenantID:    suite.tenantID,
		Code:        "1.1.01",
		Name:        "Caja",
		AccountType: domain.Asset,
		IsActive:    true,
	}
	params := dto.GeneralLedgerParams{
		AccountID: cash.AccountID,
		StartDate: time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		EndDate:   suite.period.EndDate,
	}

	rows := []domain.GeneralLedgerRow{
		{EntryID: uuid.NewString(), EntryNumber: 9, EntryDate: time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC), Debit: decimal.NewFromInt(40)},
	}
	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.tenantID, cash.AccountID).Return(&cash, nil).Once()
	suite.mockReportingRepo.On("GetGeneralLedgerRows", ctx, suite.tenantID, cash.AccountID, params.StartDate, params.EndDate).Return(rows, nil).Once()

	report, err := suite.service.GeneralLedger(ctx, suite.tenantID, params)

	suite.Require().NoError(err)
	suite.Require().Len(report.Rows, 1)
	suite.True(report.Rows[0].RunningBalance.Equal(decimal.NewFromInt(40)))
}

func TestReportingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReportingServiceTestSuite))
}
