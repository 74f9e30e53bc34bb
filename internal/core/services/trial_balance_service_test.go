package services_test

import (
	"github.com/SscSPs/ledger_core/internal/apperrors"
	"github.com/SscSPs/ledger_core/internal/core/domain"
	"github.com/SscSPs/ledger_core/internal/core/services"
)

func (suite *EntryServiceTestSuite) post(entry *domain.JournalEntry) {
	_, err := suite.entries.PostEntry(suite.ctx, suite.workspaceID, entry.EntryID, suite.userID)
	suite.Require().NoError(err)
}

func (suite *EntryServiceTestSuite) TestTrialBalance_PostedEntriesOfPeriod() {
	suite.post(suite.sale("2025-03-03", "1000"))
	suite.post(suite.sale("2025-03-28", "1000"))

	period := 3
	tb, err := suite.reporting.TrialBalance(suite.ctx, suite.workspaceID, 2025, &period)
	suite.Require().NoError(err)

	suite.Equal(2, tb.EntryCount)
	suite.Require().Len(tb.Rows, 2)
	suite.Equal("411000", tb.Rows[0].AccountNumber)
	suite.Equal("Clients", tb.Rows[0].AccountLabel)
	suite.Equal(domain.Asset, tb.Rows[0].AccountType)
	suite.Equal(domain.Amount(200000), tb.Rows[0].PeriodDebit)
	suite.Equal(domain.Amount(0), tb.Rows[0].PeriodCredit)
	suite.Equal(domain.Amount(200000), tb.Rows[0].ClosingDebit)
	suite.Equal(domain.Amount(0), tb.Rows[0].OpeningDebit)
	suite.Equal("701000", tb.Rows[1].AccountNumber)
	suite.Equal(domain.Amount(200000), tb.Rows[1].PeriodCredit)
	suite.True(tb.Totals.Balanced)
	suite.Equal(tb.Totals.PeriodDebit, tb.Totals.PeriodCredit)
}

func (suite *EntryServiceTestSuite) TestTrialBalance_Selection() {
	suite.sale("2025-02-10", "5") // draft
	cancelled := suite.sale("2025-02-11", "7")
	_, err := suite.entries.CancelEntry(suite.ctx, suite.workspaceID, cancelled.EntryID, suite.userID)
	suite.Require().NoError(err)

	february := suite.sale("2025-02-12", "10")
	suite.post(february)
	_, err = suite.entries.ValidateEntry(suite.ctx, suite.workspaceID, february.EntryID, suite.userID)
	suite.Require().NoError(err)

	suite.post(suite.sale("2025-04-01", "20"))
	suite.post(suite.sale("2024-12-31", "40"))

	period := 3
	upToMarch, err := suite.reporting.TrialBalance(suite.ctx, suite.workspaceID, 2025, &period)
	suite.Require().NoError(err)
	suite.Equal(1, upToMarch.EntryCount, "validated counts, drafts and cancelled do not")
	suite.Equal(domain.Amount(1000), upToMarch.Totals.PeriodDebit)

	wholeYear, err := suite.reporting.TrialBalance(suite.ctx, suite.workspaceID, 2025, nil)
	suite.Require().NoError(err)
	suite.Equal(2, wholeYear.EntryCount)
	suite.Equal(domain.Amount(3000), wholeYear.Totals.PeriodDebit)
	suite.Nil(wholeYear.FiscalPeriod)

	empty, err := suite.reporting.TrialBalance(suite.ctx, suite.workspaceID, 2023, nil)
	suite.Require().NoError(err)
	suite.Empty(empty.Rows)
	suite.True(empty.Totals.Balanced)

	bad := 13
	_, err = suite.reporting.TrialBalance(suite.ctx, suite.workspaceID, 2025, &bad)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *EntryServiceTestSuite) TestTrialBalance_PostedOnly() {
	posted := suite.sale("2025-05-05", "3")
	suite.post(posted)
	validated := suite.sale("2025-05-06", "4")
	suite.post(validated)
	_, err := suite.entries.ValidateEntry(suite.ctx, suite.workspaceID, validated.EntryID, suite.userID)
	suite.Require().NoError(err)

	reporting := services.NewReportingService(suite.store, suite.store,
		services.WithTrialBalanceStatuses([]domain.EntryStatus{domain.Posted}))
	tb, err := reporting.TrialBalance(suite.ctx, suite.workspaceID, 2025, nil)
	suite.Require().NoError(err)
	suite.Equal(1, tb.EntryCount)
	suite.Equal(domain.Amount(300), tb.Totals.PeriodDebit)
	suite.Equal([]domain.EntryStatus{domain.Posted}, tb.Statuses)
}

func (suite *EntryServiceTestSuite) TestTrialBalance_RepeatableWithoutWrites() {
	suite.post(suite.sale("2025-06-02", "12.50"))
	validated := suite.sale("2025-06-03", "7.25")
	suite.post(validated)
	_, err := suite.entries.ValidateEntry(suite.ctx, suite.workspaceID, validated.EntryID, suite.userID)
	suite.Require().NoError(err)
	suite.sale("2025-06-04", "99") // draft

	period := 6
	first, err := suite.reporting.TrialBalance(suite.ctx, suite.workspaceID, 2025, &period)
	suite.Require().NoError(err)
	second, err := suite.reporting.TrialBalance(suite.ctx, suite.workspaceID, 2025, &period)
	suite.Require().NoError(err)

	suite.Equal(first.Rows, second.Rows)
	suite.Equal(first.Totals, second.Totals)
	suite.Equal(first.EntryCount, second.EntryCount)
	suite.Equal(first.Statuses, second.Statuses)
	suite.Equal(2, first.EntryCount)
	suite.Equal(domain.Amount(1975), first.Totals.PeriodDebit)

	// a new posting shows up on the next call
	suite.post(suite.sale("2025-06-05", "1"))
	third, err := suite.reporting.TrialBalance(suite.ctx, suite.workspaceID, 2025, &period)
	suite.Require().NoError(err)
	suite.Equal(3, third.EntryCount)
	suite.Equal(domain.Amount(2075), third.Totals.PeriodDebit)
}
