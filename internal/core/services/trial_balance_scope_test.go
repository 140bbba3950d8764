package services_test

func (s *LedgerScenarioSuite) TestTrialBalanceKeepsDeactivatedAccountHistory() {
	s.post(day(2026, 1, 10), "1000", "3000", "100")
	s.post(day(2026, 2, 10), "3000", "1000", "100")
	s.Require().NoError(s.svc.Account.DeactivateAccount(s.ctx, s.id("1000"), testUser))

	january, err := s.svc.Reporting.GetTrialBalance(s.ctx, day(2026, 1, 31))
	s.Require().NoError(err)
	codes := make([]string, 0, len(january.Rows))
	for _, row := range january.Rows {
		codes = append(codes, row.Code)
	}
	s.ElementsMatch([]string{"1000", "3000"}, codes, "inactive cash still held 100 at the end of January")
	s.True(january.IsBalanced)
	s.equalAmount("100", january.TotalDebit)

	// every balance is back to zero, so no account is listed
	february, err := s.svc.Reporting.GetTrialBalance(s.ctx, day(2026, 2, 28))
	s.Require().NoError(err)
	s.Empty(february.Rows)
	s.True(february.IsBalanced)
}
