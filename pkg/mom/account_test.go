package mom_test

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"gitlab.heather.loc/helios/momapi/pkg/mom"
	"gotest.tools/assert"
)

func TestAccount_RiskDegree(t *testing.T) {
	account := &mom.Account{
		CurrMargin:     decimal.RequireFromString("200"),
		Available:      decimal.RequireFromString("600"),
		PositionProfit: decimal.RequireFromString("400"),
	}
	assert.Assert(t, account.RiskDegree().Equal(decimal.RequireFromString("0.2")))

	// non-positive denominator yields zero instead of dividing
	drained := &mom.Account{
		CurrMargin:     decimal.RequireFromString("200"),
		Available:      decimal.RequireFromString("100"),
		PositionProfit: decimal.RequireFromString("-100"),
	}
	assert.Assert(t, drained.RiskDegree().IsZero())
}

func TestAccount_Reset(t *testing.T) {
	account := &mom.Account{
		Balance:     decimal.RequireFromString("10000"),
		CurrMargin:  decimal.RequireFromString("500"),
		Deposit:     decimal.RequireFromString("100.5"),
		Withdraw:    decimal.RequireFromString("50"),
		Commission:  decimal.RequireFromString("1.25"),
		CloseProfit: decimal.RequireFromString("33"),
	}
	account.Reset()

	assert.Assert(t, account.Deposit.IsZero())
	assert.Assert(t, account.Withdraw.IsZero())
	assert.Assert(t, account.Commission.IsZero())
	assert.Assert(t, account.CloseProfit.IsZero())
	assert.Assert(t, account.Balance.Equal(decimal.RequireFromString("10000")))
	assert.Assert(t, account.CurrMargin.Equal(decimal.RequireFromString("500")))
}

func TestAccount_Summary(t *testing.T) {
	account := &mom.Account{
		Scope:     mom.ScopeUser,
		FundID:    "fund_1",
		AccountID: "acc_1",
		UserID:    "user_1",
		Currency:  "USDT",
		Balance:   decimal.RequireFromString("10000"),
		Available: decimal.RequireFromString("9000"),
	}
	summary := account.Summary()
	assert.Assert(t, strings.Contains(summary, `"userId":"user_1"`))
	assert.Assert(t, strings.Contains(summary, `"balance":"10000"`))

	account.Scope = mom.ScopeFund
	summary = account.Summary()
	assert.Assert(t, !strings.Contains(summary, "userId"))
	assert.Assert(t, strings.Contains(summary, `"fundId":"fund_1"`))
}
