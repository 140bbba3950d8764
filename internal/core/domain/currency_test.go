package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCurrencyConversion(t *testing.T) {
	usd := Currency{CurrencyID: "usd", Code: "USD", ExchangeRate: decimal.NewFromInt(1), IsBase: true}
	eur := Currency{CurrencyID: "eur", Code: "EUR", ExchangeRate: decimal.RequireFromString("0.8")}
	jpy := Currency{CurrencyID: "jpy", Code: "JPY", ExchangeRate: decimal.RequireFromString("150")}

	amt := decimal.RequireFromString("100")

	assert.True(t, usd.ToBase(amt).Equal(amt))
	assert.True(t, eur.ToBase(amt).Equal(decimal.RequireFromString("125")))
	assert.True(t, jpy.ToBase(decimal.RequireFromString("1000")).Equal(decimal.RequireFromString("6.67")))

	assert.True(t, Convert(amt, eur, eur).Equal(amt))
	assert.True(t, Convert(amt, usd, eur).Equal(decimal.RequireFromString("80")))
	assert.True(t, Convert(amt, eur, jpy).Equal(decimal.RequireFromString("18750")))
	// 10 / 3 at scale 6 then back
	gbp := Currency{CurrencyID: "gbp", Code: "GBP", ExchangeRate: decimal.RequireFromString("3")}
	assert.True(t, Convert(decimal.NewFromInt(10), gbp, usd).Equal(decimal.RequireFromString("3.33")))
}
