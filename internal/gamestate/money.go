package gamestate

import (
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/playperu/moneybags/internal/moneybags"
)

var (
	hundred       = decimal.NewFromInt(100)
	redemptionFee = decimal.NewFromFloat(1.1)
	printer       = message.NewPrinter(language.English)
)

// accrue applies one round of interest. interest is the raw delta; next is
// the new balance rounded to cents.
func accrue(current float64, rate moneybags.InterestRate) (interest, next float64) {
	cur := decimal.NewFromFloat(current)
	delta := cur.Mul(decimal.NewFromInt(int64(rate))).Div(hundred)
	return delta.InexactFloat64(), cur.Add(delta).Round(2).InexactFloat64()
}

// repay subtracts a payment, clamped at zero and rounded to cents.
func repay(current, amount float64) float64 {
	next := decimal.NewFromFloat(current).Sub(decimal.NewFromFloat(amount))
	if next.IsNegative() {
		return 0
	}
	return next.Round(2).InexactFloat64()
}

// redemption is value plus the 10% fee, rounded to whole units.
func redemption(value float64) float64 {
	return decimal.NewFromFloat(value).Mul(redemptionFee).Round(0).InexactFloat64()
}

type summer struct{ total decimal.Decimal }

func (s *summer) add(v float64) { s.total = s.total.Add(decimal.NewFromFloat(v)) }

func (s *summer) value() float64 { return s.total.Round(2).InexactFloat64() }

// formatAmount renders v with thousands grouping, as a board game banker
// would read it out.
func formatAmount(v float64) string {
	return printer.Sprintf("%v", number.Decimal(v, number.MaxFractionDigits(2)))
}

func describeCreated(name string, rate moneybags.InterestRate) string {
	return fmt.Sprintf("Loan created for %s at %d%% interest", name, rate)
}

func describePayment(name string, amount float64) string {
	return fmt.Sprintf("%s paid $%s", name, formatAmount(amount))
}

func describeInterest(name string, rate moneybags.InterestRate) string {
	return fmt.Sprintf("%s passed GO - %d%% interest added", name, rate)
}
