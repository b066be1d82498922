package valueobject

import (
	"fmt"
	"math"

	"github.com/dustin/go-humanize"

	"github.com/proposalgen/proposal-backend/internal/pkg/apperror"
)

// CurrencyTsh - валюта бюджета предложений (танзанийский шиллинг).
const CurrencyTsh = "Tsh"

type Money struct {
	Amount   float64
	Currency string
}

func NewMoney(amount float64, currency string) (Money, error) {
	if amount < 0 || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return Money{}, apperror.New(apperror.ErrCodeValidation, "amount must be a non-negative number")
	}
	if currency == "" {
		currency = CurrencyTsh
	}
	return Money{Amount: amount, Currency: currency}, nil
}

// String форматирует сумму с двумя знаками и разделителями тысяч: Tsh1,500,000.00.
func (m Money) String() string {
	return m.Currency + FormatAmount(m.Amount)
}

// FormatAmount форматирует число как 1,500,000.00.
func FormatAmount(amount float64) string {
	return humanize.FormatFloat("#,###.##", amount)
}

// FormatTsh - сокращение для Money{amount, Tsh}.String().
func FormatTsh(amount float64) string {
	return Money{Amount: amount, Currency: CurrencyTsh}.String()
}

// Duration - срок проекта в неделях.
type Duration struct {
	Weeks int
}

func NewDuration(weeks int) (Duration, error) {
	if weeks < 1 {
		return Duration{}, apperror.New(apperror.ErrCodeValidation, "duration must be at least one week")
	}
	return Duration{Weeks: weeks}, nil
}

func (d Duration) String() string {
	return fmt.Sprintf("%d weeks", d.Weeks)
}
