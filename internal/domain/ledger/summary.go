package ledger

import "github.com/shopspring/decimal"

// Summary is the derived state of the supplier relationship, computed
// fresh from the full transaction history on every call. Sample and
// waived rows are excluded throughout.
type Summary struct {
	TotalPayable      decimal.Decimal            // Sum of ORDER amounts
	TotalPaid         decimal.Decimal            // Sum of PAYMENT amounts
	PendingBalance    decimal.Decimal            // Payable minus paid; negative means overpayment
	InvestmentReturns map[string]decimal.Decimal // Per-spender money owed back
}

// Summarize computes the ledger summary over a transaction history.
// PendingBalance is surfaced as-is, never clamped: a negative balance
// means the supplier was overpaid. Investment returns track what each
// staff member fronted; decrementing them as revenue recovers the
// money is an out-of-band step, not done here.
func Summarize(txns []SupplierTransaction) Summary {
	s := Summary{
		TotalPayable:      decimal.Zero,
		TotalPaid:         decimal.Zero,
		InvestmentReturns: make(map[string]decimal.Decimal),
	}

	for _, txn := range txns {
		if !txn.CountsTowardLedger() {
			continue
		}
		switch txn.Type {
		case TransactionOrder:
			s.TotalPayable = s.TotalPayable.Add(txn.Amount)
		case TransactionPayment:
			s.TotalPaid = s.TotalPaid.Add(txn.Amount)
			if txn.Spender != "" {
				prev, ok := s.InvestmentReturns[txn.Spender]
				if !ok {
					prev = decimal.Zero
				}
				s.InvestmentReturns[txn.Spender] = prev.Add(txn.Amount)
			}
		}
	}

	s.PendingBalance = s.TotalPayable.Sub(s.TotalPaid)
	return s
}

// TotalExpenses sums the effective amounts of an expense history.
// Waived entries contribute zero.
func TotalExpenses(expenses []Expense) decimal.Decimal {
	total := decimal.Zero
	for _, e := range expenses {
		total = total.Add(e.EffectiveAmount())
	}
	return total
}
