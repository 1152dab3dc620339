/*
Package quota holds the annual leave entitlement configuration.

PURPOSE:
  One LeaveQuota applies process-wide (not per-date): a base annual
  entitlement per quota-bearing category {earned, casual, sick} plus a
  rollover cap per category. Loss-of-pay has no quota and compensatory rest
  is governed by weekly accrual, so neither appears here.

  Balances use decimal.Decimal so rollover arithmetic stays exact even for
  fractional entitlements.
*/
package quota

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/shiftledger/attendance-engine/ledger"
)

// The persisted document stores balances as bare JSON numbers.
func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// LeaveQuota is the per-category annual entitlement and rollover cap.
// The JSON shape matches the persisted document and the backup format.
type LeaveQuota struct {
	Earned decimal.Decimal `json:"earned"`
	Casual decimal.Decimal `json:"casual"`
	Sick   decimal.Decimal `json:"sick"`

	EarnedRolloverMax decimal.Decimal `json:"earnedRolloverMax"`
	CasualRolloverMax decimal.Decimal `json:"casualRolloverMax"`
	SickRolloverMax   decimal.Decimal `json:"sickRolloverMax"`
}

// Default returns the stock entitlement: 15 earned, 11 casual, 10 sick,
// with rollover capped at 150 for earned and sick and no casual rollover.
func Default() LeaveQuota {
	return LeaveQuota{
		Earned:            decimal.NewFromInt(15),
		Casual:            decimal.NewFromInt(11),
		Sick:              decimal.NewFromInt(10),
		EarnedRolloverMax: decimal.NewFromInt(150),
		CasualRolloverMax: decimal.Zero,
		SickRolloverMax:   decimal.NewFromInt(150),
	}
}

// Base returns the annual entitlement for a quota-bearing category.
func (q LeaveQuota) Base(c ledger.LeaveType) decimal.Decimal {
	switch c {
	case ledger.LeaveEarned:
		return q.Earned
	case ledger.LeaveCasual:
		return q.Casual
	case ledger.LeaveSick:
		return q.Sick
	}
	return decimal.Zero
}

// Cap returns the rollover cap for a quota-bearing category.
func (q LeaveQuota) Cap(c ledger.LeaveType) decimal.Decimal {
	switch c {
	case ledger.LeaveEarned:
		return q.EarnedRolloverMax
	case ledger.LeaveCasual:
		return q.CasualRolloverMax
	case ledger.LeaveSick:
		return q.SickRolloverMax
	}
	return decimal.Zero
}

// Validate rejects negative entitlements or caps.
func (q LeaveQuota) Validate() error {
	for _, c := range ledger.QuotaCategories() {
		if q.Base(c).IsNegative() {
			return fmt.Errorf("quota for %s is negative", c)
		}
		if q.Cap(c).IsNegative() {
			return fmt.Errorf("rollover cap for %s is negative", c)
		}
	}
	return nil
}
