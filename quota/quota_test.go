package quota_test

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shiftledger/attendance-engine/ledger"
	"github.com/shiftledger/attendance-engine/quota"
)

func TestDefault_MatchesStockEntitlement(t *testing.T) {
	q := quota.Default()

	assert.True(t, q.Base(ledger.LeaveEarned).Equal(decimal.NewFromInt(15)))
	assert.True(t, q.Base(ledger.LeaveCasual).Equal(decimal.NewFromInt(11)))
	assert.True(t, q.Base(ledger.LeaveSick).Equal(decimal.NewFromInt(10)))
	assert.True(t, q.Cap(ledger.LeaveEarned).Equal(decimal.NewFromInt(150)))
	assert.True(t, q.Cap(ledger.LeaveCasual).IsZero())
	assert.True(t, q.Cap(ledger.LeaveSick).Equal(decimal.NewFromInt(150)))
}

func TestBaseAndCap_UnquotedCategoriesAreZero(t *testing.T) {
	q := quota.Default()

	// LOP is unlimited and rest is accrual-governed; neither has a quota.
	assert.True(t, q.Base(ledger.LeaveLOP).IsZero())
	assert.True(t, q.Base(ledger.LeaveRest).IsZero())
}

func TestValidate_RejectsNegativeValues(t *testing.T) {
	q := quota.Default()
	q.Sick = decimal.NewFromInt(-1)
	assert.Error(t, q.Validate())

	q = quota.Default()
	q.CasualRolloverMax = decimal.NewFromInt(-5)
	assert.Error(t, q.Validate())

	assert.NoError(t, quota.Default().Validate())
}

func TestJSON_RoundTripsDocumentShape(t *testing.T) {
	body, err := json.Marshal(quota.Default())
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"earned": 15, "casual": 11, "sick": 10,
		"earnedRolloverMax": 150, "casualRolloverMax": 0, "sickRolloverMax": 150
	}`, string(body))

	var q quota.LeaveQuota
	require.NoError(t, json.Unmarshal(body, &q))
	assert.True(t, q.Earned.Equal(decimal.NewFromInt(15)))
}
