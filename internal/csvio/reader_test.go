package csvio

import (
	"strings"
	"testing"

	"github.com/sheikh-saqib/payments-accounting-engine/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeAll(t *testing.T, input string) ([]models.Event, error) {
	t.Helper()

	var evs []models.Event
	err := Decode(strings.NewReader(input), func(ev models.Event) {
		evs = append(evs, ev)
	})
	return evs, err
}

func TestDecodeFullStream(t *testing.T) {
	input := strings.Join([]string{
		"type,client,tx,amount",
		"deposit,1,1,10.5",
		"withdrawal,1,2,3.25",
		"dispute,1,1,",
		"resolve,1,1,",
		"chargeback,1,1,",
	}, "\n")

	evs, err := decodeAll(t, input)
	require.NoError(t, err)
	require.Len(t, evs, 5)

	assert.Equal(t, models.EventDeposit, evs[0].Type)
	assert.True(t, evs[0].Amount.Equal(decimal.RequireFromString("10.5")))
	assert.False(t, evs[0].Held)
	assert.Equal(t, models.EventWithdrawal, evs[1].Type)
	assert.Equal(t, models.EventDispute, evs[2].Type)
	assert.Equal(t, models.EventResolve, evs[3].Type)
	assert.Equal(t, models.EventChargeback, evs[4].Type)
	for _, ev := range evs {
		assert.Equal(t, models.ClientID(1), ev.Client)
	}
	assert.Equal(t, models.TxID(2), evs[1].Tx)
}

func TestDecodeTrimsWhitespace(t *testing.T) {
	input := "type, client, tx, amount\n deposit , 1 , 2 , 3.0 \n"

	evs, err := decodeAll(t, input)
	require.NoError(t, err)
	require.Len(t, evs, 1)
	assert.Equal(t, models.ClientID(1), evs[0].Client)
	assert.Equal(t, models.TxID(2), evs[0].Tx)
	assert.True(t, evs[0].Amount.Equal(decimal.RequireFromString("3")))
}

func TestDecodeSkipsWrongOptionalFieldPresence(t *testing.T) {
	input := strings.Join([]string{
		"type,client,tx,amount",
		"deposit,1,1,",      // deposit without amount: skipped
		"withdrawal,1,2,",   // withdrawal without amount: skipped
		"dispute,1,1,5",     // dispute with amount: skipped
		"resolve,1,1,5",     // resolve with amount: skipped
		"chargeback,1,1,5",  // chargeback with amount: skipped
		"transfer,1,3,1.0",  // unknown type: skipped
		"deposit,2,4,1.0",
	}, "\n")

	evs, err := decodeAll(t, input)
	require.NoError(t, err)
	require.Len(t, evs, 1)
	assert.Equal(t, models.ClientID(2), evs[0].Client)
}

func TestDecodeAbortsOnBadAmount(t *testing.T) {
	_, err := decodeAll(t, "type,client,tx,amount\ndeposit,1,1,abc\n")
	assert.ErrorContains(t, err, "parse amount")
}

func TestDecodeAbortsOnBadClient(t *testing.T) {
	_, err := decodeAll(t, "type,client,tx,amount\ndeposit,x,1,1\n")
	assert.ErrorContains(t, err, "parse client")

	// Out of range for a 16-bit client id.
	_, err = decodeAll(t, "type,client,tx,amount\ndeposit,70000,1,1\n")
	assert.ErrorContains(t, err, "parse client")
}

func TestDecodeAbortsOnWrongArity(t *testing.T) {
	_, err := decodeAll(t, "type,client,tx,amount\ndeposit,1,1\n")
	assert.Error(t, err)
}

func TestDecodeAbortsOnMissingColumns(t *testing.T) {
	_, err := decodeAll(t, "kind,client,tx\n")
	assert.ErrorContains(t, err, "header")
}

func TestDecodeEmptyInput(t *testing.T) {
	evs, err := decodeAll(t, "")
	assert.NoError(t, err)
	assert.Empty(t, evs)

	evs, err = decodeAll(t, "type,client,tx,amount\n")
	assert.NoError(t, err)
	assert.Empty(t, evs)
}
