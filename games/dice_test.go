package games

import (
	"testing"

	"casino/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiceResolver_ValidateParams(t *testing.T) {
	r := &DiceResolver{}

	tests := []struct {
		name    string
		req     *models.WagerRequest
		wantErr bool
	}{
		{"odd needs no target", &models.WagerRequest{DiceBetType: models.DiceBetOdd}, false},
		{"even needs no target", &models.WagerRequest{DiceBetType: models.DiceBetEven}, false},
		{"seven needs no target", &models.WagerRequest{DiceBetType: models.DiceBetSeven}, false},
		{"exact in range", &models.WagerRequest{DiceBetType: models.DiceBetExact, DiceTarget: 12}, false},
		{"exact too low", &models.WagerRequest{DiceBetType: models.DiceBetExact, DiceTarget: 1}, true},
		{"exact too high", &models.WagerRequest{DiceBetType: models.DiceBetExact, DiceTarget: 13}, true},
		{"over pivot in range", &models.WagerRequest{DiceBetType: models.DiceBetOver, DiceTarget: 7}, false},
		{"over pivot unwinnable", &models.WagerRequest{DiceBetType: models.DiceBetOver, DiceTarget: 12}, true},
		{"under pivot unwinnable", &models.WagerRequest{DiceBetType: models.DiceBetUnder, DiceTarget: 2}, true},
		{"unknown bet type", &models.WagerRequest{DiceBetType: "banker"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := r.ValidateParams(tt.req)
			if tt.wantErr {
				assert.ErrorIs(t, err, models.ErrInvalidParameters)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDiceResolver_OddWin(t *testing.T) {
	r := &DiceResolver{}

	// die1=1, die2=2, total 3
	outcome := r.Resolve(&models.WagerRequest{DiceBetType: models.DiceBetOdd}, NewFixedSource(0.0, 0.2))

	assert.True(t, outcome.Won)
	assert.False(t, outcome.Push)
	// fair 2x scaled by the 7% edge
	assert.InDelta(t, 1.86, outcome.Multiplier, 1e-9)
	assert.Equal(t, 1, outcome.Detail["die1"])
	assert.Equal(t, 2, outcome.Detail["die2"])
	assert.Equal(t, 3, outcome.Detail["total"])
}

func TestDiceResolver_EvenLoss(t *testing.T) {
	r := &DiceResolver{}

	outcome := r.Resolve(&models.WagerRequest{DiceBetType: models.DiceBetEven}, NewFixedSource(0.0, 0.2))

	assert.False(t, outcome.Won)
	assert.Zero(t, outcome.Multiplier)
}

func TestDiceResolver_SevenWin(t *testing.T) {
	r := &DiceResolver{}

	// die1=4, die2=3
	outcome := r.Resolve(&models.WagerRequest{DiceBetType: models.DiceBetSeven}, NewFixedSource(0.5, 0.34))

	require.True(t, outcome.Won)
	// p = 6/36, fair 6x scaled by the 7% edge
	assert.InDelta(t, 5.58, outcome.Multiplier, 1e-9)
}

func TestDiceResolver_ExactWin(t *testing.T) {
	r := &DiceResolver{}

	// die1=1, die2=1, total 2; p = 1/36
	outcome := r.Resolve(&models.WagerRequest{DiceBetType: models.DiceBetExact, DiceTarget: 2}, NewFixedSource(0.0, 0.0))

	require.True(t, outcome.Won)
	assert.InDelta(t, 36*0.93, outcome.Multiplier, 1e-9)
}

func TestDiceResolver_OverUnder(t *testing.T) {
	r := &DiceResolver{}

	// die1=6, die2=6, total 12
	outcome := r.Resolve(&models.WagerRequest{DiceBetType: models.DiceBetOver, DiceTarget: 10}, NewFixedSource(0.99, 0.99))
	require.True(t, outcome.Won)
	// totals 11 and 12 cover 3 of 36 ways
	assert.InDelta(t, 12*0.93, outcome.Multiplier, 1e-9)

	outcome = r.Resolve(&models.WagerRequest{DiceBetType: models.DiceBetUnder, DiceTarget: 10}, NewFixedSource(0.99, 0.99))
	assert.False(t, outcome.Won)
}

func TestDiceWinProbability_SumsToOne(t *testing.T) {
	// The exact-total probabilities partition the sample space
	var sum float64
	for target := 2; target <= 12; target++ {
		sum += diceWinProbability(models.DiceBetExact, target)
	}
	assert.InDelta(t, 1.0, sum, 1e-9)
}
