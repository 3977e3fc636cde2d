package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitGross(t *testing.T) {
	tests := []struct {
		name        string
		gross       string
		expectedFee string
		expectedNet string
	}{
		{
			name:        "round amount",
			gross:       "100000",
			expectedFee: "35000",
			expectedNet: "65000",
		},
		{
			name:        "small amount rounds fee down",
			gross:       "0.01",
			expectedFee: "0",
			expectedNet: "0.01",
		},
		{
			name:        "half rounds up",
			gross:       "0.03",
			expectedFee: "0.01",
			expectedNet: "0.02",
		},
		{
			name:        "two decimal places",
			gross:       "1234.56",
			expectedFee: "432.1",
			expectedNet: "802.46",
		},
		{
			name:        "maximum amount",
			gross:       "10000000",
			expectedFee: "3500000",
			expectedNet: "6500000",
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			gross := decimal.RequireFromString(test.gross)
			fee, net := SplitGross(gross)
			assert.True(t, fee.Equal(decimal.RequireFromString(test.expectedFee)),
				"fee: got %s", fee)
			assert.True(t, net.Equal(decimal.RequireFromString(test.expectedNet)),
				"net: got %s", net)
			assert.True(t, fee.Add(net).Equal(gross), "fee+net must reconcile to gross")
		})
	}
}

func TestSplitGrossAlwaysReconciles(t *testing.T) {
	// Sweep cent-level amounts, the range where rounding drift would show.
	for cents := int64(1); cents <= 10_000; cents++ {
		gross := decimal.New(cents, -2)
		fee, net := SplitGross(gross)
		require.True(t, fee.Add(net).Equal(gross), "gross %s: fee %s net %s", gross, fee, net)
		require.True(t, fee.Equal(fee.Round(2)), "fee %s has more than 2 decimal places", fee)
	}
}

func TestValidateAmount(t *testing.T) {
	tests := []struct {
		name      string
		amount    string
		expectErr bool
	}{
		{name: "valid", amount: "100000", expectErr: false},
		{name: "valid cents", amount: "10.55", expectErr: false},
		{name: "zero", amount: "0", expectErr: true},
		{name: "negative", amount: "-5", expectErr: true},
		{name: "three decimal places", amount: "10.555", expectErr: true},
		{name: "at maximum", amount: "10000000", expectErr: false},
		{name: "above maximum", amount: "10000000.01", expectErr: true},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := validateAmount(decimal.RequireFromString(test.amount))
			if test.expectErr {
				assert.ErrorIs(t, err, ErrInvalidAmount)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
