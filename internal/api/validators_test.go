package api

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestIsValidUsername(t *testing.T) {
	tests := []struct {
		username string
		want     bool
	}{
		{"alice", true},
		{"alice99", true},
		{"9alice", false},
		{"al ice", false},
		{"al-ice", false},
		{"", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, isValidUsername(tt.username), "username %q", tt.username)
	}
}

func TestIsValidPassword(t *testing.T) {
	assert.False(t, isValidPassword("short"))
	assert.True(t, isValidPassword("longenough"))
	assert.False(t, isValidPassword(string(make([]byte, 65))))
}

func TestIsValidCurrency(t *testing.T) {
	assert.True(t, isValidCurrency("BTC"))
	assert.True(t, isValidCurrency("USDT"))
	assert.True(t, isValidCurrency("ETH"))
	assert.False(t, isValidCurrency("DOGE"))
	assert.False(t, isValidCurrency(""))
}

func TestValidFundingAmount(t *testing.T) {
	tests := []struct {
		amount string
		want   bool
	}{
		{"100.00", true},
		{"0.01", true},
		{"0", false},
		{"-5.00", false},
		{"1.001", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, validFundingAmount(decimal.RequireFromString(tt.amount)), "amount %s", tt.amount)
	}
}
