package domain

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenIdToBig(t *testing.T) {
	id, err := TokenId("115792089237316195423570985008687907853269984665640564039457584007913129639935").ToBig()
	require.NoError(t, err)
	// 2^256 - 1 survives the round trip without precision loss
	want, _ := new(big.Int).SetString("115792089237316195423570985008687907853269984665640564039457584007913129639935", 10)
	assert.Equal(t, want, id)

	_, err = TokenId("0x2a").ToBig()
	assert.Error(t, err)
}

func TestTokenIdIsValid(t *testing.T) {
	tests := []struct {
		id   TokenId
		want bool
	}{
		{"0", true},
		{"42", true},
		{"115792089237316195423570985008687907853269984665640564039457584007913129639935", true},
		{"-1", false},
		{"1.5", false},
		{"abc", false},
		{"", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.id.IsValid(), string(tt.id))
	}
}

func TestTokenIdIsPositive(t *testing.T) {
	tests := []struct {
		id   TokenId
		want bool
	}{
		{"1", true},
		{"42", true},
		{"115792089237316195423570985008687907853269984665640564039457584007913129639935", true},
		{"0", false},
		{"-1", false},
		{"abc", false},
		{"", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.id.IsPositive(), string(tt.id))
	}
}

func TestAddressEquals(t *testing.T) {
	a := Address("0xAbCd000000000000000000000000000000000001")
	b := Address("0xabcd000000000000000000000000000000000001")
	assert.True(t, a.Equals(b))
	assert.False(t, a.Equals(EmptyAddress))
	assert.Equal(t, b, a.ToLower())
}
