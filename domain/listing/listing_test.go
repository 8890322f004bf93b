package listing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vibemarket/goapi/domain"
)

func TestMakeKey(t *testing.T) {
	key := MakeKey(
		domain.TokenId("42"),
		domain.Address("0xAbCd000000000000000000000000000000000001"),
		domain.Address("0xDeAd000000000000000000000000000000000002"),
	)
	assert.Equal(t, "42-0xabcd000000000000000000000000000000000001-0xdead000000000000000000000000000000000002", key)
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   Listing
		want Listing
	}{
		{
			name: "lower cases addresses and recomputes key",
			in: Listing{
				Key:        "client-supplied-garbage",
				TokenId:    domain.TokenId("7"),
				Collection: domain.Address("0xAAAA000000000000000000000000000000000001"),
				Seller:     domain.Address("0xBBBB000000000000000000000000000000000002"),
				Price:      "1000000000000000000",
				IsEth:      false,
				Currency:   domain.Address("0xCCCC000000000000000000000000000000000003"),
			},
			want: Listing{
				Key:        "7-0xaaaa000000000000000000000000000000000001-0xbbbb000000000000000000000000000000000002",
				TokenId:    domain.TokenId("7"),
				Collection: domain.Address("0xaaaa000000000000000000000000000000000001"),
				Seller:     domain.Address("0xbbbb000000000000000000000000000000000002"),
				Price:      "1000000000000000000",
				IsEth:      false,
				Currency:   domain.Address("0xcccc000000000000000000000000000000000003"),
			},
		},
		{
			name: "eth listing forces zero currency",
			in: Listing{
				TokenId:    domain.TokenId("7"),
				Collection: domain.Address("0xaaaa000000000000000000000000000000000001"),
				Seller:     domain.Address("0xbbbb000000000000000000000000000000000002"),
				IsEth:      true,
				Currency:   domain.Address("0xcccc000000000000000000000000000000000003"),
			},
			want: Listing{
				Key:        "7-0xaaaa000000000000000000000000000000000001-0xbbbb000000000000000000000000000000000002",
				TokenId:    domain.TokenId("7"),
				Collection: domain.Address("0xaaaa000000000000000000000000000000000001"),
				Seller:     domain.Address("0xbbbb000000000000000000000000000000000002"),
				IsEth:      true,
				Currency:   domain.EmptyAddress,
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := tt.in
			l.Normalize()
			assert.Equal(t, tt.want, l)
		})
	}
}
