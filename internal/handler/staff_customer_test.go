package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCustomerReqNormalize(t *testing.T) {
	testCases := []struct {
		name      string
		req       customerReq
		ok        bool
		wantEmail string
	}{
		{name: "valid", req: customerReq{Name: "Ana", Email: "Ana@Example.com"}, ok: true, wantEmail: "ana@example.com"},
		{name: "trims whitespace", req: customerReq{Name: "  Ana  ", Email: " ana@example.com "}, ok: true, wantEmail: "ana@example.com"},
		{name: "missing name", req: customerReq{Email: "ana@example.com"}, ok: false},
		{name: "blank name", req: customerReq{Name: "   ", Email: "ana@example.com"}, ok: false},
		{name: "missing email", req: customerReq{Name: "Ana"}, ok: false},
		{name: "malformed email", req: customerReq{Name: "Ana", Email: "not-an-address"}, ok: false},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.req.normalize()
			assert.Equal(t, tc.ok, got)
			if tc.ok {
				assert.Equal(t, tc.wantEmail, tc.req.Email)
			}
		})
	}
}
