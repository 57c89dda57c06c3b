package utils_test

import (
	"testing"

	"github.com/jrsteele09/go-admin-session/internal/utils"
	"github.com/stretchr/testify/require"
)

func TestClaimStrings(t *testing.T) {
	tests := map[string]struct {
		in   any
		want []string
	}{
		"single string": {in: "R_SUPER", want: []string{"R_SUPER"}},
		"empty string":  {in: "", want: nil},
		"json array":    {in: []any{"R_ADMIN", 7, "R_USER"}, want: []string{"R_ADMIN", "R_USER"}},
		"string slice":  {in: []string{"B_ADD"}, want: []string{"B_ADD"}},
		"missing":       {in: nil, want: nil},
		"number":        {in: 3.0, want: nil},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			require.Equal(t, tc.want, utils.ClaimStrings(tc.in))
		})
	}
}

func TestCloneStrings(t *testing.T) {
	require.Nil(t, utils.CloneStrings(nil))

	src := []string{"a", "b"}
	dst := utils.CloneStrings(src)
	dst[0] = "z"
	require.Equal(t, []string{"a", "b"}, src)
}
