package invitecode_test

import (
	"fmt"
	"testing"

	"github.com/nestnote/nestnote/pkg/invitecode"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	t.Parallel()

	for range 100 {
		code, err := invitecode.Generate()
		require.NoError(t, err)
		require.True(t, invitecode.Valid(code), "generated code %q must be 6 digits", code)
	}
}

func TestFormatNormalizeRoundTrip(t *testing.T) {
	t.Parallel()

	// Normalize(Format(c)) == c for all valid codes, including zero-padded ones.
	for _, code := range []string{"000000", "000042", "123456", "999999", "040506"} {
		formatted := invitecode.Format(code)
		require.Equal(t, code[:3]+"-"+code[3:], formatted)

		got, err := invitecode.Normalize(formatted)
		require.NoError(t, err)
		require.Equal(t, code, got)
	}
}

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{name: "raw digits", in: "123456", want: "123456"},
		{name: "dashed", in: "123-456", want: "123456"},
		{name: "surrounding whitespace", in: "  123-456 ", want: "123456"},
		{name: "inner spaces", in: "123 456", want: "123456"},
		{name: "deep link", in: "nestnote://invite?code=123-456", want: "123456"},
		{name: "web fallback", in: "https://nestnoteapp.com/invite?code=987654", want: "987654"},
		{name: "digits buried in text", in: "join with code 5-5-5-1-2-3 now", want: "555123"},
		{name: "empty", in: "", wantErr: true},
		{name: "too few digits", in: "123-45", wantErr: true},
		{name: "letters only", in: "abcdef", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := invitecode.Normalize(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, invitecode.ErrInvalid)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestValid(t *testing.T) {
	t.Parallel()

	require.True(t, invitecode.Valid("012345"))
	require.False(t, invitecode.Valid("12345"))
	require.False(t, invitecode.Valid("1234567"))
	require.False(t, invitecode.Valid("12a456"))
	require.False(t, invitecode.Valid(fmt.Sprintf("%6s", "12")))
}
