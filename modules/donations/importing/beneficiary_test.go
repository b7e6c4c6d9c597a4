package importing

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExtractBeneficiary(t *testing.T) {
	cases := []struct {
		text string
		want string
		ok   bool
	}{
		{"Monthly Sponsorship Donation for Maria", "Maria", true},
		{"Donation for Maria Lopez", "Maria Lopez", true},
		{"for José", "Jos", true}, // grammar is ASCII, the match stops at the accent
		{"gift for Anna-Maria", "Anna-Maria", true},
		{"General monthly gift", "", false},
		{"thanks for everything", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, ok := ExtractBeneficiary(tc.text)
		require.Equal(t, tc.ok, ok, tc.text)
		require.Equal(t, tc.want, got, tc.text)
	}
}

func TestExtractBeneficiary_Deterministic(t *testing.T) {
	const text = "Monthly Sponsorship Donation for Maria"
	first, ok := ExtractBeneficiary(text)
	require.True(t, ok)
	for i := 0; i < 10; i++ {
		got, ok := ExtractBeneficiary(text)
		require.True(t, ok)
		require.Equal(t, first, got)
	}
}
