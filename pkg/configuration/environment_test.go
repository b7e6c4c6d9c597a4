package configuration

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidateImport_NormalizesValues(t *testing.T) {
	c := &Configuration{}
	c.Import.PlaceholderEmailDomain = "  Donors.Example.ORG "
	c.Import.DefaultCurrency = " usd "

	require.NoError(t, c.validateImport())
	require.Equal(t, "donors.example.org", c.Import.PlaceholderEmailDomain)
	require.Equal(t, "USD", c.Import.DefaultCurrency)
}

func TestValidateImport_RejectsBadDomain(t *testing.T) {
	for _, domain := range []string{"", "no-dot", "has @sign.org", "two words.org"} {
		c := &Configuration{}
		c.Import.PlaceholderEmailDomain = domain
		c.Import.DefaultCurrency = "USD"
		require.Error(t, c.validateImport(), domain)
	}
}

func TestValidateImport_RejectsBadCurrency(t *testing.T) {
	for _, currency := range []string{"", "US", "DOLLARS"} {
		c := &Configuration{}
		c.Import.PlaceholderEmailDomain = "donors.example.org"
		c.Import.DefaultCurrency = currency
		require.Error(t, c.validateImport(), currency)
	}
}
