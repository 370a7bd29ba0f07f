package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidEmail(t *testing.T) {
	valid := []string{
		"orders@acme.com",
		"first.last@supplier.co.uk",
		"a_b-c@mail-server.org",
	}
	for _, e := range valid {
		assert.True(t, ValidEmail(e), e)
	}

	invalid := []string{
		"",
		"plainaddress",
		"@missing-local.com",
		"missing-domain@",
		"two@@signs.com",
	}
	for _, e := range invalid {
		assert.False(t, ValidEmail(e), e)
	}
}
