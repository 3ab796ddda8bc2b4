package helper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeDate(t *testing.T) {
	got, err := NormalizeDate("2026-09-01")
	require.NoError(t, err)
	assert.Equal(t, "2026-09-01", got)

	// kosong → hari ini
	got, err = NormalizeDate("")
	require.NoError(t, err)
	assert.Equal(t, Today(), got)

	got, err = NormalizeDate("   ")
	require.NoError(t, err)
	assert.Equal(t, Today(), got)

	for _, bad := range []string{"01-09-2026", "2026/09/01", "not-a-date", "2026-13-40"} {
		_, err := NormalizeDate(bad)
		assert.Error(t, err, "input=%q", bad)
	}
}
