package httpx

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParseTime_AcceptsBothForms(t *testing.T) {
	got, err := ParseTime("2025-03-01T10:30:00Z")
	require.NoError(t, err)
	require.Equal(t, time.Date(2025, 3, 1, 10, 30, 0, 0, time.UTC), got)

	got, err = ParseTime(" 2025-03-01 ")
	require.NoError(t, err)
	require.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), got)

	_, err = ParseTime("01/03/2025")
	require.Error(t, err)
}
