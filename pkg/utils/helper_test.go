package utils

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptionalString(t *testing.T) {
	assert.Nil(t, OptionalString(""))
	assert.Nil(t, OptionalString("   "))
	require.NotNil(t, OptionalString(" Drama "))
	assert.Equal(t, "Drama", *OptionalString(" Drama "))
}

func TestOptionalFloat(t *testing.T) {
	got, err := OptionalFloat("")
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = OptionalFloat("7.5")
	require.NoError(t, err)
	assert.Equal(t, 7.5, *got)

	_, err = OptionalFloat("seven")
	assert.Error(t, err)
}

func TestOptionalDate(t *testing.T) {
	got, err := OptionalDate("2010-07-16")
	require.NoError(t, err)
	assert.True(t, got.Equal(time.Date(2010, 7, 16, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, time.UTC, got.Location())

	got, err = OptionalDate(" ")
	require.NoError(t, err)
	assert.Nil(t, got)

	for _, bad := range []string{"16-07-2010", "2010-13-01", "2010-07-16T00:00:00Z"} {
		_, err := OptionalDate(bad)
		assert.Error(t, err, bad)
	}
}

func TestParseID(t *testing.T) {
	id := uuid.New()

	got, err := ParseID(id.String())
	require.NoError(t, err)
	assert.Equal(t, id, got)

	_, err = ParseID("1")
	assert.Error(t, err)
}
