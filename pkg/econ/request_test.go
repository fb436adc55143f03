package econ_test

import (
	"net/url"
	"testing"
	"time"

	"github.com/fivetwenty-io/econ-client/pkg/econ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type tier string

func TestParams_Encode(t *testing.T) {
	t.Parallel()

	var (
		missing *string
		present = "north"
	)

	params := econ.NewParams().
		Add("search", "a&b=c").
		Add("page", 3).
		Add("price", 1.25).
		Add("active", false).
		Add("owner", nil).
		Add("region", missing).
		Add("zone", &present).
		Add("tier", tier("gold")).
		Add("count", uint8(7)).
		Add("since", time.Date(2026, 3, 4, 5, 6, 7, 0, time.FixedZone("X", 3600)))

	encoded := params.Encode()
	assert.Equal(t,
		"search=a%26b%3Dc&page=3&price=1.25&active=false&zone=north&tier=gold&count=7&since=2026-03-04T04%3A06%3A07Z",
		encoded)

	parsed, err := url.ParseQuery(encoded)
	require.NoError(t, err)
	assert.Equal(t, params.Values(), parsed)
	assert.NotContains(t, parsed, "owner")
	assert.NotContains(t, parsed, "region")
}

func TestParams_Empty(t *testing.T) {
	t.Parallel()

	assert.Empty(t, econ.NewParams().Encode())
	assert.Empty(t, econ.Params(nil).Add("a", nil).Encode())
}

func TestFormatParamValue(t *testing.T) {
	t.Parallel()

	var nilTime *time.Time

	_, ok := econ.FormatParamValue(nilTime)
	assert.False(t, ok)

	value, ok := econ.FormatParamValue(int64(-9))
	assert.True(t, ok)
	assert.Equal(t, "-9", value)

	value, ok = econ.FormatParamValue(time.Second)
	assert.True(t, ok)
	assert.Equal(t, "1s", value)
}
