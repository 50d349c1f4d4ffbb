package containify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSystemResources(t *testing.T) {
	c := newTestContainify(t)

	res, err := c.SystemResources()
	require.NoError(t, err)
	assert.NotZero(t, res.TotalRAMMB)
	assert.NotZero(t, res.CPUCountLogical)
	assert.LessOrEqual(t, res.AvailableRAMMB, res.TotalRAMMB)
	assert.LessOrEqual(t, res.DiskFreeGB, res.DiskTotalGB)
}
