package containify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NoahWhiteson/Containify/pkg/types"
)

func TestResolveLocal(t *testing.T) {
	c := newTestContainify(t)
	fabricateContainer(t, c, "demo", types.BackendLocal, types.Limits{CPUPercent: 100})

	kind, ok := c.Resolve("demo")
	require.True(t, ok)
	assert.Equal(t, types.BackendLocal, kind)
}

func TestResolveDocker(t *testing.T) {
	c := newTestContainify(t)
	fabricateContainer(t, c, "demo", types.BackendDocker, types.Limits{CPUPercent: 100})

	kind, ok := c.Resolve("demo")
	require.True(t, ok)
	assert.Equal(t, types.BackendDocker, kind)
}

func TestResolveUnknownName(t *testing.T) {
	c := newTestContainify(t)

	_, ok := c.Resolve("missing")
	assert.False(t, ok)
}

func TestResolveMismatchedBackendField(t *testing.T) {
	c := newTestContainify(t)
	fabricateContainer(t, c, "demo", types.Backend("weird"), types.Limits{CPUPercent: 100})

	_, ok := c.Resolve("demo")
	assert.False(t, ok)
}

func TestBackendFor(t *testing.T) {
	c := newTestContainify(t)
	fabricateContainer(t, c, "demo", types.BackendLocal, types.Limits{CPUPercent: 100})

	backend, err := c.BackendFor("demo")
	require.NoError(t, err)
	assert.Equal(t, types.BackendLocal, backend.Kind())

	_, err = c.BackendFor("missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestBackendByKind(t *testing.T) {
	c := newTestContainify(t)

	assert.Equal(t, types.BackendLocal, c.Backend(types.BackendLocal).Kind())
	assert.Equal(t, types.BackendDocker, c.Backend(types.BackendDocker).Kind())
}
