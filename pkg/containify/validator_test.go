package containify

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NoahWhiteson/Containify/pkg/types"
)

func TestValidateLimits(t *testing.T) {
	assert.NoError(t, ValidateLimits(types.Limits{CPUPercent: 1}))
	assert.NoError(t, ValidateLimits(types.Limits{CPUPercent: 100}))
	assert.NoError(t, ValidateLimits(types.Limits{MemoryMB: 0, StorageMB: 0, CPUPercent: 50}))

	assert.ErrorIs(t, ValidateLimits(types.Limits{CPUPercent: 0}), ErrInvalidLimits)
	assert.ErrorIs(t, ValidateLimits(types.Limits{CPUPercent: 101}), ErrInvalidLimits)
}

func TestRecordSchema(t *testing.T) {
	out, err := RecordSchema()
	require.NoError(t, err)

	var schema map[string]interface{}
	require.NoError(t, json.Unmarshal(out, &schema))
	props, ok := schema["properties"].(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, props, "name")
	assert.Contains(t, props, "backend")
	assert.Contains(t, props, "limits")
}

func TestValidateRecordFile(t *testing.T) {
	c := newTestContainify(t)

	t.Run("valid record passes", func(t *testing.T) {
		fabricateContainer(t, c, "good", types.BackendLocal, types.Limits{CPUPercent: 100})

		problems, err := ValidateRecordFile(c.MetadataPath("good"))
		require.NoError(t, err)
		assert.Empty(t, problems)
	})

	t.Run("bad backend value is rejected", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "metadata.json")
		rec := c.newRecord("bad", types.Backend("podman"), types.Limits{CPUPercent: 100})
		data, err := json.Marshal(rec)
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(path, data, 0644))

		problems, err := ValidateRecordFile(path)
		require.NoError(t, err)
		assert.NotEmpty(t, problems)
	})
}

func TestAuditCleanStore(t *testing.T) {
	c := newTestContainify(t)
	fabricateContainer(t, c, "good", types.BackendLocal, types.Limits{CPUPercent: 100})

	assert.NoError(t, c.Audit(false))
	assert.DirExists(t, c.ContainerDir("good"))
}

func TestAuditRepairRemovesRecordlessDirs(t *testing.T) {
	c := newTestContainify(t)
	fabricateContainer(t, c, "good", types.BackendLocal, types.Limits{CPUPercent: 100})
	require.NoError(t, os.MkdirAll(c.ContainerDir("orphan"), 0755))

	// Without repair the orphan is only reported.
	require.NoError(t, c.Audit(false))
	assert.DirExists(t, c.ContainerDir("orphan"))

	require.NoError(t, c.Audit(true))
	assert.NoDirExists(t, c.ContainerDir("orphan"))
	assert.DirExists(t, c.ContainerDir("good"))
}

func TestAuditRepairFixesRecordName(t *testing.T) {
	c := newTestContainify(t)
	fabricateContainer(t, c, "demo", types.BackendLocal, types.Limits{CPUPercent: 100})

	// Simulate a directory copied by hand: the record still carries the
	// old name and paths.
	_, err := c.UpdateRecord("demo", func(r *types.Record) {
		r.Name = "other"
		r.Paths.ContainerDir = "/somewhere/else"
	})
	require.NoError(t, err)

	require.NoError(t, c.Audit(true))

	rec, err := c.ReadRecord("demo")
	require.NoError(t, err)
	assert.Equal(t, "demo", rec.Name)
	assert.Equal(t, c.ContainerDir("demo"), rec.Paths.ContainerDir)
}
