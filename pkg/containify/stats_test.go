package containify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NoahWhiteson/Containify/pkg/types"
)

func TestStatsUnknownContainerDegrades(t *testing.T) {
	c := newTestContainify(t)

	snapshot := c.Stats("missing")
	assert.Equal(t, types.StatusUnknown, snapshot.Status)
	assert.NotEmpty(t, snapshot.Degraded)
}

func TestStatusReportCounts(t *testing.T) {
	c := newTestContainify(t)
	fabricateContainer(t, c, "a", types.BackendLocal, types.Limits{CPUPercent: 100})
	fabricateContainer(t, c, "b", types.BackendLocal, types.Limits{CPUPercent: 100})
	fabricateContainer(t, c, "d", types.BackendDocker, types.Limits{CPUPercent: 100})

	report, err := c.StatusReport()
	require.NoError(t, err)
	assert.Equal(t, 3, report.Total)
	assert.Equal(t, 2, report.Local)
	assert.Equal(t, 1, report.Docker)
	assert.Len(t, report.Containers, 3)
}

func TestStatusReportEmptyStore(t *testing.T) {
	c := newTestContainify(t)

	report, err := c.StatusReport()
	require.NoError(t, err)
	assert.Zero(t, report.Total)
	assert.Empty(t, report.Containers)
	assert.Zero(t, report.Aggregates)
}

func snapshotStatus(name string, status string, cpu float64, mem uint64) types.ContainerStatus {
	return types.ContainerStatus{
		Name:    name,
		Backend: types.BackendLocal,
		Snapshot: types.StatsSnapshot{
			Status:        status,
			CPUPercent:    cpu,
			MemUsageBytes: mem,
		},
	}
}

func TestAggregateStatuses(t *testing.T) {
	t.Run("only running containers contribute", func(t *testing.T) {
		agg := aggregateStatuses([]types.ContainerStatus{
			snapshotStatus("a", types.StatusRunning, 10, 100),
			snapshotStatus("b", types.StatusRunning, 30, 300),
			snapshotStatus("c", types.StatusStopped, 99, 999),
			snapshotStatus("d", types.StatusUnknown, 99, 999),
		})
		assert.InDelta(t, 20.0, agg.CPUAvgPercent, 0.001)
		assert.Equal(t, 30.0, agg.CPUMaxPercent)
		assert.Equal(t, 10.0, agg.CPUMinPercent)
		assert.Equal(t, uint64(400), agg.MemTotalBytes)
		assert.Equal(t, uint64(300), agg.MemMaxBytes)
		assert.Equal(t, uint64(100), agg.MemMinBytes)
	})

	t.Run("no running containers yields zeros", func(t *testing.T) {
		agg := aggregateStatuses([]types.ContainerStatus{
			snapshotStatus("a", types.StatusStopped, 50, 500),
		})
		assert.Zero(t, agg)
	})

	t.Run("single sample", func(t *testing.T) {
		agg := aggregateStatuses([]types.ContainerStatus{
			snapshotStatus("a", types.StatusRunning, 42, 256),
		})
		assert.Equal(t, 42.0, agg.CPUAvgPercent)
		assert.Equal(t, 42.0, agg.CPUMaxPercent)
		assert.Equal(t, 42.0, agg.CPUMinPercent)
		assert.Equal(t, uint64(256), agg.MemTotalBytes)
		assert.Equal(t, uint64(256), agg.MemMinBytes)
	})
}
