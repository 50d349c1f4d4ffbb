package containify

import (
	"testing"

	dockertypes "github.com/docker/docker/api/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NoahWhiteson/Containify/pkg/types"
)

func TestEngineContainerName(t *testing.T) {
	assert.Equal(t, "containify-demo", engineContainerName("demo"))
}

func TestNanoCPUs(t *testing.T) {
	cases := []struct {
		percent uint
		cpus    int
		want    int64
	}{
		{100, 1, 1_000_000_000},
		{100, 4, 4_000_000_000},
		{50, 4, 2_000_000_000},
		{25, 8, 2_000_000_000},
		{1, 1, 10_000_000},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, nanoCPUs(tc.percent, tc.cpus),
			"percent=%d cpus=%d", tc.percent, tc.cpus)
	}
}

func TestMemoryBytes(t *testing.T) {
	assert.Equal(t, int64(0), memoryBytes(0))
	assert.Equal(t, int64(256*1024*1024), memoryBytes(256))
	assert.Equal(t, int64(2048*1024*1024), memoryBytes(2048))
}

func statsSample(total, preTotal, system, preSystem uint64, online uint32) *dockertypes.StatsJSON {
	s := &dockertypes.StatsJSON{}
	s.CPUStats.CPUUsage.TotalUsage = total
	s.PreCPUStats.CPUUsage.TotalUsage = preTotal
	s.CPUStats.SystemUsage = system
	s.PreCPUStats.SystemUsage = preSystem
	s.CPUStats.OnlineCPUs = online
	return s
}

func TestCPUPercentFromStats(t *testing.T) {
	t.Run("normal delta", func(t *testing.T) {
		// 100ms of container CPU over 1s of system CPU on 2 CPUs.
		s := statsSample(1_100_000_000, 1_000_000_000, 11_000_000_000, 10_000_000_000, 2)
		assert.InDelta(t, 20.0, cpuPercentFromStats(s), 0.001)
	})

	t.Run("zero deltas report zero", func(t *testing.T) {
		s := statsSample(500, 500, 9000, 9000, 4)
		assert.Zero(t, cpuPercentFromStats(s))
	})

	t.Run("negative deltas report zero", func(t *testing.T) {
		// Counters can go backwards across a container restart.
		s := statsSample(400, 500, 8000, 9000, 4)
		assert.Zero(t, cpuPercentFromStats(s))
	})

	t.Run("falls back to percpu length", func(t *testing.T) {
		s := statsSample(200, 100, 2000, 1000, 0)
		s.CPUStats.CPUUsage.PercpuUsage = []uint64{1, 2, 3, 4}
		assert.InDelta(t, 40.0, cpuPercentFromStats(s), 0.001)
	})

	t.Run("no cpu count information assumes one", func(t *testing.T) {
		s := statsSample(200, 100, 2000, 1000, 0)
		assert.InDelta(t, 10.0, cpuPercentFromStats(s), 0.001)
	})
}

func TestDockerMissingEngineID(t *testing.T) {
	c := newTestContainify(t)

	// A docker record without an engine id signals metadata corruption.
	require.NoError(t, c.createContainerDir("demo"))
	rec := c.newRecord("demo", types.BackendDocker, types.Limits{CPUPercent: 100})
	require.NoError(t, c.WriteRecord("demo", rec))

	_, err := c.Docker().Run("demo", []string{"true"})
	assert.ErrorIs(t, err, ErrMissingEngineID)

	_, err = c.Docker().Install("demo", nil)
	assert.ErrorIs(t, err, ErrMissingEngineID)

	assert.ErrorIs(t, c.Docker().Start("demo"), ErrMissingEngineID)

	snapshot := c.Docker().Stats("demo")
	assert.Equal(t, types.StatusUnknown, snapshot.Status)
	assert.NotEmpty(t, snapshot.Degraded)
}

func TestDockerCreateRejectsInvalidLimits(t *testing.T) {
	c := newTestContainify(t)

	// Limit validation runs before any engine work or directory claim.
	_, err := c.Docker().Create("demo", types.Limits{CPUPercent: 0})
	assert.ErrorIs(t, err, ErrInvalidLimits)
	assert.NoDirExists(t, c.ContainerDir("demo"))
}
