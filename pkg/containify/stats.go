package containify

import (
	"github.com/NoahWhiteson/Containify/pkg/types"
)

// Stats returns a resource snapshot for one container. Unknown names and
// backend failures degrade to an unknown-status snapshot rather than an
// error.
func (c *Containify) Stats(name string) types.StatsSnapshot {
	backend, err := c.BackendFor(name)
	if err != nil {
		return types.StatsSnapshot{
			Status:   types.StatusUnknown,
			Degraded: err.Error(),
		}
	}
	return backend.Stats(name)
}

// StatusReport samples every known container and aggregates the results.
// Individual sampling failures surface as degraded entries; the report
// itself always succeeds once the records can be listed.
func (c *Containify) StatusReport() (types.StatusReport, error) {
	records, err := c.ListRecords()
	if err != nil {
		return types.StatusReport{}, err
	}

	report := types.StatusReport{Total: len(records)}
	for _, rec := range records {
		switch rec.Backend {
		case types.BackendLocal:
			report.Local++
		case types.BackendDocker:
			report.Docker++
		}
		report.Containers = append(report.Containers, types.ContainerStatus{
			Name:     rec.Name,
			Backend:  rec.Backend,
			Snapshot: c.Stats(rec.Name),
		})
	}
	report.Aggregates = aggregateStatuses(report.Containers)
	return report, nil
}

// aggregateStatuses folds per-container snapshots into store-wide figures.
// Only running containers contribute samples; with no running container
// the aggregates stay zeroed.
func aggregateStatuses(containers []types.ContainerStatus) types.StatusAggregates {
	var agg types.StatusAggregates
	samples := 0
	for _, cs := range containers {
		if cs.Snapshot.Status != types.StatusRunning {
			continue
		}
		s := cs.Snapshot
		if samples == 0 {
			agg.CPUMinPercent = s.CPUPercent
			agg.MemMinBytes = s.MemUsageBytes
		}
		samples++

		agg.CPUAvgPercent += s.CPUPercent
		if s.CPUPercent > agg.CPUMaxPercent {
			agg.CPUMaxPercent = s.CPUPercent
		}
		if s.CPUPercent < agg.CPUMinPercent {
			agg.CPUMinPercent = s.CPUPercent
		}

		agg.MemTotalBytes += s.MemUsageBytes
		if s.MemUsageBytes > agg.MemMaxBytes {
			agg.MemMaxBytes = s.MemUsageBytes
		}
		if s.MemUsageBytes < agg.MemMinBytes {
			agg.MemMinBytes = s.MemUsageBytes
		}
	}
	if samples > 0 {
		agg.CPUAvgPercent /= float64(samples)
	}
	return agg
}
