package types

// StatsSnapshot is the normalized resource snapshot shared by both backends.
// Stats calls never fail: when a backend query cannot be served the snapshot
// degrades to zeros and Degraded carries the reason.
type StatsSnapshot struct {
	CPUPercent    float64 `json:"cpu_percent"`
	MemUsageBytes uint64  `json:"mem_usage_bytes"`
	MemLimitBytes uint64  `json:"mem_limit_bytes,omitempty"`
	UptimeSeconds *int64  `json:"uptime_seconds"`
	Status        string  `json:"status"`
	Degraded      string  `json:"degraded,omitempty"`
}

// Container run statuses reported in StatsSnapshot.Status.
const (
	StatusRunning = "running"
	StatusStopped = "stopped"
	StatusUnknown = "unknown"
)

// ContainerStatus pairs a container record with its live snapshot for
// status reporting.
type ContainerStatus struct {
	Name     string        `json:"name"`
	Backend  Backend       `json:"backend"`
	Snapshot StatsSnapshot `json:"snapshot"`
}

// StatusAggregates summarizes CPU and memory usage across containers.
type StatusAggregates struct {
	CPUAvgPercent float64 `json:"cpu_avg_percent"`
	CPUMaxPercent float64 `json:"cpu_max_percent"`
	CPUMinPercent float64 `json:"cpu_min_percent"`
	MemTotalBytes uint64  `json:"mem_total_bytes"`
	MemMaxBytes   uint64  `json:"mem_max_bytes"`
	MemMinBytes   uint64  `json:"mem_min_bytes"`
}

// StatusReport is the full output of the status operation: per-container
// snapshots plus aggregate counts.
type StatusReport struct {
	Total      int               `json:"total"`
	Local      int               `json:"local"`
	Docker     int               `json:"docker"`
	Containers []ContainerStatus `json:"containers"`
	Aggregates StatusAggregates  `json:"aggregates"`
}

// SystemResources is the read-only host resource probe.
type SystemResources struct {
	TotalRAMMB       uint64 `json:"total_ram_mb"`
	AvailableRAMMB   uint64 `json:"available_ram_mb"`
	CPUCountLogical  int    `json:"cpu_count_logical"`
	CPUCountPhysical int    `json:"cpu_count_physical"`
	DiskTotalGB      uint64 `json:"disk_total_gb"`
	DiskFreeGB       uint64 `json:"disk_free_gb"`
}
