package facade

//go:generate stringer -type=RefreshState -trimprefix=State

// RefreshState describes what the refresh executor is doing right now.
type RefreshState uint32

const (
	StateIdle RefreshState = iota
	StateRefreshing
	StateFiltering
	StateFailed
)
