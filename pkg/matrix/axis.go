package matrix

// Axis names one of the two matrix dimensions. Annotations attach to an
// axis, and splitting partitions along one.
type Axis string

const (
	// AxisRows addresses the row dimension.
	AxisRows Axis = "rows"
	// AxisColumns addresses the column dimension.
	AxisColumns Axis = "columns"
)
