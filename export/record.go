package export

// Record is one exported point.
type Record struct {
	// ID is the insertion index of the point.
	ID int
	// Parent is the parent label recorded at insertion.
	Parent int
	X      float64
	Y      float64
	Z      float64
}
