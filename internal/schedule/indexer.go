package schedule

// Indexer interface is designed to give a unique index to a combination of shift variable's attributes and vice versa
type Indexer interface {
	// Returns a unique index to a combination of shift variable's attributes
	Index(worker, role, slot int) int
	// Returns a combination of shift variable's attributes from a unique index
	Attributes(index int) (worker int, role int, slot int)
	// Returns the flattened slot of a (day, hour) pair
	Slot(day, hour int) int
	// Returns the (day, hour) pair of a flattened slot
	DayHour(slot int) (day int, hour int)
}

func NewIndexer(workers int) Indexer {
	return &slotIndexer{
		workers: workers,
		roles:   len(Roles),
	}
}
