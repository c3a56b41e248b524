package schedule

type slotIndexer struct {
	workers int
	roles   int
}

func (i *slotIndexer) Index(worker, role, slot int) int {
	return slot + Slots*(role) + Slots*i.roles*(worker)
}

func (i *slotIndexer) Attributes(index int) (worker int, role int, slot int) {
	slot = index % Slots
	index = index / Slots

	role = index % i.roles
	index = index / i.roles

	worker = index % i.workers

	return worker, role, slot
}

func (i *slotIndexer) Slot(day, hour int) int {
	return day*HoursPerDay + hour
}

func (i *slotIndexer) DayHour(slot int) (day int, hour int) {
	return slot / HoursPerDay, slot % HoursPerDay
}
