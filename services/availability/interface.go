package availability

import "advisordesk/models"

// Source is a read-only provider of candidate slots. The core never writes
// to it; a slot taken elsewhere shows up as absent on the next query.
type Source interface {
	Query(window models.SlotWindow) ([]models.CalendarSlot, error)
}
