package domain

type RoomType string

const (
	RoomTypeSingle RoomType = "Single"
	RoomTypeDouble RoomType = "Double"
	RoomTypeSuite  RoomType = "Suite"
	RoomTypeDeluxe RoomType = "Deluxe"
)

// RoomStatus is the housekeeping flag. It is informational only: booking
// conflicts are always computed from the bookings themselves.
type RoomStatus string

const (
	RoomStatusAvailable   RoomStatus = "Available"
	RoomStatusOccupied    RoomStatus = "Occupied"
	RoomStatusDirty       RoomStatus = "Dirty"
	RoomStatusMaintenance RoomStatus = "Maintenance"
)

type Room struct {
	ID            int64
	Number        string
	Type          RoomType
	PricePerNight float64
	Status        RoomStatus
	Amenities     []string
}
