package booking

import "github.com/nekogravitycat/item-sharing-backend/internal/item"

// Authorization predicates gating booking operations. Pure checks over resolved
// entities; the only effect of a violation is the returned typed error.

// CanView allows the item owner and the booking author to read a booking.
func CanView(actorID string, b *Booking) error {
	if actorID != b.ItemOwnerID && actorID != b.BookerID {
		return ErrNotOwnerOrBooker
	}
	return nil
}

// CanApprove allows only the item owner to decide on a booking.
func CanApprove(actorID string, b *Booking) error {
	if actorID != b.ItemOwnerID {
		return ErrNotItemOwner
	}
	return nil
}

// CanCreate allows booking an item only by someone other than its owner, and
// only while the item is available. The two violations are distinct failures:
// self-booking is an authorization problem, unavailability a domain one.
func CanCreate(actorID string, it *item.Item) error {
	if actorID == it.OwnerID {
		return ErrOwnerSelfBooking
	}
	if !it.Available {
		return ErrItemUnavailable
	}
	return nil
}
