package order

import "fmt"

// DeliveryMethod is how the finished order reaches the customer.
type DeliveryMethod string

const (
	// DeliveryMeetup is an in-person hand-off at the agreed meetup spot.
	DeliveryMeetup DeliveryMethod = "meetup"
	// DeliveryHome is courier-based home delivery.
	DeliveryHome DeliveryMethod = "home-delivery"
)

// TimeSlot is one of the fixed pickup/delivery windows within business hours.
type TimeSlot string

const (
	SlotMorning   TimeSlot = "10:00-12:00"
	SlotAfternoon TimeSlot = "13:00-15:00"
	SlotEvening   TimeSlot = "16:00-18:00"
)

// TimeSlots returns every selectable window in display order.
func TimeSlots() []TimeSlot {
	return []TimeSlot{SlotMorning, SlotAfternoon, SlotEvening}
}

func validTimeSlot(s TimeSlot) bool {
	switch s {
	case SlotMorning, SlotAfternoon, SlotEvening:
		return true
	}
	return false
}

// ValidationError indicates a missing or invalid order form field. It is
// surfaced to the caller for correction, never defaulted away.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// Form is the transient customer/delivery input for a checkout. It is owned
// by the checkout flow only and discarded after submission or cancellation.
type Form struct {
	CustomerName  string
	CustomerPhone string
	CustomerEmail string

	DeliveryMethod DeliveryMethod
	TimeSlot       TimeSlot

	// Required for home delivery only; ignored and cleared for meetup.
	RecipientName  string
	RecipientPhone string
	Address        string

	SpecialRequests string
}

// Validate checks the form's required fields. Home delivery additionally
// requires the recipient fields and a shipping address.
func (f Form) Validate() error {
	if f.CustomerName == "" {
		return &ValidationError{Field: "customerName", Reason: "required"}
	}
	if f.CustomerPhone == "" {
		return &ValidationError{Field: "customerPhone", Reason: "required"}
	}
	if !validTimeSlot(f.TimeSlot) {
		return &ValidationError{Field: "timeSlot", Reason: fmt.Sprintf("must be one of %v", TimeSlots())}
	}

	switch f.DeliveryMethod {
	case DeliveryMeetup:
		return nil
	case DeliveryHome:
		if f.RecipientName == "" {
			return &ValidationError{Field: "recipientName", Reason: "required for home delivery"}
		}
		if f.RecipientPhone == "" {
			return &ValidationError{Field: "recipientPhone", Reason: "required for home delivery"}
		}
		if f.Address == "" {
			return &ValidationError{Field: "address", Reason: "required for home delivery"}
		}
		return nil
	default:
		return &ValidationError{Field: "deliveryMethod", Reason: fmt.Sprintf("must be %q or %q", DeliveryMeetup, DeliveryHome)}
	}
}

// normalized returns the form with delivery-only fields cleared when the
// method is meetup, so a meetup order can never carry an address.
func (f Form) normalized() Form {
	if f.DeliveryMethod == DeliveryMeetup {
		f.RecipientName = ""
		f.RecipientPhone = ""
		f.Address = ""
	}
	return f
}
