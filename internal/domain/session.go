package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SessionStatus represents the lifecycle state of a service session
type SessionStatus string

const (
	SessionActive   SessionStatus = "active"
	SessionFinished SessionStatus = "finished"
)

// Location tells where the service takes place
type Location string

const (
	LocationOnPremises Location = "on_premises"
	LocationOffSite    Location = "off_site"
)

// PaymentMethod is how the client pays for the session
type PaymentMethod string

const (
	PaymentCash     PaymentMethod = "cash"
	PaymentCard     PaymentMethod = "card"
	PaymentTransfer PaymentMethod = "transfer"
	PaymentMixed    PaymentMethod = "mixed"
)

// PaymentMethods lists every accepted payment method
var PaymentMethods = []PaymentMethod{
	PaymentCash,
	PaymentCard,
	PaymentTransfer,
	PaymentMixed,
}

// IsValid reports whether the payment method is one of PaymentMethods
func (p PaymentMethod) IsValid() bool {
	for _, m := range PaymentMethods {
		if p == m {
			return true
		}
	}
	return false
}

// Client identifies the customer of a session
type Client struct {
	ID    string
	Name  string
	Phone *string
	Email *string
}

// AdditionalTime is extra time bought during an active session
type AdditionalTime struct {
	Label   string
	Cost    decimal.Decimal
	Receipt *string
	AddedAt time.Time
}

// Minutes returns how much the entry extends the session
func (a AdditionalTime) Minutes() int {
	return ExtraTimeMinutes(a.Label)
}

// Extra is an add-on sold during an active session
type Extra struct {
	Description string
	Cost        decimal.Decimal
	Receipt     *string
	AddedAt     time.Time
}

// Consumption is an itemized product consumed during an active session
type Consumption struct {
	Description string
	UnitCost    decimal.Decimal
	Quantity    int
	AddedAt     time.Time
}

// Subtotal returns UnitCost × Quantity
func (c Consumption) Subtotal() decimal.Decimal {
	return c.UnitCost.Mul(decimal.NewFromInt(int64(c.Quantity)))
}

// EditableValues are the fields an administrator may rewrite on a finished session
type EditableValues struct {
	ServiceType      string
	DurationCategory DurationCategory
	BaseCost         decimal.Decimal
	AdditionalCost   decimal.Decimal
	ConsumptionCost  decimal.Decimal
}

// AdminEdit is one entry of the administrative edit history
type AdminEdit struct {
	EditedAt time.Time
	Reason   string
	Previous EditableValues
	Updated  EditableValues
}

// ServiceSession represents one booked and charged unit of service work
type ServiceSession struct {
	ID            string
	StaffEmail    string
	StaffName     string
	Client        *Client
	AppointmentID *string

	ServiceType      string
	Location         Location
	RoomNumber       *int // only for on-premises sessions
	DurationCategory DurationCategory

	BaseCost        decimal.Decimal
	AdditionalCost  decimal.Decimal // legacy scalar
	ConsumptionCost decimal.Decimal // legacy scalar
	AdditionalTimes []AdditionalTime
	Extras          []Extra
	Consumptions    []Consumption

	PaymentMethod PaymentMethod
	ReceiptImage  *string
	Notes         *string
	ClosingNotes  *string

	StartedAt        time.Time
	EndedAt          *time.Time
	DurationMinutes  int   // base duration + all added time
	RemainingSeconds int64 // derived on every tick
	OvertimeSeconds  int64 // derived on every tick

	Status SessionStatus

	EditedByAdmin bool
	EditHistory   []AdminEdit
}

// IsActive returns true while the session has not been finalized
func (s *ServiceSession) IsActive() bool {
	return s.Status == SessionActive
}

// IsFinished returns true once the session has been finalized
func (s *ServiceSession) IsFinished() bool {
	return s.Status == SessionFinished
}

// OccupiesRoom returns true if the session is active and references the room
func (s *ServiceSession) OccupiesRoom(room int) bool {
	return s.IsActive() && s.RoomNumber != nil && *s.RoomNumber == room
}

// LimitSeconds returns the current deadline measured from StartedAt
func (s *ServiceSession) LimitSeconds() int64 {
	return int64(s.DurationMinutes) * 60
}

// ElapsedSeconds returns whole seconds elapsed since StartedAt
func (s *ServiceSession) ElapsedSeconds(now time.Time) int64 {
	elapsed := int64(now.Sub(s.StartedAt) / time.Second)
	if elapsed < 0 {
		return 0
	}
	return elapsed
}

// Countdown derives remaining and overtime seconds from the absolute start time.
// At most one of the two values is non-zero.
func (s *ServiceSession) Countdown(now time.Time) (remaining, overtime int64) {
	elapsed := s.ElapsedSeconds(now)
	limit := s.LimitSeconds()
	if elapsed < limit {
		return limit - elapsed, 0
	}
	return 0, elapsed - limit
}

// ExtrasTotal sums extra add-on costs
func (s *ServiceSession) ExtrasTotal() decimal.Decimal {
	total := decimal.Zero
	for _, e := range s.Extras {
		total = total.Add(e.Cost)
	}
	return total
}

// AdditionalTimeTotal sums the cost of bought extra time
func (s *ServiceSession) AdditionalTimeTotal() decimal.Decimal {
	total := decimal.Zero
	for _, a := range s.AdditionalTimes {
		total = total.Add(a.Cost)
	}
	return total
}

// ConsumptionsTotal sums itemized consumption (unit cost × quantity)
func (s *ServiceSession) ConsumptionsTotal() decimal.Decimal {
	total := decimal.Zero
	for _, c := range s.Consumptions {
		total = total.Add(c.Subtotal())
	}
	return total
}

// Total returns the billable amount over every cost category
func (s *ServiceSession) Total() decimal.Decimal {
	return s.BaseCost.
		Add(s.AdditionalCost).
		Add(s.ConsumptionCost).
		Add(s.AdditionalTimeTotal()).
		Add(s.ExtrasTotal()).
		Add(s.ConsumptionsTotal())
}

// EditableValues snapshots the fields covered by the admin edit audit
func (s *ServiceSession) EditableValues() EditableValues {
	return EditableValues{
		ServiceType:      s.ServiceType,
		DurationCategory: s.DurationCategory,
		BaseCost:         s.BaseCost,
		AdditionalCost:   s.AdditionalCost,
		ConsumptionCost:  s.ConsumptionCost,
	}
}

// Clone returns a deep copy that shares no mutable state with s
func (s *ServiceSession) Clone() *ServiceSession {
	if s == nil {
		return nil
	}
	c := *s
	if s.Client != nil {
		client := *s.Client
		client.Phone = cloneString(s.Client.Phone)
		client.Email = cloneString(s.Client.Email)
		c.Client = &client
	}
	c.AppointmentID = cloneString(s.AppointmentID)
	c.ReceiptImage = cloneString(s.ReceiptImage)
	c.Notes = cloneString(s.Notes)
	c.ClosingNotes = cloneString(s.ClosingNotes)
	if s.RoomNumber != nil {
		room := *s.RoomNumber
		c.RoomNumber = &room
	}
	if s.EndedAt != nil {
		ended := *s.EndedAt
		c.EndedAt = &ended
	}
	c.AdditionalTimes = append([]AdditionalTime(nil), s.AdditionalTimes...)
	for i := range c.AdditionalTimes {
		c.AdditionalTimes[i].Receipt = cloneString(c.AdditionalTimes[i].Receipt)
	}
	c.Extras = append([]Extra(nil), s.Extras...)
	for i := range c.Extras {
		c.Extras[i].Receipt = cloneString(c.Extras[i].Receipt)
	}
	c.Consumptions = append([]Consumption(nil), s.Consumptions...)
	c.EditHistory = append([]AdminEdit(nil), s.EditHistory...)
	return &c
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
