package booking

import (
	"crypto/rand"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
)

var (
	ErrInvalidTimeSlot  = errors.New("start time must be before end time")
	ErrSlotInPast       = errors.New("start time cannot be in the past")
	ErrInvalidCustomer  = errors.New("customer name and email are required")
	ErrInvalidReference = errors.New("invalid booking reference format")
)

var referenceRegex = regexp.MustCompile(`^BK-\d{8}-[A-Z0-9]{6}$`)

type TimeSlot struct {
	start time.Time
	end   time.Time
}

func NewTimeSlot(start, end time.Time, now time.Time) (TimeSlot, error) {
	if !start.Before(end) {
		return TimeSlot{}, ErrInvalidTimeSlot
	}
	if start.Before(now) {
		return TimeSlot{}, ErrSlotInPast
	}
	return TimeSlot{start: start, end: end}, nil
}

func (ts TimeSlot) Start() time.Time {
	return ts.start
}

func (ts TimeSlot) End() time.Time {
	return ts.end
}

func (ts TimeSlot) Duration() time.Duration {
	return ts.end.Sub(ts.start)
}

type Customer struct {
	name  string
	email string
	phone string
}

func NewCustomer(name, email, phone string) (Customer, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" || email == "" {
		return Customer{}, ErrInvalidCustomer
	}
	return Customer{name: name, email: email, phone: strings.TrimSpace(phone)}, nil
}

func (c Customer) Name() string  { return c.name }
func (c Customer) Email() string { return c.email }
func (c Customer) Phone() string { return c.phone }

// Reference is the human-facing booking identifier, e.g. BK-20260115-7KQ2MX.
type Reference string

const referenceAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

func NewReference(t time.Time) (Reference, error) {
	buf := make([]byte, 6)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate booking reference: %w", err)
	}
	for i, b := range buf {
		buf[i] = referenceAlphabet[int(b)%len(referenceAlphabet)]
	}
	return Reference(fmt.Sprintf("BK-%s-%s", t.Format("20060102"), string(buf))), nil
}

func ParseReference(s string) (Reference, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if !referenceRegex.MatchString(s) {
		return "", ErrInvalidReference
	}
	return Reference(s), nil
}

func (r Reference) String() string {
	return string(r)
}

type Note struct {
	value string
}

func NewNote(value string) Note {
	return Note{value: strings.TrimSpace(value)}
}

func (n Note) String() string {
	return n.value
}

func (n Note) IsEmpty() bool {
	return n.value == ""
}
