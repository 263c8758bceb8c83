package ids

import (
	"strings"

	"github.com/segmentio/ksuid"
)

// Prefixes mirror the record types they identify, so an ID is readable in
// logs and support tickets without a table lookup.
const (
	PrefixUser     = "usr"
	PrefixSession  = "sess"
	PrefixReset    = "rst"
	PrefixCustomer = "cust"
	PrefixVehicle  = "veh"
	PrefixOrder    = "ord"
)

func New() string {
	return ksuid.New().String()
}

func NewWithPrefix(prefix string) string {
	return prefix + "-" + ksuid.New().String()
}

func NewUser() string     { return NewWithPrefix(PrefixUser) }
func NewSession() string  { return NewWithPrefix(PrefixSession) }
func NewReset() string    { return NewWithPrefix(PrefixReset) }
func NewCustomer() string { return NewWithPrefix(PrefixCustomer) }
func NewVehicle() string  { return NewWithPrefix(PrefixVehicle) }
func NewOrder() string    { return NewWithPrefix(PrefixOrder) }

// HasPrefix reports whether id carries the expected type prefix.
func HasPrefix(id string, prefix string) bool {
	return strings.HasPrefix(id, prefix+"-")
}
