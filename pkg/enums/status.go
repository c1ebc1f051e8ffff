package enums

import "fmt"

// Status tracks the lifecycle of a user or bank-account record.
type Status string

const (
	StatusProcessing Status = "PROCESSING"
	StatusPending    Status = "PENDING"
	StatusActive     Status = "ACTIVE"
	StatusInactive   Status = "INACTIVE"
	StatusBlocked    Status = "BLOCKED"
	StatusDeleted    Status = "DELETED"
)

var validStatuses = []Status{
	StatusProcessing,
	StatusPending,
	StatusActive,
	StatusInactive,
	StatusBlocked,
	StatusDeleted,
}

// String implements fmt.Stringer.
func (s Status) String() string {
	return string(s)
}

// IsValid reports whether the value is a known Status.
func (s Status) IsValid() bool {
	for _, candidate := range validStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseStatus converts raw input into a Status.
func ParseStatus(value string) (Status, error) {
	for _, candidate := range validStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid status %q", value)
}
