package rental

import "strings"

// RiderType selects which rider count the dashboard reports on.
type RiderType string

const (
	RiderTotal      RiderType = "Total"
	RiderCasual     RiderType = "Casual"
	RiderRegistered RiderType = "Registered"
)

// RiderTypes returns the rider types in display order.
func RiderTypes() []RiderType {
	return []RiderType{RiderTotal, RiderCasual, RiderRegistered}
}

// Column resolves the rider type to the column every downstream aggregate
// reads.
func (t RiderType) Column() Column {
	switch t {
	case RiderCasual:
		return ColumnCasual
	case RiderRegistered:
		return ColumnRegistered
	default:
		return ColumnTotal
	}
}

// ParseRiderType matches s case-insensitively against the rider types. An
// unmatched value is returned as-is so selection validation can reject it.
func ParseRiderType(s string) RiderType {
	s = strings.TrimSpace(s)
	for _, t := range RiderTypes() {
		if strings.EqualFold(s, string(t)) {
			return t
		}
	}
	return RiderType(s)
}
