package domain

import "strings"

// Status is the service state of a reservation. The set is open-ended: values
// outside the known constants are kept verbatim so they still render.
type Status string

const (
	StatusUnknown      Status = ""
	StatusCheckedOut   Status = "CHECKED OUT"
	StatusSeated       Status = "SEATED"
	StatusConfirmed    Status = "CONFIRMED"
	StatusNotConfirmed Status = "NOT CONFIRMED"
)

// Shift is the service period a reservation belongs to.
type Shift string

const (
	ShiftUnknown   Shift = ""
	ShiftBreakfast Shift = "BREAKFAST"
	ShiftLunch     Shift = "LUNCH"
	ShiftDinner    Shift = "DINNER"
)

// Area is the part of the restaurant the party is seated in.
type Area string

const (
	AreaUnknown  Area = ""
	AreaBar      Area = "BAR"
	AreaMainRoom Area = "MAIN ROOM"
)

var knownStatuses = map[string]Status{
	string(StatusCheckedOut):   StatusCheckedOut,
	string(StatusSeated):       StatusSeated,
	string(StatusConfirmed):    StatusConfirmed,
	string(StatusNotConfirmed): StatusNotConfirmed,
}

var knownShifts = map[string]Shift{
	string(ShiftBreakfast): ShiftBreakfast,
	string(ShiftLunch):     ShiftLunch,
	string(ShiftDinner):    ShiftDinner,
}

var knownAreas = map[string]Area{
	string(AreaBar):      AreaBar,
	string(AreaMainRoom): AreaMainRoom,
}

// NormalizeStatus returns the canonical Status for value. Unknown statuses are
// uppercased and returned as-is to avoid data loss.
func NormalizeStatus(value any) Status {
	return Status(normalizeEnum(value))
}

func NormalizeShift(value any) Shift {
	return Shift(normalizeEnum(value))
}

func NormalizeArea(value any) Area {
	return Area(normalizeEnum(value))
}

// Known reports whether s is one of the statuses the board offers as a filter.
func (s Status) Known() bool {
	_, ok := knownStatuses[string(s)]
	return ok
}

func (s Shift) Known() bool {
	_, ok := knownShifts[string(s)]
	return ok
}

func (a Area) Known() bool {
	_, ok := knownAreas[string(a)]
	return ok
}

// Tone is the colour class a status is rendered with.
type Tone string

const (
	TonePositive Tone = "positive"
	TonePending  Tone = "pending"
	ToneAlert    Tone = "alert"
)

// StatusTone maps a status onto its display tone.
func StatusTone(s Status) Tone {
	switch s {
	case StatusCheckedOut:
		return TonePositive
	case StatusNotConfirmed:
		return TonePending
	default:
		return ToneAlert
	}
}

func normalizeEnum(value any) string {
	s, ok := value.(string)
	if !ok {
		return ""
	}
	return strings.Join(strings.Fields(strings.ToUpper(s)), " ")
}
