package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Weekday is 0=Sunday through 6=Saturday. On the wire it also accepts day
// names such as "MONDAY" or "mon".
type Weekday int

var weekdayNames = map[string]Weekday{
	"sunday": 0, "sun": 0,
	"monday": 1, "mon": 1,
	"tuesday": 2, "tue": 2, "tues": 2,
	"wednesday": 3, "wed": 3,
	"thursday": 4, "thu": 4, "thurs": 4,
	"friday": 5, "fri": 5,
	"saturday": 6, "sat": 6,
}

func (d Weekday) Valid() bool {
	return d >= 0 && d <= 6
}

func (d Weekday) String() string {
	if !d.Valid() {
		return fmt.Sprintf("Weekday(%d)", int(d))
	}
	return time.Weekday(d).String()
}

// ParseWeekday accepts "0".."6" or an English day name in any case.
func ParseWeekday(s string) (Weekday, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if n, err := strconv.Atoi(s); err == nil {
		d := Weekday(n)
		if !d.Valid() {
			return 0, fmt.Errorf("dayOfWeek %d out of range 0-6", n)
		}
		return d, nil
	}
	if d, ok := weekdayNames[s]; ok {
		return d, nil
	}
	return 0, fmt.Errorf("unknown dayOfWeek %q", s)
}

// UnmarshalJSON keeps out-of-range integers so validation can reject them
// with a proper message instead of a decode error.
func (d *Weekday) UnmarshalJSON(b []byte) error {
	var n int
	if err := json.Unmarshal(b, &n); err == nil {
		*d = Weekday(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("dayOfWeek must be a number or a day name")
	}
	parsed, err := ParseWeekday(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// ClockTime is minutes since midnight, parsed from "HH:mm".
type ClockTime int

func ParseClock(s string) (ClockTime, error) {
	t, err := time.Parse("15:04", strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid time %q, expected HH:mm", s)
	}
	return ClockTime(t.Hour()*60 + t.Minute()), nil
}

func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", int(c)/60, int(c)%60)
}

// AvailabilitySlot is a recurring weekly window, not a concrete calendar event.
type AvailabilitySlot struct {
	ID          string    `bson:"id" json:"id"`
	TutorID     string    `bson:"tutorId" json:"tutorId"`
	DayOfWeek   Weekday   `bson:"dayOfWeek" json:"dayOfWeek"`
	StartTime   string    `bson:"startTime" json:"startTime"`
	EndTime     string    `bson:"endTime" json:"endTime"`
	IsAvailable bool      `bson:"isAvailable" json:"isAvailable"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time `bson:"updatedAt" json:"updatedAt"`
}

// Window returns the parsed start and end of the slot.
func (s AvailabilitySlot) Window() (ClockTime, ClockTime, error) {
	start, err := ParseClock(s.StartTime)
	if err != nil {
		return 0, 0, err
	}
	end, err := ParseClock(s.EndTime)
	if err != nil {
		return 0, 0, err
	}
	return start, end, nil
}

// Overlaps reports whether two slots on the same day share any minute.
// Touching windows do not overlap.
func (s AvailabilitySlot) Overlaps(o AvailabilitySlot) bool {
	if s.DayOfWeek != o.DayOfWeek {
		return false
	}
	s1, e1, err := s.Window()
	if err != nil {
		return false
	}
	s2, e2, err := o.Window()
	if err != nil {
		return false
	}
	return s1 < e2 && s2 < e1
}

type SlotRequest struct {
	DayOfWeek   Weekday `json:"dayOfWeek" binding:"weekday"`
	StartTime   string  `json:"startTime" binding:"required,hhmm"`
	EndTime     string  `json:"endTime" binding:"required,hhmm"`
	IsAvailable *bool   `json:"isAvailable"`
}

// SlotUpdate is a partial update; nil fields keep their stored value.
type SlotUpdate struct {
	DayOfWeek   *Weekday `json:"dayOfWeek" binding:"omitempty,weekday"`
	StartTime   *string  `json:"startTime" binding:"omitempty,hhmm"`
	EndTime     *string  `json:"endTime" binding:"omitempty,hhmm"`
	IsAvailable *bool    `json:"isAvailable"`
}

// ReplaceSlotsRequest is the body of PUT /tutors/availability.
type ReplaceSlotsRequest struct {
	AvailabilitySlots []SlotRequest `json:"availabilitySlots" binding:"dive"`
}
