package availability

import (
	"skillbridge/models"
	"skillbridge/utils"
)

// normalizeWindow checks day and time range and returns canonical "HH:mm" strings.
func normalizeWindow(day models.Weekday, start, end string) (string, string, error) {
	if !day.Valid() {
		return "", "", utils.Validation("dayOfWeek must be between 0 (Sunday) and 6 (Saturday), got %d", int(day))
	}
	s, err := models.ParseClock(start)
	if err != nil {
		return "", "", utils.Validation("startTime: %v", err)
	}
	e, err := models.ParseClock(end)
	if err != nil {
		return "", "", utils.Validation("endTime: %v", err)
	}
	if s >= e {
		return "", "", utils.Validation("startTime %s must be before endTime %s", s, e)
	}
	return s.String(), e.String(), nil
}

// firstOverlap returns the first slot in existing that overlaps candidate, skipping candidate's own id.
func firstOverlap(candidate models.AvailabilitySlot, existing []models.AvailabilitySlot) *models.AvailabilitySlot {
	for i := range existing {
		if existing[i].ID == candidate.ID && candidate.ID != "" {
			continue
		}
		if candidate.Overlaps(existing[i]) {
			return &existing[i]
		}
	}
	return nil
}
