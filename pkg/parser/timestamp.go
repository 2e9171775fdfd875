package parser

import (
	"strconv"
	"strings"
	"time"
)

// monthAbbrevs is the fixed English month table. Resolution never depends on
// the host locale.
var monthAbbrevs = [12]string{
	"Jan", "Feb", "Mar", "Apr", "May", "Jun",
	"Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
}

const maxOffset = 24 * time.Hour

// lookupMonth resolves a case-sensitive three-letter month abbreviation.
func lookupMonth(name string) (time.Month, bool) {
	for i, abbrev := range monthAbbrevs {
		if abbrev == name {
			return time.Month(i + 1), true
		}
	}
	return 0, false
}

// parseTimestamp converts the "[dd/Mon/yyyy:HH:MM:SS" and "+ZZZZ]" tokens of
// an access log line into Unix epoch seconds.
//
// When signed is false the sign character of the offset is ignored and the
// offset is always applied as positive, which is how existing consumers of
// the output expect negative offsets to be read.
func parseTimestamp(datetime, zone string, signed bool) (int64, error) {
	parts := strings.Split(strings.ReplaceAll(dropFirst(datetime), ":", "/"), "/")
	if len(parts) != 6 {
		return 0, parseErrorf("timestamp %q: expected 6 fields, got %d", datetime, len(parts))
	}

	month, ok := lookupMonth(parts[1])
	if !ok {
		return 0, parseErrorf("timestamp %q: unknown month %q", datetime, parts[1])
	}

	var nums [5]int
	for i, idx := range [5]int{0, 2, 3, 4, 5} {
		n, err := strconv.Atoi(parts[idx])
		if err != nil {
			return 0, &ParseError{Reason: "timestamp " + strconv.Quote(datetime), Err: err}
		}
		nums[i] = n
	}
	day, year, hour, minute, second := nums[0], nums[1], nums[2], nums[3], nums[4]

	offset, err := parseOffset(zone, signed)
	if err != nil {
		return 0, err
	}

	t := time.Date(year, month, day, hour, minute, second, 0, time.FixedZone("", int(offset.Seconds())))
	if !validCivil(t, year, month, day, hour, minute, second) {
		return 0, parseErrorf("timestamp %q: not a valid date and time", datetime)
	}

	return t.Unix(), nil
}

// parseOffset decodes "+HHMM]" (or "-HHMM]") into a duration.
func parseOffset(zone string, signed bool) (time.Duration, error) {
	if len(zone) < 5 {
		return 0, parseErrorf("offset %q: too short", zone)
	}

	hours, err := strconv.Atoi(zone[1:3])
	if err != nil {
		return 0, &ParseError{Reason: "offset " + strconv.Quote(zone), Err: err}
	}
	minutes, err := strconv.Atoi(zone[3 : len(zone)-1])
	if err != nil {
		return 0, &ParseError{Reason: "offset " + strconv.Quote(zone), Err: err}
	}

	// Signed digits ("+-100]") keep their own sign; only the leading sign
	// character is subject to the signed option.
	offset := time.Duration(hours)*time.Hour + time.Duration(minutes)*time.Minute
	if offset >= maxOffset || offset <= -maxOffset {
		return 0, parseErrorf("offset %q: must be less than 24 hours", zone)
	}

	if signed && zone[0] == '-' {
		offset = -offset
	}
	return offset, nil
}

// validCivil reports whether time.Date kept the fields as given rather than
// normalizing an out-of-range value (Feb 30, hour 24...).
func validCivil(t time.Time, year int, month time.Month, day, hour, minute, second int) bool {
	if year < 1 || year > 9999 {
		return false
	}
	y, m, d := t.Date()
	return y == year && m == month && d == day &&
		t.Hour() == hour && t.Minute() == minute && t.Second() == second
}
