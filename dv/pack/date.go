package pack

import "fmt"

// weekdayNames maps the 0=Sunday..6=Saturday weekday field to its CSV text
// representation.
var weekdayNames = [7]string{"SUNDAY", "MONDAY", "TUESDAY", "WEDNESDAY", "THURSDAY", "FRIDAY", "SATURDAY"}

func weekdayByName(name string) (int, bool) {
	for i, n := range weekdayNames {
		if n == name {
			return i, true
		}
	}
	return 0, false
}

// genericDate holds the fields shared by VAUXRecordingDate and
// AAUXRecordingDate.
//
// Wire layout (bytes 1-4):
//
//	byte1: dst(1) | halfHourTZ(1) | tzTens(2) | tzUnits(4)
//	byte2: reserved(2, normally 0x3) | dayTens(2) | dayUnits(4)
//	byte3: weekday(3) | monthTens(1) | monthUnits(4)
//	byte4: yearTens(4) | yearUnits(4)
//
// Year is a 2-digit BCD value with a Y2K rollover: values < 75 are
// 2000-2074, values >= 75 are 1975-1999.
type genericDate struct {
	Year, Month, Day, Weekday   *int
	TimeZoneHours               *int
	TimeZoneHalfHour            *bool
	DaylightSavingTime          *bool
	reserved                    uint8
}

func parseGenericDate(buf []byte) (genericDate, bool) {
	b1, b2, b3, b4 := buf[1], buf[2], buf[3], buf[4]

	dst := (b1>>7)&0x1 == 0 // ds: 0 = daylight saving time, 1 = normal
	halfHour := (b1>>6)&0x1 == 1
	tzTens := int((b1 >> 4) & 0x3)
	tzUnits := int(b1 & 0xF)

	reserved := (b2 >> 6) & 0x3
	dayTens := int((b2 >> 4) & 0x3)
	dayUnits := int(b2 & 0xF)

	weekday := int((b3 >> 5) & 0x7)
	monthTens := int((b3 >> 4) & 0x1)
	monthUnits := int(b3 & 0xF)

	yearTens := int((b4 >> 4) & 0xF)
	yearUnits := int(b4 & 0xF)

	tz, tzAbsent, ok := parseBCDField(tzTens, 2, tzUnits)
	if !ok {
		return genericDate{}, false
	}
	day, dayAbsent, ok := parseBCDField(dayTens, 2, dayUnits)
	if !ok {
		return genericDate{}, false
	}
	month, monthAbsent, ok := parseBCDField(monthTens, 1, monthUnits)
	if !ok {
		return genericDate{}, false
	}
	if yearTens > 9 || yearUnits > 9 {
		if yearTens != 0xF || yearUnits != 0xF {
			return genericDate{}, false
		}
	}
	yearAbsent := yearTens == 0xF && yearUnits == 0xF
	year := yearTens*10 + yearUnits

	if dayAbsent != monthAbsent || monthAbsent != yearAbsent {
		return genericDate{}, false
	}
	if weekday == 0x7 {
		if !yearAbsent {
			return genericDate{}, false
		}
	} else if yearAbsent {
		return genericDate{}, false
	}

	g := genericDate{reserved: reserved}
	if !tzAbsent {
		g.TimeZoneHours = intPtr(tz)
		g.TimeZoneHalfHour = boolPtr(halfHour)
		g.DaylightSavingTime = boolPtr(dst)
	}
	if !yearAbsent {
		fullYear := 1900 + year
		if year < 75 {
			fullYear = 2000 + year
		}
		g.Year = intPtr(fullYear)
		g.Month = intPtr(month)
		g.Day = intPtr(day)
		g.Weekday = intPtr(weekday)
	}
	return g, true
}

func (g genericDate) toBinary() [4]byte {
	tzTens, tzUnits := 0x3, 0xF
	var halfHour uint8
	dsBit := byte(1) // ds: 0 = daylight saving time, 1 = normal
	if g.TimeZoneHours != nil {
		tzTens, tzUnits = *g.TimeZoneHours/10, *g.TimeZoneHours%10
		if g.DaylightSavingTime != nil && *g.DaylightSavingTime {
			dsBit = 0
		}
		if g.TimeZoneHalfHour != nil && *g.TimeZoneHalfHour {
			halfHour = 1
		}
	}
	b1 := dsBit<<7 | halfHour<<6 | byte(tzTens)<<4 | byte(tzUnits)

	dayTens, dayUnits := 0x3, 0xF
	monthTens, monthUnits := 0x1, 0xF
	weekday := 0x7
	yearTens, yearUnits := 0xF, 0xF
	if g.Year != nil {
		dayTens, dayUnits = *g.Day/10, *g.Day%10
		monthTens, monthUnits = *g.Month/10, *g.Month%10
		weekday = *g.Weekday
		y := *g.Year % 100
		yearTens, yearUnits = y/10, y%10
	}
	b2 := g.reserved<<6 | byte(dayTens)<<4 | byte(dayUnits)
	b3 := byte(weekday)<<5 | byte(monthTens)<<4 | byte(monthUnits)
	b4 := byte(yearTens)<<4 | byte(yearUnits)

	return [4]byte{b1, b2, b3, b4}
}

// gregorianWeekday returns the day of week (0=Sunday..6=Saturday) for the
// given proleptic Gregorian date, using Zeller's congruence.
func gregorianWeekday(year, month, day int) int {
	y, m := year, month
	if m < 3 {
		m += 12
		y--
	}
	k := y % 100
	j := y / 100
	h := (day + (13*(m+1))/5 + k + k/4 + j/4 + 5*j) % 7
	// Zeller's congruence yields 0=Saturday; rotate to 0=Sunday.
	return (h + 6) % 7
}

func (g genericDate) validateDate() string {
	if g.Year == nil {
		return ""
	}
	if *g.Year < 1975 || *g.Year > 2074 {
		return "recording date year is out of range"
	}
	if *g.Month < 1 || *g.Month > 12 {
		return "recording date month is out of range"
	}
	if *g.Day < 1 || *g.Day > 31 {
		return "recording date day is out of range"
	}
	if gregorianWeekday(*g.Year, *g.Month, *g.Day) != *g.Weekday {
		return "recording date weekday does not match the calendar date"
	}
	if g.TimeZoneHours != nil && (*g.TimeZoneHours < 0 || *g.TimeZoneHours > 23) {
		return "recording date time zone hours is out of range"
	}
	return ""
}

// dateTextFields returns the text-field schema shared by AAUXRecordingDate
// and VAUXRecordingDate: the main "YYYY-MM-DD" value plus the week and tz
// (time zone, "HH:MM") sub-fields.
func dateTextFields() map[string]FieldSchema {
	return map[string]FieldSchema{
		"": {
			Parse: func(text string) map[string]any {
				year, month, day, err := parseDateText(text)
				if err != nil {
					panic(err)
				}
				return map[string]any{"Year": year, "Month": month, "Day": day}
			},
			Format: func(values map[string]any) string {
				return formatDateText(asIntPtr(values["Year"]), asIntPtr(values["Month"]), asIntPtr(values["Day"]))
			},
		},
		"week": {
			Parse: func(text string) map[string]any {
				var v *int
				if text != "" {
					wd, ok := weekdayByName(text)
					if !ok {
						panic(fmt.Errorf("unrecognized weekday value %q", text))
					}
					v = &wd
				}
				return map[string]any{"Weekday": v}
			},
			Format: func(values map[string]any) string {
				v := asIntPtr(values["Weekday"])
				if v == nil {
					return ""
				}
				return weekdayNames[*v]
			},
		},
		"tz": {
			Parse: func(text string) map[string]any {
				hours, halfHour, err := parseTimeZoneText(text)
				if err != nil {
					panic(err)
				}
				return map[string]any{"TimeZoneHours": hours, "TimeZoneHalfHour": halfHour}
			},
			Format: func(values map[string]any) string {
				return formatTimeZoneText(asIntPtr(values["TimeZoneHours"]), asBoolPtr(values["TimeZoneHalfHour"]))
			},
		},
		"dst": {
			Parse: func(text string) map[string]any {
				v, err := parseBoolText(text)
				if err != nil {
					panic(err)
				}
				return map[string]any{"DaylightSavingTime": v}
			},
			Format: func(values map[string]any) string {
				return formatBoolText(values["DaylightSavingTime"].(*bool))
			},
		},
	}
}
