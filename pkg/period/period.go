package period

import (
	"fmt"
	"time"
)

// Type identifies one level of the goal hierarchy.
type Type string

const (
	Vision    Type = "vision"
	Yearly    Type = "yearly"
	Quarterly Type = "quarterly"
	Monthly   Type = "monthly"
	Weekly    Type = "weekly"
)

// Valid reports whether t is a known period type.
func (t Type) Valid() bool {
	switch t {
	case Vision, Yearly, Quarterly, Monthly, Weekly:
		return true
	}
	return false
}

// Period is a typed, bounded span of calendar time. Quarter, Month and Week
// are zero when the type does not use them. Start and End are inclusive
// calendar days at midnight local time.
type Period struct {
	Type    Type      `json:"type"`
	Year    int       `json:"year"`
	Quarter int       `json:"quarter,omitempty"`
	Month   int       `json:"month,omitempty"`
	Week    int       `json:"week,omitempty"`
	Label   string    `json:"label"`
	Start   time.Time `json:"start"`
	End     time.Time `json:"end"`
}

var danishMonths = [...]string{
	"Januar", "Februar", "Marts", "April", "Maj", "Juni",
	"Juli", "August", "September", "Oktober", "November", "December",
}

// Contains reports whether t falls on one of the period's days.
func (p Period) Contains(t time.Time) bool {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return !day.Before(p.Start) && !day.After(p.End)
}

// IsCurrent reports whether the period contains today.
func (p Period) IsCurrent() bool {
	return p.Contains(time.Now())
}

// Current computes the period of the given type containing the anchor date.
// For vision the returned period is a default: its year is anchor+2 and its
// end is two years out; the effective range of an existing vision document
// lives in its startYear/endYear frontmatter, not here.
func Current(t Type, anchor time.Time) Period {
	y, m, d := anchor.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, anchor.Location())

	switch t {
	case Weekly:
		start := startOfISOWeek(day)
		end := start.AddDate(0, 0, 6)
		weekYear, week := start.ISOWeek()
		month := int(start.Month())
		return Period{
			Type:    Weekly,
			Year:    weekYear,
			Quarter: quarterOf(month),
			Month:   month,
			Week:    week,
			Label:   fmt.Sprintf("Uge %d, %d", week, weekYear),
			Start:   start,
			End:     end,
		}
	case Monthly:
		start := time.Date(y, m, 1, 0, 0, 0, 0, day.Location())
		end := start.AddDate(0, 1, -1)
		return Period{
			Type:    Monthly,
			Year:    y,
			Quarter: quarterOf(int(m)),
			Month:   int(m),
			Label:   fmt.Sprintf("%s %d", danishMonths[m-1], y),
			Start:   start,
			End:     end,
		}
	case Quarterly:
		q := quarterOf(int(m))
		start := time.Date(y, time.Month((q-1)*3+1), 1, 0, 0, 0, 0, day.Location())
		end := start.AddDate(0, 3, -1)
		return Period{
			Type:    Quarterly,
			Year:    y,
			Quarter: q,
			Label:   fmt.Sprintf("Q%d %d", q, y),
			Start:   start,
			End:     end,
		}
	case Yearly:
		return Period{
			Type:  Yearly,
			Year:  y,
			Label: fmt.Sprintf("%d", y),
			Start: time.Date(y, 1, 1, 0, 0, 0, 0, day.Location()),
			End:   time.Date(y, 12, 31, 0, 0, 0, 0, day.Location()),
		}
	case Vision:
		return Period{
			Type:  Vision,
			Year:  y + 2,
			Label: fmt.Sprintf("Vision %d", y+2),
			Start: time.Date(y, 1, 1, 0, 0, 0, 0, day.Location()),
			End:   time.Date(y+2, 12, 31, 0, 0, 0, 0, day.Location()),
		}
	}
	panic(fmt.Sprintf("period: unknown type %q", t))
}

// FromFields reconstructs a full period from explicit numeric fields, as
// received by write requests. Weekly periods locate the ISO week's Monday via
// January 4th, which is always inside week 1; week 53 is rejected in years
// that only have 52 ISO weeks.
func FromFields(t Type, year, quarter, month, week int) (Period, error) {
	if !t.Valid() {
		return Period{}, fmt.Errorf("period: unknown type %q", t)
	}
	if year < 1 {
		return Period{}, fmt.Errorf("period: year %d out of range", year)
	}
	switch t {
	case Weekly:
		if week < 1 || week > 53 {
			return Period{}, fmt.Errorf("period: week %d out of range", week)
		}
		week1 := startOfISOWeek(time.Date(year, 1, 4, 0, 0, 0, 0, time.Local))
		p := Current(Weekly, week1.AddDate(0, 0, (week-1)*7))
		if p.Year != year {
			return Period{}, fmt.Errorf("period: year %d has no week %d", year, week)
		}
		return p, nil
	case Monthly:
		if month < 1 || month > 12 {
			return Period{}, fmt.Errorf("period: month %d out of range", month)
		}
		return Current(Monthly, time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.Local)), nil
	case Quarterly:
		if quarter < 1 || quarter > 4 {
			return Period{}, fmt.Errorf("period: quarter %d out of range", quarter)
		}
		return Current(Quarterly, time.Date(year, time.Month((quarter-1)*3+1), 1, 0, 0, 0, 0, time.Local)), nil
	case Yearly:
		return Current(Yearly, time.Date(year, 1, 1, 0, 0, 0, 0, time.Local)), nil
	default:
		return Current(Vision, time.Date(year-2, 1, 1, 0, 0, 0, 0, time.Local)), nil
	}
}

// ForYear enumerates the periods of the given type within a year. Quarterly
// always yields 4, monthly 12. Weekly yields the 52 or 53 ISO weeks whose
// week-year equals the target year; boundary weeks belonging to the adjacent
// year are excluded.
func ForYear(t Type, year int) []Period {
	switch t {
	case Yearly:
		return []Period{Current(Yearly, time.Date(year, 1, 1, 0, 0, 0, 0, time.Local))}
	case Vision:
		return []Period{Current(Vision, time.Date(year-2, 1, 1, 0, 0, 0, 0, time.Local))}
	case Quarterly:
		out := make([]Period, 0, 4)
		for q := 1; q <= 4; q++ {
			out = append(out, Current(Quarterly, time.Date(year, time.Month((q-1)*3+1), 1, 0, 0, 0, 0, time.Local)))
		}
		return out
	case Monthly:
		out := make([]Period, 0, 12)
		for m := 1; m <= 12; m++ {
			out = append(out, Current(Monthly, time.Date(year, time.Month(m), 1, 0, 0, 0, 0, time.Local)))
		}
		return out
	case Weekly:
		var out []Period
		d := time.Date(year, 1, 1, 0, 0, 0, 0, time.Local)
		for i := 0; i < 54; i++ {
			p := Current(Weekly, d)
			if p.Year == year {
				out = append(out, p)
			} else if p.Year > year {
				break
			}
			d = d.AddDate(0, 0, 7)
		}
		return out
	}
	return nil
}

// Parent returns the period one level up, or nil for vision.
func Parent(p Period) *Period {
	var parent Period
	switch p.Type {
	case Weekly:
		parent = Current(Monthly, p.Start)
	case Monthly:
		parent = Current(Quarterly, p.Start)
	case Quarterly:
		parent = Current(Yearly, p.Start)
	case Yearly:
		parent = Current(Vision, p.Start)
	default:
		return nil
	}
	return &parent
}

// Children returns the periods one level down, empty for weekly.
//
// The monthly case keeps the historical inclusive-OR filter: a week is
// attached when it starts inside the month or ends inside it, which admits
// the boundary weeks at both ends of the month.
func Children(p Period) []Period {
	switch p.Type {
	case Vision:
		var out []Period
		for d := p.Start; !d.After(p.End); d = d.AddDate(1, 0, 0) {
			out = append(out, Current(Yearly, d))
		}
		return out
	case Yearly:
		return ForYear(Quarterly, p.Year)
	case Quarterly:
		var out []Period
		for d := p.Start; !d.After(p.End); d = d.AddDate(0, 1, 0) {
			out = append(out, Current(Monthly, d))
		}
		return out
	case Monthly:
		var out []Period
		for w := Current(Weekly, p.Start); !w.Start.After(p.End); w = Current(Weekly, w.Start.AddDate(0, 0, 7)) {
			if !w.Start.Before(p.Start) || !w.End.After(p.End) {
				out = append(out, w)
			}
		}
		return out
	}
	return nil
}

// Hierarchy returns the chain from the root down to p, vision first.
func Hierarchy(p Period) []Period {
	chain := []Period{p}
	for cur := Parent(p); cur != nil; cur = Parent(*cur) {
		chain = append([]Period{*cur}, chain...)
	}
	return chain
}

// startOfISOWeek returns the Monday of the week containing day.
func startOfISOWeek(day time.Time) time.Time {
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

func quarterOf(month int) int {
	return (month-1)/3 + 1
}
