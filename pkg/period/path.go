package period

import (
	"fmt"
	"strings"
	"time"
)

// Path returns the canonical storage path for a goal document. Every
// producer and consumer of goal files goes through this function; the
// layout under goals/ is part of the on-disk contract.
func Path(p Period) string {
	switch p.Type {
	case Vision:
		return fmt.Sprintf("vision/%d.md", p.Year)
	case Yearly:
		return fmt.Sprintf("goals/%d/yearly.md", p.Year)
	case Quarterly:
		return fmt.Sprintf("goals/%d/q%d/quarterly.md", p.Year, p.Quarter)
	case Monthly:
		return fmt.Sprintf("goals/%d/q%d/%s/monthly.md", p.Year, p.Quarter, MonthDir(p.Month))
	case Weekly:
		return fmt.Sprintf("goals/%d/q%d/%s/week-%02d.md", p.Year, p.Quarter, MonthDir(p.Month), p.Week)
	}
	return ""
}

// ReflectionPath returns the storage path of the reflection linked to a
// period, mirroring the goals/ layout under reflections/.
func ReflectionPath(p Period) string {
	switch p.Type {
	case Vision:
		return fmt.Sprintf("reflections/vision/%d-reflection.md", p.Year)
	case Yearly:
		return fmt.Sprintf("reflections/%d/yearly-reflection.md", p.Year)
	case Quarterly:
		return fmt.Sprintf("reflections/%d/q%d/quarterly-reflection.md", p.Year, p.Quarter)
	case Monthly:
		return fmt.Sprintf("reflections/%d/q%d/%s/monthly-reflection.md", p.Year, p.Quarter, MonthDir(p.Month))
	case Weekly:
		return fmt.Sprintf("reflections/%d/q%d/%s/week-%02d-reflection.md", p.Year, p.Quarter, MonthDir(p.Month), p.Week)
	}
	return ""
}

// MonthDir is the lowercase English month name used in paths.
func MonthDir(month int) string {
	return strings.ToLower(time.Month(month).String())
}
