package healthcheck

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

type Half int

const (
	FirstHalf  Half = 1
	SecondHalf Half = 2
)

type Period struct {
	Year int  `json:"year"`
	Half Half `json:"half"`
}

func (p Period) String() string {
	if p.Half == FirstHalf {
		return fmt.Sprintf("%04d - 1st Half", p.Year)
	}
	return fmt.Sprintf("%04d - 2nd Half", p.Year)
}

var periodPattern = regexp.MustCompile(`^(\d{4}) - (1st|2nd) Half$`)

// AssessmentPeriod labels a date: January to June belong to the previous year's 2nd half,
// July to December to the current year's 1st half. Only the calendar date is used.
func AssessmentPeriod(date time.Time) string {
	return periodOf(date).String()
}

func CurrentAssessmentPeriod(now func() time.Time) string {
	if now == nil {
		now = time.Now
	}
	return AssessmentPeriod(now())
}

func periodOf(date time.Time) Period {
	year, month, _ := date.Date()
	if month <= time.June {
		return Period{Year: year - 1, Half: SecondHalf}
	}
	return Period{Year: year, Half: FirstHalf}
}

// ParseAssessmentPeriod returns false for anything that is not "YYYY - 1st Half" or "YYYY - 2nd Half".
func ParseAssessmentPeriod(label string) (Period, bool) {
	m := periodPattern.FindStringSubmatch(label)
	if m == nil {
		return Period{}, false
	}
	year, err := strconv.Atoi(m[1])
	if err != nil {
		return Period{}, false
	}
	half := FirstHalf
	if m[2] == "2nd" {
		half = SecondHalf
	}
	return Period{Year: year, Half: half}, true
}

// CompareAssessmentPeriods orders by year, then half. It returns 0 when either label is
// unparseable, so callers must not rely on a strict order for malformed input.
func CompareAssessmentPeriods(a, b string) int {
	pa, okA := ParseAssessmentPeriod(a)
	pb, okB := ParseAssessmentPeriod(b)
	if !okA || !okB {
		return 0
	}
	if pa.Year != pb.Year {
		if pa.Year < pb.Year {
			return -1
		}
		return 1
	}
	return int(pa.Half) - int(pb.Half)
}
