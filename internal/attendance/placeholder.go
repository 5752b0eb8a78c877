package attendance

import (
	"fmt"
	"math"
	"time"
)

const (
	placeholderPeople = 5
	placeholderDays   = 7
)

var placeholderLocations = []string{"IFC Office", "Remote", "Client Site"}

// Placeholder fabricates a week of weekday attendance for the first few
// people, used when the attendance log cannot be read. Output depends only
// on people and today, so reloads produce the same records.
func Placeholder(people []Person, today time.Time) []Record {
	if len(people) > placeholderPeople {
		people = people[:placeholderPeople]
	}
	loc := today.Location()
	midnight := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, loc)

	var out []Record
	for d := 0; d < placeholderDays; d++ {
		day := midnight.AddDate(0, 0, -d)
		if wd := day.Weekday(); wd == time.Saturday || wd == time.Sunday {
			continue
		}
		for j, p := range people {
			in := day.Add(9*time.Hour + time.Duration((d*7+j*11)%30)*time.Minute)
			outAt := day.Add(17*time.Hour + time.Duration(30+(d*13+j*5)%30)*time.Minute)
			punchIn := in.Format(time.RFC3339)
			punchOut := outAt.Format(time.RFC3339)

			out = append(out, Record{
				ID:               fmt.Sprintf("att_%04d", len(out)+1),
				EmployeeID:       p.ID,
				EmployeeName:     p.Name,
				Date:             day.Format("2006-01-02"),
				PunchIn:          &punchIn,
				PunchOut:         &punchOut,
				PunchInLocation:  placeholderLocations[(d+j)%len(placeholderLocations)],
				PunchOutLocation: placeholderLocations[(d+2*j)%len(placeholderLocations)],
				Status:           statuses[(d+j)%3],
				TotalHours:       math.Round(outAt.Sub(in).Hours()*100) / 100,
				CreatedAt:        today,
				UpdatedAt:        today,
			})
		}
	}
	return out
}
