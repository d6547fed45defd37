package rental

import (
	"time"
)

// day builds a labelled daily record on a working day in January.
func day(yr, season, weather, casual, registered int) Record {
	return Label(Record{
		Date:       time.Date(2011+yr, time.January, 1, 0, 0, 0, 0, time.UTC),
		Year:       yr,
		Month:      1,
		Season:     season,
		Weather:    weather,
		WorkingDay: true,
		Casual:     casual,
		Registered: registered,
		Total:      casual + registered,
	})
}

func hour(rec Record, h int) HourlyRecord {
	return HourlyRecord{Record: rec, Hour: h}
}
