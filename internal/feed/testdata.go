package feed

import (
	"time"

	"github.com/jusunglee/trainstats/internal/models"
)

// SampleConnections returns a small Munich to Nuremberg timetable in loc.
// ICE 3 has a cancelled stop at Augsburg Hbf 40 minutes behind schedule.
func SampleConnections(loc *time.Location) []models.TrainConnection {
	at := func(hour, minute int) time.Time {
		return time.Date(2022, 12, 1, hour, minute, 0, 0, loc)
	}

	return []models.TrainConnection{
		{
			Name: "ICE 2", Type: "ICE", Line: "2", Operator: "DB",
			Stops: []models.TrainStop{
				{Station: models.MuenchenHbf, Scheduled: at(11, 0), Actual: at(11, 0), Kind: models.Regular},
				{Station: models.NuernbergHbf, Scheduled: at(11, 30), Actual: at(12, 0), Kind: models.Regular},
			},
		},
		{
			Name: "ICE 1", Type: "ICE", Line: "1", Operator: "DB",
			Stops: []models.TrainStop{
				{Station: models.MuenchenHbf, Scheduled: at(10, 0), Actual: at(10, 0), Kind: models.Regular},
				{Station: models.NuernbergHbf, Scheduled: at(10, 30), Actual: at(10, 30), Kind: models.Regular},
			},
		},
		{
			Name: "ICE 3", Type: "ICE", Line: "3", Operator: "DB",
			Stops: []models.TrainStop{
				{Station: models.MuenchenHbf, Scheduled: at(12, 0), Actual: at(12, 0), Kind: models.Regular},
				{Station: models.AugsburgHbf, Scheduled: at(12, 20), Actual: at(13, 0), Kind: models.Cancelled},
				{Station: models.NuernbergHbf, Scheduled: at(13, 30), Actual: at(13, 30), Kind: models.Regular},
			},
		},
	}
}
