package attendance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func ts(hour, min int) *time.Time {
	t := time.Date(2025, 3, 10, hour, min, 0, 0, time.UTC)
	return &t
}

func TestDetermineStatus(t *testing.T) {
	cases := []struct {
		name string
		in   *time.Time
		out  *time.Time
		want string
	}{
		{"on time in, late out", ts(8, 0), ts(18, 30), StatusFullDay},
		{"grace window start", ts(7, 45), ts(18, 0), StatusFullDay},
		{"grace window end", ts(8, 15), ts(18, 0), StatusFullDay},
		{"late in", ts(8, 30), ts(18, 30), StatusHalfDay},
		{"early in", ts(7, 30), ts(18, 30), StatusHalfDay},
		{"early out", ts(8, 0), ts(17, 59), StatusHalfDay},
		{"in only", ts(8, 0), nil, StatusHalfDay},
		{"out only", nil, ts(18, 30), StatusHalfDay},
		{"neither", nil, nil, StatusAbsent},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, DetermineStatus(c.in, c.out))
		})
	}
}

func TestCalculateWorkingHours(t *testing.T) {
	cases := []struct {
		name string
		in   *time.Time
		out  *time.Time
		want string
	}{
		{"full shift", ts(9, 0), ts(17, 45), "8:45"},
		{"short shift", ts(8, 0), ts(8, 30), "0:30"},
		{"exact hours", ts(8, 0), ts(18, 0), "10:00"},
		{"missing out", ts(9, 0), nil, "0:00"},
		{"missing in", nil, ts(17, 0), "0:00"},
		{"out before in", ts(17, 0), ts(9, 0), "0:00"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, CalculateWorkingHours(c.in, c.out))
		})
	}
}

func TestAttendance_IsEmpty(t *testing.T) {
	var a Attendance
	assert.True(t, a.IsEmpty())

	a.SetPending(TypeIn, -6.2, 106.8, "somewhere", time.Now())
	assert.False(t, a.IsEmpty())

	a.ClearPending()
	assert.True(t, a.IsEmpty())

	a.InTime = ts(8, 0)
	assert.False(t, a.IsEmpty())
}

func TestAttendance_PendingSideChannel(t *testing.T) {
	var a Attendance
	when := time.Date(2025, 3, 10, 8, 5, 0, 0, time.UTC)

	a.SetPending(TypeOut, -6.2, 106.8, "Jl. Sudirman", when)

	assert.True(t, a.PendingApproval)
	assert.Equal(t, TypeOut, *a.PendingType)
	assert.Equal(t, -6.2, *a.PendingLatitude)
	assert.Equal(t, 106.8, *a.PendingLongitude)
	assert.Equal(t, "Jl. Sudirman", *a.PendingAddress)
	assert.Equal(t, when, *a.PendingTime)

	a.ClearPending()

	assert.False(t, a.PendingApproval)
	assert.Nil(t, a.PendingType)
	assert.Nil(t, a.PendingLatitude)
	assert.Nil(t, a.PendingLongitude)
	assert.Nil(t, a.PendingAddress)
	assert.Nil(t, a.PendingTime)
}

func TestAttendance_Recompute(t *testing.T) {
	a := Attendance{InTime: ts(8, 0), OutTime: ts(18, 30)}
	a.Recompute()
	assert.Equal(t, StatusFullDay, a.Status)
	assert.Equal(t, "10:30", a.WorkingHours)
}
