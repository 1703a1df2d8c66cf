package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxtixador/scrapernhl/pkg/models"
)

func TestResolvePeriodsOvertimeLabels(t *testing.T) {
	events := []models.Event{
		{GameID: 1, PeriodLabel: models.String("3")},
		{GameID: 1, PeriodLabel: models.String("1st OT")},
		{GameID: 1, PeriodLabel: models.String("2nd OT")},
	}

	hasOT := ResolvePeriods(events)

	assert.True(t, hasOT)
	require.NotNil(t, events[0].Period)
	assert.Equal(t, 3, *events[0].Period)
	require.NotNil(t, events[1].Period)
	assert.Equal(t, 4, *events[1].Period)
	require.NotNil(t, events[2].Period)
	assert.Equal(t, 5, *events[2].Period)
}

func TestResolvePeriodsFallsBackToPeriodID(t *testing.T) {
	events := []models.Event{
		{GameID: 1, PeriodLabel: models.String("overtime?"), PeriodID: models.Int(2)},
		{GameID: 1},
	}

	hasOT := ResolvePeriods(events)

	assert.False(t, hasOT)
	require.NotNil(t, events[0].Period)
	assert.Equal(t, 2, *events[0].Period)
	assert.Nil(t, events[1].Period)
}

func TestResolvePeriodsKeepsPreassignedPeriod(t *testing.T) {
	events := []models.Event{
		{GameID: 1, Period: models.Int(2), PeriodLabel: models.String("1st OT")},
	}

	ResolvePeriods(events)

	assert.Equal(t, 2, *events[0].Period)
}

func TestFillPeriodsForwardThenBackward(t *testing.T) {
	events := []models.Event{
		{GameID: 7},
		{GameID: 7, Period: models.Int(1)},
		{GameID: 7},
		{GameID: 7, Period: models.Int(2)},
		{GameID: 7},
	}

	FillPeriods(events, false)

	want := []int{1, 1, 1, 2, 2}
	for i, w := range want {
		require.NotNil(t, events[i].Period, "event %d", i)
		assert.Equal(t, w, *events[i].Period, "event %d", i)
	}
}

func TestFillPeriodsSkipsShootoutRows(t *testing.T) {
	events := []models.Event{
		{GameID: 7, Period: models.Int(3)},
		{GameID: 7, Shootout: true},
		{GameID: 7, Period: models.Int(3)},
	}

	FillPeriods(events, false)

	assert.Nil(t, events[1].Period)
}

func TestFillPeriodsIsPerGame(t *testing.T) {
	events := []models.Event{
		{GameID: 1, Period: models.Int(3)},
		{GameID: 2},
	}

	FillPeriods(events, false)

	assert.Nil(t, events[1].Period)
}

func TestComputeElapsed(t *testing.T) {
	tests := []struct {
		name   string
		period int
		s      int
		want   int
	}{
		{"first period", 1, 754, 754},
		{"second period", 2, 30, 1230},
		{"third period", 3, 0, 2400},
		{"first overtime", 4, 100, 3700},
		{"deep overtime clips offset", 9, 100, 4900},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events := []models.Event{
				{GameID: 1, Period: models.Int(tt.period), SecondsInPeriod: models.Int(tt.s)},
			}
			ComputeElapsed(events)
			require.NotNil(t, events[0].ElapsedSeconds)
			assert.Equal(t, tt.want, *events[0].ElapsedSeconds)
		})
	}
}

func TestComputeElapsedLeavesExistingAndNil(t *testing.T) {
	events := []models.Event{
		{GameID: 1, ElapsedSeconds: models.Int(42), SecondsInPeriod: models.Int(0), Period: models.Int(3)},
		{GameID: 1, SecondsInPeriod: models.Int(10)},
	}

	ComputeElapsed(events)

	assert.Equal(t, 42, *events[0].ElapsedSeconds)
	assert.Nil(t, events[1].ElapsedSeconds)
}

func TestSortCanonicalOrdersByGameTimeAndIndex(t *testing.T) {
	events := []models.Event{
		{GameID: 2, ElapsedSeconds: models.Int(10), OrderIdx: 0},
		{GameID: 1, ElapsedSeconds: models.Int(50), OrderIdx: 1},
		{GameID: 1, ElapsedSeconds: models.Int(10), OrderIdx: 3},
		{GameID: 1, ElapsedSeconds: models.Int(10), OrderIdx: 2},
		{GameID: 1, OrderIdx: 0},
	}

	SortCanonical(events)

	assert.Equal(t, int64(1), events[0].GameID)
	assert.Equal(t, 2, events[0].OrderIdx)
	assert.Equal(t, 3, events[1].OrderIdx)
	assert.Equal(t, 1, events[2].OrderIdx)
	// nil elapsed orders last within its game
	assert.Nil(t, events[3].ElapsedSeconds)
	assert.Equal(t, int64(2), events[4].GameID)
}

func TestParseClock(t *testing.T) {
	require.NotNil(t, ParseClock("12:34"))
	assert.Equal(t, 754, *ParseClock("12:34"))
	assert.Equal(t, 0, *ParseClock("0:00"))
	assert.Nil(t, ParseClock("nonsense"))
	assert.Nil(t, ParseClock("12"))
	assert.Nil(t, ParseClock(""))
}
