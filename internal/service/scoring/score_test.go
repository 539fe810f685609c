package scoring

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-EventScheduler/internal/domain"
)

var pht = time.FixedZone("PHT", 8*60*60)

func at(day, hour, minute int) time.Time {
	return time.Date(2024, time.September, day, hour, minute, 0, 0, pht)
}

func ptrTime(t time.Time) *time.Time { return &t }

func TestScore(t *testing.T) {
	event := &domain.EventRequest{
		ID:                 "e1",
		RequestedVenueID:   "v-req",
		RequestedStart:     at(10, 18, 0),
		RequestedEnd:       at(10, 19, 30),
		EstimatedAttendees: 30,
		Preferences: []domain.Preference{
			{PreferredVenueID: "v-pref", PreferredDate: ptrTime(at(12, 0, 0)), SlotStart: ptrTime(at(12, 9, 0)), SlotEnd: ptrTime(at(12, 11, 0))},
			{PreferredDate: ptrTime(at(13, 0, 0))},
		},
	}
	sc := Context{Location: pht}
	w := DefaultWeights()

	tests := []struct {
		name string
		p    Placement
		want Breakdown
	}{
		{
			name: "exactly as requested",
			p:    Placement{VenueID: "v-req", Start: at(10, 18, 0), End: at(10, 19, 30)},
			want: Breakdown{Base: 10, VenueMatch: 50, DateTimeMatch: 25},
		},
		{
			name: "requested day, other time",
			p:    Placement{VenueID: "v-req", Start: at(10, 8, 0), End: at(10, 9, 30)},
			want: Breakdown{Base: 10, VenueMatch: 50, DateTimeMatch: 10},
		},
		{
			name: "preferred venue and slot",
			p:    Placement{VenueID: "v-pref", Start: at(12, 10, 0), End: at(12, 11, 30)},
			want: Breakdown{Base: 10, VenueMatch: 40, DateTimeMatch: 20},
		},
		{
			name: "preferred date only",
			p:    Placement{VenueID: "v-other", Start: at(13, 10, 0), End: at(13, 11, 30)},
			want: Breakdown{Base: 10, DateTimeMatch: 8},
		},
		{
			name: "nothing matches",
			p:    Placement{VenueID: "v-other", Start: at(14, 10, 0), End: at(14, 11, 30)},
			want: Breakdown{Base: 10},
		},
		{
			name: "capacity exceeded",
			p:    Placement{VenueID: "v-other", Venue: &domain.Venue{ID: "v-other", Capacity: 20}, Start: at(14, 10, 0), End: at(14, 11, 0)},
			want: Breakdown{Base: 10, CapacityPenalty: -15},
		},
		{
			name: "unknown capacity is not penalized",
			p:    Placement{VenueID: "v-other", Venue: &domain.Venue{ID: "v-other"}, Start: at(14, 10, 0), End: at(14, 11, 0)},
			want: Breakdown{Base: 10},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Score(event, tt.p, sc, w)
			assert.InDelta(t, tt.want.Base, got.Base, 1e-9)
			assert.InDelta(t, tt.want.VenueMatch, got.VenueMatch, 1e-9)
			assert.InDelta(t, tt.want.DateTimeMatch, got.DateTimeMatch, 1e-9)
			assert.InDelta(t, tt.want.HecticBonus, got.HecticBonus, 1e-9)
			assert.InDelta(t, tt.want.CapacityPenalty, got.CapacityPenalty, 1e-9)
			assert.InDelta(t, tt.want.Total(), got.Total(), 1e-9)
		})
	}
}

func TestScore_HecticBonus(t *testing.T) {
	cal := &domain.Calendar{
		Location: pht,
		HecticPeriods: []domain.HecticPeriod{{
			Name:  "Midterms",
			Dates: []time.Time{time.Date(2024, time.October, 7, 0, 0, 0, 0, pht), time.Date(2024, time.October, 12, 0, 0, 0, 0, pht)},
		}},
	}
	event := &domain.EventRequest{RequestedStart: time.Date(2024, time.October, 8, 10, 0, 0, 0, pht)}
	p := Placement{VenueID: "v", Start: event.RequestedStart, End: event.RequestedStart.Add(time.Hour)}

	got := Score(event, p, Context{Calendar: cal, Location: pht, HecticWeek: true}, DefaultWeights())
	assert.Equal(t, 100.0, got.HecticBonus)

	got = Score(event, p, Context{Calendar: cal, Location: pht, HecticWeek: false}, DefaultWeights())
	assert.Zero(t, got.HecticBonus)
}

func TestFitness(t *testing.T) {
	assert.Equal(t, 85.0, Fitness(85, 0, DefaultWeights()))
	assert.Equal(t, 85.0-20000, Fitness(85, 2, DefaultWeights()))
}
