package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScheduleStatusTransitions(t *testing.T) {
	all := []ScheduleStatus{
		ScheduleStatusActive,
		ScheduleStatusPaused,
		ScheduleStatusCancelled,
		ScheduleStatusCompleted,
	}

	allowed := map[ScheduleStatus][]ScheduleStatus{
		ScheduleStatusActive: {ScheduleStatusPaused, ScheduleStatusCancelled, ScheduleStatusCompleted},
		ScheduleStatusPaused: {ScheduleStatusActive, ScheduleStatusCancelled, ScheduleStatusCompleted},
		// cancelled and completed are terminal
		ScheduleStatusCancelled: {},
		ScheduleStatusCompleted: {},
	}

	for _, from := range all {
		for _, to := range all {
			want := false
			for _, a := range allowed[from] {
				if a == to {
					want = true
				}
			}
			assert.Equal(t, want, from.CanTransitionTo(to), "%s -> %s", from, to)
		}
	}
}

func TestScheduleStatusOccupying(t *testing.T) {
	assert.True(t, ScheduleStatusActive.Occupying())
	assert.True(t, ScheduleStatusPaused.Occupying())
	assert.False(t, ScheduleStatusCancelled.Occupying())
	assert.False(t, ScheduleStatusCompleted.Occupying())
}

func TestRoleValid(t *testing.T) {
	for _, r := range []Role{RoleAdmin, RoleSales, RoleTrainer, RoleStudent} {
		assert.True(t, r.Valid())
	}
	assert.False(t, Role("superuser").Valid())
	assert.False(t, Role("").Valid())
}
