package scheduling

import "github.com/riddhimanrana/lets-assist-core/pkg/core/model"

// CapacityPolicy controls which signup statuses consume capacity. Approved
// signups always count; CountAttended additionally counts volunteers who have
// already checked in. The product default leaves CountAttended off, matching
// the behaviour of tallying approved signups only.
type CapacityPolicy struct {
	CountAttended bool
}

// Consumes reports whether a signup in the given status consumes capacity
// under this policy
func (p CapacityPolicy) Consumes(status model.SignupStatus) bool {
	if status == model.SignupApproved {
		return true
	}
	return p.CountAttended && status == model.SignupAttended
}

// SlotCapacity is the tallied occupancy of one bookable unit
type SlotCapacity struct {
	Capacity  int
	Confirmed int
	Remaining int
}

// AggregateCapacity tallies confirmed signups and remaining capacity per
// scheduleId. Every slot appears in the result, including slots with no
// signups. Remaining is clamped at zero so an overbooked slot never reports
// negative capacity.
//
// Signups whose scheduleId matches none of the given slots are returned as
// stale for the caller to log; they do not affect the tallies and are not an
// error here. The result depends only on the multiset of signups per
// scheduleId, not on input order.
//
// Duplicate scheduleIds in slots (possible only for malformed multi-area
// schedules with repeated role names) conflate under one key: the last
// descriptor's capacity wins and confirmed counts merge.
func AggregateCapacity(slots []SlotDescriptor, signups []model.Signup, policy CapacityPolicy) (map[string]SlotCapacity, []model.Signup) {
	confirmed := make(map[string]int, len(slots))
	known := make(map[string]bool, len(slots))
	for _, slot := range slots {
		known[slot.ScheduleID] = true
	}

	var stale []model.Signup
	for _, signup := range signups {
		if !known[signup.ScheduleID] {
			stale = append(stale, signup)
			continue
		}
		if policy.Consumes(signup.Status) {
			confirmed[signup.ScheduleID]++
		}
	}

	result := make(map[string]SlotCapacity, len(slots))
	for _, slot := range slots {
		count := confirmed[slot.ScheduleID]
		remaining := slot.Capacity - count
		if remaining < 0 {
			remaining = 0
		}
		result[slot.ScheduleID] = SlotCapacity{
			Capacity:  slot.Capacity,
			Confirmed: count,
			Remaining: remaining,
		}
	}

	return result, stale
}
