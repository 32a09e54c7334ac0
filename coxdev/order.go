package coxdev

import (
	"math"
	"sort"
)

// streamRecord is one row of the joint start/stop stream that the sort in
// sortJoint produces. kind distinguishes a start-of-follow-up row from a
// stop-of-follow-up row; statusClass carries the secondary sort key derived
// from status (0 = failure, 1 = censor-or-start), so that at equal times
// failures commit before censorings, and both commit before new entries.
type streamRecord struct {
	time        float64
	statusClass int // 0 = failure row, 1 = censor row or start row
	isStart     int // 0 = stop row, 1 = start row
	index       int // native subject index
}

// sortJoint builds the 2n-row stream of start and stop events and returns it
// sorted by (time, statusClass, isStart) ascending. When haveStart is false
// every subject's start time is treated as -Inf, which folds the "no left
// truncation" case into the same walk without a separate code path: every
// start row then sorts before any finite-time stop row, and the first
// failure a caller sees always looks like a fresh entry.
//
// Pure function: never fails on any (start, event, status) triple that has
// already passed shape/domain validation.
func sortJoint(start, event []float64, status []int, haveStart bool) []streamRecord {
	n := len(event)
	records := make([]streamRecord, 0, 2*n)
	for i := 0; i < n; i++ {
		st := start[i]
		if !haveStart {
			st = math.Inf(-1)
		}
		records = append(records, streamRecord{time: st, statusClass: 1, isStart: 1, index: i})
	}
	for i := 0; i < n; i++ {
		sc := 1 - status[i] // failure (status=1) -> class 0, censor (status=0) -> class 1
		records = append(records, streamRecord{time: event[i], statusClass: sc, isStart: 0, index: i})
	}

	sort.SliceStable(records, func(a, b int) bool {
		ra, rb := records[a], records[b]
		if ra.time != rb.time {
			return ra.time < rb.time
		}
		if ra.statusClass != rb.statusClass {
			return ra.statusClass < rb.statusClass
		}
		return ra.isStart < rb.isStart
	})

	return records
}
