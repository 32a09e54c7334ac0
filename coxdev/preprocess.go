package coxdev

import "math"

// Context is the immutable, preprocessed handle returned by NewContext. It
// carries the joint order permutations and tie tables that let Evaluate and
// Information run in O(n) per call after the one-time O(n log n) sort.
//
// A Context is safe for concurrent read-only use; the single memoisation
// slot it holds (cache.go) is mutex-guarded.
type Context struct {
	n          int
	haveStart  bool
	efron      bool
	tieBreak   TieBreaking
	statusNat  []int     // status, native order
	eventOrder []int     // eventOrder[k] = native index of the k-th subject in event order
	startOrder []int     // startOrder[k] = native index of the k-th subject in start order
	first      []int     // event order
	last       []int     // event order
	scaling    []float64 // event order
	eventMap   []int     // event order
	startMap   []int     // event order
	firstStart []int     // event order

	cache memoSlot
}

// NewContext validates (start, event, status) and builds the tie tables
// described by the order and preprocessing components. haveStart selects
// whether start carries real left-truncation times (false means every
// subject is treated as entering at -Inf, i.e. no truncation).
//
// NewContext returns ErrInputShape for length mismatches or a non-finite
// event time, ErrInputDomain for status values outside {0,1}, start >=
// event, or an unrecognised tieBreak, and ErrPreprocessInvariant if the
// derived tables fail their internal consistency check (first_start ==
// start_map for every row); the latter should never trigger for validated
// input and indicates a defect in this package rather than in the
// caller's data.
func NewContext(start, event []float64, status []int, haveStart bool, tieBreak TieBreaking) (*Context, error) {
	n := len(event)
	if n == 0 {
		return nil, wrapf(ErrInputShape, "NewContext: event must be non-empty")
	}
	if len(start) != n || len(status) != n {
		return nil, wrapf(ErrInputShape, "NewContext: start/event/status length mismatch (%d/%d/%d)", len(start), n, len(status))
	}
	switch tieBreak {
	case Breslow, Efron:
	default:
		return nil, wrapf(ErrInputDomain, "NewContext: tie_breaking %v unrecognised", tieBreak)
	}

	for i := 0; i < n; i++ {
		if math.IsNaN(event[i]) || math.IsInf(event[i], 0) {
			return nil, wrapf(ErrInputShape, "NewContext: event[%d]=%v must be finite", i, event[i])
		}
		if status[i] != 0 && status[i] != 1 {
			return nil, wrapf(ErrInputDomain, "NewContext: status[%d]=%d not in {0,1}", i, status[i])
		}
		if haveStart && !(start[i] < event[i]) {
			return nil, wrapf(ErrInputDomain, "NewContext: start[%d]=%v must be < event[%d]=%v", i, start[i], i, event[i])
		}
	}

	sorted := sortJoint(start, event, status, haveStart)
	eventOrder, startOrder, first, eventMap, startMapRaw := walkTieTables(sorted, n)

	// startMapRaw is indexed by position-in-start-order; scatter it back to
	// native subject index, then gather into event order.
	startMapBySubject := make([]int, n)
	for j, nativeIdx := range startOrder {
		startMapBySubject[nativeIdx] = startMapRaw[j]
	}
	startMap := make([]int, n)
	for k, nativeIdx := range eventOrder {
		startMap[k] = startMapBySubject[nativeIdx]
	}

	last := buildLast(first, n)
	scaling := buildScaling(first, last, n)

	firstStart := make([]int, n)
	for k := 0; k < n; k++ {
		firstStart[k] = first[startMap[k]]
		if firstStart[k] != startMap[k] {
			return nil, wrapf(ErrPreprocessInvariant, "NewContext: first_start[%d]=%d != start_map[%d]=%d", k, firstStart[k], k, startMap[k])
		}
	}

	statusNat := make([]int, n)
	copy(statusNat, status)

	efron := tieBreak == Efron
	if efron {
		efron = false
		for _, s := range scaling {
			if s != 0 {
				efron = true
				break
			}
		}
	}

	return &Context{
		n:          n,
		haveStart:  haveStart,
		efron:      efron,
		tieBreak:   tieBreak,
		statusNat:  statusNat,
		eventOrder: eventOrder,
		startOrder: startOrder,
		first:      first,
		last:       last,
		scaling:    scaling,
		eventMap:   eventMap,
		startMap:   startMap,
		firstStart: firstStart,
	}, nil
}

// walkTieTables makes a single forward pass over the jointly sorted stream,
// emitting the event/start order permutations together with the first and
// (raw, start-order-indexed) start_map and (event-order-indexed) event_map
// tables. See order.go for why a missing start time is represented as -Inf
// rather than as a special case here: it guarantees the very first failure
// this walk sees always closes a fresh tie group.
func walkTieTables(sorted []streamRecord, n int) (eventOrder, startOrder, first, eventMap, startMapRaw []int) {
	eventOrder = make([]int, 0, n)
	startOrder = make([]int, 0, n)
	first = make([]int, 0, n)
	eventMap = make([]int, 0, n)
	startMapRaw = make([]int, 0, n)

	eventCount := 0
	startCount := 0
	firstEvent := -1
	numSuccessiveEvent := 1
	haveLastRow := false
	var lastRowTime float64

	for _, rec := range sorted {
		if rec.isStart == 1 {
			startOrder = append(startOrder, rec.index)
			startMapRaw = append(startMapRaw, eventCount)
			startCount++
		} else {
			isFailure := /* status == 1 iff statusClass == 0 for a stop row */ rec.statusClass == 0
			if isFailure {
				if haveLastRow && rec.time != lastRowTime {
					firstEvent += numSuccessiveEvent
					numSuccessiveEvent = 1
				} else {
					numSuccessiveEvent++
				}
			} else {
				firstEvent += numSuccessiveEvent
				numSuccessiveEvent = 1
			}
			first = append(first, firstEvent)
			eventMap = append(eventMap, startCount)
			eventOrder = append(eventOrder, rec.index)
			eventCount++
		}
		lastRowTime = rec.time
		haveLastRow = true
	}

	return eventOrder, startOrder, first, eventMap, startMapRaw
}

// buildLast derives, for every event-order row k, the last row of k's tie
// group by scanning first from the back: last[k] holds the current tie
// group's terminal index until first[k]==k is seen, at which point the
// group closes and the next (earlier) group's terminal index becomes
// first[k]-1.
func buildLast(first []int, n int) []int {
	last := make([]int, n)
	lastEvent := n - 1
	for k := n - 1; k >= 0; k-- {
		last[k] = lastEvent
		if first[k] == k {
			lastEvent = first[k] - 1
		}
	}

	return last
}

// buildScaling computes the Efron within-tie-group position fraction for
// every row: 0 for a singleton tie group (and for every censored row, whose
// first value never anchors a group), rising linearly from 0 at the group's
// first row toward (size-1)/size at its last.
func buildScaling(first, last []int, n int) []float64 {
	scaling := make([]float64, n)
	for k := 0; k < n; k++ {
		denom := float64(last[k] + 1 - first[k])
		scaling[k] = float64(k-first[k]) / denom
	}

	return scaling
}
