// Package level converts a persona's lifetime XP total into level,
// remainder XP and the threshold for the next level. Everything here
// is pure; callers own and persist the returned state.
package level

import "fmt"

const (
	// BaseThreshold is the XP required to finish level 1.
	BaseThreshold = 100

	// GrowthFactor compounds the threshold at each level transition.
	// The multiplication truncates: 100, 120, 144, 172, 206, ...
	// Existing save files depend on this exact sequence.
	GrowthFactor = 1.2
)

// State is the full persisted progression state of a persona.
type State struct {
	TotalXP     int
	Level       int
	RemainderXP int
	Threshold   int
}

// Result is the derived portion of progression state for a given XP
// total, plus whether the level changed versus the caller's prior one.
type Result struct {
	Level       int
	RemainderXP int
	Threshold   int
	LeveledUp   bool
	LeveledDown bool
}

// ApplyResult is a Result together with the (clamped) new XP total.
type ApplyResult struct {
	TotalXP int
	Result
}

// ComputeLevel derives level, remainder and threshold from totalXP.
// priorLevel is the level the caller last knew about; LeveledUp and
// LeveledDown report whether the derived level moved past it.
// A negative totalXP is a programming error: callers clamp via AddXP
// or SetXP before ever reaching this function.
func ComputeLevel(totalXP, priorLevel int) Result {
	if totalXP < 0 {
		panic(fmt.Sprintf("level: negative XP total %d", totalXP))
	}
	if priorLevel < 1 {
		priorLevel = 1
	}

	lvl := 1
	threshold := BaseThreshold
	remaining := totalXP
	for remaining >= threshold {
		remaining -= threshold
		threshold = int(float64(threshold) * GrowthFactor)
		lvl++
	}

	return Result{
		Level:       lvl,
		RemainderXP: remaining,
		Threshold:   threshold,
		LeveledUp:   lvl > priorLevel,
		LeveledDown: lvl < priorLevel,
	}
}

// AddXP applies a delta to the current total, clamping the result to
// zero. Negative totals have no meaning in this domain.
func AddXP(currentTotal, delta, priorLevel int) ApplyResult {
	total := currentTotal + delta
	if total < 0 {
		total = 0
	}
	return ApplyResult{TotalXP: total, Result: ComputeLevel(total, priorLevel)}
}

// SetXP replaces the total outright, clamped to zero.
func SetXP(newTotal, priorLevel int) ApplyResult {
	return AddXP(0, newTotal, priorLevel)
}

// Reset returns the starting state of a fresh persona.
func Reset() State {
	return State{TotalXP: 0, Level: 1, RemainderXP: 0, Threshold: BaseThreshold}
}

// ProgressPercent reports progress through the current level in
// [0, 100]. It does not clamp beyond what the remainder invariant
// already guarantees.
func ProgressPercent(remainderXP, threshold int) float64 {
	if threshold <= 0 {
		return 0
	}
	return float64(remainderXP) / float64(threshold) * 100
}
