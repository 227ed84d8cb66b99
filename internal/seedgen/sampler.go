package seedgen

import (
	"fmt"

	"github.com/hitoshi/frozenbet/internal/model"
)

// PickOne はitemsから一様に1要素を選ぶ。Nextをちょうど1回消費する。
// itemsが空の場合はErrInvalidArgumentを返し、乱数源は消費しない。
func PickOne[T any](src Source, items []T) (T, error) {
	var zero T
	if len(items) == 0 {
		return zero, fmt.Errorf("%w: pick from empty list", model.ErrInvalidArgument)
	}
	return items[int(src.Next()*float64(len(items)))], nil
}

// IntInRange は [min, max] の整数を一様に返す。Nextをちょうど1回消費する。
// max < min の場合はErrInvalidArgumentを返し、乱数源は消費しない。
func IntInRange(src Source, min, max int) (int, error) {
	if max < min {
		return 0, fmt.Errorf("%w: range max %d is less than min %d", model.ErrInvalidArgument, max, min)
	}
	return min + int(src.Next()*float64(max-min+1)), nil
}

// intIn はRangeに対するIntInRangeの短縮形。
func intIn(src Source, r Range) (int, error) {
	return IntInRange(src, r.Min, r.Max)
}
