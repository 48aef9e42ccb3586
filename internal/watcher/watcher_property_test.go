//go:build property
// +build property

package watcher

import (
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// flushAll feeds events through a debouncer and returns the single batch.
func flushAll(events []ChangeEvent) []ChangeEvent {
	d := newDebouncer(time.Hour)
	for _, e := range events {
		d.addEvent(e)
	}
	d.stop()
	d.flush()

	select {
	case batch := <-d.output:
		return batch
	default:
		return nil
	}
}

// eventsFrom maps ints onto events over four paths. Size records the
// position so the latest event per path can be identified.
func eventsFrom(keys []int) []ChangeEvent {
	events := make([]ChangeEvent, len(keys))
	for i, k := range keys {
		events[i] = ChangeEvent{
			Type: EventType(k % 4),
			Path: fmt.Sprintf("styles/p%d.css", k%4),
			Size: int64(i),
		}
	}
	return events
}

func TestDebouncerProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)
	keys := gen.SliceOf(gen.IntRange(0, 15))

	// Property: a batch holds each path once, sorted by path
	properties.Property("unique sorted paths", prop.ForAll(
		func(k []int) bool {
			batch := flushAll(eventsFrom(k))
			seen := make(map[string]bool)
			for _, e := range batch {
				if seen[e.Path] {
					return false
				}
				seen[e.Path] = true
			}
			return sort.SliceIsSorted(batch, func(i, j int) bool { return batch[i].Path < batch[j].Path })
		},
		keys,
	))

	// Property: the event kept for a path is the last one added
	properties.Property("latest event wins", prop.ForAll(
		func(k []int) bool {
			events := eventsFrom(k)
			want := make(map[string]int64)
			for _, e := range events {
				want[e.Path] = e.Size
			}

			batch := flushAll(events)
			if len(batch) != len(want) {
				return false
			}
			for _, e := range batch {
				if want[e.Path] != e.Size {
					return false
				}
			}
			return true
		},
		keys,
	))

	// Property: nothing in, nothing out
	properties.Property("empty input sends no batch", prop.ForAll(
		func(k []int) bool {
			batch := flushAll(eventsFrom(k))
			return (len(k) == 0) == (batch == nil)
		},
		keys,
	))

	properties.TestingRun(t)
}
