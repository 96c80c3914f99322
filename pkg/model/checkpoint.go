// Package model contains the general data models and interfaces for the heartbeat.
package model // import "github.com/juicetools/juicebox-heartbeat/pkg/model"

// Checkpoints maps each event category to the epoch secs of the most
// recently announced event in that category. It is the sole deduplication
// mechanism across runs.
type Checkpoints map[EventCategory]int64

// NewCheckpoints returns Checkpoints with every category set to the
// given timestamp
func NewCheckpoints(ts int64) Checkpoints {
	cps := Checkpoints{}
	for _, category := range Categories() {
		cps[category] = ts
	}
	return cps
}

// Advance folds ts into the category checkpoint, never moving it backward
func (c Checkpoints) Advance(category EventCategory, ts int64) {
	if ts > c[category] {
		c[category] = ts
	}
}

// Merge folds every category of other into c, never moving any
// checkpoint backward
func (c Checkpoints) Merge(other Checkpoints) {
	for category, ts := range other {
		c.Advance(category, ts)
	}
}

// Copy returns an independent copy of the checkpoints
func (c Checkpoints) Copy() Checkpoints {
	cps := Checkpoints{}
	for category, ts := range c {
		cps[category] = ts
	}
	return cps
}
