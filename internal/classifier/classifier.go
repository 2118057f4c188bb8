package classifier

import (
	"math"
	"time"

	"dayplanner/internal/clock"
	"dayplanner/internal/model"
)

// DeadlineLayout is the wire form of deadlines on directly created tasks.
const DeadlineLayout = "2006-01-02T15:04"

type example struct {
	deadlineHours float64
	estimatedTime float64
	importance    float64
	priority      model.Priority
}

// Classifier predicts task priority from deadline proximity, estimated effort
// and importance. It is trained at construction on a small fixed dataset;
// prediction is a nearest-neighbor lookup over those rows, so the output is
// deterministic for a given input.
type Classifier struct {
	examples []example
	clock    clock.Clock
}

func New(clk clock.Clock) *Classifier {
	return &Classifier{
		clock: clk,
		examples: []example{
			{deadlineHours: 2, estimatedTime: 1, importance: 5, priority: model.PriorityHigh},
			{deadlineHours: 5, estimatedTime: 2, importance: 4, priority: model.PriorityHigh},
			{deadlineHours: 24, estimatedTime: 3, importance: 2, priority: model.PriorityMedium},
			{deadlineHours: 12, estimatedTime: 4, importance: 1, priority: model.PriorityLow},
			{deadlineHours: 48, estimatedTime: 1, importance: 3, priority: model.PriorityMedium},
		},
	}
}

// PredictAt classifies a task with a resolved deadline. Zero-valued effort and
// importance fall back to their defaults (1 hour, neutral 3).
func (c *Classifier) PredictAt(deadline time.Time, estimatedTime float64, importanceLevel int) model.Priority {
	if estimatedTime == 0 {
		estimatedTime = model.DefaultEstimatedTime
	}
	if importanceLevel == 0 {
		importanceLevel = model.DefaultImportanceLevel
	}

	deltaHours := deadline.Sub(c.clock.Now()).Hours()
	return c.nearest(deltaHours, estimatedTime, float64(importanceLevel))
}

// Predict classifies from the wire form of a deadline. An unparseable
// deadline degrades to Low rather than surfacing an error.
func (c *Classifier) Predict(deadline string, estimatedTime float64, importanceLevel int) model.Priority {
	t, err := time.Parse(DeadlineLayout, deadline)
	if err != nil {
		return model.PriorityLow
	}
	return c.PredictAt(t, estimatedTime, importanceLevel)
}

func (c *Classifier) nearest(deltaHours, estimatedTime, importance float64) model.Priority {
	best := 0
	bestDist := math.Inf(1)
	for i, ex := range c.examples {
		d := sq(deltaHours-ex.deadlineHours) + sq(estimatedTime-ex.estimatedTime) + sq(importance-ex.importance)
		if d < bestDist {
			bestDist = d
			best = i
		}
	}
	return c.examples[best].priority
}

func sq(x float64) float64 { return x * x }
