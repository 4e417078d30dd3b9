package topic_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/learnsmart-app/learnsmart-api/internal/topic"
)

func TestRecomputeAccuracy(t *testing.T) {
	t.Run("NoAnswersLeavesValueUnset", func(t *testing.T) {
		_, ok := topic.RecomputeAccuracy(0, 0)
		assert.False(t, ok)
	})

	t.Run("AllCorrect", func(t *testing.T) {
		accuracy, ok := topic.RecomputeAccuracy(4, 0)
		assert.True(t, ok)
		assert.Equal(t, 100.0, accuracy)
	})

	t.Run("AllWrong", func(t *testing.T) {
		accuracy, ok := topic.RecomputeAccuracy(0, 3)
		assert.True(t, ok)
		assert.Equal(t, 0.0, accuracy)
	})

	t.Run("RoundsToTwoDecimals", func(t *testing.T) {
		// 1/3 -> 33.333... -> 33.33
		accuracy, ok := topic.RecomputeAccuracy(1, 2)
		assert.True(t, ok)
		assert.Equal(t, 33.33, accuracy)

		// 2/3 -> 66.666... -> 66.67
		accuracy, ok = topic.RecomputeAccuracy(2, 1)
		assert.True(t, ok)
		assert.Equal(t, 66.67, accuracy)
	})

	t.Run("WorkedExampleFromGrading", func(t *testing.T) {
		// correct=3, wrong=1 then one more wrong event -> 3/5 of... 3/(3+2) = 60%.
		accuracy, ok := topic.RecomputeAccuracy(3, 2)
		assert.True(t, ok)
		assert.Equal(t, 60.0, accuracy)
	})
}

// The accuracy is a pure function of the two running counters, so the order
// in which grading events arrive must not matter.
func TestRecomputeAccuracyOrderIndependent(t *testing.T) {
	events := make([]bool, 0, 40)
	for i := 0; i < 25; i++ {
		events = append(events, true)
	}
	for i := 0; i < 15; i++ {
		events = append(events, false)
	}

	apply := func(order []bool) float64 {
		correct, wrong := 0, 0
		var last float64
		for _, isCorrect := range order {
			if isCorrect {
				correct++
			} else {
				wrong++
			}
			if acc, ok := topic.RecomputeAccuracy(correct, wrong); ok {
				last = acc
			}
		}
		return last
	}

	expected := apply(events)

	rng := rand.New(rand.NewSource(42))
	for trial := 0; trial < 10; trial++ {
		shuffled := make([]bool, len(events))
		copy(shuffled, events)
		rng.Shuffle(len(shuffled), func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})
		assert.Equal(t, expected, apply(shuffled))
	}
}
