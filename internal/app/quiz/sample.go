package quiz

import (
	"math/rand"

	"github.com/dalemusser/eduhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PickRandomIDs returns count ids sampled without replacement from ids.
// The input is never mutated. When count >= len(ids) the result is a full
// shuffled permutation. Sampling uses fresh process randomness per call and
// is deliberately not reproducible.
func PickRandomIDs(ids []primitive.ObjectID, count int) []primitive.ObjectID {
	shuffled := make([]primitive.ObjectID, len(ids))
	copy(shuffled, ids)
	fisherYates(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	if count < len(shuffled) {
		shuffled = shuffled[:count]
	}
	return shuffled
}

func shuffleChoices(choices []models.Choice) {
	fisherYates(len(choices), func(i, j int) {
		choices[i], choices[j] = choices[j], choices[i]
	})
}

// fisherYates performs an unbiased in-place shuffle: for i from the last
// index down to 1, swap element i with a uniformly random element at an
// index <= i.
func fisherYates(n int, swap func(i, j int)) {
	for i := n - 1; i > 0; i-- {
		swap(i, rand.Intn(i+1))
	}
}
