package selection

import (
	"math/rand/v2"

	"github.com/SAP-F-2025/quiz-scoring-service/internal/models"
)

// Selection is a random subset of a question bank. Questions are keyed by
// their original index; Order lists the same indices in display order.
type Selection struct {
	Questions map[int]models.Question
	Order     []int
}

// Len returns the number of selected questions.
func (s Selection) Len() int {
	return len(s.Order)
}

// Indexed returns the selected questions in display order.
func (s Selection) Indexed() []models.IndexedQuestion {
	out := make([]models.IndexedQuestion, 0, len(s.Order))
	for _, idx := range s.Order {
		out = append(out, models.IndexedQuestion{Index: idx, Question: s.Questions[idx]})
	}
	return out
}

// Selector draws random question subsets.
type Selector struct {
	rand *rand.Rand
}

// NewSelector creates a selector backed by the runtime's global random
// source, which is safe for concurrent use.
func NewSelector() *Selector {
	return &Selector{}
}

// NewSeededSelector creates a selector with its own source. The returned
// selector must not be shared between goroutines.
func NewSeededSelector(seed1, seed2 uint64) *Selector {
	return &Selector{rand: rand.New(rand.NewPCG(seed1, seed2))}
}

// SelectFromBank selects from a whole bank, using slice positions as original indices.
func (s *Selector) SelectFromBank(bank []models.Question, count int) Selection {
	return s.Select(models.Indexed(bank), count)
}

// Select shuffles the candidates and keeps the first min(count, len) of them.
// A count of zero or less keeps every candidate.
func (s *Selector) Select(candidates []models.IndexedQuestion, count int) Selection {
	pool := make([]models.IndexedQuestion, len(candidates))
	copy(pool, candidates)

	s.shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})

	if count > 0 && count < len(pool) {
		pool = pool[:count]
	}

	selection := Selection{
		Questions: make(map[int]models.Question, len(pool)),
		Order:     make([]int, 0, len(pool)),
	}
	for _, iq := range pool {
		selection.Questions[iq.Index] = iq.Question
		selection.Order = append(selection.Order, iq.Index)
	}
	return selection
}

func (s *Selector) shuffle(n int, swap func(i, j int)) {
	if s.rand != nil {
		s.rand.Shuffle(n, swap)
		return
	}
	rand.Shuffle(n, swap)
}
