package services

import "park-course-service/internal/domain"

// History is a LIFO stack of plans displaced by newer ones.
// It is not safe for concurrent use; Session guards it.
type History struct {
	plans []*domain.Plan
}

func NewHistory() *History { return &History{} }

func (h *History) Push(p *domain.Plan) {
	h.plans = append(h.plans, p)
}

// Pop removes and returns the most recently displaced plan.
func (h *History) Pop() (*domain.Plan, bool) {
	if len(h.plans) == 0 {
		return nil, false
	}
	last := h.plans[len(h.plans)-1]
	h.plans[len(h.plans)-1] = nil
	h.plans = h.plans[:len(h.plans)-1]
	return last, true
}

func (h *History) Clear() { h.plans = nil }

func (h *History) Depth() int { return len(h.plans) }
