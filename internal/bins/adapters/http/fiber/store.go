package fiber

import (
	"context"
	"sync"

	"photon-bins/internal/bins/core/domain"
)

// PlotStore keeps the plots of a batch in memory for the viewer. It is the
// batch sink when no output file is configured.
type PlotStore struct {
	mu     sync.RWMutex
	plots  map[string]*domain.Plot
	order  []string
	inputs map[string]string
}

func NewPlotStore() *PlotStore {
	return &PlotStore{
		plots:  make(map[string]*domain.Plot),
		inputs: make(map[string]string),
	}
}

// Deliver stores p and returns its viewer path.
func (s *PlotStore) Deliver(ctx context.Context, input string, p *domain.Plot) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.plots[p.ID]; !exists {
		s.order = append(s.order, p.ID)
	}
	s.plots[p.ID] = p
	s.inputs[p.ID] = input
	return "/plots/" + p.ID, nil
}

func (s *PlotStore) Get(id string) (*domain.Plot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.plots[id]
	return p, ok
}

// StoredPlot is a plot with the batch input it came from.
type StoredPlot struct {
	Input string
	Plot  *domain.Plot
}

// List returns the stored plots in delivery order.
func (s *PlotStore) List() []StoredPlot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]StoredPlot, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, StoredPlot{Input: s.inputs[id], Plot: s.plots[id]})
	}
	return out
}

func (s *PlotStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}
