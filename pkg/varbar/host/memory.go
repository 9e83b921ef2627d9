package host

import (
	"sort"
	"sync"

	"github.com/ukaji3/varbar-go/pkg/varbar/models"
)

// Memory is an in-process Host. It records tooltip providers and click
// handlers per element and keeps the current selection. Safe for
// concurrent use.
type Memory struct {
	mu       sync.Mutex
	tooltips map[string]TooltipProvider
	clicks   map[string]func()
	selected []models.SelectionID
}

var _ Host = (*Memory)(nil)

// NewMemory returns an empty in-process host.
func NewMemory() *Memory {
	return &Memory{
		tooltips: make(map[string]TooltipProvider),
		clicks:   make(map[string]func()),
	}
}

func (m *Memory) TooltipService() TooltipService { return m }

func (m *Memory) Events() EventBinder { return m }

func (m *Memory) SelectionManager() SelectionManager { return m }

func (m *Memory) NewSelectionIDBuilder() SelectionIDBuilder { return NewSelectionIDBuilder() }

// Reset drops element bindings. The selection is kept, as the host owns it.
func (m *Memory) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tooltips = make(map[string]TooltipProvider)
	m.clicks = make(map[string]func())
}

// AddTooltip registers provider for elementID, replacing any earlier one.
func (m *Memory) AddTooltip(elementID string, provider TooltipProvider) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tooltips[elementID] = provider
}

// Tooltip evaluates the provider bound to elementID.
func (m *Memory) Tooltip(elementID string) ([]models.TooltipItem, bool) {
	m.mu.Lock()
	p, ok := m.tooltips[elementID]
	m.mu.Unlock()
	if !ok || p == nil {
		return nil, false
	}
	return p(), true
}

// OnClick binds handler to elementID.
func (m *Memory) OnClick(elementID string, handler func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clicks[elementID] = handler
}

// Click dispatches a click on elementID. It reports false when nothing is
// bound to the element.
func (m *Memory) Click(elementID string) bool {
	m.mu.Lock()
	h, ok := m.clicks[elementID]
	m.mu.Unlock()
	if !ok || h == nil {
		return false
	}
	h()
	return true
}

// Elements lists the ids with a click binding, sorted.
func (m *Memory) Elements() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	ids := make([]string, 0, len(m.clicks))
	for id := range m.clicks {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (m *Memory) Select(id models.SelectionID, multiSelect bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	idx := -1
	for i, s := range m.selected {
		if s.Key == id.Key {
			idx = i
			break
		}
	}

	if multiSelect {
		if idx >= 0 {
			m.selected = append(m.selected[:idx], m.selected[idx+1:]...)
		} else {
			m.selected = append(m.selected, id)
		}
		return nil
	}

	if idx >= 0 && len(m.selected) == 1 {
		m.selected = nil
		return nil
	}
	m.selected = []models.SelectionID{id}
	return nil
}

func (m *Memory) Selected() []models.SelectionID {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.SelectionID, len(m.selected))
	copy(out, m.selected)
	return out
}

func (m *Memory) ClearSelection() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.selected = nil
}
