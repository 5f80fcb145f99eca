// internal/views/tabs.go
package views

import "fmt"

// Detail page tabs.
const (
	TabInfo   = "info"
	TabReview = "review"
	TabQnA    = "qna"
	TabReturn = "return"
)

var detailTabs = []string{TabInfo, TabReview, TabQnA, TabReturn}

// TabGroup keeps exactly one tab of a fixed set active.
type TabGroup struct {
	names  []string
	active int
}

func NewTabGroup(names ...string) *TabGroup {
	return &TabGroup{names: names}
}

func (g *TabGroup) Select(name string) error {
	for i, n := range g.names {
		if n == name {
			g.active = i
			return nil
		}
	}
	return fmt.Errorf("unknown tab %q", name)
}

func (g *TabGroup) Active() string {
	return g.names[g.active]
}

type TabState struct {
	Name         string `json:"name"`
	PanelID      string `json:"panel_id"`
	ButtonActive bool   `json:"button_active"`
	PanelActive  bool   `json:"panel_active"`
}

func (g *TabGroup) Snapshot() []TabState {
	out := make([]TabState, len(g.names))
	for i, n := range g.names {
		out[i] = TabState{
			Name:         n,
			PanelID:      n + "-panel",
			ButtonActive: i == g.active,
			PanelActive:  i == g.active,
		}
	}
	return out
}
