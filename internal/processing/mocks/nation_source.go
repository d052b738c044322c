package mocks

import (
	"context"
	"sync"

	"pnw_targets/internal/app"
)

// MockNationSource is a test double for the pnw.Client
type MockNationSource struct {
	// Responses to return
	NationByIDResponse *app.Nation
	Pages              map[int]*app.NationsPage

	// Errors to return
	NationByIDError error
	PageErrors      map[int]error

	// Call tracking
	mu                  sync.Mutex
	FetchNationByIDIDs  []int
	FetchNationsPageIDs []int
}

// NewMockNationSource creates a mock returning me for any id lookup and the
// given pages in order, starting at page 1. Every page but the last reports
// more pages.
func NewMockNationSource(me *app.Nation, pages ...[]app.Nation) *MockNationSource {
	m := &MockNationSource{
		NationByIDResponse: me,
		Pages:              make(map[int]*app.NationsPage),
		PageErrors:         make(map[int]error),
	}
	for i, nations := range pages {
		m.Pages[i+1] = &app.NationsPage{
			Nations:      nations,
			HasMorePages: i < len(pages)-1,
			CurrentPage:  i + 1,
		}
	}
	return m
}

func (m *MockNationSource) FetchNationByID(ctx context.Context, nationID int) (*app.Nation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FetchNationByIDIDs = append(m.FetchNationByIDIDs, nationID)
	if m.NationByIDError != nil {
		return nil, m.NationByIDError
	}
	return m.NationByIDResponse, nil
}

func (m *MockNationSource) FetchNationsPage(ctx context.Context, page int) (*app.NationsPage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FetchNationsPageIDs = append(m.FetchNationsPageIDs, page)
	if err := m.PageErrors[page]; err != nil {
		return nil, err
	}
	if p, ok := m.Pages[page]; ok {
		return p, nil
	}
	return &app.NationsPage{Nations: []app.Nation{}, CurrentPage: page}, nil
}

// CallCount returns the total number of upstream calls made
func (m *MockNationSource) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.FetchNationByIDIDs) + len(m.FetchNationsPageIDs)
}
