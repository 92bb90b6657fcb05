package search

import "github.com/phoenixvc/rooivalk-knowledge/core"

// SearchMonitor provides hooks to observe the search process.
// Implement this interface to track intermediate steps and results during search.
type SearchMonitor interface {
	Start(query string)
	WeightsChosen(weights Weights)
	AfterVectorSearch(results []*core.SearchResult)
	AfterKeywordSearch(results []*core.SearchResult)
	AfterFusion(results []*core.HybridResult)
	Finish(results []*core.HybridResult)
}

// noopMonitor is a no-op implementation of SearchMonitor
type noopMonitor struct{}

var _ SearchMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string)                           {}
func (n *noopMonitor) WeightsChosen(_ Weights)                  {}
func (n *noopMonitor) AfterVectorSearch(_ []*core.SearchResult) {}
func (n *noopMonitor) AfterKeywordSearch(_ []*core.SearchResult) {}
func (n *noopMonitor) AfterFusion(_ []*core.HybridResult)       {}
func (n *noopMonitor) Finish(_ []*core.HybridResult)            {}
