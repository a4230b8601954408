package models

import (
	"math/rand/v2"
	"sort"
)

// Redirect behaviors. Any other non-empty value is the ID of a pinned link.
const (
	BehaviorFreshest = "freshest"
	BehaviorTop      = "top"
	BehaviorRandom   = "random"
	BehaviorList     = "list"
)

// IsNamedBehavior reports whether b is one of the named redirect behaviors.
func IsNamedBehavior(b string) bool {
	switch b {
	case BehaviorFreshest, BehaviorTop, BehaviorRandom, BehaviorList:
		return true
	}
	return false
}

// KeywordList is a keyword and the links registered under it. The JSON shape
// is what /api/keywords serves for each keyword.
type KeywordList struct {
	Keyword  string          `json:"Keyword"`
	Links    map[string]Link `json:"Links"`
	Clicks   int64           `json:"Clicks"`
	Behavior string          `json:"Behavior"` // empty means freshest
}

// NewKeywordList returns an empty list for keyword.
func NewKeywordList(keyword string) *KeywordList {
	return &KeywordList{Keyword: keyword, Links: make(map[string]Link)}
}

// Add couples a link to the list.
func (l *KeywordList) Add(link Link) {
	if l.Links == nil {
		l.Links = make(map[string]Link)
	}
	l.Links[link.ID.String()] = link
}

// SortedLinks returns the links newest first, ties broken by URL.
func (l *KeywordList) SortedLinks() []Link {
	links := make([]Link, 0, len(l.Links))
	for _, link := range l.Links {
		links = append(links, link)
	}
	sort.Slice(links, func(i, j int) bool {
		if !links[i].CreatedAt.Equal(links[j].CreatedAt) {
			return links[i].CreatedAt.After(links[j].CreatedAt)
		}
		return links[i].URL < links[j].URL
	})
	return links
}

// RedirectTarget picks the link a bare keyword redirects to according to the
// list's behavior. It reports false when the list page should be shown
// instead: the list has no links or its behavior is list. A pinned link that
// is no longer coupled falls back to the freshest link.
func (l *KeywordList) RedirectTarget() (Link, bool) {
	links := l.SortedLinks()
	if len(links) == 0 {
		return Link{}, false
	}

	switch l.Behavior {
	case "", BehaviorFreshest:
		return links[0], true
	case BehaviorList:
		return Link{}, false
	case BehaviorTop:
		top := links[0]
		for _, link := range links[1:] {
			if link.Clicks > top.Clicks {
				top = link
			}
		}
		return top, true
	case BehaviorRandom:
		return links[rand.IntN(len(links))], true
	}

	if link, ok := l.Links[l.Behavior]; ok {
		return link, true
	}
	return links[0], true
}

// KeywordIndex maps each keyword to its list.
type KeywordIndex map[string]*KeywordList

// Seed describes a keyword to create at startup.
type Seed struct {
	Keyword string
	Clicks  int64
	Links   []SeedLink

	// Behavior is a named redirect behavior or the URL of one of Links to
	// pin. Empty leaves the stored behavior alone.
	Behavior string
}

// SeedLink is a link inside a Seed.
type SeedLink struct {
	URL   string
	Title string
}
