package reader

import "newsdeck/types"

// DatesLoadedMsg is sent when the browsable date list has loaded.
type DatesLoadedMsg struct {
	Dates []string
	Err   error
}

// PageLoadedMsg is sent when a page of articles has loaded.
type PageLoadedMsg struct {
	Result types.SearchResult
	Err    error
}
