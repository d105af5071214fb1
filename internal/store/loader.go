package store

// Action types of the page loader slice.
const (
	TypeLoadWebpage        ActionType = "[Webpage] Load Webpage"
	TypeLoadWebpageSuccess ActionType = "[Webpage] Load Webpage Success"
	TypeLoadWebpageFailure ActionType = "[Webpage] Load Webpage Failure"
	TypeSetCurrentURL      ActionType = "[Webpage] Set Current URL"
)

// LoaderState tracks the page currently being opened. It is independent of
// the record list: its actions never touch Webpages, IsLoading or Error of
// State.
type LoaderState struct {
	CurrentURL string
	IsLoading  bool
	Error      string
}

// LoadWebpage requests loading of URL and makes it current.
type LoadWebpage struct {
	URL string
}

// LoadWebpageSuccess reports that URL was loaded.
type LoadWebpageSuccess struct {
	URL string
}

// LoadWebpageFailure reports a failed load.
type LoadWebpageFailure struct {
	Error string
}

// SetCurrentURL changes the current URL without loading it.
type SetCurrentURL struct {
	URL string
}

func (LoadWebpage) Type() ActionType        { return TypeLoadWebpage }
func (LoadWebpageSuccess) Type() ActionType { return TypeLoadWebpageSuccess }
func (LoadWebpageFailure) Type() ActionType { return TypeLoadWebpageFailure }
func (SetCurrentURL) Type() ActionType      { return TypeSetCurrentURL }

func (LoadWebpage) intent() {}

func (LoadWebpageSuccess) Failed() bool { return false }
func (LoadWebpageFailure) Failed() bool { return true }

// ReduceLoader is the page loader reducer. Actions it does not handle return
// s unchanged.
func ReduceLoader(s LoaderState, a Action) LoaderState {
	switch a := a.(type) {
	case LoadWebpage:
		s.IsLoading = true
		s.Error = ""
		s.CurrentURL = a.URL
	case LoadWebpageSuccess:
		s.IsLoading = false
		s.CurrentURL = a.URL
	case LoadWebpageFailure:
		s.IsLoading = false
		s.Error = a.Error
	case SetCurrentURL:
		s.CurrentURL = a.URL
	}
	return s
}

// reduceLoader applies a to the loader slice of s. It returns s itself when
// the slice is unchanged.
func (s *State) reduceLoader(a Action) *State {
	loader := ReduceLoader(s.Loader, a)
	if loader == s.Loader {
		return s
	}
	next := s.clone()
	next.Loader = loader
	return next
}

// SelectCurrentURL returns the URL of the current page.
func SelectCurrentURL(s *State) string {
	return s.Loader.CurrentURL
}

// SelectLoaderIsLoading reports whether a page load is outstanding.
func SelectLoaderIsLoading(s *State) bool {
	return s.Loader.IsLoading
}

// SelectLoaderError returns the message of the last failed page load.
func SelectLoaderError(s *State) string {
	return s.Loader.Error
}
