package store

import "github.com/atinyakov/go-webpages/internal/models"

// ActionType names an action. Values follow the "[Feature] Event" convention.
type ActionType string

// Action types handled by Reduce.
const (
	TypeEditWebpage        ActionType = "[Webpage] Add Webpage"
	TypeEditWebpageSuccess ActionType = "[Webpage] Add Webpage Success"
	TypeEditWebpageFailure ActionType = "[Webpage] Add Webpage Failure"

	TypeRefreshWebpages        ActionType = "[Webpage List] Refresh Webpages"
	TypeRefreshWebpagesSuccess ActionType = "[Webpage List] Refresh Webpages Success"
	TypeRefreshWebpagesFailure ActionType = "[Webpage List] Refresh Webpages Failure"

	TypeDeleteWebpage        ActionType = "[Webpage List] Delete Webpage"
	TypeDeleteWebpageSuccess ActionType = "[Webpage List] Delete Webpage Success"
	TypeDeleteWebpageFailure ActionType = "[Webpage List] Delete Webpage Failure"
)

// Action is a message dispatched into the store. Actions are plain data.
type Action interface {
	Type() ActionType
}

// Intent is implemented by actions that request work from an effect.
type Intent interface {
	Action
	intent()
}

// Outcome is implemented by actions that report the result of an intent.
type Outcome interface {
	Action
	// Failed reports whether the outcome is a failure.
	Failed() bool
}

// EditWebpage requests creation (no id) or update (id set) of a record.
type EditWebpage struct {
	Webpage models.Webpage
}

// EditWebpageSuccess carries the record to create or merge.
//
// Persisted marks a record already stored by a backend: its id was assigned
// there and is kept when the record is appended.
type EditWebpageSuccess struct {
	Webpage   models.Webpage
	Persisted bool
}

// EditWebpageFailure reports a failed edit.
type EditWebpageFailure struct {
	Error string
}

// RefreshWebpages requests a reload of the record list.
type RefreshWebpages struct{}

// RefreshWebpagesSuccess reports a finished refresh. When Replace is set the
// records are replaced by Webpages; otherwise the records are left untouched.
type RefreshWebpagesSuccess struct {
	Webpages []models.Webpage
	Replace  bool
}

// RefreshWebpagesFailure reports a failed refresh.
type RefreshWebpagesFailure struct {
	Error string
}

// DeleteWebpage requests removal of the record with ID.
type DeleteWebpage struct {
	ID int64
}

// DeleteWebpageSuccess reports that the record with ID is gone.
type DeleteWebpageSuccess struct {
	ID int64
}

// DeleteWebpageFailure reports a failed delete.
type DeleteWebpageFailure struct {
	Error string
}

func (EditWebpage) Type() ActionType            { return TypeEditWebpage }
func (EditWebpageSuccess) Type() ActionType     { return TypeEditWebpageSuccess }
func (EditWebpageFailure) Type() ActionType     { return TypeEditWebpageFailure }
func (RefreshWebpages) Type() ActionType        { return TypeRefreshWebpages }
func (RefreshWebpagesSuccess) Type() ActionType { return TypeRefreshWebpagesSuccess }
func (RefreshWebpagesFailure) Type() ActionType { return TypeRefreshWebpagesFailure }
func (DeleteWebpage) Type() ActionType          { return TypeDeleteWebpage }
func (DeleteWebpageSuccess) Type() ActionType   { return TypeDeleteWebpageSuccess }
func (DeleteWebpageFailure) Type() ActionType   { return TypeDeleteWebpageFailure }

func (EditWebpage) intent()     {}
func (RefreshWebpages) intent() {}
func (DeleteWebpage) intent()   {}

func (EditWebpageSuccess) Failed() bool     { return false }
func (EditWebpageFailure) Failed() bool     { return true }
func (RefreshWebpagesSuccess) Failed() bool { return false }
func (RefreshWebpagesFailure) Failed() bool { return true }
func (DeleteWebpageSuccess) Failed() bool   { return false }
func (DeleteWebpageFailure) Failed() bool   { return true }
