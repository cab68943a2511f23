// Package viewmodel defines presentation-ready structs for the templ components.
// View models decouple template rendering from domain model types.
package viewmodel

// PageViewModel holds data shared by every page layout.
type PageViewModel struct {
	Title     string
	Username  string // empty when logged out
	CSRFToken string
	ActiveNav string // "add", "view" or "export"
	Notice    string // success message
	Error     string // error message
}

// AuthPageViewModel holds the login/register form state.
type AuthPageViewModel struct {
	PageViewModel
	Username string // echoed back after a failed attempt
	Action   string // "login" or "register"
}

// Option is one entry of a select box.
type Option struct {
	Value    string
	Label    string
	Selected bool
}

// AddPageViewModel holds the add-entry form.
type AddPageViewModel struct {
	PageViewModel
	Types      []Option
	Title      string // echoed back after a validation failure
	TotalParts string
}

// EntryViewModel holds presentation-ready data for one reading entry.
type EntryViewModel struct {
	Title       string
	Type        string
	Status      string
	CurrentPart int
	LineHTML    string // sanitized HTML of the list line
}

// ListPageViewModel holds the view & update page.
type ListPageViewModel struct {
	PageViewModel
	FilterOptions []Option
	SortOptions   []Option
	Filter        string
	Sort          string

	// Update form. SelectOptions is empty when nothing is listed.
	SelectOptions []Option
	Selected      *EntryViewModel

	Entries []EntryViewModel
}

// ExportPageViewModel holds the export page.
type ExportPageViewModel struct {
	PageViewModel
	EntryCount  int
	DownloadURL string
}
