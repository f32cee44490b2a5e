package models

// ViewState tells the renderer which main-area content to show
type ViewState string

const (
	ViewStatePrompt    ViewState = "prompt"
	ViewStateNoResults ViewState = "no_results"
	ViewStateResults   ViewState = "results"
)

const (
	PromptMessage    = "Use os filtros ao lado para visualizar os produtos do mostruário."
	NoResultsMessage = "Nenhum registro encontrado com os filtros selecionados."
)

// ImageSource identifies which tier of the resolver chain produced an image
type ImageSource string

const (
	ImageSourceLocal       ImageSource = "local"
	ImageSourceRemote      ImageSource = "remote"
	ImageSourcePlaceholder ImageSource = "placeholder"
)

// ImageAsset is a resolved image reference for a row
type ImageAsset struct {
	Source      ImageSource `json:"source"`
	URL         string      `json:"url"`
	FallbackURL string      `json:"fallback_url"`
}

// StatusColor is the display color of a status label
type StatusColor struct {
	Name string `json:"name"`
	Hex  string `json:"hex"`
}

// Group is a band with its rows in display order
type Group struct {
	Band    string         `json:"faixa"`
	Rows    []CatalogRow   `json:"rows"`
	Grid    [][]CatalogRow `json:"-"`
	Divider bool           `json:"divider"`
}

// CatalogCard is a row decorated for display
type CatalogCard struct {
	Row         CatalogRow  `json:"row"`
	Image       ImageAsset  `json:"image"`
	StatusColor StatusColor `json:"status_color"`
}

// CardGroup is a rendered band: cards laid out row-major in a fixed-width grid
type CardGroup struct {
	Band    string          `json:"faixa"`
	Divider bool            `json:"divider"`
	Rows    [][]CatalogCard `json:"rows"`
}

// CatalogView is everything the renderer needs for one request
type CatalogView struct {
	State      ViewState      `json:"state"`
	Message    string         `json:"message,omitempty"`
	LoadError  string         `json:"load_error,omitempty"`
	Criteria   FilterCriteria `json:"criteria"`
	Options    FilterOptions  `json:"options"`
	Groups     []CardGroup    `json:"groups"`
	Total      int            `json:"total"`
	Columns    int            `json:"columns"`
	SnapshotID string         `json:"snapshot_id,omitempty"`
}

// ResolverStats counts image resolutions per tier since process start
type ResolverStats struct {
	Local       int64 `json:"local"`
	Remote      int64 `json:"remote"`
	Placeholder int64 `json:"placeholder"`
}

// Unresolved is the number of rows that fell back to a placeholder
func (s ResolverStats) Unresolved() int64 {
	return s.Placeholder
}

// CatalogDiagnostics reports the state of the loaded catalog and image resolution
type CatalogDiagnostics struct {
	SnapshotID string        `json:"snapshot_id,omitempty"`
	Source     string        `json:"source"`
	Rows       int           `json:"rows"`
	LoadedAt   string        `json:"loaded_at,omitempty"`
	LoadError  string        `json:"load_error,omitempty"`
	Images     ResolverStats `json:"images"`
}
