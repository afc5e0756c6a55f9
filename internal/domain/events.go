package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventDropdownToggled  EventType = "DropdownToggled"
	EventOptionSelected   EventType = "OptionSelected"
	EventOptionDeselected EventType = "OptionDeselected"
	EventSearchChanged    EventType = "SearchChanged"
	EventFileChosen       EventType = "FileChosen"
	EventOptionsReplaced  EventType = "OptionsReplaced"
	EventConfigLoaded     EventType = "ConfigLoaded"
	EventConfigSaved      EventType = "ConfigSaved"
	EventAppReady         EventType = "AppReady"
)

// AllEventTypes lists every event type, for subscribers that want everything
var AllEventTypes = []EventType{
	EventDropdownToggled,
	EventOptionSelected,
	EventOptionDeselected,
	EventSearchChanged,
	EventFileChosen,
	EventOptionsReplaced,
	EventConfigLoaded,
	EventConfigSaved,
	EventAppReady,
}

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// DropdownToggledEvent is emitted when an option list opens or closes
type DropdownToggledEvent struct {
	DropdownID string
	Open       bool
}

func (e DropdownToggledEvent) Type() EventType { return EventDropdownToggled }

// OptionSelectedEvent is emitted when a value is added to the selection
type OptionSelectedEvent struct {
	DropdownID string
	Value      string
	Selected   []string // selection after the change
}

func (e OptionSelectedEvent) Type() EventType { return EventOptionSelected }

// OptionDeselectedEvent is emitted when a value leaves the selection,
// either through its checkbox or its tag's remove control
type OptionDeselectedEvent struct {
	DropdownID string
	Value      string
	ViaTag     bool
	Selected   []string
}

func (e OptionDeselectedEvent) Type() EventType { return EventOptionDeselected }

// SearchChangedEvent is emitted on every edit of the search box
type SearchChangedEvent struct {
	DropdownID string
	Term       string
	Visible    int
}

func (e SearchChangedEvent) Type() EventType { return EventSearchChanged }

// FileChosenEvent is emitted when a file name is captured. Only the name is carried.
type FileChosenEvent struct {
	DropdownID string
	Name       string
}

func (e FileChosenEvent) Type() EventType { return EventFileChosen }

// OptionsReplacedEvent is emitted when the host swaps a dropdown's option set
type OptionsReplacedEvent struct {
	DropdownID string
	Count      int
	Pruned     []string
}

func (e OptionsReplacedEvent) Type() EventType { return EventOptionsReplaced }

// ConfigLoadedEvent is emitted when configuration is loaded
type ConfigLoadedEvent struct {
	Path      string
	Dropdowns int
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }

// ConfigSavedEvent is emitted when configuration is saved
type ConfigSavedEvent struct {
	Path string
}

func (e ConfigSavedEvent) Type() EventType { return EventConfigSaved }

// AppReadyEvent is emitted once the program has its first window size
type AppReadyEvent struct {
	Dropdowns int
}

func (e AppReadyEvent) Type() EventType { return EventAppReady }
