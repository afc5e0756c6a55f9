package domain

// Option is a selectable (value, label) pair supplied by the caller
type Option struct {
	Value string `toml:"value"`
	Label string `toml:"label"`
}

// Tag is a selected value paired with its resolved label.
// Label is empty when the value is no longer among the options.
type Tag struct {
	Value string
	Label string
}

// Result is what a dropdown holds when the program exits
type Result struct {
	ID       string   `toml:"id"`
	Title    string   `toml:"title"`
	Selected []string `toml:"selected"`
	Upload   string   `toml:"upload,omitempty"`
}
