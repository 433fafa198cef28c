package report

// Entry is one requested (room, device) pair.
type Entry struct {
	Room   string `json:"room" yaml:"room" mapstructure:"room"`
	Device string `json:"device" yaml:"device" mapstructure:"device"`
}

// InfoProvider supplies the pairs a report is built from. Entries is called
// once per report and its order is the order of the report lines. Entries
// may repeat and may name rooms or devices the house does not have.
type InfoProvider interface {
	Entries() []Entry
}

// ProviderFunc adapts a plain function to InfoProvider.
type ProviderFunc func() []Entry

func (f ProviderFunc) Entries() []Entry {
	return f()
}
