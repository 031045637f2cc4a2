package domain

// Author is the package author. Literal holds the raw value when package.json
// declares the author as a plain string.
type Author struct {
	Name    string
	Email   string
	Literal string
}

// IsZero reports whether no author was declared.
func (a Author) IsZero() bool {
	return a.Name == "" && a.Email == "" && a.Literal == ""
}

// BinEntry is one executable declared under "bin".
type BinEntry struct {
	Name string
	Path string
}

// Manifest is the subset of package.json the planner reads.
type Manifest struct {
	Name             string
	Version          string
	Author           Author
	Main             string
	Module           string
	JSNextMain       string
	Types            string
	Typings          string
	Bin              []BinEntry
	Dependencies     map[string]string
	PeerDependencies map[string]string
}

// FirstBin returns the first declared executable path.
func (m *Manifest) FirstBin() (string, bool) {
	if m == nil || len(m.Bin) == 0 {
		return "", false
	}
	return m.Bin[0].Path, true
}

// DependsOn reports whether name appears in dependencies or peerDependencies.
func (m *Manifest) DependsOn(name string) bool {
	if m == nil {
		return false
	}
	if _, ok := m.Dependencies[name]; ok {
		return true
	}
	_, ok := m.PeerDependencies[name]
	return ok
}
