package brouhaha

// CorpusRoot holds the directory the corpus is read from. It starts unset.
type CorpusRoot struct {
	path string
	set  bool
}

// Get returns the root or ErrRootNotSet.
func (r *CorpusRoot) Get() (string, error) {
	if !r.set {
		return "", ErrRootNotSet
	}
	return r.path, nil
}

// Set replaces the root. The path is not checked here; a bad path surfaces
// when a subset is iterated.
func (r *CorpusRoot) Set(path string) {
	r.path = path
	r.set = true
}

// IsSet reports whether Set has been called.
func (r *CorpusRoot) IsSet() bool {
	return r.set
}
