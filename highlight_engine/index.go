package highlight_engine

// PhraseIndex is the set of keys derived from a word list
type PhraseIndex struct {
	keys    map[string]struct{}
	skipped int
	ke      *KeyExtractor
}

// BuildIndex creates a phrase index from the lookup API entries. Entries
// without a word are skipped.
func BuildIndex(phrases []Phrase, ke *KeyExtractor) *PhraseIndex {
	if ke == nil {
		ke = DefaultKeyExtractor()
	}
	idx := &PhraseIndex{
		keys: make(map[string]struct{}, len(phrases)*2),
		ke:   ke,
	}
	for _, p := range phrases {
		if p.Word == "" {
			idx.skipped++
			continue
		}
		idx.Add(p.Word)
	}
	return idx
}

// Add indexes every key of phrase
func (idx *PhraseIndex) Add(phrase string) {
	for _, key := range idx.ke.Keys(phrase) {
		idx.keys[key] = struct{}{}
	}
}

// Contains reports whether key is in the index
func (idx *PhraseIndex) Contains(key string) bool {
	_, ok := idx.keys[key]
	return ok
}

// Matches reports whether any key of token is in the index
func (idx *PhraseIndex) Matches(token string) bool {
	if len(idx.keys) == 0 {
		return false
	}
	for _, key := range idx.ke.Keys(token) {
		if idx.Contains(key) {
			return true
		}
	}
	return false
}

// Len returns the number of distinct keys
func (idx *PhraseIndex) Len() int {
	return len(idx.keys)
}

// Skipped returns the number of entries ignored for lacking a word
func (idx *PhraseIndex) Skipped() int {
	return idx.skipped
}
