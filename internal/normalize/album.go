package normalize

// TitleSet holds the keys for every title in one album (or, at album scope,
// one artist's discography). Titles whose stripped keys collide but whose
// qualified forms differ keep their qualifiers, so "Song" and "Song (Live)"
// stay distinct while "Song (Taylor's Version)" alone still reduces to "song".
type TitleSet struct {
	scope     Scope
	keys      []Key
	qualified map[Key]struct{}
}

// NewTitleSet computes disambiguated keys for titles.
func NewTitleSet(titles []string, scope Scope) *TitleSet {
	stripped := make([]Key, len(titles))
	full := make([]Key, len(titles))
	for i, title := range titles {
		stripped[i] = Normalize(title, scope)
		full[i] = NormalizeQualified(title, scope)
	}

	useQualified := make([]bool, len(titles))
	current := func(i int) Key {
		if useQualified[i] {
			return full[i]
		}
		return stripped[i]
	}

	// Qualifying one title can create a new collision with another title's
	// stripped key, so repeat until nothing changes. Flags only flip to true.
	for changed := true; changed; {
		changed = false
		groups := make(map[Key][]int, len(titles))
		for i := range titles {
			k := current(i)
			groups[k] = append(groups[k], i)
		}
		for _, members := range groups {
			if len(members) < 2 || !distinctForms(full, members) {
				continue
			}
			for _, i := range members {
				if !useQualified[i] {
					useQualified[i] = true
					changed = true
				}
			}
		}
	}

	set := &TitleSet{scope: scope, keys: make([]Key, len(titles)), qualified: map[Key]struct{}{}}
	for i := range titles {
		set.keys[i] = current(i)
		if useQualified[i] {
			set.qualified[stripped[i]] = struct{}{}
		}
	}
	return set
}

func distinctForms(full []Key, members []int) bool {
	first := full[members[0]]
	for _, i := range members[1:] {
		if full[i] != first {
			return true
		}
	}
	return false
}

// Keys returns the key of every title in input order.
func (s *TitleSet) Keys() []Key {
	return append([]Key(nil), s.keys...)
}

// KeyFor normalizes an outside title (a lyric document name) consistently
// with the set: if its stripped key is one the set had to disambiguate, the
// qualified form is used.
func (s *TitleSet) KeyFor(title string) Key {
	key := Normalize(title, s.scope)
	if _, ok := s.qualified[key]; ok {
		return NormalizeQualified(title, s.scope)
	}
	return key
}

// Album returns disambiguated keys for one album's titles in input order.
func Album(titles []string, scope Scope) []Key {
	return NewTitleSet(titles, scope).Keys()
}
