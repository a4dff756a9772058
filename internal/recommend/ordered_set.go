package recommend

// orderedSet conserve l'ordre de première insertion tout en garantissant
// l'unicité (séquence + ensemble d'appartenance). Toute la déduplication
// "première occurrence gagne" du moteur passe par lui.
type orderedSet struct {
	seen map[string]struct{}
	keys []string
}

func newOrderedSet() *orderedSet {
	return &orderedSet{seen: make(map[string]struct{})}
}

// Add retourne false si la clé était déjà présente.
func (s *orderedSet) Add(key string) bool {
	if _, ok := s.seen[key]; ok {
		return false
	}
	s.seen[key] = struct{}{}
	s.keys = append(s.keys, key)
	return true
}

func (s *orderedSet) Has(key string) bool {
	_, ok := s.seen[key]
	return ok
}

func (s *orderedSet) Values() []string {
	return s.keys
}

func (s *orderedSet) Len() int {
	return len(s.keys)
}
