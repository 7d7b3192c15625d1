package corpus

// grouping is an insertion-ordered multimap.
type grouping[T any] struct {
	index  map[string]int
	groups []group[T]
}

type group[T any] struct {
	key   string
	items []T
}

func newGrouping[T any]() *grouping[T] {
	return &grouping[T]{index: make(map[string]int)}
}

func (g *grouping[T]) add(key string, item T) {
	i, ok := g.index[key]
	if !ok {
		i = len(g.groups)
		g.index[key] = i
		g.groups = append(g.groups, group[T]{key: key})
	}
	g.groups[i].items = append(g.groups[i].items, item)
}

func (g *grouping[T]) ordered() []group[T] {
	return g.groups
}
