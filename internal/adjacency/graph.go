package adjacency

import "sort"

// Link - дополнительная связь двух типов червоточин на время запроса
type Link struct {
	A, B string
}

// Graph - граф связности типов червоточин.
// Каждый тип связан сам с собой; остальные связи добавляет Connect.
// Значение неизменяемо: Connect возвращает новый граф.
type Graph struct {
	edges map[string]map[string]struct{}
}

// NewGraph создаёт граф, в котором каждый тип связан только с собой
func NewGraph(links ...Link) Graph {
	g := Graph{}
	for _, l := range links {
		g = g.Connect(l.A, l.B)
	}
	return g
}

// Connect возвращает копию графа с симметричной связью a <-> b
func (g Graph) Connect(a, b string) Graph {
	if a == b || g.Connected(a, b) {
		return g
	}
	next := g.clone()
	next.add(a, b)
	next.add(b, a)
	return next
}

// With возвращает копию графа с добавленными связями
func (g Graph) With(links ...Link) Graph {
	for _, l := range links {
		g = g.Connect(l.A, l.B)
	}
	return g
}

// Connected сообщает, связаны ли два типа за один шаг
func (g Graph) Connected(a, b string) bool {
	if a == b {
		return true
	}
	_, ok := g.edges[a][b]
	return ok
}

// Reachable возвращает типы, достижимые из labels за один шаг, включая сами labels.
// Транзитивное замыкание не строится: цепочки alpha-beta-gamma нужно
// задавать явными связями.
func (g Graph) Reachable(labels []string) map[string]struct{} {
	result := make(map[string]struct{}, len(labels))
	for _, label := range labels {
		result[label] = struct{}{}
		for other := range g.edges[label] {
			result[other] = struct{}{}
		}
	}
	return result
}

// Links возвращает все связи графа в стабильном порядке
func (g Graph) Links() []Link {
	var links []Link
	for a, targets := range g.edges {
		for b := range targets {
			if a < b {
				links = append(links, Link{A: a, B: b})
			}
		}
	}
	sort.Slice(links, func(i, j int) bool {
		if links[i].A != links[j].A {
			return links[i].A < links[j].A
		}
		return links[i].B < links[j].B
	})
	return links
}

func (g Graph) clone() Graph {
	next := Graph{edges: make(map[string]map[string]struct{}, len(g.edges)+2)}
	for label, targets := range g.edges {
		copied := make(map[string]struct{}, len(targets))
		for t := range targets {
			copied[t] = struct{}{}
		}
		next.edges[label] = copied
	}
	return next
}

func (g Graph) add(from, to string) {
	targets, ok := g.edges[from]
	if !ok {
		targets = make(map[string]struct{})
		g.edges[from] = targets
	}
	targets[to] = struct{}{}
}
