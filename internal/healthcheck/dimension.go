package healthcheck

import "fmt"

type Dimension struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Description     string  `json:"description"`
	GoodDescription string  `json:"goodDescription"`
	BadDescription  string  `json:"badDescription"`
	IsActive        bool    `json:"isActive"`
	Weight          float64 `json:"weight"`
}

func (d Dimension) Validate() error {
	if d.ID == "" {
		return fmt.Errorf("%w: dimension id is empty", ErrInvalidConfiguration)
	}
	if d.IsActive && d.Weight <= 0 {
		return fmt.Errorf("%w: active dimension %q needs a positive weight", ErrInvalidConfiguration, d.ID)
	}
	return nil
}

// UnknownDimension is what Resolve hands back for ids no longer in the registry.
func UnknownDimension(id string) Dimension {
	return Dimension{ID: id, Name: "Unknown dimension", Weight: 1}
}

// Registry keeps dimensions in insertion order. Inactive dimensions stay resolvable because
// historical sessions still reference them.
type Registry struct {
	ordered []Dimension
	byID    map[string]int
}

func NewRegistry(dimensions []Dimension) *Registry {
	r := &Registry{byID: make(map[string]int, len(dimensions))}
	for _, d := range dimensions {
		if i, ok := r.byID[d.ID]; ok {
			r.ordered[i] = d
			continue
		}
		r.byID[d.ID] = len(r.ordered)
		r.ordered = append(r.ordered, d)
	}
	return r
}

func (r *Registry) All() []Dimension {
	out := make([]Dimension, len(r.ordered))
	copy(out, r.ordered)
	return out
}

func (r *Registry) Active() []Dimension {
	out := make([]Dimension, 0, len(r.ordered))
	for _, d := range r.ordered {
		if d.IsActive {
			out = append(out, d)
		}
	}
	return out
}

func (r *Registry) Get(id string) (Dimension, bool) {
	i, ok := r.byID[id]
	if !ok {
		return Dimension{}, false
	}
	return r.ordered[i], true
}

func (r *Registry) Resolve(id string) Dimension {
	if d, ok := r.Get(id); ok {
		return d
	}
	return UnknownDimension(id)
}
