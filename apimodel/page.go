package apimodel

// Page is the envelope every list endpoint returns.
type Page[T any] struct {
	Count    int     `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []T     `json:"results"`
}

func (p *Page[T]) HasNext() bool {
	return p.Next != nil && *p.Next != ""
}

func (p *Page[T]) HasPrevious() bool {
	return p.Previous != nil && *p.Previous != ""
}
