package entities

// Resource é um ponto do mapa de saúde (parque, farmácia, ponto limpo...).
type Resource struct {
	ID          string   `json:"id" yaml:"id"`
	Name        string   `json:"name" yaml:"name"`
	Category    Category `json:"category" yaml:"category"`
	Address     string   `json:"address" yaml:"address"`
	Description string   `json:"description" yaml:"description"`
	Lat         float64  `json:"lat" yaml:"lat"`
	Lng         float64  `json:"lng" yaml:"lng"`
	Tags        []string `json:"tags" yaml:"tags"`
	Email       string   `json:"email,omitempty" yaml:"email,omitempty"`
	Phone       string   `json:"phone,omitempty" yaml:"phone,omitempty"`
	Image       string   `json:"image,omitempty" yaml:"image,omitempty"`
}

// HasTag reports whether tag is one of the resource tags.
func (r Resource) HasTag(tag string) bool {
	for _, t := range r.Tags {
		if t == tag {
			return true
		}
	}
	return false
}
