package entities

// Category é o conjunto fechado de eixos temáticos da iniciativa.
type Category string

const (
	CategorySalud          Category = "Salud"
	CategoryDeporte        Category = "Deporte"
	CategoryNaturaleza     Category = "Naturaleza"
	CategoryCultura        Category = "Cultura"
	CategorySostenibilidad Category = "Sostenibilidad"
)

// Categories lists every category in display order.
var Categories = []Category{
	CategorySalud,
	CategoryDeporte,
	CategoryNaturaleza,
	CategoryCultura,
	CategorySostenibilidad,
}

func (c Category) IsValid() bool {
	switch c {
	case CategorySalud, CategoryDeporte, CategoryNaturaleza, CategoryCultura, CategorySostenibilidad:
		return true
	}
	return false
}

// OrDefault returns c when it is a known category and Salud otherwise.
func (c Category) OrDefault() Category {
	if c.IsValid() {
		return c
	}
	return CategorySalud
}
