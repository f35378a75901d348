package model

// Material holds the reference data for a plastic type. The table below is
// immutable: it is built once at process start and never mutated at runtime.
type Material struct {
	FullName         string
	RecyclingCode    string
	Recyclability    string
	Instructions     string
	CommonItems      []string
	ValuePerKG       float64
	CurbsideAccepted bool
}

var materials = map[PlasticType]Material{
	TypePET: {
		FullName:      "Polyethylene Terephthalate",
		RecyclingCode: "#1",
		Recyclability: "High",
		CommonItems: []string{
			"Water bottles",
			"Soda bottles",
			"Food containers",
			"Peanut butter jars",
			"Salad containers",
		},
		ValuePerKG:       0.12,
		CurbsideAccepted: true,
		Instructions:     "Rinse clean, remove caps and labels, flatten bottles before recycling",
	},
	TypeHDPE: {
		FullName:      "High-Density Polyethylene",
		RecyclingCode: "#2",
		Recyclability: "High",
		CommonItems: []string{
			"Milk jugs",
			"Shampoo bottles",
			"Detergent bottles",
			"Motor oil containers",
			"Grocery bags",
		},
		ValuePerKG:       0.18,
		CurbsideAccepted: true,
		Instructions:     "Rinse thoroughly, caps can stay on, empty completely",
	},
	TypeOther: {
		FullName:      "Other Plastics (Mixed)",
		RecyclingCode: "#7",
		Recyclability: "Variable",
		CommonItems: []string{
			"Mixed plastic materials",
			"Some food containers",
			"Certain bottles",
			"Composite materials",
			"BPA-containing plastics",
		},
		ValuePerKG:       0.02,
		CurbsideAccepted: false,
		Instructions:     "Check with local facility - may need special drop-off location",
	},
}

// MaterialFor returns the reference data for a plastic type. The returned
// value shares its CommonItems slice with the table; callers must not
// mutate it.
func MaterialFor(t PlasticType) (Material, bool) {
	m, ok := materials[t]
	return m, ok
}
