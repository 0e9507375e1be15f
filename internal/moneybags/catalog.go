package moneybags

// ColorGroup is a board colour set; stations and utilities count as groups.
type ColorGroup string

const (
	GroupBrown     ColorGroup = "brown"
	GroupLightBlue ColorGroup = "light-blue"
	GroupPink      ColorGroup = "pink"
	GroupOrange    ColorGroup = "orange"
	GroupRed       ColorGroup = "red"
	GroupYellow    ColorGroup = "yellow"
	GroupGreen     ColorGroup = "green"
	GroupBlue      ColorGroup = "blue"
	GroupStation   ColorGroup = "station"
	GroupUtility   ColorGroup = "utility"
)

var GroupColors = map[ColorGroup]string{
	GroupBrown:     "#8B4513",
	GroupLightBlue: "#87CEEB",
	GroupPink:      "#FF69B4",
	GroupOrange:    "#FFA500",
	GroupRed:       "#FF0000",
	GroupYellow:    "#FFD700",
	GroupGreen:     "#228B22",
	GroupBlue:      "#0000CD",
	GroupStation:   "#333333",
	GroupUtility:   "#808080",
}

// PropertyTemplate is a catalog entry used to prefill a Property.
type PropertyTemplate struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	ColorGroup ColorGroup `json:"colorGroup"`
	Price      float64    `json:"price"`
	ColorHex   string     `json:"colorHex"`
}

func tpl(id, name string, g ColorGroup, price float64) PropertyTemplate {
	return PropertyTemplate{ID: id, Name: name, ColorGroup: g, Price: price, ColorHex: GroupColors[g]}
}

// Catalog holds the UK board: 22 colour sites, 4 stations and 2 utilities.
var Catalog = []PropertyTemplate{
	tpl("old-kent-road", "Old Kent Road", GroupBrown, 60),
	tpl("whitechapel-road", "Whitechapel Road", GroupBrown, 60),

	tpl("angel-islington", "The Angel Islington", GroupLightBlue, 100),
	tpl("euston-road", "Euston Road", GroupLightBlue, 100),
	tpl("pentonville-road", "Pentonville Road", GroupLightBlue, 120),

	tpl("pall-mall", "Pall Mall", GroupPink, 140),
	tpl("whitehall", "Whitehall", GroupPink, 140),
	tpl("northumberland-avenue", "Northumberland Avenue", GroupPink, 160),

	tpl("bow-street", "Bow Street", GroupOrange, 180),
	tpl("marlborough-street", "Marlborough Street", GroupOrange, 180),
	tpl("vine-street", "Vine Street", GroupOrange, 200),

	tpl("strand", "Strand", GroupRed, 220),
	tpl("fleet-street", "Fleet Street", GroupRed, 220),
	tpl("trafalgar-square", "Trafalgar Square", GroupRed, 240),

	tpl("leicester-square", "Leicester Square", GroupYellow, 260),
	tpl("coventry-street", "Coventry Street", GroupYellow, 260),
	tpl("piccadilly", "Piccadilly", GroupYellow, 280),

	tpl("regent-street", "Regent Street", GroupGreen, 300),
	tpl("oxford-street", "Oxford Street", GroupGreen, 300),
	tpl("bond-street", "Bond Street", GroupGreen, 320),

	tpl("park-lane", "Park Lane", GroupBlue, 350),
	tpl("mayfair", "Mayfair", GroupBlue, 400),

	tpl("kings-cross", "Kings Cross Station", GroupStation, 200),
	tpl("marylebone", "Marylebone Station", GroupStation, 200),
	tpl("fenchurch-street", "Fenchurch St. Station", GroupStation, 200),
	tpl("liverpool-street", "Liverpool St. Station", GroupStation, 200),

	tpl("electric-company", "Electric Company", GroupUtility, 150),
	tpl("water-works", "Water Works", GroupUtility, 150),
}

// TemplateByID looks up a catalog entry.
func TemplateByID(id string) (PropertyTemplate, bool) {
	for _, t := range Catalog {
		if t.ID == id {
			return t, true
		}
	}
	return PropertyTemplate{}, false
}

func TemplatesByGroup(g ColorGroup) []PropertyTemplate {
	var out []PropertyTemplate
	for _, t := range Catalog {
		if t.ColorGroup == g {
			out = append(out, t)
		}
	}
	return out
}
