package scoring

// Category is the human-readable band a composite score falls into.
// Color is a hint for display layers; the core never interprets it.
type Category struct {
	Label string `json:"label"`
	Color string `json:"color"`
}

var categories = []struct {
	min int
	cat Category
}{
	{85, Category{"Exceptional", "purple"}},
	{75, Category{"Very Attractive", "green"}},
	{65, Category{"Attractive", "lime"}},
	{55, Category{"Neutral", "gray"}},
	{45, Category{"Low Attractiveness", "orange"}},
	{35, Category{"Not Recommended", "red"}},
}

// Categorize maps a composite score to its band. Scores below every
// threshold fall into the avoid band.
func Categorize(score int) Category {
	for _, c := range categories {
		if score >= c.min {
			return c.cat
		}
	}
	return Category{"Avoid", "black"}
}
