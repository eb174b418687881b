package corpus

// Sample returns a small built-in corpus with documents spread over distinct
// topical categories. Each document is labeled with its category, so the demo
// exercises class derivation, coloring, and the legend without any external
// data source.
func Sample() []Document {
	categories := map[string][]string{
		"animals": {
			"the wolf and the dog circled the sheep pen at dusk",
			"a lion and a tiger rested in the shade near the river",
			"the eagle and the hawk hunted sparrows over the field",
			"dolphins and whales surfaced beside the fishing boat",
			"a giraffe and a zebra grazed along the dry savanna",
			"the penguin colony huddled against the antarctic wind",
		},
		"food": {
			"the pizza arrived with extra cheese and fresh basil",
			"she ordered sushi and a salad with rice vinegar dressing",
			"the bakery sells bread and chocolate cake every morning",
			"grapes strawberries and bananas filled the fruit bowl",
			"he grilled a steak and tossed pasta with garlic butter",
			"ice cream and apple pie closed out the dinner",
		},
		"music": {
			"the guitarist tuned while the pianist warmed up backstage",
			"jazz and blues records lined the shelves of the shop",
			"the drummer drove the rock band through the final chorus",
			"a violin and a flute carried the classical melody",
			"the bass and the saxophone traded solos all night",
			"country and electronic acts shared the festival stage",
		},
		"weather": {
			"a stormy night of thunder and lightning flooded the road",
			"the forecast calls for snow with freezing wind by morning",
			"fog and drizzle hung over the harbor until noon",
			"the drought broke when heavy rain soaked the fields",
			"hail and frost damaged the orchard overnight",
			"a humid scorching afternoon gave way to cloudy skies",
		},
		"tech": {
			"the compiler flagged an error in the network driver",
			"she debugged the algorithm on a terminal over ssh",
			"the server database crashed under the browser traffic",
			"new keyboard monitor and mouse arrived for the workstation",
			"the software update broke hardware encryption support",
			"the internet outage took the whole network offline",
		},
	}

	order := []string{"animals", "food", "music", "weather", "tech"}

	var documents []Document
	for _, category := range order {
		for _, text := range categories[category] {
			documents = append(documents, Document{Text: text, Label: category})
		}
	}
	return documents
}
