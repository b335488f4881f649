package entities

// Book is keyed by title and author; Reviews holds what the model wrote about it.
type Book struct {
	Title   string   `json:"title" jsonschema_description:"Title of the book"`
	Author  string   `json:"author" jsonschema_description:"Author of the book"`
	Reviews []string `json:"reviews,omitempty" jsonschema_description:"Short reviews written for this book"`
}

type BookRecommendation struct {
	Title            string  `json:"title" jsonschema_description:"Title of the recommended book"`
	Author           string  `json:"author" jsonschema_description:"Author of the recommended book"`
	SimilarityReason string  `json:"similarityReason" jsonschema_description:"Brief description of why the book is similar"`
	Rating           float64 `json:"rating" jsonschema_description:"Estimated rating out of 5"`
}

// Player is keyed by the sportsperson's name.
type Player struct {
	Player       string   `json:"player" jsonschema_description:"Name of the sportsperson"`
	Achievements []string `json:"achievements" jsonschema_description:"Career achievements of the sportsperson"`
}

type Achievement struct {
	Description string `json:"description" jsonschema_description:"Description of a single career achievement"`
	Player      string `json:"player,omitempty" jsonschema_description:"Sportsperson the achievement belongs to"`
}
