package model

type HadithCollection struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Available int    `json:"available"`
}

// HadithText is the source text of a hadith as returned by a text provider.
type HadithText struct {
	Arabic string
	Urdu   string
	Source string
}

type HadithMeta struct {
	Source     string  `json:"source"`
	TextSource string  `json:"textSource"`
	Provider   string  `json:"provider,omitempty"`
	Score      float64 `json:"score"`
	Note       string  `json:"note"`
}

// Hadith is a hadith with its resolved Sindhi translation. Missing texts are
// encoded as null.
type Hadith struct {
	Collection string     `json:"collection"`
	Number     int        `json:"number"`
	Arabic     *string    `json:"arabic"`
	Urdu       *string    `json:"urdu"`
	Sindhi     *string    `json:"sindhi"`
	Meta       HadithMeta `json:"meta"`
}
