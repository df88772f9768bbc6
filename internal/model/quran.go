package model

// Chapter is one entry of the surah index.
type Chapter struct {
	Chapter     int    `json:"chapter"`
	Name        string `json:"name"`
	EnglishName string `json:"englishName"`
	AyahCount   int    `json:"ayahCount"`
}

type Ayah struct {
	Number        int    `json:"number"`
	NumberInSurah int    `json:"numberInSurah"`
	Text          string `json:"text"`
	Translation   string `json:"translation"`
}

type Surah struct {
	Number                 int    `json:"number"`
	Name                   string `json:"name"`
	EnglishName            string `json:"englishName"`
	EnglishNameTranslation string `json:"englishNameTranslation"`
	RevelationType         string `json:"revelationType"`
	Ayahs                  []Ayah `json:"ayahs"`
}

// JuzInfo describes where a Juz starts and ends.
type JuzInfo struct {
	Number     int    `json:"number"`
	NameArabic string `json:"nameArabic"`
	NameSindhi string `json:"nameSindhi"`
	StartSurah int    `json:"startSurah"`
	EndSurah   int    `json:"endSurah"`
	StartVerse int    `json:"startVerse"`
	EndVerse   int    `json:"endVerse"`
}

type JuzVerse struct {
	VerseKey    string `json:"verseKey"`
	VerseNumber int    `json:"verseNumber"`
	Text        string `json:"text"`
	Translation string `json:"translation"`
}

type Juz struct {
	Number     int        `json:"number"`
	NameArabic string     `json:"nameArabic"`
	Verses     []JuzVerse `json:"verses"`
}
