package quran

import "github.com/Nixie-Tech-LLC/tarjumo/internal/model"

const (
	SurahCount = 114
	JuzCount   = 30
)

var juzTable = []model.JuzInfo{
	{Number: 1, NameArabic: "الجُزْءُ الْأَوَّلُ", NameSindhi: "پهريون پارو", StartSurah: 1, EndSurah: 2, StartVerse: 1, EndVerse: 141},
	{Number: 2, NameArabic: "الجُزْءُ الثَّانِي", NameSindhi: "ٻيون پارو", StartSurah: 2, EndSurah: 2, StartVerse: 142, EndVerse: 252},
	{Number: 3, NameArabic: "الجُزْءُ الثَّالِثُ", NameSindhi: "ٽيون پارو", StartSurah: 2, EndSurah: 3, StartVerse: 253, EndVerse: 92},
	{Number: 4, NameArabic: "الجُزْءُ الرَّابِعُ", NameSindhi: "چوٿون پارو", StartSurah: 3, EndSurah: 4, StartVerse: 93, EndVerse: 23},
	{Number: 5, NameArabic: "الجُزْءُ الْخَامِسُ", NameSindhi: "پنجون پارو", StartSurah: 4, EndSurah: 4, StartVerse: 24, EndVerse: 147},
	{Number: 6, NameArabic: "الجُزْءُ السَّادِسُ", NameSindhi: "ڇهون پارو", StartSurah: 4, EndSurah: 5, StartVerse: 148, EndVerse: 81},
	{Number: 7, NameArabic: "الجُزْءُ السَّابِعُ", NameSindhi: "ستون پارو", StartSurah: 5, EndSurah: 6, StartVerse: 82, EndVerse: 110},
	{Number: 8, NameArabic: "الجُزْءُ الثَّامِنُ", NameSindhi: "اٺون پارو", StartSurah: 6, EndSurah: 7, StartVerse: 111, EndVerse: 87},
	{Number: 9, NameArabic: "الجُزْءُ التَّاسِعُ", NameSindhi: "نائون پارو", StartSurah: 7, EndSurah: 8, StartVerse: 88, EndVerse: 40},
	{Number: 10, NameArabic: "الجُزْءُ الْعَاشِرُ", NameSindhi: "ڏهون پارو", StartSurah: 8, EndSurah: 9, StartVerse: 41, EndVerse: 92},
	{Number: 11, NameArabic: "الجُزْءُ الْحَادِي عَشَرَ", NameSindhi: "يارهون پارو", StartSurah: 9, EndSurah: 11, StartVerse: 93, EndVerse: 5},
	{Number: 12, NameArabic: "الجُزْءُ الثَّانِي عَشَرَ", NameSindhi: "ٻارهون پارو", StartSurah: 11, EndSurah: 12, StartVerse: 6, EndVerse: 52},
	{Number: 13, NameArabic: "الجُزْءُ الثَّالِثَ عَشَرَ", NameSindhi: "تيرهون پارو", StartSurah: 12, EndSurah: 14, StartVerse: 53, EndVerse: 52},
	{Number: 14, NameArabic: "الجُزْءُ الرَّابِعَ عَشَرَ", NameSindhi: "چوڏهون پارو", StartSurah: 15, EndSurah: 16, StartVerse: 1, EndVerse: 128},
	{Number: 15, NameArabic: "الجُزْءُ الْخَامِسَ عَشَرَ", NameSindhi: "پندرهون پارو", StartSurah: 17, EndSurah: 18, StartVerse: 1, EndVerse: 74},
	{Number: 16, NameArabic: "الجُزْءُ السَّادِسَ عَشَرَ", NameSindhi: "سورهون پارو", StartSurah: 18, EndSurah: 20, StartVerse: 75, EndVerse: 135},
	{Number: 17, NameArabic: "الجُزْءُ السَّابِعَ عَشَرَ", NameSindhi: "ستارهون پارو", StartSurah: 21, EndSurah: 22, StartVerse: 1, EndVerse: 78},
	{Number: 18, NameArabic: "الجُزْءُ الثَّامِنَ عَشَرَ", NameSindhi: "ارڙهون پارو", StartSurah: 23, EndSurah: 25, StartVerse: 1, EndVerse: 20},
	{Number: 19, NameArabic: "الجُزْءُ التَّاسِعَ عَشَرَ", NameSindhi: "اڻويهون پارو", StartSurah: 25, EndSurah: 27, StartVerse: 21, EndVerse: 55},
	{Number: 20, NameArabic: "الجُزْءُ الْعِشْرُونَ", NameSindhi: "ويهون پارو", StartSurah: 27, EndSurah: 29, StartVerse: 56, EndVerse: 45},
	{Number: 21, NameArabic: "الجُزْءُ الْحَادِي وَالْعِشْرُونَ", NameSindhi: "ايڪويهون پارو", StartSurah: 29, EndSurah: 33, StartVerse: 46, EndVerse: 30},
	{Number: 22, NameArabic: "الجُزْءُ الثَّانِي وَالْعِشْرُونَ", NameSindhi: "ٻاويهون پارو", StartSurah: 33, EndSurah: 36, StartVerse: 31, EndVerse: 27},
	{Number: 23, NameArabic: "الجُزْءُ الثَّالِثُ وَالْعِشْرُونَ", NameSindhi: "ٽيويهون پارو", StartSurah: 36, EndSurah: 39, StartVerse: 28, EndVerse: 31},
	{Number: 24, NameArabic: "الجُزْءُ الرَّابِعُ وَالْعِشْرُونَ", NameSindhi: "چوويهون پارو", StartSurah: 39, EndSurah: 41, StartVerse: 32, EndVerse: 46},
	{Number: 25, NameArabic: "الجُزْءُ الْخَامِسُ وَالْعِشْرُونَ", NameSindhi: "پنجويهون پارو", StartSurah: 41, EndSurah: 45, StartVerse: 47, EndVerse: 37},
	{Number: 26, NameArabic: "الجُزْءُ السَّادِسُ وَالْعِشْرُونَ", NameSindhi: "ڇهويهون پارو", StartSurah: 46, EndSurah: 51, StartVerse: 1, EndVerse: 30},
	{Number: 27, NameArabic: "الجُزْءُ السَّابِعُ وَالْعِشْرُونَ", NameSindhi: "ستويهون پارو", StartSurah: 51, EndSurah: 57, StartVerse: 31, EndVerse: 29},
	{Number: 28, NameArabic: "الجُزْءُ الثَّامِنُ وَالْعِشْرُونَ", NameSindhi: "اٺويهون پارو", StartSurah: 58, EndSurah: 66, StartVerse: 1, EndVerse: 12},
	{Number: 29, NameArabic: "الجُزْءُ التَّاسِعُ وَالْعِشْرُونَ", NameSindhi: "اڻتيهون پارو", StartSurah: 67, EndSurah: 77, StartVerse: 1, EndVerse: 50},
	{Number: 30, NameArabic: "الجُزْءُ الثَّلَاثُونَ", NameSindhi: "ٽيهون پارو", StartSurah: 78, EndSurah: 114, StartVerse: 1, EndVerse: 6},
}

// JuzList returns a copy of the Juz table.
func JuzList() []model.JuzInfo {
	out := make([]model.JuzInfo, len(juzTable))
	copy(out, juzTable)
	return out
}

// JuzByNumber returns the table entry for n (1..30).
func JuzByNumber(n int) (model.JuzInfo, bool) {
	if n < 1 || n > JuzCount {
		return model.JuzInfo{}, false
	}
	return juzTable[n-1], true
}

// SurahParams lists every surah number, used for sitemap and cache warm-up.
func SurahParams() []int {
	return sequence(SurahCount)
}

// JuzParams lists every juz number.
func JuzParams() []int {
	return sequence(JuzCount)
}

func sequence(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i + 1
	}
	return out
}
