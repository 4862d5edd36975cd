package insight

import "golang.org/x/text/language"

// Phrasebook holds the sentence templates of one language. Argument order is fixed across
// languages so templates can be swapped freely.
type Phrasebook struct {
	// category, column, percent
	ClearDominance string
	// category, column
	Majority string
	// column
	Balanced string
	// category, column
	MildTendency string

	// column
	SkewHigh     string
	SkewLow      string
	SkewBalanced string

	// x column, y column
	Strong        string
	Moderate      string
	Weak          string
	NoRelation    string
	Insufficient  string
	NotComputable string

	// y column, y category, mean percent, x column, x group, group percent
	TopAverage string
}

var English = Phrasebook{
	ClearDominance: `Category '%s' dominates "%s" with a share of about %.1f%%.`,
	Majority:       `Most respondents chose '%s' for "%s", indicating a strong preference.`,
	Balanced:       `There is no clear dominance in "%s"; the distribution across categories is relatively balanced.`,
	MildTendency:   `There is a mild tendency toward '%s' in "%s", although the margin over other categories is not decisive.`,

	SkewHigh:     `The distribution of "%s" leans toward high values (most respondents found it hard).`,
	SkewLow:      `The distribution of "%s" leans toward low values (most respondents found it easy).`,
	SkewBalanced: `The distribution of "%s" is relatively balanced, with no dominant value.`,

	Strong:        `There is a strong relationship between "%s" and "%s".`,
	Moderate:      `There is a moderately strong relationship between "%s" and "%s".`,
	Weak:          `There is a weak relationship between "%s" and "%s".`,
	NoRelation:    `There is no meaningful relationship between "%s" and "%s".`,
	Insufficient:  `The relationship between "%s" and "%s" could not be computed: insufficient data.`,
	NotComputable: `The relationship between "%s" and "%s" could not be computed for this table.`,

	TopAverage: `For "%s", the category '%s' has the highest average share, %.1f%%, across the groups of "%s"; it peaks in group '%s' at %.1f%%.`,
}

var Indonesian = Phrasebook{
	ClearDominance: `Kategori '%s' mendominasi pada variabel "%s" dengan proporsi sekitar %.1f%%.`,
	Majority:       `Sebagian besar responden memilih '%s' pada variabel "%s", menunjukkan kecenderungan kuat.`,
	Balanced:       `Tidak ada dominasi yang jelas pada variabel "%s"; distribusi antar kategori relatif seimbang.`,
	MildTendency:   `Ada kecenderungan ke arah kategori '%s' pada variabel "%s", meskipun selisih dengan kategori lain tidak terlalu besar.`,

	SkewHigh:     `Pola distribusi menunjukkan kecenderungan ke arah nilai tinggi pada "%s" (mayoritas merasa sulit).`,
	SkewLow:      `Distribusi cenderung ke arah nilai rendah pada "%s" (mayoritas merasa mudah).`,
	SkewBalanced: `Distribusi relatif seimbang di "%s", tanpa dominasi nilai tertentu.`,

	Strong:        `Ada hubungan yang kuat antara "%s" dan "%s".`,
	Moderate:      `Ada hubungan yang cukup kuat antara "%s" dan "%s".`,
	Weak:          `Ada hubungan yang lemah antara "%s" dan "%s".`,
	NoRelation:    `Tidak terdapat hubungan yang berarti antara "%s" dan "%s".`,
	Insufficient:  `Hubungan antara "%s" dan "%s" tidak dapat dihitung: data tidak mencukupi.`,
	NotComputable: `Hubungan antara "%s" dan "%s" tidak dapat dihitung untuk tabel ini.`,

	TopAverage: `Berdasarkan hasil crosstab, variabel "%s" menunjukkan bahwa kategori '%s' memiliki proporsi rata-rata tertinggi sebesar %.1f%% di seluruh kelompok "%s"; proporsi tertinggi untuk kategori tersebut ditemukan pada kelompok '%s' dengan nilai sebesar %.1f%%.`,
}

var (
	supported = []language.Tag{language.English, language.Indonesian}
	books     = []Phrasebook{English, Indonesian}
	matcher   = language.NewMatcher(supported)
)

// PhrasebookFor picks the closest supported phrasebook for a BCP 47 tag such as "en",
// "id" or "id-ID". Unknown or empty tags fall back to English.
func PhrasebookFor(tag string) Phrasebook {
	if tag == "" {
		return English
	}
	_, idx := language.MatchStrings(matcher, tag)
	if idx < 0 || idx >= len(books) {
		return English
	}
	return books[idx]
}
