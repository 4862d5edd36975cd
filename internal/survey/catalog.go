package survey

// ChartKind selects how a view is drawn.
type ChartKind string

const (
	Pie        ChartKind = "pie"
	Bar        ChartKind = "bar"
	StackedBar ChartKind = "stacked_bar"
)

// View is one chart/narrative pair on a page.
type View struct {
	ID    string
	Title string
	Chart ChartKind
	// Primary is the charted column. For numeric columns Bins must be set and the chart
	// groups by band instead.
	Primary Column
	Band    Column
	Bins    *Bins
	// Segment splits each primary category (stacked bars); None for a plain pie.
	Segment Column
	Colors  map[string]string
	// Aliases shortens long category labels on the chart.
	Aliases   map[string]string
	Narrative string
}

// Page is a leaf of the navigation tree.
type Page struct {
	Menu  string
	Sub   string
	Title string
	Intro string
	Body  string
	Views []View
	// Crosstab marks the page with the selectable categorical X/Y pair.
	Crosstab bool
	// Headline asks the overview to compute the positive-answer metrics.
	Headline bool
	// Profile asks the overview to list per-column summaries.
	Profile bool
}

// Menu is a top-level navigation entry.
type Menu struct {
	Key   string
	Title string
	Pages []Page
}

var disciplineColors = map[string]string{
	"Sangat Tidak Membantu": "E74C3C",
	"Tidak Membantu":        "FADBD8",
	"Membantu":              "6FAED9",
	"Sangat Membantu":       "1F4E79",
}

var activityColors = map[string]string{
	"Study Case":           "6FAED9",
	"Kerja Kelompok OSADA": "1F4E79",
	"Materi di Kelas":      "E74C3C",
	"Wawancara":            "FADBD8",
}

var activityAliases = map[string]string{
	"Study Case materi: Etika dan Moral dalam Kehidupan Mahasiswa": "Study Case",
	"Kerja Kelompok terkait Penugasan OSADA":                       "Kerja Kelompok OSADA",
	"Penjelasan Materi di kelas":                                   "Materi di Kelas",
	"Wawancara HIMASADA":                                           "Wawancara",
}

var engagementColors = map[string]string{
	"Sangat Tidak Aktif": "E74C3C",
	"Tidak Aktif":        "FADBD8",
	"Aktif":              "6FAED9",
	"Sangat Aktif":       "1F4E79",
}

// Positive answers counted by the overview headline metrics.
var (
	PositiveDiscipline = []string{"Membantu", "Sangat Membantu"}
	PositiveActivity   = []string{"Aktif", "Sangat Aktif"}
)

var (
	weeklyHoursBins = Bins{
		Edges:  []float64{0, 5, 10, 15, 100},
		Labels: []string{"1–5 hours", "6–10 hours", "11–15 hours", ">15 hours"},
	}
	presentationBins = Bins{
		Edges:  []float64{-1, 0, 2, 4, 100},
		Labels: []string{"Never", "1–2 times", "3–4 times", "≥5 times"},
	}
	sleepLostBins = Bins{
		Edges:  []float64{0, 2, 5, 8, 100},
		Labels: []string{"0–2 hours", "3–5 hours", "6–8 hours", ">8 hours"},
	}
	newFriendsBins = Bins{
		Edges:         []float64{0, 5, 10, 20, 20},
		Labels:        []string{"1–5 people", "6–10 people", "11–20 people", ">20 people"},
		IncludeLowest: true,
		OpenTop:       true,
	}
)

const overviewBody = `OSADA (Orientasi Sains Data I) introduces new Data Science students to campus life:
the lecture system, lecturers, student organisations and the core values of the programme.
The orientation aims to prepare new students for their studies and to encourage them to take
part in campus life.

This report summarises the questionnaire answers: how much OSADA helped discipline, which
activities helped personal development most, how active students felt afterwards, and how
time spent, presentations, lost sleep and new friendships relate to those outcomes.`

const summaryBody = `OSADA shows a positive effect on new students. Discipline improved for most respondents,
with students spending 1–5 hours per week on OSADA tasks reporting the best progress.
Presentations during OSADA act as a catalyst for later campus activity, and motivation to join
organisations stays high even when sleep is reduced. New friendships formed during OSADA go
together with more active participation. Collaborative activities such as group work and case
studies are rated as the most effective for personal development.`

const recommendationBody = `Expand collaborative activities such as group discussions and team projects, which proved the
most effective. Keep task difficulty balanced so that it motivates without overwhelming.
Integrate OSADA more closely with other campus organisations, offer more presentation
opportunities to build confidence, and create mechanisms that help students widen their
circle of friends to sustain participation.`

const implicationBody = `OSADA can serve as a model for onboarding new students that other programmes could replicate.
The discipline it builds supports academic success and carries over into professional life,
and the organisational activity that grows after OSADA enriches students beyond the classroom,
balancing hard and soft skills. A well-structured orientation is a long-term investment in
student character and competence.`

var catalog = []Menu{
	{
		Key:   "overview",
		Title: "Overview",
		Pages: []Page{{
			Menu:     "overview",
			Sub:      "",
			Title:    "OSADA Impact Dashboard",
			Body:     overviewBody,
			Headline: true,
			Profile:  true,
		}},
	},
	{
		Key:   "visualisation",
		Title: "Visualisation & Results",
		Pages: []Page{
			{
				Menu:  "visualisation",
				Sub:   "discipline",
				Title: "OSADA Impact on Discipline",
				Views: []View{
					{
						ID:        "discipline-pie",
						Title:     "Perceived discipline improvement",
						Chart:     Pie,
						Primary:   DisciplineImpact,
						Colors:    disciplineColors,
						Narrative: "Most respondents say OSADA improved their discipline; the combined share of 'Membantu' and 'Sangat Membantu' answers is shown in the chart.",
					},
					{
						ID:        "discipline-cohort",
						Title:     "Discipline improvement by cohort",
						Chart:     StackedBar,
						Primary:   DisciplineImpact,
						Segment:   Cohort,
						Narrative: "Each bar splits an answer by enrolment cohort, showing whether newer cohorts report stronger discipline gains.",
					},
				},
			},
			{
				Menu:  "visualisation",
				Sub:   "activities",
				Title: "Activities that Helped Personal Development Most",
				Views: []View{
					{
						ID:        "activities-pie",
						Title:     "Most helpful OSADA activity",
						Chart:     Pie,
						Primary:   HelpfulActivity,
						Colors:    activityColors,
						Aliases:   activityAliases,
						Narrative: "Collaborative group assignments and case studies are the activities chosen most often as helpful for personal development.",
					},
					{
						ID:        "activities-cohort",
						Title:     "Most helpful activity by cohort (abbreviated)",
						Chart:     StackedBar,
						Primary:   HelpfulActivity,
						Segment:   Cohort,
						Aliases:   activityAliases,
						Narrative: "Cohorts differ in their preferred activity, but collaborative activities remain the first choice overall.",
					},
				},
			},
			{
				Menu:  "visualisation",
				Sub:   "engagement",
				Title: "Engagement after OSADA",
				Views: []View{
					{
						ID:        "engagement-pie",
						Title:     "Perceived engagement after OSADA",
						Chart:     Pie,
						Primary:   ActivityAfter,
						Colors:    engagementColors,
						Narrative: "The chart shows how active respondents feel in academic and non-academic campus activities after OSADA.",
					},
					{
						ID:        "engagement-cohort",
						Title:     "Engagement after OSADA by cohort",
						Chart:     StackedBar,
						Primary:   ActivityAfter,
						Segment:   Cohort,
						Narrative: "Splitting by cohort shows whether the effect on engagement persists beyond the newest intake.",
					},
				},
			},
		},
	},
	{
		Key:   "relationships",
		Title: "Relationships between Variables",
		Pages: []Page{
			{
				Menu:     "relationships",
				Sub:      "categorical",
				Title:    "Relationships between Categorical Variables",
				Intro:    "Cross-distribution of two categorical questions as a stacked bar chart with automatic interpretation.",
				Crosstab: true,
			},
			{
				Menu:  "relationships",
				Sub:   "numeric",
				Title: "Relationships between Numeric and Categorical Variables",
				Intro: "How the amount of OSADA activity relates to the outcomes students report.",
				Views: []View{
					{
						ID:        "hours-discipline",
						Title:     "Weekly task hours vs discipline",
						Chart:     StackedBar,
						Primary:   WeeklyTaskHours,
						Band:      WeeklyTaskHoursBand,
						Bins:      &weeklyHoursBins,
						Segment:   DisciplineImpact,
						Narrative: "Students who spend fewer hours per week on OSADA tasks report the strongest discipline gains, suggesting that efficient time management supports disciplined habits.",
					},
					{
						ID:        "presentations-engagement",
						Title:     "Presentations vs engagement after OSADA",
						Chart:     StackedBar,
						Primary:   Presentations,
						Band:      PresentationsBand,
						Bins:      &presentationBins,
						Segment:   ActivityAfter,
						Narrative: "Presenting once or twice already goes with higher engagement, yet many students who never presented still feel active, hinting that presentation opportunities were unevenly distributed.",
					},
					{
						ID:        "sleep-motivation",
						Title:     "Sleep lost vs motivation to join organisations",
						Chart:     StackedBar,
						Primary:   SleepLost,
						Band:      SleepLostBand,
						Bins:      &sleepLostBins,
						Segment:   OrgMotivation,
						Narrative: "Most students stay motivated despite losing sleep, although heavy sleep loss goes with a lower share of motivated answers.",
					},
					{
						ID:        "friends-engagement",
						Title:     "New friends vs engagement after OSADA",
						Chart:     StackedBar,
						Primary:   NewFriends,
						Band:      NewFriendsBand,
						Bins:      &newFriendsBins,
						Segment:   ActivityAfter,
						Narrative: "Respondents who made more than twenty new friends are almost all active, while those with few new friends tend to be less active.",
					},
				},
			},
		},
	},
	{
		Key:   "conclusions",
		Title: "Conclusions",
		Pages: []Page{
			{Menu: "conclusions", Sub: "summary", Title: "Summary of Findings", Body: summaryBody},
			{Menu: "conclusions", Sub: "recommendations", Title: "Recommendations", Body: recommendationBody},
			{Menu: "conclusions", Sub: "implications", Title: "Implications", Body: implicationBody},
		},
	},
}

// Catalog returns the navigation tree. Callers must not modify the returned views' maps.
func Catalog() []Menu { return catalog }

// FindPage looks up a page by menu key and sub key. An empty sub selects the first page.
func FindPage(menu, sub string) (Page, bool) {
	for _, m := range catalog {
		if m.Key != menu {
			continue
		}
		for _, p := range m.Pages {
			if sub == "" || p.Sub == sub {
				return p, true
			}
		}
	}
	return Page{}, false
}

// FindView looks up a view by its ID across all pages.
func FindView(id string) (View, bool) {
	for _, m := range catalog {
		for _, p := range m.Pages {
			for _, v := range p.Views {
				if v.ID == id {
					return v, true
				}
			}
		}
	}
	return View{}, false
}

// Label returns the alias for a category label, or the label itself.
func (v View) Label(category string) string {
	if a, ok := v.Aliases[category]; ok {
		return a
	}
	return category
}

// ColorsFor returns the category colours of a column, keyed by the chart label.
func ColorsFor(c Column) map[string]string {
	switch c {
	case DisciplineImpact:
		return disciplineColors
	case HelpfulActivity:
		return activityColors
	case ActivityAfter:
		return engagementColors
	}
	return nil
}

var levelOrder = map[Column][]string{
	TaskDifficulty:   {"1", "2", "3", "4"},
	DisciplineImpact: {"Sangat Tidak Membantu", "Tidak Membantu", "Membantu", "Sangat Membantu"},
	ActivityAfter:    {"Sangat Tidak Aktif", "Tidak Aktif", "Aktif", "Sangat Aktif"},
}

// LevelOrder returns the answer scale of an ordinal column, lowest first, or nil.
func LevelOrder(c Column) []string {
	return levelOrder[c]
}
