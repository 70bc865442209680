// Package knowledge holds the static vocabularies used by the heuristic scorers:
// skill synonyms and categories, city regions and keyword maps for remote work,
// education levels and work models.
package knowledge

// Education level names, ordered from lowest to highest.
const (
	LevelVocational = "vocational"
	LevelBachelor   = "bachelor"
	LevelMaster     = "master"
	LevelDoctorate  = "doctorate"
	LevelProfessor  = "professor"
)

// Work model names.
const (
	ModelFullTime       = "full-time"
	ModelPartTime       = "part-time"
	ModelProject        = "project"
	ModelInternship     = "internship"
	ModelApprenticeship = "apprenticeship"
	ModelFlexible       = "flexible"
)

// EducationLevels lists the recognised education levels in ascending order.
var EducationLevels = []string{LevelVocational, LevelBachelor, LevelMaster, LevelDoctorate, LevelProfessor}

// WorkModels lists the recognised work models in classification order.
// Earlier entries win when a text mentions several models, except that
// explicit working hours win over project wording.
var WorkModels = []string{ModelFlexible, ModelInternship, ModelApprenticeship, ModelProject, ModelPartTime, ModelFullTime}

// Tables is the externally loadable knowledge base.
type Tables struct {
	Synonyms       [][]string          `mapstructure:"synonyms" json:"synonyms" validate:"dive,min=2"`
	Categories     map[string][]string `mapstructure:"categories" json:"categories" validate:"dive,min=1"`
	Regions        map[string][]string `mapstructure:"regions" json:"regions" validate:"dive,min=1"`
	RemoteKeywords []string            `mapstructure:"remote-keywords" json:"remote_keywords"`
	HybridKeywords []string            `mapstructure:"hybrid-keywords" json:"hybrid_keywords"`
	Education      map[string][]string `mapstructure:"education" json:"education" validate:"dive,keys,oneof=vocational bachelor master doctorate professor,endkeys,min=1"`
	WorkModels     map[string][]string `mapstructure:"work-models" json:"work_models" validate:"dive,keys,oneof=full-time part-time project internship apprenticeship flexible,endkeys,min=1"`
}

// Default returns the compiled-in knowledge base. Each call returns a fresh copy.
func Default() Tables {
	return Tables{
		Synonyms: [][]string{
			{"javascript", "js", "ecmascript"},
			{"typescript", "ts"},
			{"golang", "go"},
			{"kubernetes", "k8s"},
			{"postgresql", "postgres", "psql"},
			{"nodejs", "node"},
			{"reactjs", "react"},
			{"vuejs", "vue"},
			{"angularjs", "angular"},
			{"c#", "csharp"},
			{"c++", "cpp"},
			{"python", "py"},
			{"machine-learning", "ml"},
			{"artificial-intelligence", "ai"},
			{"amazon-web-services", "aws"},
			{"google-cloud", "gcp"},
			{"microsoft-azure", "azure"},
			{"ci-cd", "cicd", "continuous-integration"},
			{"sap-hana", "hana"},
			{"mssql", "sql-server"},
			{"excel", "ms-excel"},
			{"buchhaltung", "accounting", "finanzbuchhaltung"},
			{"projektmanagement", "project-management"},
			{"vertrieb", "sales"},
			{"personalwesen", "hr", "human-resources"},
		},
		Categories: map[string][]string{
			"frontend":   {"react", "reactjs", "vue", "vuejs", "angular", "angularjs", "svelte", "html", "css", "sass", "typescript", "javascript", "jquery", "nextjs", "tailwind"},
			"backend":    {"node", "nodejs", "express", "django", "flask", "spring", "spring-boot", "laravel", "rails", "fastapi", "nestjs", "graphql", "rest"},
			"languages":  {"java", "python", "golang", "go", "rust", "kotlin", "scala", "c#", "c++", "php", "ruby", "swift"},
			"databases":  {"postgresql", "postgres", "mysql", "mariadb", "mongodb", "redis", "oracle", "mssql", "sqlite", "elasticsearch", "cassandra", "sql"},
			"devops":     {"docker", "kubernetes", "k8s", "terraform", "ansible", "jenkins", "gitlab", "ci-cd", "helm", "prometheus", "grafana", "linux"},
			"cloud":      {"aws", "azure", "gcp", "google-cloud", "amazon-web-services", "microsoft-azure", "openstack"},
			"data":       {"pandas", "numpy", "spark", "hadoop", "tableau", "power-bi", "machine-learning", "tensorflow", "pytorch", "statistics"},
			"erp":        {"sap", "sap-hana", "datev", "navision", "dynamics", "abap"},
			"office":     {"excel", "word", "powerpoint", "outlook", "ms-office", "ms-excel"},
			"finance":    {"buchhaltung", "accounting", "controlling", "bilanzierung", "steuern", "lohnbuchhaltung"},
			"management": {"projektmanagement", "project-management", "scrum", "kanban", "agile", "prince2", "pmp", "leadership"},
		},
		Regions: map[string][]string{
			"berlin-brandenburg": {"berlin", "potsdam", "cottbus", "brandenburg", "oranienburg", "bernau"},
			"hamburg":            {"hamburg", "norderstedt", "pinneberg", "lüneburg", "buxtehude"},
			"rhein-ruhr":         {"düsseldorf", "köln", "essen", "dortmund", "duisburg", "bochum", "wuppertal", "gelsenkirchen", "mönchengladbach", "oberhausen", "neuss", "leverkusen", "bonn", "krefeld"},
			"rhein-main":         {"frankfurt", "wiesbaden", "mainz", "darmstadt", "offenbach", "hanau", "bad homburg"},
			"munich":             {"münchen", "munich", "augsburg", "ingolstadt", "rosenheim", "freising", "erding"},
			"stuttgart":          {"stuttgart", "esslingen", "ludwigsburg", "böblingen", "sindelfingen", "reutlingen", "tübingen", "heilbronn"},
			"rhein-neckar":       {"mannheim", "heidelberg", "ludwigshafen", "karlsruhe", "walldorf"},
			"saxony":             {"dresden", "leipzig", "chemnitz", "zwickau", "halle"},
			"hanover":            {"hannover", "hanover", "braunschweig", "hildesheim", "wolfsburg", "celle"},
			"nuremberg":          {"nürnberg", "nuremberg", "fürth", "erlangen", "bamberg"},
			"bremen":             {"bremen", "oldenburg", "bremerhaven", "delmenhorst"},
			"vienna":             {"wien", "vienna", "st. pölten", "mödling"},
			"zurich":             {"zürich", "zurich", "winterthur", "baden", "zug"},
		},
		RemoteKeywords: []string{
			"remote", "fully remote", "homeoffice", "home office", "home-office",
			"work from home", "wfh", "telearbeit", "mobiles arbeiten", "remote work",
			"anywhere", "100% remote", "von zuhause",
		},
		HybridKeywords: []string{
			"hybrid", "teilweise remote", "teilweise homeoffice", "partial remote",
			"partly remote", "remote möglich", "homeoffice möglich", "flexible location",
		},
		Education: map[string][]string{
			LevelVocational: {"ausbildung", "berufsausbildung", "vocational", "apprenticeship", "abgeschlossene ausbildung", "meister", "techniker", "fachwirt", "certificate", "trade school", "lehre"},
			LevelBachelor:   {"bachelor", "bsc", "ba", "beng", "bachelors", "undergraduate", "fachhochschule", "fh", "studium", "hochschulabschluss", "university degree", "college degree"},
			LevelMaster:     {"master", "msc", "ma", "meng", "mba", "masters", "diplom", "diplom-ingenieur", "dipl-ing", "dipl", "magister", "staatsexamen", "graduate degree"},
			LevelDoctorate:  {"phd", "doctorate", "doctoral", "doktor", "dr", "promotion", "promoviert", "dphil"},
			LevelProfessor:  {"professor", "prof", "habilitation", "habil", "professorship"},
		},
		WorkModels: map[string][]string{
			ModelFlexible:       {"flexible", "flexibel", "egal", "beliebig", "open to all", "any model"},
			ModelInternship:     {"internship", "intern", "praktikum", "praktikant", "pflichtpraktikum"},
			ModelApprenticeship: {"apprenticeship", "apprentice", "ausbildung", "azubi", "duales studium", "trainee"},
			ModelProject:        {"project", "projekt", "freelance", "freelancer", "freiberuflich", "contractor", "contract basis", "fixed-term contract", "interim", "projektbasis"},
			ModelPartTime:       {"part-time", "part time", "parttime", "teilzeit", "minijob", "werkstudent", "working student"},
			ModelFullTime:       {"full-time", "full time", "fulltime", "vollzeit", "festanstellung", "permanent"},
		},
	}
}
