// internal/workers/profile/extract-resume-skills/catalog.go
package extractresumeskills

// skillCatalog maps a lowercase keyword found in resume text to its
// canonical display name.
var skillCatalog = map[string]string{
	"python":           "Python",
	"java":             "Java",
	"javascript":       "JavaScript",
	"typescript":       "TypeScript",
	"c++":              "C++",
	"c#":               "C#",
	"ruby":             "Ruby",
	"php":              "PHP",
	"golang":           "Go",
	"rust":             "Rust",
	"kotlin":           "Kotlin",
	"sql":              "SQL",
	"postgres":         "PostgreSQL",
	"postgresql":       "PostgreSQL",
	"mysql":            "MySQL",
	"mongodb":          "MongoDB",
	"nosql":            "NoSQL",
	"oracle":           "Oracle",
	"sqlite":           "SQLite",
	"docker":           "Docker",
	"kubernetes":       "Kubernetes",
	"jenkins":          "Jenkins",
	"gitlab":           "GitLab",
	"github":           "GitHub",
	"git":              "Git",
	"machine learning": "Machine Learning",
	"deep learning":    "Deep Learning",
	"data science":     "Data Science",
	"pandas":           "Pandas",
	"numpy":            "NumPy",
	"scikit-learn":     "Scikit-Learn",
	"react":            "React",
	"angular":          "Angular",
	"vue":              "Vue",
	"node":             "Node.js",
	"nodejs":           "Node.js",
	"express":          "Express",
	"aws":              "AWS",
	"azure":            "Azure",
	"gcp":              "GCP",
	"devops":           "DevOps",
	"html":             "HTML",
	"css":              "CSS",
	"bootstrap":        "Bootstrap",
	"tailwind":         "Tailwind",
	"tensorflow":       "TensorFlow",
	"pytorch":          "PyTorch",
	"keras":            "Keras",
	"nlp":              "NLP",
	"graphql":          "GraphQL",
	"rest":             "REST",
	"websocket":        "WebSocket",
	"agile":            "Agile",
	"scrum":            "Scrum",
	"kanban":           "Kanban",
	"jira":             "Jira",
	"linux":            "Linux",
	"excel":            "Excel",
	"tableau":          "Tableau",
	"power bi":         "Power BI",
	"selenium":         "Selenium",
	"pytest":           "Pytest",
	"fastapi":          "FastAPI",
	"django":           "Django",
	"flask":            "Flask",
	"spring":           "Spring",
	"redis":            "Redis",
	"elasticsearch":    "Elasticsearch",
	"rabbitmq":         "RabbitMQ",
	"kafka":            "Kafka",
}

// sectionKeywords mark resume section headings; scanning a section stops
// when a heading of a different section appears.
var (
	skillSectionKeywords      = []string{"habilidad", "skills", "competencia"}
	projectSectionKeywords    = []string{"proyecto", "portfolio"}
	experienceSectionKeywords = []string{"experiencia", "laboral", "profesional", "empleo"}
	educationSectionKeywords  = []string{"carrera", "estudios", "formación", "educación", "licenciatura"}
	degreeKeywords            = []string{"ingenier", "licenci", "lic.", "técnic", "grado", "pregrado"}
)
