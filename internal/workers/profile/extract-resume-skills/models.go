// internal/workers/profile/extract-resume-skills/models.go
package extractresumeskills

type Input struct {
	StudentID  string `json:"studentId"`
	ResumeText string `json:"resumeText"`
}

type Output struct {
	StudentID   string   `json:"studentId"`
	Skills      []string `json:"skills"`
	Degree      string   `json:"degree,omitempty"`
	Semester    int      `json:"semester,omitempty"`
	GPA         float64  `json:"gpa,omitempty"`
	Projects    []string `json:"projects"`
	Experiences []string `json:"experiences"`
}
