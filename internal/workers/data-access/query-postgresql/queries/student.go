// internal/workers/data-access/query-postgresql/queries/student.go
package queries

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"
)

func StudentProfile(ctx context.Context, db *sql.DB, params map[string]interface{}) (interface{}, int, int64, error) {
	studentID, ok := params["studentId"].(string)
	if !ok {
		return nil, 0, 0, ErrMissingParam
	}

	start := time.Now()

	var id, name, email, phone string
	var semester, experienceCount, projectCount int
	var gpa float64
	var available bool
	var skills []byte

	err := db.QueryRowContext(ctx, `
		SELECT s.id, s.name, s.email, COALESCE(s.phone, ''), s.semester, s.gpa,
		       s.technical_skills, s.available,
		       (SELECT COUNT(*) FROM student_experiences e WHERE e.student_id = s.id),
		       (SELECT COUNT(*) FROM student_projects p WHERE p.student_id = s.id)
		FROM students s
		WHERE s.id = $1`, studentID).Scan(
		&id, &name, &email, &phone,
		&semester, &gpa, &skills, &available,
		&experienceCount, &projectCount,
	)
	if err != nil {
		return nil, 0, 0, err
	}

	var technicalSkills []string
	if err := json.Unmarshal(skills, &technicalSkills); err != nil {
		technicalSkills = []string{}
	}

	result := map[string]interface{}{
		"id":              id,
		"name":            name,
		"email":           email,
		"phone":           phone,
		"semester":        semester,
		"gpa":             gpa,
		"technicalSkills": technicalSkills,
		"available":       available,
		"experienceCount": experienceCount,
		"projectCount":    projectCount,
	}

	execTime := time.Since(start).Milliseconds()
	return result, 1, execTime, nil
}
