// internal/workers/data-access/query-postgresql/queries/opportunity.go
package queries

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"
)

func ActiveOpportunities(ctx context.Context, db *sql.DB, params map[string]interface{}) (interface{}, int, int64, error) {
	start := time.Now()

	limit := 100
	if v, ok := params["limit"].(int); ok && v > 0 {
		limit = v
	}

	rows, err := db.QueryContext(ctx, `
		SELECT o.id, o.company_id, o.title, o.min_semester, o.min_gpa,
		       o.required_skills, o.min_experience_years
		FROM opportunities o
		WHERE o.active = TRUE
		ORDER BY o.created_at DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, 0, 0, err
	}
	defer rows.Close()

	var results []map[string]interface{}
	for rows.Next() {
		record, err := scanOpportunity(rows)
		if err != nil {
			return nil, 0, 0, err
		}
		results = append(results, record)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, 0, err
	}

	execTime := time.Since(start).Milliseconds()
	return results, len(results), execTime, nil
}

func OpportunityDetails(ctx context.Context, db *sql.DB, params map[string]interface{}) (interface{}, int, int64, error) {
	opportunityID, ok := params["opportunityId"].(string)
	if !ok {
		return nil, 0, 0, ErrMissingParam
	}

	start := time.Now()

	var id, companyID, title, description string
	var minSemester, minExperienceYears int
	var minGPA sql.NullFloat64
	var skills []byte
	var active bool

	err := db.QueryRowContext(ctx, `
		SELECT id, company_id, title, description, min_semester, min_gpa,
		       required_skills, min_experience_years, active
		FROM opportunities
		WHERE id = $1`, opportunityID).Scan(
		&id, &companyID, &title, &description,
		&minSemester, &minGPA, &skills,
		&minExperienceYears, &active,
	)
	if err != nil {
		return nil, 0, 0, err
	}

	result := map[string]interface{}{
		"id":                 id,
		"companyId":          companyID,
		"title":              title,
		"description":        description,
		"minSemester":        minSemester,
		"requiredSkills":     unmarshalSkills(skills),
		"minExperienceYears": minExperienceYears,
		"active":             active,
	}
	if minGPA.Valid {
		result["minGpa"] = minGPA.Float64
	}

	execTime := time.Since(start).Milliseconds()
	return result, 1, execTime, nil
}

func CompanyProfile(ctx context.Context, db *sql.DB, params map[string]interface{}) (interface{}, int, int64, error) {
	companyID, ok := params["companyId"].(string)
	if !ok {
		return nil, 0, 0, ErrMissingParam
	}

	start := time.Now()

	var id, name, email, sector string
	var verified bool

	err := db.QueryRowContext(ctx, `
		SELECT id, name, contact_email, sector, verified
		FROM companies
		WHERE id = $1`, companyID).Scan(
		&id, &name, &email, &sector, &verified,
	)
	if err != nil {
		return nil, 0, 0, err
	}

	result := map[string]interface{}{
		"id":       id,
		"name":     name,
		"email":    email,
		"sector":   sector,
		"verified": verified,
	}

	execTime := time.Since(start).Milliseconds()
	return result, 1, execTime, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanOpportunity(rows rowScanner) (map[string]interface{}, error) {
	var id, companyID, title string
	var minSemester, minExperienceYears int
	var minGPA sql.NullFloat64
	var skills []byte

	if err := rows.Scan(&id, &companyID, &title, &minSemester, &minGPA, &skills, &minExperienceYears); err != nil {
		return nil, err
	}

	record := map[string]interface{}{
		"id":                 id,
		"companyId":          companyID,
		"title":              title,
		"minSemester":        minSemester,
		"requiredSkills":     unmarshalSkills(skills),
		"minExperienceYears": minExperienceYears,
	}
	if minGPA.Valid {
		record["minGpa"] = minGPA.Float64
	}
	return record, nil
}

func unmarshalSkills(raw []byte) []string {
	var skills []string
	if err := json.Unmarshal(raw, &skills); err != nil {
		return []string{}
	}
	return skills
}
