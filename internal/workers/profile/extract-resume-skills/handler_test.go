package extractresumeskills

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"unrc-workers/internal/common/logger"
)

const sampleResume = `Carlos Gómez
Estudiante avanzado
Semestre: 7
Promedio: 8.2

HABILIDADES:
Python, SQL, Docker

EXPERIENCIA LABORAL
Pasantía en desarrollo backend con FastAPI
Soporte técnico en sala de servidores

PROYECTOS
Sistema de gestión de biblioteca en Django
Bot de avisos de cátedra

EDUCACIÓN
Ingeniería en Computación`

func createTestConfig() *Config {
	return &Config{
		Timeout: 5 * time.Second,
	}
}

func createTestLogger(t *testing.T) logger.Logger {
	return logger.NewZapAdapter(zaptest.NewLogger(t))
}

func TestHandler_Execute_FullResume(t *testing.T) {
	handler := NewHandler(createTestConfig(), createTestLogger(t))

	output, err := handler.Execute(context.Background(), &Input{
		StudentID:  "student-1",
		ResumeText: sampleResume,
	})

	require.NoError(t, err)
	require.NotNil(t, output)

	assert.Equal(t, "student-1", output.StudentID)
	assert.ElementsMatch(t,
		[]string{"Python", "SQL", "Docker", "FastAPI", "Django"},
		output.Skills,
	)
	assert.Equal(t, "Ingeniería en Computación", output.Degree)
	assert.Equal(t, 7, output.Semester)
	assert.Equal(t, 8.2, output.GPA)

	assert.Equal(t, []string{
		"Sistema de gestión de biblioteca en Django",
		"Bot de avisos de cátedra",
	}, output.Projects)
	assert.Equal(t, []string{
		"Pasantía en desarrollo backend con FastAPI",
		"Soporte técnico en sala de servidores",
	}, output.Experiences)
}

func TestHandler_Execute_EmptyResume(t *testing.T) {
	handler := NewHandler(createTestConfig(), createTestLogger(t))

	output, err := handler.Execute(context.Background(), &Input{
		StudentID:  "student-1",
		ResumeText: "   \n  ",
	})

	assert.ErrorIs(t, err, ErrResumeParseFailed)
	assert.Nil(t, output)
}

func TestHandler_Execute_NilInput(t *testing.T) {
	handler := NewHandler(createTestConfig(), createTestLogger(t))

	output, err := handler.Execute(context.Background(), nil)

	assert.ErrorIs(t, err, ErrResumeParseFailed)
	assert.Nil(t, output)
}

func TestParseResume_SkillCanonicalization(t *testing.T) {
	output := parseResume("Trabajo diario con postgres, nodejs y golang.")

	assert.ElementsMatch(t, []string{"PostgreSQL", "Node.js", "Go"}, output.Skills)
}

func TestParseResume_SkillLineKeepsUnknownEntries(t *testing.T) {
	output := parseResume("habilidades: python, comunicación efectiva")

	assert.Contains(t, output.Skills, "Python")
	assert.Contains(t, output.Skills, "comunicación efectiva")
}

func TestParseResume_NoFalseSubstringMatches(t *testing.T) {
	// "nodejs" must not also match the shorter "node" keyword twice,
	// and "restaurante" must not match "rest"
	output := parseResume("Camarero en restaurante, luego desarrollador nodejs")

	assert.Equal(t, []string{"Node.js"}, output.Skills)
}

func TestParseResume_SemesterOrdinalForm(t *testing.T) {
	output := parseResume("Cursando el 5° semestre de la carrera")

	assert.Equal(t, 5, output.Semester)
}

func TestParseResume_GPACommaDecimal(t *testing.T) {
	output := parseResume("Promedio: 8,5")

	assert.Equal(t, 8.5, output.GPA)
}

func TestParseResume_GPAOutOfRangeIgnored(t *testing.T) {
	output := parseResume("Promedio: 82")

	assert.Equal(t, 0.0, output.GPA)
}

func TestParseResume_MissingSectionsAreEmpty(t *testing.T) {
	output := parseResume("Solo una línea con python")

	assert.Equal(t, []string{"Python"}, output.Skills)
	assert.Empty(t, output.Projects)
	assert.Empty(t, output.Experiences)
	assert.Equal(t, 0, output.Semester)
	assert.Equal(t, 0.0, output.GPA)
	assert.Equal(t, "", output.Degree)
}
