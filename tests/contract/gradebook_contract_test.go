package contract_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/classdesk-api/internal/dto"
	"github.com/noah-isme/classdesk-api/internal/handler"
)

type stubGradebookService struct {
	grade dto.GradeResponse
	total dto.StudentTotalResponse
}

func (s stubGradebookService) UpsertGrade(context.Context, uint, dto.GradeUpsertRequest) (dto.GradeResponse, error) {
	return s.grade, nil
}

func (s stubGradebookService) StudentTotal(context.Context, uint, uint) (dto.StudentTotalResponse, error) {
	return s.total, nil
}

func (s stubGradebookService) ListByStudent(context.Context, uint, uint) ([]dto.GradeResponse, error) {
	return []dto.GradeResponse{s.grade}, nil
}

func (s stubGradebookService) Matrix(context.Context, uint, uint) (dto.GradebookMatrixResponse, error) {
	return dto.GradebookMatrixResponse{}, nil
}

func loadSchema(t *testing.T, name string) *jsonschema.Schema {
	t.Helper()

	schemaPath, err := filepath.Abs(filepath.Join("..", "contracts", name))
	require.NoError(t, err)

	schema, err := jsonschema.NewCompiler().Compile("file://" + schemaPath)
	require.NoError(t, err)
	return schema
}

func newGradebookApp(svc stubGradebookService) *fiber.App {
	app := fiber.New()
	group := app.Group("/api/grades", func(c *fiber.Ctx) error {
		c.Locals("user_id", uint(1))
		return c.Next()
	})
	handler.NewGradebookHandler(svc, zerolog.Nop()).Register(group)
	return app
}

func TestGradeUpsertContract(t *testing.T) {
	schema := loadSchema(t, "grade_envelope.schema.json")

	app := newGradebookApp(stubGradebookService{grade: dto.GradeResponse{
		StudentID:   3,
		TaskID:      5,
		Score:       42,
		MaxScore:    50,
		Percentage:  84,
		LetterGrade: "B",
	}})

	body := []byte(`{"student_id":3,"task_id":5,"score":42}`)
	req := httptest.NewRequest(http.MethodPut, "/api/grades", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var payload interface{}
	require.NoError(t, json.Unmarshal(raw, &payload))
	require.NoError(t, schema.Validate(payload))
}

func TestStudentTotalContract(t *testing.T) {
	schema := loadSchema(t, "student_total.schema.json")

	app := newGradebookApp(stubGradebookService{total: dto.StudentTotalResponse{
		StudentID:   3,
		Total:       115,
		Max:         150,
		Percentage:  77,
		LetterGrade: "C",
	}})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/grades/students/3/total", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var payload interface{}
	require.NoError(t, json.Unmarshal(raw, &payload))
	require.NoError(t, schema.Validate(payload))
}
