package service

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/textproto"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/classdesk-api/internal/dto"
	"github.com/noah-isme/classdesk-api/internal/models"
)

type storageStub struct {
	names []string
}

func (s *storageStub) Upload(ctx context.Context, name string, reader io.Reader) (string, error) {
	if _, err := io.Copy(io.Discard, reader); err != nil {
		return "", err
	}
	s.names = append(s.names, name)
	return "https://cdn.example.com/" + name, nil
}

func submissionFixture(t *testing.T, storage FileStorage, gradebook GradebookService) (SubmissionService, *fakeGradeRepo) {
	t.Helper()

	repo := newFakeSubmissionRepo()
	students := newFakeStudentRepo()
	tasks := newFakeTaskRepo()

	require.NoError(t, students.Create(context.Background(), &models.Student{UserID: 1, SectionID: 1, FirstName: "Ava"}))
	require.NoError(t, tasks.Create(context.Background(), &models.Task{UserID: 1, SectionID: 1, Title: "Essay", TotalPoints: 100}))

	var grades *fakeGradeRepo
	if gradebook == nil {
		grades = newFakeGradeRepo()
		validate := validator.New(validator.WithRequiredStructEnabled())
		gradebook = NewGradebookService(grades, tasks, students, nil, validate, false, testLogger())
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	svc := NewSubmissionService(repo, students, tasks, gradebook, nil, storage, 1, validate, testLogger())

	return svc, grades
}

func buildFileHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreatePart(textproto.MIMEHeader{
		"Content-Disposition": {"form-data; name=\"files\"; filename=\"" + filename + "\""},
		"Content-Type":        {"application/octet-stream"},
	})
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	writer.Close()

	reader := multipart.NewReader(body, writer.Boundary())
	form, err := reader.ReadForm(int64(len(content) + 1024))
	require.NoError(t, err)
	files := form.File["files"]
	require.Len(t, files, 1)
	return files[0]
}

func TestSubmissionCreateStoresURLs(t *testing.T) {
	storage := &storageStub{}
	svc, _ := submissionFixture(t, storage, nil)

	pngHeader := []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}
	files := []*multipart.FileHeader{
		buildFileHeader(t, "draft.png", pngHeader),
		buildFileHeader(t, "notes.txt", []byte("my working notes")),
	}

	result, err := svc.Create(context.Background(), 1, dto.SubmissionCreateRequest{StudentID: 1, TaskID: 1}, files)
	require.NoError(t, err)
	require.Equal(t, models.SubmissionStatusPending, result.Status)
	require.Len(t, result.Files, 2)
	require.Contains(t, result.Files[0], "cdn.example.com")
	require.Len(t, storage.names, 2)
}

func TestSubmissionCreateRejectsOversizedFile(t *testing.T) {
	svc, _ := submissionFixture(t, &storageStub{}, nil)

	file := buildFileHeader(t, "huge.txt", bytes.Repeat([]byte("a"), 2*1024*1024))
	_, err := svc.Create(context.Background(), 1, dto.SubmissionCreateRequest{StudentID: 1, TaskID: 1}, []*multipart.FileHeader{file})
	require.ErrorIs(t, err, ErrUploadTooLarge)
}

func TestSubmissionCreateRejectsDisallowedType(t *testing.T) {
	svc, _ := submissionFixture(t, &storageStub{}, nil)

	elfHeader := []byte{0x7F, 0x45, 0x4C, 0x46, 0x02, 0x01, 0x01, 0x00}
	file := buildFileHeader(t, "binary.bin", elfHeader)
	_, err := svc.Create(context.Background(), 1, dto.SubmissionCreateRequest{StudentID: 1, TaskID: 1}, []*multipart.FileHeader{file})
	require.ErrorIs(t, err, ErrUploadTypeNotAllowed)
}

func TestSubmissionCreateRequiresFiles(t *testing.T) {
	svc, _ := submissionFixture(t, &storageStub{}, nil)

	_, err := svc.Create(context.Background(), 1, dto.SubmissionCreateRequest{StudentID: 1, TaskID: 1}, nil)
	require.ErrorIs(t, err, ErrNoFiles)
}

func TestSubmissionGradeMirrorsIntoGradebook(t *testing.T) {
	storage := &storageStub{}
	svc, grades := submissionFixture(t, storage, nil)

	file := buildFileHeader(t, "essay.txt", []byte("final draft"))
	created, err := svc.Create(context.Background(), 1, dto.SubmissionCreateRequest{StudentID: 1, TaskID: 1}, []*multipart.FileHeader{file})
	require.NoError(t, err)

	graded, err := svc.Grade(context.Background(), 1, created.ID, dto.SubmissionGradeRequest{Score: 88, Feedback: "solid work"})
	require.NoError(t, err)
	require.Equal(t, models.SubmissionStatusGraded, graded.Status)
	require.Equal(t, 88.0, *graded.Score)
	require.Equal(t, "solid work", graded.Feedback)

	mirrored, err := grades.GetByStudentTask(context.Background(), 1, 1, 1)
	require.NoError(t, err)
	require.Equal(t, 88.0, mirrored.Score)
	require.Equal(t, 100.0, mirrored.MaxScore)
	require.Equal(t, models.LetterGradeB, mirrored.LetterGrade)
}

func TestSubmissionGradeUnknown(t *testing.T) {
	svc, _ := submissionFixture(t, &storageStub{}, nil)

	_, err := svc.Grade(context.Background(), 1, 99, dto.SubmissionGradeRequest{Score: 50})
	require.ErrorIs(t, err, ErrSubmissionNotFound)
}

func TestSanitizeFileName(t *testing.T) {
	cases := map[string]string{
		"../../etc/passwd":  "passwd",
		"my report (1).pdf": "my-report--1-.pdf",
		"":                  "file",
		"clean_name.txt":    "clean_name.txt",
	}
	for input, want := range cases {
		require.Equal(t, want, sanitizeFileName(input), "input %q", input)
	}
}
