package service

import (
	"context"
	"io"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/noah-isme/classdesk-api/internal/dto"
	"github.com/noah-isme/classdesk-api/internal/models"
	"github.com/noah-isme/classdesk-api/internal/repository"
)

func testLogger() zerolog.Logger {
	return zerolog.New(io.Discard)
}

type fakeUserRepo struct {
	users  map[string]models.User
	nextID uint
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]models.User), nextID: 1}
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id uint) (models.User, error) {
	for _, user := range f.users {
		if user.ID == id {
			return user, nil
		}
	}
	return models.User{}, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) GetByUsername(ctx context.Context, username string) (models.User, error) {
	if user, ok := f.users[username]; ok {
		return user, nil
	}
	return models.User{}, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	user.ID = f.nextID
	f.nextID++
	f.users[user.Username] = *user
	return nil
}

type fakeSectionRepo struct {
	sections map[uint]models.Section
	nextID   uint
}

func newFakeSectionRepo() *fakeSectionRepo {
	return &fakeSectionRepo{sections: make(map[uint]models.Section), nextID: 1}
}

func (f *fakeSectionRepo) List(ctx context.Context, userID uint) ([]models.Section, error) {
	var out []models.Section
	for _, section := range f.sections {
		if section.UserID == userID {
			out = append(out, section)
		}
	}
	return out, nil
}

func (f *fakeSectionRepo) GetByID(ctx context.Context, userID, id uint) (models.Section, error) {
	section, ok := f.sections[id]
	if !ok || section.UserID != userID {
		return models.Section{}, gorm.ErrRecordNotFound
	}
	return section, nil
}

func (f *fakeSectionRepo) Create(ctx context.Context, section *models.Section) error {
	section.ID = f.nextID
	f.nextID++
	f.sections[section.ID] = *section
	return nil
}

func (f *fakeSectionRepo) Update(ctx context.Context, section *models.Section) error {
	f.sections[section.ID] = *section
	return nil
}

func (f *fakeSectionRepo) Delete(ctx context.Context, userID, id uint) error {
	section, ok := f.sections[id]
	if !ok || section.UserID != userID {
		return gorm.ErrRecordNotFound
	}
	delete(f.sections, id)
	return nil
}

type fakeStudentRepo struct {
	students map[uint]models.Student
	nextID   uint
}

func newFakeStudentRepo() *fakeStudentRepo {
	return &fakeStudentRepo{students: make(map[uint]models.Student), nextID: 1}
}

func (f *fakeStudentRepo) List(ctx context.Context, userID uint, filter repository.StudentFilter) ([]models.Student, error) {
	var out []models.Student
	for _, student := range f.students {
		if student.UserID != userID {
			continue
		}
		if filter.SectionID != nil && student.SectionID != *filter.SectionID {
			continue
		}
		out = append(out, student)
	}
	return out, nil
}

func (f *fakeStudentRepo) GetByID(ctx context.Context, userID, id uint) (models.Student, error) {
	student, ok := f.students[id]
	if !ok || student.UserID != userID {
		return models.Student{}, gorm.ErrRecordNotFound
	}
	return student, nil
}

func (f *fakeStudentRepo) Create(ctx context.Context, student *models.Student) error {
	student.ID = f.nextID
	f.nextID++
	f.students[student.ID] = *student
	return nil
}

func (f *fakeStudentRepo) Update(ctx context.Context, student *models.Student) error {
	f.students[student.ID] = *student
	return nil
}

func (f *fakeStudentRepo) Delete(ctx context.Context, userID, id uint) error {
	student, ok := f.students[id]
	if !ok || student.UserID != userID {
		return gorm.ErrRecordNotFound
	}
	delete(f.students, id)
	return nil
}

func (f *fakeStudentRepo) CountBySection(ctx context.Context, sectionID uint) (int64, error) {
	var count int64
	for _, student := range f.students {
		if student.SectionID == sectionID {
			count++
		}
	}
	return count, nil
}

type fakeTaskRepo struct {
	tasks  map[uint]models.Task
	nextID uint
}

func newFakeTaskRepo() *fakeTaskRepo {
	return &fakeTaskRepo{tasks: make(map[uint]models.Task), nextID: 1}
}

func (f *fakeTaskRepo) List(ctx context.Context, userID uint, filter repository.TaskFilter) ([]models.Task, error) {
	var out []models.Task
	for _, task := range f.tasks {
		if task.UserID != userID {
			continue
		}
		if filter.SectionID != nil && task.SectionID != *filter.SectionID {
			continue
		}
		out = append(out, task)
	}
	return out, nil
}

func (f *fakeTaskRepo) GetByID(ctx context.Context, userID, id uint) (models.Task, error) {
	task, ok := f.tasks[id]
	if !ok || task.UserID != userID {
		return models.Task{}, gorm.ErrRecordNotFound
	}
	return task, nil
}

func (f *fakeTaskRepo) Create(ctx context.Context, task *models.Task) error {
	task.ID = f.nextID
	f.nextID++
	f.tasks[task.ID] = *task
	return nil
}

func (f *fakeTaskRepo) Update(ctx context.Context, task *models.Task) error {
	f.tasks[task.ID] = *task
	return nil
}

func (f *fakeTaskRepo) Delete(ctx context.Context, userID, id uint) error {
	task, ok := f.tasks[id]
	if !ok || task.UserID != userID {
		return gorm.ErrRecordNotFound
	}
	delete(f.tasks, id)
	return nil
}

type fakeGradeRepo struct {
	grades  map[uint]models.Grade
	nextID  uint
	creates int
	updates int
}

func newFakeGradeRepo() *fakeGradeRepo {
	return &fakeGradeRepo{grades: make(map[uint]models.Grade), nextID: 1}
}

func (f *fakeGradeRepo) ListByUser(ctx context.Context, userID uint) ([]models.Grade, error) {
	var out []models.Grade
	for _, grade := range f.grades {
		if grade.UserID == userID {
			out = append(out, grade)
		}
	}
	return out, nil
}

func (f *fakeGradeRepo) ListByStudent(ctx context.Context, userID, studentID uint) ([]models.Grade, error) {
	var out []models.Grade
	for _, grade := range f.grades {
		if grade.UserID == userID && grade.StudentID == studentID {
			out = append(out, grade)
		}
	}
	return out, nil
}

func (f *fakeGradeRepo) ListBySection(ctx context.Context, userID, sectionID uint) ([]models.Grade, error) {
	// Section scoping needs the task join; tests wire grades whose tasks all
	// belong to the requested section.
	return f.ListByUser(ctx, userID)
}

func (f *fakeGradeRepo) GetByStudentTask(ctx context.Context, userID, studentID, taskID uint) (models.Grade, error) {
	for _, grade := range f.grades {
		if grade.UserID == userID && grade.StudentID == studentID && grade.TaskID == taskID {
			return grade, nil
		}
	}
	return models.Grade{}, gorm.ErrRecordNotFound
}

func (f *fakeGradeRepo) Create(ctx context.Context, grade *models.Grade) error {
	grade.ID = f.nextID
	f.nextID++
	f.grades[grade.ID] = *grade
	f.creates++
	return nil
}

func (f *fakeGradeRepo) Update(ctx context.Context, grade *models.Grade) error {
	f.grades[grade.ID] = *grade
	f.updates++
	return nil
}

type fakeAttendanceRepo struct {
	records map[uint]models.AttendanceRecord
	nextID  uint
}

func newFakeAttendanceRepo() *fakeAttendanceRepo {
	return &fakeAttendanceRepo{records: make(map[uint]models.AttendanceRecord), nextID: 1}
}

func (f *fakeAttendanceRepo) ListByStudentSection(ctx context.Context, userID, studentID, sectionID uint) ([]models.AttendanceRecord, error) {
	var out []models.AttendanceRecord
	for _, record := range f.records {
		if record.UserID == userID && record.StudentID == studentID && record.SectionID == sectionID {
			out = append(out, record)
		}
	}
	return out, nil
}

func (f *fakeAttendanceRepo) ListBySectionDate(ctx context.Context, userID, sectionID uint, date string) ([]models.AttendanceRecord, error) {
	var out []models.AttendanceRecord
	for _, record := range f.records {
		if record.UserID == userID && record.SectionID == sectionID && record.Date == date {
			out = append(out, record)
		}
	}
	return out, nil
}

func (f *fakeAttendanceRepo) GetByStudentDate(ctx context.Context, userID, studentID uint, date string) (models.AttendanceRecord, error) {
	for _, record := range f.records {
		if record.UserID == userID && record.StudentID == studentID && record.Date == date {
			return record, nil
		}
	}
	return models.AttendanceRecord{}, gorm.ErrRecordNotFound
}

func (f *fakeAttendanceRepo) Create(ctx context.Context, record *models.AttendanceRecord) error {
	record.ID = f.nextID
	f.nextID++
	f.records[record.ID] = *record
	return nil
}

func (f *fakeAttendanceRepo) Update(ctx context.Context, record *models.AttendanceRecord) error {
	f.records[record.ID] = *record
	return nil
}

type fakeProgressRepo struct {
	records map[uint]models.Progress
	nextID  uint
}

func newFakeProgressRepo() *fakeProgressRepo {
	return &fakeProgressRepo{records: make(map[uint]models.Progress), nextID: 1}
}

func (f *fakeProgressRepo) List(ctx context.Context, userID uint, filter repository.ProgressFilter) ([]models.Progress, error) {
	var out []models.Progress
	for _, record := range f.records {
		if record.UserID != userID {
			continue
		}
		if filter.StudentID != nil && record.StudentID != *filter.StudentID {
			continue
		}
		if filter.TaskID != nil && record.TaskID != *filter.TaskID {
			continue
		}
		out = append(out, record)
	}
	return out, nil
}

func (f *fakeProgressRepo) GetByID(ctx context.Context, userID, id uint) (models.Progress, error) {
	record, ok := f.records[id]
	if !ok || record.UserID != userID {
		return models.Progress{}, gorm.ErrRecordNotFound
	}
	return record, nil
}

func (f *fakeProgressRepo) GetByStudentTask(ctx context.Context, userID, studentID, taskID uint) (models.Progress, error) {
	for _, record := range f.records {
		if record.UserID == userID && record.StudentID == studentID && record.TaskID == taskID {
			return record, nil
		}
	}
	return models.Progress{}, gorm.ErrRecordNotFound
}

func (f *fakeProgressRepo) Create(ctx context.Context, record *models.Progress) error {
	record.ID = f.nextID
	f.nextID++
	f.records[record.ID] = *record
	return nil
}

func (f *fakeProgressRepo) Update(ctx context.Context, record *models.Progress) error {
	f.records[record.ID] = *record
	return nil
}

func (f *fakeProgressRepo) Delete(ctx context.Context, userID, id uint) error {
	record, ok := f.records[id]
	if !ok || record.UserID != userID {
		return gorm.ErrRecordNotFound
	}
	delete(f.records, id)
	return nil
}

type fakeSubmissionRepo struct {
	submissions map[uint]models.Submission
	nextID      uint
}

func newFakeSubmissionRepo() *fakeSubmissionRepo {
	return &fakeSubmissionRepo{submissions: make(map[uint]models.Submission), nextID: 1}
}

func (f *fakeSubmissionRepo) List(ctx context.Context, userID uint, filter repository.SubmissionFilter) ([]models.Submission, error) {
	var out []models.Submission
	for _, submission := range f.submissions {
		if submission.UserID != userID {
			continue
		}
		if filter.StudentID != nil && submission.StudentID != *filter.StudentID {
			continue
		}
		if filter.TaskID != nil && submission.TaskID != *filter.TaskID {
			continue
		}
		if filter.Status != "" && submission.Status != filter.Status {
			continue
		}
		out = append(out, submission)
	}
	return out, nil
}

func (f *fakeSubmissionRepo) GetByID(ctx context.Context, userID, id uint) (models.Submission, error) {
	submission, ok := f.submissions[id]
	if !ok || submission.UserID != userID {
		return models.Submission{}, gorm.ErrRecordNotFound
	}
	return submission, nil
}

func (f *fakeSubmissionRepo) Create(ctx context.Context, submission *models.Submission) error {
	submission.ID = f.nextID
	f.nextID++
	f.submissions[submission.ID] = *submission
	return nil
}

func (f *fakeSubmissionRepo) Update(ctx context.Context, submission *models.Submission) error {
	f.submissions[submission.ID] = *submission
	return nil
}

type fakeNotificationRepo struct {
	notifications map[uint]models.Notification
	nextID        uint
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{notifications: make(map[uint]models.Notification), nextID: 1}
}

func (f *fakeNotificationRepo) List(ctx context.Context, userID uint, limit, offset int) ([]models.Notification, error) {
	var out []models.Notification
	for _, notification := range f.notifications {
		if notification.UserID == userID {
			out = append(out, notification)
		}
	}
	return out, nil
}

func (f *fakeNotificationRepo) GetByID(ctx context.Context, userID, id uint) (models.Notification, error) {
	notification, ok := f.notifications[id]
	if !ok || notification.UserID != userID {
		return models.Notification{}, gorm.ErrRecordNotFound
	}
	return notification, nil
}

func (f *fakeNotificationRepo) Create(ctx context.Context, notification *models.Notification) error {
	notification.ID = f.nextID
	f.nextID++
	f.notifications[notification.ID] = *notification
	return nil
}

func (f *fakeNotificationRepo) Update(ctx context.Context, notification *models.Notification) error {
	f.notifications[notification.ID] = *notification
	return nil
}

func (f *fakeNotificationRepo) Delete(ctx context.Context, userID, id uint) error {
	notification, ok := f.notifications[id]
	if !ok || notification.UserID != userID {
		return gorm.ErrRecordNotFound
	}
	delete(f.notifications, id)
	return nil
}

// recordingNotifier captures published notifications without a real broker.
type recordingNotifier struct {
	published []dto.NotificationCreateRequest
}

func (r *recordingNotifier) Publish(ctx context.Context, payload dto.NotificationCreateRequest) (dto.NotificationResponse, error) {
	r.published = append(r.published, payload)
	return dto.NotificationResponse{Type: payload.Type, Message: payload.Message}, nil
}

func (r *recordingNotifier) List(ctx context.Context, userID uint, limit, offset int) ([]dto.NotificationResponse, error) {
	return nil, nil
}

func (r *recordingNotifier) MarkRead(ctx context.Context, userID, id uint) (dto.NotificationResponse, error) {
	return dto.NotificationResponse{}, nil
}

func (r *recordingNotifier) Delete(ctx context.Context, userID, id uint) error { return nil }

func (r *recordingNotifier) Subscribe(userID uint) (<-chan dto.NotificationResponse, func()) {
	ch := make(chan dto.NotificationResponse)
	return ch, func() { close(ch) }
}

func (r *recordingNotifier) Start(ctx context.Context) {}
