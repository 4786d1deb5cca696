package dto

// DashboardResponse carries the headline numbers for the dashboard screen.
type DashboardResponse struct {
	TotalSections     int `json:"total_sections"`
	TotalStudents     int `json:"total_students"`
	TotalTasks        int `json:"total_tasks"`
	AverageCompletion int `json:"average_completion"`
}

// SectionPerformance is the average grade percentage for one section.
type SectionPerformance struct {
	SectionID    uint   `json:"section_id"`
	SectionName  string `json:"section_name"`
	AverageScore int    `json:"average_score"`
}

// TaskCompletion breaks progress rows down by status bucket.
type TaskCompletion struct {
	Completed int `json:"completed"`
	Pending   int `json:"pending"`
	Overdue   int `json:"overdue"`
}

// GradeBucket is the count of grades carrying one letter.
type GradeBucket struct {
	Grade string `json:"grade"`
	Count int    `json:"count"`
}

// AnalyticsResponse aggregates section, completion and grade views.
type AnalyticsResponse struct {
	SectionPerformance []SectionPerformance `json:"section_performance"`
	TaskCompletionRate TaskCompletion       `json:"task_completion_rate"`
	GradeDistribution  []GradeBucket        `json:"grade_distribution"`
}

// Student performance status values.
const (
	PerformanceOnTrack        = "On Track"
	PerformanceAtRisk         = "At Risk"
	PerformanceNeedsAttention = "Needs Attention"
)

// StudentPerformanceEntry summarises one student across tasks and grades.
type StudentPerformanceEntry struct {
	StudentID      uint   `json:"student_id"`
	StudentName    string `json:"student_name"`
	CompletedTasks int    `json:"completed_tasks"`
	OverdueTasks   int    `json:"overdue_tasks"`
	AverageScore   int    `json:"average_score"`
	Status         string `json:"status"`
}

// StudentPerformanceResponse wraps the per-student performance table.
type StudentPerformanceResponse struct {
	Students []StudentPerformanceEntry `json:"students"`
}
