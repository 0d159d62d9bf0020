package main

import (
	"context"
	"log"

	"github.com/go-playground/validator/v10"

	"github.com/noah-isme/gradekeeper/internal/models"
	"github.com/noah-isme/gradekeeper/internal/service"
	"github.com/noah-isme/gradekeeper/pkg/config"
	"github.com/noah-isme/gradekeeper/pkg/logger"
	"github.com/noah-isme/gradekeeper/pkg/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	weights := models.DefaultWeights().Merge(cfg.Grading.TypeWeights)
	metrics := service.NewMetricsService()
	gradebook := service.NewGradebookService(weights, validator.New(), logr, metrics)
	reports := service.NewReportService(gradebook, logr)

	ctx := context.Background()
	course, err := seed(ctx, gradebook)
	if err != nil {
		logr.Sugar().Fatalw("seed failed", "error", err)
	}

	for _, student := range gradebook.Students(ctx) {
		avg, _ := gradebook.StudentAverage(ctx, student.ID, "")
		logr.Sugar().Infow("student average",
			"student_id", student.ID, "name", student.Name, "average", avg)
	}
	logr.Sugar().Infow("course average",
		"course", course.Code, "average", course.CourseAverage(weights))

	if cfg.Reports.Enabled {
		paths, err := writeReports(ctx, cfg, reports, course)
		if err != nil {
			logr.Sugar().Fatalw("report export failed", "error", err)
		}
		logr.Sugar().Infow("reports written", "paths", paths)
	}

	snapshot := metrics.Snapshot()
	logr.Sugar().Infow("done",
		"grades_recorded", snapshot.GradesRecorded,
		"students", gradebook.RegisteredCount(ctx))
}

// seed builds a small demonstration roster so the binary has something
// to report on without any external input.
func seed(ctx context.Context, gradebook *service.GradebookService) (*models.Course, error) {
	teacher, err := models.NewTeacher("Dr. Johnson", "Information Science", "")
	if err != nil {
		return nil, err
	}
	course, err := models.NewCourse("inst326", "Object-Oriented Programming", teacher.Name)
	if err != nil {
		return nil, err
	}
	if err := teacher.AddCourse(course); err != nil {
		return nil, err
	}

	names := []string{"Alex Johnson", "Maria Lopez", "Sam Carter"}
	earned := []float64{80, 92, 70}
	for i, name := range names {
		student, err := models.NewStudent("", name)
		if err != nil {
			return nil, err
		}
		if err := student.Enroll(course.Code); err != nil {
			return nil, err
		}
		if err := course.AddStudent(student); err != nil {
			return nil, err
		}
		if err := gradebook.AddStudent(ctx, student); err != nil {
			return nil, err
		}

		homework, err := models.NewAssignment("Homework 1", "homework", 100, 2)
		if err != nil {
			return nil, err
		}
		if err := teacher.AddGradeToStudent(course, student, homework, earned[i], false); err != nil {
			return nil, err
		}
		quiz, err := models.NewAssignment("Quiz 1", "quiz", 10, 3)
		if err != nil {
			return nil, err
		}
		if err := teacher.AddGradeToStudent(course, student, quiz, 8, i == 2); err != nil {
			return nil, err
		}
	}
	return course, nil
}

func writeReports(ctx context.Context, cfg *config.Config, reports *service.ReportService, course *models.Course) ([]string, error) {
	store, err := storage.NewReportStore(cfg.Reports.StorageDir)
	if err != nil {
		return nil, err
	}
	summary, err := reports.CourseSummary(ctx, course)
	if err != nil {
		return nil, err
	}
	var paths []string
	for _, format := range cfg.Reports.Formats {
		var out []byte
		var name string
		switch format {
		case "csv":
			out, err = reports.RenderCSV(summary)
			name = course.Code + "_summary.csv"
		case "pdf":
			out, err = reports.RenderPDF(summary, course.Code+" summary")
			name = course.Code + "_summary.pdf"
		default:
			continue
		}
		if err != nil {
			return nil, err
		}
		if _, err := store.Save(name, out); err != nil {
			return nil, err
		}
		paths = append(paths, store.Path(name))
	}
	return paths, nil
}
