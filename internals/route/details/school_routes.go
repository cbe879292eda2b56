// file: internals/route/details/school_routes.go
package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	statementController "mattilda_backend/internals/features/finance/statements/controller"
	gradeController "mattilda_backend/internals/features/school/grades/controller"
	schoolController "mattilda_backend/internals/features/school/schools/controller"
	studentController "mattilda_backend/internals/features/school/students/controller"
)

func SchoolRoutes(user fiber.Router, admin fiber.Router, db *gorm.DB) {
	schools := schoolController.NewSchoolController(db)
	grades := gradeController.NewGradeController(db)
	students := studentController.NewStudentController(db)
	statements := statementController.NewStatementController(db)

	// baca
	user.Get("/schools", schools.ListSchools)
	user.Get("/schools/:id", schools.GetSchool)
	user.Get("/schools/:id/statement", statements.SchoolStatement)

	user.Get("/grades", grades.ListGrades)
	user.Get("/grades/:id", grades.GetGrade)

	user.Get("/students", students.ListStudents)
	user.Get("/students/:id", students.GetStudent)
	user.Get("/students/:id/statement", statements.StudentStatement)

	// mutasi
	admin.Post("/schools", schools.CreateSchool)
	admin.Put("/schools/:id", schools.UpdateSchool)
	admin.Delete("/schools/:id", schools.DeleteSchool)

	admin.Post("/grades", grades.CreateGrade)
	admin.Put("/grades/:id", grades.UpdateGrade)
	admin.Delete("/grades/:id", grades.DeleteGrade)

	admin.Post("/students", students.CreateStudent)
	admin.Put("/students/:id", students.UpdateStudent)
	admin.Delete("/students/:id", students.DeleteStudent)
}
