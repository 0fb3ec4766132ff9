package main

import (
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/GeisyGP/sistema-ppi/internal/models"
	"github.com/GeisyGP/sistema-ppi/pkg/database"
)

// Seeds a demo course with a coordinator, teachers, students, one PPI
// with a coordinator subject, a project, a group, and a deliverable.
func main() {
	db, err := database.NewDatabase("test.db")
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.EnsureRootCourse("sysadmin", "sysadmin123"); err != nil {
		log.Fatalf("Failed to bootstrap root course: %v", err)
	}

	course := models.Course{ID: uuid.New(), Name: "Análise e Desenvolvimento de Sistemas", Period: "2024.2"}
	if err := db.DB.Create(&course).Error; err != nil {
		log.Fatalf("Failed to create course: %v", err)
	}

	coordinator := seedUser(db, "Maria Coordenadora", "coord-001", course.ID, models.RoleCoordinator)
	teacher1 := seedUser(db, "João Professor", "teach-001", course.ID, models.RoleTeacher)
	teacher2 := seedUser(db, "Ana Professora", "teach-002", course.ID, models.RoleTeacher)
	student1 := seedUser(db, "Pedro Aluno", "stud-001", course.ID, models.RoleStudent)
	student2 := seedUser(db, "Clara Aluna", "stud-002", course.ID, models.RoleStudent)

	subject := models.Subject{ID: uuid.New(), CourseID: course.ID, Name: "Engenharia de Software"}
	if err := db.DB.Create(&subject).Error; err != nil {
		log.Fatalf("Failed to create subject: %v", err)
	}
	db.DB.Create(&models.SubjectTeacher{ID: uuid.New(), CourseID: course.ID, SubjectID: subject.ID, UserID: teacher1.ID})

	ppi := models.PPI{ID: uuid.New(), CourseID: course.ID, Name: "PPI Sistemas Integrados", Workload: 80, ClassPeriod: 3}
	if err := db.DB.Create(&ppi).Error; err != nil {
		log.Fatalf("Failed to create PPI: %v", err)
	}
	db.DB.Create(&models.SubjectAssignment{
		ID: uuid.New(), CourseID: course.ID, PPIID: ppi.ID,
		SubjectID: subject.ID, Workload: 40, IsCoordinator: true,
	})

	project := models.Project{
		ID: uuid.New(), CourseID: course.ID, PPIID: ppi.ID,
		Title: "Sistema de Biblioteca", TeacherID: teacher1.ID,
		Status: models.ProjectStarted,
	}
	if err := db.DB.Create(&project).Error; err != nil {
		log.Fatalf("Failed to create project: %v", err)
	}

	group := models.Group{ID: uuid.New(), CourseID: course.ID, ProjectID: project.ID, Name: "Grupo 1"}
	db.DB.Create(&group)
	db.DB.Create(&models.GroupMember{ID: uuid.New(), CourseID: course.ID, GroupID: group.ID, UserID: student1.ID, JoinedAt: time.Now()})
	db.DB.Create(&models.GroupMember{ID: uuid.New(), CourseID: course.ID, GroupID: group.ID, UserID: student2.ID, JoinedAt: time.Now()})

	deliverable := models.Deliverable{
		ID: uuid.New(), CourseID: course.ID, ProjectID: project.ID,
		SubjectID: &subject.ID, Title: "Documento de Requisitos",
		StartDate: time.Now().AddDate(0, 0, -7),
		EndDate:   time.Now().AddDate(0, 0, 14),
	}
	db.DB.Create(&deliverable)

	fmt.Println("Seed complete:")
	fmt.Printf("  course:      %s\n", course.ID)
	fmt.Printf("  coordinator: %s (coord-001)\n", coordinator.ID)
	fmt.Printf("  teachers:    %s, %s\n", teacher1.ID, teacher2.ID)
	fmt.Printf("  students:    %s, %s\n", student1.ID, student2.ID)
	fmt.Printf("  project:     %s\n", project.ID)
}

func seedUser(db *database.Database, name, registration string, courseID uuid.UUID, role models.Role) *models.User {
	hash, err := bcrypt.GenerateFromPassword([]byte("senha123"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}
	user := models.User{ID: uuid.New(), Name: name, Registration: registration, PasswordHash: string(hash)}
	if err := db.DB.Create(&user).Error; err != nil {
		log.Fatalf("Failed to create user %s: %v", registration, err)
	}
	membership := models.CourseMembership{ID: uuid.New(), UserID: user.ID, CourseID: courseID, Role: role}
	if err := db.DB.Create(&membership).Error; err != nil {
		log.Fatalf("Failed to create membership for %s: %v", registration, err)
	}
	return &user
}
