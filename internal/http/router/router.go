// Package router wires the HTTP handlers onto a ServeMux.
package router

import (
	"net/http"

	"github.com/aanand-mishra/school-records/internal/http/handlers/course"
	"github.com/aanand-mishra/school-records/internal/http/handlers/student"
)

// New returns the application's route table:
//
//	POST   /api/students                   → create a new student
//	GET    /api/students                   → list all students
//	GET    /api/students/search?last_name= → first student with that last name
//	GET    /api/students/{id}              → get one student by ID
//	PUT    /api/students/{id}              → update a student
//	DELETE /api/students/{id}              → delete a student
//
//	POST   /api/courses                    → create a new course
//	GET    /api/courses                    → list all course names
//	GET    /api/courses/search?name=       → course with that exact name
//	GET    /api/courses/{id}               → get one course by ID
//	PUT    /api/courses/{id}               → update a course
//	DELETE /api/courses/{id}               → delete a course
//
// "/search" is a literal segment, so ServeMux prefers it over {id}.
func New(students student.Service, courses course.Service) *http.ServeMux {
	router := http.NewServeMux()

	router.HandleFunc("POST /api/students", student.New(students))
	router.HandleFunc("GET /api/students", student.GetList(students))
	router.HandleFunc("GET /api/students/search", student.Search(students))
	router.HandleFunc("GET /api/students/{id}", student.GetByID(students))
	router.HandleFunc("PUT /api/students/{id}", student.Update(students))
	router.HandleFunc("DELETE /api/students/{id}", student.Delete(students))

	router.HandleFunc("POST /api/courses", course.New(courses))
	router.HandleFunc("GET /api/courses", course.GetList(courses))
	router.HandleFunc("GET /api/courses/search", course.Search(courses))
	router.HandleFunc("GET /api/courses/{id}", course.GetByID(courses))
	router.HandleFunc("PUT /api/courses/{id}", course.Update(courses))
	router.HandleFunc("DELETE /api/courses/{id}", course.Delete(courses))

	return router
}
