package api

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Artexxx/HR-Registry/internal/dto"

	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"
)

// @title           HR Registry — employees & job history
// @version         1.0
// @description     Реестр сотрудников: CRUD по карточкам, история назначений (append-only, ведётся Audit Recorder'ом в транзакции записи), отчёт истории, создание отдела с руководителем через отложенные констрейнты, команды перевода через Kafka.
//
//@license.name  MIT
// @license.url   https://opensource.org/license/mit
//
// @BasePath  /
// @schemes   http
// @accept    json
// @produce   json

type EmployeeService interface {
	Hire(ctx context.Context, e dto.Employee) (int64, error)
	Update(ctx context.Context, e dto.Employee) (bool, error)
	CreateDepartment(ctx context.Context, d dto.Department, manager dto.Employee) (int64, int64, error)
	GetHistory(ctx context.Context, employeeID int64) ([]dto.HistoryRecord, error)
}

type EmployeeRepository interface {
	GetByID(ctx context.Context, employeeID int64) (*dto.Employee, error)
	List(ctx context.Context) ([]dto.Employee, error)
	Delete(ctx context.Context, employeeID int64) error
}

type JobRepository interface {
	GetByID(ctx context.Context, jobID string) (*dto.Job, error)
	List(ctx context.Context) ([]dto.Job, error)
}

type DepartmentRepository interface {
	GetByID(ctx context.Context, departmentID int64) (*dto.Department, error)
	List(ctx context.Context) ([]dto.Department, error)
}

type EventsRepository interface {
	ListEvents(ctx context.Context) ([]dto.KafkaEvent, error)
	ListDLQ(ctx context.Context) ([]dto.KafkaDLQ, error)
	ResetAll(ctx context.Context) error
}

type ServiceDeps struct {
	Port int

	Employees    EmployeeService
	EmployeeRepo EmployeeRepository
	JobRepo      JobRepository
	DeptRepo     DepartmentRepository
	EventsRepo   EventsRepository
}

type Service struct {
	r      *router.Router
	server *fasthttp.Server
	port   int

	svc       EmployeeService
	employees EmployeeRepository
	jobs      JobRepository
	depts     DepartmentRepository
	events    EventsRepository
}

func NewService(d ServiceDeps) *Service {
	rt := router.New()

	s := &Service{
		r:         rt,
		port:      d.Port,
		svc:       d.Employees,
		employees: d.EmployeeRepo,
		jobs:      d.JobRepo,
		depts:     d.DeptRepo,
		events:    d.EventsRepo,
	}

	s.mountRoutes()

	s.server = &fasthttp.Server{
		Handler:            RecoveryMiddleware(LoggingMiddleware(CORS(s.r.Handler))),
		Name:               "hr-registry-api",
		ReadTimeout:        10 * time.Second,
		WriteTimeout:       15 * time.Second,
		MaxRequestBodySize: 2 << 20, // 2 MiB
	}

	return s
}

func (s *Service) Start(ctx context.Context) error {
	log.Info().Int("port", s.port).Msg("Starting HR Registry API")

	emergencyShutdown := make(chan error)
	go func() {
		err := s.server.ListenAndServe(fmt.Sprintf(":%d", s.port))
		emergencyShutdown <- err
	}()

	select {
	case <-ctx.Done():
		return s.server.Shutdown()
	case e := <-emergencyShutdown:
		return e
	}
}

func (s *Service) mountRoutes() {
	// Employees
	s.r.POST("/employees", s.createEmployee)
	s.r.PUT("/employees/{employee_id}", s.updateEmployee)
	s.r.DELETE("/employees/{employee_id}", s.deleteEmployee)
	s.r.GET("/employees", s.listEmployees)
	s.r.GET("/employees/{employee_id}", s.getEmployee)

	// History
	s.r.GET("/employees/{employee_id}/history", s.getEmployeeHistory)

	// Departments
	s.r.POST("/departments", s.createDepartment)
	s.r.GET("/departments", s.listDepartments)
	s.r.GET("/departments/{department_id}", s.getDepartment)

	// Jobs (справочник)
	s.r.GET("/jobs", s.listJobs)
	s.r.GET("/jobs/{job_id}", s.getJob)

	// Events/DLQ
	s.r.GET("/events", s.listEvents)
	s.r.GET("/dlq", s.listDLQ)

	// Admin & Health
	s.r.GET("/health", s.healthHandler)
	s.r.POST("/admin/reset", s.resetHandler)
}
