package employees

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Artexxx/HR-Registry/internal/audit"
	"github.com/Artexxx/HR-Registry/internal/dto"
)

type EmployeeRepository interface {
	NextID(ctx context.Context) (int64, error)
	Insert(ctx context.Context, e dto.Employee) (int64, error)
	Update(ctx context.Context, e dto.Employee) error
	Exists(ctx context.Context, employeeID int64) (bool, error)
	GetByID(ctx context.Context, employeeID int64) (*dto.Employee, error)
	GetForUpdate(ctx context.Context, employeeID int64) (*dto.Employee, error)
}

type HistoryRepository interface {
	Insert(ctx context.Context, h dto.JobHistoryEntry) error
	ListRecords(ctx context.Context, employeeID int64) ([]dto.HistoryRecord, error)
}

type DepartmentRepository interface {
	DeferConstraints(ctx context.Context) error
	Insert(ctx context.Context, d dto.Department) (int64, error)
}

// Repos — репозитории, открытые поверх одной транзакции.
type Repos struct {
	Employees   EmployeeRepository
	History     HistoryRepository
	Departments DepartmentRepository
}

// TxRunner выполняет fn в одной транзакции хранилища: ошибка fn
// откатывает всё, успех — коммит.
type TxRunner interface {
	InTx(ctx context.Context, fn func(ctx context.Context, r Repos) error) error
}

type Producer interface {
	ProduceAssignment(ctx context.Context, messageID uuid.UUID, e dto.Employee) error
}

type ServiceDeps struct {
	Tx        TxRunner
	Employees EmployeeRepository
	History   HistoryRepository
	Recorder  *audit.Recorder
	Producer  Producer // необязателен
	Log       zerolog.Logger
}

// Service — write-path сотрудников. Каждая запись (найм, обновление,
// создание отдела с руководителем) выполняется в одной транзакции
// вместе с Audit Recorder; событие в Kafka публикуется после коммита.
type Service struct {
	tx        TxRunner
	employees EmployeeRepository
	history   HistoryRepository
	recorder  *audit.Recorder
	producer  Producer
	log       zerolog.Logger
}

func NewService(d ServiceDeps) *Service {
	return &Service{
		tx:        d.Tx,
		employees: d.Employees,
		history:   d.History,
		recorder:  d.Recorder,
		producer:  d.Producer,
		log:       d.Log.With().Str("component", "EmployeeService").Logger(),
	}
}

// Hire создаёт сотрудника. Recorder безусловно добавляет первую запись
// истории в той же транзакции.
func (s *Service) Hire(ctx context.Context, e dto.Employee) (int64, error) {
	if e.ManagerID != nil && e.EmployeeID != 0 && *e.ManagerID == e.EmployeeID {
		return 0, dto.ErrSelfManager
	}

	var created dto.Employee

	err := s.tx.InTx(ctx, func(ctx context.Context, r Repos) error {
		id, err := r.Employees.Insert(ctx, e)
		if err != nil {
			return fmt.Errorf("employees.Insert: %w", err)
		}

		created = e
		created.EmployeeID = id

		if created.ManagerID != nil && *created.ManagerID == id {
			return dto.ErrSelfManager
		}

		if _, err := s.recorder.RecordIfChanged(ctx, r.History, created, nil); err != nil {
			return err
		}

		return nil
	})
	if err != nil {
		return 0, err
	}

	s.notifyAssignment(ctx, created)

	return created.EmployeeID, nil
}

// Update перезаписывает карточку сотрудника. Снимок «до» читается под
// FOR UPDATE в той же транзакции; Recorder добавляет запись истории,
// только если сменилась должность. Возвращает true, если запись
// истории была добавлена.
func (s *Service) Update(ctx context.Context, e dto.Employee) (bool, error) {
	if e.ManagerID != nil && *e.ManagerID == e.EmployeeID {
		return false, dto.ErrSelfManager
	}

	var appended bool

	err := s.tx.InTx(ctx, func(ctx context.Context, r Repos) error {
		before, err := r.Employees.GetForUpdate(ctx, e.EmployeeID)
		if err != nil {
			return err
		}

		if err := r.Employees.Update(ctx, e); err != nil {
			return fmt.Errorf("employees.Update: %w", err)
		}

		appended, err = s.recorder.RecordIfChanged(ctx, r.History, e, before)

		return err
	})
	if err != nil {
		return false, err
	}

	if appended {
		s.notifyAssignment(ctx, e)
	}

	return appended, nil
}

// ApplyAssignment переводит сотрудника на другую должность/отдел,
// не трогая остальные поля карточки. Путь тот же, что у Update,
// поэтому история ведётся одинаково для HTTP и Kafka.
func (s *Service) ApplyAssignment(ctx context.Context, cmd dto.AssignmentChange) (bool, error) {
	var (
		appended bool
		after    dto.Employee
	)

	err := s.tx.InTx(ctx, func(ctx context.Context, r Repos) error {
		before, err := r.Employees.GetForUpdate(ctx, cmd.EmployeeID)
		if err != nil {
			return err
		}

		after = *before
		after.JobID = cmd.JobID
		if cmd.DepartmentID != nil {
			after.DepartmentID = cmd.DepartmentID
		}

		if err := r.Employees.Update(ctx, after); err != nil {
			return fmt.Errorf("employees.Update: %w", err)
		}

		appended, err = s.recorder.RecordIfChanged(ctx, r.History, after, before)

		return err
	})
	if err != nil {
		return false, err
	}

	if appended {
		s.notifyAssignment(ctx, after)
	}

	return appended, nil
}

// CreateDepartment создаёт отдел вместе с руководителем. Циклические
// обязательные FK не дают вставить строки по одной, поэтому проверка
// констрейнтов откладывается до коммита, id руководителя резервируется
// заранее, и обе строки вставляются в одной транзакции.
func (s *Service) CreateDepartment(ctx context.Context, d dto.Department, manager dto.Employee) (int64, int64, error) {
	var (
		deptID    int64
		managerID int64
		created   dto.Employee
	)

	err := s.tx.InTx(ctx, func(ctx context.Context, r Repos) error {
		if err := r.Departments.DeferConstraints(ctx); err != nil {
			return err
		}

		var err error
		managerID, err = r.Employees.NextID(ctx)
		if err != nil {
			return fmt.Errorf("employees.NextID: %w", err)
		}

		d.ManagerID = managerID
		deptID, err = r.Departments.Insert(ctx, d)
		if err != nil {
			return fmt.Errorf("departments.Insert: %w", err)
		}

		created = manager
		created.EmployeeID = managerID
		created.DepartmentID = &deptID

		if _, err := r.Employees.Insert(ctx, created); err != nil {
			return fmt.Errorf("employees.Insert: %w", err)
		}

		if _, err := s.recorder.RecordIfChanged(ctx, r.History, created, nil); err != nil {
			return err
		}

		return nil
	})
	if err != nil {
		return 0, 0, err
	}

	s.notifyAssignment(ctx, created)

	return deptID, managerID, nil
}

// GetHistory — отчёт по истории назначений одного сотрудника,
// отсортированный по дате начала по возрастанию.
//
// Существование сотрудника проверяется явно до чтения истории:
// ErrNotFound по неизвестному id отличим от пустой истории
// существующего сотрудника.
func (s *Service) GetHistory(ctx context.Context, employeeID int64) ([]dto.HistoryRecord, error) {
	exists, err := s.employees.Exists(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("employees.Exists: %w", err)
	}
	if !exists {
		return nil, dto.ErrNotFound
	}

	records, err := s.history.ListRecords(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("history.ListRecords: %w", err)
	}

	return records, nil
}

// notifyAssignment публикует событие о новом назначении после коммита.
// Публикация не входит в транзакцию: её ошибка логируется, но запись
// уже состоялась.
func (s *Service) notifyAssignment(ctx context.Context, e dto.Employee) {
	if s.producer == nil {
		return
	}

	if err := s.producer.ProduceAssignment(ctx, uuid.New(), e); err != nil {
		s.log.Error().
			Err(err).
			Int64("employee_id", e.EmployeeID).
			Msg("failed to publish assignment event")
	}
}
