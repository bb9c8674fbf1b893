package employees

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Artexxx/HR-Registry/internal/audit"
	"github.com/Artexxx/HR-Registry/internal/dto"
)

// memStore — состояние «базы» для тестов. TxRunner копирует его,
// прогоняет fn на копии и коммитит копию обратно только при успехе —
// так проявляется откат транзакции при ошибке Recorder'а.
type memStore struct {
	nextEmployeeID int64
	nextDeptID     int64
	seq            int

	employees   map[int64]dto.Employee
	history     []dto.JobHistoryEntry
	departments map[int64]dto.Department
	jobs        map[int64]struct{}

	deferredConstraints bool
	failHistoryInsert   bool
}

func newMemStore() *memStore {
	return &memStore{
		employees:   map[int64]dto.Employee{},
		departments: map[int64]dto.Department{},
	}
}

func (s *memStore) clone() *memStore {
	c := *s
	c.employees = map[int64]dto.Employee{}
	for k, v := range s.employees {
		c.employees[k] = v
	}
	c.departments = map[int64]dto.Department{}
	for k, v := range s.departments {
		c.departments[k] = v
	}
	c.history = append([]dto.JobHistoryEntry(nil), s.history...)
	return &c
}

type memEmployees struct{ s *memStore }

func (m *memEmployees) NextID(context.Context) (int64, error) {
	m.s.nextEmployeeID++
	return m.s.nextEmployeeID, nil
}

func (m *memEmployees) Insert(_ context.Context, e dto.Employee) (int64, error) {
	if e.EmployeeID == 0 {
		m.s.nextEmployeeID++
		e.EmployeeID = m.s.nextEmployeeID
	}
	if _, ok := m.s.employees[e.EmployeeID]; ok {
		return 0, dto.ErrAlreadyExists
	}
	m.s.employees[e.EmployeeID] = e
	return e.EmployeeID, nil
}

func (m *memEmployees) Update(_ context.Context, e dto.Employee) error {
	if _, ok := m.s.employees[e.EmployeeID]; !ok {
		return dto.ErrNotFound
	}
	m.s.employees[e.EmployeeID] = e
	return nil
}

func (m *memEmployees) Exists(_ context.Context, id int64) (bool, error) {
	_, ok := m.s.employees[id]
	return ok, nil
}

func (m *memEmployees) GetByID(_ context.Context, id int64) (*dto.Employee, error) {
	e, ok := m.s.employees[id]
	if !ok {
		return nil, dto.ErrNotFound
	}
	return &e, nil
}

func (m *memEmployees) GetForUpdate(ctx context.Context, id int64) (*dto.Employee, error) {
	return m.GetByID(ctx, id)
}

type memHistory struct{ s *memStore }

func (m *memHistory) Insert(_ context.Context, h dto.JobHistoryEntry) error {
	if m.s.failHistoryInsert {
		return errors.New("insert failed")
	}
	if h.StartDate == "" {
		m.s.seq++
		h.StartDate = fmt.Sprintf("2024-01-01T00:00:%02dZ", m.s.seq)
	}
	m.s.history = append(m.s.history, h)
	return nil
}

func (m *memHistory) ListRecords(_ context.Context, employeeID int64) ([]dto.HistoryRecord, error) {
	var out []dto.HistoryRecord
	for _, h := range m.s.history {
		if h.EmployeeID != employeeID {
			continue
		}
		e := m.s.employees[employeeID]
		out = append(out, dto.HistoryRecord{
			EmployeeID:   h.EmployeeID,
			StartDate:    h.StartDate,
			EndDate:      h.EndDate,
			LastName:     e.LastName,
			Email:        e.Email,
			HireDate:     e.HireDate,
			JobID:        h.JobID,
			ManagerID:    e.ManagerID,
			DepartmentID: h.DepartmentID,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartDate < out[j].StartDate })
	return out, nil
}

type memDepts struct{ s *memStore }

func (m *memDepts) DeferConstraints(context.Context) error {
	m.s.deferredConstraints = true
	return nil
}

func (m *memDepts) Insert(_ context.Context, d dto.Department) (int64, error) {
	if !m.s.deferredConstraints {
		// имитация немедленной проверки FK: руководителя ещё нет
		if _, ok := m.s.employees[d.ManagerID]; !ok {
			return 0, errors.New("fk violation: manager does not exist")
		}
	}
	m.s.nextDeptID++
	d.DepartmentID = m.s.nextDeptID
	m.s.departments[d.DepartmentID] = d
	return d.DepartmentID, nil
}

type memTxRunner struct{ s *memStore }

func (r *memTxRunner) InTx(ctx context.Context, fn func(ctx context.Context, repos Repos) error) error {
	work := r.s.clone()
	repos := Repos{
		Employees:   &memEmployees{work},
		History:     &memHistory{work},
		Departments: &memDepts{work},
	}
	if err := fn(ctx, repos); err != nil {
		return err
	}
	work.deferredConstraints = false // конец транзакции
	*r.s = *work
	return nil
}

func newTestService(s *memStore) *Service {
	return NewService(ServiceDeps{
		Tx:        &memTxRunner{s},
		Employees: &memEmployees{s},
		History:   &memHistory{s},
		Recorder:  audit.NewRecorder(zerolog.Nop()),
		Log:       zerolog.Nop(),
	})
}

func int64ptr(v int64) *int64 { return &v }

func testEmployee() dto.Employee {
	return dto.Employee{
		LastName: "Иванова",
		Email:    "anna@company.ru",
		HireDate: "2020-02-04",
		JobID:    "IT_PROG",
		Salary:   95000,
	}
}

func TestHire_AppendsExactlyOneOpenHistoryRow(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store)

	id, err := svc.Hire(context.Background(), testEmployee())
	require.NoError(t, err)
	require.NotZero(t, id)

	require.Len(t, store.history, 1)
	entry := store.history[0]
	assert.Equal(t, id, entry.EmployeeID)
	assert.Equal(t, "IT_PROG", entry.JobID)
	assert.Nil(t, entry.EndDate)
}

func TestUpdate_UnchangedAssignment_HistoryCountUnchanged(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store)

	id, err := svc.Hire(context.Background(), testEmployee())
	require.NoError(t, err)

	updated := store.employees[id]
	updated.Salary = 120000

	appended, err := svc.Update(context.Background(), updated)
	require.NoError(t, err)
	assert.False(t, appended)
	assert.Len(t, store.history, 1)
	assert.Equal(t, float64(120000), store.employees[id].Salary)
}

func TestUpdate_ChangedAssignment_AppendsOneRowPriorUntouched(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store)

	id, err := svc.Hire(context.Background(), testEmployee())
	require.NoError(t, err)

	first := store.history[0]

	updated := store.employees[id]
	updated.JobID = "AD_VP"
	updated.DepartmentID = int64ptr(90)

	appended, err := svc.Update(context.Background(), updated)
	require.NoError(t, err)
	assert.True(t, appended)

	require.Len(t, store.history, 2)
	assert.Equal(t, first, store.history[0], "прежние записи не изменяются")
	assert.Equal(t, "AD_VP", store.history[1].JobID)
	// end_date предыдущей записи намеренно не закрывается
	assert.Nil(t, store.history[0].EndDate)
	assert.Nil(t, store.history[1].EndDate)
}

func TestUpdate_HistoryInsertFailure_RollsBackWholeWrite(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store)

	id, err := svc.Hire(context.Background(), testEmployee())
	require.NoError(t, err)

	store.failHistoryInsert = true

	updated := store.employees[id]
	updated.JobID = "AD_VP"

	_, err = svc.Update(context.Background(), updated)
	require.Error(t, err)

	// ни записи истории, ни обновления карточки
	assert.Len(t, store.history, 1)
	assert.Equal(t, "IT_PROG", store.employees[id].JobID)
}

func TestUpdate_SelfManager_Rejected(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store)

	id, err := svc.Hire(context.Background(), testEmployee())
	require.NoError(t, err)

	updated := store.employees[id]
	updated.ManagerID = &id

	_, err = svc.Update(context.Background(), updated)
	assert.ErrorIs(t, err, dto.ErrSelfManager)
}

func TestApplyAssignment_ChangedAndUnchanged(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store)

	id, err := svc.Hire(context.Background(), testEmployee())
	require.NoError(t, err)

	appended, err := svc.ApplyAssignment(context.Background(), dto.AssignmentChange{
		EmployeeID: id, JobID: "QA_ENG", DepartmentID: int64ptr(50),
	})
	require.NoError(t, err)
	assert.True(t, appended)
	assert.Equal(t, "QA_ENG", store.employees[id].JobID)
	require.Len(t, store.history, 2)

	// повтор той же команды назначения ничего не добавляет
	appended, err = svc.ApplyAssignment(context.Background(), dto.AssignmentChange{
		EmployeeID: id, JobID: "QA_ENG",
	})
	require.NoError(t, err)
	assert.False(t, appended)
	assert.Len(t, store.history, 2)
}

func TestApplyAssignment_UnknownEmployee_NotFound(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store)

	_, err := svc.ApplyAssignment(context.Background(), dto.AssignmentChange{
		EmployeeID: 999999, JobID: "QA_ENG",
	})
	assert.ErrorIs(t, err, dto.ErrNotFound)
}

func TestCreateDepartment_TwoPhaseWithDeferredConstraints(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store)

	manager := testEmployee()
	dept := dto.Department{DepartmentName: "Отдел разработки", LocationID: 1700}

	deptID, managerID, err := svc.CreateDepartment(context.Background(), dept, manager)
	require.NoError(t, err)
	require.NotZero(t, deptID)
	require.NotZero(t, managerID)

	created := store.departments[deptID]
	assert.Equal(t, managerID, created.ManagerID)

	mgr := store.employees[managerID]
	require.NotNil(t, mgr.DepartmentID)
	assert.Equal(t, deptID, *mgr.DepartmentID)

	// руководитель тоже получает запись истории
	require.Len(t, store.history, 1)
	assert.Equal(t, managerID, store.history[0].EmployeeID)
}

func TestGetHistory_UnknownEmployee_NotFound(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store)

	_, err := svc.GetHistory(context.Background(), 999999)
	assert.ErrorIs(t, err, dto.ErrNotFound)
}

func TestGetHistory_OrderedAscendingAndIdempotent(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store)

	id, err := svc.Hire(context.Background(), testEmployee())
	require.NoError(t, err)
	store.history = nil

	// записи добавлены не по порядку
	store.history = append(store.history,
		dto.JobHistoryEntry{EmployeeID: id, StartDate: "2020-02-04T00:00:00Z", JobID: "AD_VP"},
		dto.JobHistoryEntry{EmployeeID: id, StartDate: "2008-05-26T00:00:00Z", JobID: "IT_PROG"},
	)

	first, err := svc.GetHistory(context.Background(), id)
	require.NoError(t, err)
	require.Len(t, first, 2)
	assert.Equal(t, "2008-05-26T00:00:00Z", first[0].StartDate)
	assert.Equal(t, "2020-02-04T00:00:00Z", first[1].StartDate)

	second, err := svc.GetHistory(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestGetHistory_ExistingEmployeeWithoutRows_EmptyNotError(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store)

	id, err := svc.Hire(context.Background(), testEmployee())
	require.NoError(t, err)
	store.history = nil

	rows, err := svc.GetHistory(context.Background(), id)
	require.NoError(t, err)
	assert.Empty(t, rows)
}
