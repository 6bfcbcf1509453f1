package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/L1nkStart/cgm-system-v1-sub000/models"
	"github.com/L1nkStart/cgm-system-v1-sub000/workflow"
)

// -- In-memory stores --

type mockCaseStore struct {
	cases       map[string]*models.Case
	history     []models.AuditLog
	deleteError error
	appendError error
}

func newMockCaseStore() *mockCaseStore {
	return &mockCaseStore{cases: make(map[string]*models.Case)}
}

func (m *mockCaseStore) List(_ context.Context, f CaseFilters) ([]models.CaseView, int64, error) {
	var views []models.CaseView
	for _, c := range m.cases {
		if f.AnalystID != "" && c.AssignedAnalystID != f.AnalystID {
			continue
		}
		if len(f.Statuses) > 0 && !contains(f.Statuses, c.Status) {
			continue
		}
		if len(f.States) > 0 && !contains(f.States, c.State) {
			continue
		}
		views = append(views, models.CaseView{Case: *c})
	}
	total := int64(len(views))
	offset := workflow.Offset(f.Page, f.Limit)
	if offset > len(views) {
		views = nil
	} else {
		views = views[offset:]
		if len(views) > f.Limit {
			views = views[:f.Limit]
		}
	}
	return views, total, nil
}

func (m *mockCaseStore) GetByID(_ context.Context, id string) (*models.Case, error) {
	c, ok := m.cases[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (m *mockCaseStore) GetView(_ context.Context, id string) (*models.CaseView, error) {
	c, ok := m.cases[id]
	if !ok {
		return nil, nil
	}
	return &models.CaseView{Case: *c}, nil
}

func (m *mockCaseStore) Create(_ context.Context, c *models.Case) error {
	cp := *c
	m.cases[c.ID] = &cp
	return nil
}

func (m *mockCaseStore) Save(_ context.Context, c *models.Case) error {
	cp := *c
	m.cases[c.ID] = &cp
	return nil
}

func (m *mockCaseStore) Delete(_ context.Context, id string) error {
	if m.deleteError != nil {
		return m.deleteError
	}
	delete(m.cases, id)
	return nil
}

func (m *mockCaseStore) History(_ context.Context, caseID string) ([]models.AuditLog, error) {
	var entries []models.AuditLog
	for _, e := range m.history {
		if e.CaseID == caseID {
			entries = append(entries, e)
		}
	}
	return entries, nil
}

func (m *mockCaseStore) AppendAuditLog(_ context.Context, entry *models.AuditLog) error {
	if m.appendError != nil {
		return m.appendError
	}
	m.history = append(m.history, *entry)
	return nil
}

type mockUserStore struct {
	users map[string]*models.User
}

func newMockUserStore(users ...*models.User) *mockUserStore {
	m := &mockUserStore{users: make(map[string]*models.User)}
	for _, u := range users {
		m.users[u.ID] = u
	}
	return m
}

func (m *mockUserStore) GetByID(_ context.Context, id string) (*models.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, nil
	}
	return u, nil
}

func (m *mockUserStore) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (m *mockUserStore) GetAll(_ context.Context) ([]models.User, error) {
	var out []models.User
	for _, u := range m.users {
		out = append(out, *u)
	}
	return out, nil
}

func (m *mockUserStore) Create(_ context.Context, u *models.User) error {
	m.users[u.ID] = u
	return nil
}

func (m *mockUserStore) Update(_ context.Context, u *models.User) error {
	m.users[u.ID] = u
	return nil
}

func (m *mockUserStore) UpdatePassword(_ context.Context, userID, hashedPassword string) error {
	if u, ok := m.users[userID]; ok {
		u.Password = hashedPassword
	}
	return nil
}

func (m *mockUserStore) Delete(_ context.Context, id string) error {
	delete(m.users, id)
	return nil
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

// -- Fixtures --

var (
	superuser = workflow.Session{UserID: "admin-1", Role: models.RoleSuperusuario}

	zuliaAnalyst = &models.User{
		ID:             "analyst-1",
		Email:          "analista@cgm.test",
		Name:           "Ana Pérez",
		Phone:          "0414-5550001",
		Role:           models.RoleAnalistaConcertado,
		AssignedStates: models.StringList{"Zulia"},
		IsActive:       true,
	}
)

func newCaseFixture(id, state, status string) *models.Case {
	return &models.Case{
		ID:                id,
		ClientID:          "client-1",
		InsuranceHolderID: "holder-1",
		BaremoID:          "baremo-1",
		AssignedAnalystID: zuliaAnalyst.ID,
		Date:              time.Now(),
		State:             state,
		Status:            status,
	}
}

func newCaseService(cases *mockCaseStore, extraUsers ...*models.User) *CaseService {
	users := newMockUserStore(append([]*models.User{zuliaAnalyst}, extraUsers...)...)
	return NewCaseService(cases, users)
}

// -- Tests --

func TestCreateCaseAnalystStateGating(t *testing.T) {
	store := newMockCaseStore()
	svc := newCaseService(store)

	miranda := newCaseFixture("", "Miranda", "")
	_, err := svc.Create(context.Background(), superuser, miranda)
	assert.ErrorIs(t, err, ErrAnalystStateMismatch)

	zulia := newCaseFixture("", "Zulia", "")
	created, err := svc.Create(context.Background(), superuser, zulia)
	require.NoError(t, err)
	assert.Equal(t, workflow.StatusPendiente, created.Status)
	assert.Zero(t, created.TotalInvoiceAmount)
	assert.False(t, created.InvoiceGenerated)
	assert.NotEmpty(t, created.ID)
}

func TestCreateCaseAnalystWithoutStates(t *testing.T) {
	bare := &models.User{ID: "auditor-1", Role: models.RoleMedicoAuditor, IsActive: true}
	store := newMockCaseStore()
	svc := newCaseService(store, bare)

	c := newCaseFixture("", "Zulia", "")
	c.AssignedAnalystID = bare.ID
	_, err := svc.Create(context.Background(), superuser, c)
	assert.ErrorIs(t, err, ErrAnalystNoStates)
}

func TestCreateCaseMissingRequiredField(t *testing.T) {
	store := newMockCaseStore()
	svc := newCaseService(store)

	c := newCaseFixture("", "Zulia", "")
	c.ClientID = ""
	_, err := svc.Create(context.Background(), superuser, c)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "clientId")
}

func TestUpdateResultsForcesAuditQueue(t *testing.T) {
	store := newMockCaseStore()
	store.cases["c1"] = newCaseFixture("c1", "Zulia", workflow.StatusAtendido)
	svc := newCaseService(store)

	results := "paciente atendido sin complicaciones"
	updated, err := svc.Update(context.Background(), superuser, "c1", models.CaseUpdate{Results: &results})
	require.NoError(t, err)
	assert.Equal(t, workflow.StatusPendientePorAuditar, updated.Status)

	// Already-approved cases keep their status.
	store.cases["c2"] = newCaseFixture("c2", "Zulia", workflow.StatusAuditadoAprobado)
	updated, err = svc.Update(context.Background(), superuser, "c2", models.CaseUpdate{Results: &results})
	require.NoError(t, err)
	assert.Equal(t, workflow.StatusAuditadoAprobado, updated.Status)
}

func TestUpdateValidatesEffectiveMergedValues(t *testing.T) {
	store := newMockCaseStore()
	store.cases["c1"] = newCaseFixture("c1", "Zulia", workflow.StatusPendiente)
	svc := newCaseService(store)

	// Moving the case out of the analyst's territory must fail even though
	// the payload never mentions the analyst.
	state := "Miranda"
	_, err := svc.Update(context.Background(), superuser, "c1", models.CaseUpdate{State: &state})
	assert.ErrorIs(t, err, ErrAnalystStateMismatch)
}

func TestUpdateReplacesListFieldsWhole(t *testing.T) {
	store := newMockCaseStore()
	c := newCaseFixture("c1", "Zulia", workflow.StatusPendiente)
	c.Services = models.ServiceList{{Name: "Consulta", Amount: 50}}
	store.cases["c1"] = c
	svc := newCaseService(store)

	replacement := models.ServiceList{{Name: "Rayos X", Amount: 120, Attended: true}}
	updated, err := svc.Update(context.Background(), superuser, "c1", models.CaseUpdate{Services: &replacement})
	require.NoError(t, err)
	require.Len(t, updated.Services, 1)
	assert.Equal(t, "Rayos X", updated.Services[0].Name)
}

func TestAuditRejectRequiresNotes(t *testing.T) {
	store := newMockCaseStore()
	store.cases["c1"] = newCaseFixture("c1", "Zulia", workflow.StatusPendientePorAuditar)
	svc := newCaseService(store)

	auditor := workflow.Session{UserID: "auditor-1", Role: models.RoleMedicoAuditor, AssignedStates: []string{"Zulia"}}
	_, err := svc.Audit(context.Background(), auditor, "c1", false, "   ")
	assert.ErrorIs(t, err, workflow.ErrRejectionNotesRequired)
	assert.Equal(t, workflow.StatusPendientePorAuditar, store.cases["c1"].Status, "status must remain unchanged")

	verdict, err := svc.Audit(context.Background(), auditor, "c1", false, "faltan informes")
	require.NoError(t, err)
	assert.Equal(t, workflow.StatusAuditadoRechazado, verdict.Status)
	assert.Equal(t, "faltan informes", verdict.AuditNotes)
}

func TestAuditApproveWritesHistory(t *testing.T) {
	store := newMockCaseStore()
	store.cases["c1"] = newCaseFixture("c1", "Zulia", workflow.StatusPendientePorAuditar)
	svc := newCaseService(store)

	auditor := workflow.Session{UserID: "auditor-1", Role: models.RoleMedicoAuditor, AssignedStates: []string{"Zulia"}}
	verdict, err := svc.Audit(context.Background(), auditor, "c1", true, "")
	require.NoError(t, err)
	assert.Equal(t, workflow.StatusAuditadoAprobado, verdict.Status)

	require.Len(t, store.history, 1)
	assert.Equal(t, workflow.StatusPendientePorAuditar, store.history[0].FromStatus)
	assert.Equal(t, workflow.StatusAuditadoAprobado, store.history[0].ToStatus)
}

func TestStatusChangeSurvivesHistoryWriteFailure(t *testing.T) {
	store := newMockCaseStore()
	store.cases["c1"] = newCaseFixture("c1", "Zulia", workflow.StatusAtendido)
	store.appendError = errors.New("audit_logs unavailable")
	svc := newCaseService(store)

	results := "resultados cargados"
	updated, err := svc.Update(context.Background(), superuser, "c1", models.CaseUpdate{Results: &results})
	require.NoError(t, err)
	assert.Equal(t, workflow.StatusPendientePorAuditar, updated.Status)
	assert.Equal(t, workflow.StatusPendientePorAuditar, store.cases["c1"].Status)
	assert.Empty(t, store.history)
}

func TestAuditRequiresAuditorRole(t *testing.T) {
	store := newMockCaseStore()
	store.cases["c1"] = newCaseFixture("c1", "Zulia", workflow.StatusPendientePorAuditar)
	svc := newCaseService(store)

	_, err := svc.Audit(context.Background(), superuser, "c1", true, "")
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestUploadMedicalDocumentTransitions(t *testing.T) {
	store := newMockCaseStore()
	store.cases["c1"] = newCaseFixture("c1", "Zulia", workflow.StatusAtendido)
	store.cases["c2"] = newCaseFixture("c2", "Zulia", workflow.StatusPendiente)
	svc := newCaseService(store)

	doc := models.Document{Name: "informe.pdf", URL: "https://files/informe.pdf"}

	updated, err := svc.UploadDocuments(context.Background(), superuser, "c1", DocumentCategoryMedical, []models.Document{doc})
	require.NoError(t, err)
	assert.Equal(t, workflow.StatusPendientePorAuditar, updated.Status)
	assert.Len(t, updated.Documents, 1)

	// Upload outside Atendido leaves the status untouched.
	updated, err = svc.UploadDocuments(context.Background(), superuser, "c2", DocumentCategoryMedical, []models.Document{doc})
	require.NoError(t, err)
	assert.Equal(t, workflow.StatusPendiente, updated.Status)
}

func TestUploadPreInvoiceDocumentNeverTransitions(t *testing.T) {
	store := newMockCaseStore()
	store.cases["c1"] = newCaseFixture("c1", "Zulia", workflow.StatusAtendido)
	svc := newCaseService(store)

	doc := models.Document{Name: "prefactura.pdf", URL: "https://files/prefactura.pdf"}
	updated, err := svc.UploadDocuments(context.Background(), superuser, "c1", DocumentCategoryPreInvoice, []models.Document{doc})
	require.NoError(t, err)
	assert.Equal(t, workflow.StatusAtendido, updated.Status)
	assert.Len(t, updated.PreInvoiceDocuments, 1)
}

func TestGeneratePreInvoice(t *testing.T) {
	store := newMockCaseStore()
	store.cases["c1"] = newCaseFixture("c1", "Zulia", workflow.StatusAuditadoAprobado)
	store.cases["c2"] = newCaseFixture("c2", "Zulia", workflow.StatusPendiente)
	svc := newCaseService(store)

	finance := workflow.Session{UserID: "jefe-1", Role: models.RoleJefeFinanciero}

	c, err := svc.GeneratePreInvoice(context.Background(), finance, "c1", 800, 150)
	require.NoError(t, err)
	assert.Equal(t, workflow.StatusPreFacturado, c.Status)
	assert.Equal(t, float64(950), c.TotalInvoiceAmount)
	assert.True(t, c.InvoiceGenerated)

	_, err = svc.GeneratePreInvoice(context.Background(), finance, "c2", 800, 150)
	assert.ErrorIs(t, err, workflow.ErrPreInvoiceNotApproved)

	analyst := workflow.Session{UserID: zuliaAnalyst.ID, Role: models.RoleAnalistaConcertado, AssignedStates: []string{"Zulia"}}
	_, err = svc.GeneratePreInvoice(context.Background(), analyst, "c1", 1, 1)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetDistinguishesDeniedFromMissing(t *testing.T) {
	store := newMockCaseStore()
	store.cases["c1"] = newCaseFixture("c1", "Miranda", workflow.StatusPendiente)
	svc := newCaseService(store)

	scoped := workflow.Session{UserID: "u1", Role: models.RoleMedicoAuditor, AssignedStates: []string{"Lara"}}

	_, err := svc.Get(context.Background(), scoped, "c1")
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = svc.Get(context.Background(), scoped, "missing")
	assert.ErrorIs(t, err, ErrCaseNotFound)
}

func TestListStateScopedVisibility(t *testing.T) {
	store := newMockCaseStore()
	store.cases["c1"] = newCaseFixture("c1", "Lara", workflow.StatusPendiente)
	store.cases["c2"] = newCaseFixture("c2", "Miranda", workflow.StatusPendiente)
	svc := newCaseService(store)

	// Empty assignment sees zero cases regardless of filters.
	bare := workflow.Session{UserID: "u1", Role: models.RoleMedicoAuditor}
	views, page, err := svc.List(context.Background(), bare, ListParams{States: []string{"Lara", "Miranda"}})
	require.NoError(t, err)
	assert.Empty(t, views)
	assert.Equal(t, int64(0), page.TotalCount)

	// Assigned states bound the listing.
	scoped := workflow.Session{UserID: "u1", Role: models.RoleMedicoAuditor, AssignedStates: []string{"Lara"}}
	views, page, err = svc.List(context.Background(), scoped, ListParams{})
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "Lara", views[0].State)
	assert.Equal(t, int64(1), page.TotalCount)
}

func TestListPaginationMeta(t *testing.T) {
	store := newMockCaseStore()
	for i := 0; i < 25; i++ {
		id := string(rune('a' + i))
		store.cases[id] = newCaseFixture(id, "Zulia", workflow.StatusPendiente)
	}
	svc := newCaseService(store)

	views, page, err := svc.List(context.Background(), superuser, ListParams{Page: 3, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, views, 5)
	assert.Equal(t, 3, page.TotalPages)
	assert.False(t, page.HasNextPage)
	assert.True(t, page.HasPreviousPage)
}

func TestDeleteCase(t *testing.T) {
	store := newMockCaseStore()
	store.cases["c1"] = newCaseFixture("c1", "Zulia", workflow.StatusPendiente)
	svc := newCaseService(store)

	// Only privileged roles may delete.
	analyst := workflow.Session{UserID: "u1", Role: models.RoleAnalistaConcertado, AssignedStates: []string{"Zulia"}}
	err := svc.Delete(context.Background(), analyst, "c1")
	assert.ErrorIs(t, err, ErrAccessDenied)

	// The payment guard propagates.
	store.deleteError = ErrCaseHasPayments
	err = svc.Delete(context.Background(), superuser, "c1")
	assert.ErrorIs(t, err, ErrCaseHasPayments)

	store.deleteError = nil
	require.NoError(t, svc.Delete(context.Background(), superuser, "c1"))
	assert.NotContains(t, store.cases, "c1")
}
