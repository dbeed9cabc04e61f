package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"gorm.io/gorm"

	"labportal/internal/model"
	"labportal/internal/repository"
)

// ── Mock UserRepository ──

type mockUserRepo struct {
	users map[string]*model.User // key: user_id
	err   error
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if m.err != nil {
		return m.err
	}
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByUsername(_ context.Context, username string) (*model.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	for _, u := range m.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

// ── Mock LabRepository ──

type mockLabRepo struct {
	labs map[string]string // username → lab
	err  error
}

func newMockLabRepo() *mockLabRepo {
	return &mockLabRepo{labs: make(map[string]string)}
}

func (m *mockLabRepo) GetByUsername(_ context.Context, username string) (*model.UserLab, error) {
	if m.err != nil {
		return nil, m.err
	}
	if lab, ok := m.labs[username]; ok {
		return &model.UserLab{Username: username, Lab: lab}, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockLabRepo) Assign(_ context.Context, ul *model.UserLab) error {
	if m.err != nil {
		return m.err
	}
	m.labs[ul.Username] = ul.Lab
	return nil
}

// ── Mock JobRepository ──

type mockJobRepo struct {
	jobs        map[string]*model.Job
	err         error
	lastFilters *repository.JobListFilters
}

func newMockJobRepo() *mockJobRepo {
	return &mockJobRepo{jobs: make(map[string]*model.Job)}
}

func (m *mockJobRepo) GetByNumber(_ context.Context, number string) (*model.Job, error) {
	if m.err != nil {
		return nil, m.err
	}
	if j, ok := m.jobs[number]; ok {
		copied := *j
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockJobRepo) GetCustomer(ctx context.Context, number string) (string, error) {
	j, err := m.GetByNumber(ctx, number)
	if err != nil {
		return "", err
	}
	return j.Customer, nil
}

func (m *mockJobRepo) List(_ context.Context, filters *repository.JobListFilters, offset, limit int) ([]model.Job, int64, error) {
	m.lastFilters = filters
	if m.err != nil {
		return nil, 0, m.err
	}

	var result []model.Job
	for _, j := range m.jobs {
		if filters.Customer != "" && j.Customer != filters.Customer {
			continue
		}
		if len(filters.Statuses) > 0 && !containsInt(filters.Statuses, j.Status) {
			continue
		}
		if filters.TypePrefix != "" && !strings.HasPrefix(j.Type, filters.TypePrefix) {
			continue
		}
		if filters.From != nil && (j.DeliveryDate == nil || j.DeliveryDate.Before(*filters.From)) {
			continue
		}
		if filters.To != nil && (j.DeliveryDate == nil || !j.DeliveryDate.Before(*filters.To)) {
			continue
		}
		result = append(result, *j)
	}
	sort.Slice(result, func(a, b int) bool { return result[a].Number > result[b].Number })

	total := int64(len(result))
	if offset >= len(result) {
		return []model.Job{}, total, nil
	}
	end := offset + limit
	if end > len(result) {
		end = len(result)
	}
	return result[offset:end], total, nil
}

func (m *mockJobRepo) Create(_ context.Context, job *model.Job) error {
	if m.err != nil {
		return m.err
	}
	m.jobs[job.Number] = job
	return nil
}

func (m *mockJobRepo) SaveAttributes(_ context.Context, job *model.Job) error {
	if m.err != nil {
		return m.err
	}
	copied := *job
	m.jobs[job.Number] = &copied
	return nil
}

func containsInt(list []int, v int) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}

// ── Mock StageRepository ──

type mockStageRepo struct {
	stages map[string][]model.Stage
	err    error
}

func newMockStageRepo() *mockStageRepo {
	return &mockStageRepo{stages: make(map[string][]model.Stage)}
}

func (m *mockStageRepo) ListByJob(_ context.Context, number string) ([]model.Stage, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.stages[number], nil
}

// ── Mock DeliveryRepository ──

type mockDeliveryRepo struct {
	deliveries []model.Delivery
	err        error
}

func newMockDeliveryRepo() *mockDeliveryRepo {
	return &mockDeliveryRepo{}
}

func (m *mockDeliveryRepo) ListTopLevelByJob(_ context.Context, number string) ([]model.Delivery, error) {
	if m.err != nil {
		return nil, m.err
	}
	var result []model.Delivery
	for _, d := range m.deliveries {
		if d.JobNumber == number && d.Parent == 0 {
			result = append(result, d)
		}
	}
	return result, nil
}

func (m *mockDeliveryRepo) ListTopLevelByCustomer(_ context.Context, customer string, from, to time.Time) ([]model.Delivery, error) {
	if m.err != nil {
		return nil, m.err
	}
	var result []model.Delivery
	for _, d := range m.deliveries {
		if d.Parent != 0 || d.Job == nil || d.Job.Customer != customer {
			continue
		}
		if d.Date.Before(from) || !d.Date.Before(to) {
			continue
		}
		result = append(result, d)
	}
	return result, nil
}

// ── Mock ColorRepository ──

type mockColorRepo struct {
	hex map[string]string
	err error
}

func newMockColorRepo() *mockColorRepo {
	return &mockColorRepo{hex: make(map[string]string)}
}

func (m *mockColorRepo) ListByNames(_ context.Context, names []string) ([]model.Color, error) {
	if m.err != nil {
		return nil, m.err
	}
	var result []model.Color
	for _, n := range names {
		if h, ok := m.hex[n]; ok {
			result = append(result, model.Color{Name: n, Hex: h})
		}
	}
	return result, nil
}

// ── Mock ProofRepository ──

type mockProofRepo struct {
	proofs map[string]*model.Proof
	err    error
}

func newMockProofRepo() *mockProofRepo {
	return &mockProofRepo{proofs: make(map[string]*model.Proof)}
}

func (m *mockProofRepo) GetByNumber(_ context.Context, number string) (*model.Proof, error) {
	if m.err != nil {
		return nil, m.err
	}
	if p, ok := m.proofs[number]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockProofRepo) ListByNumbers(_ context.Context, customer string, numbers []string) ([]model.Proof, error) {
	if m.err != nil {
		return nil, m.err
	}
	var result []model.Proof
	for _, n := range numbers {
		if p, ok := m.proofs[n]; ok && p.Customer == customer {
			result = append(result, *p)
		}
	}
	return result, nil
}

// ── Mock RegistrationRepository ──

type mockRegistrationRepo struct {
	regs   map[int64]*model.Registration
	nextID int64
	err    error
}

func newMockRegistrationRepo() *mockRegistrationRepo {
	return &mockRegistrationRepo{regs: make(map[int64]*model.Registration), nextID: 1}
}

func (m *mockRegistrationRepo) add(reg model.Registration) {
	if reg.ID == 0 {
		reg.ID = m.nextID
	}
	if reg.ID >= m.nextID {
		m.nextID = reg.ID + 1
	}
	m.regs[reg.ID] = &reg
}

func (m *mockRegistrationRepo) GetByID(_ context.Context, id int64) (*model.Registration, error) {
	if m.err != nil {
		return nil, m.err
	}
	if r, ok := m.regs[id]; ok {
		copied := *r
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockRegistrationRepo) ListByJob(_ context.Context, number string) ([]model.Registration, error) {
	if m.err != nil {
		return nil, m.err
	}
	var result []model.Registration
	for _, r := range m.regs {
		if r.JobNumber == number {
			result = append(result, *r)
		}
	}
	sort.Slice(result, func(a, b int) bool { return result[a].Date.After(result[b].Date) })
	return result, nil
}

func (m *mockRegistrationRepo) FirstByJob(_ context.Context, number string) (*model.Registration, error) {
	if m.err != nil {
		return nil, m.err
	}
	var first *model.Registration
	for _, r := range m.regs {
		if r.JobNumber != number || r.Code == "" {
			continue
		}
		if first == nil || r.Date.Before(first.Date) {
			first = r
		}
	}
	if first == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return first, nil
}

func (m *mockRegistrationRepo) CountByCode(_ context.Context, code string) (int64, error) {
	if m.err != nil {
		return 0, m.err
	}
	var n int64
	for _, r := range m.regs {
		if r.Code == code {
			n++
		}
	}
	return n, nil
}

func (m *mockRegistrationRepo) Create(_ context.Context, reg *model.Registration) error {
	if m.err != nil {
		return m.err
	}
	reg.ID = m.nextID
	m.nextID++
	copied := *reg
	m.regs[reg.ID] = &copied
	return nil
}

func (m *mockRegistrationRepo) Update(_ context.Context, reg *model.Registration) error {
	if m.err != nil {
		return m.err
	}
	copied := *reg
	m.regs[reg.ID] = &copied
	return nil
}

func (m *mockRegistrationRepo) Delete(_ context.Context, id int64) error {
	if m.err != nil {
		return m.err
	}
	delete(m.regs, id)
	return nil
}

// ── Mock ExternalOrderRepository ──

type mockExternalOrderRepo struct {
	bySubOrder map[string]string // suborder → location
	byProject  map[string]string // project → location
	err        error
}

func newMockExternalOrderRepo() *mockExternalOrderRepo {
	return &mockExternalOrderRepo{
		bySubOrder: make(map[string]string),
		byProject:  make(map[string]string),
	}
}

func (m *mockExternalOrderRepo) GetBySubOrder(_ context.Context, subOrderID string) (*model.ExternalOrder, error) {
	if m.err != nil {
		return nil, m.err
	}
	if loc, ok := m.bySubOrder[subOrderID]; ok {
		return &model.ExternalOrder{SubOrderID: subOrderID, Location: loc}, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockExternalOrderRepo) GetByProject(_ context.Context, projectID string) (*model.ExternalOrder, error) {
	if m.err != nil {
		return nil, m.err
	}
	if loc, ok := m.byProject[projectID]; ok {
		return &model.ExternalOrder{ProjectID: projectID, Location: loc}, nil
	}
	return nil, gorm.ErrRecordNotFound
}

// ── 测试夹具 ──

type mockRepos struct {
	user     *mockUserRepo
	lab      *mockLabRepo
	job      *mockJobRepo
	stage    *mockStageRepo
	delivery *mockDeliveryRepo
	color    *mockColorRepo
	proof    *mockProofRepo
	reg      *mockRegistrationRepo
	order    *mockExternalOrderRepo
}

func newMockRepos() (*repository.Repository, *mockRepos) {
	m := &mockRepos{
		user:     newMockUserRepo(),
		lab:      newMockLabRepo(),
		job:      newMockJobRepo(),
		stage:    newMockStageRepo(),
		delivery: newMockDeliveryRepo(),
		color:    newMockColorRepo(),
		proof:    newMockProofRepo(),
		reg:      newMockRegistrationRepo(),
		order:    newMockExternalOrderRepo(),
	}
	repo := &repository.Repository{
		User:          m.user,
		Lab:           m.lab,
		Job:           m.job,
		Stage:         m.stage,
		Delivery:      m.delivery,
		Color:         m.color,
		Proof:         m.proof,
		Registration:  m.reg,
		ExternalOrder: m.order,
	}
	return repo, m
}
