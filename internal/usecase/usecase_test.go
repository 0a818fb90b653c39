package usecase_test

import (
	"context"
	"testing"
	"time"

	"nextcareer-backend/internal/domain"
	"nextcareer-backend/internal/usecase"
	"nextcareer-backend/pkg/apperror"
	"nextcareer-backend/pkg/logger"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func init() {
	logger.Init()
}

const (
	candidateID = "3b241101-e2bb-4255-8caf-4136c566a962"
	posterID    = "9f8c1d4e-5a6b-4c7d-8e9f-0a1b2c3d4e5f"
)

// Mock Repositories

type MockApplicationRepo struct {
	mock.Mock
}

func (m *MockApplicationRepo) Insert(ctx context.Context, jobID int64, userID string, appliedOn time.Time) error {
	return m.Called(ctx, jobID, userID, appliedOn).Error(0)
}
func (m *MockApplicationRepo) Exists(ctx context.Context, jobID int64, userID string) (bool, error) {
	args := m.Called(ctx, jobID, userID)
	return args.Bool(0), args.Error(1)
}
func (m *MockApplicationRepo) ListByJob(ctx context.Context, jobID int64) ([]domain.AppliedUser, error) {
	args := m.Called(ctx, jobID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AppliedUser), args.Error(1)
}
func (m *MockApplicationRepo) CountByJob(ctx context.Context, jobID int64) (int64, error) {
	args := m.Called(ctx, jobID)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockApplicationRepo) AddProgressStage(ctx context.Context, jobID int64, userID, stage string) (bool, error) {
	args := m.Called(ctx, jobID, userID, stage)
	return args.Bool(0), args.Error(1)
}

type MockJobRepo struct {
	mock.Mock
}

func (m *MockJobRepo) GetByID(ctx context.Context, id int64) (*domain.Job, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Job), args.Error(1)
}
func (m *MockJobRepo) IncrementView(ctx context.Context, id int64) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockJobRepo) AddCompletedStage(ctx context.Context, id int64, stage string) error {
	return m.Called(ctx, id, stage).Error(0)
}
func (m *MockJobRepo) IncrementRecruited(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type MockScheduleRepo struct {
	mock.Mock
}

func (m *MockScheduleRepo) Replace(ctx context.Context, s *domain.Schedule) error {
	return m.Called(ctx, s).Error(0)
}
func (m *MockScheduleRepo) GetByJobAndCandidate(ctx context.Context, jobID int64, candidateID string) (*domain.Schedule, error) {
	args := m.Called(ctx, jobID, candidateID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Schedule), args.Error(1)
}
func (m *MockScheduleRepo) ListByCandidate(ctx context.Context, candidateID, fromDate string) ([]domain.Schedule, error) {
	args := m.Called(ctx, candidateID, fromDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Schedule), args.Error(1)
}
func (m *MockScheduleRepo) ListByRecruiter(ctx context.Context, recruiterID, fromDate string) ([]domain.Schedule, error) {
	args := m.Called(ctx, recruiterID, fromDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Schedule), args.Error(1)
}

type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetByIDs(ctx context.Context, ids []string) ([]domain.User, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}
func (m *MockUserRepo) UpdateFileKey(ctx context.Context, id, kind, key string) error {
	return m.Called(ctx, id, kind, key).Error(0)
}

type MockNotificationRepo struct {
	mock.Mock
}

func (m *MockNotificationRepo) Create(ctx context.Context, n *domain.Notification) error {
	return m.Called(ctx, n).Error(0)
}
func (m *MockNotificationRepo) ListByUser(ctx context.Context, userID string, unreadOnly bool) ([]domain.Notification, error) {
	args := m.Called(ctx, userID, unreadOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Notification), args.Error(1)
}
func (m *MockNotificationRepo) MarkRead(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type MockPresence struct {
	mock.Mock
}

func (m *MockPresence) Push(userID, event string, payload any) bool {
	return m.Called(userID, event, payload).Bool(0)
}
func (m *MockPresence) Broadcast(event string, payload any) {
	m.Called(event, payload)
}

type appMocks struct {
	apps     *MockApplicationRepo
	jobs     *MockJobRepo
	sched    *MockScheduleRepo
	users    *MockUserRepo
	notifs   *MockNotificationRepo
	presence *MockPresence
}

func newApplicationUC() (domain.ApplicationUsecase, appMocks) {
	m := appMocks{
		apps:     new(MockApplicationRepo),
		jobs:     new(MockJobRepo),
		sched:    new(MockScheduleRepo),
		users:    new(MockUserRepo),
		notifs:   new(MockNotificationRepo),
		presence: new(MockPresence),
	}
	uc := usecase.NewApplicationUsecase(m.apps, m.jobs, m.sched, m.users, m.notifs, m.presence)
	return uc, m
}

func TestApplyValidation(t *testing.T) {
	uc, m := newApplicationUC()
	ctx := context.Background()

	t.Run("Should reject malformed user ID before any store access", func(t *testing.T) {
		err := uc.Apply(ctx, domain.ApplyInput{JobID: 1, UserID: "not-a-uuid"})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Invalid user ID")
		m.jobs.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})

	t.Run("Should reject non-positive job ID", func(t *testing.T) {
		err := uc.Apply(ctx, domain.ApplyInput{JobID: 0, UserID: candidateID})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Invalid job ID")
	})

	t.Run("Should return NotFound for unknown job", func(t *testing.T) {
		m.jobs.On("GetByID", mock.Anything, int64(42)).Return(nil, domain.ErrNotFound).Once()
		err := uc.Apply(ctx, domain.ApplyInput{JobID: 42, UserID: candidateID})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Job not found")
	})
}

func TestApplyDuplicateRejected(t *testing.T) {
	uc, m := newApplicationUC()
	ctx := context.Background()

	m.jobs.On("GetByID", mock.Anything, int64(7)).Return(&domain.Job{ID: 7, PostedBy: posterID}, nil)
	m.apps.On("Insert", mock.Anything, int64(7), candidateID, mock.AnythingOfType("time.Time")).
		Return(domain.ErrDuplicate)

	err := uc.Apply(ctx, domain.ApplyInput{JobID: 7, UserID: candidateID, JobTitle: "Gopher", ApplicantName: "Ada"})

	assert.Error(t, err)
	appErr, ok := err.(*apperror.AppError)
	assert.True(t, ok)
	assert.Equal(t, 409, appErr.Code)
	// no side effects for the loser
	m.notifs.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	m.presence.AssertNotCalled(t, "Push", mock.Anything, mock.Anything, mock.Anything)
}

func TestApplyNotifiesJobPoster(t *testing.T) {
	uc, m := newApplicationUC()
	ctx := context.Background()

	m.jobs.On("GetByID", mock.Anything, int64(7)).Return(&domain.Job{ID: 7, PostedBy: posterID}, nil)
	m.apps.On("Insert", mock.Anything, int64(7), candidateID, mock.AnythingOfType("time.Time")).Return(nil)

	var stored *domain.Notification
	m.notifs.On("Create", mock.Anything, mock.AnythingOfType("*domain.Notification")).
		Return(nil).
		Run(func(args mock.Arguments) {
			stored = args.Get(1).(*domain.Notification)
		})
	m.presence.On("Push", posterID, domain.NotificationTypeJobApplication, mock.Anything).Return(true)

	err := uc.Apply(ctx, domain.ApplyInput{JobID: 7, UserID: candidateID, JobTitle: "Gopher", ApplicantName: "Ada"})

	assert.NoError(t, err)
	if assert.NotNil(t, stored) {
		assert.Equal(t, posterID, stored.UserID)
		assert.Equal(t, domain.NotificationTypeJobApplication, stored.Type)
		assert.Contains(t, stored.Message, "Ada")
		assert.Contains(t, stored.Message, "Gopher")
		assert.Equal(t, candidateID, stored.Data["applicantId"])
	}
	m.presence.AssertExpectations(t)
}

func TestApplySurvivesNotificationFailure(t *testing.T) {
	uc, m := newApplicationUC()
	ctx := context.Background()

	m.jobs.On("GetByID", mock.Anything, int64(7)).Return(&domain.Job{ID: 7, PostedBy: posterID}, nil)
	m.apps.On("Insert", mock.Anything, int64(7), candidateID, mock.AnythingOfType("time.Time")).Return(nil)
	m.notifs.On("Create", mock.Anything, mock.Anything).Return(assert.AnError)
	m.presence.On("Push", mock.Anything, mock.Anything, mock.Anything).Return(false)

	// The ledger write is authoritative; losing the side effects is not an error
	err := uc.Apply(ctx, domain.ApplyInput{JobID: 7, UserID: candidateID, JobTitle: "Gopher", ApplicantName: "Ada"})
	assert.NoError(t, err)
}

func TestCheckApplication(t *testing.T) {
	uc, m := newApplicationUC()
	ctx := context.Background()

	t.Run("Not applied", func(t *testing.T) {
		m.apps.On("Exists", mock.Anything, int64(1), candidateID).Return(false, nil).Once()
		status, err := uc.CheckApplication(ctx, 1, candidateID)
		assert.NoError(t, err)
		assert.False(t, status.HasApplied)
		assert.False(t, status.HasSchedule)
	})

	t.Run("Applied with schedule", func(t *testing.T) {
		schedule := &domain.Schedule{ID: 3, JobID: 1, CandidateID: candidateID}
		m.apps.On("Exists", mock.Anything, int64(1), candidateID).Return(true, nil).Once()
		m.sched.On("GetByJobAndCandidate", mock.Anything, int64(1), candidateID).Return(schedule, nil).Once()

		status, err := uc.CheckApplication(ctx, 1, candidateID)
		assert.NoError(t, err)
		assert.True(t, status.HasApplied)
		assert.True(t, status.HasSchedule)
		assert.Equal(t, schedule, status.Schedule)
	})

	t.Run("Applied without schedule", func(t *testing.T) {
		m.apps.On("Exists", mock.Anything, int64(1), candidateID).Return(true, nil).Once()
		m.sched.On("GetByJobAndCandidate", mock.Anything, int64(1), candidateID).Return(nil, domain.ErrNotFound).Once()

		status, err := uc.CheckApplication(ctx, 1, candidateID)
		assert.NoError(t, err)
		assert.True(t, status.HasApplied)
		assert.False(t, status.HasSchedule)
		assert.Nil(t, status.Schedule)
	})
}

func TestAdvanceStage(t *testing.T) {
	ctx := context.Background()

	t.Run("Hire increments recruited only when new for the applicant", func(t *testing.T) {
		uc, m := newApplicationUC()
		m.apps.On("AddProgressStage", mock.Anything, int64(5), candidateID, "Hire").Return(true, nil)
		m.jobs.On("AddCompletedStage", mock.Anything, int64(5), "Hire").Return(nil)
		m.jobs.On("IncrementRecruited", mock.Anything, int64(5)).Return(nil)
		m.notifs.On("Create", mock.Anything, mock.Anything).Return(nil)
		m.presence.On("Push", candidateID, domain.NotificationTypeStageProgress, mock.Anything).Return(true)

		err := uc.AdvanceStage(ctx, 5, candidateID, "Hire")
		assert.NoError(t, err)
		m.jobs.AssertNumberOfCalls(t, "IncrementRecruited", 1)
	})

	t.Run("Retried hire does not double count", func(t *testing.T) {
		uc, m := newApplicationUC()
		m.apps.On("AddProgressStage", mock.Anything, int64(5), candidateID, "hire").Return(false, nil)
		m.jobs.On("AddCompletedStage", mock.Anything, int64(5), "hire").Return(nil)
		m.notifs.On("Create", mock.Anything, mock.Anything).Return(nil)
		m.presence.On("Push", mock.Anything, mock.Anything, mock.Anything).Return(false)

		err := uc.AdvanceStage(ctx, 5, candidateID, "hire")
		assert.NoError(t, err)
		m.jobs.AssertNotCalled(t, "IncrementRecruited", mock.Anything, mock.Anything)
	})

	t.Run("Non-terminal stage never touches the counter", func(t *testing.T) {
		uc, m := newApplicationUC()
		m.apps.On("AddProgressStage", mock.Anything, int64(5), candidateID, "interview").Return(true, nil)
		m.jobs.On("AddCompletedStage", mock.Anything, int64(5), "interview").Return(nil)

		var stored *domain.Notification
		m.notifs.On("Create", mock.Anything, mock.AnythingOfType("*domain.Notification")).
			Return(nil).
			Run(func(args mock.Arguments) {
				stored = args.Get(1).(*domain.Notification)
			})
		m.presence.On("Push", candidateID, domain.NotificationTypeStageProgress, mock.Anything).Return(false)

		err := uc.AdvanceStage(ctx, 5, candidateID, "interview")
		assert.NoError(t, err)
		m.jobs.AssertNotCalled(t, "IncrementRecruited", mock.Anything, mock.Anything)
		if assert.NotNil(t, stored) {
			assert.Equal(t, candidateID, stored.UserID)
			assert.Contains(t, stored.Message, "interview")
		}
	})

	t.Run("Unknown applicant returns NotFound", func(t *testing.T) {
		uc, m := newApplicationUC()
		m.apps.On("AddProgressStage", mock.Anything, int64(5), candidateID, "interview").
			Return(false, domain.ErrNotFound)

		err := uc.AdvanceStage(ctx, 5, candidateID, "interview")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Application not found")
		m.notifs.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Empty stage is rejected", func(t *testing.T) {
		uc, _ := newApplicationUC()
		err := uc.AdvanceStage(ctx, 5, candidateID, "")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Stage is required")
	})
}

func TestScheduleReplace(t *testing.T) {
	ctx := context.Background()
	validate := validator.New()

	t.Run("Missing fields are listed", func(t *testing.T) {
		repo := new(MockScheduleRepo)
		uc := usecase.NewScheduleUsecase(repo, validate)

		_, err := uc.Replace(ctx, domain.ScheduleInput{JobID: 1, RecruiterID: posterID})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Missing required fields")
		assert.Contains(t, err.Error(), "CandidateID")
		assert.Contains(t, err.Error(), "StartTime")
		repo.AssertNotCalled(t, "Replace", mock.Anything, mock.Anything)
	})

	t.Run("Creates with scheduled status and audit stamps", func(t *testing.T) {
		repo := new(MockScheduleRepo)
		uc := usecase.NewScheduleUsecase(repo, validate)

		repo.On("Replace", mock.Anything, mock.AnythingOfType("*domain.Schedule")).Return(nil)

		schedule, err := uc.Replace(ctx, domain.ScheduleInput{
			JobID:         1,
			RecruiterID:   posterID,
			CandidateID:   candidateID,
			StageName:     "interview",
			ScheduledDate: "2026-09-15",
			StartTime:     "10:00",
			EndTime:       "11:00",
			Note:          "bring portfolio",
		})

		assert.NoError(t, err)
		assert.Equal(t, domain.ScheduleStatusScheduled, schedule.Status)
		assert.Equal(t, "2026-09-15", schedule.ScheduledDate)
		assert.False(t, schedule.CreatedAt.IsZero())
		assert.Equal(t, schedule.CreatedAt, schedule.UpdatedAt)
		repo.AssertExpectations(t)
	})
}

func TestScheduleListsFilterFromToday(t *testing.T) {
	ctx := context.Background()
	repo := new(MockScheduleRepo)
	uc := usecase.NewScheduleUsecase(repo, validator.New())

	today := time.Now().Format("2006-01-02")
	repo.On("ListByCandidate", mock.Anything, candidateID, today).Return([]domain.Schedule{}, nil)
	repo.On("ListByRecruiter", mock.Anything, posterID, today).Return([]domain.Schedule{}, nil)

	_, err := uc.ListForCandidate(ctx, candidateID)
	assert.NoError(t, err)
	_, err = uc.ListForRecruiter(ctx, posterID)
	assert.NoError(t, err)

	repo.AssertExpectations(t)
}

func TestNotificationUsecase(t *testing.T) {
	ctx := context.Background()

	t.Run("List rejects malformed user ID", func(t *testing.T) {
		repo := new(MockNotificationRepo)
		uc := usecase.NewNotificationUsecase(repo)

		_, err := uc.List(ctx, "nope")
		assert.Error(t, err)
		repo.AssertNotCalled(t, "ListByUser", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("ListUnread passes the unread filter", func(t *testing.T) {
		repo := new(MockNotificationRepo)
		uc := usecase.NewNotificationUsecase(repo)

		repo.On("ListByUser", mock.Anything, candidateID, true).Return([]domain.Notification{}, nil)
		_, err := uc.ListUnread(ctx, candidateID)
		assert.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("MarkRead maps missing row to NotFound", func(t *testing.T) {
		repo := new(MockNotificationRepo)
		uc := usecase.NewNotificationUsecase(repo)

		repo.On("MarkRead", mock.Anything, int64(99)).Return(domain.ErrNotFound)
		err := uc.MarkRead(ctx, 99)
		assert.Error(t, err)
		appErr, ok := err.(*apperror.AppError)
		assert.True(t, ok)
		assert.Equal(t, 404, appErr.Code)
	})
}

func TestIncrementViewBroadcasts(t *testing.T) {
	ctx := context.Background()
	jobs := new(MockJobRepo)
	presence := new(MockPresence)
	uc := usecase.NewJobUsecase(jobs, presence)

	jobs.On("IncrementView", mock.Anything, int64(3)).Return(int64(12), nil)

	var payload map[string]any
	presence.On("Broadcast", domain.EventJobViewIncremented, mock.Anything).
		Run(func(args mock.Arguments) {
			payload = args.Get(1).(map[string]any)
		})

	count, err := uc.IncrementView(ctx, 3)
	assert.NoError(t, err)
	assert.Equal(t, int64(12), count)
	if assert.NotNil(t, payload) {
		assert.Equal(t, int64(12), payload["newViewCount"])
	}

	t.Run("Unknown job returns NotFound without broadcast", func(t *testing.T) {
		jobs.On("IncrementView", mock.Anything, int64(4)).Return(int64(0), domain.ErrNotFound)
		_, err := uc.IncrementView(ctx, 4)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Job not found")
	})
}
