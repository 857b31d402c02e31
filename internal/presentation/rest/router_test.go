package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/rishii-05/stroke-prediction-project/internal/application/dto"
	"github.com/rishii-05/stroke-prediction-project/internal/application/usecase"
	"github.com/rishii-05/stroke-prediction-project/internal/domain/model"
	"github.com/rishii-05/stroke-prediction-project/internal/domain/port"
	"github.com/rishii-05/stroke-prediction-project/internal/domain/service"
	"github.com/rishii-05/stroke-prediction-project/internal/domain/valueobject"
	"github.com/rishii-05/stroke-prediction-project/pkg/auth"
	"github.com/rishii-05/stroke-prediction-project/pkg/events"
)

// --- Stub ports ---

type stubAssessmentRepo struct {
	savedAssessment  *model.StrokeAssessment
	findByIDFunc     func(ctx context.Context, id uuid.UUID) (*model.StrokeAssessment, error)
	findByUserIDFunc func(ctx context.Context, userID uuid.UUID, limit int) ([]*model.StrokeAssessment, error)
	statsFunc        func(ctx context.Context, userID uuid.UUID) (model.AssessmentStats, error)
}

func (s *stubAssessmentRepo) Save(_ context.Context, assessment *model.StrokeAssessment) error {
	s.savedAssessment = assessment
	return nil
}

func (s *stubAssessmentRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.StrokeAssessment, error) {
	if s.findByIDFunc != nil {
		return s.findByIDFunc(ctx, id)
	}
	return nil, nil
}

func (s *stubAssessmentRepo) FindByUserID(ctx context.Context, userID uuid.UUID, limit int) ([]*model.StrokeAssessment, error) {
	if s.findByUserIDFunc != nil {
		return s.findByUserIDFunc(ctx, userID, limit)
	}
	return nil, nil
}

func (s *stubAssessmentRepo) StatsByUserID(ctx context.Context, userID uuid.UUID) (model.AssessmentStats, error) {
	if s.statsFunc != nil {
		return s.statsFunc(ctx, userID)
	}
	return model.AssessmentStats{}, nil
}

type stubUserRepo struct {
	savedUser          *model.User
	saveFunc           func(ctx context.Context, user *model.User) error
	findByUsernameFunc func(ctx context.Context, username string) (*model.User, error)
}

func (s *stubUserRepo) Save(ctx context.Context, user *model.User) error {
	if s.saveFunc != nil {
		return s.saveFunc(ctx, user)
	}
	s.savedUser = user
	return nil
}

func (s *stubUserRepo) FindByID(_ context.Context, _ uuid.UUID) (*model.User, error) {
	return nil, nil
}

func (s *stubUserRepo) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	if s.findByUsernameFunc != nil {
		return s.findByUsernameFunc(ctx, username)
	}
	return nil, nil
}

type stubPublisher struct {
	published []events.DomainEvent
}

func (s *stubPublisher) Publish(_ context.Context, evts ...events.DomainEvent) error {
	s.published = append(s.published, evts...)
	return nil
}

type fixedPredictor struct {
	probability float64
	inputSize   int
}

func (f *fixedPredictor) PredictProbability(_ []float64) (float64, error) {
	return f.probability, nil
}

func (f *fixedPredictor) InputSize() int {
	return f.inputSize
}

type passthroughScaler struct{}

func (passthroughScaler) Transform(values []float64) ([]float64, error) {
	return values, nil
}

// --- Harness ---

type testEnv struct {
	router    http.Handler
	jwt       *auth.JWTService
	repo      *stubAssessmentRepo
	users     *stubUserRepo
	publisher *stubPublisher
	dbErr     error
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	logger := slog.Default()

	jwtService, err := auth.NewJWTService(auth.JWTConfig{
		Secret:     "router-test-secret",
		Issuer:     "stroke-assessment-test",
		Expiration: time.Hour,
	})
	require.NoError(t, err)

	env := &testEnv{
		jwt:       jwtService,
		repo:      &stubAssessmentRepo{},
		users:     &stubUserRepo{},
		publisher: &stubPublisher{},
	}

	engine, err := service.NewAssessmentEngine(
		service.NewFeatureNormalizer(passthroughScaler{}),
		&fixedPredictor{probability: 0.1, inputSize: 10},
		service.NewRiskPolicy(),
		logger,
	)
	require.NoError(t, err)

	authHandler := NewAuthHandler(
		usecase.NewRegisterUser(env.users, jwtService),
		usecase.NewLoginUser(env.users, jwtService),
		logger,
	)
	assessmentHandler := NewAssessmentHandler(
		usecase.NewAssessPatient(env.repo, env.publisher, engine),
		usecase.NewGetAssessment(env.repo),
		usecase.NewListAssessments(env.repo),
		usecase.NewGetAssessmentStats(env.repo),
		logger,
	)
	healthHandler := NewHealthHandler(
		func(context.Context) error { return env.dbErr },
		"stroke-assessment", logger,
	)
	metricsHandler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	env.router = NewRouter(authHandler, assessmentHandler, healthHandler, metricsHandler, jwtService, logger)
	return env
}

func (e *testEnv) request(t *testing.T, method, target, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) tokenFor(t *testing.T, userID uuid.UUID) string {
	t.Helper()
	token, err := e.jwt.GenerateToken(userID, "alice", []string{auth.RolePatient})
	require.NoError(t, err)
	return token
}

const validAssessBody = `{
	"gender": "female",
	"age": 45,
	"hypertension": false,
	"heart_disease": false,
	"ever_married": true,
	"work_type": "private",
	"residence_type": "urban",
	"avg_glucose_level": 95,
	"bmi": 24.5,
	"smoking_status": "never"
}`

func reconstructedAssessment(t *testing.T, userID uuid.UUID) *model.StrokeAssessment {
	t.Helper()
	bmi := 27.3
	now := time.Now().UTC()
	profile := model.PatientProfile{
		Gender:          valueobject.GenderFemale,
		Age:             62,
		Hypertension:    true,
		HeartDisease:    false,
		EverMarried:     true,
		WorkType:        valueobject.WorkTypePrivate,
		ResidenceType:   valueobject.ResidenceUrban,
		AvgGlucoseLevel: 101,
		BMI:             &bmi,
		SmokingStatus:   valueobject.SmokingNever,
	}
	return model.ReconstructAssessment(
		uuid.New(), userID, profile,
		valueobject.MustProbability("0.42"),
		valueobject.MustProbability("0.4"),
		valueobject.MustProbability("0.42"),
		valueobject.RiskTierModerate,
		[]model.RiskFactor{{
			Name:        "hypertension",
			Weight:      decimal.RequireFromString("0.25"),
			Explanation: "Diagnosed hypertension is a major modifiable stroke risk factor.",
		}},
		[]string{"Monitor blood pressure regularly."},
		nil,
		now, 1, now,
	)
}

// --- Tests ---

func TestHealthEndpoints(t *testing.T) {
	t.Run("healthz is open and healthy", func(t *testing.T) {
		env := newTestEnv(t)

		rec := env.request(t, http.MethodGet, "/healthz", "", "")

		require.Equal(t, http.StatusOK, rec.Code)
		var resp HealthResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Equal(t, "healthy", resp.Status)
		assert.Equal(t, "stroke-assessment", resp.Service)
	})

	t.Run("readyz reports ready when the database answers", func(t *testing.T) {
		env := newTestEnv(t)

		rec := env.request(t, http.MethodGet, "/readyz", "", "")

		require.Equal(t, http.StatusOK, rec.Code)
		var resp ReadinessResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Equal(t, "ready", resp.Status)
		assert.Equal(t, "ok", resp.Checks["database"])
	})

	t.Run("readyz reports not ready when the database is down", func(t *testing.T) {
		env := newTestEnv(t)
		env.dbErr = fmt.Errorf("connection refused")

		rec := env.request(t, http.MethodGet, "/readyz", "", "")

		require.Equal(t, http.StatusServiceUnavailable, rec.Code)
		var resp ReadinessResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Equal(t, "not_ready", resp.Status)
		assert.Equal(t, "unavailable", resp.Checks["database"])
	})
}

func TestAuthEndpoints(t *testing.T) {
	t.Run("register creates an account and returns a token", func(t *testing.T) {
		env := newTestEnv(t)

		rec := env.request(t, http.MethodPost, "/api/v1/auth/register", "",
			`{"username": "alice", "password": "correct-horse-battery"}`)

		require.Equal(t, http.StatusCreated, rec.Code)
		var resp dto.AuthResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Equal(t, "alice", resp.Username)
		assert.NotEmpty(t, resp.Token)
		assert.NotEqual(t, uuid.Nil, resp.UserID)
		require.NotNil(t, env.users.savedUser)

		// The returned token must pass the same validation the middleware runs.
		claims, err := env.jwt.ValidateToken(resp.Token)
		require.NoError(t, err)
		assert.Equal(t, resp.UserID, claims.UserID)
	})

	t.Run("register rejects a short password", func(t *testing.T) {
		env := newTestEnv(t)

		rec := env.request(t, http.MethodPost, "/api/v1/auth/register", "",
			`{"username": "alice", "password": "seven77"}`)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "at least 8 characters")
	})

	t.Run("register maps a taken username to conflict", func(t *testing.T) {
		env := newTestEnv(t)
		env.users.saveFunc = func(_ context.Context, _ *model.User) error {
			return port.ErrDuplicateUsername
		}

		rec := env.request(t, http.MethodPost, "/api/v1/auth/register", "",
			`{"username": "alice", "password": "correct-horse-battery"}`)

		require.Equal(t, http.StatusConflict, rec.Code)
		assert.Contains(t, rec.Body.String(), "already taken")
	})

	t.Run("register rejects a malformed body", func(t *testing.T) {
		env := newTestEnv(t)

		rec := env.request(t, http.MethodPost, "/api/v1/auth/register", "", `{"username": `)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "invalid request body")
	})

	t.Run("login succeeds with valid credentials", func(t *testing.T) {
		env := newTestEnv(t)
		hash, err := bcrypt.GenerateFromPassword([]byte("correct-horse-battery"), bcrypt.MinCost)
		require.NoError(t, err)
		user := model.ReconstructUser(uuid.New(), "alice", string(hash), time.Now().UTC())
		env.users.findByUsernameFunc = func(_ context.Context, _ string) (*model.User, error) {
			return user, nil
		}

		rec := env.request(t, http.MethodPost, "/api/v1/auth/login", "",
			`{"username": "alice", "password": "correct-horse-battery"}`)

		require.Equal(t, http.StatusOK, rec.Code)
		var resp dto.AuthResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Equal(t, user.ID(), resp.UserID)
		assert.NotEmpty(t, resp.Token)
	})

	t.Run("login rejects unknown credentials", func(t *testing.T) {
		env := newTestEnv(t)

		rec := env.request(t, http.MethodPost, "/api/v1/auth/login", "",
			`{"username": "nobody", "password": "correct-horse-battery"}`)

		require.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "invalid username or password")
	})
}

func TestAssessmentEndpoints(t *testing.T) {
	t.Run("requires a bearer token", func(t *testing.T) {
		env := newTestEnv(t)

		rec := env.request(t, http.MethodPost, "/api/v1/assessments", "", validAssessBody)

		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("rejects a garbage token", func(t *testing.T) {
		env := newTestEnv(t)

		rec := env.request(t, http.MethodPost, "/api/v1/assessments", "not-a-jwt", validAssessBody)

		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("assesses a profile for the authenticated user", func(t *testing.T) {
		env := newTestEnv(t)
		userID := uuid.New()
		token := env.tokenFor(t, userID)

		rec := env.request(t, http.MethodPost, "/api/v1/assessments", token, validAssessBody)

		require.Equal(t, http.StatusCreated, rec.Code)
		var resp dto.AssessmentResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Equal(t, userID, resp.UserID)
		assert.Equal(t, "0.1", resp.FinalProbability)
		assert.Equal(t, "low", resp.RiskTier)
		require.NotNil(t, env.repo.savedAssessment)
		assert.NotEmpty(t, env.publisher.published)
	})

	t.Run("maps an unknown category to bad request", func(t *testing.T) {
		env := newTestEnv(t)
		token := env.tokenFor(t, uuid.New())
		body := strings.Replace(validAssessBody, `"never"`, `"vapes"`, 1)

		rec := env.request(t, http.MethodPost, "/api/v1/assessments", token, body)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "smoking_status")
	})

	t.Run("maps a missing field to bad request", func(t *testing.T) {
		env := newTestEnv(t)
		token := env.tokenFor(t, uuid.New())
		body := strings.Replace(validAssessBody, `"gender": "female",`, "", 1)

		rec := env.request(t, http.MethodPost, "/api/v1/assessments", token, body)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "gender")
	})

	t.Run("fetches an owned assessment", func(t *testing.T) {
		env := newTestEnv(t)
		userID := uuid.New()
		token := env.tokenFor(t, userID)
		assessment := reconstructedAssessment(t, userID)
		env.repo.findByIDFunc = func(_ context.Context, id uuid.UUID) (*model.StrokeAssessment, error) {
			assert.Equal(t, assessment.ID(), id)
			return assessment, nil
		}

		rec := env.request(t, http.MethodGet, "/api/v1/assessments/"+assessment.ID().String(), token, "")

		require.Equal(t, http.StatusOK, rec.Code)
		var resp dto.AssessmentResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Equal(t, assessment.ID(), resp.ID)
		assert.Equal(t, "moderate", resp.RiskTier)
	})

	t.Run("maps a missing assessment to not found", func(t *testing.T) {
		env := newTestEnv(t)
		token := env.tokenFor(t, uuid.New())

		rec := env.request(t, http.MethodGet, "/api/v1/assessments/"+uuid.NewString(), token, "")

		require.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("hides another user's assessment", func(t *testing.T) {
		env := newTestEnv(t)
		token := env.tokenFor(t, uuid.New())
		assessment := reconstructedAssessment(t, uuid.New())
		env.repo.findByIDFunc = func(_ context.Context, _ uuid.UUID) (*model.StrokeAssessment, error) {
			return assessment, nil
		}

		rec := env.request(t, http.MethodGet, "/api/v1/assessments/"+assessment.ID().String(), token, "")

		require.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("rejects a malformed assessment id", func(t *testing.T) {
		env := newTestEnv(t)
		token := env.tokenFor(t, uuid.New())

		rec := env.request(t, http.MethodGet, "/api/v1/assessments/not-a-uuid", token, "")

		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "invalid assessment id")
	})

	t.Run("lists history with the default page size", func(t *testing.T) {
		env := newTestEnv(t)
		userID := uuid.New()
		token := env.tokenFor(t, userID)
		var gotLimit int
		env.repo.findByUserIDFunc = func(_ context.Context, uid uuid.UUID, limit int) ([]*model.StrokeAssessment, error) {
			assert.Equal(t, userID, uid)
			gotLimit = limit
			return []*model.StrokeAssessment{reconstructedAssessment(t, userID)}, nil
		}

		rec := env.request(t, http.MethodGet, "/api/v1/assessments", token, "")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, 10, gotLimit)
		var resp listAssessmentsResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		require.Len(t, resp.Assessments, 1)
	})

	t.Run("rejects a non-numeric limit", func(t *testing.T) {
		env := newTestEnv(t)
		token := env.tokenFor(t, uuid.New())

		rec := env.request(t, http.MethodGet, "/api/v1/assessments?limit=abc", token, "")

		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "invalid limit")
	})

	t.Run("returns zero stats for a fresh user", func(t *testing.T) {
		env := newTestEnv(t)
		token := env.tokenFor(t, uuid.New())

		rec := env.request(t, http.MethodGet, "/api/v1/assessments/stats", token, "")

		require.Equal(t, http.StatusOK, rec.Code)
		var resp dto.StatsResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Equal(t, int64(0), resp.Count)
		assert.Nil(t, resp.FirstAssessedAt)
	})
}
