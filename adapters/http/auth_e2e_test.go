package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	achievementUC "github.com/khoahotran/growth-tracker/internal/application/usecase/achievement"
	authUC "github.com/khoahotran/growth-tracker/internal/application/usecase/auth"
	goalUC "github.com/khoahotran/growth-tracker/internal/application/usecase/goal"
	migrationUC "github.com/khoahotran/growth-tracker/internal/application/usecase/migration"
	profileUC "github.com/khoahotran/growth-tracker/internal/application/usecase/profile"
	skillUC "github.com/khoahotran/growth-tracker/internal/application/usecase/skill"
	statsUC "github.com/khoahotran/growth-tracker/internal/application/usecase/stats"
	"github.com/khoahotran/growth-tracker/internal/growth"
	"github.com/khoahotran/growth-tracker/internal/remote"
	"github.com/khoahotran/growth-tracker/pkg/auth"
	"github.com/khoahotran/growth-tracker/pkg/logger"
)

type AuthE2ETestSuite struct {
	suite.Suite
	server   *httptest.Server
	uploader *fakeUploader
	log      logger.Logger
}

func (s *AuthE2ETestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.log = logger.NewNopLogger()

	users := newMemUsers()
	profiles := newMemProfiles()
	skills := newMemSkills()
	goals := newMemGoals()
	achievements := newMemAchievements()
	importer := &memImporter{profiles: profiles, skills: skills, goals: goals, achievements: achievements}
	s.uploader = &fakeUploader{}

	jwtSvc := auth.NewJWTService("e2e-secret", time.Hour)
	profileUseCase := profileUC.NewProfileUseCase(profiles, s.uploader, nil, s.log)

	handlers := Handlers{
		Auth: NewAuthHandler(
			authUC.NewSignUpUseCase(users, jwtSvc, s.log),
			authUC.NewLoginUseCase(users, jwtSvc, s.log),
			s.log,
		),
		Profile:     NewProfileHandler(profileUseCase, s.log),
		Skill:       NewSkillHandler(skillUC.NewSkillUseCase(skills, nil, s.log), s.log),
		Goal:        NewGoalHandler(goalUC.NewGoalUseCase(goals, nil, s.log), s.log),
		Achievement: NewAchievementHandler(achievementUC.NewAchievementUseCase(achievements, nil, s.log), s.log),
		Migration:   NewMigrationHandler(migrationUC.NewImportUseCase(importer, nil, s.log), s.log),
		Stats:       NewStatsHandler(statsUC.NewStatsUseCase(skills, goals, achievements, nil, s.log), s.log),
		RSS:         NewRSSHandler(achievementUC.NewRSSUseCase(profileUseCase, achievements, "http://example.com/api", s.log), s.log),
	}
	s.server = httptest.NewServer(NewRouter(handlers, jwtSvc, s.log))
}

func (s *AuthE2ETestSuite) TearDownTest() {
	s.server.Close()
}

func TestAuthE2E(t *testing.T) {
	suite.Run(t, new(AuthE2ETestSuite))
}

func (s *AuthE2ETestSuite) post(path string, body any, token string) *http.Response {
	payload, err := json.Marshal(body)
	s.Require().NoError(err)
	req, err := http.NewRequest(http.MethodPost, s.server.URL+path, bytes.NewReader(payload))
	s.Require().NoError(err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	s.Require().NoError(err)
	return resp
}

func (s *AuthE2ETestSuite) get(path, token string) *http.Response {
	req, err := http.NewRequest(http.MethodGet, s.server.URL+path, nil)
	s.Require().NoError(err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	s.Require().NoError(err)
	return resp
}

func (s *AuthE2ETestSuite) signUp(email string) SessionDTO {
	resp := s.post("/api/auth/signup", gin.H{"email": email, "password": "secret123"}, "")
	defer resp.Body.Close()
	s.Require().Equal(http.StatusCreated, resp.StatusCode)
	var out SessionDTO
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func (s *AuthE2ETestSuite) client(token string) *remote.Client {
	return remote.NewClient(s.server.URL+"/api", remote.StaticToken(token), s.log)
}

func (s *AuthE2ETestSuite) Test_Login_Flow() {
	session := s.signUp("e2e@example.com")
	s.NotEmpty(session.AccessToken)
	s.NotEmpty(session.UserID)
	s.Equal("e2e@example.com", session.Email)

	dup := s.post("/api/auth/signup", gin.H{"email": "e2e@example.com", "password": "secret123"}, "")
	dup.Body.Close()
	s.Equal(http.StatusConflict, dup.StatusCode)

	bad := s.post("/api/auth/login", gin.H{"email": "e2e@example.com", "password": "wrongpassword"}, "")
	defer bad.Body.Close()
	s.Equal(http.StatusUnauthorized, bad.StatusCode)
	var errBody map[string]string
	s.Require().NoError(json.NewDecoder(bad.Body).Decode(&errBody))
	s.NotEmpty(errBody["message"])

	good := s.post("/api/auth/login", gin.H{"email": "E2E@example.com", "password": "secret123"}, "")
	defer good.Body.Close()
	s.Equal(http.StatusOK, good.StatusCode)
	var login SessionDTO
	s.Require().NoError(json.NewDecoder(good.Body).Decode(&login))
	s.Equal(session.UserID, login.UserID)

	authed := s.get("/api/skills?user_id="+login.UserID, login.AccessToken)
	authed.Body.Close()
	s.Equal(http.StatusOK, authed.StatusCode)

	anonymous := s.get("/api/skills?user_id="+login.UserID, "")
	anonymous.Body.Close()
	s.Equal(http.StatusUnauthorized, anonymous.StatusCode)
}

func (s *AuthE2ETestSuite) Test_Profile_NullUntilSaved() {
	session := s.signUp("profile@example.com")
	c := s.client(session.AccessToken)
	ctx := context.Background()

	row, err := c.Profiles().Get(ctx, session.UserID)
	s.Require().NoError(err)
	s.Nil(row)

	bio := "Learning every day"
	saved, err := c.Profiles().Upsert(ctx, remote.ProfileRow{ID: session.UserID, Name: "Lan", Bio: &bio})
	s.Require().NoError(err)
	s.Equal("Lan", saved.Name)
	s.NotEmpty(saved.CreatedAt)

	again, err := c.Profiles().Upsert(ctx, remote.ProfileRow{ID: session.UserID, Name: "Lan T."})
	s.Require().NoError(err)
	s.Equal(saved.CreatedAt, again.CreatedAt)

	row, err = c.Profiles().Get(ctx, session.UserID)
	s.Require().NoError(err)
	s.Require().NotNil(row)
	s.Equal("Lan T.", row.Name)
}

func (s *AuthE2ETestSuite) Test_Skills_CRUDThroughRemoteClient() {
	session := s.signUp("skills@example.com")
	c := s.client(session.AccessToken)
	ctx := context.Background()

	id := uuid.NewString()
	created, err := c.Skills().Create(ctx, remote.SkillRow{
		ID: id, UserID: session.UserID, Name: "Go", Category: "Programming", Level: 40,
		CreatedAt: "2024-05-01T10:00:00.000Z", UpdatedAt: "2024-05-01T10:00:00.000Z",
	})
	s.Require().NoError(err)
	s.Equal(id, created.ID)
	s.Equal("2024-05-01T10:00:00.000Z", created.CreatedAt)

	_, err = c.Skills().Create(ctx, remote.SkillRow{ID: uuid.NewString(), UserID: session.UserID, Name: "SQL", Category: "Programming", Level: 10})
	s.Require().NoError(err)

	rows, err := c.Skills().List(ctx, session.UserID, remote.ListOptions{})
	s.Require().NoError(err)
	s.Len(rows, 2)
	s.Equal("SQL", rows[0].Name)

	limited, err := c.Skills().List(ctx, session.UserID, remote.ListOptions{Limit: 1})
	s.Require().NoError(err)
	s.Len(limited, 1)

	updated, err := c.Skills().Update(ctx, id, remote.SkillRow{ID: id, UserID: session.UserID, Name: "Go", Category: "Programming", Level: 85})
	s.Require().NoError(err)
	s.Equal(85, updated.Level)

	s.Require().NoError(c.Skills().Delete(ctx, session.UserID, id))
	err = c.Skills().Delete(ctx, session.UserID, id)
	s.True(remote.IsNotFound(err))
}

func (s *AuthE2ETestSuite) Test_Goal_CompletionStampsTimestamp() {
	session := s.signUp("goals@example.com")
	c := s.client(session.AccessToken)
	ctx := context.Background()

	id := uuid.NewString()
	row := remote.GoalRow{ID: id, UserID: session.UserID, Title: "Ship v1", Deadline: "2030-01-15", Priority: "high"}
	created, err := c.Goals().Create(ctx, row)
	s.Require().NoError(err)
	s.Equal("2030-01-15", created.Deadline)
	s.Nil(created.CompletedAt)

	row.Completed = true
	done, err := c.Goals().Update(ctx, id, row)
	s.Require().NoError(err)
	s.True(done.Completed)
	s.Require().NotNil(done.CompletedAt)

	row.Completed = false
	reopened, err := c.Goals().Update(ctx, id, row)
	s.Require().NoError(err)
	s.Nil(reopened.CompletedAt)
}

func (s *AuthE2ETestSuite) Test_OtherUsersRowsAreForbidden() {
	alice := s.signUp("alice@example.com")
	bob := s.signUp("bob@example.com")
	ctx := context.Background()

	_, err := s.client(alice.AccessToken).Skills().List(ctx, bob.UserID, remote.ListOptions{})
	var re *remote.Error
	s.Require().ErrorAs(err, &re)
	s.Equal(http.StatusForbidden, re.StatusCode)

	_, err = s.client(alice.AccessToken).Achievements().Create(ctx, remote.AchievementRow{
		ID: uuid.NewString(), UserID: bob.UserID, Title: "Sneaky", Date: "2024-01-01", Category: "Work",
	})
	s.Require().ErrorAs(err, &re)
	s.Equal(http.StatusForbidden, re.StatusCode)
}

func (s *AuthE2ETestSuite) Test_Import_IsIdempotent() {
	session := s.signUp("import@example.com")
	c := s.client(session.AccessToken)
	ctx := context.Background()

	bundle := remote.Bundle{
		Profile: remote.ProfileRow{ID: session.UserID, Name: "Imported"},
		Skills: []remote.SkillRow{
			{ID: uuid.NewString(), UserID: session.UserID, Name: "Go", Category: "Programming", Level: 50},
		},
		Goals: []remote.GoalRow{
			{ID: uuid.NewString(), UserID: session.UserID, Title: "Run", Deadline: "2030-06-01", Priority: "medium", Completed: true},
		},
		Achievements: []remote.AchievementRow{
			{ID: uuid.NewString(), UserID: session.UserID, Title: "Cert", Date: "2024-02-02", Category: "Education"},
		},
	}
	s.Require().NoError(c.Import(ctx, session.UserID, bundle))
	s.Require().NoError(c.Import(ctx, session.UserID, bundle))

	skills, err := c.Skills().List(ctx, session.UserID, remote.ListOptions{})
	s.Require().NoError(err)
	s.Len(skills, 1)

	goals, err := c.Goals().List(ctx, session.UserID, remote.ListOptions{})
	s.Require().NoError(err)
	s.Require().Len(goals, 1)
	s.NotNil(goals[0].CompletedAt)

	achievements, err := c.Achievements().List(ctx, session.UserID, remote.ListOptions{})
	s.Require().NoError(err)
	s.Require().Len(achievements, 1)
	s.Equal("🏆", achievements[0].Icon)

	profile, err := c.Profiles().Get(ctx, session.UserID)
	s.Require().NoError(err)
	s.Require().NotNil(profile)
	s.Equal("Imported", profile.Name)
}

func (s *AuthE2ETestSuite) Test_Stats() {
	session := s.signUp("stats@example.com")
	c := s.client(session.AccessToken)
	ctx := context.Background()

	for _, level := range []int{40, 61} {
		_, err := c.Skills().Create(ctx, remote.SkillRow{ID: uuid.NewString(), UserID: session.UserID, Name: "S", Category: "Other", Level: level})
		s.Require().NoError(err)
	}
	_, err := c.Goals().Create(ctx, remote.GoalRow{ID: uuid.NewString(), UserID: session.UserID, Title: "G", Deadline: "2030-01-01", Priority: "low", Completed: true})
	s.Require().NoError(err)

	resp := s.get("/api/stats?user_id="+session.UserID, session.AccessToken)
	defer resp.Body.Close()
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	var st growth.Stats
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&st))
	s.Equal(growth.Stats{TotalSkills: 2, AvgSkillLevel: 51, CompletedGoals: 1, TotalGoals: 1, GoalCompletionRate: 100}, st)
}

func (s *AuthE2ETestSuite) Test_PublicProfileAndFeed() {
	session := s.signUp("public@example.com")
	c := s.client(session.AccessToken)
	ctx := context.Background()

	_, err := c.Profiles().Upsert(ctx, remote.ProfileRow{ID: session.UserID, Name: "Quiet"})
	s.Require().NoError(err)

	hidden := s.get("/api/public/profiles/"+session.UserID, "")
	hidden.Body.Close()
	s.Equal(http.StatusNotFound, hidden.StatusCode)

	_, err = c.Profiles().Upsert(ctx, remote.ProfileRow{ID: session.UserID, Name: "Loud", IsPublic: true})
	s.Require().NoError(err)
	_, err = c.Achievements().Create(ctx, remote.AchievementRow{
		ID: uuid.NewString(), UserID: session.UserID, Title: "Marathon", Date: "2024-10-01", Icon: "🏃", Category: "Personal",
	})
	s.Require().NoError(err)

	visible := s.get("/api/public/profiles/"+session.UserID, "")
	visible.Body.Close()
	s.Equal(http.StatusOK, visible.StatusCode)

	feed := s.get("/api/public/profiles/"+session.UserID+"/achievements.rss", "")
	defer feed.Body.Close()
	s.Require().Equal(http.StatusOK, feed.StatusCode)
	body, err := io.ReadAll(feed.Body)
	s.Require().NoError(err)
	s.Contains(string(body), "Marathon")
	s.Contains(string(body), "Loud - Achievements")
}

func (s *AuthE2ETestSuite) Test_AvatarUpload() {
	session := s.signUp("avatar@example.com")
	_, err := s.client(session.AccessToken).Profiles().Upsert(context.Background(), remote.ProfileRow{ID: session.UserID, Name: "Pic"})
	s.Require().NoError(err)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("avatar", "me.png")
	s.Require().NoError(err)
	_, err = part.Write([]byte("fake-png"))
	s.Require().NoError(err)
	s.Require().NoError(mw.Close())

	req, err := http.NewRequest(http.MethodPost, s.server.URL+"/api/profiles/"+session.UserID+"/avatar", &buf)
	s.Require().NoError(err)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+session.AccessToken)
	resp, err := http.DefaultClient.Do(req)
	s.Require().NoError(err)
	defer resp.Body.Close()
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	var dto ProfileDTO
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&dto))
	s.Require().NotNil(dto.AvatarURL)
	s.True(strings.HasPrefix(*dto.AvatarURL, "https://cdn.example.com/users/"+session.UserID))
	s.Equal("users/"+session.UserID+"/avatars", s.uploader.folder)
}
