package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/brightsteps/brightsteps-backend/internal/logger"
	"github.com/brightsteps/brightsteps-backend/internal/services"
	"github.com/brightsteps/brightsteps-backend/internal/types"
)

type fakeSessions struct {
	claims  *services.SessionClaims
	err     error
	cleared bool
}

func (fs *fakeSessions) Issue(parentID uint, babyUUID string) (string, error) {
	return "token", nil
}

func (fs *fakeSessions) Parse(token string) (*services.SessionClaims, error) {
	return fs.claims, fs.err
}

func (fs *fakeSessions) SetCookie(c *gin.Context, token string) {}

func (fs *fakeSessions) ClearCookie(c *gin.Context) { fs.cleared = true }

type fakeParents struct {
	parent *types.Parent
	err    error
}

func (fp *fakeParents) GetOrCreateParent(ctx context.Context, contactInfo string) (*types.Parent, error) {
	return fp.parent, fp.err
}

func (fp *fakeParents) GetParent(ctx context.Context, id uint) (*types.Parent, error) {
	return fp.parent, fp.err
}

type fakeProfiles struct {
	baby *types.Baby
	err  error
}

func (fp *fakeProfiles) CreateProfile(ctx context.Context, input services.CreateProfileInput) (*types.Baby, error) {
	return fp.baby, fp.err
}

func (fp *fakeProfiles) GetByUUID(ctx context.Context, token uuid.UUID) (*types.Baby, error) {
	return fp.baby, fp.err
}

func (fp *fakeProfiles) GetOwnedByUUID(ctx context.Context, token uuid.UUID, parentID uint) (*types.Baby, error) {
	return fp.baby, fp.err
}

func (fp *fakeProfiles) ListByParent(ctx context.Context, parentID uint) ([]*types.Baby, error) {
	return nil, nil
}

func (fp *fakeProfiles) UpdateGoals(ctx context.Context, token uuid.UUID, goals []string) error {
	return fp.err
}

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("production")
	if err != nil {
		t.Fatalf("logger init failed: %v", err)
	}
	return log
}

func middlewareRequest(t *testing.T, mw gin.HandlerFunc, path string, withCookie bool) (*httptest.ResponseRecorder, bool, uint) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	var reached bool
	var parentID uint
	router.GET(path, mw, func(c *gin.Context) {
		reached = true
		if v, ok := c.Get(CtxParentID); ok {
			parentID = v.(uint)
		}
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, path, nil)
	if withCookie {
		req.AddCookie(&http.Cookie{Name: services.SessionCookieName, Value: "token"})
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec, reached, parentID
}

func TestRequireParent_ValidSession(t *testing.T) {
	log := testLogger(t)

	sessions := &fakeSessions{claims: &services.SessionClaims{ParentID: 7}}
	parents := &fakeParents{parent: &types.Parent{ID: 7}}
	mw := NewSessionMiddleware(log, sessions, parents, &fakeProfiles{})

	rec, reached, parentID := middlewareRequest(t, mw.RequireParent(), "/create-profile", true)
	if !reached {
		t.Fatalf("expected handler to run, got status %d", rec.Code)
	}
	if parentID != 7 {
		t.Errorf("expected parent id 7 on context, got %d", parentID)
	}
}

func TestRequireParent_MissingCookie(t *testing.T) {
	log := testLogger(t)

	mw := NewSessionMiddleware(log, &fakeSessions{}, &fakeParents{}, &fakeProfiles{})

	rec, reached, _ := middlewareRequest(t, mw.RequireParent(), "/create-profile", false)
	if reached {
		t.Fatal("handler should not run without a session cookie")
	}
	if rec.Code != http.StatusFound {
		t.Errorf("expected redirect for page request, got %d", rec.Code)
	}
}

func TestRequireParent_DeletedParent(t *testing.T) {
	log := testLogger(t)

	sessions := &fakeSessions{claims: &services.SessionClaims{ParentID: 7}}
	parents := &fakeParents{err: gorm.ErrRecordNotFound}
	mw := NewSessionMiddleware(log, sessions, parents, &fakeProfiles{})

	rec, reached, _ := middlewareRequest(t, mw.RequireParent(), "/api/generate-content", true)
	if reached {
		t.Fatal("handler should not run when the parent row is gone")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for API request, got %d", rec.Code)
	}
	if !sessions.cleared {
		t.Error("expected the stale cookie to be cleared")
	}
}

func TestRequireProfile_OwnershipMismatch(t *testing.T) {
	log := testLogger(t)

	babyUUID := uuid.NewString()
	sessions := &fakeSessions{claims: &services.SessionClaims{ParentID: 7, BabyUUID: babyUUID}}
	profiles := &fakeProfiles{err: services.ErrProfileNotOwned}
	mw := NewSessionMiddleware(log, sessions, &fakeParents{parent: &types.Parent{ID: 7}}, profiles)

	rec, reached, _ := middlewareRequest(t, mw.RequireProfile(), "/home", true)
	if reached {
		t.Fatal("handler should not run for a foreign profile")
	}
	if rec.Code != http.StatusFound {
		t.Errorf("expected redirect, got %d", rec.Code)
	}
	if !sessions.cleared {
		t.Error("expected the session cookie to be cleared")
	}
}

func TestRequireProfile_LoadsBaby(t *testing.T) {
	log := testLogger(t)

	babyUUID := uuid.NewString()
	sessions := &fakeSessions{claims: &services.SessionClaims{ParentID: 7, BabyUUID: babyUUID}}
	profiles := &fakeProfiles{baby: &types.Baby{ID: 3, ParentID: 7, BabyName: "Ada"}}
	mw := NewSessionMiddleware(log, sessions, &fakeParents{parent: &types.Parent{ID: 7}}, profiles)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	var got *types.Baby
	router.GET("/home", mw.RequireProfile(), func(c *gin.Context) {
		if v, ok := c.Get(CtxBaby); ok {
			got = v.(*types.Baby)
		}
		c.Status(http.StatusOK)
	})
	req := httptest.NewRequest(http.MethodGet, "/home", nil)
	req.AddCookie(&http.Cookie{Name: services.SessionCookieName, Value: "token"})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got == nil || got.BabyName != "Ada" {
		t.Errorf("expected baby loaded on context, got %+v", got)
	}
}
