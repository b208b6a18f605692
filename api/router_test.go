package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/beka-birhanu/vinom-pathfinder/api/auth"
	apii "github.com/beka-birhanu/vinom-pathfinder/api/i"
	"github.com/beka-birhanu/vinom-pathfinder/api/solve"
	"github.com/beka-birhanu/vinom-pathfinder/config"
	dmn "github.com/beka-birhanu/vinom-pathfinder/domain"
	"github.com/beka-birhanu/vinom-pathfinder/grid"
	"github.com/beka-birhanu/vinom-pathfinder/infrastruture/token"
	"github.com/beka-birhanu/vinom-pathfinder/service/i"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRunService struct {
	runs    map[uuid.UUID]*dmn.Run
	solved  []config.MazeConfig
	failure error
}

func (f *fakeRunService) SolveCached(_ context.Context, cfg config.MazeConfig) (*dmn.Run, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if f.failure != nil {
		return nil, f.failure
	}
	f.solved = append(f.solved, cfg)
	run := &dmn.Run{
		ID:           uuid.New(),
		Rows:         cfg.Rows,
		Columns:      cfg.Columns,
		Start:        cfg.Start,
		End:          cfg.End,
		Seed:         cfg.Seed,
		Exploration:  []grid.Coordinate{cfg.Start},
		TargetStatus: "unreachable",
	}
	f.runs[run.ID] = run
	return run, nil
}

func (f *fakeRunService) RunByID(_ context.Context, id uuid.UUID) (*dmn.Run, error) {
	run, ok := f.runs[id]
	if !ok {
		return nil, i.ErrRunNotFound
	}
	return run, nil
}

func setup(t *testing.T) (*gin.Engine, *fakeRunService, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tokenizer := token.NewJwtService("test-secret", "test")
	bearer, err := tokenizer.Generate(map[string]interface{}{"sub": "test"}, time.Minute)
	require.NoError(t, err)

	svc := &fakeRunService{runs: make(map[uuid.UUID]*dmn.Run)}
	router := NewRouter(Config{
		BaseURL:                 "/api",
		Controllers:             []apii.Controller{solve.NewController(svc, nil)},
		AuthorizationMiddleware: auth.Authorize(tokenizer),
	})
	return router.Handler(), svc, bearer
}

func postSolve(t *testing.T, h http.Handler, bearer string, body any) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/solve", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func validBody() gin.H {
	return gin.H{
		"rows":    3,
		"columns": 4,
		"start":   gin.H{"row": 1, "col": 1},
		"end":     gin.H{"row": 3, "col": 4},
		"seed":    7,
	}
}

func TestSolveRoute(t *testing.T) {
	t.Run("Requires a token", func(t *testing.T) {
		h, svc, _ := setup(t)

		w := postSolve(t, h, "", validBody())
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Empty(t, svc.solved)
	})

	t.Run("Rejects a bad token", func(t *testing.T) {
		h, _, _ := setup(t)

		w := postSolve(t, h, "not-a-token", validBody())
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Solves with a valid token", func(t *testing.T) {
		h, svc, bearer := setup(t)

		w := postSolve(t, h, bearer, validBody())
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var resp solve.RunResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, 3, resp.Rows)
		assert.Equal(t, grid.At(3, 4), resp.End)
		assert.Equal(t, "unreachable", resp.TargetStatus)
		assert.NotNil(t, resp.Path)
		require.Len(t, svc.solved, 1)
		assert.Equal(t, int64(7), svc.solved[0].Seed)
	})

	t.Run("Missing end", func(t *testing.T) {
		h, svc, bearer := setup(t)

		body := validBody()
		delete(body, "end")
		w := postSolve(t, h, bearer, body)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Empty(t, svc.solved)
	})

	t.Run("End outside the maze", func(t *testing.T) {
		h, _, bearer := setup(t)

		body := validBody()
		body["end"] = gin.H{"row": 4, "col": 4}
		w := postSolve(t, h, bearer, body)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), config.FieldEnd)
	})

	t.Run("Too large", func(t *testing.T) {
		h, _, bearer := setup(t)

		body := validBody()
		body["rows"] = 101
		w := postSolve(t, h, bearer, body)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Service failure", func(t *testing.T) {
		h, svc, bearer := setup(t)
		svc.failure = errors.New("mongo down")

		w := postSolve(t, h, bearer, validBody())
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "mongo")
	})
}

func TestRunsRoute(t *testing.T) {
	h, _, bearer := setup(t)

	w := postSolve(t, h, bearer, validBody())
	require.Equal(t, http.StatusOK, w.Code)
	var solved solve.RunResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &solved))

	get := func(id string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/runs/"+id, nil)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	t.Run("Public lookup", func(t *testing.T) {
		w := get(solved.ID)
		require.Equal(t, http.StatusOK, w.Code)

		var resp solve.RunResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, solved.ID, resp.ID)
	})

	t.Run("Unknown run", func(t *testing.T) {
		assert.Equal(t, http.StatusNotFound, get(uuid.NewString()).Code)
	})

	t.Run("Malformed id", func(t *testing.T) {
		assert.Equal(t, http.StatusBadRequest, get("abc").Code)
	})
}

func TestRouterRunStopsWithContext(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := NewRouter(Config{Addr: "127.0.0.1:0", BaseURL: "/api"})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- r.Run(ctx) }()
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("router did not stop")
	}
}
