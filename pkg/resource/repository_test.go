package resource

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/dydra/dydra/pkg/errors"
	"github.com/dydra/dydra/pkg/process"
	"github.com/dydra/dydra/pkg/resource/status"
	"github.com/dydra/dydra/pkg/rpc"
	"github.com/dydra/dydra/pkg/rpc/mockrpc"
	rpcstatus "github.com/dydra/dydra/pkg/rpc/status"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustRepository(t *testing.T, c *Client, spec string) *Repository {
	r, err := c.Resolve(spec)
	require.NoError(t, err)
	repo, ok := AsRepository(r)
	require.True(t, ok)
	return repo
}

func TestRepositoryOperations(t *testing.T) {
	caller := &mockrpc.CallerMock{
		CallFunc: func(_ context.Context, method string, args ...interface{}) (interface{}, error) {
			return "job-" + method, nil
		},
	}
	c, _ := testClient(caller)
	repo := mustRepository(t, c, "jhacker/data")
	ctx := context.Background()

	for _, toPin := range []struct {
		Method string
		Args   []interface{}
		Run    func() (*process.Process, error)
	}{
		{Method: "repository.create", Args: []interface{}{"jhacker/data"}, Run: func() (*process.Process, error) { return repo.Create(ctx) }},
		{Method: "repository.destroy", Args: []interface{}{"jhacker/data"}, Run: func() (*process.Process, error) { return repo.Destroy(ctx) }},
		{Method: "repository.clear", Args: []interface{}{"jhacker/data"}, Run: func() (*process.Process, error) { return repo.Clear(ctx) }},
		{
			Method: "repository.import",
			Args:   []interface{}{"jhacker/data", "http://example.org/foaf.nt"},
			Run:    func() (*process.Process, error) { return repo.Import(ctx, "http://example.org/foaf.nt") },
		},
		{
			Method: "repository.query",
			Args:   []interface{}{"jhacker/data", "SELECT * WHERE { ?s ?p ?o }"},
			Run:    func() (*process.Process, error) { return repo.Query(ctx, "SELECT * WHERE { ?s ?p ?o }") },
		},
	} {
		fixture := toPin
		t.Run(fixture.Method, func(t *testing.T) {
			p, err := fixture.Run()
			require.NoError(t, err)
			assert.Equal(t, "job-"+fixture.Method, p.ID())
			assert.Equal(t, process.Pending, p.State())

			calls := caller.CallCalls()
			last := calls[len(calls)-1]
			assert.Equal(t, fixture.Method, last.Method)
			assert.Equal(t, fixture.Args, last.Args)
		})
	}
}

func TestCreatePollSucceeded(t *testing.T) {
	polls := 0
	caller := &mockrpc.CallerMock{
		CallFunc: func(_ context.Context, method string, args ...interface{}) (interface{}, error) {
			switch method {
			case "repository.create":
				return map[string]interface{}{"id": "job-1"}, nil
			case process.DefaultStatusMethod:
				polls++
				if polls < 3 {
					return "running", nil
				}
				return "succeeded", nil
			}
			t.Fatalf("unexpected call %s", method)
			return nil, nil
		},
	}
	c, _ := testClient(caller)
	repo := mustRepository(t, c, "jhacker/data")

	p, err := repo.Create(context.Background())
	require.NoError(t, err)
	require.Equal(t, process.Pending, p.State())

	var state process.State
	for !state.IsTerminal() {
		state, err = p.Poll(context.Background())
		require.NoError(t, err)
	}
	assert.Equal(t, process.Succeeded, state)

	state, err = p.Poll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, process.Succeeded, state)
	assert.Equal(t, 3, polls)
}

func TestQueryResult(t *testing.T) {
	bindings := []interface{}{map[string]interface{}{"s": "http://example.org/s"}}
	caller := &mockrpc.CallerMock{
		CallFunc: mockrpc.Responder(map[string]interface{}{
			"repository.query":          "job-q",
			process.DefaultStatusMethod: map[string]interface{}{"status": "succeeded", "result": bindings},
		}),
	}
	c, _ := testClient(caller, WithProcessOptions(process.StatusMethod(process.DefaultStatusMethod)))
	repo := mustRepository(t, c, "jhacker/data")

	p, err := repo.Query(context.Background(), "SELECT ?s WHERE { ?s ?p ?o }")
	require.NoError(t, err)
	result, err := p.Wait(context.Background(), process.Interval(time.Millisecond))
	require.NoError(t, err)
	assert.Equal(t, bindings, result)
}

func TestStartFailures(t *testing.T) {
	caller := &mockrpc.CallerMock{
		CallFunc: mockrpc.Responder(map[string]interface{}{
			"repository.create":  rpcstatus.ErrRemoteRejected.Wrapf("repository exists"),
			"repository.destroy": nil,
		}),
	}
	c, _ := testClient(caller)
	repo := mustRepository(t, c, "jhacker/data")

	_, err := repo.Create(context.Background())
	assert.True(t, errors.Is(err, rpcstatus.ErrRemoteRejected))

	_, err = repo.Destroy(context.Background())
	assert.True(t, errors.Is(err, rpcstatus.ErrUnexpectedResult))
}

func TestCount(t *testing.T) {
	for _, toPin := range []struct {
		Name     string
		Result   interface{}
		Count    int64
		Expected *errors.Error
	}{
		{Name: "number", Result: float64(1234), Count: 1234},
		{Name: "zero", Result: 0, Count: 0},
		{Name: "string", Result: "42", Count: 42},
		{Name: "negative", Result: -1, Expected: rpcstatus.ErrUnexpectedResult},
		{Name: "not a number", Result: "many", Expected: rpcstatus.ErrUnexpectedResult},
		{Name: "nothing", Result: nil, Expected: rpcstatus.ErrUnexpectedResult},
		{Name: "rejected", Result: rpcstatus.ErrRemoteRejected.Wrapf("unknown repository"), Expected: rpcstatus.ErrRemoteRejected},
	} {
		fixture := toPin
		t.Run(fixture.Name, func(t *testing.T) {
			caller := &mockrpc.CallerMock{CallFunc: mockrpc.Responder(map[string]interface{}{"repository.count": fixture.Result})}
			c, _ := testClient(caller)
			repo := mustRepository(t, c, "jhacker/data")

			n, err := repo.Count(context.Background())
			if fixture.Expected != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, fixture.Expected), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, fixture.Count, n)
			assert.Equal(t, []interface{}{"jhacker/data"}, caller.CallCalls()[0].Args)
		})
	}
}

func TestInfo(t *testing.T) {
	info := map[string]interface{}{
		"summary":     "test data",
		"description": "a repository for tests",
		"created":     "2010-05-04T10:00:00Z",
		"updated":     "2010-06-01T12:30:00Z",
	}

	t.Run("no cache", func(t *testing.T) {
		caller := &mockrpc.CallerMock{CallFunc: mockrpc.Responder(map[string]interface{}{"repository.info": info})}
		c, _ := testClient(caller)
		repo := mustRepository(t, c, "jhacker/data")
		ctx := context.Background()

		summary, err := repo.Summary(ctx)
		require.NoError(t, err)
		assert.Equal(t, "test data", summary)
		description, err := repo.Description(ctx)
		require.NoError(t, err)
		assert.Equal(t, "a repository for tests", description)
		created, err := repo.CreatedAt(ctx)
		require.NoError(t, err)
		assert.Equal(t, time.Date(2010, 5, 4, 10, 0, 0, 0, time.UTC), created.UTC())
		updated, err := repo.UpdatedAt(ctx)
		require.NoError(t, err)
		assert.True(t, updated.After(created))

		assert.Len(t, caller.CallCalls(), 4, "each accessor is one remote call")
	})

	t.Run("cache", func(t *testing.T) {
		caller := &mockrpc.CallerMock{CallFunc: mockrpc.Responder(map[string]interface{}{"repository.info": info})}
		c, _ := testClient(caller, WithInfoCache(true))
		repo := mustRepository(t, c, "jhacker/data")
		ctx := context.Background()

		_, err := repo.Summary(ctx)
		require.NoError(t, err)
		_, err = repo.UpdatedAt(ctx)
		require.NoError(t, err)
		assert.Len(t, caller.CallCalls(), 1)

		other := mustRepository(t, c, "jhacker/data")
		_, err = other.Summary(ctx)
		require.NoError(t, err)
		assert.Len(t, caller.CallCalls(), 2, "the cache is per handle")
	})

	t.Run("failure is not cached", func(t *testing.T) {
		calls := 0
		caller := &mockrpc.CallerMock{
			CallFunc: func(context.Context, string, ...interface{}) (interface{}, error) {
				calls++
				if calls == 1 {
					return nil, rpcstatus.ErrTransportFailure.Wrapf("reset")
				}
				return info, nil
			},
		}
		c, _ := testClient(caller, WithInfoCache(true))
		repo := mustRepository(t, c, "jhacker/data")

		_, err := repo.Summary(context.Background())
		require.Error(t, err)
		summary, err := repo.Summary(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "test data", summary)
	})
}

func TestRepositories(t *testing.T) {
	caller := &mockrpc.CallerMock{
		CallFunc: mockrpc.Responder(map[string]interface{}{
			"repository.list": []interface{}{
				[]interface{}{"jhacker", "data"},
				[]interface{}{"alice", "foaf"},
				[]interface{}{"other", ""},
				[]interface{}{"other", "a/b"},
				[]interface{}{"a/b", "c"},
				[]interface{}{"jhacker", "foaf"},
			},
		}),
	}
	c, _ := testClient(caller)
	account, err := c.Account("jhacker")
	require.NoError(t, err)

	repos, err := account.Repositories(context.Background())
	require.NoError(t, err)
	require.Len(t, repos, 2)
	for _, repo := range repos {
		assert.Equal(t, "jhacker", repo.Account().Name())
	}
	assert.Equal(t, "jhacker/data", repos[0].String())
	assert.Equal(t, "jhacker/foaf", repos[1].String())
	assert.Equal(t, []interface{}{"jhacker"}, caller.CallCalls()[0].Args)
}

func TestRepositoriesSequence(t *testing.T) {
	caller := &mockrpc.CallerMock{
		CallFunc: mockrpc.Responder(map[string]interface{}{
			"repository.list": []interface{}{
				[]interface{}{"jhacker", "data"},
				[]interface{}{"alice", "foaf"},
			},
		}),
	}
	c, _ := testClient(caller)
	seq := c.Repositories(context.Background(), "")

	for round := 0; round < 2; round++ {
		var specs []string
		for repo, err := range seq {
			require.NoError(t, err)
			specs = append(specs, repo.String())
		}
		assert.Equal(t, []string{"jhacker/data", "alice/foaf"}, specs)
	}
	assert.Len(t, caller.CallCalls(), 2, "each iteration lists anew")
	assert.Equal(t, []interface{}{""}, caller.CallCalls()[0].Args)

	for range seq {
		break
	}
	assert.Len(t, caller.CallCalls(), 3)
}

func TestRepositoriesErrors(t *testing.T) {
	for _, toPin := range []struct {
		Name     string
		Result   interface{}
		Expected *errors.Error
	}{
		{Name: "auth", Result: rpcstatus.ErrAuthenticationRequired, Expected: rpcstatus.ErrAuthenticationRequired},
		{Name: "shape", Result: "nope", Expected: rpcstatus.ErrUnexpectedResult},
		{Name: "bad name", Result: []interface{}{[]interface{}{"a/b", "c"}}, Expected: rpcstatus.ErrUnexpectedResult},
	} {
		fixture := toPin
		t.Run(fixture.Name, func(t *testing.T) {
			caller := &mockrpc.CallerMock{CallFunc: mockrpc.Responder(map[string]interface{}{"repository.list": fixture.Result})}
			c, _ := testClient(caller)

			var count int
			for repo, err := range c.Repositories(context.Background(), "") {
				count++
				assert.Nil(t, repo)
				require.Error(t, err)
				assert.True(t, errors.Is(err, fixture.Expected), "got %v", err)
			}
			assert.Equal(t, 1, count)
		})
	}
}

func TestRegister(t *testing.T) {
	caller := &mockrpc.CallerMock{
		CallFunc: mockrpc.Responder(map[string]interface{}{"account.register": true}),
	}
	c, _ := testClient(caller)

	_, err := c.Register(context.Background(), "bad/name", "secret")
	require.Error(t, err)
	assert.True(t, errors.Is(err, status.ErrInvalidSpec))
	assert.Empty(t, caller.CallCalls())

	account, err := c.Register(context.Background(), "jhacker", "secret")
	require.NoError(t, err)
	assert.Equal(t, "jhacker", account.String())
	assert.Equal(t, []interface{}{"jhacker", "secret"}, caller.CallCalls()[0].Args)

	taken := &mockrpc.CallerMock{
		CallFunc: mockrpc.Responder(map[string]interface{}{
			"account.register": rpcstatus.ErrRemoteRejected.Wrap(&rpc.RemoteError{Code: 1, Message: "name taken"}),
		}),
	}
	c, _ = testClient(taken)
	_, err = c.Register(context.Background(), "jhacker", "secret")
	assert.True(t, errors.Is(err, rpcstatus.ErrRemoteRejected))
}

func TestAccountInfo(t *testing.T) {
	caller := &mockrpc.CallerMock{
		CallFunc: mockrpc.Responder(map[string]interface{}{"account.info": map[string]interface{}{"name": "jhacker", "repositories": 2}}),
	}
	c, _ := testClient(caller)
	account, err := c.Account("jhacker")
	require.NoError(t, err)

	info, err := account.Info(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "jhacker", info["name"])
	assert.Equal(t, "jhacker", account.Path())
}

func TestParseSpecs(t *testing.T) {
	c, f := testClient(noCalls(t))

	resources, err := c.ParseResourceSpecs([]string{"jhacker", "jhacker/data"})
	require.NoError(t, err)
	require.Len(t, resources, 2)
	assert.Equal(t, KindAccount, resources[0].Kind())
	assert.Equal(t, KindRepository, resources[1].Kind())

	_, err = c.ParseResourceSpecs([]string{"a/b/c", "jhacker", "x//y"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, status.ErrInvalidSpec))
	assert.Contains(t, err.Error(), `invalid resource spec: "a/b/c"`)
	assert.Contains(t, err.Error(), `"x//y"`)

	_, err = c.ParseRepositorySpecs([]string{"jhacker/data", "jhacker"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, status.ErrInvalidRepositorySpec))
	assert.Contains(t, err.Error(), `invalid repository spec: "jhacker"`)

	repos, err := c.ParseRepositorySpecs([]string{"jhacker/data"})
	require.NoError(t, err)
	assert.Equal(t, "jhacker/data", repos[0].String())
	assert.Empty(t, f.Requests())
}

func TestValidateSpecs(t *testing.T) {
	c, f := testClient(noCalls(t), WithConcurrency(2))
	f.statuses["https://dydra.com/jhacker"] = http.StatusOK
	f.statuses["https://dydra.com/jhacker/data"] = http.StatusOK
	f.statuses["https://dydra.com/alice/foaf"] = http.StatusOK

	specs := []string{"jhacker/data", "jhacker", "alice/foaf"}
	resources, err := c.ValidateResourceSpecs(context.Background(), specs)
	require.NoError(t, err)
	for i, r := range resources {
		assert.Equal(t, specs[i], r.String(), "input order is preserved")
	}

	_, err = c.ValidateResourceSpecs(context.Background(), []string{"jhacker", "nobody", "jhacker/nothing"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, status.ErrUnknownAccount))
	assert.True(t, errors.Is(err, status.ErrUnknownRepository))
	assert.Contains(t, err.Error(), `unknown account: "nobody"`)
	assert.Contains(t, err.Error(), `unknown repository: "jhacker/nothing"`)

	_, err = c.ValidateRepositorySpecs(context.Background(), []string{"jhacker"})
	assert.True(t, errors.Is(err, status.ErrInvalidRepositorySpec))

	repos, err := c.ValidateRepositorySpecs(context.Background(), []string{"alice/foaf", "jhacker/data"})
	require.NoError(t, err)
	assert.Equal(t, "alice/foaf", repos[0].String())

	f.statuses["https://dydra.com/jhacker/down"] = -1
	_, err = c.ValidateRepositorySpecs(context.Background(), []string{"jhacker/data", "jhacker/down"})
	assert.True(t, errors.Is(err, rpcstatus.ErrTransportFailure))

	requests := f.Requests()
	_, err = c.ValidateResourceSpecs(context.Background(), []string{"a/b/c"})
	assert.True(t, errors.Is(err, status.ErrInvalidSpec))
	assert.Len(t, f.Requests(), len(requests), "invalid specs are never checked remotely")
}
