package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type ExitMocks struct {
	mock.Mock
	exitStatuses []int
	messages     []string
}

func (m *ExitMocks) Fatalf(format string, v ...interface{}) {
	m.messages = append(m.messages, fmt.Sprintf(format, v...))
	m.exitStatuses = append(m.exitStatuses, 1)
}

func (m *ExitMocks) Fatalln(v ...interface{}) {
	m.messages = append(m.messages, fmt.Sprintln(v...))
	m.exitStatuses = append(m.exitStatuses, 1)
}

func (m *ExitMocks) Exit(code int) {
	m.exitStatuses = append(m.exitStatuses, code)
}

func (m *ExitMocks) Errorf(format string, v ...interface{}) {
	m.messages = append(m.messages, fmt.Sprintf(format, v...))
}

func (m *ExitMocks) fatalCalls() int {
	return len(m.exitStatuses)
}

func (m *ExitMocks) lastStatus() int {
	if len(m.exitStatuses) == 0 {
		return 0
	}
	return m.exitStatuses[len(m.exitStatuses)-1]
}

func (m *ExitMocks) lastMessage() string {
	if len(m.messages) == 0 {
		return ""
	}
	return m.messages[len(m.messages)-1]
}

// https://github.com/stretchr/testify/issues/610
func MakeFatalfMock(m *ExitMocks) func(string, ...interface{}) {
	return func(format string, v ...interface{}) {
		m.Fatalf(format, v...)
	}
}

func MakeFatallnMock(m *ExitMocks) func(...interface{}) {
	return func(v ...interface{}) {
		m.Fatalln(v...)
	}
}

func MakeErrorfMock(m *ExitMocks) func(string, ...interface{}) {
	return func(format string, v ...interface{}) {
		m.Errorf(format, v...)
	}
}

func MakeExitMock(m *ExitMocks) func(int) {
	return func(code int) {
		m.Exit(code)
	}
}

var (
	exitMocks *ExitMocks
	stdout    *bytes.Buffer
)

const testToken = "test-token"

// fakeProcess answers process.status polls: running first, then its final state
type fakeProcess struct {
	polls  int
	final  string
	result interface{}
	detail string
}

// fakeService mimics the RPC endpoint and the RDF documents of the service
type fakeService struct {
	mu           sync.Mutex
	accounts     map[string]string
	repositories map[string][]string
	processes    map[string]*fakeProcess
	methods      []string
	next         int
}

func newFakeService() *fakeService {
	return &fakeService{
		accounts: map[string]string{"jhacker": "s3cr3t"},
		repositories: map[string][]string{
			"jhacker/data": {
				`<http://example.org/jhacker> <http://xmlns.com/foaf/0.1/name> "J. Hacker" .`,
				`<http://example.org/jhacker> <http://xmlns.com/foaf/0.1/nick> "jhacker" .`,
			},
			"jhacker/foaf": {},
			"other/misc":   {},
		},
		processes: make(map[string]*fakeProcess),
	}
}

func (f *fakeService) called() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.methods...)
}

func (f *fakeService) has(spec string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.repositories[spec]
	return ok
}

func (f *fakeService) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path == "/rpc" && r.Method == http.MethodPost {
		f.serveRPC(w, r)
		return
	}
	f.serveResource(w, r)
}

func (f *fakeService) serveResource(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	path := strings.TrimPrefix(r.URL.Path, "/")
	path = strings.TrimSuffix(path, ".nt")
	var (
		statements []string
		found      bool
	)
	if strings.Contains(path, "/") {
		statements, found = f.repositories[path]
	} else {
		_, found = f.accounts[path]
		for spec := range f.repositories {
			if strings.HasPrefix(spec, path+"/") {
				found = true
			}
		}
	}
	if !found {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodGet {
		for _, line := range statements {
			_, _ = io.WriteString(w, line+"\n")
		}
	}
}

type rpcRequest struct {
	ID     string        `json:"id"`
	Method string        `json:"method"`
	Params []interface{} `json:"params"`
}

func (f *fakeService) serveRPC(w http.ResponseWriter, r *http.Request) {
	var req rpcRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	if req.Method != "account.register" && r.Header.Get("Authorization") != "Bearer "+testToken {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	result, rpcErr := f.dispatch(req.Method, req.Params)
	resp := map[string]interface{}{"jsonrpc": "2.0", "id": req.ID}
	if rpcErr != "" {
		resp["error"] = map[string]interface{}{"code": -32000, "message": rpcErr}
	} else {
		resp["result"] = result
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

func param(params []interface{}, i int) string {
	if i >= len(params) {
		return ""
	}
	s, _ := params[i].(string)
	return s
}

func (f *fakeService) start(final string, result interface{}, detail string) interface{} {
	f.next++
	id := fmt.Sprintf("proc-%d", f.next)
	f.processes[id] = &fakeProcess{final: final, result: result, detail: detail}
	return map[string]interface{}{"id": id, "status": "pending"}
}

func (f *fakeService) dispatch(method string, params []interface{}) (interface{}, string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.methods = append(f.methods, method)

	path := param(params, 0)
	switch method {
	case "account.register":
		if _, exists := f.accounts[path]; exists {
			return nil, "account name taken"
		}
		f.accounts[path] = param(params, 1)
		return path, ""
	case "account.info":
		return map[string]interface{}{"name": path, "repositories": len(f.specsOf(path))}, ""
	case "repository.list":
		pairs := make([][2]string, 0, len(f.repositories))
		for _, spec := range f.specsOf("") {
			parts := strings.SplitN(spec, "/", 2)
			pairs = append(pairs, [2]string{parts[0], parts[1]})
		}
		return pairs, ""
	case "repository.create":
		if _, exists := f.repositories[path]; exists {
			return f.start("failed", nil, "repository exists"), ""
		}
		f.repositories[path] = []string{}
		return f.start("succeeded", nil, ""), ""
	case "repository.destroy":
		delete(f.repositories, path)
		return f.start("succeeded", nil, ""), ""
	case "repository.clear":
		f.repositories[path] = []string{}
		return f.start("succeeded", nil, ""), ""
	case "repository.import":
		f.repositories[path] = append(f.repositories[path], fmt.Sprintf("<%s> <http://purl.org/dc/terms/source> <%s> .", param(params, 1), param(params, 1)))
		return f.start("succeeded", nil, ""), ""
	case "repository.query":
		if strings.Contains(param(params, 1), "SYNTAX ERROR") {
			return f.start("failed", nil, "parse error at line 1"), ""
		}
		return f.start("succeeded", map[string]interface{}{"count": 2}, ""), ""
	case "repository.count":
		return len(f.repositories[path]), ""
	case "repository.info":
		return map[string]interface{}{
			"summary":     "FOAF data",
			"description": "friends of " + path,
			"created":     "2024-01-05T10:00:00Z",
		}, ""
	case "process.status":
		p, ok := f.processes[path]
		if !ok {
			return nil, "unknown process " + path
		}
		p.polls++
		if p.polls == 1 {
			return "running", ""
		}
		report := map[string]interface{}{"id": path, "status": p.final}
		if p.result != nil {
			report["result"] = p.result
		}
		if p.detail != "" {
			report["error"] = map[string]interface{}{"message": p.detail}
		}
		return report, ""
	default:
		return nil, "unknown method " + method
	}
}

// specsOf lists repositories, in a stable order, for one account or all of them
func (f *fakeService) specsOf(account string) []string {
	specs := make([]string, 0, len(f.repositories))
	for spec := range f.repositories {
		if account == "" || strings.HasPrefix(spec, account+"/") {
			specs = append(specs, spec)
		}
	}
	sort.Strings(specs)
	return specs
}

func setupTests(t *testing.T) (*fakeService, func()) {
	t.Setenv("HOME", t.TempDir())

	exitMocks = new(ExitMocks)
	logFatalf = MakeFatalfMock(exitMocks)
	logFatalln = MakeFatallnMock(exitMocks)
	osExit = MakeExitMock(exitMocks)
	logStdErr = MakeErrorfMock(exitMocks)

	color.NoColor = true
	stdout = new(bytes.Buffer)
	logStdOut = func(format string, args ...interface{}) (int, error) {
		return fmt.Fprintf(stdout, format, args...)
	}

	service := newFakeService()
	server := httptest.NewServer(service)
	serverURL = server.URL

	return service, func() {
		server.Close()
		logStdOut = fmt.Printf
	}
}

var serverURL string

// runCmd runs a command against the fake service, with a test token
func runCmd(t *testing.T, cmd []string, intentMsg string, expectError bool) string {
	return runCmdAs(t, append([]string{"--token", testToken}, cmd...), intentMsg, expectError)
}

func runCmdAs(t *testing.T, cmd []string, intentMsg string, expectError bool) string {
	fatalCallsBefore := exitMocks.fatalCalls()
	stdout.Reset()
	dydraFlags = flagsT{}

	args := append([]string{"--url", serverURL}, cmd...)
	rootCmd.SetArgs(args)
	require.NoError(t, rootCmd.Execute(), "error executing '"+strings.Join(cmd, " ")+"' : "+intentMsg)
	if expectError {
		require.Equal(t, fatalCallsBefore+1, exitMocks.fatalCalls(),
			"ran '"+strings.Join(cmd, " ")+"' expecting error and didn't see one in mocks : "+intentMsg)
	} else {
		require.Equal(t, fatalCallsBefore, exitMocks.fatalCalls(),
			"unexpected error in mocks on '"+strings.Join(cmd, " ")+"' : "+intentMsg+": "+exitMocks.lastMessage())
	}
	return stdout.String()
}
