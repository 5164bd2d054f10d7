package cfcli_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trustedanalytics/tapdeploy/internal/cfcli"
	"github.com/trustedanalytics/tapdeploy/pkg/tap"
)

// fakeRunner records invocations and replays canned output per subcommand.
type fakeRunner struct {
	calls   [][]string
	outputs map[string][]byte
	errs    map[string]error
}

func (r *fakeRunner) Run(ctx context.Context, dir, name string, args ...string) ([]byte, error) {
	r.calls = append(r.calls, append([]string{name}, args...))

	if err := r.errs[args[0]]; err != nil {
		return nil, err
	}

	return r.outputs[args[0]], nil
}

const targetOutput = `api endpoint:   https://api.example.com
api version:    2.141.0
user:           admin
org:            demo-org
space:          demo-space
`

func TestCLI_Target(t *testing.T) {
	t.Parallel()

	runner := &fakeRunner{outputs: map[string][]byte{"target": []byte(targetOutput)}}
	cli := cfcli.New(runner)

	params, err := cli.Target(context.Background())
	require.NoError(t, err)
	assert.Equal(t, tap.ConnectionParams{
		APIURL:   "https://api.example.com",
		Username: "admin",
		Org:      "demo-org",
		Space:    "demo-space",
	}, params)
}

func TestCLI_Target_NoSession(t *testing.T) {
	t.Parallel()

	runner := &fakeRunner{errs: map[string]error{"target": errors.New("exit status 1: Not logged in")}}
	cli := cfcli.New(runner)

	_, err := cli.Target(context.Background())
	require.Error(t, err)
	assert.True(t, tap.IsTransport(err))
}

func TestCLI_Login_SequencesAPIAuthTarget(t *testing.T) {
	t.Parallel()

	runner := &fakeRunner{}
	cli := cfcli.New(runner)

	err := cli.Login(context.Background(), tap.ConnectionParams{
		APIURL:   "https://api.example.com",
		Username: "admin",
		Password: "secret",
		Org:      "demo-org",
		Space:    "demo-space",
	})
	require.NoError(t, err)

	require.Len(t, runner.calls, 3)
	assert.Equal(t, []string{"cf", "api", "https://api.example.com"}, runner.calls[0])
	assert.Equal(t, []string{"cf", "auth", "admin", "secret"}, runner.calls[1])
	assert.Equal(t, []string{"cf", "target", "-o", "demo-org", "-s", "demo-space"}, runner.calls[2])
}

func TestCLI_Login_StopsOnAuthFailure(t *testing.T) {
	t.Parallel()

	runner := &fakeRunner{errs: map[string]error{"auth": errors.New("credentials rejected")}}
	cli := cfcli.New(runner)

	err := cli.Login(context.Background(), tap.ConnectionParams{APIURL: "https://api.example.com"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "credentials rejected")

	for _, call := range runner.calls {
		assert.NotEqual(t, "target", call[1])
	}
}

func TestCLI_OAuthToken(t *testing.T) {
	t.Parallel()

	t.Run("strips bearer prefix", func(t *testing.T) {
		t.Parallel()

		runner := &fakeRunner{outputs: map[string][]byte{"oauth-token": []byte("bearer eyJhbGciOi\n")}}
		cli := cfcli.New(runner)

		token, err := cli.OAuthToken(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "eyJhbGciOi", token)
	})

	t.Run("empty output means not logged in", func(t *testing.T) {
		t.Parallel()

		runner := &fakeRunner{}
		cli := cfcli.New(runner)

		_, err := cli.OAuthToken(context.Background())
		require.ErrorIs(t, err, tap.ErrNotLoggedIn)
	})
}

func TestCLI_OrgGUID(t *testing.T) {
	t.Parallel()

	runner := &fakeRunner{outputs: map[string][]byte{"org": []byte("org-guid-123\n")}}
	cli := cfcli.New(runner)

	guid, err := cli.OrgGUID(context.Background(), "demo-org")
	require.NoError(t, err)
	assert.Equal(t, "org-guid-123", guid)
	assert.Equal(t, []string{"cf", "org", "demo-org", "--guid"}, runner.calls[0])
}

func TestCLI_Push(t *testing.T) {
	t.Parallel()

	runner := &fakeRunner{}
	cli := cfcli.New(runner)

	err := cli.Push(context.Background(), "/tmp/project", "manifest.yml", "--no-start")
	require.NoError(t, err)
	require.Len(t, runner.calls, 1)
	assert.Equal(t, "cf push -f manifest.yml --no-start", strings.Join(runner.calls[0], " "))
}
