package gearpump

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/trustedanalytics/tapdeploy/internal/constants"
	internalhttp "github.com/trustedanalytics/tapdeploy/internal/http"
	"github.com/trustedanalytics/tapdeploy/pkg/tap"
)

const (
	loginPath  = "/login"
	submitPath = "/api/v1.0/master/submitapp"

	// cookieFileName holds the session cookie between login and submit.
	cookieFileName = ".gearpump-session"

	// requestBodyFileName holds the assembled submitapp body.
	requestBodyFileName = "request_body"
)

// Client drives a Gearpump service instance's REST API. The session cookie
// obtained by Login and the assembled request body are persisted to workDir
// only for the duration of a single submission and removed afterwards.
type Client struct {
	httpClient *internalhttp.Client
	workDir    string
}

// NewClient creates a client for the Gearpump instance at gearpumpURL.
// URLs without a scheme get "http://", matching how the platform exposes
// Gearpump dashboards.
func NewClient(gearpumpURL, workDir string, opts ...internalhttp.Option) *Client {
	if !strings.HasPrefix(gearpumpURL, "http://") && !strings.HasPrefix(gearpumpURL, "https://") {
		gearpumpURL = "http://" + gearpumpURL
	}

	return &Client{
		httpClient: internalhttp.NewClient(gearpumpURL, nil, opts...),
		workDir:    workDir,
	}
}

// Login authenticates against the Gearpump REST API and saves the session
// cookie for the submission that follows.
func (c *Client) Login(ctx context.Context, username, password string) error {
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)

	resp, err := c.httpClient.Do(ctx, &internalhttp.Request{
		Method:  http.MethodPost,
		Path:    loginPath,
		Body:    []byte(form.Encode()),
		Headers: map[string]string{"Content-Type": "application/x-www-form-urlencoded"},
	})
	if err != nil {
		return fmt.Errorf("logging in to gearpump: %w", err)
	}

	cookies := resp.Headers.Values("Set-Cookie")
	if len(cookies) == 0 {
		return tap.ErrNoSessionCookie
	}

	return c.saveCookies(cookies)
}

// Submit uploads the application jar together with the assembled request
// body. The body travels as the "configstring" form field, prefixed with
// "tap=", next to the "jar" file field. Both scratch files are removed on
// every exit path; the Gearpump response text is returned for display.
func (c *Client) Submit(ctx context.Context, jarPath string, body SubmitBody) (response string, err error) {
	cookies, err := c.loadCookies()
	if err != nil {
		return "", fmt.Errorf("loading gearpump session: %w", err)
	}

	bodyFile := filepath.Join(c.workDir, requestBodyFileName)

	defer func() {
		err = errors.Join(err, c.removeScratchFiles())
	}()

	data, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("encoding submitapp body: %w", err)
	}

	if err := os.WriteFile(bodyFile, append([]byte("tap="), data...), constants.ScratchFilePerm); err != nil {
		return "", fmt.Errorf("writing request body file: %w", err)
	}

	jar, err := os.ReadFile(jarPath)
	if err != nil {
		return "", fmt.Errorf("reading application jar: %w", err)
	}

	configstring, err := os.ReadFile(bodyFile)
	if err != nil {
		return "", fmt.Errorf("reading request body file: %w", err)
	}

	form, contentType, err := encodeSubmitForm(filepath.Base(jarPath), jar, configstring)
	if err != nil {
		return "", err
	}

	resp, err := c.httpClient.Do(ctx, &internalhttp.Request{
		Method: http.MethodPost,
		Path:   submitPath,
		Body:   form,
		Headers: map[string]string{
			"Content-Type": contentType,
			"Cookie":       strings.Join(cookieValues(cookies), "; "),
		},
	})
	if err != nil {
		return "", fmt.Errorf("submitting application to gearpump: %w", err)
	}

	return string(resp.Body), nil
}

func encodeSubmitForm(jarName string, jar, configstring []byte) ([]byte, string, error) {
	var buf bytes.Buffer

	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("jar", jarName)
	if err != nil {
		return nil, "", fmt.Errorf("creating jar form file: %w", err)
	}

	if _, err := part.Write(jar); err != nil {
		return nil, "", fmt.Errorf("writing jar to form: %w", err)
	}

	if err := writer.WriteField("configstring", string(configstring)); err != nil {
		return nil, "", fmt.Errorf("writing configstring to form: %w", err)
	}

	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("closing multipart writer: %w", err)
	}

	return buf.Bytes(), writer.FormDataContentType(), nil
}

func (c *Client) saveCookies(cookies []string) error {
	data, err := json.Marshal(cookies)
	if err != nil {
		return fmt.Errorf("encoding session cookies: %w", err)
	}

	path := filepath.Join(c.workDir, cookieFileName)
	if err := os.WriteFile(path, data, constants.ScratchFilePerm); err != nil {
		return fmt.Errorf("writing session cookie file: %w", err)
	}

	return nil
}

func (c *Client) loadCookies() ([]string, error) {
	data, err := os.ReadFile(filepath.Join(c.workDir, cookieFileName))
	if err != nil {
		return nil, err
	}

	var cookies []string
	if err := json.Unmarshal(data, &cookies); err != nil {
		return nil, fmt.Errorf("decoding session cookie file: %w", err)
	}

	return cookies, nil
}

func (c *Client) removeScratchFiles() error {
	var errs []error

	for _, name := range []string{cookieFileName, requestBodyFileName} {
		if err := os.Remove(filepath.Join(c.workDir, name)); err != nil && !os.IsNotExist(err) {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

// cookieValues strips Set-Cookie attributes, keeping only name=value pairs
// for the Cookie request header.
func cookieValues(cookies []string) []string {
	values := make([]string, 0, len(cookies))

	for _, cookie := range cookies {
		pair, _, _ := strings.Cut(cookie, ";")
		values = append(values, strings.TrimSpace(pair))
	}

	return values
}
