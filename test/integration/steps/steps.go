package steps

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/cucumber/godog"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pocketwatch/backend/internal/domain/entity"
	identityprovider "github.com/pocketwatch/backend/internal/integration/identity"
)

func registerAPISteps(ctx *godog.ScenarioContext) {
	ctx.Step(`^the API server is running$`, theAPIServerIsRunning)
	ctx.Step(`^I send a "([^"]*)" request to "([^"]*)"$`, iSendARequestTo)
	ctx.Step(`^I send a "([^"]*)" request to "([^"]*)" with body:$`, iSendARequestToWithBody)
}

func registerSessionSteps(ctx *godog.ScenarioContext) {
	ctx.Step(`^I am signed in as "([^"]*)"$`, iAmSignedInAs)
	ctx.Step(`^I sign out$`, iSignOut)
	ctx.Step(`^I attempt to sign in with token "([^"]*)"$`, iAttemptToSignInWithToken)
}

func registerSeedSteps(ctx *godog.ScenarioContext) {
	ctx.Step(`^the cloud account "([^"]*)" has an? (expense|income) titled "([^"]*)" of amount "([^"]*)"$`, theCloudAccountHasATransaction)
}

func registerResponseSteps(ctx *godog.ScenarioContext) {
	ctx.Step(`^the response status should be (\d+)$`, theResponseStatusShouldBe)
	ctx.Step(`^the response field "([^"]*)" should be "([^"]*)"$`, theResponseFieldShouldBe)
	ctx.Step(`^the response field "([^"]*)" should exist$`, theResponseFieldShouldExist)
	ctx.Step(`^the response should contain "([^"]*)"$`, theResponseShouldContain)
	ctx.Step(`^the response should not contain "([^"]*)"$`, theResponseShouldNotContain)
}

// identityFor derives a stable user id from an email so scenarios can refer
// to the same cloud account by name.
func identityFor(email string) *entity.Identity {
	return &entity.Identity{
		ID:    uuid.NewSHA1(uuid.NameSpaceURL, []byte("pocketwatch:"+email)),
		Email: email,
	}
}

// issueToken signs a session token the way the external identity service
// would.
func issueToken(email string) (string, error) {
	ident := identityFor(email)
	claims := identityprovider.SessionClaims{
		UserID: ident.ID.String(),
		Email:  ident.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSessionSecret))
}

func theAPIServerIsRunning(ctx context.Context) error {
	tc := GetTestContext(ctx)
	if tc == nil || tc.server == nil {
		return fmt.Errorf("test server not initialized")
	}
	return nil
}

// expandPlaceholders substitutes "{field.path}" segments in a request path
// with values from the previous response, so scenarios can chain onto
// server-generated ids.
func (tc *TestContext) expandPlaceholders(path string) string {
	for {
		start := strings.Index(path, "{")
		end := strings.Index(path, "}")
		if start == -1 || end == -1 || end < start {
			return path
		}
		value, err := tc.lookupField(path[start+1 : end])
		if err != nil {
			return path
		}
		path = path[:start] + fmt.Sprint(value) + path[end+1:]
	}
}

func (tc *TestContext) doRequest(method, path string, body []byte) error {
	path = tc.expandPlaceholders(path)

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequest(method, tc.server.URL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	tc.response = resp
	tc.responseBody, err = io.ReadAll(resp.Body)
	return err
}

func iSendARequestTo(ctx context.Context, method, path string) error {
	return GetTestContext(ctx).doRequest(method, path, nil)
}

func iSendARequestToWithBody(ctx context.Context, method, path string, body *godog.DocString) error {
	return GetTestContext(ctx).doRequest(method, path, []byte(body.Content))
}

func iAmSignedInAs(ctx context.Context, email string) error {
	tc := GetTestContext(ctx)

	token, err := issueToken(email)
	if err != nil {
		return err
	}

	payload, _ := json.Marshal(map[string]string{"token": token})
	if err := tc.doRequest(http.MethodPost, "/api/v1/session", payload); err != nil {
		return err
	}
	if tc.response.StatusCode != http.StatusOK {
		return fmt.Errorf("sign-in failed with status %d: %s", tc.response.StatusCode, tc.responseBody)
	}

	// The identity switch reloads asynchronously; force a synchronous
	// refresh so the next step observes the remote view.
	tc.coordinator.Refresh(ctx)
	return nil
}

func iSignOut(ctx context.Context) error {
	tc := GetTestContext(ctx)
	if err := tc.doRequest(http.MethodDelete, "/api/v1/session", nil); err != nil {
		return err
	}
	if tc.response.StatusCode != http.StatusOK {
		return fmt.Errorf("sign-out failed with status %d: %s", tc.response.StatusCode, tc.responseBody)
	}

	tc.coordinator.Refresh(ctx)
	return nil
}

func iAttemptToSignInWithToken(ctx context.Context, token string) error {
	payload, _ := json.Marshal(map[string]string{"token": token})
	return GetTestContext(ctx).doRequest(http.MethodPost, "/api/v1/session", payload)
}

func theCloudAccountHasATransaction(ctx context.Context, email, txnType, title, amount string) error {
	tc := GetTestContext(ctx)

	value, err := decimal.NewFromString(amount)
	if err != nil {
		return err
	}

	scoped := tc.remote.Scope(identityFor(email))
	_, err = scoped.Create(ctx, entity.TransactionDraft{
		Title:    title,
		Amount:   value,
		Type:     entity.TransactionType(txnType),
		Category: entity.CategoryOther,
	})
	return err
}

func theResponseStatusShouldBe(ctx context.Context, status int) error {
	tc := GetTestContext(ctx)
	if tc.response.StatusCode != status {
		return fmt.Errorf("status = %d, want %d; body: %s", tc.response.StatusCode, status, tc.responseBody)
	}
	return nil
}

// lookupField walks a dotted path through the decoded JSON body. Numeric
// segments index into arrays, as in "transactions.0.title".
func (tc *TestContext) lookupField(path string) (interface{}, error) {
	var decoded interface{}
	if err := json.Unmarshal(tc.responseBody, &decoded); err != nil {
		return nil, fmt.Errorf("response is not JSON: %w; body: %s", err, tc.responseBody)
	}

	current := decoded
	for _, segment := range strings.Split(path, ".") {
		switch node := current.(type) {
		case map[string]interface{}:
			value, ok := node[segment]
			if !ok {
				return nil, fmt.Errorf("field %q not found in %s", path, tc.responseBody)
			}
			current = value
		case []interface{}:
			index, err := strconv.Atoi(segment)
			if err != nil || index < 0 || index >= len(node) {
				return nil, fmt.Errorf("bad array index %q in path %q", segment, path)
			}
			current = node[index]
		default:
			return nil, fmt.Errorf("cannot descend into %q at segment %q", path, segment)
		}
	}
	return current, nil
}

func theResponseFieldShouldBe(ctx context.Context, path, expected string) error {
	value, err := GetTestContext(ctx).lookupField(path)
	if err != nil {
		return err
	}

	var actual string
	switch v := value.(type) {
	case float64:
		actual = strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		actual = strconv.FormatBool(v)
	case nil:
		actual = "null"
	default:
		actual = fmt.Sprint(v)
	}

	if actual != expected {
		return fmt.Errorf("field %q = %q, want %q", path, actual, expected)
	}
	return nil
}

func theResponseFieldShouldExist(ctx context.Context, path string) error {
	_, err := GetTestContext(ctx).lookupField(path)
	return err
}

func theResponseShouldContain(ctx context.Context, substring string) error {
	tc := GetTestContext(ctx)
	if !strings.Contains(string(tc.responseBody), substring) {
		return fmt.Errorf("response does not contain %q: %s", substring, tc.responseBody)
	}
	return nil
}

func theResponseShouldNotContain(ctx context.Context, substring string) error {
	tc := GetTestContext(ctx)
	if strings.Contains(string(tc.responseBody), substring) {
		return fmt.Errorf("response unexpectedly contains %q: %s", substring, tc.responseBody)
	}
	return nil
}
