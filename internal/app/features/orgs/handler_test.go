package orgs_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	orgsfeature "github.com/dalemusser/tenanthub/internal/app/features/orgs"
	"github.com/dalemusser/tenanthub/internal/app/lifecycle"
	"github.com/dalemusser/tenanthub/internal/app/system/auth"
	"github.com/dalemusser/tenanthub/internal/app/system/ratelimit"
	"github.com/dalemusser/tenanthub/internal/testutil"
	"go.uber.org/zap"
)

type testEnv struct {
	server *httptest.Server
	orgs   *testutil.FakeOrgStore
	admins *testutil.FakeAdminStore
	colls  *testutil.FakeCollectionStore
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	orgs := testutil.NewFakeOrgStore()
	admins := testutil.NewFakeAdminStore()
	colls := testutil.NewFakeCollectionStore()
	orch := lifecycle.New(orgs, admins, colls, zap.NewNop())

	tokens, err := auth.NewTokenManager("test-secret-0123456789", time.Hour, zap.NewNop())
	if err != nil {
		t.Fatalf("NewTokenManager failed: %v", err)
	}

	handler := orgsfeature.NewHandler(orch, tokens,
		ratelimit.NewLoginLimiter(1000, time.Minute, 1000, time.Minute),
		ratelimit.New(1000, time.Minute),
		zap.NewNop())

	server := httptest.NewServer(orgsfeature.Routes(handler))
	t.Cleanup(server.Close)

	return &testEnv{server: server, orgs: orgs, admins: admins, colls: colls}
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) (*http.Response, map[string]any) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encoding request body failed: %v", err)
		}
	}
	req, err := http.NewRequest(method, e.server.URL+path, &buf)
	if err != nil {
		t.Fatalf("building request failed: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	var decoded map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		t.Fatalf("decoding response body failed: %v", err)
	}
	return resp, decoded
}

func (e *testEnv) createOrg(t *testing.T, name, email string) {
	t.Helper()
	resp, body := e.do(t, "POST", "/create", "", map[string]string{
		"organization_name": name,
		"email":             email,
		"password":          "SecurePass123",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create returned %d: %v", resp.StatusCode, body)
	}
}

func (e *testEnv) login(t *testing.T, email string) string {
	t.Helper()
	resp, body := e.do(t, "POST", "/admin/login", "", map[string]string{
		"email":    email,
		"password": "SecurePass123",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login returned %d: %v", resp.StatusCode, body)
	}
	token, _ := body["access_token"].(string)
	if token == "" {
		t.Fatal("login response missing access_token")
	}
	return token
}

func TestHandleCreate(t *testing.T) {
	env := newTestEnv(t)

	resp, body := env.do(t, "POST", "/create", "", map[string]string{
		"organization_name": "Acme Corp",
		"email":             "admin@acmecorp.com",
		"password":          "SecurePass123",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d, want %d (%v)", resp.StatusCode, http.StatusCreated, body)
	}
	if body["message"] != "Organization created successfully" {
		t.Errorf("message = %v", body["message"])
	}
	org, _ := body["organization"].(map[string]any)
	if org == nil {
		t.Fatal("response missing organization")
	}
	if org["organization_name"] != "acme_corp" {
		t.Errorf("organization_name = %v, want acme_corp", org["organization_name"])
	}
	if org["collection_name"] != "org_acme_corp" {
		t.Errorf("collection_name = %v, want org_acme_corp", org["collection_name"])
	}
	if org["admin_email"] != "admin@acmecorp.com" {
		t.Errorf("admin_email = %v", org["admin_email"])
	}
	if body["admin_id"] == "" {
		t.Error("response missing admin_id")
	}
}

func TestHandleCreate_Failures(t *testing.T) {
	env := newTestEnv(t)
	env.createOrg(t, "acme_corp", "admin@acmecorp.com")

	tests := []struct {
		name       string
		payload    map[string]string
		wantStatus int
		wantCode   string
	}{
		{
			"duplicate name",
			map[string]string{"organization_name": "acme_corp", "email": "x@y.co", "password": "SecurePass123"},
			http.StatusBadRequest, "duplicate_name",
		},
		{
			"duplicate email",
			map[string]string{"organization_name": "globex", "email": "admin@acmecorp.com", "password": "SecurePass123"},
			http.StatusBadRequest, "duplicate_email",
		},
		{
			"invalid name",
			map[string]string{"organization_name": "!!", "email": "x@y.co", "password": "SecurePass123"},
			http.StatusUnprocessableEntity, "validation_error",
		},
		{
			"weak password",
			map[string]string{"organization_name": "globex", "email": "x@y.co", "password": "weak"},
			http.StatusUnprocessableEntity, "validation_error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := env.do(t, "POST", "/create", "", tt.payload)
			if resp.StatusCode != tt.wantStatus {
				t.Errorf("status = %d, want %d (%v)", resp.StatusCode, tt.wantStatus, body)
			}
			if body["error"] != tt.wantCode {
				t.Errorf("error = %v, want %s", body["error"], tt.wantCode)
			}
		})
	}
}

func TestServeGet(t *testing.T) {
	env := newTestEnv(t)
	env.createOrg(t, "acme_corp", "admin@acmecorp.com")

	resp, body := env.do(t, "GET", "/get?organization_name=acme_corp", "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d (%v)", resp.StatusCode, http.StatusOK, body)
	}
	if body["organization_name"] != "acme_corp" {
		t.Errorf("organization_name = %v", body["organization_name"])
	}
	if body["admin_email"] != "admin@acmecorp.com" {
		t.Errorf("admin_email = %v", body["admin_email"])
	}

	resp, body = env.do(t, "GET", "/get?organization_name=ghost_org", "", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("missing org status = %d, want %d", resp.StatusCode, http.StatusNotFound)
	}
	if body["error"] != "not_found" {
		t.Errorf("error = %v, want not_found", body["error"])
	}

	resp, _ = env.do(t, "GET", "/get", "", nil)
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Errorf("missing param status = %d, want %d", resp.StatusCode, http.StatusUnprocessableEntity)
	}
}

func TestHandleLogin(t *testing.T) {
	env := newTestEnv(t)
	env.createOrg(t, "acme_corp", "admin@acmecorp.com")

	resp, body := env.do(t, "POST", "/admin/login", "", map[string]string{
		"email":    "admin@acmecorp.com",
		"password": "SecurePass123",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d (%v)", resp.StatusCode, http.StatusOK, body)
	}
	if body["token_type"] != "bearer" {
		t.Errorf("token_type = %v, want bearer", body["token_type"])
	}
	if body["access_token"] == "" {
		t.Error("response missing access_token")
	}
	if int(body["expires_in"].(float64)) != 3600 {
		t.Errorf("expires_in = %v, want 3600", body["expires_in"])
	}
}

func TestHandleLogin_BadCredentials(t *testing.T) {
	env := newTestEnv(t)
	env.createOrg(t, "acme_corp", "admin@acmecorp.com")

	for _, payload := range []map[string]string{
		{"email": "admin@acmecorp.com", "password": "WrongPass123"},
		{"email": "nobody@acmecorp.com", "password": "SecurePass123"},
	} {
		resp, body := env.do(t, "POST", "/admin/login", "", payload)
		if resp.StatusCode != http.StatusUnauthorized {
			t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusUnauthorized)
		}
		if body["error"] != "unauthorized" {
			t.Errorf("error = %v, want unauthorized", body["error"])
		}
	}
}

func TestHandleUpdate(t *testing.T) {
	env := newTestEnv(t)
	env.createOrg(t, "acme_corp", "admin@acmecorp.com")
	token := env.login(t, "admin@acmecorp.com")

	resp, body := env.do(t, "PUT", "/update", token, map[string]string{
		"organization_name": "acme_global",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d (%v)", resp.StatusCode, http.StatusOK, body)
	}
	org, _ := body["organization"].(map[string]any)
	if org == nil {
		t.Fatal("response missing organization")
	}
	if org["organization_name"] != "acme_global" {
		t.Errorf("organization_name = %v, want acme_global", org["organization_name"])
	}
	if org["collection_name"] != "org_acme_global" {
		t.Errorf("collection_name = %v, want org_acme_global", org["collection_name"])
	}
}

func TestHandleUpdate_RequiresToken(t *testing.T) {
	env := newTestEnv(t)

	resp, body := env.do(t, "PUT", "/update", "", map[string]string{
		"organization_name": "acme_global",
	})
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d (%v)", resp.StatusCode, http.StatusUnauthorized, body)
	}
}

func TestHandleUpdate_RenameConflict(t *testing.T) {
	env := newTestEnv(t)
	env.createOrg(t, "acme_corp", "admin@acmecorp.com")
	env.createOrg(t, "globex", "admin@globex.com")
	token := env.login(t, "admin@acmecorp.com")

	resp, body := env.do(t, "PUT", "/update", token, map[string]string{
		"organization_name": "globex",
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want %d (%v)", resp.StatusCode, http.StatusBadRequest, body)
	}
	if body["error"] != "duplicate_name" {
		t.Errorf("error = %v, want duplicate_name", body["error"])
	}
}

func TestHandleDelete(t *testing.T) {
	env := newTestEnv(t)
	env.createOrg(t, "acme_corp", "admin@acmecorp.com")
	token := env.login(t, "admin@acmecorp.com")

	resp, body := env.do(t, "DELETE", "/delete", token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d (%v)", resp.StatusCode, http.StatusOK, body)
	}
	want := fmt.Sprintf("Organization '%s' deleted successfully", "acme_corp")
	if body["message"] != want {
		t.Errorf("message = %v, want %q", body["message"], want)
	}

	// The token's organization is gone now.
	resp, body = env.do(t, "DELETE", "/delete", token, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("second delete status = %d, want %d (%v)", resp.StatusCode, http.StatusNotFound, body)
	}

	if len(env.orgs.Orgs) != 0 || len(env.admins.Admins) != 0 || len(env.colls.Collections) != 0 {
		t.Error("cascade delete left records behind")
	}
}
