package controllerImp

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"bonsai/entities"
)

type fakeUserRepo struct {
	byName map[string]*entities.User
	byID   map[uint]*entities.User
	nextID uint
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byName: map[string]*entities.User{}, byID: map[uint]*entities.User{}, nextID: 1}
}

func (f *fakeUserRepo) Create(u *entities.User) error {
	u.UserID = f.nextID
	f.nextID++
	f.byName[u.Username] = u
	f.byID[u.UserID] = u
	return nil
}

func (f *fakeUserRepo) FindByUsername(name string) (*entities.User, error) {
	return f.byName[name], nil
}

func (f *fakeUserRepo) FindByID(id uint) (*entities.User, error) { return f.byID[id], nil }

func (f *fakeUserRepo) List() ([]entities.User, error) {
	out := make([]entities.User, 0, len(f.byID))
	for _, u := range f.byID {
		out = append(out, *u)
	}
	return out, nil
}

func postJSON(h echo.HandlerFunc, body string) *httptest.ResponseRecorder {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	h(e.NewContext(req, rec))
	return rec
}

func TestRegisterValidation(t *testing.T) {
	h := New(newFakeUserRepo())

	cases := []struct {
		name string
		body string
		want string
	}{
		{"short username", `{"username":"ab","password":"secret123"}`, "ユーザー名は3文字以上必要です"},
		{"short password", `{"username":"taro","password":"12345"}`, "パスワードは6文字以上必要です"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := postJSON(h.Register, tc.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", rec.Code)
			}
			var resp map[string]any
			json.Unmarshal(rec.Body.Bytes(), &resp)
			if resp["message"] != tc.want {
				t.Errorf("message = %v, want %q", resp["message"], tc.want)
			}
		})
	}
}

func TestRegisterRejectsDuplicate(t *testing.T) {
	repo := newFakeUserRepo()
	h := New(repo)

	if rec := postJSON(h.Register, `{"username":"taro","password":"secret123"}`); rec.Code != http.StatusOK {
		t.Fatalf("first register: %d", rec.Code)
	}
	rec := postJSON(h.Register, `{"username":"taro","password":"another1"}`)
	if rec.Code != http.StatusConflict {
		t.Fatalf("duplicate register status = %d, want 409", rec.Code)
	}
}

func TestRegisterDowngradesBadRole(t *testing.T) {
	repo := newFakeUserRepo()
	h := New(repo)

	if rec := postJSON(h.Register, `{"username":"eve","password":"secret123","role":"superuser"}`); rec.Code != http.StatusOK {
		t.Fatalf("register: %d", rec.Code)
	}
	if repo.byName["eve"].Role != "user" {
		t.Errorf("role = %q, want user (unknown roles downgraded)", repo.byName["eve"].Role)
	}
}

func TestLogin(t *testing.T) {
	repo := newFakeUserRepo()
	hash, _ := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	repo.Create(&entities.User{Username: "taro", PasswordHash: string(hash), Role: "user"})
	h := New(repo)

	rec := postJSON(h.Login, `{"username":"taro","password":"secret123"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp map[string]any
	json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp["success"] != true || resp["user"] != "taro" {
		t.Errorf("resp = %v", resp)
	}

	rec = postJSON(h.Login, `{"username":"taro","password":"wrong"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("bad password status = %d, want 401", rec.Code)
	}
	rec = postJSON(h.Login, `{"username":"nobody","password":"secret123"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("unknown user status = %d, want 401", rec.Code)
	}
}
