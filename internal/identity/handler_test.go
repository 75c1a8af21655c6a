package identity_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"

	"github.com/am3lue/ProjectManagementSystem/internal/core/events"
	"github.com/am3lue/ProjectManagementSystem/internal/directory"
	"github.com/am3lue/ProjectManagementSystem/internal/identity"
	"github.com/am3lue/ProjectManagementSystem/internal/session"
	"github.com/am3lue/ProjectManagementSystem/internal/storage"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Identity Handler Integration", func() {
	var (
		ctx      context.Context
		sessions *session.Manager
		handler  *identity.Handler
	)

	BeforeEach(func() {
		ctx = context.Background()
		slogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		stores := storage.NewScoped(storage.NewMemoryStore(), storage.NewMemoryStore())
		dir := directory.New(stores.Durable(), slogger)
		sessions = session.NewManager(stores, slogger)
		service := identity.NewService(dir, sessions, events.NewEventBus(slogger), slogger)
		handler = identity.NewHandler(service)
	})

	post := func(path, body string, h http.HandlerFunc) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		h(rec, req)
		return rec
	}

	signUpBody := `{
		"firstName": "Brian",
		"lastName": "Mwita",
		"email": "brian@mail.com",
		"password": "secret123",
		"confirmPassword": "secret123",
		"termsAgreed": true
	}`

	Describe("POST /api/auth/signup", func() {
		It("should register and point the client at the welcome page", func() {
			rec := post("/api/auth/signup", signUpBody, handler.SignUp)
			Expect(rec.Code).To(Equal(http.StatusCreated))

			var resp map[string]interface{}
			Expect(json.Unmarshal(rec.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp["success"]).To(BeTrue())
			Expect(resp["redirect"]).To(Equal("/welcome.html"))
			Expect(resp["message"]).To(Equal("Registration successful! Redirecting to welcome page..."))

			user := resp["user"].(map[string]interface{})
			Expect(user["email"]).To(Equal("brian@mail.com"))
			Expect(user).NotTo(HaveKey("password"))
		})

		It("should reject a garbage body", func() {
			rec := post("/api/auth/signup", "{{nope", handler.SignUp)
			Expect(rec.Code).To(Equal(http.StatusBadRequest))
		})

		It("should surface a duplicate email as a conflict", func() {
			Expect(post("/api/auth/signup", signUpBody, handler.SignUp).Code).To(Equal(http.StatusCreated))

			rec := post("/api/auth/signup", signUpBody, handler.SignUp)
			Expect(rec.Code).To(Equal(http.StatusConflict))
			Expect(rec.Body.String()).To(ContainSubstring("Email is already in use"))
		})

		It("should surface a validation failure with its message", func() {
			body := strings.Replace(signUpBody, `"termsAgreed": true`, `"termsAgreed": false`, 1)
			rec := post("/api/auth/signup", body, handler.SignUp)
			Expect(rec.Code).To(Equal(http.StatusBadRequest))
			Expect(rec.Body.String()).To(ContainSubstring("You must agree to the Terms of Service and Privacy Policy"))
		})
	})

	Describe("POST /api/auth/signin", func() {
		BeforeEach(func() {
			post("/api/auth/signup", signUpBody, handler.SignUp)
			Expect(sessions.Logout(ctx)).To(Succeed())
		})

		It("should sign in with valid credentials", func() {
			rec := post("/api/auth/signin", `{"email":"brian@mail.com","password":"secret123"}`, handler.SignIn)
			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(rec.Body.String()).To(ContainSubstring("Login successful!"))
		})

		It("should return 404 for an unknown email", func() {
			rec := post("/api/auth/signin", `{"email":"nobody@mail.com","password":"x"}`, handler.SignIn)
			Expect(rec.Code).To(Equal(http.StatusNotFound))
			Expect(rec.Body.String()).To(ContainSubstring("User not found"))
		})

		It("should return 401 for a wrong password", func() {
			rec := post("/api/auth/signin", `{"email":"brian@mail.com","password":"wrong"}`, handler.SignIn)
			Expect(rec.Code).To(Equal(http.StatusUnauthorized))
			Expect(rec.Body.String()).To(ContainSubstring("Invalid password"))
		})
	})

	Describe("POST /api/auth/forgot-password", func() {
		It("should acknowledge a known email", func() {
			post("/api/auth/signup", signUpBody, handler.SignUp)

			rec := post("/api/auth/forgot-password", `{"email":"brian@mail.com"}`, handler.ForgotPassword)
			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(rec.Body.String()).To(ContainSubstring("Password reset link has been sent"))
		})

		It("should return 404 when the directory is empty", func() {
			rec := post("/api/auth/forgot-password", `{"email":"nobody@mail.com"}`, handler.ForgotPassword)
			Expect(rec.Code).To(Equal(http.StatusNotFound))
		})
	})

	Describe("POST /api/auth/logout and GET /api/session", func() {
		get := func(h http.HandlerFunc) *httptest.ResponseRecorder {
			rec := httptest.NewRecorder()
			h(rec, httptest.NewRequest(http.MethodGet, "/api/session", nil))
			return rec
		}

		It("should report the session lifecycle", func() {
			rec := get(handler.Session)
			Expect(rec.Body.String()).To(ContainSubstring(`"authenticated":false`))

			post("/api/auth/signup", signUpBody, handler.SignUp)

			rec = get(handler.Session)
			Expect(rec.Body.String()).To(ContainSubstring(`"authenticated":true`))
			Expect(rec.Body.String()).To(ContainSubstring(`"scope":"durable"`))

			logoutRec := httptest.NewRecorder()
			handler.Logout(logoutRec, httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil))
			Expect(logoutRec.Code).To(Equal(http.StatusNoContent))

			rec = get(handler.Session)
			Expect(rec.Body.String()).To(ContainSubstring(`"authenticated":false`))
		})
	})
})
