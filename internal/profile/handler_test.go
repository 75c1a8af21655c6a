package profile_test

import (
	"bytes"
	"context"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"strings"
	"time"

	"github.com/am3lue/ProjectManagementSystem/internal/directory"
	"github.com/am3lue/ProjectManagementSystem/internal/profile"
	"github.com/am3lue/ProjectManagementSystem/internal/session"
	"github.com/am3lue/ProjectManagementSystem/internal/storage"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Profile Handler Integration", func() {
	var (
		ctx      context.Context
		dir      *directory.Directory
		sessions *session.Manager
		handler  *profile.Handler
	)

	user := directory.UserRecord{
		ID:         1700000000000,
		FirstName:  "Brian",
		LastName:   "Mwita",
		Email:      "brian@mail.com",
		Password:   "secret123",
		Role:       "user",
		CreatedAt:  time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC),
		Components: []directory.EmbeddedComponent{},
		Projects:   []directory.EmbeddedProject{},
	}

	BeforeEach(func() {
		ctx = context.Background()
		slogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		stores := storage.NewScoped(storage.NewMemoryStore(), storage.NewMemoryStore())
		dir = directory.New(stores.Durable(), slogger)
		sessions = session.NewManager(stores, slogger)
		handler = profile.NewHandler(profile.NewService(dir, sessions, slogger))

		Expect(dir.Insert(ctx, user)).To(Succeed())
		Expect(sessions.Login(ctx, user, true)).To(Succeed())
	})

	Describe("PUT /api/profile", func() {
		It("should update and echo the session user", func() {
			body := `{"firstName":"Brian","lastName":"Mwita","email":"brian@mail.com","bio":"x"}`
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPut, "/api/profile", strings.NewReader(body))
			handler.UpdateProfile(rec, req)

			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(rec.Body.String()).To(ContainSubstring("Profile updated successfully"))
			Expect(rec.Body.String()).To(ContainSubstring(`"bio":"x"`))
		})

		It("should surface the required-fields message", func() {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPut, "/api/profile", strings.NewReader(`{"firstName":"Brian"}`))
			handler.UpdateProfile(rec, req)

			Expect(rec.Code).To(Equal(http.StatusBadRequest))
			Expect(rec.Body.String()).To(ContainSubstring("Please fill in all required fields"))
		})
	})

	Describe("POST /api/profile/avatar", func() {
		upload := func(filename, contentType string, content []byte) *httptest.ResponseRecorder {
			var buf bytes.Buffer
			writer := multipart.NewWriter(&buf)

			header := textproto.MIMEHeader{}
			header.Set("Content-Disposition", `form-data; name="avatar"; filename="`+filename+`"`)
			header.Set("Content-Type", contentType)
			part, err := writer.CreatePart(header)
			Expect(err).NotTo(HaveOccurred())
			_, err = part.Write(content)
			Expect(err).NotTo(HaveOccurred())
			Expect(writer.Close()).To(Succeed())

			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/profile/avatar", &buf)
			req.Header.Set("Content-Type", writer.FormDataContentType())
			handler.ChangeAvatar(rec, req)
			return rec
		}

		It("should store an image upload", func() {
			rec := upload("me.png", "image/png", []byte{0x89, 0x50, 0x4E, 0x47})
			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(rec.Body.String()).To(ContainSubstring("Profile picture updated successfully"))
			Expect(rec.Body.String()).To(ContainSubstring("data:image/png;base64,"))
		})

		It("should reject a non-image upload", func() {
			rec := upload("notes.txt", "text/plain", []byte("hello"))
			Expect(rec.Code).To(Equal(http.StatusBadRequest))
			Expect(rec.Body.String()).To(ContainSubstring("Please select an image file"))
		})

		It("should require the avatar field", func() {
			var buf bytes.Buffer
			writer := multipart.NewWriter(&buf)
			Expect(writer.WriteField("other", "x")).To(Succeed())
			Expect(writer.Close()).To(Succeed())

			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/profile/avatar", &buf)
			req.Header.Set("Content-Type", writer.FormDataContentType())
			handler.ChangeAvatar(rec, req)

			Expect(rec.Code).To(Equal(http.StatusBadRequest))
			Expect(rec.Body.String()).To(ContainSubstring("avatar file is required"))
		})
	})
})
