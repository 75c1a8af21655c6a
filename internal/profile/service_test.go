package profile_test

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/am3lue/ProjectManagementSystem/internal"
	"github.com/am3lue/ProjectManagementSystem/internal/directory"
	"github.com/am3lue/ProjectManagementSystem/internal/profile"
	"github.com/am3lue/ProjectManagementSystem/internal/session"
	"github.com/am3lue/ProjectManagementSystem/internal/storage"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestProfileService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Profile Service Suite")
}

var _ = Describe("Profile Service", func() {
	var (
		ctx      context.Context
		dir      *directory.Directory
		sessions *session.Manager
		service  *profile.Service
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

	validForm := func() profile.UpdateProfileDTO {
		return profile.UpdateProfileDTO{
			FirstName: "Brian",
			LastName:  "Mwita",
			Email:     "brian@mail.com",
		}
	}

	BeforeEach(func() {
		ctx = context.Background()
		slogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		stores := storage.NewScoped(storage.NewMemoryStore(), storage.NewMemoryStore())
		dir = directory.New(stores.Durable(), slogger)
		sessions = session.NewManager(stores, slogger)
		service = profile.NewService(dir, sessions, slogger)
	})

	signIn := func(remember bool) {
		Expect(dir.Insert(ctx, user)).To(Succeed())
		Expect(sessions.Login(ctx, user, remember)).To(Succeed())
	}

	Describe("UpdateProfile", func() {
		It("should require the mandatory fields", func() {
			form := validForm()
			form.Email = ""

			_, err := service.UpdateProfile(ctx, form)
			Expect(err).To(MatchError("Please fill in all required fields"))
		})

		It("should reject an unauthenticated caller", func() {
			_, err := service.UpdateProfile(ctx, validForm())
			Expect(err).To(MatchError(internal.ErrNotAuthenticated))
		})

		It("should detect a session desynchronized from the directory", func() {
			// Session exists but the directory record is gone.
			Expect(sessions.Login(ctx, user, true)).To(Succeed())

			_, err := service.UpdateProfile(ctx, validForm())
			Expect(err).To(MatchError(internal.ErrUserNotFound))
		})

		Context("with an active session", func() {
			BeforeEach(func() {
				signIn(false)
			})

			It("should patch the directory and the session copy", func() {
				form := validForm()
				form.Bio = "x"

				rec, err := service.UpdateProfile(ctx, form)
				Expect(err).NotTo(HaveOccurred())
				Expect(rec.Bio).To(Equal("x"))
				Expect(rec.FirstName).To(Equal("Brian"))
				Expect(rec.Email).To(Equal("brian@mail.com"))

				stored, ok := dir.FindByID(ctx, user.ID)
				Expect(ok).To(BeTrue())
				Expect(stored.Bio).To(Equal("x"))
				Expect(stored.Password).To(Equal("secret123"))

				slot, err := sessions.Current(ctx)
				Expect(err).NotTo(HaveOccurred())
				Expect(slot.Record.Bio).To(Equal("x"))
			})

			It("should keep the session in its original scope", func() {
				_, err := service.UpdateProfile(ctx, validForm())
				Expect(err).NotTo(HaveOccurred())

				slot, err := sessions.Current(ctx)
				Expect(err).NotTo(HaveOccurred())
				Expect(slot.Scope).To(Equal(storage.Ephemeral))
			})
		})
	})

	Describe("ChangeAvatar", func() {
		png := []byte{0x89, 0x50, 0x4E, 0x47}

		It("should reject non-image uploads before anything else", func() {
			_, err := service.ChangeAvatar(ctx, []byte("plain text"), "text/plain")
			Expect(err).To(MatchError("Please select an image file"))
		})

		It("should reject oversized images", func() {
			signIn(true)
			big := make([]byte, profile.MaxAvatarBytes+1)

			_, err := service.ChangeAvatar(ctx, big, "image/png")
			Expect(err).To(MatchError("Image size should be less than 2MB"))
		})

		It("should accept an image exactly at the limit", func() {
			signIn(true)
			exact := make([]byte, profile.MaxAvatarBytes)

			_, err := service.ChangeAvatar(ctx, exact, "image/png")
			Expect(err).NotTo(HaveOccurred())
		})

		It("should reject an unauthenticated caller", func() {
			_, err := service.ChangeAvatar(ctx, png, "image/png")
			Expect(err).To(MatchError(internal.ErrNotAuthenticated))
		})

		It("should store the avatar as a base64 data URI", func() {
			signIn(true)

			rec, err := service.ChangeAvatar(ctx, png, "image/png")
			Expect(err).NotTo(HaveOccurred())
			Expect(strings.HasPrefix(rec.Avatar, "data:image/png;base64,")).To(BeTrue())

			stored, ok := dir.FindByID(ctx, user.ID)
			Expect(ok).To(BeTrue())
			Expect(stored.Avatar).To(Equal(rec.Avatar))
		})
	})
})
