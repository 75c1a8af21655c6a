package component_test

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/am3lue/ProjectManagementSystem/internal"
	"github.com/am3lue/ProjectManagementSystem/internal/component"
	"github.com/am3lue/ProjectManagementSystem/internal/directory"
	"github.com/am3lue/ProjectManagementSystem/internal/session"
	"github.com/am3lue/ProjectManagementSystem/internal/storage"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestComponentService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Component Service Suite")
}

var _ = Describe("Component Service", func() {
	var (
		ctx      context.Context
		durable  *storage.MemoryStore
		sessions *session.Manager
		service  *component.Service
	)

	validDTO := func() component.ComponentDTO {
		return component.ComponentDTO{
			Name:   "AS5600 Magnetic Encoder",
			Type:   "magnetic-sensor",
			Specs:  "12-bit contactless angle sensor",
			Status: "available",
		}
	}

	// Record ids are unix-millisecond timestamps; space creates out so
	// they never collide.
	create := func(dto component.ComponentDTO) *component.Component {
		rec, err := service.Create(ctx, dto)
		Expect(err).NotTo(HaveOccurred())
		time.Sleep(2 * time.Millisecond)
		return rec
	}

	BeforeEach(func() {
		ctx = context.Background()
		durable = storage.NewMemoryStore()
		slogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		sessions = session.NewManager(storage.NewScoped(durable, storage.NewMemoryStore()), slogger)
		service = component.NewService(durable, sessions, slogger)
	})

	Describe("List", func() {
		It("should be empty before any create", func() {
			Expect(service.List(ctx)).To(BeEmpty())
		})

		It("should treat a malformed collection as empty", func() {
			Expect(durable.Set(ctx, storage.KeyComponents, "{{broken")).To(Succeed())
			Expect(service.List(ctx)).To(BeEmpty())
		})
	})

	Describe("Create", func() {
		It("should reject an unknown type", func() {
			dto := validDTO()
			dto.Type = "capacitor"

			_, err := service.Create(ctx, dto)
			Expect(err).To(HaveOccurred())
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeValidationFailed))
		})

		It("should reject a missing name", func() {
			dto := validDTO()
			dto.Name = ""

			_, err := service.Create(ctx, dto)
			Expect(err).To(HaveOccurred())
		})

		It("should persist the record with a timestamp id", func() {
			rec := create(validDTO())
			Expect(rec.ID).NotTo(BeZero())
			Expect(rec.CreatedAt).NotTo(BeZero())

			list := service.List(ctx)
			Expect(list).To(HaveLen(1))
			Expect(list[0].Name).To(Equal("AS5600 Magnetic Encoder"))
		})

		It("should stamp the creator from the active session", func() {
			user := directory.UserRecord{ID: 42, Email: "brian@mail.com"}
			Expect(sessions.Login(ctx, user, true)).To(Succeed())

			rec := create(validDTO())
			Expect(rec.CreatedBy).To(Equal(int64(42)))
		})

		It("should leave the creator zero without a session", func() {
			rec := create(validDTO())
			Expect(rec.CreatedBy).To(BeZero())
		})
	})

	Describe("Get", func() {
		It("should find a created record", func() {
			rec := create(validDTO())

			got, err := service.Get(ctx, rec.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(got.Name).To(Equal(rec.Name))
		})

		It("should report an unknown id", func() {
			_, err := service.Get(ctx, 404)
			Expect(err).To(MatchError("Component not found"))
		})
	})

	Describe("Update", func() {
		It("should replace every editable field", func() {
			rec := create(validDTO())

			dto := validDTO()
			dto.Name = "AS5600L"
			dto.Status = "in-use"

			updated, err := service.Update(ctx, rec.ID, dto)
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Name).To(Equal("AS5600L"))
			Expect(updated.Status).To(Equal("in-use"))
			Expect(updated.ID).To(Equal(rec.ID))
		})

		It("should report an unknown id", func() {
			_, err := service.Update(ctx, 404, validDTO())
			Expect(err).To(MatchError("Component not found"))
		})
	})

	Describe("Delete", func() {
		It("should remove the record", func() {
			rec := create(validDTO())

			Expect(service.Delete(ctx, rec.ID)).To(Succeed())
			Expect(service.List(ctx)).To(BeEmpty())
		})

		It("should report an unknown id", func() {
			Expect(service.Delete(ctx, 404)).To(MatchError("Component not found"))
		})
	})
})
