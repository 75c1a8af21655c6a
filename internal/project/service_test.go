package project_test

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/am3lue/ProjectManagementSystem/internal/project"
	"github.com/am3lue/ProjectManagementSystem/internal/storage"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestProjectService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Project Service Suite")
}

var _ = Describe("Project Service", func() {
	var (
		ctx     context.Context
		durable *storage.MemoryStore
		service *project.Service
	)

	validDTO := func() project.ProjectDTO {
		return project.ProjectDTO{
			Name:        "Rotary Position Tracker",
			Description: "Shaft angle logging with magnetic encoders",
			Status:      "in-progress",
			Progress:    45,
			StartDate:   "2026-06-01",
		}
	}

	create := func(dto project.ProjectDTO) *project.Project {
		rec, err := service.Create(ctx, dto)
		Expect(err).NotTo(HaveOccurred())
		time.Sleep(2 * time.Millisecond)
		return rec
	}

	BeforeEach(func() {
		ctx = context.Background()
		durable = storage.NewMemoryStore()
		slogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = project.NewService(durable, slogger)
	})

	Describe("Create", func() {
		It("should reject an unknown status", func() {
			dto := validDTO()
			dto.Status = "someday"

			_, err := service.Create(ctx, dto)
			Expect(err).To(HaveOccurred())
		})

		It("should reject progress outside 0..100", func() {
			dto := validDTO()
			dto.Progress = 101

			_, err := service.Create(ctx, dto)
			Expect(err).To(HaveOccurred())
		})

		It("should default team and components to empty lists", func() {
			rec := create(validDTO())
			Expect(rec.Team).NotTo(BeNil())
			Expect(rec.Team).To(BeEmpty())
			Expect(rec.Components).NotTo(BeNil())
			Expect(rec.Components).To(BeEmpty())
		})

		It("should persist the record", func() {
			create(validDTO())

			list := service.List(ctx)
			Expect(list).To(HaveLen(1))
			Expect(list[0].Name).To(Equal("Rotary Position Tracker"))
		})
	})

	Describe("List", func() {
		It("should treat a malformed collection as empty", func() {
			Expect(durable.Set(ctx, storage.KeyProjects, "not json")).To(Succeed())
			Expect(service.List(ctx)).To(BeEmpty())
		})
	})

	Describe("Update", func() {
		It("should keep team membership when the update omits it", func() {
			dto := validDTO()
			dto.Team = []int64{1, 2}
			rec := create(dto)

			update := validDTO()
			update.Progress = 80

			updated, err := service.Update(ctx, rec.ID, update)
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Progress).To(Equal(80))
			Expect(updated.Team).To(Equal([]int64{1, 2}))
		})

		It("should replace team membership when the update carries it", func() {
			dto := validDTO()
			dto.Team = []int64{1, 2}
			rec := create(dto)

			update := validDTO()
			update.Team = []int64{3}

			updated, err := service.Update(ctx, rec.ID, update)
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Team).To(Equal([]int64{3}))
		})

		It("should report an unknown id", func() {
			_, err := service.Update(ctx, 404, validDTO())
			Expect(err).To(MatchError("Project not found"))
		})
	})

	Describe("Get and Delete", func() {
		It("should round-trip by id", func() {
			rec := create(validDTO())

			got, err := service.Get(ctx, rec.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(got.Name).To(Equal(rec.Name))

			Expect(service.Delete(ctx, rec.ID)).To(Succeed())
			Expect(service.List(ctx)).To(BeEmpty())

			_, err = service.Get(ctx, rec.ID)
			Expect(err).To(MatchError("Project not found"))
		})

		It("should report deleting an unknown id", func() {
			Expect(service.Delete(ctx, 404)).To(MatchError("Project not found"))
		})
	})
})
