package catalog_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"badajozrespira/src/domain"
	"badajozrespira/src/domain/entities"
	"badajozrespira/src/infra/fixtures"
	"badajozrespira/src/repositories"
	"badajozrespira/src/services/blocks"
	"badajozrespira/src/services/catalog"
	"badajozrespira/src/services/events"
	"badajozrespira/src/test_artefacts/stubs"
)

func fieldOf(err error) string {
	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		return validationErr.Field
	}
	return ""
}

var _ = Describe("Catalog services", func() {
	var (
		store  *repositories.MemoryStore
		logger *slog.Logger
		pub    events.Publisher
		ctx    context.Context
	)

	BeforeEach(func() {
		ctx = context.Background()
		seed, err := fixtures.Load(time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC))
		Expect(err).NotTo(HaveOccurred())
		store = repositories.NewMemoryStore(seed)
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
		pub = events.NewLogPublisher(logger)
	})

	Describe("EventService", func() {
		var service *catalog.EventService

		BeforeEach(func() {
			service = catalog.NewEventService(logger, store, pub)
		})

		It("lists events in chronological order and filters by category", func() {
			all, err := service.List(ctx, "")
			Expect(err).NotTo(HaveOccurred())
			for i := 1; i < len(all); i++ {
				Expect(all[i-1].Date <= all[i].Date).To(BeTrue())
			}

			deporte, err := service.List(ctx, entities.CategoryDeporte)
			Expect(err).NotTo(HaveOccurred())
			for _, e := range deporte {
				Expect(e.Category).To(Equal(entities.CategoryDeporte))
			}
		})

		It("creates an event with the dashboard defaults", func() {
			created, err := service.Create(ctx, entities.AgendaEvent{Title: "Yoga", Date: "2026-12-01"})

			Expect(err).NotTo(HaveOccurred())
			Expect(created.ID).NotTo(BeEmpty())
			Expect(created.StartTime).To(Equal("10:00"))
			Expect(created.Location).To(Equal("Badajoz"))
			Expect(created.Organizer).To(Equal("Farmamundi"))
			Expect(created.Category).To(Equal(entities.CategorySalud))
		})

		It("requires a title and a date", func() {
			_, err := service.Create(ctx, entities.AgendaEvent{Date: "2026-12-01"})
			Expect(fieldOf(err)).To(Equal("title"))

			_, err = service.Create(ctx, entities.AgendaEvent{Title: "x"})
			Expect(fieldOf(err)).To(Equal("date"))
		})

		It("replaces an existing event keeping its id", func() {
			created, err := service.Create(ctx, stubs.NewAgendaEventStub().Get())
			Expect(err).NotTo(HaveOccurred())

			changed := stubs.NewAgendaEventStub().
				WithID("ignored").
				WithTitle("Marcha por el aire limpio").
				WithDate("2026-11-20", "18:30").
				Get()

			updated, err := service.Update(ctx, created.ID, changed)

			Expect(err).NotTo(HaveOccurred())
			Expect(updated.ID).To(Equal(created.ID))

			stored, err := service.Get(ctx, created.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(stored.Title).To(Equal("Marcha por el aire limpio"))
			Expect(stored.Date).To(Equal("2026-11-20"))
			Expect(stored.StartTime).To(Equal("18:30"))
		})

		It("refuses to update an unknown event", func() {
			_, err := service.Update(ctx, "nope", stubs.NewAgendaEventStub().Get())
			Expect(err).To(MatchError(domain.ErrEntityNotFound))
		})
	})

	Describe("ResourceService", func() {
		var service *catalog.ResourceService

		BeforeEach(func() {
			service = catalog.NewResourceService(logger, store, pub)
		})

		It("filters by tag", func() {
			created, err := service.Create(ctx, stubs.NewResourceStub().WithTags("Fuente").Get())
			Expect(err).NotTo(HaveOccurred())

			list, err := service.List(ctx, "Fuente")
			Expect(err).NotTo(HaveOccurred())
			Expect(list).To(ContainElement(HaveField("ID", created.ID)))
			for _, r := range list {
				Expect(r.Tags).To(ContainElement("Fuente"))
			}
		})

		It("renames a resource and normalises missing tags", func() {
			created, err := service.Create(ctx, stubs.NewResourceStub().Get())
			Expect(err).NotTo(HaveOccurred())

			updated, err := service.Update(ctx, created.ID, stubs.NewResourceStub().WithName("Fuente del Parque").WithTags().Get())

			Expect(err).NotTo(HaveOccurred())
			Expect(updated.ID).To(Equal(created.ID))
			Expect(updated.Name).To(Equal("Fuente del Parque"))
			Expect(updated.Tags).To(BeEmpty())
		})

		It("requires coordinates", func() {
			_, err := service.Create(ctx, entities.Resource{Name: "Banco"})
			Expect(fieldOf(err)).To(Equal("coordinates"))
		})
	})

	Describe("UserService", func() {
		var service *catalog.UserService

		BeforeEach(func() {
			service = catalog.NewUserService(logger, store, pub)
		})

		It("logs in by email", func() {
			user, err := service.Login(ctx, " maria@badajoz.es ")
			Expect(err).NotTo(HaveOccurred())
			Expect(user.Role).To(Equal(entities.RoleEditor))
		})

		It("answers Usuario no encontrado for unknown emails", func() {
			_, err := service.Login(ctx, "nadie@example.com")
			Expect(err).To(MatchError(domain.ErrUserNotFound))
			Expect(err.Error()).To(Equal("Usuario no encontrado"))
		})

		It("creates editors by default and refuses duplicated emails", func() {
			user, err := service.Create(ctx, entities.User{Name: "Lucía", Email: "lucia@badajoz.es"})
			Expect(err).NotTo(HaveOccurred())
			Expect(user.Role).To(Equal(entities.RoleEditor))

			_, err = service.Create(ctx, entities.User{Name: "Otra", Email: "LUCIA@badajoz.es"})
			Expect(fieldOf(err)).To(Equal("email"))
		})

		It("creates only one user when the same email arrives concurrently", func() {
			var (
				wg      sync.WaitGroup
				mu      sync.Mutex
				created int
				fields  []string
			)
			for i := 0; i < 20; i++ {
				wg.Add(1)
				go func(i int) {
					defer wg.Done()
					_, err := service.Create(ctx, entities.User{Name: fmt.Sprintf("Gestora %d", i), Email: "gestora@badajoz.es"})
					mu.Lock()
					defer mu.Unlock()
					if err == nil {
						created++
						return
					}
					fields = append(fields, fieldOf(err))
				}(i)
			}
			wg.Wait()

			Expect(created).To(Equal(1))
			Expect(fields).To(HaveLen(19))
			Expect(fields).To(HaveEach("email"))
		})

		It("keeps an explicit role", func() {
			gestor := stubs.NewUserStub().WithEmail("gestion@farmamundi.org").WithRole(entities.RoleGestor).Get()

			created, err := service.Create(ctx, gestor)

			Expect(err).NotTo(HaveOccurred())
			Expect(created.Role).To(Equal(entities.RoleGestor))

			logged, err := service.Login(ctx, "GESTION@farmamundi.org")
			Expect(err).NotTo(HaveOccurred())
			Expect(logged.Name).To(Equal(gestor.Name))
		})
	})

	Describe("BlogService", func() {
		var (
			service *catalog.BlogService
			post    entities.BlogPost
		)

		BeforeEach(func() {
			service = catalog.NewBlogService(logger, store, pub)
			var err error
			post, err = service.Create(ctx, entities.BlogPost{
				Title: "Caminar por el Guadiana",
				Blocks: []entities.ContentBlock{
					{Type: entities.BlockHeader, Content: "Intro"},
					{Type: entities.BlockParagraph, Content: strings.Repeat("x", 200)},
				},
			}, "")
			Expect(err).NotTo(HaveOccurred())
		})

		It("fills the dashboard defaults and derives the excerpt", func() {
			Expect(post.Author).To(Equal("Admin"))
			Expect(post.ImageURL).To(Equal("https://picsum.photos/800/400"))
			Expect(post.Category).To(Equal("General"))
			Expect(post.Excerpt).To(Equal(strings.Repeat("x", 150) + "..."))
			Expect(post.Blocks[0].ID).NotTo(BeEmpty())
		})

		It("keeps an explicit excerpt", func() {
			draft := stubs.NewBlogPostStub().
				WithExcerpt("Resumen propio").
				WithBlocks(entities.ContentBlock{Type: entities.BlockParagraph, Content: "Texto largo del cuerpo."}).
				Get()

			created, err := service.Create(ctx, draft, "")

			Expect(err).NotTo(HaveOccurred())
			Expect(created.Excerpt).To(Equal("Resumen propio"))
			Expect(created.Blocks[0].ID).NotTo(BeEmpty())
		})

		It("uses the acting user as author", func() {
			created, err := service.Create(ctx, entities.BlogPost{Title: "t"}, "María Editora")
			Expect(err).NotTo(HaveOccurred())
			Expect(created.Author).To(Equal("María Editora"))
		})

		It("adds an image block and merges only the given settings", func() {
			updated, block, err := service.AddBlock(ctx, post.ID, entities.BlockImage)
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Blocks).To(HaveLen(3))

			width := entities.Width50
			updated, err = service.UpdateBlock(ctx, post.ID, block.ID, catalog.BlockUpdate{
				Settings: blocks.SettingsPatch{Width: &width},
			})
			Expect(err).NotTo(HaveOccurred())

			last := updated.Blocks[2]
			Expect(last.Settings.Width).To(Equal(entities.Width50))
			Expect(last.Settings.TextAlign).To(Equal(entities.AlignLeft))
			Expect(last.Settings.Filter).To(BeEmpty())
			Expect(last.Settings.Caption).To(BeEmpty())
		})

		It("moves and deletes blocks by index", func() {
			moved, err := service.MoveBlock(ctx, post.ID, 0, blocks.Down)
			Expect(err).NotTo(HaveOccurred())
			Expect(moved.Blocks[0].Type).To(Equal(entities.BlockParagraph))

			unchanged, err := service.MoveBlock(ctx, post.ID, 0, blocks.Up)
			Expect(err).NotTo(HaveOccurred())
			Expect(unchanged.Blocks).To(Equal(moved.Blocks))

			deleted, err := service.DeleteBlock(ctx, post.ID, 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(deleted.Blocks).To(HaveLen(1))
			Expect(deleted.Blocks[0].Type).To(Equal(entities.BlockHeader))
		})

		It("keeps every block added by concurrent editors", func() {
			var wg sync.WaitGroup
			for i := 0; i < 200; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					defer GinkgoRecover()
					_, _, err := service.AddBlock(ctx, post.ID, entities.BlockParagraph)
					Expect(err).NotTo(HaveOccurred())
				}()
			}
			wg.Wait()

			stored, err := service.Get(ctx, post.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(stored.Blocks).To(HaveLen(len(post.Blocks) + 200))
		})

		It("rejects unknown block types", func() {
			_, _, err := service.AddBlock(ctx, post.ID, "video")
			Expect(fieldOf(err)).To(Equal("type"))
		})

		It("reports unknown posts", func() {
			_, err := service.DeleteBlock(ctx, "missing", 0)
			Expect(err).To(MatchError(domain.ErrEntityNotFound))
		})
	})
})
