package fixtures_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"badajozrespira/src/domain/entities"
	"badajozrespira/src/infra/fixtures"
)

var _ = Describe("Load", func() {
	now := time.Date(2026, time.October, 16, 9, 0, 0, 0, time.UTC)

	It("loads every embedded collection", func() {
		seed, err := fixtures.Load(now)

		Expect(err).NotTo(HaveOccurred())
		Expect(seed.Users).To(HaveLen(3))
		Expect(seed.Events).To(HaveLen(6))
		Expect(seed.Resources).To(HaveLen(7))
		Expect(seed.Posts).To(HaveLen(3))
		Expect(seed.Proposals).To(HaveLen(3))
	})

	It("resolves relative dates against the load time", func() {
		seed, err := fixtures.Load(now)
		Expect(err).NotTo(HaveOccurred())

		Expect(seed.Events[0].Date).To(Equal("2026-10-16"))
		Expect(seed.Events[1].Date).To(Equal("2026-10-18"))
		Expect(seed.Events[2].Date).To(Equal("2026-10-25"))
		Expect(seed.Events[4].Date).To(Equal("2026-11-05"))
		Expect(seed.Posts[0].Date).To(Equal("2026-10-15"))
	})

	It("decodes proposal details according to the proposal type", func() {
		seed, err := fixtures.Load(now)
		Expect(err).NotTo(HaveOccurred())

		general := seed.Proposals[0]
		Expect(general.Type).To(Equal(entities.ProposalGeneral))
		Expect(general.Status).To(Equal(entities.StatusValidated))
		Expect(general.Details).To(BeNil())

		event := seed.Proposals[2]
		details, ok := event.EventDetails()
		Expect(ok).To(BeTrue())
		Expect(details.Location).To(Equal("Puente de Cantillana"))
		Expect(details.StartTime).To(Equal("10:00"))
		Expect(details.Date).To(Equal("2026-11-05"))
	})

	It("keeps block settings of the seeded posts", func() {
		seed, err := fixtures.Load(now)
		Expect(err).NotTo(HaveOccurred())

		image := seed.Posts[0].Blocks[3]
		Expect(image.Type).To(Equal(entities.BlockImage))
		Expect(image.Settings.Width).To(Equal(entities.Width100))
		Expect(image.Settings.Filter).To(Equal(entities.FilterSepia))
		Expect(image.Settings.Caption).To(Equal("Plaza Alta libre de coches"))
	})

	It("rejects a general proposal that carries details", func() {
		_, err := fixtures.Parse([]byte(`
proposals:
  - id: x
    type: general
    title: t
    details:
      location: somewhere
`), now)

		Expect(err).To(MatchError(ContainSubstring("proposal details do not match")))
	})
})
