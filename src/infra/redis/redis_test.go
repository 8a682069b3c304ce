package redis_test

import (
	"context"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"badajozrespira/src/helper/env"
	"badajozrespira/src/infra/redis"
)

var _ = Describe("RedisClient", func() {
	var (
		client *redis.RedisClient
		ctx    context.Context
		prefix string
	)

	hosts := env.GetString("TEST_REDIS_HOSTS", "")

	BeforeEach(func() {
		if hosts == "" {
			Skip("TEST_REDIS_HOSTS not set")
		}
		ctx = context.Background()
		client = redis.NewRedisClient(hosts, 5, time.Minute)
		Expect(client.HealthCheck(ctx)).To(Succeed())
		prefix = "test:" + gofakeit.UUID() + ":"
	})

	AfterEach(func() {
		if client != nil {
			_ = client.Close()
		}
	})

	Context("when a key is missing", func() {
		It("reports a miss without error", func() {
			_, found, err := client.GetKey(ctx, prefix+"nothing")

			Expect(err).NotTo(HaveOccurred())
			Expect(found).To(BeFalse())
		})
	})

	Context("when keys are stored under registries", func() {
		It("reads them back and drops every key of an invalidated registry", func() {
			// ARRANGE
			events := prefix + "registry:events"
			posts := prefix + "registry:posts"
			Expect(client.SetWithRegistry(ctx, prefix+"events:all", `[{"id":"1"}]`, []string{events})).To(Succeed())
			Expect(client.SetWithRegistry(ctx, prefix+"events:Salud", `[]`, []string{events})).To(Succeed())
			Expect(client.SetWithRegistry(ctx, prefix+"posts:all", `[{"id":"b1"}]`, []string{posts})).To(Succeed())

			value, found, err := client.GetKey(ctx, prefix+"events:all")
			Expect(err).NotTo(HaveOccurred())
			Expect(found).To(BeTrue())
			Expect(value).To(Equal(`[{"id":"1"}]`))

			// ACT
			err = client.InvalidateRegistries(ctx, []string{events})

			// ASSERT
			Expect(err).NotTo(HaveOccurred())
			for _, key := range []string{"events:all", "events:Salud"} {
				_, found, err := client.GetKey(ctx, prefix+key)
				Expect(err).NotTo(HaveOccurred())
				Expect(found).To(BeFalse())
			}

			_, found, err = client.GetKey(ctx, prefix+"posts:all")
			Expect(err).NotTo(HaveOccurred())
			Expect(found).To(BeTrue())
		})

		It("accepts an empty registry list", func() {
			Expect(client.InvalidateRegistries(ctx, nil)).To(Succeed())
		})
	})
})
