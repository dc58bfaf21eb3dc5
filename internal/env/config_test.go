package env_test

import (
	"context"
	"os"
	"time"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/all-ride/ride-lib-varnish/internal/env"
)

var _ = Describe("LoadConfig", func() {
	vars := []string{
		"VARNISH_HOST",
		"VARNISH_PORT",
		"VARNISH_SECRET_FILE",
		"VARNISH_TIMEOUT",
		"VARNISH_DEBUG",
	}

	AfterEach(func() {
		for _, name := range vars {
			os.Unsetenv(name)
		}
	})

	It("falls back to the conventional defaults", func() {
		config, err := env.LoadConfig(context.Background())
		Expect(err).To(Succeed())
		Expect(config.Host).To(Equal("localhost"))
		Expect(config.Port).To(Equal(6082))
		Expect(config.Timeout).To(Equal(5 * time.Second))
		Expect(config.SecretFile).To(BeEmpty())
		Expect(config.Debug).To(BeFalse())
	})

	It("reads the process environment", func() {
		os.Setenv("VARNISH_HOST", "cache-01.internal")
		os.Setenv("VARNISH_PORT", "6091")
		os.Setenv("VARNISH_SECRET_FILE", "/etc/varnish/secret")
		os.Setenv("VARNISH_TIMEOUT", "250ms")
		os.Setenv("VARNISH_DEBUG", "true")

		config, err := env.LoadConfig(context.Background())
		Expect(err).To(Succeed())
		Expect(config.Host).To(Equal("cache-01.internal"))
		Expect(config.Port).To(Equal(6091))
		Expect(config.SecretFile).To(Equal("/etc/varnish/secret"))
		Expect(config.Timeout).To(Equal(250 * time.Millisecond))
		Expect(config.Debug).To(BeTrue())
	})
})
