package varnish_test

import (
	"errors"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	varnish "github.com/all-ride/ride-lib-varnish"
)

var _ = Describe("BanExpression()", func() {
	It("derives an exact match from a plain URL", func() {
		expr, err := varnish.BanExpression("http://example.com/news/archive", false)
		Expect(err).To(Succeed())
		Expect(expr).To(Equal(`req.http.host ~ "^(?i)example.com$" && req.url ~ "^/news/archive$"`))
	})

	It("drops the anchor for a recursive ban", func() {
		expr, err := varnish.BanExpression("http://example.com/news", true)
		Expect(err).To(Succeed())
		Expect(expr).To(Equal(`req.http.host ~ "^(?i)example.com$" && req.url ~ "^/news"`))
	})

	It("lowercases the host", func() {
		expr, err := varnish.BanExpression("http://Example.COM/a", false)
		Expect(err).To(Succeed())
		Expect(expr).To(ContainSubstring(`"^(?i)example.com$"`))
	})

	It("keeps an explicit port", func() {
		expr, err := varnish.BanExpression("http://example.com:8080/a", false)
		Expect(err).To(Succeed())
		Expect(expr).To(ContainSubstring(`"^(?i)example.com:8080$"`))
	})

	It("defaults the path to /", func() {
		expr, err := varnish.BanExpression("http://example.com", false)
		Expect(err).To(Succeed())
		Expect(expr).To(ContainSubstring(`req.url ~ "^/$"`))
	})

	It("keeps the query string", func() {
		expr, err := varnish.BanExpression("http://example.com/search?q=go", false)
		Expect(err).To(Succeed())
		Expect(expr).To(ContainSubstring(`req.url ~ "^/search\?q=go$"`))
	})

	It("quotes brackets in the path", func() {
		expr, err := varnish.BanExpression("http://example.com/a[1]", true)
		Expect(err).To(Succeed())
		Expect(expr).To(ContainSubstring(`req.url ~ "^/a\[1\]"`))
	})

	It("leaves dots alone", func() {
		expr, err := varnish.BanExpression("http://example.com/file.html", false)
		Expect(err).To(Succeed())
		Expect(expr).To(ContainSubstring(`req.url ~ "^/file.html$"`))
	})

	It("rejects a URL without a host", func() {
		_, err := varnish.BanExpression("/relative/path", false)
		Expect(errors.Is(err, varnish.ErrMissingHost)).To(BeTrue())
	})

	It("rejects a URL that does not parse", func() {
		_, err := varnish.BanExpression("http://example.com/%zz", false)
		Expect(err).To(HaveOccurred())
	})
})
