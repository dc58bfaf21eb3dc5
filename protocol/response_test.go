package protocol_test

import (
	"bufio"
	"errors"
	"io"
	"strings"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/all-ride/ride-lib-varnish/protocol"
)

// timeoutError mimics the error a net.Conn returns when its read
// deadline fires.
type timeoutError struct{}

func (*timeoutError) Error() string   { return "i/o timeout" }
func (*timeoutError) Timeout() bool   { return true }
func (*timeoutError) Temporary() bool { return true }

// stalledReader serves its data and then times out instead of
// returning io.EOF.
type stalledReader struct {
	r io.Reader
}

func (s *stalledReader) Read(p []byte) (int, error) {
	n, err := s.r.Read(p)
	if err == io.EOF {
		return n, &timeoutError{}
	}

	return n, err
}

var _ = Describe("Parsing", func() {
	read := func(data string) (*protocol.Response, error) {
		return protocol.ReadResponse(bufio.NewReader(strings.NewReader(data)))
	}

	Describe("ReadResponse()", func() {
		It("decodes a status line and its body", func() {
			resp, err := read("200 22\nChild in state running\n")
			Expect(err).To(Succeed())
			Expect(resp.Status).To(Equal(200))
			Expect(resp.Text()).To(Equal("Child in state running"))
		})

		It("decodes an empty body", func() {
			resp, err := read("200 0\n\n")
			Expect(err).To(Succeed())
			Expect(resp.Status).To(Equal(200))
			Expect(resp.Body).To(BeEmpty())
		})

		It("reads exactly the declared number of bytes", func() {
			resp, err := read("200 4\nPONG 1629395936 1.0\n")
			Expect(err).To(Succeed())
			Expect(resp.Text()).To(Equal("PONG"))
		})

		It("keeps newlines inside the body", func() {
			resp, err := read("200 11\nline\nline2\n\n")
			Expect(err).To(Succeed())
			Expect(resp.Text()).To(Equal("line\nline2\n"))
		})

		It("skips lines that are not status lines", func() {
			resp, err := read("-----\nVarnish Cache CLI 1.0\n-----\n200 3\nhey\n")
			Expect(err).To(Succeed())
			Expect(resp.Status).To(Equal(200))
			Expect(resp.Text()).To(Equal("hey"))
		})

		It("reads consecutive frames off the same reader", func() {
			r := bufio.NewReader(strings.NewReader("200 5\nfirst\n107 6\nsecond\n"))

			resp, err := protocol.ReadResponse(r)
			Expect(err).To(Succeed())
			Expect(resp.Status).To(Equal(200))
			Expect(resp.Text()).To(Equal("first"))

			resp, err = protocol.ReadResponse(r)
			Expect(err).To(Succeed())
			Expect(resp.Status).To(Equal(107))
			Expect(resp.Text()).To(Equal("second"))
		})

		It("returns an error when the stream ends before any status line", func() {
			_, err := read("Closing CLI connection\n")
			Expect(errors.Is(err, protocol.ErrNoStatusLine)).To(BeTrue())
		})

		It("returns an error on an empty stream", func() {
			_, err := read("")
			Expect(errors.Is(err, protocol.ErrNoStatusLine)).To(BeTrue())
		})

		It("does not treat a dangling final line as a status line", func() {
			_, err := read("200 5")
			Expect(errors.Is(err, protocol.ErrNoStatusLine)).To(BeTrue())
		})

		It("returns an error when the body is cut short", func() {
			_, err := read("200 10\nabc")
			Expect(errors.Is(err, protocol.ErrTruncatedBody)).To(BeTrue())
		})

		It("reports a timeout while waiting for a status line", func() {
			r := bufio.NewReader(&stalledReader{r: strings.NewReader("")})
			_, err := protocol.ReadResponse(r)
			Expect(errors.Is(err, protocol.ErrReadTimeout)).To(BeTrue())
		})

		It("reports a timeout inside a body", func() {
			r := bufio.NewReader(&stalledReader{r: strings.NewReader("200 10\nabc")})
			_, err := protocol.ReadResponse(r)
			Expect(errors.Is(err, protocol.ErrReadTimeout)).To(BeTrue())
		})
	})
})
